// Package shopurl renders filter state as shareable URLs and parses them
// back, plus a small history stack for back/forward navigation.
//
// # URL Grammar
//
// The path encodes the browsing context:
//
//	/shop                                   everything
//	/shop/{gender}                          one gender, no category
//	/shop/{gender}/{slug}/{id}              gendered category
//	/shop/category/{slug}/{id}              category without a gender
//	/product/{gender}/{slug}/{id}           product detail
//
// Non-default filters ride in the query string (filter, sort, page,
// price_min, price_max); defaults are omitted so the cleanest state is
// the cleanest URL.
//
// # Round-Trip Law
//
// For any reachable state s, Parse(Render(s)) == s. The tests enumerate
// representative states and check this with go-cmp. Render is the
// canonical form: slugs are cosmetic and the numeric id is authoritative,
// so a URL carrying a stale slug parses to the same state and Canonical
// reports that it should be rewritten.
//
// # Degradation
//
// Parse is strict about shape (wrong segment counts and bad ids are
// errors) but lenient about values: unknown sorts fall back to featured,
// bad page numbers to 1, and a one-sided price range inherits the missing
// side from the catalog bounds.
//
// # History
//
// History models the back/forward stack: Push appends and truncates any
// forward entries, Replace rewrites in place, and Back/Forward move the
// cursor. Context switches (gender, category) push; refinements (text,
// sort, price, page) replace.
package shopurl
