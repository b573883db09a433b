// Package catalog implements the HTTP client for the storefront API and
// the transport types it exchanges.
//
// # Overview
//
// The Client covers the read side (categories, product listings, single
// products) and the account side (login, signup, email availability).
// Consumers depend on the Fetcher and Authenticator interfaces rather
// than the concrete client, which keeps the fetch orchestrator and the UI
// testable with fakes.
//
// # Endpoints
//
//   - GET  /categories        Category list
//   - GET  /products          Paginated, filterable product listing
//   - GET  /products/{id}     Single product
//   - POST /login             Exchange credentials for a token
//   - POST /signup            Register and sign in
//   - GET  /check-email       Email availability
//
// # Payload Normalization
//
// The API is loose about two fields, and both are normalized on decode so
// the rest of the program never sees the variants:
//
//   - Product images arrive as an array of strings, an array of objects
//     with a url or src field, a bare string, or a single "image" field.
//     All collapse into Images; DisplayImage falls back to a placeholder
//     when nothing usable remains.
//   - Category codes pack gender and slug into one field ("m:running").
//     Gender and Slug are split out on decode, with the slug derived from
//     the title when the code omits it.
//
// # Query Encoding
//
// ProductQuery zero values are omitted from the query string - a request
// for "everything" carries only pagination. Price bounds are pointers so
// an explicit zero can be distinguished from "not set".
package catalog
