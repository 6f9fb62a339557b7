// Package services defines the [BookService] interface for the remote book-recommendation service and implements it over HTTP.
//
// # Service Interface
//
// The session controller and the CLI depend only on [BookService], so the recommendation engine, auth endpoints,
// and favorites store stay opaque collaborators. Tests substitute a fake.
//
// # HTTP Implementation
//
// [APIService] speaks JSON over HTTP to the endpoints listed below. The session is carried by a cookie,
// so every APIService owns a cookie jar scoped with the public suffix list.
// Requests pass through a [rate.Limiter] before dispatch.
//
//	POST /api/login            {username, password}            → {success, message}
//	POST /api/register         {username, email, password}     → {success, message}
//	GET  /api/books/search?q=                                  → {books}
//	POST /api/books/recommend  {book_name, n_recommendations}  → {success, book, recommendations, message}
//	POST /api/favorites/add    {book_title}                    → {success, message}
//	GET  /api/favorites                                        → {success, favorites}
//	POST /api/logout                                           → status only
//
// # Error Handling
//
// Business failures (success:false) are returned as results with the server message, never as errors.
// Errors are reserved for request-level failures and wrap sentinels from the shared package:
//   - [shared.ErrAPIRequest] : transport failure or unexpected status without a JSON body
//   - [shared.ErrMalformedResponse] : body is not the expected JSON shape
package services
