// Package server provides HTTP routing, middleware, and the JSON API of the development backend.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation registers "METHOD /path" patterns on [http.ServeMux], so the mux
// answers mismatched methods with 405.
//
// # Endpoints
//
//	POST /api/register        {username, email, password}
//	POST /api/login           {username, password}; sets the session cookie
//	POST /api/logout          clears the session
//	GET  /api/books/search    ?q=; first 50 titles when q is empty, else up to 20 matches
//	POST /api/books/recommend {book_name, n_recommendations}; 404 with suggestions when unknown
//	POST /api/favorites/add   {book_title}; requires a session
//	GET  /api/favorites       newest first; requires a session
//	GET  /healthz
//
// Errors use the {success: false, message} envelope with 400, 401, 404, or 500.
//
// # Sessions
//
// Login stores a random token in the sessions table and hands the client an HMAC-signed cookie.
// [Session] middleware resolves the cookie on every request and attaches the user ID to the context;
// handlers that need a user check [UserIDFrom].
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
