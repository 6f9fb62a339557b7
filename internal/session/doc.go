// Package session implements the client-side interaction layer of the book recommendation client.
//
// A [Controller] owns all session-scoped state and is driven by user intents
// (typing, selecting a book, adding a favorite, logging out). Every intent and
// every service completion runs on a single [eventloop.Loop]; network calls are
// issued off-loop with [eventloop.Go] and their results posted back.
//
// # Components
//
//   - Search debouncer: [Controller.OnInput] keeps one pending timer and issues a search after a quiet period
//   - Recommendation flow: [Controller.SelectBook] tags each request with a sequence number and drops stale responses
//   - Favorites synchronizer: [Controller.AddFavorite] always reloads the full collection after a successful add
//   - Notifications: [Emitter] shows independent, self-dismissing messages
//   - Session and auth: [Controller.Login], [Controller.Register], [Controller.Logout]
//
// Rendering is a pure projection: [Render] turns a [State] into a [View] that
// a terminal UI (or a test) can paint without touching controller internals.
package session
