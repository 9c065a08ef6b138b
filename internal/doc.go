// Package internal provides the application shell behind the root oauthgate
// package: the App, its Router, the request Context and error plumbing.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/oauthgate" instead, which re-exports the public API.
//
// # Core Types
//
//   - App: HTTP routing over chi, middleware, health endpoints and graceful shutdown
//   - Context: request/response access, cookies, logging and request-scoped values
//   - Router: interface handlers use to declare routes
//   - Handler: implemented by types that declare routes on a router
//   - HandlerFunc: route handler returning an error
//   - Middleware: wraps handlers to add cross-cutting concerns
//   - ErrorHandler: turns a handler error into a response
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed straight to outbound
// calls and is cancelled with the request:
//
//	token, err := exchanger.Exchange(c, code, rawState)
//
// # Error Handling
//
// A handler returns an error instead of writing a failure response. The App
// passes it to the configured ErrorHandler unless the handler already wrote
// a response. Errors implementing StatusCoder choose the status; everything
// else is a 500.
//
//	return c.Error(http.StatusUnauthorized, "Not authorized")
package internal
