// Package handlers serves the callback leg of the provider login flow.
//
// CallbackHandler receives the provider redirect, checks the csrf value in
// the state against the _11ty_oauth_csrf cookie, exchanges the code for an
// access token and answers with a 302 that sets the session cookies:
//
//	resolver := oauth.NewResolver(settings)
//	app := oauthgate.New(
//	    oauthgate.WithErrorHandler(handlers.ErrorHandler),
//	    oauthgate.WithHandlers(
//	        handlers.NewCallbackHandler(resolver),
//	        handlers.NewUserHandler(resolver),
//	    ),
//	)
//
// Every error is rendered by ErrorHandler as {"error": "<message>"} with the
// status carried by the error, or 500.
//
// UserHandler reads the session cookies back and returns the provider's
// profile document for the signed-in user.
package handlers
