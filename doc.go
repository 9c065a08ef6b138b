// Package oauthgate is a small HTTP service that completes the callback leg
// of a "sign in with provider" OAuth2 flow for a statically hosted site.
//
// The provider redirects the browser to the callback endpoint with an
// authorization code and a state value. The service checks the state against
// the CSRF cookie, exchanges the code for an access token and answers with a
// redirect back to the page the user started from, carrying the token and the
// provider name in HttpOnly cookies. No server-side session is kept.
//
// This package exposes the application shell (App, Router, Context, options);
// the OAuth logic lives in pkg/oauth and the HTTP endpoints in handlers.
//
//	resolver := oauth.NewResolver(settings)
//	app := oauthgate.New(
//	    oauthgate.WithLogger(log),
//	    oauthgate.WithCookieOptions(cookie.ForSite(settings.SiteURL)),
//	    oauthgate.WithErrorHandler(handlers.ErrorHandler),
//	    oauthgate.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    oauthgate.WithHandlers(handlers.NewCallbackHandler(resolver)),
//	)
//	if err := app.Run(":8888"); err != nil {
//	    log.Error("server stopped", "error", err)
//	}
package oauthgate
