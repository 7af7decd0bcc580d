/*
Package router routes HTTP requests to handlers serving them through a *resp.Context.

The package wraps [mux.Router], functioning as a thin layer over it.

A [Router] leverages a standardized data model - a [Route] -
when registering how requests should be routed.
A path and an HTTP method comprise a [Route].
A [resp.HandlerFunc] is the function called when a request matches a Route.
Before a request gets to a handler, though,
any middlewares added to the Route are called in the order they appear.

Handlers do not write errors themselves. They return them, or panic,
and the Router hands them to the request's *resp.Context,
whose App answers them in the format the client accepts.
Requests matching no Route fail the same way, with an exposed 404.
*/
package router
