/*
Package logger provides logging functionality to an app by defining the required behavior in [Logger]
and providing an implementation of it with [ColorLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.

# ColorLogger

Log messages emitted by [ColorLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2022/04/28 15:55:21 [ERROR] ranger/observer.go:43 'foo is not defined' log_context: {"error":"foo is not defined","status":500}

The log context is a JSON-encoded [LogContext].
It carries the request and the error being answered when one is available.

# SentryLogger

When SENTRY_DSN is set, [New] returns a [SentryLogger],
which forwards warnings and errors with a [LogContext.Error] to Sentry.
*/
package logger
