/*
Package resp answers HTTP requests that failed.

A [Context] wraps the request and response of one request.
Handlers set its status and body, or return an error.

A [Responder], set up with [Install], turns those errors into responses.
For each error it:
  - emits the error to the App, whatever happens next
  - gives up on writing if the response already went out or the client is gone
  - answers errors from missing files with 404
  - negotiates html, text or json from the Accept header, falling back to text
  - renders the body with the Renderer for that format, or the catch-all one
  - ends the response

In DEVELOPMENT, or for errors marked Expose, clients see the error message.
Otherwise they see only the status text, e.g., "Internal Server Error".
*/
package resp
