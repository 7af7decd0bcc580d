/*
Package req provides ergonomics for handling an HTTP request.

Package req provides a helper for parsing payloads in an HTTP request.
It supports JSON-encoded payloads and payloads encoded in query parameters.
In both cases, package req expects to parse payloads into a pointer to a struct.
That struct ought to leverage the appropriate struct tags for performing two tasks.
First, matching keys in the payload to fields on the struct.
Second, for validating the payload's data meets requirements.

Payloads a client got wrong fail with exposed *onerror.Error values:
malformed JSON with a 400 and data breaking the rules with a 422,
so handlers can return them as is and clients learn what to fix.
*/
package req
