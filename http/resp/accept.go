package resp

import (
	"strings"

	"github.com/elnormous/contenttype"
)

// Short names for the formats errors are rendered in.
const (
	HTML = "html"
	JSON = "json"
	Text = "text"
)

var mimeTypes = map[string]string{
	HTML: "text/html",
	JSON: "application/json",
	Text: "text/plain",
}

// mimeType expands a short name into its MIME type.
// Full MIME types pass through.
func mimeType(offer string) string {
	if strings.Contains(offer, "/") {
		return offer
	}

	if mt, ok := mimeTypes[strings.ToLower(offer)]; ok {
		return mt
	}

	return offer
}

// contentType is the Content-Type header value for a short name or MIME type.
func contentType(typ string) string {
	mt := mimeType(typ)
	if strings.Contains(mt, ";") {
		return mt
	}

	if strings.HasPrefix(mt, "text/") || mt == mimeTypes[JSON] {
		return mt + "; charset=utf-8"
	}

	return mt
}

// Accepts returns the offer best matching the request's Accept header,
// honoring quality values, specificity and wildcards.
//
// Offers are short names (html, text, json) or full MIME types
// and are returned as given.
// Without an Accept header, the first offer wins.
// When nothing is acceptable, Accepts returns "".
//
// Examples:
//
//	// Accept: application/json
//	c.Accepts("html", "text", "json") // "json"
//
//	// Accept: text/html, text/plain;q=0.8
//	c.Accepts("text", "html")  // "html"
//
//	// Accept: image/png
//	c.Accepts("html", "text", "json") // ""
func (c *Context) Accepts(offers ...string) string {
	if len(offers) == 0 {
		return ""
	}

	if c.r.Header.Get("Accept") == "" {
		return offers[0]
	}

	available := make([]contenttype.MediaType, len(offers))
	for i, offer := range offers {
		available[i] = contenttype.NewMediaType(mimeType(offer))
	}

	accepted, _, err := contenttype.GetAcceptableMediaType(c.r, available)
	if err != nil {
		return ""
	}

	for i, mt := range available {
		if mt.Type == accepted.Type && mt.Subtype == accepted.Subtype {
			return offers[i]
		}
	}

	return ""
}
