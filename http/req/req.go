package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"

	"github.com/gorilla/schema"
	"github.com/xy-planning-network/onerror"
)

// A Parser decodes request payloads into structs and validates them.
//
// Payloads clients got wrong fail with exposed *onerror.Error values,
// so they are answered with a 400 or 422 explaining what is wrong.
// Structs the calling code got wrong fail with onerror.ErrBadConfig, answered with a 500.
type Parser struct {
	dec *schema.Decoder
	validator
}

func NewParser() *Parser {
	return &Parser{
		dec:       newQueryParamDecoder(),
		validator: newValidator(),
	}
}

// Parse decodes the request's payload into structPtr:
// query params for GET, HEAD and DELETE requests, the JSON body otherwise.
func (p *Parser) Parse(r *http.Request, structPtr any) error {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		return p.ParseQueryParams(r.URL.Query(), structPtr)
	default:
		return p.ParseBody(r.Body, structPtr)
	}
}

// ParseBody decodes into a pointer to a struct the JSON data in *http.Request.Body.
// If successful, ParseBody runs validation against the contents.
//
// Malformed JSON fails with an exposed http.StatusBadRequest *onerror.Error wrapping ErrBadFormat.
// Data failing validation fails with an exposed http.StatusUnprocessableEntity *onerror.Error
// wrapping ValidationErrors.
//
// ParseBody reads the entire r.Body and can't be read from again.
// Use a [io.TeeReader] if r.Body needs to be reused after calling ParseBody.
func (p *Parser) ParseBody(body io.Reader, structPtr any) error {
	if err := checkStructPtr(structPtr); err != nil {
		return err
	}

	var ourFault *json.InvalidUnmarshalError
	err := json.NewDecoder(body).Decode(structPtr)
	if errors.As(err, &ourFault) {
		return fmt.Errorf("%w: %s", onerror.ErrBadConfig, err)
	}

	if err != nil {
		return onerror.Errorf(http.StatusBadRequest, "%w: cannot decode request body: %s", ErrBadFormat, err)
	}

	return p.check(structPtr)
}

// ParseQueryParams decodes into a pointer to a struct the query param data in *http.Request.URL.Query.
// If successful, ParseQueryParams runs validation against the contents.
//
// Values of the wrong type, like letters for an int, fail as validation errors do,
// with an exposed http.StatusUnprocessableEntity *onerror.Error wrapping ValidationErrors.
func (p *Parser) ParseQueryParams(params url.Values, structPtr any) error {
	if err := checkStructPtr(structPtr); err != nil {
		return err
	}

	if err := p.dec.Decode(structPtr, params); err != nil {
		err = translateDecoderError(err)

		var verrs ValidationErrors
		if errors.As(err, &verrs) {
			return invalid(verrs)
		}

		return err
	}

	return p.check(structPtr)
}

func (p *Parser) check(structPtr any) error {
	err := p.validate(structPtr)

	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return invalid(verrs)
	}

	return err
}

func invalid(verrs ValidationErrors) error {
	return onerror.Errorf(http.StatusUnprocessableEntity, "invalid request: %w", verrs)
}

func checkStructPtr(structPtr any) error {
	v := reflect.ValueOf(structPtr)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %T is not a pointer to a struct", onerror.ErrBadConfig, structPtr)
	}

	return nil
}
