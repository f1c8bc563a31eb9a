package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/devconnect-be/internal/auth"
	"github.com/isdelr/devconnect-be/internal/validation"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 20

var errBadBody = errors.New("invalid request body")

// Request is the read-only view of an HTTP request an Endpoint works with.
type Request struct {
	ctx    context.Context
	header http.Header
	params map[string]string
	body   []byte
	userID string
}

// NewRequest builds a Request directly. The HTTP adapter uses it, and so do tests.
func NewRequest(ctx context.Context, header http.Header, params map[string]string, body []byte) *Request {
	req := &Request{ctx: ctx, header: header, params: params, body: body}
	if req.header == nil {
		req.header = http.Header{}
	}
	if identity, ok := auth.IdentityFrom(ctx); ok {
		req.userID = identity.ID
	}
	return req
}

// Context returns the request context.
func (r *Request) Context() context.Context { return r.ctx }

// Header returns the first value of the named header.
func (r *Request) Header(name string) string { return r.header.Get(name) }

// Param returns a route parameter, or "" if the route has none by that name.
func (r *Request) Param(name string) string { return r.params[name] }

// UserID returns the authenticated caller, or "" on public routes.
func (r *Request) UserID() string { return r.userID }

// Decode unmarshals the JSON body into dst. An empty body leaves dst untouched.
func (r *Request) Decode(dst interface{}) error {
	if len(bytes.TrimSpace(r.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.body, dst); err != nil {
		return errBadBody
	}
	return nil
}

// Result is the response an Endpoint produces. Exactly one of Body or Text is written.
type Result struct {
	Status int
	Body   interface{}
	Text   string
}

// Endpoint handles one route.
type Endpoint func(req *Request) Result

// ServeHTTP adapts the endpoint to net/http.
func (e Endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		write(w, Msg(http.StatusBadRequest, "Invalid request body"))
		return
	}

	params := map[string]string{}
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			params[key] = rctx.URLParams.Values[i]
		}
	}

	write(w, e(NewRequest(r.Context(), r.Header, params, body)))
}

func write(w http.ResponseWriter, res Result) {
	if res.Body == nil {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(res.Status)
		io.WriteString(w, res.Text)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.Status)
	if err := json.NewEncoder(w).Encode(res.Body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response body")
	}
}

// OK returns a 200 JSON result.
func OK(body interface{}) Result {
	return Result{Status: http.StatusOK, Body: body}
}

// Msg returns a {"msg": ...} result.
func Msg(status int, msg string) Result {
	return Result{Status: status, Body: map[string]string{"msg": msg}}
}

// Errors returns a 400 {"errors": [...]} result.
func Errors(errs ...validation.FieldError) Result {
	return Result{Status: http.StatusBadRequest, Body: map[string][]validation.FieldError{"errors": errs}}
}

// ServerError logs err and returns the opaque 500 result.
func ServerError(err error, action string) Result {
	log.Error().Err(err).Msg(action)
	return Result{Status: http.StatusInternalServerError, Text: "server error"}
}

// bind decodes the body into dst and validates it. When ok is false the
// returned Result must be sent as is.
func bind(req *Request, dst interface{}) (res Result, ok bool) {
	if err := req.Decode(dst); err != nil {
		return Msg(http.StatusBadRequest, "Invalid request body"), false
	}
	errs, err := validation.Struct(dst)
	if err != nil {
		return ServerError(err, "Failed to validate request body"), false
	}
	if len(errs) > 0 {
		return Errors(errs...), false
	}
	return Result{}, true
}
