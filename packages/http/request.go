package http

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hitcli/hit/packages/config"
	"github.com/hitcli/hit/packages/cookie"
)

// Request is the wire-ready request description handed to the client.
// Header keys are lowercase; net/http canonicalizes them on the wire.
type Request struct {
	Method   string
	URL      string
	Headers  map[string]string
	Body     string // serialized body for the --data path
	FilePath string // multipart file upload for the --datafile path
	FileType string
	Stream   bool // ask the client for an unbuffered body stream
}

// HasBody reports whether the request carries any body at all.
func (r *Request) HasBody() bool {
	return r.Body != "" || r.FilePath != ""
}

// Builder assembles a Request from normalized configuration, applying the
// method-override, cookie-injection and header-layering rules.
type Builder struct {
	version string
	warn    func(format string, args ...any)
}

func NewBuilder(version string) *Builder {
	return &Builder{
		version: version,
		warn:    func(format string, args ...any) {},
	}
}

// SetWarnFunc installs the sink for warning-level notices (GET-with-body
// override, unreadable cookie jar).
func (b *Builder) SetWarnFunc(f func(format string, args ...any)) {
	b.warn = f
}

// Build produces the final request. Layering order, low to high: transport
// defaults, per-method defaults, the --type hint, -H headers, the cookie
// jar. Later layers overwrite identically-named keys.
func (b *Builder) Build(cfg *config.RequestConfig) (*Request, error) {
	req := &Request{
		Method:  cfg.Method,
		URL:     cfg.URL,
		Headers: make(map[string]string),
		Stream:  cfg.OutputFile != "",
	}

	if err := b.applyBody(req, cfg.Body); err != nil {
		return nil, err
	}

	// GET with a body is disallowed by convention; switch silently to POST.
	if req.HasBody() && req.Method == "GET" {
		req.Method = "POST"
		b.warn("request has a body, switching method from GET to POST")
	}

	for k, v := range b.defaultHeaders() {
		req.Headers[k] = v
	}
	for k, v := range methodDefaults(req) {
		req.Headers[k] = v
	}
	if cfg.ContentTypeHint != "" && req.Body != "" {
		req.Headers["content-type"] = config.ResolveContentType(cfg.ContentTypeHint)
	}
	for k, v := range cfg.Headers {
		req.Headers[k] = v
	}

	if cfg.CookieFile != "" {
		value, err := cookie.Load(cfg.CookieFile)
		if err != nil {
			b.warn("cannot read cookie file %s: %v", cfg.CookieFile, err)
		} else if value != "" {
			req.Headers["cookie"] = value
		}
	}

	return req, nil
}

func (b *Builder) applyBody(req *Request, body *config.Body) error {
	if body == nil {
		return nil
	}

	switch body.Kind {
	case config.BodyNone:
	case config.BodyJSON:
		req.Body = body.Raw
	case config.BodyForm:
		encoded, err := json.Marshal(body.Form)
		if err != nil {
			return fmt.Errorf("cannot encode body: %w", err)
		}
		req.Body = string(encoded)
	case config.BodyFile:
		req.FilePath = body.FilePath
		req.FileType = body.FileType
	default:
		return fmt.Errorf("unknown body kind %d", body.Kind)
	}
	return nil
}

// defaultHeaders is the lowest-priority layer, attached to every request.
func (b *Builder) defaultHeaders() map[string]string {
	return map[string]string{
		"user-agent":   "hit/" + b.version,
		"x-request-id": uuid.New().String(),
	}
}

// methodDefaults is the middle layer. Bodied data requests default to JSON
// since both --data forms serialize to JSON; the multipart path sets its
// own content type when the body is built.
func methodDefaults(req *Request) map[string]string {
	headers := make(map[string]string)
	switch req.Method {
	case "GET", "HEAD", "DELETE":
		headers["accept"] = "*/*"
	case "POST", "PUT", "PATCH":
		headers["accept"] = "*/*"
		if req.Body != "" {
			headers["content-type"] = "application/json"
		}
	}
	return headers
}
