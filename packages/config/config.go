package config

import (
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

// BodyKind identifies how a request body was supplied on the command line.
type BodyKind int

const (
	// BodyNone means no body was supplied.
	BodyNone BodyKind = iota
	// BodyJSON means the --data value parsed as strict JSON.
	BodyJSON
	// BodyForm means the --data value fell back to properties-style key=value lines.
	BodyForm
	// BodyFile means --datafile was supplied; sent as a multipart form file.
	BodyFile
)

// Body is the normalized request body. Exactly one representation is
// populated, selected by Kind.
type Body struct {
	Kind     BodyKind
	Raw      string            // original --data string (BodyJSON, BodyForm)
	JSON     any               // parsed value (BodyJSON)
	Form     map[string]string // properties mapping (BodyForm)
	FilePath string            // file to upload (BodyFile)
	FileType string            // inferred MIME type of FilePath (BodyFile)
}

// Proxy is a parsed proxy target.
type Proxy struct {
	Host     string
	Port     string
	Username string
	Password string
	URL      *url.URL
}

// Plaintext reports whether the proxy itself speaks plain HTTP.
func (p *Proxy) Plaintext() bool {
	return p != nil && p.URL.Scheme == "http"
}

// RequestConfig is the normalized form of all request-shaping CLI inputs.
type RequestConfig struct {
	Method          string
	URL             string
	Headers         map[string]string
	Body            *Body
	ContentTypeHint string
	Proxy           *Proxy
	CookieFile      string
	OutputFile      string
}

// ParseHeaders turns repeated -H arguments of the form "name=value" into a
// header map. A bare "name" maps to the empty string. Keys are lowercased
// before insertion so a later occurrence of the same name overwrites an
// earlier one regardless of spelling.
func ParseHeaders(args []string) map[string]string {
	headers := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, found := strings.Cut(arg, "=")
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if !found {
			headers[name] = ""
			continue
		}
		headers[name] = strings.TrimSpace(value)
	}
	return headers
}

// ParseData normalizes a --data string. Valid JSON is kept as-is along with
// its parsed value; anything else goes through the properties-style fallback.
func ParseData(data string) *Body {
	if data == "" {
		return &Body{Kind: BodyNone}
	}
	if gjson.Valid(data) {
		return &Body{
			Kind: BodyJSON,
			Raw:  data,
			JSON: gjson.Parse(data).Value(),
		}
	}
	return &Body{
		Kind: BodyForm,
		Raw:  data,
		Form: ParseProperties(data),
	}
}

// ParseProperties parses newline-separated key=value lines into a flat map.
// A literal backslash-newline is a line continuation and collapses to a
// single space before splitting. Keys and values are trimmed; a line with
// no "=" maps the whole trimmed line to "".
func ParseProperties(data string) map[string]string {
	data = strings.ReplaceAll(data, "\\\n", " ")
	result := make(map[string]string)
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if !found {
			result[key] = ""
			continue
		}
		result[key] = strings.TrimSpace(value)
	}
	return result
}

// ParseDataFile normalizes a --datafile argument. The file must exist before
// any network work starts; its content type is inferred from the extension.
func ParseDataFile(path string) (*Body, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read data file %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("data file %s is a directory", path)
	}

	fileType := mime.TypeByExtension(filepath.Ext(path))
	if fileType == "" {
		fileType = "application/octet-stream"
	}

	return &Body{
		Kind:     BodyFile,
		FilePath: path,
		FileType: fileType,
	}, nil
}

// contentTypes maps --type tokens to MIME types.
var contentTypes = map[string]string{
	"json": "application/json",
	"text": "text/plain",
	"html": "text/html",
	"xml":  "application/xml",
	"form": "application/x-www-form-urlencoded",
}

// ResolveContentType maps a --type token to a MIME type. Unknown tokens fall
// back to application/x-www-form-urlencoded.
func ResolveContentType(token string) string {
	if ct, ok := contentTypes[strings.ToLower(strings.TrimSpace(token))]; ok {
		return ct
	}
	return "application/x-www-form-urlencoded"
}

// NormalizeURL prefixes https:// when the target carries no recognized scheme.
func NormalizeURL(target string) string {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return target
	}
	return "https://" + target
}

// ParseProxy parses a proxy URL into host, port and optional credentials.
// A missing scheme defaults to http.
func ParseProxy(raw string) (*Proxy, error) {
	if raw == "" {
		return nil, nil
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy URL %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("proxy URL %q has no host", raw)
	}

	p := &Proxy{
		Host: u.Hostname(),
		Port: u.Port(),
		URL:  u,
	}
	if u.User != nil {
		p.Username = u.User.Username()
		p.Password, _ = u.User.Password()
	}
	return p, nil
}

// PlaintextProxyForTLS reports the plain-HTTP-proxy-to-HTTPS-target
// combination. The transport handles it natively; this exists for the
// verbose trace only.
func (c *RequestConfig) PlaintextProxyForTLS() bool {
	return c.Proxy.Plaintext() && strings.HasPrefix(c.URL, "https://")
}
