package http

import (
	"io"
	"strings"
	"time"
)

// Response is the transport adapter's result. Exactly one of Body or Stream
// is populated: Body when the response was buffered, Stream when the caller
// asked for stream mode (an output file was requested). Stream must be
// closed by the consumer.
type Response struct {
	StatusCode    int
	Status        string
	Headers       map[string][]string
	Body          []byte
	Stream        io.ReadCloser
	ContentLength int64
	Duration      time.Duration
}

func (r *Response) BodyString() string {
	return string(r.Body)
}

// Header returns the first value of a header, matched case-insensitively.
func (r *Response) Header(key string) string {
	for k, v := range r.Headers {
		if strings.EqualFold(k, key) && len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

// HeaderValues returns all values of a repeated header.
func (r *Response) HeaderValues(key string) []string {
	for k, v := range r.Headers {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return nil
}

// SetCookies returns the raw Set-Cookie values carried by the response.
func (r *Response) SetCookies() []string {
	return r.HeaderValues("Set-Cookie")
}

func (r *Response) ContentType() string {
	return r.Header("Content-Type")
}

func (r *Response) IsJSON() bool {
	return strings.Contains(r.ContentType(), "application/json")
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
