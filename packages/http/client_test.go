package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Do(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/test", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message": "hello"}`))
	}))
	defer server.Close()

	client := NewClient()
	resp, err := client.Do(&Request{
		Method:  "GET",
		URL:     server.URL + "/test",
		Headers: map[string]string{},
	})

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header("Content-Type"))
	assert.Contains(t, resp.BodyString(), "hello")
	assert.Nil(t, resp.Stream)
}

func TestClient_Do_PostBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"name":"alice"}`, string(body))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient()
	resp, err := client.Do(&Request{
		Method: "POST",
		URL:    server.URL,
		Headers: map[string]string{
			"content-type": "application/json",
		},
		Body: `{"name":"alice"}`,
	})

	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
}

func TestClient_Do_StreamMode(t *testing.T) {
	payload := []byte("streamed bytes, not buffered")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	client := NewClient()
	resp, err := client.Do(&Request{
		Method:  "GET",
		URL:     server.URL,
		Headers: map[string]string{},
		Stream:  true,
	})

	require.NoError(t, err)
	require.NotNil(t, resp.Stream)
	assert.Nil(t, resp.Body)

	got, err := io.ReadAll(resp.Stream)
	require.NoError(t, err)
	require.NoError(t, resp.Stream.Close())
	assert.Equal(t, payload, got)
}

func TestClient_Do_MultipartFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "upload.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":1}`), 0o644))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "upload.json", header.Filename)
		assert.Contains(t, header.Header.Get("Content-Type"), "application/json")

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, string(content))

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient()
	resp, err := client.Do(&Request{
		Method:   "POST",
		URL:      server.URL,
		Headers:  map[string]string{},
		FilePath: path,
		FileType: "application/json",
	})

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestClient_Do_MissingFile(t *testing.T) {
	client := NewClient()
	_, err := client.Do(&Request{
		Method:   "POST",
		URL:      "http://localhost:1",
		Headers:  map[string]string{},
		FilePath: filepath.Join(t.TempDir(), "absent.bin"),
		FileType: "application/octet-stream",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read data file")
}

func TestClient_DefaultHeadersBelowRequestHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "override", r.Header.Get("X-Team"))
		assert.Equal(t, "kept", r.Header.Get("X-Extra"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(WithDefaultHeaders(map[string]string{
		"x-team":  "default",
		"x-extra": "kept",
	}))
	resp, err := client.Do(&Request{
		Method:  "GET",
		URL:     server.URL,
		Headers: map[string]string{"x-team": "override"},
	})

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestClient_WithTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(WithTimeout(50 * time.Millisecond))
	_, err := client.Do(&Request{
		Method:  "GET",
		URL:     server.URL,
		Headers: map[string]string{},
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "deadline")
}

func TestClient_FollowRedirects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/final" {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("final"))
			return
		}
		http.Redirect(w, r, "/final", http.StatusFound)
	}))
	defer server.Close()

	client := NewClient()
	resp, err := client.Do(&Request{
		Method:  "GET",
		URL:     server.URL + "/redirect",
		Headers: map[string]string{},
	})

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "final", resp.BodyString())
}

func TestResponse_SetCookies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Set-Cookie", "a=1; Path=/")
		w.Header().Add("Set-Cookie", "b=2")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient()
	resp, err := client.Do(&Request{
		Method:  "GET",
		URL:     server.URL,
		Headers: map[string]string{},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"a=1; Path=/", "b=2"}, resp.SetCookies())
}

func TestResponse_IsSuccess(t *testing.T) {
	tests := []struct {
		statusCode int
		expected   bool
	}{
		{200, true},
		{204, true},
		{299, true},
		{300, false},
		{404, false},
		{500, false},
	}

	for _, tt := range tests {
		resp := &Response{StatusCode: tt.statusCode}
		assert.Equal(t, tt.expected, resp.IsSuccess(), "StatusCode: %d", tt.statusCode)
	}
}
