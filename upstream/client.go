// Package upstream holds the HTTP clients for the remote backend services.
// They are thin relays: bearer auth, JSON in/out, and extraction of the
// server's "message" field for user-facing toasts. No domain logic lives here.
package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// TokenFunc supplies the current bearer token. Returning "" sends the request
// unauthenticated (the backend answers 401 and the session layer reacts).
type TokenFunc func() string

// APIError is a non-2xx upstream response. Message carries the server's own
// wording when the body had one; handlers prefer it over generic fallbacks.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream %d", e.StatusCode)
}

// ErrorMessage mirrors the client's `error.response?.data?.message || fallback`
// pattern: the server's message when present, the fallback otherwise.
func ErrorMessage(err error, fallback string) string {
	if apiErr, ok := err.(*APIError); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether err is an upstream 401.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusUnauthorized
}

// Client is the shared transport for one backend service.
type Client struct {
	baseURL string
	token   TokenFunc
	http    *http.Client
}

func New(baseURL string, token TokenFunc) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// do sends one request and decodes a JSON response into out (out may be nil).
func (c *Client) do(method, path string, headers map[string]string, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: extractMessage(data)}
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

// extractMessage pulls the server's error wording out of a failure body.
// Services answer either {"message": ...} or {"error": ...}.
func extractMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

// Get issues a GET and decodes the response into out.
func (c *Client) Get(path string, out any) error {
	return c.do(http.MethodGet, path, nil, "", nil, out)
}

// GetWithHeaders issues a GET with extra headers (the rider's internal routes).
func (c *Client) GetWithHeaders(path string, headers map[string]string, out any) error {
	return c.do(http.MethodGet, path, headers, "", nil, out)
}

// Send issues a JSON request with the given method. in may be nil for
// body-less PUTs (the status toggles).
func (c *Client) Send(method, path string, in, out any) error {
	return c.SendWithHeaders(method, path, nil, in, out)
}

// SendWithHeaders is Send plus extra headers.
func (c *Client) SendWithHeaders(method, path string, headers map[string]string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.do(method, path, headers, contentType, body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(path string, out any) error {
	return c.do(http.MethodDelete, path, nil, "", nil, out)
}

// PostMultipart uploads form fields plus one file under the exact field names
// the server expects (the file part is always named "file").
func (c *Client) PostMultipart(path string, fields map[string]string, fileName string, file io.Reader, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return err
		}
	}
	if file != nil {
		part, err := w.CreateFormFile("file", fileName)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, file); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.do(http.MethodPost, path, nil, w.FormDataContentType(), &buf, out)
}

// getList unwraps the services' inconsistent list envelopes: some answer
// {"<key>": [...]}, some a bare array. Mirrors `data.<key> || data || []`.
func (c *Client) getList(path, key string, out any) error {
	var raw json.RawMessage
	if err := c.Get(path, &raw); err != nil {
		return err
	}
	return decodeList(raw, key, out)
}

func decodeList(raw json.RawMessage, key string, out any) error {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(raw, &env); err == nil {
		if inner, ok := env[key]; ok {
			return json.Unmarshal(inner, out)
		}
		// Object without the expected key: treat as empty list.
		return nil
	}
	return json.Unmarshal(raw, out)
}
