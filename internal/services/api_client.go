package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"soap-storefront/internal/config"
	"soap-storefront/internal/models"
)

// APIError is a non-2xx response from the backend
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// Is lets callers match status classes with errors.Is against the model sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case models.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case models.ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case models.ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case models.ErrInvalidInput:
		return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
	}
	return false
}

// UserMessage returns the server-supplied message when there is one,
// otherwise fallback. Used for toasts.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// APIClient talks JSON to the storefront REST backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	log        logrus.FieldLogger
}

// NewAPIClient creates a client for cfg.BaseURL. The transport is wrapped with
// otelhttp so trace context follows every backend call.
func NewAPIClient(cfg config.APIConfig, log logrus.FieldLogger) *APIClient {
	return &APIClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log,
	}
}

// NewAPIClientWithHTTPClient is used by tests to point at an httptest server
func NewAPIClientWithHTTPClient(baseURL string, httpClient *http.Client, log logrus.FieldLogger) *APIClient {
	return &APIClient{baseURL: baseURL, httpClient: httpClient, log: log}
}

// BaseURL returns the configured backend root
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

// whole marks a destination that must receive the full body, not its "data" member.
type whole struct{ v any }

type envelope struct {
	Data json.RawMessage `json:"data"`
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *APIClient) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, token, out)
}

// MultipartFile is one file part of a multipart request
type MultipartFile struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

func (c *APIClient) doMultipart(ctx context.Context, method, path, token string, fields map[string]string, files []MultipartFile, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to write field %s: %w", name, err)
		}
	}

	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.Filename))
		header.Set("Content-Type", f.ContentType)
		part, err := mw.CreatePart(header)
		if err != nil {
			return fmt.Errorf("failed to create file part: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return fmt.Errorf("failed to write file part: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.send(req, token, out)
}

func (c *APIClient) send(req *http.Request, token string, out any) error {
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrapf(err, "%s %s", req.Method, req.URL.Path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read %s %s response", req.Method, req.URL.Path)
	}

	c.log.WithFields(logrus.Fields{
		"api.method":   req.Method,
		"api.path":     req.URL.Path,
		"api.status":   resp.StatusCode,
		"api.duration": time.Since(start).String(),
	}).Debug("backend call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseAPIError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := decodeBody(data, out); err != nil {
		return pkgerrors.Wrapf(err, "failed to decode %s %s response", req.Method, req.URL.Path)
	}
	return nil
}

// decodeBody accepts both a bare payload and the {"success":..,"data":..} envelope.
func decodeBody(data []byte, out any) error {
	trimmed := bytes.TrimSpace(data)

	if w, ok := out.(whole); ok {
		return json.Unmarshal(trimmed, w.v)
	}

	if len(trimmed) > 0 && trimmed[0] == '{' {
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
			return json.Unmarshal(env.Data, out)
		}
	}

	return json.Unmarshal(trimmed, out)
}

func parseAPIError(status int, data []byte) error {
	apiErr := &APIError{StatusCode: status}
	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil {
		apiErr.Message = body.Message
		if apiErr.Message == "" {
			apiErr.Message = body.Error
		}
	}
	return apiErr
}

// getPage fetches a paginated admin list: {data: [...], pagination: {...}}
func getPage[T any](ctx context.Context, c *APIClient, path, token string, query url.Values) (*models.Page[T], error) {
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var page models.Page[T]
	if err := c.do(ctx, http.MethodGet, path, token, nil, whole{&page}); err != nil {
		return nil, err
	}
	if page.Data == nil {
		page.Data = []T{}
	}
	return &page, nil
}

// listQuery builds the common search/page/limit query, skipping empty values.
func listQuery(search string, page, limit int, extra map[string]string) url.Values {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	for k, v := range extra {
		if v != "" {
			q.Set(k, v)
		}
	}
	return q
}
