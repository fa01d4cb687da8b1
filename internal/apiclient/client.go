// Package apiclient talks to the shop's REST API on behalf of the admin console.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
)

// API is the surface used by the entity services.
type API interface {
	Get(ctx context.Context, op, path string, out any) error
	Send(ctx context.Context, op, method, path string, body, out any) error
	SendMultipart(ctx context.Context, op, method, path string, form Multipart, out any) error
	Delete(ctx context.Context, op, path string) error
}

// Observer receives one call per upstream request.
type Observer interface {
	ObserveUpstream(op string, status int, elapsed time.Duration)
}

type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Logger   *slog.Logger
	Observer Observer
	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	observer   Observer
}

func New(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 15 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: hc,
		logger:     logger,
		observer:   cfg.Observer,
	}
}

// FormField is one ordered text part of a multipart body.
type FormField struct {
	Name  string
	Value string
}

// File is an in-memory file part.
type File struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

type Multipart struct {
	Fields []FormField
	Files  []File
}

func (c *Client) Get(ctx context.Context, op, path string, out any) error {
	return c.do(ctx, op, http.MethodGet, path, nil, "", out)
}

func (c *Client) Send(ctx context.Context, op, method, path string, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: marshal request: %w", op, err)
	}
	return c.do(ctx, op, method, path, bytes.NewReader(b), "application/json", out)
}

func (c *Client) SendMultipart(ctx context.Context, op, method, path string, form Multipart, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range form.Fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return fmt.Errorf("%s: write field %s: %w", op, f.Name, err)
		}
	}
	for _, f := range form.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.Filename))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return fmt.Errorf("%s: create part %s: %w", op, f.Field, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return fmt.Errorf("%s: write part %s: %w", op, f.Field, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%s: close multipart: %w", op, err)
	}
	return c.do(ctx, op, method, path, &buf, w.FormDataContentType(), out)
}

func (c *Client) Delete(ctx context.Context, op, path string) error {
	return c.do(ctx, op, http.MethodDelete, path, nil, "", nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	for _, ck := range cookiesFrom(ctx) {
		req.AddCookie(ck)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(ctx, op, 0, start)
		c.logger.LogAttrs(ctx, slog.LevelError, "upstream_unreachable",
			slog.String("op", op),
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("err", err),
		)
		return fmt.Errorf("%s: send request: %w", op, err)
	}
	defer resp.Body.Close()
	c.observe(ctx, op, resp.StatusCode, start)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newError(op, resp.StatusCode, respBody)
		c.logger.LogAttrs(ctx, slog.LevelWarn, "upstream_failed",
			slog.String("op", op),
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("message", apiErr.Message),
		)
		return apiErr
	}

	// 204 and empty bodies are successful no-content results.
	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func (c *Client) observe(ctx context.Context, op string, status int, start time.Time) {
	elapsed := time.Since(start)
	if t := traceFrom(ctx); t != nil {
		t.record(status, elapsed)
	}
	if c.observer != nil {
		c.observer.ObserveUpstream(op, status, elapsed)
	}
}

// PathID escapes an identifier for use in a path segment.
func PathID(prefix, id string) string {
	return strings.TrimRight(prefix, "/") + "/" + url.PathEscape(id)
}
