package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	msgNetworkError     = "network error, please check your connection"
	msgMalformedReply   = "unexpected response from server"
	msgRequestBuildFail = "failed to build request"
)

// TokenSource returns the bearer token to attach to outbound requests, or ""
// when the request should go out unauthenticated.
type TokenSource func(ctx context.Context) string

type Client struct {
	baseURL    string
	token      TokenSource
	httpClient *http.Client
	log        zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, token TokenSource, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// Do sends a JSON request and normalizes whatever comes back into an
// Envelope. Server-provided envelopes on HTTP error statuses are forwarded
// verbatim; everything else collapses into a synthetic envelope.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}) Envelope {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.log.Error().Err(err).Str("path", path).Msg("encode request body")
			return syntheticEnvelope(msgRequestBuildFail)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		c.log.Error().Err(err).Str("path", path).Msg("build request")
		return syntheticEnvelope(msgRequestBuildFail)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.send(req)
}

// Get sends a GET request with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values) Envelope {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		c.log.Error().Err(err).Str("path", path).Msg("build request")
		return syntheticEnvelope(msgRequestBuildFail)
	}

	return c.send(req)
}

// Upload sends file as a multipart form under the given field name.
func (c *Client) Upload(ctx context.Context, path, field, filename string, file io.Reader) Envelope {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		c.log.Error().Err(err).Str("path", path).Msg("create multipart form")
		return syntheticEnvelope(msgRequestBuildFail)
	}
	if _, err := io.Copy(part, file); err != nil {
		c.log.Error().Err(err).Str("path", path).Msg("copy upload body")
		return syntheticEnvelope(msgRequestBuildFail)
	}
	if err := writer.Close(); err != nil {
		return syntheticEnvelope(msgRequestBuildFail)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return syntheticEnvelope(msgRequestBuildFail)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.send(req)
}

func (c *Client) send(req *http.Request) Envelope {
	if c.token != nil {
		if token := c.token(req.Context()); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Msg("transport failure")
		return syntheticEnvelope(msgNetworkError)
	}
	defer resp.Body.Close()

	var envelope Envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&envelope)

	c.log.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("backend request")

	if decodeErr != nil {
		// An error status without a readable envelope is indistinguishable
		// from a broken upstream, report both the same way.
		c.log.Warn().Err(decodeErr).
			Str("url", req.URL.String()).
			Int("status", resp.StatusCode).
			Msg("undecodable response body")
		return syntheticEnvelope(msgMalformedReply)
	}

	// The server's envelope is authoritative, error statuses included. Its
	// code and message must reach the caller unmodified.
	return envelope
}

func syntheticEnvelope(message string) Envelope {
	return Envelope{
		Success: false,
		Code:    0,
		Message: message,
	}
}
