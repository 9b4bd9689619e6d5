// Package api wraps HTTP access to the RMOS reservation services.
//
// Every data operation in rmosdesk is a POST of a JSON payload to a fixed
// endpoint, answered by an envelope of the shape
//
//	{ "value": T, "isSucceded": bool, "message": "..." }
//
// The wrapper attaches the bearer token, normalizes the error taxonomy
// (ErrUnauthorized, ErrNetwork, *HTTPError, *AppError) and owns the
// forced-logout reaction to a 401. Nothing else in the program reacts to
// session expiry.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hkaraca/rmosdesk/internal/logging"
)

// Endpoint paths, relative to their base URLs.
const (
	EndpointCreateToken   = "/security/createToken"
	EndpointBlacklistGet  = "/api/Kara/Getir_Kod"
	EndpointBlacklistSave = "/api/Kara/Ekle"
	EndpointForecast      = "/api/Procedure/StpRmforKlasik_2"
)

// TokenSource supplies the bearer token and supports the forced clear on 401.
// *session.Store satisfies it.
type TokenSource interface {
	Token() string
	Clear() bool
}

// Envelope is the response shape shared by all RMOS endpoints. Reads only
// populate Value; mutating calls also report IsSucceded and Message.
type Envelope struct {
	Value      json.RawMessage `json:"value"`
	IsSucceded bool            `json:"isSucceded"`
	Message    string          `json:"message"`
}

// Client is the HTTP client wrapper for the RMOS API.
type Client struct {
	httpClient *http.Client
	apiBase    string
	authBase   string
	tokens     TokenSource
	onExpired  func()
	log        logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport (tests use this).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSessionExpiredHook registers the single place that reacts to a 401:
// in the CLI it drops the user back to the logged-out prompt. The hook runs
// at most once per live session.
func WithSessionExpiredHook(fn func()) Option {
	return func(c *Client) { c.onExpired = fn }
}

// NewClient builds a Client for the given base URLs. tokens may be nil for
// unauthenticated use.
func NewClient(apiBase, authBase string, tokens TokenSource, log logging.Logger, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiBase:    apiBase,
		authBase:   authBase,
		tokens:     tokens,
		log:        log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type loginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Authenticate exchanges credentials for a bearer token. This is the only
// call made without an Authorization header.
func (c *Client) Authenticate(ctx context.Context, userName, password string) (string, error) {
	body, err := c.post(ctx, c.authBase+EndpointCreateToken, loginRequest{UserName: userName, Password: password}, false)
	if err != nil {
		return "", err
	}
	var lr loginResponse
	if err := json.Unmarshal(body, &lr); err != nil || lr.Token == "" {
		return "", &AppError{Message: "no token in response"}
	}
	return lr.Token, nil
}

// PostValue POSTs payload to an API endpoint and decodes the envelope's
// value into out. A 2xx response without a usable value is an *AppError.
func (c *Client) PostValue(ctx context.Context, endpoint string, payload any, out any) error {
	env, err := c.postEnvelope(ctx, endpoint, payload)
	if err != nil {
		return err
	}
	if len(env.Value) == 0 || string(env.Value) == "null" {
		return &AppError{Message: "no usable value in response"}
	}
	if err := json.Unmarshal(env.Value, out); err != nil {
		return fmt.Errorf("decode value: %w", err)
	}
	return nil
}

// PostCommand POSTs a mutating payload. A 2xx with isSucceded=false becomes
// an *AppError carrying the server message (or a generic fallback), so the
// caller can treat server-side rejection like any other failure.
func (c *Client) PostCommand(ctx context.Context, endpoint string, payload any) (*Envelope, error) {
	env, err := c.postEnvelope(ctx, endpoint, payload)
	if err != nil {
		return nil, err
	}
	if !env.IsSucceded {
		msg := env.Message
		if msg == "" {
			msg = "operation failed"
		}
		return nil, &AppError{Message: msg}
	}
	return env, nil
}

func (c *Client) postEnvelope(ctx context.Context, endpoint string, payload any) (*Envelope, error) {
	body, err := c.post(ctx, c.apiBase+endpoint, payload, true)
	if err != nil {
		return nil, err
	}
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &AppError{Message: "no usable value in response"}
	}
	return &env, nil
}

func (c *Client) post(ctx context.Context, url string, payload any, requiresAuth bool) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	if requiresAuth && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.log.Debug(ctx, "api request", "url", url, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	c.log.Debug(ctx, "api response", "url", url, "status", resp.StatusCode, "request_id", requestID)

	if resp.StatusCode == http.StatusUnauthorized {
		c.expireSession(ctx)
		return nil, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{Status: resp.StatusCode, Message: serverMessage(body)}
	}
	return body, nil
}

// expireSession clears the stored token and fires the expiry hook. The hook
// runs only when this request actually transitioned the session from present
// to absent, so overlapping 401s trigger it exactly once.
func (c *Client) expireSession(ctx context.Context) {
	if c.tokens == nil {
		return
	}
	if c.tokens.Clear() {
		c.log.Warn(ctx, "session expired, logging out")
		if c.onExpired != nil {
			c.onExpired()
		}
	}
}

func serverMessage(body []byte) string {
	var m struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &m); err != nil {
		return ""
	}
	return m.Message
}
