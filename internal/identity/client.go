package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/veridia/authgate/internal/logger"
)

// Config holds the identity-provider connection settings. APIKey
// authenticates the public credential endpoints; Credentials is the
// privileged blob attached as a bearer on administrative calls.
type Config struct {
	BaseURL     string `env:"IDENTITY_BASE_URL" envDefault:"https://identitytoolkit.googleapis.com"`
	ProjectID   string `env:"IDENTITY_PROJECT_ID"`
	APIKey      string `env:"IDENTITY_API_KEY"`
	Credentials string `env:"IDENTITY_CREDENTIALS"`
}

// Client talks to the identity provider's REST accounts API. No retries and
// no explicit deadlines beyond the transport's own; a failed call surfaces
// immediately.
type Client struct {
	baseURL     string
	apiKey      string
	credentials string
	httpClient  *http.Client
	logger      *slog.Logger
}

// ClientOption configures optional Client behavior.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithLogger attaches a logger for provider error bodies, which are never
// returned to callers.
func WithLogger(l *slog.Logger) ClientOption {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l.With(logger.Component("identity"))
		}
	}
}

// NewClient validates the configuration and returns a provider client.
func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: api key is required", ErrProvider)
	}

	c := &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      strings.TrimSpace(cfg.APIKey),
		credentials: strings.TrimSpace(cfg.Credentials),
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if c.baseURL == "" {
		c.baseURL = "https://identitytoolkit.googleapis.com"
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type signUpRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	DisplayName       string `json:"displayName,omitempty"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type lookupRequest struct {
	Email []string `json:"email"`
}

type updateRequest struct {
	LocalID     string `json:"localId"`
	Password    string `json:"password,omitempty"`
	DisableUser *bool  `json:"disableUser,omitempty"`
}

type accountPayload struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Disabled    bool   `json:"disabled"`
}

type lookupResponse struct {
	Users []accountPayload `json:"users"`
}

type providerError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateAccount provisions a password account.
func (c *Client) CreateAccount(ctx context.Context, email, password, displayName string) (Account, error) {
	var resp accountPayload
	err := c.post(ctx, "accounts:signUp", false, signUpRequest{
		Email:       email,
		Password:    password,
		DisplayName: displayName,
	}, &resp)
	if err != nil {
		return Account{}, err
	}
	if resp.LocalID == "" {
		return Account{}, fmt.Errorf("%w: response missing account id", ErrProvider)
	}
	return Account{ID: resp.LocalID, Email: email, DisplayName: displayName}, nil
}

// VerifyPassword delegates the credential check to the provider.
func (c *Client) VerifyPassword(ctx context.Context, email, password string) (Account, error) {
	var resp accountPayload
	err := c.post(ctx, "accounts:signInWithPassword", false, signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}, &resp)
	if err != nil {
		return Account{}, err
	}
	if resp.LocalID == "" {
		return Account{}, fmt.Errorf("%w: response missing account id", ErrProvider)
	}
	if resp.Email == "" {
		resp.Email = email
	}
	return Account{ID: resp.LocalID, Email: resp.Email, DisplayName: resp.DisplayName}, nil
}

// LookupByEmail resolves an account through the administrative lookup
// endpoint.
func (c *Client) LookupByEmail(ctx context.Context, email string) (Account, error) {
	var resp lookupResponse
	if err := c.post(ctx, "accounts:lookup", true, lookupRequest{Email: []string{email}}, &resp); err != nil {
		return Account{}, err
	}
	if len(resp.Users) == 0 {
		return Account{}, ErrNotFound
	}
	u := resp.Users[0]
	return Account{ID: u.LocalID, Email: u.Email, DisplayName: u.DisplayName, Disabled: u.Disabled}, nil
}

// SetDisabled flips the account's active flag. Repeating the call with the
// same value is a no-op upstream.
func (c *Client) SetDisabled(ctx context.Context, id string, disabled bool) error {
	return c.post(ctx, "accounts:update", true, updateRequest{
		LocalID:     id,
		DisableUser: &disabled,
	}, &accountPayload{})
}

// SetPassword overwrites the account credential.
func (c *Client) SetPassword(ctx context.Context, id, newPassword string) error {
	return c.post(ctx, "accounts:update", true, updateRequest{
		LocalID:  id,
		Password: newPassword,
	}, &accountPayload{})
}

func (c *Client) post(ctx context.Context, endpoint string, privileged bool, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return errors.Join(ErrProvider, err)
	}

	url := fmt.Sprintf("%s/v1/%s?key=%s", c.baseURL, endpoint, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.Join(ErrProvider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if privileged && c.credentials != "" {
		req.Header.Set("Authorization", "Bearer "+c.credentials)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Join(ErrProvider, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		var perr providerError
		_ = json.Unmarshal(raw, &perr)
		mapped := mapProviderCode(perr.Error.Message)

		c.logger.DebugContext(ctx, "identity provider rejected request",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
			slog.String("code", perr.Error.Message),
		)

		if mapped != nil {
			return mapped
		}
		return fmt.Errorf("%w: status %d", ErrProvider, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Join(ErrProvider, err)
	}
	return nil
}

// mapProviderCode translates the provider's error codes into sentinel
// errors. Messages arrive either bare ("EMAIL_EXISTS") or with a detail
// suffix ("WEAK_PASSWORD : ..."), so matching is on the leading token.
func mapProviderCode(message string) error {
	code := message
	if idx := strings.IndexAny(code, " :"); idx > 0 {
		code = code[:idx]
	}

	switch code {
	case "EMAIL_EXISTS":
		return ErrDuplicateEmail
	case "EMAIL_NOT_FOUND":
		return ErrNotFound
	case "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
		return ErrBadCredentials
	case "USER_DISABLED":
		return ErrAccountDisabled
	case "PASSWORD_LOGIN_DISABLED", "OPERATION_NOT_ALLOWED":
		return ErrMethodDisabled
	case "INVALID_EMAIL", "MISSING_PASSWORD", "MISSING_EMAIL", "WEAK_PASSWORD":
		return ErrInvalidInput
	case "USER_NOT_FOUND":
		return ErrNotFound
	default:
		return nil
	}
}
