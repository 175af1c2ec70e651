// Package client is a typed Go client for the profile API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultBaseURL is used when New gets an empty base URL.
const DefaultBaseURL = "http://localhost:5000/api"

// ErrUnauthorized wraps every 401; the stored session has been cleared by
// then and the caller should log in again. errors.As still yields the
// *APIError with the server message.
var ErrUnauthorized = errors.New("client: not authorized")

// APIError carries a non-2xx response.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	http       *http.Client
	store      TokenStore
	retryUntil time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the default client (15s timeout).
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithRetry retries GET requests on network errors and 5xx responses with
// exponential backoff, for at most d in total. Zero disables retries.
func WithRetry(d time.Duration) Option { return func(c *Client) { c.retryUntil = d } }

// New returns a client for baseURL that keeps its session in store.
// A nil store means a MemoryStore.
func New(baseURL string, store TokenStore, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if store == nil {
		store = NewMemoryStore()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		store:   store,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Session returns the stored session, or nil.
func (c *Client) Session() (*Session, error) { return c.store.Load() }

// Logout forgets the stored session.
func (c *Client) Logout() error { return c.store.Clear() }

type authResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      UserSummary `json:"user"`
}

func (c *Client) Register(ctx context.Context, in RegisterRequest) (*UserSummary, error) {
	return c.authenticate(ctx, "/auth/register", in)
}

func (c *Client) Login(ctx context.Context, email, password string) (*UserSummary, error) {
	return c.authenticate(ctx, "/auth/login", map[string]string{"email": email, "password": password})
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*UserSummary, error) {
	var out authResponse
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	s := &Session{Token: out.Token, ExpiresAt: out.ExpiresAt, UserID: out.User.ID}
	if err := c.store.Save(s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &out.User, nil
}

type userResponse struct {
	User User `json:"user"`
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	return c.user(ctx, http.MethodGet, "/auth/me", nil)
}

func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	body := map[string]string{"currentPassword": current, "newPassword": next}
	return c.do(ctx, http.MethodPut, "/auth/password", body, nil)
}

func (c *Client) UpdateProfile(ctx context.Context, in ProfileUpdate) (*User, error) {
	return c.user(ctx, http.MethodPut, "/profile", in)
}

func (c *Client) AddEducation(ctx context.Context, e Education) (*User, error) {
	e.ID = ""
	return c.user(ctx, http.MethodPost, "/profile/education", e)
}

func (c *Client) UpdateEducation(ctx context.Context, id string, e Education) (*User, error) {
	e.ID = ""
	return c.user(ctx, http.MethodPut, "/profile/education/"+url.PathEscape(id), e)
}

func (c *Client) DeleteEducation(ctx context.Context, id string) (*User, error) {
	return c.user(ctx, http.MethodDelete, "/profile/education/"+url.PathEscape(id), nil)
}

func (c *Client) AddWorkExperience(ctx context.Context, w WorkExperience) (*User, error) {
	w.ID = ""
	return c.user(ctx, http.MethodPost, "/profile/work-experience", w)
}

func (c *Client) UpdateWorkExperience(ctx context.Context, id string, w WorkExperience) (*User, error) {
	w.ID = ""
	return c.user(ctx, http.MethodPut, "/profile/work-experience/"+url.PathEscape(id), w)
}

func (c *Client) DeleteWorkExperience(ctx context.Context, id string) (*User, error) {
	return c.user(ctx, http.MethodDelete, "/profile/work-experience/"+url.PathEscape(id), nil)
}

func (c *Client) UpdateSettings(ctx context.Context, in SettingsUpdate) (*User, error) {
	return c.user(ctx, http.MethodPut, "/profile/settings", in)
}

// UploadAvatar sends r as the "avatar" multipart field.
func (c *Client) UploadAvatar(ctx context.Context, filename string, r io.Reader) (*User, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("avatar", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/profile/avatar", &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	var out userResponse
	if err := c.send(req, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// SearchUsers lists public profiles matching query; size <= 0 uses the
// server default.
func (c *Client) SearchUsers(ctx context.Context, query string, size int) ([]PublicProfile, error) {
	q := url.Values{}
	if query != "" {
		q.Set("q", query)
	}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	path := "/users/search"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}
	var out struct {
		Users []PublicProfile `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// Health returns the reported server status.
func (c *Client) Health(ctx context.Context) (string, error) {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

func (c *Client) user(ctx context.Context, method, path string, body any) (*User, error) {
	var out userResponse
	if err := c.do(ctx, method, path, body, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = b
	}

	attempt := func() error {
		var rd io.Reader
		if payload != nil {
			rd = bytes.NewReader(payload)
		}
		req, err := c.newRequest(ctx, method, path, rd, "application/json")
		if err != nil {
			return backoff.Permanent(err)
		}
		return c.send(req, out)
	}
	if method != http.MethodGet || c.retryUntil <= 0 {
		return attempt()
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxElapsedTime = c.retryUntil
	return backoff.Retry(func() error {
		err := attempt()
		if err != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(b, ctx))
}

func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500
	}
	return !errors.Is(err, ErrUnauthorized) && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	s, err := c.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if s != nil && s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}
	return req, nil
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func (c *Client) send(req *http.Request, out any) error {
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{Status: res.StatusCode}
		var env envelope
		if json.Unmarshal(b, &env) == nil {
			apiErr.Message, apiErr.Fields = env.Message, env.Errors
		}
		if res.StatusCode == http.StatusUnauthorized {
			if err := c.store.Clear(); err != nil {
				return fmt.Errorf("clear session: %w", err)
			}
			return fmt.Errorf("%w: %w", ErrUnauthorized, apiErr)
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
