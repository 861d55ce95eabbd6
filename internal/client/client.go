// Package client is a Go client for the credit dispute REST API.
//
// The client keeps the token pair from Login or Register. When an
// authenticated call answers 401 it refreshes the pair once and retries the
// call once; a second 401 is returned to the caller.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"credit_backend/internal/api"
	authdto "credit_backend/internal/feature/auth/transport/http/dto"
	profiledto "credit_backend/internal/feature/creditprofile/transport/http/dto"
	disputedto "credit_backend/internal/feature/dispute/transport/http/dto"
	letterdto "credit_backend/internal/feature/letter/transport/http/dto"
	infrahttp "credit_backend/internal/platform/http"
)

// ErrNotAuthenticated is returned when an authenticated call is made before
// Login, Register or SetTokens.
var ErrNotAuthenticated = errors.New("client: not authenticated")

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Field      string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("api: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// DefaultTimeout bounds each request made with the client New builds when
// none is supplied.
const DefaultTimeout = 30 * time.Second

type Client struct {
	baseURL string
	hc      *http.Client

	mu      sync.Mutex
	access  string
	refresh string

	// refreshMu lets one caller rotate the pair while the rest wait for it.
	refreshMu sync.Mutex
}

// New creates a client for baseURL, e.g. "http://localhost:8080/api".
// A nil hc uses a client with DefaultTimeout.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = infrahttp.NewHTTPClient(DefaultTimeout)
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), hc: hc}
}

// SetTokens installs a token pair obtained elsewhere.
func (c *Client) SetTokens(access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.access, c.refresh = access, refresh
}

// Tokens returns the current token pair.
func (c *Client) Tokens() (access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.access, c.refresh
}

func (c *Client) Register(ctx context.Context, req authdto.RegisterReq) (*authdto.AuthRes, error) {
	return c.authenticate(ctx, "/auth/register", req)
}

func (c *Client) Login(ctx context.Context, email, password string) (*authdto.AuthRes, error) {
	return c.authenticate(ctx, "/auth/login", map[string]string{"email": email, "password": password})
}

// Refresh rotates the token pair with the stored refresh token.
func (c *Client) Refresh(ctx context.Context) (*authdto.AuthRes, error) {
	_, refresh := c.Tokens()
	if refresh == "" {
		return nil, ErrNotAuthenticated
	}
	return c.authenticate(ctx, "/auth/refresh", authdto.RefreshReq{RefreshToken: refresh})
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*authdto.AuthRes, error) {
	var res authdto.AuthRes
	if err := c.send(ctx, http.MethodPost, path, body, "", &res); err != nil {
		return nil, err
	}
	c.SetTokens(res.AccessToken, res.RefreshToken)
	return &res, nil
}

// Logout revokes every session server-side and forgets the local tokens.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return err
	}
	c.SetTokens("", "")
	return nil
}

func (c *Client) Profile(ctx context.Context) (*authdto.ProfileRes, error) {
	var res authdto.ProfileRes
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CreditProfile(ctx context.Context) (*profiledto.CreditProfileRes, error) {
	var res profiledto.CreditProfileEnvelope
	if err := c.do(ctx, http.MethodGet, "/credit-profile/me", nil, &res); err != nil {
		return nil, err
	}
	return &res.CreditProfile, nil
}

func (c *Client) RefreshCreditProfile(ctx context.Context) (*profiledto.CreditProfileRes, error) {
	var res profiledto.CreditProfileEnvelope
	if err := c.do(ctx, http.MethodPost, "/credit-profile/refresh", nil, &res); err != nil {
		return nil, err
	}
	return &res.CreditProfile, nil
}

func (c *Client) AllCreditProfiles(ctx context.Context) ([]profiledto.CreditProfileRes, error) {
	var res profiledto.CreditProfileListEnvelope
	if err := c.do(ctx, http.MethodGet, "/credit-profile/admin/all", nil, &res); err != nil {
		return nil, err
	}
	return res.CreditProfiles, nil
}

func (c *Client) CreateDispute(ctx context.Context, req disputedto.CreateDisputeReq) (*disputedto.DisputeRes, error) {
	return c.dispute(ctx, http.MethodPost, "/disputes/create", req)
}

func (c *Client) DisputeHistory(ctx context.Context) ([]disputedto.DisputeRes, error) {
	return c.disputes(ctx, "/disputes/history")
}

func (c *Client) Dispute(ctx context.Context, id string) (*disputedto.DisputeRes, error) {
	return c.dispute(ctx, http.MethodGet, "/disputes/"+id, nil)
}

func (c *Client) SubmitDispute(ctx context.Context, id string) (*disputedto.DisputeRes, error) {
	return c.dispute(ctx, http.MethodPut, "/disputes/"+id+"/submit", nil)
}

func (c *Client) UpdateDisputeStatus(ctx context.Context, id string, req disputedto.UpdateStatusReq) (*disputedto.DisputeRes, error) {
	return c.dispute(ctx, http.MethodPut, "/disputes/"+id+"/status", req)
}

func (c *Client) DeleteDispute(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/disputes/"+id, nil, nil)
}

func (c *Client) GenerateDisputeLetter(ctx context.Context, id string, req disputedto.GenerateLetterReq) (*disputedto.LetterEnvelope, error) {
	var res disputedto.LetterEnvelope
	if err := c.do(ctx, http.MethodPost, "/disputes/"+id+"/letter", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) AllDisputes(ctx context.Context) ([]disputedto.DisputeRes, error) {
	return c.disputes(ctx, "/disputes/admin/all")
}

func (c *Client) DisputeStats(ctx context.Context) (*disputedto.StatsRes, error) {
	var res disputedto.StatsEnvelope
	if err := c.do(ctx, http.MethodGet, "/disputes/admin/stats", nil, &res); err != nil {
		return nil, err
	}
	return &res.Stats, nil
}

func (c *Client) GenerateLetter(ctx context.Context, req letterdto.GenerateLetterReq) (*letterdto.GenerateLetterRes, error) {
	var res letterdto.GenerateLetterRes
	if err := c.do(ctx, http.MethodPost, "/ai/generate-letter", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) dispute(ctx context.Context, method, path string, body any) (*disputedto.DisputeRes, error) {
	var res disputedto.DisputeEnvelope
	if err := c.do(ctx, method, path, body, &res); err != nil {
		return nil, err
	}
	return &res.Dispute, nil
}

func (c *Client) disputes(ctx context.Context, path string) ([]disputedto.DisputeRes, error) {
	var res disputedto.DisputeListEnvelope
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res.Disputes, nil
}

// do performs an authenticated call with one refresh-and-retry on 401.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	access, _ := c.Tokens()
	if access == "" {
		return ErrNotAuthenticated
	}

	err := c.send(ctx, method, path, body, access, out)
	if StatusOf(err) != http.StatusUnauthorized {
		return err
	}

	fresh, rerr := c.refreshAfter(ctx, access)
	if rerr != nil {
		return err
	}
	return c.send(ctx, method, path, body, fresh, out)
}

// refreshAfter rotates the pair unless another call already replaced stale
// while this one waited, and returns the access token to retry with.
func (c *Client) refreshAfter(ctx context.Context, stale string) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if access, _ := c.Tokens(); access != stale && access != "" {
		return access, nil
	}
	res, err := c.Refresh(ctx)
	if err != nil {
		return "", err
	}
	return res.AccessToken, nil
}

func (c *Client) send(ctx context.Context, method, path string, body any, token string, out any) error {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Code: http.StatusText(resp.StatusCode)}
	var body api.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err == nil {
		if body.Error != "" {
			apiErr.Code = body.Error
		}
		apiErr.Message = body.Message
		apiErr.Field = body.Field
	}
	return apiErr
}
