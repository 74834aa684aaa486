// Package client is a Go client for the PatoApp HTTP API.
package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/atinyakov/PatoApp/internal/models"
	"github.com/atinyakov/PatoApp/internal/service"
)

// API paths.
const (
	apiRegister = "/api/register"
	apiLogin    = "/api/login"
	apiLogout   = "/api/logout"
	apiMe       = "/api/me"
	apiPlan     = "/api/plan"
	apiPlans    = "/api/plans"
	apiCheckout = "/api/checkout"
	apiPatos    = "/api/patos"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Message    string
	// Fields holds per-field validation problems, if the server sent any.
	Fields map[string]string
}

func (e *StatusError) Error() string {
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for k, v := range e.Fields {
			parts = append(parts, k+": "+v)
		}
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, strings.Join(parts, "; "))
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// Client talks to a PatoApp server.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a Client for baseURL. The client keeps the session cookie
// set at login. When caFile is set, server certificates are verified
// against it instead of the system roots.
func New(baseURL, caFile string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	httpClient := &http.Client{Timeout: 10 * time.Second, Jar: jar}
	if caFile != "" {
		caCert, err := os.ReadFile(caFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		caPool := x509.NewCertPool()
		if !caPool.AppendCertsFromPEM(caCert) {
			return nil, errors.New("failed to parse CA cert")
		}
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{RootCAs: caPool, MinVersion: tls.VersionTLS12},
		}
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: httpClient}, nil
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, form service.RegistrationForm) error {
	return c.do(ctx, http.MethodPost, apiRegister, form, nil)
}

// Login starts a session and returns its account.
func (c *Client) Login(ctx context.Context, email, password string) (models.PublicUser, error) {
	var u models.PublicUser
	err := c.do(ctx, http.MethodPost, apiLogin, map[string]string{"email": email, "password": password}, &u)
	return u, err
}

// Logout ends the session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, apiLogout, nil, nil)
}

// Me returns the account of the active session.
func (c *Client) Me(ctx context.Context) (models.PublicUser, error) {
	var u models.PublicUser
	err := c.do(ctx, http.MethodGet, apiMe, nil, &u)
	return u, err
}

// UpdatePlan switches the session's plan without payment.
func (c *Client) UpdatePlan(ctx context.Context, plan models.Plan) (models.PublicUser, error) {
	var u models.PublicUser
	err := c.do(ctx, http.MethodPut, apiPlan, map[string]models.Plan{"plan": plan}, &u)
	return u, err
}

// Plans lists the subscription offers.
func (c *Client) Plans(ctx context.Context) ([]service.Offer, error) {
	var offers []service.Offer
	err := c.do(ctx, http.MethodGet, apiPlans, nil, &offers)
	return offers, err
}

// Checkout pays for the premium plan.
func (c *Client) Checkout(ctx context.Context, method service.PaymentMethod, card service.Card) (models.PublicUser, error) {
	var u models.PublicUser
	body := map[string]any{"method": method, "card": card}
	err := c.do(ctx, http.MethodPost, apiCheckout, body, &u)
	return u, err
}

// Search lists the catalog matching query and filters, sorted by name.
func (c *Client) Search(ctx context.Context, query string, filters models.SearchFilters) ([]models.Pato, error) {
	v := url.Values{}
	for k, val := range map[string]string{
		"q":       query,
		"group":   filters.Group,
		"habitat": filters.Habitat,
		"diet":    filters.Diet,
	} {
		if val != "" {
			v.Set(k, val)
		}
	}
	path := apiPatos
	if len(v) > 0 {
		path += "?" + v.Encode()
	}

	var patos []models.Pato
	err := c.do(ctx, http.MethodGet, path, nil, &patos)
	return patos, err
}

// Groups lists the distinct taxonomic groups.
func (c *Client) Groups(ctx context.Context) ([]string, error) {
	var groups []string
	err := c.do(ctx, http.MethodGet, apiPatos+"/groups", nil, &groups)
	return groups, err
}

// Get fetches one record.
func (c *Client) Get(ctx context.Context, id string) (models.Pato, error) {
	var p models.Pato
	err := c.do(ctx, http.MethodGet, patoPath(id), nil, &p)
	return p, err
}

// Sound fetches the call of a record. It requires a paid plan.
func (c *Client) Sound(ctx context.Context, id string) (string, error) {
	var s struct {
		Sound string `json:"sound"`
	}
	err := c.do(ctx, http.MethodGet, patoPath(id)+"/sound", nil, &s)
	return s.Sound, err
}

// Create adds a record. It requires the admin role.
func (c *Client) Create(ctx context.Context, in models.PatoInput) (models.Pato, error) {
	var p models.Pato
	err := c.do(ctx, http.MethodPost, apiPatos, in, &p)
	return p, err
}

// Update applies patch to a record. It requires the admin role.
func (c *Client) Update(ctx context.Context, id string, patch models.PatoPatch) (models.Pato, error) {
	var p models.Pato
	err := c.do(ctx, http.MethodPatch, patoPath(id), patch, &p)
	return p, err
}

// Delete removes a record. It requires the admin role.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, patoPath(id), nil, nil)
}

func patoPath(id string) string {
	return apiPatos + "/" + url.PathEscape(id)
}

// do sends body as JSON and decodes a 2xx response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, r)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readStatusError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func readStatusError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)
	se := &StatusError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}

	var fields struct {
		Errors map[string]string `json:"errors"`
	}
	if json.Unmarshal(data, &fields) == nil && len(fields.Errors) > 0 {
		se.Fields = fields.Errors
	}
	return se
}
