// Package gateway is the single egress point for backend calls. It attaches
// the bearer token from the session store to every request and handles
// session invalidation in one place: a 401 clears the store, fires the
// registered auth-failure callback and fails the call, so no call site ever
// duplicates expiry handling.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"carewatch/internal/model"
	"carewatch/internal/session"
)

// ErrSessionExpired marks calls that failed because the backend rejected the
// session. By the time a caller sees it, the session store is already
// cleared and the auth-failure callback has run.
var ErrSessionExpired = errors.New("session expired")

// APIError carries a non-auth backend failure through to the caller with the
// server's message verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL       string
	http          *http.Client
	store         session.Store
	onAuthFailure func()
}

func New(baseURL string, store session.Store) *Client {
	return &Client{baseURL: baseURL, http: &http.Client{}, store: store}
}

// OnAuthFailure registers the callback run when any response signals an
// invalid session, after the store has been cleared. Typically it navigates
// back to the login entry point.
func (c *Client) OnAuthFailure(fn func()) { c.onAuthFailure = fn }

// Login authenticates and, on success, replaces the stored session.
func (c *Client) Login(ctx context.Context, username, password string) (*model.LoginResponse, error) {
	var resp model.LoginResponse
	body := model.LoginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/login", body, &resp); err != nil {
		return nil, err
	}
	s := session.Session{Token: resp.Token, Role: resp.Role}
	if resp.PatientID != nil {
		s.PatientID = *resp.PatientID
	}
	if resp.DoctorID != nil {
		s.DoctorID = *resp.DoctorID
	}
	if err := c.store.Set(s); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, username, password, phone string) error {
	body := model.RegisterRequest{Username: username, Password: password, Phone: phone}
	return c.do(ctx, http.MethodPost, "/api/register", body, nil)
}

// Logout clears the local session. The backend keeps no session state.
func (c *Client) Logout() error { return c.store.Clear() }

func (c *Client) Alerts(ctx context.Context) ([]model.AlertView, error) {
	var out []model.AlertView
	if err := c.do(ctx, http.MethodGet, "/api/alerts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AcknowledgeAlert(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/alerts/%d/acknowledge", id), nil, nil)
}

func (c *Client) Patients(ctx context.Context) ([]model.PatientSummary, error) {
	var out []model.PatientSummary
	if err := c.do(ctx, http.MethodGet, "/api/patients", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Conversations(ctx context.Context, patientID int) ([]model.Conversation, error) {
	var out []model.Conversation
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/patients/%d/conversations", patientID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PainTrend(ctx context.Context, patientID int) ([]model.PainPoint, error) {
	var out []model.PainPoint
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/patients/%d/pain-trend", patientID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) HospitalStats(ctx context.Context) (*model.HospitalStats, error) {
	var out model.HospitalStats
	if err := c.do(ctx, http.MethodGet, "/api/hospital/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.store.Get().Token; token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusUnauthorized {
		c.store.Clear()
		if c.onAuthFailure != nil {
			c.onAuthFailure()
		}
		// Keep the server's message so a failed login still reads well.
		return fmt.Errorf("%s: %w", errorMessage(data), ErrSessionExpired)
	}

	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(data)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func errorMessage(data []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &e) == nil && e.Error != "" {
		return e.Error
	}
	return string(data)
}
