package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"carewatch/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerAttachedWhenTokenPresent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	store := session.NewMemStore()
	store.Set(session.Session{Token: "tok-123", Role: "doctor"})
	c := New(srv.URL, store)

	_, err := c.Alerts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestNoBearerWhenTokenAbsent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, session.NewMemStore())
	_, err := c.Alerts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestAuthFailureClearsSessionAndFiresCallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid or expired token"}`))
	}))
	defer srv.Close()

	store := session.NewMemStore()
	store.Set(session.Session{Token: "stale", Role: "doctor"})
	c := New(srv.URL, store)
	redirected := 0
	c.OnAuthFailure(func() { redirected++ })

	_, err := c.Alerts(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Contains(t, err.Error(), "invalid or expired token")
	assert.Equal(t, session.Session{}, store.Get(), "session must be cleared")
	assert.Equal(t, 1, redirected, "auth-failure callback must run exactly once")
}

func TestNonAuthErrorsPassThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"database down"}`))
	}))
	defer srv.Close()

	store := session.NewMemStore()
	store.Set(session.Session{Token: "tok", Role: "admin"})
	c := New(srv.URL, store)
	c.OnAuthFailure(func() { t.Fatal("callback must not fire for non-auth errors") })

	_, err := c.HospitalStats(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "database down", apiErr.Message)
	assert.True(t, store.Get().Authenticated(), "session must survive non-auth errors")
}

func TestLoginStoresSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/login", r.URL.Path)
		w.Write([]byte(`{"token":"jwt-abc","role":"doctor","patient_id":null,"doctor_id":4}`))
	}))
	defer srv.Close()

	store := session.NewMemStore()
	c := New(srv.URL, store)

	resp, err := c.Login(context.Background(), "drwho", "pw")
	require.NoError(t, err)
	assert.Equal(t, "doctor", resp.Role)

	got := store.Get()
	assert.Equal(t, session.Session{Token: "jwt-abc", Role: "doctor", DoctorID: 4}, got)
}

func TestLoginFailureSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid credentials"}`))
	}))
	defer srv.Close()

	store := session.NewMemStore()
	c := New(srv.URL, store)

	_, err := c.Login(context.Background(), "ghost", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	assert.False(t, store.Get().Authenticated())
}

func TestAcknowledgePostsToAlertPath(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	store := session.NewMemStore()
	store.Set(session.Session{Token: "tok", Role: "doctor"})
	c := New(srv.URL, store)

	require.NoError(t, c.AcknowledgeAlert(context.Background(), 42))
	assert.Equal(t, "/api/alerts/42/acknowledge", gotPath)
	assert.Equal(t, http.MethodPost, gotMethod)
}

func TestLogoutClearsStore(t *testing.T) {
	store := session.NewMemStore()
	store.Set(session.Session{Token: "tok", Role: "patient", PatientID: 9})
	c := New("http://unused", store)

	require.NoError(t, c.Logout())
	assert.Equal(t, session.Session{}, store.Get())
}

func TestErrorMessageFallsBackToBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`upstream timeout`))
	}))
	defer srv.Close()

	c := New(srv.URL, session.NewMemStore())
	_, err := c.Patients(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "upstream timeout", apiErr.Message)
}
