// Package alerts owns the in-memory active-alert sequence behind a staff
// dashboard and every transition on it. An alert leaves the sequence exactly
// once, by acknowledgment, and only after the backend confirmed it.
package alerts

import (
	"context"
	"errors"
	"strings"
	"sync"

	"carewatch/internal/model"
)

// Severity buckets alert categories for display. Unknown categories read as
// informational, never as an error.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityCritical
)

// Classify matches the category case-insensitively against the known set.
func Classify(alertType string) Severity {
	switch strings.ToUpper(alertType) {
	case "HIGH_RISK", "CRITICAL":
		return SeverityCritical
	case "WARNING":
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

// API is the slice of the gateway client the manager needs.
type API interface {
	Alerts(ctx context.Context) ([]model.AlertView, error)
	Patients(ctx context.Context) ([]model.PatientSummary, error)
	AcknowledgeAlert(ctx context.Context, id int) error
}

type Manager struct {
	api API

	mu       sync.Mutex
	alerts   []model.AlertView
	patients []model.PatientSummary
	loading  bool
}

func NewManager(api API) *Manager { return &Manager{api: api} }

// Load fetches the active alerts and the patient panel concurrently and
// replaces the local copies with whatever the server returned (last
// successful load wins, no merging). Both requests are always allowed to
// settle; results that did arrive are kept even when the other request
// failed, and the failure is surfaced to the caller.
func (m *Manager) Load(ctx context.Context) error {
	m.setLoading(true)
	defer m.setLoading(false)

	var (
		wg          sync.WaitGroup
		alerts      []model.AlertView
		patients    []model.PatientSummary
		alertErr    error
		patientsErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		alerts, alertErr = m.api.Alerts(ctx)
	}()
	go func() {
		defer wg.Done()
		patients, patientsErr = m.api.Patients(ctx)
	}()
	wg.Wait()

	m.mu.Lock()
	if alertErr == nil {
		m.alerts = alerts
	}
	if patientsErr == nil {
		m.patients = patients
	}
	m.mu.Unlock()

	return errors.Join(alertErr, patientsErr)
}

// Loading reports whether a Load is in flight; the dashboard must not treat
// the current data as final while it is.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

// Alerts returns a copy of the active sequence in server order.
func (m *Manager) Alerts() []model.AlertView {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.AlertView(nil), m.alerts...)
}

func (m *Manager) Patients() []model.PatientSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.PatientSummary(nil), m.patients...)
}

// ActiveCount is the size of the unfiltered active sequence.
func (m *Manager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.alerts)
}

// Filter is a non-destructive view over the loaded sequence. "all" (or the
// empty string) is the identity; anything else selects alerts whose category
// matches case-insensitively. Server order is preserved.
func (m *Manager) Filter(category string) []model.AlertView {
	m.mu.Lock()
	defer m.mu.Unlock()
	if category == "" || strings.EqualFold(category, "all") {
		return append([]model.AlertView(nil), m.alerts...)
	}
	out := make([]model.AlertView, 0, len(m.alerts))
	for _, a := range m.alerts {
		if strings.EqualFold(a.AlertType, category) {
			out = append(out, a)
		}
	}
	return out
}

// Acknowledge retires one alert. The local sequence is only mutated after
// the backend confirms; a failed call leaves it untouched. Acknowledging an
// id that is no longer present removes nothing.
func (m *Manager) Acknowledge(ctx context.Context, id int) error {
	if err := m.api.AcknowledgeAlert(ctx, id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.alerts[:0]
	for _, a := range m.alerts {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	m.alerts = kept
	return nil
}
