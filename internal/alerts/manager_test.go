package alerts

import (
	"context"
	"errors"
	"testing"

	"carewatch/internal/model"
)

// fakeAPI stubs the gateway slice the manager depends on.
type fakeAPI struct {
	alerts      []model.AlertView
	patients    []model.PatientSummary
	alertErr    error
	patientsErr error
	ackErr      error
	acked       []int
}

func (f *fakeAPI) Alerts(ctx context.Context) ([]model.AlertView, error) {
	return f.alerts, f.alertErr
}

func (f *fakeAPI) Patients(ctx context.Context) ([]model.PatientSummary, error) {
	return f.patients, f.patientsErr
}

func (f *fakeAPI) AcknowledgeAlert(ctx context.Context, id int) error {
	if f.ackErr != nil {
		return f.ackErr
	}
	f.acked = append(f.acked, id)
	return nil
}

func sampleAlerts() []model.AlertView {
	return []model.AlertView{
		{ID: 1, Name: "Ada Okafor", AlertType: "HIGH_RISK", Reason: "severe pain"},
		{ID: 2, Name: "Ben Ito", AlertType: "WARNING", Reason: "mild fever"},
		{ID: 3, Name: "Cara Voss", AlertType: "HIGH_RISK", Reason: "wound redness"},
	}
}

func loadedManager(t *testing.T, api *fakeAPI) *Manager {
	t.Helper()
	m := NewManager(api)
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return m
}

func TestLoadReplacesSequence(t *testing.T) {
	api := &fakeAPI{
		alerts:   sampleAlerts(),
		patients: []model.PatientSummary{{ID: 10, Name: "Ada Okafor", IsActive: true}},
	}
	m := loadedManager(t, api)

	if m.ActiveCount() != 3 {
		t.Fatalf("active count = %d, want 3", m.ActiveCount())
	}
	if m.Loading() {
		t.Fatal("loading must be false once the join completes")
	}
	if len(m.Patients()) != 1 {
		t.Fatalf("patients = %d, want 1", len(m.Patients()))
	}

	// A later load wins outright, no merging with stale data.
	api.alerts = sampleAlerts()[:1]
	if err := m.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if m.ActiveCount() != 1 {
		t.Fatalf("after reload active count = %d, want 1", m.ActiveCount())
	}
}

func TestLoadPartialFailure(t *testing.T) {
	boom := errors.New("alerts endpoint down")
	api := &fakeAPI{
		alertErr: boom,
		patients: []model.PatientSummary{{ID: 10, Name: "Ada Okafor"}},
	}
	m := NewManager(api)

	err := m.Load(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("load error = %v, want wrapped %v", err, boom)
	}
	// The request that did settle successfully is not thrown away.
	if len(m.Patients()) != 1 {
		t.Fatalf("patients = %d, want the successfully loaded 1", len(m.Patients()))
	}
	if m.ActiveCount() != 0 {
		t.Fatalf("alerts = %d, want none on failed fetch", m.ActiveCount())
	}
}

func TestFilterAllIsIdentity(t *testing.T) {
	m := loadedManager(t, &fakeAPI{alerts: sampleAlerts()})

	got := m.Filter("all")
	want := sampleAlerts()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Fatalf("position %d: got id %d, want %d", i, got[i].ID, want[i].ID)
		}
	}
}

func TestFilterMatchesCaseInsensitively(t *testing.T) {
	m := loadedManager(t, &fakeAPI{alerts: sampleAlerts()})

	for _, category := range []string{"HIGH_RISK", "high_risk", "High_Risk"} {
		got := m.Filter(category)
		if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
			t.Fatalf("filter %q = %+v, want ids [1 3] in original order", category, got)
		}
	}
}

func TestFilterIsIdempotentAndNonDestructive(t *testing.T) {
	m := loadedManager(t, &fakeAPI{alerts: sampleAlerts()})

	first := m.Filter("warning")
	second := m.Filter("warning")
	if len(first) != 1 || len(second) != 1 || first[0].ID != second[0].ID {
		t.Fatalf("repeated filter differs: %+v vs %+v", first, second)
	}
	if m.ActiveCount() != 3 {
		t.Fatalf("filter mutated the sequence: count = %d", m.ActiveCount())
	}
}

func TestFilterUnknownCategoryIsEmptyNotError(t *testing.T) {
	m := loadedManager(t, &fakeAPI{alerts: sampleAlerts()})
	if got := m.Filter("SEPSIS"); len(got) != 0 {
		t.Fatalf("unknown category matched %+v", got)
	}
}

func TestAcknowledgeRemovesExactlyOnConfirm(t *testing.T) {
	api := &fakeAPI{alerts: sampleAlerts()}
	m := loadedManager(t, api)

	if err := m.Acknowledge(context.Background(), 2); err != nil {
		t.Fatal(err)
	}
	got := m.Alerts()
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("after ack: %+v, want ids [1 3] in original order", got)
	}

	// Second acknowledgment of the same id: server stays idempotent, local
	// removal is a no-op, the count does not drop further.
	if err := m.Acknowledge(context.Background(), 2); err != nil {
		t.Fatal(err)
	}
	if m.ActiveCount() != 2 {
		t.Fatalf("count = %d after repeat ack, want 2", m.ActiveCount())
	}
}

func TestAcknowledgeFailureKeepsSequence(t *testing.T) {
	api := &fakeAPI{alerts: sampleAlerts(), ackErr: errors.New("backend rejected")}
	m := loadedManager(t, api)

	if err := m.Acknowledge(context.Background(), 1); err == nil {
		t.Fatal("expected error")
	}
	if m.ActiveCount() != 3 {
		t.Fatalf("failed ack mutated the sequence: count = %d", m.ActiveCount())
	}
}

func TestAcknowledgeAbsentIDIsNoOp(t *testing.T) {
	m := loadedManager(t, &fakeAPI{alerts: sampleAlerts()})

	if err := m.Acknowledge(context.Background(), 999); err != nil {
		t.Fatalf("absent id must not error locally: %v", err)
	}
	if m.ActiveCount() != 3 {
		t.Fatalf("count = %d, want 3", m.ActiveCount())
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		alertType string
		want      Severity
	}{
		{"HIGH_RISK", SeverityCritical},
		{"high_risk", SeverityCritical},
		{"CRITICAL", SeverityCritical},
		{"Warning", SeverityWarning},
		{"INFORMATIONAL", SeverityInfo},
		{"", SeverityInfo},
		{"garbage-category", SeverityInfo},
	}
	for _, tc := range cases {
		if got := Classify(tc.alertType); got != tc.want {
			t.Errorf("Classify(%q) = %v, want %v", tc.alertType, got, tc.want)
		}
	}
}
