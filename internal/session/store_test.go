package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestMemStoreSetGetClear(t *testing.T) {
	st := NewMemStore()
	if s := st.Get(); s.Authenticated() {
		t.Fatal("fresh store should be unauthenticated")
	}

	want := Session{Token: "tok", Role: "doctor", DoctorID: 3}
	if err := st.Set(want); err != nil {
		t.Fatal(err)
	}
	if got := st.Get(); got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	if err := st.Clear(); err != nil {
		t.Fatal(err)
	}
	if got := st.Get(); got != (Session{}) {
		t.Fatalf("after clear got %+v, want empty", got)
	}
}

func TestSetOverwritesWholeSession(t *testing.T) {
	st := NewMemStore()
	st.Set(Session{Token: "a", Role: "patient", PatientID: 7})
	st.Set(Session{Token: "b", Role: "doctor", DoctorID: 2})

	got := st.Get()
	if got.PatientID != 0 {
		t.Fatalf("stale patient id survived overwrite: %+v", got)
	}
	if got.Role != "doctor" || got.Token != "b" {
		t.Fatalf("got %+v", got)
	}
}

func TestPartialSessionIsUnauthenticated(t *testing.T) {
	if (Session{Token: "t"}).Authenticated() {
		t.Error("token without role must not authenticate")
	}
	if (Session{Role: "admin"}).Authenticated() {
		t.Error("role without token must not authenticate")
	}
	if !(Session{Token: "t", Role: "admin"}).Authenticated() {
		t.Error("full session must authenticate")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.json")
	st := NewFileStore(path)

	if s := st.Get(); s != (Session{}) {
		t.Fatalf("missing file should read as absent session, got %+v", s)
	}

	want := Session{Token: "tok", Role: "patient", PatientID: 12}
	if err := st.Set(want); err != nil {
		t.Fatal(err)
	}
	if got := NewFileStore(path).Get(); got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	if err := st.Clear(); err != nil {
		t.Fatal(err)
	}
	if got := st.Get(); got != (Session{}) {
		t.Fatalf("after clear got %+v", got)
	}
	// Clearing an already-clear store is fine.
	if err := st.Clear(); err != nil {
		t.Fatal(err)
	}
}

func TestFileStoreUsesFixedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	st := NewFileStore(path)
	st.Set(Session{Token: "tok", Role: "doctor", DoctorID: 5})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"token", "role", "doctorId"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("persisted session missing key %q: %v", key, raw)
		}
	}
}

func TestFileStoreCorruptFileReadsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	os.WriteFile(path, []byte("not json"), 0o600)

	if s := NewFileStore(path).Get(); s != (Session{}) {
		t.Fatalf("corrupt file should read as absent session, got %+v", s)
	}
}
