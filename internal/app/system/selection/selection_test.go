package selection_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/tourismboard/internal/app/system/selection"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestManager(t *testing.T) *selection.Manager {
	t.Helper()
	m, err := selection.NewManager("test-session-key-must-be-32-chars-long", "test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestNewManager_EmptyKey(t *testing.T) {
	if _, err := selection.NewManager("", "", "", false, zap.NewNop()); err == nil {
		t.Error("expected error for empty session key")
	}
}

func TestGet_NoSession(t *testing.T) {
	m := newTestManager(t)
	req := httptest.NewRequest("GET", "/", nil)

	if got := m.Get(req); got != (selection.Raw{}) {
		t.Errorf("got %+v, want zero selection", got)
	}
}

func TestSaveThenGet_RoundTrip(t *testing.T) {
	m := newTestManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/selection", nil)
	want := selection.Raw{Market: "Foreign", District: "Osona"}
	if err := m.Save(rec, req, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("Save did not set a cookie")
	}

	next := httptest.NewRequest("GET", "/", nil)
	for _, c := range cookies {
		next.AddCookie(c)
	}
	if got := m.Get(next); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	m := newTestManager(t)

	recA := httptest.NewRecorder()
	if err := m.Save(recA, httptest.NewRequest("POST", "/selection", nil), selection.Raw{Market: "Foreign"}); err != nil {
		t.Fatal(err)
	}

	other := httptest.NewRequest("GET", "/", nil)
	if got := m.Get(other); got.Market != "" {
		t.Errorf("visitor without cookie saw %q", got.Market)
	}
}

func TestGet_TamperedCookieFallsBack(t *testing.T) {
	m := newTestManager(t)
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "test-session", Value: "not-a-valid-cookie"})

	if got := m.Get(req); got != (selection.Raw{}) {
		t.Errorf("got %+v, want zero selection", got)
	}

	rec := httptest.NewRecorder()
	if err := m.Save(rec, req, selection.Raw{Market: "Total"}); err != nil {
		t.Errorf("Save after tampered cookie: %v", err)
	}
}

func TestLoadSessionID(t *testing.T) {
	m := newTestManager(t)

	rec := httptest.NewRecorder()
	if err := m.Save(rec, httptest.NewRequest("POST", "/selection", nil), selection.Raw{Market: "Total"}); err != nil {
		t.Fatal(err)
	}

	var seen string
	h := m.LoadSessionID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = selection.SessionID(r)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)

	if seen == "" {
		t.Error("session ID missing from context")
	}

	seen = "unset"
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	if seen != "" {
		t.Errorf("new visitor: got session ID %q, want empty", seen)
	}
}

func TestLoadSessionID_TamperedCookieResolvedOnce(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	m, err := selection.NewManager("test-session-key-must-be-32-chars-long", "test-session", "", false, zap.New(core))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	rec := httptest.NewRecorder()
	h := m.LoadSessionID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := m.Get(r); got != (selection.Raw{}) {
			t.Errorf("Get: got %+v, want zero selection", got)
		}
		if err := m.Save(w, r, selection.Raw{Market: "Foreign"}); err != nil {
			t.Errorf("Save: %v", err)
		}
		if got := m.Get(r); got.Market != "Foreign" {
			t.Errorf("Get after Save: got %q, want %q", got.Market, "Foreign")
		}
	}))

	req := httptest.NewRequest("POST", "/selection", nil)
	req.AddCookie(&http.Cookie{Name: "test-session", Value: "not-a-valid-cookie"})
	h.ServeHTTP(rec, req)

	if n := logs.FilterMessage("session cookie invalid, using fresh session").Len(); n != 1 {
		t.Errorf("invalid cookie logged %d times, want 1", n)
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("Save did not replace the invalid cookie")
	}
}
