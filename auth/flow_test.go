package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"dailyjournal/mq"
	"dailyjournal/session"
)

func TestMain(m *testing.M) {
	mq.SetPublisher(mq.Discard{})
	os.Exit(m.Run())
}

func newTestHandler() *Handler {
	mgr := session.NewManager("test-secret", session.NewMemoryStore())
	return NewHandler(mgr, GoogleConfig{}, NewMemoryUserStore())
}

func credentialRequest(path, username, password string) *http.Request {
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestRegisterThenLoginRoundTrip(t *testing.T) {
	h := newTestHandler()

	w := httptest.NewRecorder()
	h.Register(w, credentialRequest("/register", "alice", "hunter2"), nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("register status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if len(w.Result().Cookies()) == 0 {
		t.Fatal("register set no session cookie")
	}

	w = httptest.NewRecorder()
	h.Login(w, credentialRequest("/login", "alice", "hunter2"), nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("login status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if loc := w.Header().Get("Location"); loc != "/home" {
		t.Errorf("login redirect = %q, want /home", loc)
	}

	verify := httptest.NewRequest("GET", "/home", nil)
	for _, c := range w.Result().Cookies() {
		verify.AddCookie(c)
	}
	claims, err := h.Sessions.Verify(verify)
	if err != nil {
		t.Fatalf("session after login rejected: %v", err)
	}
	if claims.Username != "alice" {
		t.Errorf("session username = %q, want alice", claims.Username)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	h := newTestHandler()

	w := httptest.NewRecorder()
	h.Register(w, credentialRequest("/register", "alice", "hunter2"), nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("first register status = %d, want %d", w.Code, http.StatusSeeOther)
	}

	w = httptest.NewRecorder()
	h.Register(w, credentialRequest("/register", "alice", "other"), nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate register status = %d, want %d", w.Code, http.StatusConflict)
	}
	if !strings.Contains(w.Body.String(), "That username is taken.") {
		t.Error("duplicate register response missing error banner")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	h := newTestHandler()

	w := httptest.NewRecorder()
	h.Register(w, credentialRequest("/register", "alice", "hunter2"), nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("register status = %d, want %d", w.Code, http.StatusSeeOther)
	}

	w = httptest.NewRecorder()
	h.Login(w, credentialRequest("/login", "alice", "wrong"), nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(w.Body.String(), "Invalid username or password.") {
		t.Error("bad login response missing error banner")
	}
}

func TestLoginUnknownUser(t *testing.T) {
	h := newTestHandler()

	w := httptest.NewRecorder()
	h.Login(w, credentialRequest("/login", "nobody", "pw"), nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unknown user login status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestLoginRejectsGoogleOnlyAccount(t *testing.T) {
	h := newTestHandler()

	user, err := h.Users.FindOrCreateGoogle(context.Background(), "google-sub-1", "alice@example.com")
	if err != nil {
		t.Fatalf("seed google account: %v", err)
	}
	if user.HasLocalPassword() {
		t.Fatal("google account unexpectedly has a local password")
	}

	w := httptest.NewRecorder()
	h.Login(w, credentialRequest("/login", "alice@example.com", ""), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty-password login status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	w = httptest.NewRecorder()
	h.Login(w, credentialRequest("/login", "alice@example.com", "anything"), nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("google-only login status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
