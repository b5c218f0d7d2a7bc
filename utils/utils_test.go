package utils

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateRandomString(t *testing.T) {
	s := GenerateRandomString(16)
	if len(s) != 16 {
		t.Fatalf("length = %d", len(s))
	}
	for _, r := range s {
		if !strings.ContainsRune(string(letterRunes), r) {
			t.Fatalf("unexpected rune %q", r)
		}
	}
}

func TestIDPrefixes(t *testing.T) {
	if !strings.HasPrefix(NewUserID(), "u") {
		t.Error("user IDs start with u")
	}
	if !strings.HasPrefix(NewPostID(), "p") {
		t.Error("post IDs start with p")
	}
	if NewPostID() == NewPostID() {
		t.Error("post IDs should not collide back to back")
	}
}

func TestRespondWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithJSON(rec, 200, map[string]bool{"ok": true})

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Errorf("body = %q", rec.Body.String())
	}
}
