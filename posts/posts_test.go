package posts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"dailyjournal/globals"
	"dailyjournal/models"
	"dailyjournal/mq"
)

func TestMain(m *testing.M) {
	mq.SetPublisher(mq.Discard{})
	os.Exit(m.Run())
}

// asUser attaches an authenticated identity the way the auth
// middleware does.
func asUser(r *http.Request, userID, username string) *http.Request {
	ctx := context.WithValue(r.Context(), globals.UserIDKey, userID)
	ctx = context.WithValue(ctx, globals.UsernameKey, username)
	return r.WithContext(ctx)
}

func formPost(path string, form url.Values) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func compose(t *testing.T, h *Handler, userID, title, content string) {
	t.Helper()
	form := url.Values{"titleText": {title}, "contentText": {content}}
	w := httptest.NewRecorder()
	h.Compose(w, asUser(formPost("/compose", form), userID, userID), nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("compose as %s: status = %d, want %d", userID, w.Code, http.StatusSeeOther)
	}
}

func TestComposeScopesListsToOwner(t *testing.T) {
	h := NewHandler("", NewMemoryStore())

	compose(t, h, "u-alice", "Alice's day", "Went hiking.")
	compose(t, h, "u-bob", "Bob's day", "Stayed in.")

	w := httptest.NewRecorder()
	h.SeeAll(w, asUser(httptest.NewRequest("GET", "/seeall", nil), "u-alice", "alice"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("seeall status = %d, want %d", w.Code, http.StatusOK)
	}

	body := w.Body.String()
	if !strings.Contains(body, "Alice&#39;s day") {
		t.Errorf("seeall for alice missing her post:\n%s", body)
	}
	if strings.Contains(body, "Bob") {
		t.Errorf("seeall for alice leaked bob's post:\n%s", body)
	}
}

func TestHomeShowsLatestFirst(t *testing.T) {
	store := NewMemoryStore()
	base := time.Now()
	for i, title := range []string{"oldest", "middle", "newest"} {
		store.Insert(context.Background(), models.Post{
			PostID:    "p" + title,
			UserID:    "u1",
			Title:     title,
			Content:   "entry",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	h := NewHandler("", store)
	w := httptest.NewRecorder()
	h.Home(w, asUser(httptest.NewRequest("GET", "/home", nil), "u1", "u1"), nil)

	body := w.Body.String()
	if !strings.Contains(body, "newest") || !strings.Contains(body, "oldest") {
		t.Fatalf("home missing posts:\n%s", body)
	}
	if strings.Index(body, "newest") > strings.Index(body, "oldest") {
		t.Errorf("home not in reverse chronological order:\n%s", body)
	}
}

func TestDeleteIgnoresOtherUsersPosts(t *testing.T) {
	store := NewMemoryStore()
	store.Insert(context.Background(), models.Post{
		PostID: "p1", UserID: "u-bob", Title: "Bob's day", Content: "x", CreatedAt: time.Now(),
	})

	h := NewHandler("", store)
	w := httptest.NewRecorder()
	req := asUser(formPost("/delete", url.Values{"deleted": {"p1"}}), "u-alice", "alice")
	h.Delete(w, req, nil)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("delete status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if _, err := store.Get(context.Background(), "p1"); err != nil {
		t.Errorf("cross-user delete removed the post: %v", err)
	}
}

func TestDeleteRemovesOwnPost(t *testing.T) {
	store := NewMemoryStore()
	store.Insert(context.Background(), models.Post{
		PostID: "p1", UserID: "u-alice", Title: "Alice's day", Content: "x", CreatedAt: time.Now(),
	})

	h := NewHandler("", store)
	w := httptest.NewRecorder()
	req := asUser(formPost("/delete", url.Values{"deleted": {"p1"}}), "u-alice", "alice")
	h.Delete(w, req, nil)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("delete status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if _, err := store.Get(context.Background(), "p1"); err != ErrNotFound {
		t.Errorf("owned post still present after delete, err = %v", err)
	}
}

func TestComposeRejectsBlankFields(t *testing.T) {
	h := NewHandler("", NewMemoryStore())
	w := httptest.NewRecorder()
	req := asUser(formPost("/compose", url.Values{"titleText": {"  "}, "contentText": {""}}), "u1", "u1")
	h.Compose(w, req, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("blank compose status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if posts, _ := h.Store.List(context.Background(), "u1", 0); len(posts) != 0 {
		t.Errorf("blank compose stored %d posts", len(posts))
	}
}

func TestGetPostUnknownID(t *testing.T) {
	h := NewHandler("", NewMemoryStore())
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/posts/p404", nil)
	h.GetPost(w, req, httprouter.Params{{Key: "postid", Value: "p404"}})

	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown post status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
