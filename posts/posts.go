package posts

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"dailyjournal/middleware"
	"dailyjournal/models"
	"dailyjournal/mq"
	"dailyjournal/tmpl"
	"dailyjournal/utils"
)

const homeGreeting = "Welcome to your personal online journal! Here are some of your latest posts."

// Posts shown on the home page; /seeall has the full list.
const homePageSize = 5

// Handler owns the journal routes. BaseURL feeds the links embedded in
// PDF exports.
type Handler struct {
	BaseURL string
	Store   Store
}

func NewHandler(baseURL string, store Store) *Handler {
	return &Handler{BaseURL: baseURL, Store: store}
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.UserID(r)

	posts, err := h.Store.List(r.Context(), userID, homePageSize)
	if err != nil {
		log.Printf("home: list posts for %s: %v", userID, err)
		http.Error(w, "Failed to load posts", http.StatusInternalServerError)
		return
	}

	tmpl.Render(w, http.StatusOK, "home.html", map[string]any{
		"Greeting": homeGreeting,
		"Posts":    posts,
	})
}

func (h *Handler) SeeAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.UserID(r)

	posts, err := h.Store.List(r.Context(), userID, 0)
	if err != nil {
		log.Printf("seeall: list posts for %s: %v", userID, err)
		http.Error(w, "Failed to load posts", http.StatusInternalServerError)
		return
	}

	tmpl.Render(w, http.StatusOK, "seeall.html", map[string]any{"Posts": posts})
}

func (h *Handler) ComposeForm(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tmpl.Render(w, http.StatusOK, "compose.html", map[string]string{})
}

func (h *Handler) Compose(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(r.PostFormValue("titleText"))
	content := strings.TrimSpace(r.PostFormValue("contentText"))
	if title == "" || content == "" {
		tmpl.Render(w, http.StatusBadRequest, "compose.html", map[string]string{
			"Error": "Title and entry are both required.",
		})
		return
	}

	userID := middleware.UserID(r)
	post := models.Post{
		PostID:    utils.NewPostID(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if err := h.Store.Insert(r.Context(), post); err != nil {
		log.Printf("compose: insert for %s: %v", userID, err)
		http.Error(w, "Failed to save post", http.StatusInternalServerError)
		return
	}

	mq.Emit(r.Context(), userID, mq.PostCreated, post.PostID)
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// Delete removes one of the requester's posts. The store scopes the
// delete to the owner, so a request naming someone else's post deletes
// nothing.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	postID := r.PostFormValue("deleted")
	userID := middleware.UserID(r)

	deleted, err := h.Store.Delete(r.Context(), postID, userID)
	if err != nil {
		log.Printf("delete: %s by %s: %v", postID, userID, err)
		http.Error(w, "Failed to delete post", http.StatusInternalServerError)
		return
	}
	if deleted {
		mq.Emit(r.Context(), userID, mq.PostDeleted, postID)
	}

	http.Redirect(w, r, "/seeall", http.StatusSeeOther)
}

// GetPost renders a post detail page. Ownership is intentionally not
// checked here; any caller holding a post ID can view it. Revisit
// before the post IDs ever become guessable.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	postID := ps.ByName("postid")

	post, err := h.Store.Get(r.Context(), postID)
	if err == ErrNotFound {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Printf("post: fetch %s: %v", postID, err)
		http.Error(w, "Failed to load post", http.StatusInternalServerError)
		return
	}

	tmpl.Render(w, http.StatusOK, "post.html", map[string]any{"Post": post})
}
