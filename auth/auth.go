package auth

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/crypto/bcrypt"

	"dailyjournal/models"
	"dailyjournal/mq"
	"dailyjournal/pages"
	"dailyjournal/session"
	"dailyjournal/tmpl"
	"dailyjournal/utils"
)

// Handler owns the authentication routes: local register/login/logout
// and the Google OAuth handshake.
type Handler struct {
	Sessions *session.Manager
	Google   GoogleConfig
	Users    UserStore
}

func NewHandler(sessions *session.Manager, google GoogleConfig, users UserStore) *Handler {
	return &Handler{Sessions: sessions, Google: google, Users: users}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	username, password, ok := credentials(r)
	if !ok {
		tmpl.Render(w, http.StatusBadRequest, "register.html", pages.FormData{Error: "Username and password are required."})
		return
	}

	ctx := r.Context()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("register: hash for %s: %v", username, err)
		tmpl.Render(w, http.StatusInternalServerError, "register.html", pages.FormData{Error: "Something went wrong. Try again."})
		return
	}

	user := models.User{
		UserID:    utils.NewUserID(),
		Username:  username,
		Password:  string(hashed),
		CreatedAt: time.Now(),
		LastLogin: time.Now(),
	}

	// The unique username index decides races; no separate pre-check.
	if err := h.Users.Insert(ctx, user); err == ErrExists {
		tmpl.Render(w, http.StatusConflict, "register.html", pages.FormData{Error: "That username is taken."})
		return
	} else if err != nil {
		log.Printf("register: insert %s: %v", username, err)
		tmpl.Render(w, http.StatusInternalServerError, "register.html", pages.FormData{Error: "Something went wrong. Try again."})
		return
	}

	if err := h.Sessions.Establish(w, user); err != nil {
		log.Printf("register: session for %s: %v", username, err)
		tmpl.Render(w, http.StatusInternalServerError, "register.html", pages.FormData{Error: "Something went wrong. Try again."})
		return
	}

	mq.Emit(ctx, user.UserID, mq.UserRegistered, "")
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	username, password, ok := credentials(r)
	if !ok {
		tmpl.Render(w, http.StatusBadRequest, "login.html", pages.FormData{Error: "Username and password are required."})
		return
	}

	ctx := r.Context()

	user, err := h.Users.FindByUsername(ctx, username)
	if err != nil {
		if err != ErrNotFound {
			log.Printf("login: lookup %s: %v", username, err)
		}
		h.rejectLogin(w)
		return
	}

	// Accounts created through Google carry no local password.
	if !user.HasLocalPassword() {
		h.rejectLogin(w)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		h.rejectLogin(w)
		return
	}

	if err := h.Users.TouchLastLogin(ctx, user.UserID); err != nil {
		log.Printf("login: last_login for %s: %v", user.UserID, err)
	}

	if err := h.Sessions.Establish(w, user); err != nil {
		log.Printf("login: session for %s: %v", username, err)
		tmpl.Render(w, http.StatusInternalServerError, "login.html", pages.FormData{Error: "Something went wrong. Try again."})
		return
	}

	mq.Emit(ctx, user.UserID, mq.UserLoggedIn, "")
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.Sessions.Clear(w, r)
	http.Redirect(w, r, "/", http.StatusFound)
}

// rejectLogin answers every credential failure identically so the
// response does not reveal which factor was wrong.
func (h *Handler) rejectLogin(w http.ResponseWriter) {
	tmpl.Render(w, http.StatusUnauthorized, "login.html", pages.FormData{Error: "Invalid username or password."})
}

func credentials(r *http.Request) (username, password string, ok bool) {
	if err := r.ParseForm(); err != nil {
		return "", "", false
	}
	username = strings.TrimSpace(r.PostFormValue("username"))
	password = r.PostFormValue("password")
	return username, password, username != "" && password != ""
}
