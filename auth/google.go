package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"dailyjournal/mq"
	"dailyjournal/rdx"
)

// GoogleConfig carries the OAuth client registration.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

	stateKeyPrefix = "oauthstate:"
	stateTTL       = 10 * time.Minute
)

var oauthClient = &http.Client{Timeout: 10 * time.Second}

// GoogleStart redirects the browser to Google's consent screen. The
// state token lives in Redis until the callback consumes it.
func (h *Handler) GoogleStart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	state := uuid.NewString()
	if err := rdx.SetWithExpiry(stateKeyPrefix+state, "1", stateTTL); err != nil {
		log.Printf("oauth: store state: %v", err)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	http.Redirect(w, r, consentURL(h.Google, state), http.StatusFound)
}

// GoogleCallback completes the handshake: state check, code exchange,
// profile fetch, then find-or-create keyed by the Google subject.
// Every failure path lands back on the landing page.
func (h *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		log.Printf("oauth: provider error: %s", errParam)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" || state == "" || !consumeState(state) {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	accessToken, err := exchangeCode(ctx, h.Google, code)
	if err != nil {
		log.Printf("oauth: exchange: %v", err)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	profile, err := fetchProfile(ctx, accessToken)
	if err != nil {
		log.Printf("oauth: userinfo: %v", err)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	user, err := h.Users.FindOrCreateGoogle(ctx, profile.Sub, profile.Email)
	if err != nil {
		log.Printf("oauth: find-or-create %s: %v", profile.Sub, err)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if err := h.Sessions.Establish(w, user); err != nil {
		log.Printf("oauth: session for %s: %v", user.UserID, err)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	mq.Emit(ctx, user.UserID, mq.UserLoggedIn, "")
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

func consentURL(cfg GoogleConfig, state string) string {
	query := url.Values{}
	query.Set("response_type", "code")
	query.Set("client_id", cfg.ClientID)
	query.Set("redirect_uri", cfg.CallbackURL)
	query.Set("scope", "openid profile email")
	query.Set("state", state)
	return googleAuthURL + "?" + query.Encode()
}

// consumeState validates and burns a state token in one step.
func consumeState(state string) bool {
	_, err := rdx.GetDel(stateKeyPrefix + state)
	return err == nil
}

func exchangeCode(ctx context.Context, cfg GoogleConfig, code string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", cfg.CallbackURL)
	form.Set("client_id", cfg.ClientID)
	form.Set("client_secret", cfg.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, googleTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := oauthClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.New("token exchange failed")
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if payload.AccessToken == "" {
		return "", errors.New("missing access token")
	}
	return payload.AccessToken, nil
}

type googleProfile struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
}

func fetchProfile(ctx context.Context, accessToken string) (googleProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return googleProfile{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := oauthClient.Do(req)
	if err != nil {
		return googleProfile{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return googleProfile{}, errors.New("userinfo fetch failed")
	}

	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return googleProfile{}, err
	}
	if profile.Sub == "" || profile.Email == "" {
		return googleProfile{}, errors.New("incomplete profile")
	}
	return profile, nil
}
