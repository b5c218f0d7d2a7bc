// Package session implements cookie-referenced server-side sessions.
// The cookie value is a signed JWT naming the user; a matching record
// in the Store keeps the session revocable. A request is authenticated
// only when both halves agree.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"dailyjournal/models"
)

const CookieName = "journal_session"

const sessionTTL = 7 * 24 * time.Hour

// JWT claims
type Claims struct {
	Username string `json:"username"`
	UserID   string `json:"userId"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	store  Store

	// Secure marks the cookie HTTPS-only; enable everywhere except
	// local development.
	Secure bool
}

func NewManager(secret string, store Store) *Manager {
	return &Manager{secret: []byte(secret), store: store}
}

// Establish signs a session token for the user, records it server-side
// and hands the cookie to the client. Any previous session for the
// same user is superseded.
func (m *Manager) Establish(w http.ResponseWriter, user models.User) error {
	claims := &Claims{
		Username: user.Username,
		UserID:   user.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("session: sign: %w", err)
	}

	if err := m.store.Set(user.UserID, signed, sessionTTL); err != nil {
		return fmt.Errorf("session: store: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Verify authenticates a request from its session cookie. The token
// must carry a valid signature and still match the server-side record.
func (m *Manager) Verify(r *http.Request) (*Claims, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, ErrNoSession
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, errors.New("session: invalid token")
	}

	stored, err := m.store.Get(claims.UserID)
	if err != nil {
		return nil, err
	}
	if stored != cookie.Value {
		return nil, errors.New("session: token superseded")
	}
	return claims, nil
}

// Clear revokes the request's session and expires the cookie. Clearing
// an anonymous request is a no-op.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) {
	if claims, err := m.Verify(r); err == nil {
		_ = m.store.Del(claims.UserID)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
