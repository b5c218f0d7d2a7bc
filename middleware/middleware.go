package middleware

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"dailyjournal/globals"
	"dailyjournal/session"
)

// RequireAuth gates a private page route. Anonymous requests are sent
// back to the landing page rather than answered with an error status;
// authenticated requests proceed with the identity on the context.
func RequireAuth(mgr *session.Manager, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, err := mgr.Verify(r)
		if err != nil {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		next(w, r.WithContext(withIdentity(r.Context(), claims)), ps)
	}
}

// OptionalAuth attaches the identity when a valid session is present
// and proceeds regardless.
func OptionalAuth(mgr *session.Manager, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if claims, err := mgr.Verify(r); err == nil {
			r = r.WithContext(withIdentity(r.Context(), claims))
		}
		next(w, r, ps)
	}
}

func withIdentity(ctx context.Context, claims *session.Claims) context.Context {
	ctx = context.WithValue(ctx, globals.UserIDKey, claims.UserID)
	return context.WithValue(ctx, globals.UsernameKey, claims.Username)
}

// UserID extracts the authenticated user's ID from a request handled
// behind RequireAuth. Empty for anonymous requests.
func UserID(r *http.Request) string {
	id, _ := r.Context().Value(globals.UserIDKey).(string)
	return id
}

// Username extracts the authenticated user's name, if any.
func Username(r *http.Request) string {
	name, _ := r.Context().Value(globals.UsernameKey).(string)
	return name
}
