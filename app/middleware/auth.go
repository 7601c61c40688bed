package middleware

import (
	"net/http"

	"inkwell/app/services"

	"github.com/gorilla/securecookie"
)

// SessionCookie is the name of the signed cookie holding the session token.
const SessionCookie = "inkwell_session"

// Auth resolves the session cookie to a user and stores it in the
// request context. Requests without a valid session pass through
// anonymously.
type Auth struct {
	Sessions *services.SessionService
	Users    *services.UserService
	Cookies  *securecookie.SecureCookie
}

// NewAuth creates a new Auth middleware
func NewAuth(sessions *services.SessionService, users *services.UserService, cookies *securecookie.SecureCookie) *Auth {
	return &Auth{Sessions: sessions, Users: users, Cookies: cookies}
}

// Authenticate is the middleware entry point
func (a *Auth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		var token string
		if err := a.Cookies.Decode(SessionCookie, cookie.Value, &token); err != nil {
			next.ServeHTTP(w, r)
			return
		}

		session, err := a.Sessions.Resolve(token)
		if err != nil {
			a.ClearSessionCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		user, err := a.Users.Get(session.UserID)
		if err != nil {
			// Session outlived its user; drop it.
			_ = a.Sessions.Destroy(token)
			a.ClearSessionCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// SetSessionCookie writes the signed session cookie
func (a *Auth) SetSessionCookie(w http.ResponseWriter, token string) error {
	encoded, err := a.Cookies.Encode(SessionCookie, token)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearSessionCookie expires the session cookie
func (a *Auth) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// SessionToken extracts and verifies the session token from the request
// cookie, returning "" when absent or invalid.
func (a *Auth) SessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}

	var token string
	if err := a.Cookies.Decode(SessionCookie, cookie.Value, &token); err != nil {
		return ""
	}
	return token
}
