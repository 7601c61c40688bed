package controllers

import (
	"errors"
	"net/http"

	"inkwell/app/middleware"
	"inkwell/app/services"
)

// AuthController handles registration, login and logout
type AuthController struct {
	Base
	users    *services.UserService
	sessions *services.SessionService
	auth     *middleware.Auth
}

// NewAuthController creates a new AuthController
func NewAuthController(users *services.UserService, sessions *services.SessionService, auth *middleware.Auth, b Base) *AuthController {
	return &AuthController{Base: b, users: users, sessions: sessions, auth: auth}
}

// authFormData carries re-submitted form values back into the template
type authFormData struct {
	Name  string
	Email string
}

// RegisterForm handles GET /register
func (ac *AuthController) RegisterForm(w http.ResponseWriter, r *http.Request) {
	ac.render(w, r, "register", authFormData{})
}

// Register handles POST /register. A duplicate email is redirected to the
// login page; success immediately logs the new user in.
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	name := r.FormValue("name")
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := ac.users.Register(name, email, password)
	if errors.Is(err, services.ErrEmailTaken) {
		ac.setFlash(w, "You are already registered, login instead.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err != nil {
		ac.renderFlash(w, r, "register", "Registration failed: "+err.Error(), authFormData{Name: name, Email: email})
		return
	}

	ac.logger.Info("user registered", "id", user.ID, "role", user.Role)
	ac.startSession(w, r, user.ID)
}

// LoginForm handles GET /login
func (ac *AuthController) LoginForm(w http.ResponseWriter, r *http.Request) {
	ac.render(w, r, "login", authFormData{})
}

// Login handles POST /login. Unknown email and wrong password get
// distinct flash messages; both re-render the form unauthenticated.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := ac.users.Authenticate(email, password)
	if errors.Is(err, services.ErrUnknownUser) {
		ac.renderFlash(w, r, "login", "That email does not exist in our system, please register.", authFormData{Email: email})
		return
	}
	if errors.Is(err, services.ErrBadCredentials) {
		ac.renderFlash(w, r, "login", "Password incorrect. Please try again.", authFormData{Email: email})
		return
	}
	if err != nil {
		ac.logger.Error("login failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.startSession(w, r, user.ID)
}

// Logout handles GET /logout: always succeeds and redirects home
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if token := ac.auth.SessionToken(r); token != "" {
		if err := ac.sessions.Destroy(token); err != nil {
			ac.logger.Error("failed to destroy session", "error", err)
		}
	}

	ac.auth.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (ac *AuthController) startSession(w http.ResponseWriter, r *http.Request, userID int) {
	session, err := ac.sessions.Create(userID)
	if err != nil {
		ac.logger.Error("failed to create session", "user", userID, "error", err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := ac.auth.SetSessionCookie(w, session.Token); err != nil {
		ac.logger.Error("failed to set session cookie", "error", err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
