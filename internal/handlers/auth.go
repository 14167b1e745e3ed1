package handlers

import (
	"errors"
	"net/http"
	"strings"

	"soap-storefront/internal/logging"
	"soap-storefront/internal/middleware"
	"soap-storefront/internal/models"
	"soap-storefront/internal/services"
	"soap-storefront/web/templates/components"
	"soap-storefront/web/templates/pages"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	*Base
	authService services.AuthServiceInterface
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(base *Base, authService services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{Base: base, authService: authService}
}

// safeRedirect keeps post-login redirects on this site
func safeRedirect(target, fallback string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	return target
}

func homeFor(s *models.Session) string {
	if s.IsAdmin() {
		return "/admin"
	}
	return "/"
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	redirectURL := r.URL.Query().Get("redirect")

	// If user is already logged in, send them on
	if s := middleware.GetSessionFromContext(r.Context()); s != nil {
		http.Redirect(w, r, safeRedirect(redirectURL, homeFor(s)), http.StatusSeeOther)
		return
	}

	view := pages.LoginView{Redirect: redirectURL, Errors: models.ValidationErrors{}}
	render(w, r, http.StatusOK, pages.LoginPage(h.meta(w, r, "Sign in"), view))
}

// LoginSubmit handles login form submission
func (h *AuthHandler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	view := pages.LoginView{
		Form: models.LoginForm{
			Email:    strings.TrimSpace(r.FormValue("email")),
			Password: r.FormValue("password"),
		},
		Redirect: r.FormValue("redirect"),
	}

	if view.Errors = view.Form.Validate(); view.Errors.HasErrors() {
		render(w, r, http.StatusUnprocessableEntity, pages.LoginPage(h.meta(w, r, "Sign in"), view))
		return
	}

	resp, err := h.authService.CustomerLogin(r.Context(), view.Form)
	if err != nil {
		log := logging.FromContext(r.Context()).WithError(err)
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Info("login rejected")
			view.Errors.Add("general", "Invalid email or password")
		} else {
			log.Error("login failed")
			view.Errors.Add("general", services.UserMessage(err, "We couldn't sign you in right now. Please try again."))
		}
		view.Form.Password = ""
		render(w, r, http.StatusUnprocessableEntity, pages.LoginPage(h.meta(w, r, "Sign in"), view))
		return
	}

	session, err := h.sessions.Begin(w, r, resp)
	if err != nil {
		logError(r, err, "save session")
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	logging.FromContext(r.Context()).WithField("user", session.UserID).Info("signed in")
	h.flash(w, r, components.FlashSuccess, "Welcome back, "+session.FirstName()+"!")
	redirect(w, r, safeRedirect(view.Redirect, homeFor(session)))
}

// SignupPage renders the registration page
func (h *AuthHandler) SignupPage(w http.ResponseWriter, r *http.Request) {
	if s := middleware.GetSessionFromContext(r.Context()); s != nil {
		http.Redirect(w, r, homeFor(s), http.StatusSeeOther)
		return
	}
	render(w, r, http.StatusOK, pages.SignupPage(h.meta(w, r, "Create account"), pages.SignupView{Errors: models.ValidationErrors{}}))
}

// SignupSubmit handles registration form submission
func (h *AuthHandler) SignupSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	view := pages.SignupView{
		Form: models.SignupForm{
			Name:            strings.TrimSpace(r.FormValue("name")),
			Email:           strings.TrimSpace(r.FormValue("email")),
			Phone:           strings.TrimSpace(r.FormValue("phone")),
			Password:        r.FormValue("password"),
			ConfirmPassword: r.FormValue("confirm_password"),
		},
	}

	if view.Errors = view.Form.Validate(); view.Errors.HasErrors() {
		view.Form.Password, view.Form.ConfirmPassword = "", ""
		render(w, r, http.StatusUnprocessableEntity, pages.SignupPage(h.meta(w, r, "Create account"), view))
		return
	}

	resp, err := h.authService.CustomerSignup(r.Context(), view.Form)
	if err != nil {
		logging.FromContext(r.Context()).WithError(err).Warn("signup failed")
		view.Errors.Add("general", services.UserMessage(err, "We couldn't create your account. Please try again."))
		view.Form.Password, view.Form.ConfirmPassword = "", ""
		render(w, r, http.StatusUnprocessableEntity, pages.SignupPage(h.meta(w, r, "Create account"), view))
		return
	}

	session, err := h.sessions.Begin(w, r, resp)
	if err != nil {
		logError(r, err, "save session")
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	logging.FromContext(r.Context()).WithField("user", session.UserID).Info("account created")
	h.flash(w, r, components.FlashSuccess, "Welcome, "+session.FirstName()+"! Your account is ready.")
	redirect(w, r, "/")
}

// Logout clears the session and returns to the home page. The cart and
// dismissed announcements belong to the browser and survive.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.End(w, r); err != nil {
		logging.FromContext(r.Context()).WithError(err).Warn("failed to end session")
	}
	h.flash(w, r, components.FlashInfo, "You have been signed out.")
	redirect(w, r, "/")
}
