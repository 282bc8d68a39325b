package handler

import (
	"net/http"
	"strings"

	"device-checkin-web/pkg/validation"
)

// captchaField is the form field the hosted CAPTCHA widget fills in.
const captchaField = "g-recaptcha-response"

// authPage carries the re-rendered form values after a failed submit.
type authPage struct {
	Email string
	Name  string
	Next  string
}

// ShowLogin renders the sign-in form.
func (h *Handler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if h.sessions.IsAuthenticated(r) {
		h.redirect(w, r, "/devices")
		return
	}
	p := h.newPage(r, "Sign in", "login")
	p.Data = authPage{Next: r.URL.Query().Get("next")}
	h.render(w, "login", http.StatusOK, p)
}

// Login submits credentials to the backend. On success the session is
// marked authenticated, the optional bearer token stored, and any backend
// session cookies relayed to the browser.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectError(w, r, "/login", "Invalid form submission")
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	captcha := r.PostFormValue(captchaField)
	next := safeNext(r.PostFormValue("next"))

	if email == "" || password == "" {
		h.renderLoginError(w, r, email, next, "Email and password are required")
		return
	}

	result, err := h.backend.SignIn(h.requestContext(r), email, password, captcha)
	if err != nil {
		h.renderLoginError(w, r, email, next, errorMessage(err))
		return
	}

	for _, cookie := range result.SetCookies {
		w.Header().Add("Set-Cookie", cookie)
	}
	if err := h.sessions.SignIn(w, r, result.Token); err != nil {
		h.logger.Printf("session save after sign-in: %v", err)
	}
	h.redirect(w, r, next)
}

func (h *Handler) renderLoginError(w http.ResponseWriter, r *http.Request, email, next, message string) {
	p := h.newPage(r, "Sign in", "login")
	p.Error = message
	p.Data = authPage{Email: email, Next: next}
	h.render(w, "login", http.StatusOK, p)
}

// ShowRegister renders the sign-up form.
func (h *Handler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	p := h.newPage(r, "Create account", "register")
	p.Data = authPage{}
	h.render(w, "register", http.StatusOK, p)
}

// Register submits the sign-up form.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectError(w, r, "/register", "Invalid form submission")
		return
	}

	name := strings.TrimSpace(r.PostFormValue("name"))
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	confirm := r.PostFormValue("confirmPassword")
	captcha := r.PostFormValue(captchaField)

	p := h.newPage(r, "Create account", "register")
	p.Data = authPage{Email: email, Name: name}

	if name == "" || email == "" {
		p.Error = "Name and email are required"
		h.render(w, "register", http.StatusOK, p)
		return
	}
	if err := validation.ValidateNewPassword(password, confirm); err != nil {
		p.Error = err.Error()
		h.render(w, "register", http.StatusOK, p)
		return
	}

	if err := h.backend.SignUp(h.requestContext(r), name, email, password, captcha); err != nil {
		p.Error = errorMessage(err)
		h.render(w, "register", http.StatusOK, p)
		return
	}

	h.redirectMessage(w, r, "/login", "Account created, you can sign in now")
}

// ShowForgotPassword renders the password reset form.
func (h *Handler) ShowForgotPassword(w http.ResponseWriter, r *http.Request) {
	p := h.newPage(r, "Reset password", "forgot")
	p.Data = authPage{}
	h.render(w, "forgot_password", http.StatusOK, p)
}

// ForgotPassword submits the email plus the replacement password.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectError(w, r, "/forgot-password", "Invalid form submission")
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	confirm := r.PostFormValue("confirmPassword")

	p := h.newPage(r, "Reset password", "forgot")
	p.Data = authPage{Email: email}

	if email == "" {
		p.Error = "Email is required"
		h.render(w, "forgot_password", http.StatusOK, p)
		return
	}
	if err := validation.ValidateNewPassword(password, confirm); err != nil {
		p.Error = err.Error()
		h.render(w, "forgot_password", http.StatusOK, p)
		return
	}

	if err := h.backend.ForgotPassword(h.requestContext(r), email, password); err != nil {
		p.Error = errorMessage(err)
		h.render(w, "forgot_password", http.StatusOK, p)
		return
	}

	h.redirectMessage(w, r, "/login", "Password updated, sign in with the new one")
}

// Logout tears down both the backend session and the local one. The local
// teardown happens regardless of the backend call's outcome.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.backend.SignOut(h.requestContext(r)); err != nil {
		h.logger.Printf("backend sign-out: %v", err)
	}
	if err := h.sessions.SignOut(w, r); err != nil {
		h.logger.Printf("session teardown: %v", err)
	}
	h.redirect(w, r, "/login")
}
