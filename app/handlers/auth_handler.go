package handlers

import (
	"crypto/subtle"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/rmaulana/go-catalog/app/configs"
	"github.com/rmaulana/go-catalog/app/helpers"
	"github.com/rmaulana/go-catalog/app/utils/sessions"
	"github.com/unrolled/render"
)

type AuthHandler struct {
	render       *render.Render
	sessionStore sessions.SessionStore
	env          configs.ENV
}

func NewAuthHandler(r *render.Render, sessionStore sessions.SessionStore, env configs.ENV) *AuthHandler {
	return &AuthHandler{
		render:       r,
		sessionStore: sessionStore,
		env:          env,
	}
}

func (h *AuthHandler) LoginGetHandler(w http.ResponseWriter, r *http.Request) {
	if userID, ok := r.Context().Value(helpers.ContextKeyUserID).(string); ok && userID != "" {
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title": "Login",
	})
	_ = h.render.HTML(w, http.StatusOK, "auth/login", data)
}

func (h *AuthHandler) LoginPostHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("LoginPostHandler: Error parsing form: %v", err)
		http.Redirect(w, r, fmt.Sprintf("/login?status=error&message=%s", url.QueryEscape("Something went wrong while processing the form.")), http.StatusSeeOther)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	if !h.checkCredentials(username, password) {
		log.Printf("LoginPostHandler: Invalid credentials for username: %s", username)
		http.Redirect(w, r, fmt.Sprintf("/login?status=error&message=%s", url.QueryEscape("Invalid username or password.")), http.StatusSeeOther)
		return
	}

	if err := h.sessionStore.SetUserID(w, r, username); err != nil {
		log.Printf("LoginPostHandler: Error setting session: %v", err)
		http.Redirect(w, r, fmt.Sprintf("/login?status=error&message=%s", url.QueryEscape("Failed to create login session.")), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		log.Printf("LogoutHandler: Error clearing session: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// checkCredentials verifies the single admin identity. A configured bcrypt
// hash takes precedence over the plaintext ADMIN_PASSWORD.
func (h *AuthHandler) checkCredentials(username, password string) bool {
	if subtle.ConstantTimeCompare([]byte(username), []byte(h.env.AdminUsername)) != 1 {
		return false
	}

	if h.env.AdminPasswordHash != "" {
		return helpers.PasswordCompare(h.env.AdminPasswordHash, []byte(password))
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(h.env.AdminPassword)) == 1
}
