package middlewares

import (
	"log"
	"net/http"
	"net/url"

	"github.com/rmaulana/go-catalog/app/helpers"
)

// AdminAuthMiddleware gates the admin panel behind the single configured
// admin identity.
func AdminAuthMiddleware(adminUsername string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := r.Context().Value(helpers.ContextKeyUserID).(string)
			if !ok || userID == "" {
				log.Println("AdminAuthMiddleware: User ID not found in context or empty. Redirecting to login.")
				http.Redirect(w, r, "/login?status=error&message="+url.QueryEscape("You must log in to access the admin panel."), http.StatusFound)
				return
			}

			if userID != adminUsername {
				log.Printf("AdminAuthMiddleware: User %s attempted to access admin panel without admin identity.", userID)
				http.Redirect(w, r, "/?status=error&message="+url.QueryEscape("You do not have permission to access this page."), http.StatusFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
