package handlers

import (
	"net/http"

	"imoveisBack/internal/models"
)

// getParam returns a path or query parameter value regardless of whether
// the router stores it with a leading colon or not. It also supports the
// standard net/http PathValue API available in recent Go versions.
func getParam(r *http.Request, name string) string {
	if r == nil {
		return ""
	}

	if val := r.URL.Query().Get(":" + name); val != "" {
		return val
	}

	if val := r.URL.Query().Get(name); val != "" {
		return val
	}

	return r.PathValue(name)
}

// canActFor reports whether the authenticated caller may act on the given
// account: the account itself or an admin.
func canActFor(r *http.Request, userID int) bool {
	callerID, _ := r.Context().Value("user_id").(int)
	role, _ := r.Context().Value("role").(string)
	return callerID == userID || role == models.RoleAdmin
}
