package helpers

import (
	"net/http"

	"github.com/gorilla/csrf"
)

type ContextKey string

const (
	ContextKeyUserID    ContextKey = "userID"
	ContextKeyUser      ContextKey = "user"
	ContextKeyCartCount ContextKey = "cartCount"
)

// GetBaseData merges the per-request ambient values every template
// needs with the page-specific payload.
func GetBaseData(r *http.Request, pageData map[string]interface{}) map[string]interface{} {
	data := map[string]interface{}{
		"CSRFField": csrf.TemplateField(r),
	}

	if userID, ok := r.Context().Value(ContextKeyUserID).(string); ok && userID != "" {
		data["UserID"] = userID
		data["IsLoggedIn"] = true
	}
	if count, ok := r.Context().Value(ContextKeyCartCount).(int); ok {
		data["CartCount"] = count
	}

	for k, v := range pageData {
		data[k] = v
	}
	return data
}
