package sessions

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// GuestCookieName carries the opaque token identifying an anonymous
// visitor's cart across requests.
const GuestCookieName = "cart_session"

const GuestCookieLifetime = 24 * time.Hour

func ReadGuestToken(r *http.Request) string {
	cookie, err := r.Cookie(GuestCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// IssueGuestToken generates a fresh opaque token and sets it on the
// response with the fixed guest lifetime.
func IssueGuestToken(w http.ResponseWriter) string {
	token := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     GuestCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(GuestCookieLifetime),
		MaxAge:   int(GuestCookieLifetime / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return token
}

// ExtendGuestToken re-sets the cookie so an active guest keeps a full
// lifetime window ahead of them.
func ExtendGuestToken(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     GuestCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(GuestCookieLifetime),
		MaxAge:   int(GuestCookieLifetime / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearGuestToken expires the cookie immediately, used after a
// successful merge so the client is treated as authenticated-only.
func ClearGuestToken(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     GuestCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
