package middlewares

import (
	"log"
	"net/http"

	"github.com/yogaprasetya/go-storefront/app/services"
	"github.com/yogaprasetya/go-storefront/app/utils/sessions"
)

// GuestSessionMiddleware orchestrates the guest-cart lifecycle once per
// request, in strict precedence order:
//
//  1. no user, no guest cookie  -> issue a fresh guest token
//  2. user and guest cookie     -> merge the guest cart, clear the cookie
//  3. anything else             -> extend the session's liveness
//
// It performs no persistence of its own beyond one cookie write; all
// store writes happen inside the invoked operation.
func GuestSessionMiddleware(
	sessionStore sessions.SessionStore,
	cartService *services.CartService,
	guestStore sessions.GuestSessionStore,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sessionStore.GetUserID(r)
			token := sessions.ReadGuestToken(r)

			switch {
			case userID == "" && token == "":
				token = sessions.IssueGuestToken(w)
				if err := guestStore.Touch(r.Context(), token); err != nil {
					log.Printf("GuestSessionMiddleware: failed to record new guest session: %v", err)
				}

			case userID != "" && token != "":
				if err := cartService.MergeGuestCart(r.Context(), userID, token); err != nil {
					log.Printf("GuestSessionMiddleware: merge failed for user %s: %v", userID, err)
					http.Error(w, "internal server error", http.StatusInternalServerError)
					return
				}
				sessions.ClearGuestToken(w)
				if err := guestStore.Delete(r.Context(), token); err != nil {
					log.Printf("GuestSessionMiddleware: failed to drop merged guest session: %v", err)
				}

			default:
				if token != "" {
					if err := guestStore.Touch(r.Context(), token); err != nil {
						log.Printf("GuestSessionMiddleware: failed to extend guest session: %v", err)
					}
					sessions.ExtendGuestToken(w, token)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
