package middlewares

import (
	"context"
	"log"
	"net/http"

	"github.com/yogaprasetya/go-storefront/app/helpers"
	"github.com/yogaprasetya/go-storefront/app/repositories"
	"github.com/yogaprasetya/go-storefront/app/utils/sessions"
)

func UserContextMiddleware(sessionStore sessions.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sessionStore.GetUserID(r)
			if userID != "" {
				ctx := context.WithValue(r.Context(), helpers.ContextKeyUserID, userID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func RequireAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(helpers.ContextKeyUserID).(string)
		if !ok || userID == "" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CartCountMiddleware resolves the request's cart without creating one
// and exposes its item count to the templates.
func CartCountMiddleware(cartRepo repositories.CartRepositoryImpl, sessionStore sessions.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			count := 0

			userID := sessionStore.GetUserID(r)
			token := sessions.ReadGuestToken(r)

			var cartID string
			if userID != "" {
				if cart, err := cartRepo.FindByUserID(r.Context(), userID); err == nil {
					cartID = cart.ID
				}
			} else if token != "" {
				if cart, err := cartRepo.FindGuestCart(r.Context(), token); err == nil {
					cartID = cart.ID
				}
			}

			if cartID != "" {
				c, err := cartRepo.GetCartItemCount(r.Context(), cartID)
				if err != nil {
					log.Printf("CartCountMiddleware: failed to count items for cart %s: %v", cartID, err)
				} else {
					count = c
				}
			}

			ctx := context.WithValue(r.Context(), helpers.ContextKeyCartCount, count)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
