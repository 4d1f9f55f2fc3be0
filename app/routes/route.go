package routes

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/redis/go-redis/v9"
	"github.com/yogaprasetya/go-storefront/app/configs"
	"github.com/yogaprasetya/go-storefront/app/events"
	"github.com/yogaprasetya/go-storefront/app/handlers"
	"github.com/yogaprasetya/go-storefront/app/middlewares"
	"github.com/yogaprasetya/go-storefront/app/repositories"
	"github.com/yogaprasetya/go-storefront/app/services"
	"github.com/yogaprasetya/go-storefront/app/utils/renderer"
	"github.com/yogaprasetya/go-storefront/app/utils/sessions"
	"gorm.io/gorm"
)

func NewRouter(
	db *gorm.DB,
	redisClient *redis.Client,
	keys *configs.SessionKeys,
	cartConfig configs.CartConfig,
	snapClient snap.Client,
) *mux.Router {
	render := renderer.New()
	validate := validator.New()

	cartRepo := repositories.NewCartRepository(db)
	cartItemRepo := repositories.NewCartItemRepository(db)
	productRepo := repositories.NewProductRepository(db)
	userRepo := repositories.NewUserRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	wishlistRepo := repositories.NewWishlistRepository(db)
	reservationRepo := repositories.NewStockReservationRepository(db)

	sessionStore := sessions.NewCookieSessionStore(keys.AuthKey, keys.EncKey)
	guestStore := sessions.NewRedisGuestStore(redisClient, sessions.GuestCookieLifetime)

	cartService := services.NewCartService(cartRepo, cartItemRepo, productRepo, reservationRepo, cartConfig)
	checkoutService := services.NewCheckoutService(db, cartRepo, cartItemRepo, productRepo, userRepo, orderRepo, reservationRepo, snapClient, cartConfig)

	loginDispatcher := events.NewLoginDispatcher()
	loginDispatcher.Subscribe(func(ctx context.Context, event events.LoginEvent) error {
		return cartService.MergeGuestCart(ctx, event.UserID, event.SessionID)
	})

	homeHandler := handlers.NewHomeHandler(render, productRepo)
	productHandler := handlers.NewProductHandler(render, productRepo)
	cartHandler := handlers.NewCartHandler(render, cartService, sessionStore)
	authHandler := handlers.NewAuthHandler(render, userRepo, sessionStore, loginDispatcher, validate)
	profileHandler := handlers.NewProfileHandler(render, userRepo, orderRepo, validate)
	checkoutHandler := handlers.NewCheckoutHandler(render, cartService, checkoutService, orderRepo, validate)
	wishlistHandler := handlers.NewWishlistHandler(render, wishlistRepo, cartConfig)

	router := mux.NewRouter()
	router.Use(middlewares.UserContextMiddleware(sessionStore))
	router.Use(middlewares.GuestSessionMiddleware(sessionStore, cartService, guestStore))
	router.Use(middlewares.CartCountMiddleware(cartRepo, sessionStore))

	router.HandleFunc("/", homeHandler.Index).Methods("GET")
	router.HandleFunc("/products", productHandler.List).Methods("GET")
	router.HandleFunc("/products/{slug}", productHandler.Detail).Methods("GET")

	router.HandleFunc("/cart", cartHandler.Show).Methods("GET")
	router.HandleFunc("/cart/add", cartHandler.Add).Methods("POST")
	router.HandleFunc("/cart/update", cartHandler.Update).Methods("POST")
	router.HandleFunc("/cart/remove", cartHandler.Remove).Methods("POST")

	router.HandleFunc("/login", authHandler.LoginGet).Methods("GET")
	router.HandleFunc("/login", authHandler.LoginPost).Methods("POST")
	router.HandleFunc("/register", authHandler.RegisterGet).Methods("GET")
	router.HandleFunc("/register", authHandler.RegisterPost).Methods("POST")
	router.HandleFunc("/logout", authHandler.Logout).Methods("POST")

	authed := router.NewRoute().Subrouter()
	authed.Use(middlewares.RequireAuthMiddleware)
	authed.HandleFunc("/profile", profileHandler.Show).Methods("GET")
	authed.HandleFunc("/profile", profileHandler.Update).Methods("POST")
	authed.HandleFunc("/checkout", checkoutHandler.Show).Methods("GET")
	authed.HandleFunc("/checkout", checkoutHandler.Process).Methods("POST")
	authed.HandleFunc("/payment/finish", checkoutHandler.PaymentFinish).Methods("GET")
	authed.HandleFunc("/wishlist", wishlistHandler.Show).Methods("GET")
	authed.HandleFunc("/wishlist/add", wishlistHandler.Add).Methods("POST")
	authed.HandleFunc("/wishlist/remove", wishlistHandler.Remove).Methods("POST")

	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("public"))))

	return router
}
