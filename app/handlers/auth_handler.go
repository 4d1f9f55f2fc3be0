package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/unrolled/render"
	"github.com/yogaprasetya/go-storefront/app/events"
	"github.com/yogaprasetya/go-storefront/app/helpers"
	"github.com/yogaprasetya/go-storefront/app/models"
	"github.com/yogaprasetya/go-storefront/app/repositories"
	"github.com/yogaprasetya/go-storefront/app/utils/sessions"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	render          *render.Render
	userRepo        repositories.UserRepositoryImpl
	sessionStore    sessions.SessionStore
	loginDispatcher *events.LoginDispatcher
	validator       *validator.Validate
}

func NewAuthHandler(
	r *render.Render,
	userRepo repositories.UserRepositoryImpl,
	sessionStore sessions.SessionStore,
	loginDispatcher *events.LoginDispatcher,
	validate *validator.Validate,
) *AuthHandler {
	return &AuthHandler{
		render:          r,
		userRepo:        userRepo,
		sessionStore:    sessionStore,
		loginDispatcher: loginDispatcher,
		validator:       validate,
	}
}

type RegisterForm struct {
	FirstName string `form:"first_name" validate:"required,min=2,max=100"`
	LastName  string `form:"last_name" validate:"required,min=2,max=100"`
	Email     string `form:"email" validate:"required,email"`
	Password  string `form:"password" validate:"required,min=6"`
}

func (h *AuthHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	if userID, ok := r.Context().Value(helpers.ContextKeyUserID).(string); ok && userID != "" {
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"title":         "Login",
		"MessageStatus": r.URL.Query().Get("status"),
		"Message":       r.URL.Query().Get("message"),
	})
	_ = h.render.HTML(w, http.StatusOK, "auth/login", data)
}

func (h *AuthHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("LoginPost: error parsing form: %v", err)
		redirectWithError(w, r, "/login", "failed to process login data")
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := h.userRepo.FindByEmail(r.Context(), email)
	if err != nil {
		log.Printf("LoginPost: error getting user by email %q: %v", email, err)
		redirectWithError(w, r, "/login", "server error")
		return
	}
	if user == nil {
		redirectWithError(w, r, "/login", "invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		redirectWithError(w, r, "/login", "invalid email or password")
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		log.Printf("LoginPost: error setting user session: %v", err)
		redirectWithError(w, r, "/login", "failed to create login session")
		return
	}

	// The guest token present at login time rides along on the event so
	// the merge consumer can find the visitor's cart.
	h.loginDispatcher.Publish(r.Context(), events.LoginEvent{
		UserID:    user.ID,
		SessionID: sessions.ReadGuestToken(r),
	})
	sessions.ClearGuestToken(w)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) RegisterGet(w http.ResponseWriter, r *http.Request) {
	data := helpers.GetBaseData(r, map[string]interface{}{
		"title":         "Register",
		"MessageStatus": r.URL.Query().Get("status"),
		"Message":       r.URL.Query().Get("message"),
	})
	_ = h.render.HTML(w, http.StatusOK, "auth/register", data)
}

func (h *AuthHandler) RegisterPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, "/register", "failed to process registration data")
		return
	}

	form := RegisterForm{
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
		Email:     r.FormValue("email"),
		Password:  r.FormValue("password"),
	}
	if err := h.validator.Struct(form); err != nil {
		redirectWithError(w, r, "/register", "please fill in all fields correctly")
		return
	}

	existing, err := h.userRepo.FindByEmail(r.Context(), form.Email)
	if err != nil {
		log.Printf("RegisterPost: error checking email %q: %v", form.Email, err)
		redirectWithError(w, r, "/register", "server error")
		return
	}
	if existing != nil {
		redirectWithError(w, r, "/register", "email is already registered")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("RegisterPost: error hashing password: %v", err)
		redirectWithError(w, r, "/register", "server error")
		return
	}

	user := &models.User{
		ID:        uuid.New().String(),
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  string(hashed),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := h.userRepo.Create(r.Context(), user); err != nil {
		log.Printf("RegisterPost: error creating user: %v", err)
		redirectWithError(w, r, "/register", "failed to create account")
		return
	}

	http.Redirect(w, r, "/login?status=success&message=account+created", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		log.Printf("Logout: error clearing session: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
