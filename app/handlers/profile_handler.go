package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"github.com/yogaprasetya/go-storefront/app/helpers"
	"github.com/yogaprasetya/go-storefront/app/repositories"
	"golang.org/x/crypto/bcrypt"
)

type ProfileHandler struct {
	render    *render.Render
	userRepo  repositories.UserRepositoryImpl
	orderRepo repositories.OrderRepositoryImpl
	validator *validator.Validate
}

func NewProfileHandler(r *render.Render, userRepo repositories.UserRepositoryImpl, orderRepo repositories.OrderRepositoryImpl, validate *validator.Validate) *ProfileHandler {
	return &ProfileHandler{
		render:    r,
		userRepo:  userRepo,
		orderRepo: orderRepo,
		validator: validate,
	}
}

type ProfileForm struct {
	FirstName string `form:"first_name" validate:"required,min=2,max=100"`
	LastName  string `form:"last_name" validate:"required,min=2,max=100"`
	Phone     string `form:"phone" validate:"omitempty,max=20"`
	Password  string `form:"password" validate:"omitempty,min=6"`
}

func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)

	user, err := h.userRepo.FindByID(r.Context(), userID)
	if err != nil || user == nil {
		log.Printf("Show: failed to load user %s: %v", userID, err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	orders, err := h.orderRepo.GetByUserID(r.Context(), userID)
	if err != nil {
		log.Printf("Show: failed to load orders for user %s: %v", userID, err)
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"title":         "Profile",
		"User":          user,
		"Orders":        orders,
		"MessageStatus": r.URL.Query().Get("status"),
		"Message":       r.URL.Query().Get("message"),
	})
	_ = h.render.HTML(w, http.StatusOK, "profile/index", data)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)

	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, "/profile", "failed to process profile data")
		return
	}

	form := ProfileForm{
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
		Phone:     r.FormValue("phone"),
		Password:  r.FormValue("password"),
	}
	if err := h.validator.Struct(form); err != nil {
		redirectWithError(w, r, "/profile", "please fill in all fields correctly")
		return
	}

	user, err := h.userRepo.FindByID(r.Context(), userID)
	if err != nil || user == nil {
		log.Printf("Update: failed to load user %s: %v", userID, err)
		redirectWithError(w, r, "/profile", "server error")
		return
	}

	user.FirstName = form.FirstName
	user.LastName = form.LastName
	user.Phone = form.Phone
	if form.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Update: error hashing password: %v", err)
			redirectWithError(w, r, "/profile", "server error")
			return
		}
		user.Password = string(hashed)
	}
	user.UpdatedAt = time.Now()

	if err := h.userRepo.Update(r.Context(), user); err != nil {
		log.Printf("Update: failed to save user %s: %v", userID, err)
		redirectWithError(w, r, "/profile", "failed to update profile")
		return
	}

	http.Redirect(w, r, "/profile?status=success&message=profile+updated", http.StatusSeeOther)
}
