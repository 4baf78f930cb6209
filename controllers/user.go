package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"go-storefront/middleware"
	"go-storefront/models"
	"go-storefront/utils"
	"go-storefront/views"
)

// UserController handles registration, login and logout
type UserController struct {
	Collection *mongo.Collection
}

// NewUserController creates a new UserController
func NewUserController(client *mongo.Client) *UserController {
	collection := client.Database("ecommerce").Collection("users")
	return &UserController{
		Collection: collection,
	}
}

// Landing redirects to the home page, or to login when unauthenticated.
func (uc *UserController) Landing(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.ClaimsFromRequest(r); ok {
		http.Redirect(w, r, "/home", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

// RegisterForm renders step 1 of the signup flow.
func (uc *UserController) RegisterForm(w http.ResponseWriter, r *http.Request) {
	views.Render(w, http.StatusOK, "register_step1", views.RegisterStep1Page{})
}

// RegisterStep1 validates the identity fields, rejects duplicates and renders
// the address form for step 2.
func (uc *UserController) RegisterStep1(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		views.Render(w, http.StatusBadRequest, "register_step1", views.RegisterStep1Page{Error: "Invalid form submission."})
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))
	phone := strings.TrimSpace(r.FormValue("phone"))
	password := r.FormValue("password")

	page := views.RegisterStep1Page{Email: email, Phone: phone}
	switch {
	case !utils.ValidEmail(email):
		page.Error = "Please enter a valid email address."
	case !utils.ValidPhone(phone):
		page.Error = "Please enter a valid 10-digit phone number."
	case len(password) < 6:
		page.Error = "Password must be at least 6 characters."
	}
	if page.Error != "" {
		views.Render(w, http.StatusBadRequest, "register_step1", page)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	count, err := uc.Collection.CountDocuments(ctx, bson.M{"$or": []bson.M{{"email": email}, {"phone": phone}}})
	if err != nil {
		log.Error().Err(err).Msg("register: duplicate check failed")
		views.RenderError(w, http.StatusInternalServerError, "Registration failed", "Something went wrong. Please try again.")
		return
	}
	if count > 0 {
		views.Render(w, http.StatusBadRequest, "message", views.MessagePage{
			Title:    "Registration Error",
			Heading:  "Account already exists",
			Body:     "A user with this email or phone number is already registered.",
			LinkHref: "/register",
			LinkText: "Try again",
		})
		return
	}

	views.Render(w, http.StatusOK, "register_step2", views.RegisterStep2Page{
		Email:    email,
		Phone:    phone,
		Password: password,
	})
}

// RegisterStep2 validates the address fields and creates the user.
func (uc *UserController) RegisterStep2(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		views.RenderError(w, http.StatusBadRequest, "Registration failed", "Invalid form submission.")
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))
	phone := strings.TrimSpace(r.FormValue("phone"))
	password := r.FormValue("password")
	address := models.Address{
		State:    strings.TrimSpace(r.FormValue("state")),
		District: strings.TrimSpace(r.FormValue("district")),
		AreaName: strings.TrimSpace(r.FormValue("areaName")),
		Pincode:  strings.TrimSpace(r.FormValue("pincode")),
	}

	// Step-1 fields come back through hidden inputs, so re-validate them too.
	page := views.RegisterStep2Page{Email: email, Phone: phone, Password: password}
	switch {
	case !utils.ValidEmail(email) || !utils.ValidPhone(phone) || len(password) < 6:
		page.Error = "Identity details are invalid. Please start over."
	case address.State == "" || address.District == "" || address.AreaName == "":
		page.Error = "All address fields are required."
	case !utils.ValidPincode(address.Pincode):
		page.Error = "Please enter a valid 6-digit pincode."
	}
	if page.Error != "" {
		views.Render(w, http.StatusBadRequest, "register_step2", page)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("register: password hash failed")
		views.RenderError(w, http.StatusInternalServerError, "Registration failed", "Something went wrong. Please try again.")
		return
	}

	user := models.User{
		Email:     email,
		Phone:     phone,
		Password:  string(hashedPassword),
		Role:      "user",
		Address:   address,
		Cart:      []models.CartLine{},
		CreatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := uc.Collection.InsertOne(ctx, user); err != nil {
		log.Error().Err(err).Msg("register: insert failed")
		views.RenderError(w, http.StatusInternalServerError, "Registration failed", "Something went wrong. Please try again.")
		return
	}

	views.Render(w, http.StatusOK, "message", views.MessagePage{
		Title:    "Registration Successful",
		Heading:  "Account created",
		Body:     "Your account has been created. You can now log in.",
		LinkHref: "/login",
		LinkText: "Login",
		Success:  true,
	})
}

// LoginForm renders the login page.
func (uc *UserController) LoginForm(w http.ResponseWriter, r *http.Request) {
	views.Render(w, http.StatusOK, "login", views.LoginPage{})
}

// Login authenticates by email or phone plus password. There is a single
// credential path; the role comes off the user record and only decides where
// to redirect.
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		views.Render(w, http.StatusBadRequest, "login", views.LoginPage{Error: "Invalid form submission."})
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	var user models.User
	err := uc.Collection.FindOne(ctx, bson.M{
		"$or": []bson.M{{"email": username}, {"phone": username}},
	}).Decode(&user)
	if err != nil {
		views.Render(w, http.StatusUnauthorized, "login", views.LoginPage{Error: "Invalid credentials."})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		views.Render(w, http.StatusUnauthorized, "login", views.LoginPage{Error: "Invalid credentials."})
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Role)
	if err != nil {
		log.Error().Err(err).Msg("login: token generation failed")
		views.RenderError(w, http.StatusInternalServerError, "Login failed", "Something went wrong. Please try again.")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int((24 * time.Hour).Seconds()),
	})

	if user.Role == "admin" {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// Logout clears the session cookie.
func (uc *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}
