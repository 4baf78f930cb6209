// routes/routes.go
package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"go-storefront/controllers"
	"go-storefront/middleware"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, userController *controllers.UserController, productController *controllers.ProductController, cartController *controllers.CartController, orderController *controllers.OrderController, adminController *controllers.AdminController, uploadDir string) {
	// Public routes
	router.HandleFunc("/", userController.Landing).Methods("GET")
	router.HandleFunc("/register", userController.RegisterForm).Methods("GET")
	router.HandleFunc("/register-step1", userController.RegisterStep1).Methods("POST")
	router.HandleFunc("/register-step2", userController.RegisterStep2).Methods("POST")
	router.HandleFunc("/login", userController.LoginForm).Methods("GET")
	router.HandleFunc("/login", userController.Login).Methods("POST")
	router.HandleFunc("/logout", userController.Logout).Methods("GET")
	router.HandleFunc("/api/search", productController.APISearch).Methods("GET")

	// Uploaded product images
	router.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	// Storefront routes (login required)
	store := router.PathPrefix("/").Subrouter()
	store.Use(middleware.RequireUser)
	store.HandleFunc("/home", productController.Home).Methods("GET")
	store.HandleFunc("/viewproduct/{id}", productController.ViewProduct).Methods("GET")
	store.HandleFunc("/addtocart/{id}", cartController.AddToCart).Methods("POST")
	store.HandleFunc("/cart", cartController.Cart).Methods("GET")
	store.HandleFunc("/removefromcart/{id}", cartController.RemoveFromCart).Methods("GET")
	store.HandleFunc("/buynow/{id}", cartController.BuyNow).Methods("POST")
	store.HandleFunc("/checkout", orderController.Checkout).Methods("GET")
	store.HandleFunc("/completeorder", orderController.CompleteOrder).Methods("POST")

	// Admin routes
	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("", adminController.Dashboard).Methods("GET")
	admin.HandleFunc("/users", adminController.Users).Methods("GET")
	admin.HandleFunc("/userdetails/{id}", adminController.UserDetails).Methods("GET")
	admin.HandleFunc("/orders", adminController.Orders).Methods("GET")
	admin.HandleFunc("/products", adminController.Products).Methods("GET")
	admin.HandleFunc("/addproduct", adminController.AddProductForm).Methods("GET")
	admin.HandleFunc("/addproduct", adminController.AddProduct).Methods("POST")
	admin.HandleFunc("/editproduct/{id}", adminController.EditProductForm).Methods("GET")
	admin.HandleFunc("/updateproduct/{id}", adminController.UpdateProduct).Methods("POST")
	admin.HandleFunc("/deleteproduct/{id}", adminController.DeleteProduct).Methods("GET")
}
