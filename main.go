// main.go
package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"go-storefront/controllers"
	"go-storefront/middleware"
	"go-storefront/models"
	"go-storefront/routes"
	"go-storefront/utils"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, proceeding with environment variables")
	}

	// Set the JWT secret key
	if err := utils.InitJWTKey(os.Getenv("JWT_SECRET")); err != nil {
		log.Fatal().Err(err).Msg("JWT_SECRET must be set")
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", uploadDir).Msg("failed to create upload directory")
	}

	// Connect to MongoDB
	client := utils.ConnectDB()
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			log.Fatal().Err(err).Msg("MongoDB disconnect failed")
		}
	}()

	seedAdmin(client)

	// Initialize controllers
	emailService := utils.NewEmailService()
	userController := controllers.NewUserController(client)
	productController := controllers.NewProductController(client)
	cartController := controllers.NewCartController(client)
	orderController := controllers.NewOrderController(client, emailService)
	adminController := controllers.NewAdminController(client, uploadDir)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, userController, productController, cartController, orderController, adminController, uploadDir)
	router.Use(middleware.AuthMiddleware)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Info().Str("port", port).Msg("server is running")
	log.Fatal().Err(http.ListenAndServe(":"+port, router)).Msg("server stopped")
}

// seedAdmin creates the admin account from ADMIN_EMAIL/ADMIN_PASSWORD when no
// admin user exists yet. Admin access is a role on the user record; there is
// no separate credential path.
func seedAdmin(client *mongo.Client) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := client.Database("ecommerce").Collection("users")
	count, err := users.CountDocuments(ctx, bson.M{"role": "admin"})
	if err != nil {
		log.Fatal().Err(err).Msg("admin seed: lookup failed")
	}
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("admin seed: password hash failed")
	}

	_, err = users.InsertOne(ctx, models.User{
		Email:     email,
		Password:  string(hashed),
		Role:      "admin",
		Cart:      []models.CartLine{},
		CreatedAt: time.Now(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("admin seed: insert failed")
	}
	log.Info().Str("email", email).Msg("admin account created")
}
