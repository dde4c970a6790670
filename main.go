package main

import (
	"context"
	"log"
	"os"
	"time"

	firebase "firebase.google.com/go"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"

	"github.com/rp-labs/storefront-api/auth"
	"github.com/rp-labs/storefront-api/cart"
	"github.com/rp-labs/storefront-api/products"
	"github.com/rp-labs/storefront-api/routes"
	"github.com/rp-labs/storefront-api/store"
	"github.com/rp-labs/storefront-api/users"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("❌ JWT_SECRET must be set")
	}

	ctx := context.Background()

	// Firebase: one app serves both the auth client and Firestore
	app := initFirebase(ctx)

	authClient, err := app.Auth(ctx)
	if err != nil {
		log.Fatalf("❌ Error getting Firebase Auth client: %v", err)
	}
	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		log.Fatalf("❌ Error getting Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	// Services
	recordStore := store.NewFirestoreStore(firestoreClient)
	productService := products.NewService(recordStore)
	userService := users.NewService(recordStore)

	provider := auth.NewFirebaseProvider(authClient, os.Getenv("FIREBASE_PROJECT_ID"), os.Getenv("FIREBASE_WEB_API_KEY"))
	session := auth.NewSession(provider, userService)
	defer session.Close()

	// Local cart storage
	cartPath := os.Getenv("CART_DB_PATH")
	if cartPath == "" {
		cartPath = "cart.db"
	}
	cartStorage, err := cart.OpenStorage(cartPath)
	if err != nil {
		log.Fatalf("❌ Failed to open cart storage: %v", err)
	}
	cartStore := cart.New(cartStorage)
	defer cartStore.Close()

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, routes.Deps{
		Products:  productService,
		Users:     userService,
		Cart:      cartStore,
		Session:   session,
		JWTSecret: []byte(jwtSecret),
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initFirebase builds the Firebase app from the credentials JSON in the
// environment (no key file on disk).
func initFirebase(ctx context.Context) *firebase.App {
	credsJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")
	if credsJSON == "" {
		log.Fatal("❌ FIREBASE_CREDENTIALS_JSON must be set")
	}
	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	if projectID == "" {
		log.Fatal("❌ FIREBASE_PROJECT_ID must be set")
	}

	opt := option.WithCredentialsJSON([]byte(credsJSON))
	config := &firebase.Config{ProjectID: projectID}

	app, err := firebase.NewApp(ctx, config, opt)
	if err != nil {
		log.Fatalf("❌ Error initializing Firebase app: %v", err)
	}
	return app
}
