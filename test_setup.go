package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}

	// Test MongoDB
	fmt.Println("Testing MongoDB connection...")
	mongoURI := os.Getenv("MONGO_URI")
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal("MongoDB connection failed:", err)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(context.Background(), nil); err != nil {
		log.Fatal("MongoDB ping failed:", err)
	}
	fmt.Println("✅ MongoDB connected successfully!")

	// Test identity provider reachability
	fmt.Println("\nTesting identity provider...")
	authURL := os.Getenv("AUTH_PROVIDER_URL")
	if authURL == "" {
		authURL = "https://demobackend.emergentagent.com/auth/v1/env/oauth/session-data"
	}
	httpClient := &http.Client{Timeout: 10 * time.Second}
	resp, err := httpClient.Get(authURL)
	if err != nil {
		log.Fatal("Identity provider unreachable:", err)
	}
	resp.Body.Close()
	fmt.Println("✅ Identity provider reachable!")

	// Test Cloudinary
	fmt.Println("\nTesting Cloudinary connection...")
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		fmt.Println("⚠️  Cloudinary credentials missing; image uploads will be disabled")
	} else {
		cldURL := fmt.Sprintf("cloudinary://%s:%s@%s", apiKey, apiSecret, cloudName)
		cld, err := cloudinary.NewFromURL(cldURL)
		if err != nil {
			log.Fatal("Cloudinary initialization failed:", err)
		}

		if cld.Config.Cloud.CloudName != cloudName {
			log.Fatal("Cloudinary config mismatch")
		}
		fmt.Println("✅ Cloudinary connected successfully!")
	}

	fmt.Println("\n🎉 All systems ready!")
}
