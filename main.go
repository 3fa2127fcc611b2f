package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"course-server/handlers"
	"course-server/middleware"
	"course-server/services"
)

const (
	defaultDirectionsEndpoint = "https://maps.googleapis.com/maps/api/directions/json"
	defaultGeocodeEndpoint    = "https://dapi.kakao.com/v2/local/search/address.json"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment configuration")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI environment variable is not set")
	}
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}
	if err := client.Ping(context.Background(), nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")
	db := client.Database("course_db")

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		log.Fatal("REDIS_ADDR environment variable is not set")
	}
	redisDBStr := os.Getenv("REDIS_DB")
	if redisDBStr == "" {
		log.Fatal("REDIS_DB environment variable is not set")
	}
	redisDB, err := strconv.Atoi(redisDBStr)
	if err != nil {
		log.Fatalf("Invalid REDIS_DB value: %v", err)
	}
	redisClient := redis.NewClient(&redis.Options{
		Addr: redisAddr,
		DB:   redisDB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	oracleURL := os.Getenv("ORACLE_API_URL")
	oracleKey := os.Getenv("ORACLE_API_KEY")
	oracleModel := os.Getenv("ORACLE_MODEL_ID")
	if oracleURL == "" || oracleKey == "" || oracleModel == "" {
		log.Fatal("ORACLE_API_URL, ORACLE_API_KEY and ORACLE_MODEL_ID environment variables are not set")
	}
	googleKey := os.Getenv("GOOGLE_API_KEY")
	if googleKey == "" {
		log.Fatal("GOOGLE_API_KEY environment variable is not set")
	}
	kakaoKey := os.Getenv("KAKAO_API_KEY")
	if kakaoKey == "" {
		log.Fatal("KAKAO_API_KEY environment variable is not set")
	}

	// Initialize services
	catalog := services.NewCatalogService(db, redisClient)
	if err := catalog.SeedCongestion(context.Background()); err != nil {
		log.Printf("Failed to seed area congestion into Redis: %v", err)
	}
	oracle := services.NewModelOracle(oracleURL, oracleKey, oracleModel)
	courseService := services.NewCourseService(oracle)
	durations := services.NewDurationService(defaultDirectionsEndpoint, googleKey)
	itinerary := services.NewItineraryService(catalog, catalog, durations)
	geocoder := services.NewGeocodeService(defaultGeocodeEndpoint, kakaoKey)
	memberService := services.NewMemberService(services.NewMongoMemberStore(db), geocoder)

	// Initialize handlers
	hotplaceHandler := handlers.NewHotplaceHandler(catalog)
	courseHandler := handlers.NewCourseHandler(catalog, courseService, itinerary, memberService)
	memberHandler := handlers.NewMemberHandler(memberService, catalog, itinerary)

	r := mux.NewRouter()

	// CORS and panic recovery middleware
	r.Use(middleware.CORSMiddleware([]string{"*"}))
	r.Use(middleware.ErrorMiddleware())

	// Hotplace routes
	hotplaceRouter := r.PathPrefix("/hotplace").Subrouter()
	hotplaceRouter.HandleFunc("/areas", hotplaceHandler.GetAreas).Methods("GET", "OPTIONS")
	hotplaceRouter.HandleFunc("/places", hotplaceHandler.GetPlaces).Methods("GET", "OPTIONS")
	hotplaceRouter.HandleFunc("/parkinglots", hotplaceHandler.GetParkingLots).Methods("GET", "OPTIONS")
	hotplaceRouter.HandleFunc("/detail", hotplaceHandler.GetPlaceDetail).Methods("GET", "OPTIONS")

	// Course routes
	courseRouter := r.PathPrefix("/course").Subrouter()
	courseRouter.HandleFunc("/recommend", courseHandler.RecommendCourse).Methods("POST", "OPTIONS")
	courseRouter.HandleFunc("/save", courseHandler.SaveCourse).Methods("POST", "OPTIONS")
	courseRouter.HandleFunc("/stop", courseHandler.StopCourse).Methods("POST", "OPTIONS")

	// Member routes
	memberRouter := r.PathPrefix("/member").Subrouter()
	memberRouter.HandleFunc("/info", memberHandler.GetInfo).Methods("GET", "OPTIONS")
	memberRouter.HandleFunc("/start", memberHandler.SetStartLocation).Methods("POST", "OPTIONS")
	memberRouter.HandleFunc("/courses", memberHandler.GetCourses).Methods("GET", "OPTIONS")
	memberRouter.HandleFunc("/courses/realtime", memberHandler.GetRealtimeCourse).Methods("GET", "OPTIONS")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}
