package environment

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load reads a .env file when one exists. Variables already set in the
// process environment win over the file.
func Load() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	return godotenv.Load()
}

func GetPort() string {
	return getString("PORT", "8080")
}

func IsDebug() bool {
	return getBool("DEBUG", false)
}

func GetOpenAIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

func GetOpenAIModel() string {
	return getString("OPENAI_MODEL", "gpt-4o-mini")
}

// GetOpenAIBaseURL is empty unless a proxy or compatible endpoint is used
func GetOpenAIBaseURL() string {
	return os.Getenv("OPENAI_BASE_URL")
}

func GetTripAdvisorKey() string {
	return os.Getenv("TRIPADVISOR_API_KEY")
}

func GetTripAdvisorBaseURL() string {
	return getString("TRIPADVISOR_BASE_URL", "https://api.content.tripadvisor.com/api/v1")
}

func GetPlacesLanguage() string {
	return getString("PLACES_LANGUAGE", "en")
}

// GetPlacesRatePerSecond is the provider call budget shared by all requests
func GetPlacesRatePerSecond() float64 {
	return getFloat("PLACES_RATE_PER_SECOND", 5)
}

func GetPlacesTimeout() time.Duration {
	return time.Duration(getInt("PLACES_TIMEOUT_SECONDS", 10)) * time.Second
}

func GetPlannerMaxConcurrency() int {
	return getInt("PLANNER_MAX_CONCURRENCY", 4)
}

// GetStoreBackend is either "firestore" or "mongo"
func GetStoreBackend() string {
	return getString("STORE_BACKEND", "firestore")
}

func GetFirebaseKey() string {
	return os.Getenv("FIREBASE_CREDENTIALS_BASE64")
}

func GetFirebaseProjectID() string {
	return os.Getenv("FIREBASE_PROJECT_ID")
}

func GetMongoURI() string {
	return getString("MONGO_URI", "mongodb://localhost:27017")
}

func GetMongoDatabase() string {
	return getString("MONGO_DB", "travelmate")
}

// GetRedisURL is empty when the place cache is disabled
func GetRedisURL() string {
	return os.Getenv("REDIS_URL")
}

func GetPlaceCacheTTL() time.Duration {
	return time.Duration(getInt("PLACE_CACHE_TTL_MINUTES", 60*24)) * time.Minute
}

// GetJWTSecret is empty when Firebase ID tokens are used instead
func GetJWTSecret() string {
	return os.Getenv("JWT_SECRET")
}

func GetPlanRatePerMinute() int {
	return getInt("PLAN_RATE_PER_MINUTE", 6)
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
