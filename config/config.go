package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every tunable of the client gateway. It is built once in main
// and handed down explicitly; nothing reads the environment after Load.
type Config struct {
	Port string

	// Remote service base URLs. The names mirror the upstream deployment:
	// the restaurant service also owns carts, orders and addresses, and the
	// utils service owns payments.
	AuthServiceURL       string
	RestaurantServiceURL string
	RiderServiceURL      string
	UtilsServiceURL      string
	RealtimeServiceURL   string

	// GeocoderURL is the reverse-geocoding endpoint (Nominatim-compatible).
	GeocoderURL string

	// InternalKey authenticates the two rider order routes that use the
	// x-internal-key header instead of a bearer token.
	InternalKey string

	// Realtime reconnection tuning.
	ReconnectAttempts int
	ReconnectDelay    time.Duration

	// Fallback coordinates used when no location has been resolved yet.
	DefaultLatitude  float64
	DefaultLongitude float64

	// DatabasePath is the sqlite file holding the bearer token and the
	// notification history. This is the only durable client-side state.
	DatabasePath string
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	return &Config{
		Port:                 getEnv("PORT", "5173"),
		AuthServiceURL:       getEnv("AUTH_SERVICE_URL", "http://localhost:4000"),
		RestaurantServiceURL: getEnv("RESTAURANT_SERVICE_URL", "http://localhost:4001"),
		RiderServiceURL:      getEnv("RIDER_SERVICE_URL", "http://localhost:4002"),
		UtilsServiceURL:      getEnv("UTILS_SERVICE_URL", "http://localhost:4003"),
		RealtimeServiceURL:   getEnv("REALTIME_SERVICE_URL", "ws://localhost:4004"),
		GeocoderURL:          getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org/reverse"),
		InternalKey:          getEnv("INTERNAL_KEY", "internal"),
		ReconnectAttempts:    getEnvInt("REALTIME_RECONNECT_ATTEMPTS", 10),
		ReconnectDelay:       getEnvDuration("REALTIME_RECONNECT_DELAY", 2*time.Second),
		DefaultLatitude:      getEnvFloat("DEFAULT_LATITUDE", 28.6139),
		DefaultLongitude:     getEnvFloat("DEFAULT_LONGITUDE", 77.2090),
		DatabasePath:         getEnv("DATABASE_PATH", "tomato_client.db"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("Invalid value for %s, using default %d", key, fallback)
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("Invalid value for %s, using default %v", key, fallback)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("Invalid value for %s, using default %s", key, fallback)
	}
	return fallback
}
