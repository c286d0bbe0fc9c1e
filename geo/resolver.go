// Package geo resolves coordinates to a display label through the public
// Nominatim reverse-geocode endpoint.
package geo

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"
)

// FetchFailedLabel is shown when the geocoder is unreachable or returns junk.
const FetchFailedLabel = "Failed to fetch location"

// Place is a resolved position.
type Place struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	Display   string  `json:"display"`
}

type nominatimResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
	} `json:"address"`
}

// Resolver caches reverse-geocode lookups for the life of the session. The
// user's position rarely changes mid-session, so one lookup per coordinate
// pair is plenty and keeps us polite to the public endpoint.
type Resolver struct {
	mu      sync.Mutex
	baseURL string
	http    *http.Client
	cache   map[string]Place

	defaultLat float64
	defaultLng float64
}

func NewResolver(baseURL string, defaultLat, defaultLng float64) *Resolver {
	return &Resolver{
		baseURL:    baseURL,
		http:       &http.Client{Timeout: 10 * time.Second},
		cache:      make(map[string]Place),
		defaultLat: defaultLat,
		defaultLng: defaultLng,
	}
}

// Default returns the fallback position used when the browser denies or
// cannot produce a position.
func (r *Resolver) Default() (lat, lng float64) {
	return r.defaultLat, r.defaultLng
}

// Resolve reverse-geocodes a coordinate pair. Failure is non-fatal: the
// caller still gets usable coordinates with an apologetic label.
func (r *Resolver) Resolve(lat, lng float64) Place {
	key := fmt.Sprintf("%.6f,%.6f", lat, lng)

	r.mu.Lock()
	if place, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return place
	}
	r.mu.Unlock()

	place := Place{Latitude: lat, Longitude: lng, City: FetchFailedLabel}

	// baseURL already names the reverse endpoint (Nominatim's /reverse)
	url := fmt.Sprintf("%s?format=json&lat=%f&lon=%f", r.baseURL, lat, lng)
	resp, err := r.http.Get(url)
	if err != nil {
		log.Println("[geo] reverse geocode failed:", err)
		return place
	}
	defer resp.Body.Close()

	var body nominatimResponse
	if resp.StatusCode != http.StatusOK || json.NewDecoder(resp.Body).Decode(&body) != nil {
		log.Println("[geo] reverse geocode returned status", resp.StatusCode)
		return place
	}

	place.City = cityOf(body)
	place.Display = body.DisplayName

	r.mu.Lock()
	r.cache[key] = place
	r.mu.Unlock()
	return place
}

// cityOf picks the most specific locality Nominatim offers.
func cityOf(body nominatimResponse) string {
	switch {
	case body.Address.City != "":
		return body.Address.City
	case body.Address.Town != "":
		return body.Address.Town
	case body.Address.Village != "":
		return body.Address.Village
	default:
		return "Your location"
	}
}
