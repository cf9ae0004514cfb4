package entities

import (
	"time"
)

// Facility represents a care facility in the system
type Facility struct {
	ID           string          `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	Address      string          `json:"address" db:"address"`
	Region       string          `json:"region" db:"region"`
	Capabilities map[string]bool `json:"capabilities" db:"-"`
	Location     *Location       `json:"location,omitempty" db:"-"`
	GeocodedAt   *time.Time      `json:"geocoded_at,omitempty" db:"geocoded_at"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// Geocoded reports whether the facility carries resolved coordinates.
// A facility without a location is excluded from distance-based search.
func (f *Facility) Geocoded() bool {
	return f.Location != nil
}

// HasCapability reports whether the named boolean capability is set true.
func (f *Facility) HasCapability(name string) bool {
	return f.Capabilities[name]
}

// FacilityMatch pairs a facility with its distance from a query point.
type FacilityMatch struct {
	Facility      *Facility `json:"facility"`
	DistanceMiles float64   `json:"distance_miles"`
}
