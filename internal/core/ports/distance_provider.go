package ports

import "context"

// DistanceResult is the travel distance and estimated duration between two
// addresses as reported by the routing service.
type DistanceResult struct {
	DistanceMeters  int
	DurationSeconds int
}

// DistanceKm returns the distance in kilometers, the unit pricing works in.
func (r DistanceResult) DistanceKm() float64 {
	return float64(r.DistanceMeters) / 1000
}

// DistanceProvider defines the contract for resolving the travel distance
// between a pickup and a dropoff address. Implementations call an external
// routing service; the core treats the result as an opaque pricing input.
type DistanceProvider interface {
	// GetDistance returns travel distance and estimated duration between two addresses.
	GetDistance(ctx context.Context, origin string, destination string) (DistanceResult, error)
}
