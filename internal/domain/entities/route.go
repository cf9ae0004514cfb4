package entities

// RouteDistance holds the result of a road-distance lookup between two
// addresses. Driving fields are nil when the road-distance provider reports
// anything other than a success status for the pair; StraightMiles is nil
// when either endpoint could not be geocoded. A route may legitimately be
// unreachable by road while still having a straight-line distance.
type RouteDistance struct {
	DrivingDistance *string  `json:"driving_distance"`
	DrivingDuration *string  `json:"driving_duration"`
	StraightMiles   *float64 `json:"straight_miles"`
	Status          string   `json:"status"`
}
