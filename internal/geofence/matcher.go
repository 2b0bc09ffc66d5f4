package geofence

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Santa0027/fleetops/pkg/geo"
)

// Strategy selects how a matching fence is chosen when several contain the point.
type Strategy string

const (
	// StrategyFirstMatch returns the first containing fence in iteration
	// order. This is the historical behavior and the default.
	StrategyFirstMatch Strategy = "first"
	// StrategyNearest returns the containing fence whose center is closest
	// to the point.
	StrategyNearest Strategy = "nearest"
)

// ParseStrategy converts a config string into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyFirstMatch, StrategyNearest:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown match strategy %q", s)
}

// Matcher finds the authorized fence containing a point.
type Matcher struct {
	strategy Strategy
}

// NewMatcher creates a matcher with the given strategy.
func NewMatcher(strategy Strategy) *Matcher {
	return &Matcher{strategy: strategy}
}

// Match returns the fence containing point, or false if none does. Only
// active fences scoped to the driver (or global) are considered. A fence
// contains the point when the haversine distance to its center does not
// exceed its radius.
func (m *Matcher) Match(point geo.Coordinate, driverID uuid.UUID, fences []GeoFence) (*GeoFence, bool) {
	var best *GeoFence
	bestDist := 0.0

	for i := range fences {
		fence := &fences[i]
		if !fence.IsActive || !fence.AppliesTo(driverID) {
			continue
		}

		dist := geo.Distance(point, fence.Center)
		if dist > fence.RadiusMeters {
			continue
		}

		if m.strategy == StrategyFirstMatch {
			return fence, true
		}

		if best == nil || dist < bestDist {
			best = fence
			bestDist = dist
		}
	}

	if best == nil {
		return nil, false
	}
	return best, true
}
