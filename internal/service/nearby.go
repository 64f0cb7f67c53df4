package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/armenxdev/restaurant-finder/internal/geo"
	"github.com/armenxdev/restaurant-finder/internal/transport"
	"github.com/armenxdev/restaurant-finder/pkg/logging"
)

// Nearby-search bounds.
const (
	DefaultRadiusMeters = 5000.0
	MinRadiusMeters     = 1.0
	MaxRadiusMeters     = 50000.0
	DefaultNearbyLimit  = 20
	MaxNearbyLimit      = 100
)

type NearbyResult struct {
	Center transport.Coordinates
	Radius float64
	Items  []transport.NearbyRestaurant
}

// Nearby ranks open restaurants by great-circle distance from the query
// point. The repo narrows candidates with a bounding-box query; the exact
// distance decides membership and order, ties break by id.
func (s *RestaurantService) Nearby(ctx context.Context, q transport.NearbyQuery) (*NearbyResult, error) {
	l := logging.FromContext(ctx).With("svc", "restaurant.nearby")

	if !geo.ValidLat(q.Latitude) {
		return nil, fmt.Errorf("%w: latitude must be a number between -90 and 90", ErrValidation)
	}
	if !geo.ValidLng(q.Longitude) {
		return nil, fmt.Errorf("%w: longitude must be a number between -180 and 180", ErrValidation)
	}

	radius := DefaultRadiusMeters
	if q.Radius != nil {
		radius = *q.Radius
	}
	if radius < MinRadiusMeters || radius > MaxRadiusMeters {
		return nil, fmt.Errorf("%w: radius must be between %.0f and %.0f meters", ErrValidation, MinRadiusMeters, MaxRadiusMeters)
	}

	limit := DefaultNearbyLimit
	if q.Limit != nil {
		limit = *q.Limit
	}
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit must be at least 1", ErrValidation)
	}
	if limit > MaxNearbyLimit {
		limit = MaxNearbyLimit
	}

	if q.MinRating != nil && (*q.MinRating < 0 || *q.MinRating > 5) {
		return nil, fmt.Errorf("%w: minRating must be between 0 and 5", ErrValidation)
	}

	center := geo.Point{Lng: q.Longitude, Lat: q.Latitude}
	box := geo.BoundsAround(center, radius)

	candidates, err := s.Repo.OpenRestaurantsWithin(ctx, box, q.CuisineType, q.MinRating)
	if err != nil {
		l.Error("nearby_failed", "error", err)
		return nil, err
	}

	items := make([]transport.NearbyRestaurant, 0, len(candidates))
	for _, rest := range candidates {
		d := geo.Distance(rest.Location, center)
		if d > radius {
			continue
		}
		items = append(items, transport.NearbyRestaurant{
			Restaurant:     rest,
			DistanceMeters: d,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].DistanceMeters != items[j].DistanceMeters {
			return items[i].DistanceMeters < items[j].DistanceMeters
		}
		return items[i].ID < items[j].ID
	})

	if len(items) > limit {
		items = items[:limit]
	}

	l.Info("nearby_success", "candidates", len(candidates), "results", len(items))
	return &NearbyResult{
		Center: transport.Coordinates{Latitude: q.Latitude, Longitude: q.Longitude},
		Radius: radius,
		Items:  items,
	}, nil
}
