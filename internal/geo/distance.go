package geo

import "math"

// earthRadius is the mean earth radius in meters for the spherical model.
const earthRadius = 6371000.0

// Distance returns the great-circle distance between two points in meters
// (haversine formula).
func Distance(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadius * math.Asin(math.Sqrt(h))
}

// BoundingBox is a coarse lat/lng prefilter window around a search circle.
// LngApplies is false near the poles or across the antimeridian, where
// longitude must not be filtered.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
	LngApplies     bool
}

func BoundsAround(center Point, radiusMeters float64) BoundingBox {
	latDelta := radiusMeters / earthRadius * 180 / math.Pi

	b := BoundingBox{
		MinLat: math.Max(center.Lat-latDelta, -90),
		MaxLat: math.Min(center.Lat+latDelta, 90),
	}

	cosLat := math.Cos(center.Lat * math.Pi / 180)
	if cosLat <= 0.01 {
		return b
	}

	lngDelta := latDelta / cosLat
	if lngDelta >= 180 {
		return b
	}

	minLng := center.Lng - lngDelta
	maxLng := center.Lng + lngDelta
	if minLng < -180 || maxLng > 180 {
		return b
	}

	b.MinLng, b.MaxLng, b.LngApplies = minLng, maxLng, true
	return b
}
