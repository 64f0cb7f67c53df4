package service_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armenxdev/restaurant-finder/internal/service"
	"github.com/armenxdev/restaurant-finder/internal/transport"
)

// Test center: lower Manhattan. Offsets were chosen so the haversine
// distances are far apart enough to make ordering unambiguous:
//
//	+0.005 lat  ≈  556 m
//	±0.010 lat  ≈ 1112 m (equidistant north/south pair)
//	+0.020 lng  ≈ 1686 m
//	+0.030 lat  ≈ 3336 m
const (
	centerLat = 40.7128
	centerLng = -74.0060
)

func nearbyQuery(radius float64) transport.NearbyQuery {
	return transport.NearbyQuery{
		Latitude:  centerLat,
		Longitude: centerLng,
		Radius:    f64(radius),
	}
}

func TestNearby_ExactCenterIsZeroDistance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.Restaurants.Create(ctx, createRestaurantRequest("At The Center", centerLat, centerLng))
	require.NoError(t, err)

	res, err := env.Restaurants.Nearby(ctx, nearbyQuery(1000))
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.InDelta(t, 0, res.Items[0].DistanceMeters, 1e-6)
}

func TestNearby_DefaultRadiusEchoed(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.Restaurants.Nearby(context.Background(), transport.NearbyQuery{
		Latitude:  centerLat,
		Longitude: centerLng,
	})
	require.NoError(t, err)
	assert.Equal(t, service.DefaultRadiusMeters, res.Radius)
	assert.Equal(t, centerLat, res.Center.Latitude)
	assert.Equal(t, centerLng, res.Center.Longitude)
	assert.Empty(t, res.Items)
}

func TestNearby_RadiusCutsExactly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// ~556 m away: inside a 1000 m radius.
	_, err := env.Restaurants.Create(ctx, createRestaurantRequest("Close Cafe", centerLat+0.005, centerLng))
	require.NoError(t, err)
	// ~3336 m away: outside it.
	_, err = env.Restaurants.Create(ctx, createRestaurantRequest("Far Diner", centerLat+0.03, centerLng))
	require.NoError(t, err)

	res, err := env.Restaurants.Nearby(ctx, nearbyQuery(1000))
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Close Cafe", res.Items[0].Name)
	for _, item := range res.Items {
		assert.LessOrEqual(t, item.DistanceMeters, 1000.0)
	}
}

func TestNearby_ExcludesClosedRestaurants(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	closed := createRestaurantRequest("Closed Bistro", centerLat, centerLng)
	closed.IsOpen = boolPtr(false)
	_, err := env.Restaurants.Create(ctx, closed)
	require.NoError(t, err)

	_, err = env.Restaurants.Create(ctx, createRestaurantRequest("Open Bistro", centerLat+0.005, centerLng))
	require.NoError(t, err)

	res, err := env.Restaurants.Nearby(ctx, nearbyQuery(5000))
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Open Bistro", res.Items[0].Name)
}

func TestNearby_SortsByDistanceThenID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	far, err := env.Restaurants.Create(ctx, createRestaurantRequest("Far Diner", centerLat+0.03, centerLng))
	require.NoError(t, err)
	// Equidistant pair, ~1112 m north and south of center. Created south
	// first so an id-ascending tiebreak puts it ahead of north.
	south, err := env.Restaurants.Create(ctx, createRestaurantRequest("South Twin", centerLat-0.01, centerLng))
	require.NoError(t, err)
	north, err := env.Restaurants.Create(ctx, createRestaurantRequest("North Twin", centerLat+0.01, centerLng))
	require.NoError(t, err)
	closest, err := env.Restaurants.Create(ctx, createRestaurantRequest("Close Cafe", centerLat+0.005, centerLng))
	require.NoError(t, err)

	res, err := env.Restaurants.Nearby(ctx, nearbyQuery(5000))
	require.NoError(t, err)
	require.Len(t, res.Items, 4)

	assert.Equal(t, closest.ID, res.Items[0].ID)
	assert.Equal(t, south.ID, res.Items[1].ID)
	assert.Equal(t, north.ID, res.Items[2].ID)
	assert.Equal(t, far.ID, res.Items[3].ID)

	for i := 1; i < len(res.Items); i++ {
		assert.GreaterOrEqual(t, res.Items[i].DistanceMeters, res.Items[i-1].DistanceMeters)
	}
}

func TestNearby_LimitTruncatesAfterSort(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.Restaurants.Create(ctx, createRestaurantRequest("Far Diner", centerLat+0.03, centerLng))
	require.NoError(t, err)
	_, err = env.Restaurants.Create(ctx, createRestaurantRequest("Mid Grill", centerLat+0.01, centerLng))
	require.NoError(t, err)
	_, err = env.Restaurants.Create(ctx, createRestaurantRequest("Close Cafe", centerLat+0.005, centerLng))
	require.NoError(t, err)

	q := nearbyQuery(5000)
	q.Limit = intPtr(2)
	res, err := env.Restaurants.Nearby(ctx, q)
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Close Cafe", res.Items[0].Name)
	assert.Equal(t, "Mid Grill", res.Items[1].Name)
}

func TestNearby_FiltersCuisineAndRating(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	italian := createRestaurantRequest("Pizza Palace", centerLat+0.005, centerLng)
	italian.CuisineType = "Italian"
	italian.Rating = f64(4.5)
	_, err := env.Restaurants.Create(ctx, italian)
	require.NoError(t, err)

	sushi := createRestaurantRequest("Sakura Sushi", centerLat-0.005, centerLng)
	sushi.CuisineType = "Japanese"
	sushi.Rating = f64(3.0)
	_, err = env.Restaurants.Create(ctx, sushi)
	require.NoError(t, err)

	q := nearbyQuery(5000)
	q.CuisineType = "Italian"
	res, err := env.Restaurants.Nearby(ctx, q)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Pizza Palace", res.Items[0].Name)

	q = nearbyQuery(5000)
	q.MinRating = f64(4.0)
	res, err = env.Restaurants.Nearby(ctx, q)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Pizza Palace", res.Items[0].Name)
}

func TestNearby_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, tc := range []struct {
		name string
		q    transport.NearbyQuery
	}{
		{"latitude out of range", transport.NearbyQuery{Latitude: 91, Longitude: centerLng}},
		{"latitude nan", transport.NearbyQuery{Latitude: math.NaN(), Longitude: centerLng}},
		{"longitude out of range", transport.NearbyQuery{Latitude: centerLat, Longitude: 181}},
		{"radius zero", nearbyQuery(0)},
		{"radius too small", nearbyQuery(0.5)},
		{"radius too large", nearbyQuery(50001)},
		{"limit zero", transport.NearbyQuery{Latitude: centerLat, Longitude: centerLng, Limit: intPtr(0)}},
		{"negative limit", transport.NearbyQuery{Latitude: centerLat, Longitude: centerLng, Limit: intPtr(-1)}},
		{"minRating out of range", transport.NearbyQuery{Latitude: centerLat, Longitude: centerLng, MinRating: f64(6)}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.Restaurants.Nearby(ctx, tc.q)
			assert.ErrorIs(t, err, service.ErrValidation)
		})
	}
}
