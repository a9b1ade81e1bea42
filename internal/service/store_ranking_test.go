package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artifaks/herbal-wisdom/internal/model"
)

func TestHaversineKm(t *testing.T) {
	portland := model.Coordinate{Latitude: 45.5152, Longitude: -122.6784}
	seattle := model.Coordinate{Latitude: 47.6062, Longitude: -122.3321}

	t.Run("identical points have zero distance", func(t *testing.T) {
		assert.Zero(t, HaversineKm(portland, portland))
	})

	t.Run("distance is symmetric", func(t *testing.T) {
		assert.InDelta(t, HaversineKm(portland, seattle), HaversineKm(seattle, portland), 1e-9)
	})

	t.Run("known city pair", func(t *testing.T) {
		// Portland OR to Seattle WA is roughly 233 km great-circle.
		assert.InDelta(t, 233, HaversineKm(portland, seattle), 5)
	})
}

// storesAtKmOffsets builds stores roughly d kilometers due north of origin.
// One degree of latitude is about 111.195 km on the sphere used here.
func storesAtKmOffsets(origin model.Coordinate, offsets ...float64) []model.Store {
	stores := make([]model.Store, 0, len(offsets))
	for i, d := range offsets {
		stores = append(stores, model.Store{
			ID:        uint(i + 1),
			Name:      string(rune('A' + i)),
			Latitude:  origin.Latitude + d/111.195,
			Longitude: origin.Longitude,
		})
	}
	return stores
}

func TestRankStores_RadiusCut(t *testing.T) {
	origin := model.Coordinate{Latitude: 40.0, Longitude: -105.0}
	stores := storesAtKmOffsets(origin, 5, 15, 25)

	ranked := RankStores(stores, model.StoreFilter{
		Location: &origin,
		RadiusKm: 10,
		SortBy:   model.SortByDistance,
	})

	assert.Len(t, ranked, 1)
	assert.Equal(t, uint(1), ranked[0].ID)
	assert.NotNil(t, ranked[0].DistanceKm)
	assert.InDelta(t, 5, *ranked[0].DistanceKm, 0.1)
}

func TestRankStores_DistanceAnnotationWithoutRadius(t *testing.T) {
	origin := model.Coordinate{Latitude: 40.0, Longitude: -105.0}
	stores := storesAtKmOffsets(origin, 25, 5, 15)

	ranked := RankStores(stores, model.StoreFilter{
		Location: &origin,
		SortBy:   model.SortByDistance,
	})

	// No radius: nothing is cut, everything is annotated and ordered nearest
	// first.
	assert.Len(t, ranked, 3)
	distances := make([]float64, 0, len(ranked))
	for _, r := range ranked {
		assert.NotNil(t, r.DistanceKm)
		distances = append(distances, *r.DistanceKm)
	}
	assert.InDelta(t, 5, distances[0], 0.1)
	assert.InDelta(t, 15, distances[1], 0.1)
	assert.InDelta(t, 25, distances[2], 0.1)
}

func TestRankStores_NoLocationMeansNoAnnotation(t *testing.T) {
	stores := []model.Store{{ID: 1, Name: "Green Leaf"}}

	ranked := RankStores(stores, model.StoreFilter{RadiusKm: 10})

	// A radius without a coordinate is inert.
	assert.Len(t, ranked, 1)
	assert.Nil(t, ranked[0].DistanceKm)
}

func TestRankStores_Filters(t *testing.T) {
	stores := []model.Store{
		{ID: 1, Name: "Green Leaf Apothecary", Description: "Custom tea blends", City: "Portland", State: "OR", Specialties: []string{"teas", "tinctures"}},
		{ID: 2, Name: "Sage & Stone", Description: "Bulk herbs", City: "Santa Fe", State: "NM", Specialties: []string{"bulk herbs"}},
		{ID: 3, Name: "Harborside Herbs", Description: "Teas and salves", City: "Portland", State: "ME", Specialties: []string{"teas", "salves"}},
	}

	tests := []struct {
		name        string
		filter      model.StoreFilter
		expectedIDs []uint
	}{
		{
			name:        "no filter keeps everything",
			filter:      model.StoreFilter{},
			expectedIDs: []uint{1, 2, 3},
		},
		{
			name:        "search matches name case-insensitively",
			filter:      model.StoreFilter{SearchQuery: "sage"},
			expectedIDs: []uint{2},
		},
		{
			name:        "search matches description",
			filter:      model.StoreFilter{SearchQuery: "tea"},
			expectedIDs: []uint{1, 3},
		},
		{
			name:        "city and state combine",
			filter:      model.StoreFilter{City: "Portland", State: "ME"},
			expectedIDs: []uint{3},
		},
		{
			name:        "specialty is exact membership",
			filter:      model.StoreFilter{Specialty: "teas"},
			expectedIDs: []uint{1, 3},
		},
		{
			name:        "specialty substring does not match",
			filter:      model.StoreFilter{Specialty: "tea"},
			expectedIDs: []uint{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked := RankStores(stores, tt.filter)
			ids := make([]uint, 0, len(ranked))
			for _, r := range ranked {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.expectedIDs, ids)
		})
	}
}

func TestRankStores_Sorting(t *testing.T) {
	stores := []model.Store{
		{ID: 1, Name: "Zinnia Herbals", Rating: 4.1},
		{ID: 2, Name: "anise & Co", Rating: 4.9},
		{ID: 3, Name: "Moss Market", Rating: 4.5},
	}

	t.Run("rating sorts descending", func(t *testing.T) {
		ranked := RankStores(stores, model.StoreFilter{SortBy: model.SortByRating})
		assert.Equal(t, []uint{2, 3, 1}, rankedIDs(ranked))
	})

	t.Run("name sort ignores letter case", func(t *testing.T) {
		ranked := RankStores(stores, model.StoreFilter{SortBy: model.SortByName})
		assert.Equal(t, []uint{2, 3, 1}, rankedIDs(ranked))
	})

	t.Run("distance sort without coordinate falls back to name", func(t *testing.T) {
		ranked := RankStores(stores, model.StoreFilter{SortBy: model.SortByDistance})
		assert.Equal(t, []uint{2, 3, 1}, rankedIDs(ranked))
	})

	t.Run("unknown sort key keeps input order", func(t *testing.T) {
		ranked := RankStores(stores, model.StoreFilter{SortBy: "popularity"})
		assert.Equal(t, []uint{1, 2, 3}, rankedIDs(ranked))
	})
}

func TestRankStores_DoesNotMutateInput(t *testing.T) {
	origin := model.Coordinate{Latitude: 40.0, Longitude: -105.0}
	stores := storesAtKmOffsets(origin, 25, 5)
	before := make([]model.Store, len(stores))
	copy(before, stores)

	_ = RankStores(stores, model.StoreFilter{Location: &origin, SortBy: model.SortByDistance})

	assert.Equal(t, before, stores)
}

func rankedIDs(ranked []RankedStore) []uint {
	ids := make([]uint, 0, len(ranked))
	for _, r := range ranked {
		ids = append(ids, r.ID)
	}
	return ids
}
