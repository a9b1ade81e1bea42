package service

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/artifaks/herbal-wisdom/internal/model"
)

// earthRadiusKm is the mean Earth radius used by the Haversine formula.
const earthRadiusKm = 6371.0

// RankedStore is a store annotated with its distance from the filter
// coordinate, when one was supplied.
type RankedStore struct {
	model.Store
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// HaversineKm returns the great-circle distance in kilometers between two
// WGS84 coordinates.
func HaversineKm(from, to model.Coordinate) float64 {
	lat1 := from.Latitude * math.Pi / 180
	lat2 := to.Latitude * math.Pi / 180
	dLat := (to.Latitude - from.Latitude) * math.Pi / 180
	dLon := (to.Longitude - from.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// RankStores transforms (stores, filter) into a filtered, distance-annotated,
// ordered list. It is pure: no I/O, inputs are not mutated, and malformed
// filter values simply fail to match instead of erroring.
//
// The geofilter pass only filters and annotates; the final sort step is the
// single source of truth for ordering.
func RankStores(stores []model.Store, filter model.StoreFilter) []RankedStore {
	ranked := make([]RankedStore, 0, len(stores))
	for _, store := range stores {
		if !matchesStoreFilter(store, filter) {
			continue
		}
		entry := RankedStore{Store: store}
		if filter.Location != nil {
			d := HaversineKm(*filter.Location, model.Coordinate{
				Latitude:  store.Latitude,
				Longitude: store.Longitude,
			})
			if filter.RadiusKm > 0 && d > filter.RadiusKm {
				continue
			}
			entry.DistanceKm = &d
		}
		ranked = append(ranked, entry)
	}

	sortStores(ranked, filter)
	return ranked
}

func matchesStoreFilter(store model.Store, filter model.StoreFilter) bool {
	if q := strings.ToLower(strings.TrimSpace(filter.SearchQuery)); q != "" {
		name := strings.ToLower(store.Name)
		description := strings.ToLower(store.Description)
		if !strings.Contains(name, q) && !strings.Contains(description, q) {
			return false
		}
	}
	if filter.City != "" && store.City != filter.City {
		return false
	}
	if filter.State != "" && store.State != filter.State {
		return false
	}
	if filter.Specialty != "" && !containsSpecialty(store.Specialties, filter.Specialty) {
		return false
	}
	return true
}

// containsSpecialty is exact set membership, not substring matching.
func containsSpecialty(specialties []string, want string) bool {
	for _, s := range specialties {
		if s == want {
			return true
		}
	}
	return false
}

func sortStores(ranked []RankedStore, filter model.StoreFilter) {
	switch filter.SortBy {
	case model.SortByRating:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Rating > ranked[j].Rating
		})
	case model.SortByDistance:
		if filter.Location != nil {
			sort.SliceStable(ranked, func(i, j int) bool {
				return *ranked[i].DistanceKm < *ranked[j].DistanceKm
			})
			return
		}
		// No coordinate to measure from, fall back to name ordering.
		sortByName(ranked)
	case model.SortByName:
		sortByName(ranked)
	}
}

func sortByName(ranked []RankedStore) {
	collator := collate.New(language.English)
	sort.SliceStable(ranked, func(i, j int) bool {
		return collator.CompareString(ranked[i].Name, ranked[j].Name) < 0
	})
}
