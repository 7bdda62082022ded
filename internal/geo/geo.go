// Package geo provides the station spatial index used by the
// stations-for-location query and the polyline encoding of route paths for
// the dashboard map.
package geo

import (
	"math"
	"sort"

	"github.com/tidwall/rtree"
	"github.com/twpayne/go-polyline"

	"railscope.indrail.org/internal/models"
)

const radiusOfEarthInMeters = 6371010.0

// Distance returns the great-circle distance in meters between two points.
// Short distances use the equirectangular approximation; longer ones fall
// back to the exact formula.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	if math.Abs(lat2-lat1) < 0.2 && math.Abs(lon2-lon1) < 0.2 {
		lat1Rad := lat1 * (math.Pi / 180)
		lat2Rad := lat2 * (math.Pi / 180)
		x := (lon2 - lon1) * (math.Pi / 180) * math.Cos((lat1Rad+lat2Rad)/2)
		y := (lat2 - lat1) * (math.Pi / 180)
		return radiusOfEarthInMeters * math.Sqrt(x*x+y*y)
	}

	lat1Rad := lat1 * (math.Pi / 180)
	lat2Rad := lat2 * (math.Pi / 180)
	deltaLon := (lon2 - lon1) * (math.Pi / 180)

	y := math.Sqrt(math.Pow(math.Cos(lat2Rad)*math.Sin(deltaLon), 2) +
		math.Pow(math.Cos(lat1Rad)*math.Sin(lat2Rad)-math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(deltaLon), 2))
	x := math.Sin(lat1Rad)*math.Sin(lat2Rad) + math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Cos(deltaLon)

	return radiusOfEarthInMeters * math.Atan2(y, x)
}

// boundsAround returns the lat/lon bounding box covering a circle of the
// given radius in meters.
func boundsAround(lat, lon, radiusMeters float64) (minLat, minLon, maxLat, maxLon float64) {
	latOffset := radiusMeters / radiusOfEarthInMeters * 180 / math.Pi
	lonRadius := math.Cos(lat*math.Pi/180) * radiusOfEarthInMeters
	lonOffset := radiusMeters / lonRadius * 180 / math.Pi
	return lat - latOffset, lon - lonOffset, lat + latOffset, lon + lonOffset
}

// StationIndex answers nearest-station queries over the static station set.
// Built once at startup; read-only afterwards.
type StationIndex struct {
	tree rtree.RTreeG[models.Station]
}

// NewStationIndex indexes stations by coordinate. Stations at (0, 0) are
// skipped: the dataset uses null island for unknown coordinates.
func NewStationIndex(stations []models.Station) *StationIndex {
	idx := &StationIndex{}
	for _, s := range stations {
		if s.Latitude == 0 && s.Longitude == 0 {
			continue
		}
		point := [2]float64{s.Longitude, s.Latitude}
		idx.tree.Insert(point, point, s)
	}
	return idx
}

// Len returns the number of indexed stations.
func (idx *StationIndex) Len() int {
	return idx.tree.Len()
}

// Nearby returns stations within radiusMeters of the given point, closest
// first.
func (idx *StationIndex) Nearby(lat, lon, radiusMeters float64) []models.StationWithDistance {
	minLat, minLon, maxLat, maxLon := boundsAround(lat, lon, radiusMeters)

	var result []models.StationWithDistance
	idx.tree.Search(
		[2]float64{minLon, minLat},
		[2]float64{maxLon, maxLat},
		func(_, _ [2]float64, s models.Station) bool {
			d := Distance(lat, lon, s.Latitude, s.Longitude)
			if d <= radiusMeters {
				result = append(result, models.StationWithDistance{Station: s, DistanceMeters: d})
			}
			return true
		})

	sort.Slice(result, func(i, j int) bool {
		return result[i].DistanceMeters < result[j].DistanceMeters
	})
	return result
}

// EncodePath encodes the station coordinates along a route path as a
// Google polyline for map rendering. Stations without coordinates are
// skipped; fewer than two usable points yields an empty string.
func EncodePath(path []string, lookup func(code string) (models.Station, bool)) string {
	coords := make([][]float64, 0, len(path))
	for _, code := range path {
		s, ok := lookup(code)
		if !ok || (s.Latitude == 0 && s.Longitude == 0) {
			continue
		}
		coords = append(coords, []float64{s.Latitude, s.Longitude})
	}
	if len(coords) < 2 {
		return ""
	}
	return string(polyline.EncodeCoords(coords))
}
