package church

import (
	"context"

	"github.com/ekklesia/church-directory/internal/domain"
)

// Search returns active, verified churches matching term, optionally narrowed
// to a geographic radius. The radius filter only applies when latitude,
// longitude and radiusKm are all present, and only considers records with
// coordinates.
//
// The geo filter runs in memory after the text/status pass. Fine at current
// directory sizes; the storage layer would need a bounding-box pre-filter
// before this becomes a problem.
func (s *Service) Search(ctx context.Context, term string, lat, lon, radiusKm *float64) ([]domain.Church, error) {
	matches, err := s.churches.SearchVerified(ctx, term)
	if err != nil {
		return nil, err
	}

	if lat == nil || lon == nil || radiusKm == nil {
		return matches, nil
	}

	filtered := matches[:0]
	for _, c := range matches {
		if !c.HasCoordinates() {
			continue
		}
		if haversineKm(*lat, *lon, *c.Latitude, *c.Longitude) <= *radiusKm {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}
