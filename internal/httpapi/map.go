package httpapi

import (
	"fmt"
	"net/http"

	"nethunter/core-go/internal/device"
)

// mapPoint is one plottable device. Color marshals as [r,g,b,a] so a
// scatterplot layer can consume the payload directly.
type mapPoint struct {
	Lon     float64      `json:"lon"`
	Lat     float64      `json:"lat"`
	Color   device.Color `json:"color"`
	Tooltip string       `json:"tooltip"`
}

type mapCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type mapResponse struct {
	SearchID string     `json:"search_id"`
	Center   *mapCenter `json:"center,omitempty"`
	Points   []mapPoint `json:"points"`
}

// handleSearchMap runs the same pipeline as handleSearch but reduces
// the rows to plottable points. Rows without coordinates are dropped;
// the view center is the mean of the plotted coordinates.
func (h *Handler) handleSearchMap(w http.ResponseWriter, r *http.Request) {
	result, ok := h.runSearch(w, r)
	if !ok {
		return
	}

	resp := mapResponse{
		SearchID: result.SearchID,
		Points:   make([]mapPoint, 0, len(result.Rows)),
	}

	var sumLat, sumLon float64
	for _, row := range result.Rows {
		if !row.HasLocation() {
			continue
		}
		resp.Points = append(resp.Points, mapPoint{
			Lon:     *row.Longitude,
			Lat:     *row.Latitude,
			Color:   row.Color,
			Tooltip: tooltip(row),
		})
		sumLat += *row.Latitude
		sumLon += *row.Longitude
	}

	if n := len(resp.Points); n > 0 {
		resp.Center = &mapCenter{
			Lat: sumLat / float64(n),
			Lon: sumLon / float64(n),
		}
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func tooltip(r device.Row) string {
	return fmt.Sprintf(
		"IP: %s\nPort: %d\nProduct: %s\nType: %s\nCountry: %s\nCity: %s",
		r.IP, r.Port, r.Product, r.Category, r.Country, r.City,
	)
}
