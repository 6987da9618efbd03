package zoomeye

import (
	"strings"

	"nethunter/core-go/internal/device"
)

// Record is one raw match from the host search endpoint. Every field is
// optional on the wire; absent fields decode to zero values and are
// defaulted during normalization.
type Record struct {
	IP       string   `json:"ip"`
	Port     int      `json:"port"`
	Protocol string   `json:"protocol"`
	GeoInfo  *GeoInfo `json:"geoinfo"`
	Data     string   `json:"data"`
	Product  string   `json:"product"`
	Version  string   `json:"version"`
}

type GeoInfo struct {
	Country   *GeoPlace `json:"country"`
	City      *GeoPlace `json:"city"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
}

type GeoPlace struct {
	Names GeoNames `json:"names"`
}

type GeoNames struct {
	EN string `json:"en"`
}

// Response is the host search payload. An absent matches field is the
// same as an empty one.
type Response struct {
	Matches []Record `json:"matches"`
	Total   int      `json:"total"`
}

// Normalize flattens one raw record into a device row, substituting
// defaults for whatever the API left out. It never fails; malformed
// or missing fields degrade to defaults. The returned row is not yet
// classified.
func Normalize(rec Record) device.Row {
	row := device.Row{
		IP:        orNA(rec.IP),
		Port:      rec.Port,
		Transport: orNA(rec.Protocol),
		Country:   device.NotAvailable,
		City:      device.NotAvailable,
		Banner:    orNA(rec.Data),
	}
	if row.Port < 0 {
		row.Port = 0
	}

	if g := rec.GeoInfo; g != nil {
		if g.Country != nil {
			row.Country = orNA(g.Country.Names.EN)
		}
		if g.City != nil {
			row.City = orNA(g.City.Names.EN)
		}
		row.Latitude = g.Latitude
		row.Longitude = g.Longitude
	}

	// Product and version collapse into a single display string.
	product := strings.TrimSpace(rec.Product + " " + rec.Version)
	row.Product = orNA(product)

	return row
}

// NormalizeAll maps a full response onto device rows. A response with
// zero matches yields an empty slice, not an error.
func NormalizeAll(resp *Response) []device.Row {
	if resp == nil || len(resp.Matches) == 0 {
		return nil
	}
	rows := make([]device.Row, 0, len(resp.Matches))
	for _, rec := range resp.Matches {
		rows = append(rows, Normalize(rec))
	}
	return rows
}

func orNA(value string) string {
	if strings.TrimSpace(value) == "" {
		return device.NotAvailable
	}
	return value
}
