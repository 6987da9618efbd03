// Package export writes row sets as flat delimited text. Banner and
// style color are deliberately excluded from the tabular view; the
// color is re-derived from the category on read.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"nethunter/core-go/internal/device"
)

func header() []string {
	return []string{
		"ip",
		"port",
		"transport",
		"country",
		"city",
		"latitude",
		"longitude",
		"product",
		"category",
	}
}

// WriteCSV writes one CSV row per device, header first.
func WriteCSV(w io.Writer, rows []device.Row) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.IP,
			strconv.Itoa(row.Port),
			row.Transport,
			row.Country,
			row.City,
			formatCoord(row.Latitude),
			formatCoord(row.Longitude),
			row.Product,
			string(row.Category),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ReadCSV parses rows previously written by WriteCSV. Banner comes back
// as the N/A default and the color is re-derived from the category.
func ReadCSV(r io.Reader) ([]device.Row, error) {
	reader := csv.NewReader(r)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("missing header")
	}

	want := header()
	got := records[0]
	if len(got) != len(want) {
		return nil, fmt.Errorf("unexpected header %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			return nil, fmt.Errorf("unexpected header column %q, want %q", got[i], want[i])
		}
	}

	rows := make([]device.Row, 0, len(records)-1)
	for i, record := range records[1:] {
		port, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid port %q", i+1, record[1])
		}
		lat, err := parseCoord(record[5])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid latitude %q", i+1, record[5])
		}
		lon, err := parseCoord(record[6])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid longitude %q", i+1, record[6])
		}

		category := device.NormalizeCategory(record[8])
		rows = append(rows, device.Row{
			IP:        record[0],
			Port:      port,
			Transport: record[2],
			Country:   record[3],
			City:      record[4],
			Latitude:  lat,
			Longitude: lon,
			Product:   record[7],
			Banner:    device.NotAvailable,
			Category:  category,
			Color:     device.ColorFor(category),
		})
	}
	return rows, nil
}

func formatCoord(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func parseCoord(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
