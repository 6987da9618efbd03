package export

import (
	"bytes"
	"strings"
	"testing"

	"nethunter/core-go/internal/device"
)

func coord(v float64) *float64 { return &v }

func exportRows() []device.Row {
	rows := []device.Row{
		{
			IP: "198.51.100.1", Port: 80, Transport: "tcp",
			Country: "Spain", City: "Madrid",
			Latitude: coord(40.4168), Longitude: coord(-3.7038),
			Product: "nginx 1.18", Banner: "HTTP/1.1 200 OK",
		},
		{
			IP: "198.51.100.2", Port: 554, Transport: "tcp",
			Country: "N/A", City: "N/A",
			Product: "N/A", Banner: "N/A",
		},
	}
	for i := range rows {
		rows[i] = rows[i].Classified()
	}
	return rows
}

func TestWriteCSV_ExcludesBannerAndColor(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, exportRows()); err != nil {
		t.Fatalf("write: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "banner") || strings.Contains(out, "HTTP/1.1 200 OK") {
		t.Fatalf("banner leaked into export: %s", out)
	}
	if strings.Contains(out, "color") || strings.Contains(out, "160") {
		t.Fatalf("color leaked into export: %s", out)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "ip,port,transport,country,city,latitude,longitude,product,category" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
}

func TestRoundTrip(t *testing.T) {
	rows := exportRows()

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("expected %d rows, got %d", len(rows), len(got))
	}

	for i := range rows {
		want, have := rows[i], got[i]
		if have.IP != want.IP || have.Port != want.Port || have.Country != want.Country ||
			have.City != want.City || have.Product != want.Product || have.Category != want.Category {
			t.Fatalf("row %d mismatch:\nwant %+v\ngot  %+v", i, want, have)
		}
		if have.Color != device.ColorFor(want.Category) {
			t.Fatalf("row %d color not re-derived from category", i)
		}
	}

	// Coordinates survive exactly where present.
	if got[0].Latitude == nil || *got[0].Latitude != 40.4168 {
		t.Fatalf("latitude lost: %+v", got[0])
	}
	if got[1].Latitude != nil || got[1].Longitude != nil {
		t.Fatalf("expected absent coordinates to stay absent: %+v", got[1])
	}
}

func TestReadCSV_RejectsBadHeaderAndPort(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("nope,header\n")); err == nil {
		t.Fatalf("expected header error")
	}

	bad := "ip,port,transport,country,city,latitude,longitude,product,category\n" +
		"1.2.3.4,eighty,tcp,Spain,Madrid,,,nginx,web_server\n"
	if _, err := ReadCSV(strings.NewReader(bad)); err == nil {
		t.Fatalf("expected port error")
	}
}

func TestWriteCSV_EmptyRowSet(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if strings.Count(strings.TrimSpace(buf.String()), "\n") != 0 {
		t.Fatalf("expected header only, got %q", buf.String())
	}
}
