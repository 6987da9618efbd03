package device

import "testing"

func TestClassify_ProductKeywords(t *testing.T) {
	cases := []struct {
		product string
		want    Category
	}{
		{"Hikvision IP Camera", CategoryIPCamera},
		{"Dahua DVR", CategoryIPCamera},
		{"nginx 1.18.0", CategoryWebServer},
		{"Apache httpd 2.4", CategoryWebServer},
		{"Microsoft IIS 10.0", CategoryWebServer},
		{"MySQL 8.0", CategoryDatabase},
		{"PostgreSQL", CategoryDatabase},
		{"MongoDB 4.2", CategoryDatabase},
	}

	for _, tc := range cases {
		got := Classify(Row{Product: tc.product, Banner: NotAvailable})
		if got != tc.want {
			t.Fatalf("Classify(product=%q) = %q, want %q", tc.product, got, tc.want)
		}
	}
}

func TestClassify_Ports(t *testing.T) {
	cases := []struct {
		port int
		want Category
	}{
		{554, CategoryIPCamera},
		{8000, CategoryIPCamera},
		{80, CategoryWebServer},
		{443, CategoryWebServer},
		{3306, CategoryDatabase},
		{5432, CategoryDatabase},
		{27017, CategoryDatabase},
		{22, CategorySSHHost},
		{2222, CategorySSHHost},
		{23, CategoryTelnet},
		{0, CategoryUnknown},
		{9999, CategoryUnknown},
	}

	for _, tc := range cases {
		got := Classify(Row{Product: NotAvailable, Banner: NotAvailable, Port: tc.port})
		if got != tc.want {
			t.Fatalf("Classify(port=%d) = %q, want %q", tc.port, got, tc.want)
		}
	}
}

func TestClassify_Port8080TieBreak(t *testing.T) {
	// 8080 belongs to both camera and web server rules; rule order makes
	// the camera rule win only when product text also points at a camera.
	plain := Classify(Row{Product: NotAvailable, Banner: NotAvailable, Port: 8080})
	if plain != CategoryIPCamera {
		t.Fatalf("bare port 8080 = %q, want %q", plain, CategoryIPCamera)
	}

	cam := Classify(Row{Product: "hikvision web service", Banner: NotAvailable, Port: 8080})
	if cam != CategoryIPCamera {
		t.Fatalf("hikvision on 8080 = %q, want %q", cam, CategoryIPCamera)
	}
}

func TestClassify_BannerIoT(t *testing.T) {
	got := Classify(Row{Product: NotAvailable, Banner: "Smart Home Hub v2", Port: 1234})
	if got != CategoryIoT {
		t.Fatalf("iot banner = %q, want %q", got, CategoryIoT)
	}

	// Product keywords on earlier rules outrank the banner heuristics.
	got = Classify(Row{Product: "nginx", Banner: "smart device", Port: 1234})
	if got != CategoryWebServer {
		t.Fatalf("nginx with iot banner = %q, want %q", got, CategoryWebServer)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	row := Row{Product: "nginx/1.18", Banner: "HTTP/1.1 200 OK", Port: 80}
	first := Classify(row)
	second := Classify(row)
	if first != second {
		t.Fatalf("Classify not deterministic: %q vs %q", first, second)
	}
}

func TestClassified_Idempotent(t *testing.T) {
	row := Row{Product: "mysql 5.7", Banner: NotAvailable, Port: 3306}
	once := row.Classified()
	twice := once.Classified()
	if once != twice {
		t.Fatalf("Classified not idempotent: %+v vs %+v", once, twice)
	}
	if once.Category != CategoryDatabase {
		t.Fatalf("expected database, got %q", once.Category)
	}
}
