package device

// NotAvailable is the placeholder substituted for absent string fields
// during normalization.
const NotAvailable = "N/A"

// Row is one normalized search match. A row is built once per search,
// classified once, and never mutated afterwards; filtering selects
// subsets without touching the rows themselves.
type Row struct {
	IP        string
	Port      int
	Transport string
	Country   string
	City      string
	Latitude  *float64
	Longitude *float64
	Product   string
	Banner    string
	Category  Category
	Color     Color
}

// HasLocation reports whether the row carries usable map coordinates.
func (r Row) HasLocation() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// Classified returns a copy of the row with category and color derived
// from its fields. Re-deriving on an already classified row yields the
// same result.
func (r Row) Classified() Row {
	r.Category = Classify(r)
	r.Color = ColorFor(r.Category)
	return r
}
