package device

import "strings"

// classifyRule matches a row when any product token is a substring of
// the lower-cased product, any banner token is a substring of the
// lower-cased banner, or the port is in the port list.
type classifyRule struct {
	category Category
	products []string
	banners  []string
	ports    []int
}

// Rules are evaluated in order and the first match wins. Port 8080
// appears under both ip_camera and web_server; the ordering resolves it
// to ip_camera, and a matching product keyword on a later rule never
// overrides an earlier port hit.
var classifyRules = []classifyRule{
	{
		category: CategoryIPCamera,
		products: []string{"camera", "hikvision", "dahua"},
		ports:    []int{554, 8000, 8080},
	},
	{
		category: CategoryWebServer,
		products: []string{"nginx", "apache", "iis"},
		ports:    []int{80, 443, 8080},
	},
	{
		category: CategoryDatabase,
		products: []string{"mysql", "mariadb", "postgres", "mongodb"},
		ports:    []int{3306, 5432, 27017},
	},
	{
		category: CategorySSHHost,
		ports:    []int{22, 2222},
	},
	{
		category: CategoryTelnet,
		ports:    []int{23},
	},
	{
		category: CategoryIoT,
		banners:  []string{"iot", "smart", "home", "device"},
	},
}

// Classify assigns exactly one category to a row. It is deterministic
// and total: every row classifies, falling through to unknown.
func Classify(r Row) Category {
	product := strings.ToLower(r.Product)
	banner := strings.ToLower(r.Banner)

	for _, rule := range classifyRules {
		if rule.matches(product, banner, r.Port) {
			return rule.category
		}
	}
	return CategoryUnknown
}

func (c classifyRule) matches(product, banner string, port int) bool {
	for _, token := range c.products {
		if strings.Contains(product, token) {
			return true
		}
	}
	for _, token := range c.banners {
		if strings.Contains(banner, token) {
			return true
		}
	}
	for _, p := range c.ports {
		if p == port {
			return true
		}
	}
	return false
}
