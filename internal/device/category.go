package device

import "strings"

// Category is the coarse device class assigned to a normalized row.
type Category string

const (
	CategoryIPCamera  Category = "ip_camera"
	CategoryWebServer Category = "web_server"
	CategoryDatabase  Category = "database"
	CategorySSHHost   Category = "ssh_host"
	CategoryTelnet    Category = "telnet_device"
	CategoryIoT       Category = "iot"
	CategoryUnknown   Category = "unknown"
)

var allCategories = []Category{
	CategoryIPCamera,
	CategoryWebServer,
	CategoryDatabase,
	CategorySSHHost,
	CategoryTelnet,
	CategoryIoT,
	CategoryUnknown,
}

func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

func NormalizeCategory(value string) Category {
	return Category(strings.ToLower(strings.TrimSpace(value)))
}

func IsValidCategory(c Category) bool {
	for _, candidate := range allCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCategory normalizes free text into a known category.
func ParseCategory(value string) (Category, bool) {
	c := NormalizeCategory(value)
	if !IsValidCategory(c) {
		return "", false
	}
	return c, true
}
