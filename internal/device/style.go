package device

import "fmt"

// Color is a four-channel map-point color. It marshals as a JSON array
// [r, g, b, a] so scatterplot layers can consume it directly.
type Color struct {
	R, G, B, A uint8
}

func (c Color) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("[%d,%d,%d,%d]", c.R, c.G, c.B, c.A)), nil
}

var categoryColors = map[Category]Color{
	CategoryIPCamera:  {R: 255, G: 0, B: 0, A: 160},
	CategoryWebServer: {R: 0, G: 0, B: 255, A: 160},
	CategoryDatabase:  {R: 255, G: 165, B: 0, A: 160},
	CategorySSHHost:   {R: 0, G: 200, B: 0, A: 160},
	CategoryIoT:       {R: 128, G: 0, B: 128, A: 160},
}

// defaultColor covers telnet_device, unknown, and any category without
// a dedicated palette entry.
var defaultColor = Color{R: 200, G: 30, B: 0, A: 160}

// ColorFor maps a category to its fixed display color. Total: every
// category gets a color.
func ColorFor(c Category) Color {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return defaultColor
}
