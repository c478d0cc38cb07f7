package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Palette names accepted in place of hex colours, with raylib's values.
var colorByName = map[string]uint32{
	"White":     0xffffff,
	"Black":     0x000000,
	"LightGray": 0xc8c8c8,
	"Gray":      0x828282,
	"DarkGray":  0x505050,
	"Yellow":    0xfdf900,
	"Gold":      0xffcb00,
	"Orange":    0xffa100,
	"Pink":      0xff6dc2,
	"Red":       0xe62937,
	"Maroon":    0xbe2137,
	"Green":     0x00e430,
	"Lime":      0x009e2f,
	"DarkGreen": 0x00752c,
	"SkyBlue":   0x66bfff,
	"Blue":      0x0079f1,
	"DarkBlue":  0x0052ac,
	"Purple":    0xc87aff,
	"Violet":    0x873cbe,
	"Magenta":   0xff00ff,
	"Beige":     0xd3b083,
	"Brown":     0x7f6a4f,
}

// ParseColor accepts "#rrggbb", "0xrrggbb" or a palette name and returns
// 0xRRGGBB.
func ParseColor(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if c, ok := colorByName[s]; ok {
		return c, nil
	}

	hex := s
	switch {
	case strings.HasPrefix(hex, "#"):
		hex = hex[1:]
	case strings.HasPrefix(hex, "0x"), strings.HasPrefix(hex, "0X"):
		hex = hex[2:]
	default:
		return 0, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) != 6 {
		return 0, fmt.Errorf("invalid color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return uint32(v), nil
}
