package colour

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB represents a colour with 8-bit channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as an uppercase hex string (e.g., "#1A2B3C").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B)
}

// Pixel converts the colour to float channels in [0, 1].
func (rgb RGB) Pixel() Pixel {
	return Pixel{R: float64(rgb.R) / 255.0, G: float64(rgb.G) / 255.0, B: float64(rgb.B) / 255.0}
}

// ParseHex parses "#RRGGBB" (the leading hash is optional, case-insensitive).
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("invalid hex colour %q: expected 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Role names a slot in an inferred palette.
type Role string

const (
	RolePrimary      Role = "primary"
	RoleSecondary    Role = "secondary"
	RoleAccent       Role = "accent"
	RoleNeutralLight Role = "neutralLight"
	RoleNeutralDark  Role = "neutralDark"
)

// Roles returns every role in palette order.
func Roles() []Role {
	return []Role{RolePrimary, RoleSecondary, RoleAccent, RoleNeutralLight, RoleNeutralDark}
}

// RoleAssignment maps each role to a colour. All five fields are always set.
type RoleAssignment struct {
	Primary      Lab
	Secondary    Lab
	Accent       Lab
	NeutralLight Lab
	NeutralDark  Lab
}

// Get returns the colour assigned to role.
func (r RoleAssignment) Get(role Role) (Lab, bool) {
	switch role {
	case RolePrimary:
		return r.Primary, true
	case RoleSecondary:
		return r.Secondary, true
	case RoleAccent:
		return r.Accent, true
	case RoleNeutralLight:
		return r.NeutralLight, true
	case RoleNeutralDark:
		return r.NeutralDark, true
	}
	return Lab{}, false
}

// All returns an iterator over the assignment in palette order.
func (r RoleAssignment) All() func(func(Role, Lab) bool) {
	return func(yield func(Role, Lab) bool) {
		for _, role := range Roles() {
			lab, _ := r.Get(role)
			if !yield(role, lab) {
				return
			}
		}
	}
}
