package smartpalette

import (
	"github.com/jmylchreest/dreamburst/internal/colour"
	"github.com/jmylchreest/dreamburst/internal/image"
	"github.com/jmylchreest/dreamburst/internal/look"
)

// Harmony is the harmony label attached to every result.
const Harmony = "complementary/analogous"

// Role names a palette slot.
type Role = colour.Role

// Palette roles in output order.
const (
	RolePrimary      = colour.RolePrimary
	RoleSecondary    = colour.RoleSecondary
	RoleAccent       = colour.RoleAccent
	RoleNeutralLight = colour.RoleNeutralLight
	RoleNeutralDark  = colour.RoleNeutralDark
)

// DecodeError reports image input that could not be decoded.
type DecodeError = image.DecodeError

// ErrDecode matches any DecodeError via errors.Is.
var ErrDecode = image.ErrDecode

// PaletteEntry is one role-tagged palette colour.
type PaletteEntry struct {
	Role Role `json:"role"`
	// Hex is "#RRGGBB" in upper case.
	Hex string `json:"hex"`
	// HSL is "<deg>,<pct>%,<pct>%".
	HSL string `json:"hsl"`
	// LCh is lightness, chroma and hue rounded to one decimal.
	LCh  [3]float64 `json:"lch"`
	Note string     `json:"note"`
}

// ContrastMatrix holds WCAG contrast ratios between key palette roles.
type ContrastMatrix struct {
	PrimaryVsNeutralLight     float64 `json:"primary_vs_neutralLight"`
	PrimaryVsNeutralDark      float64 `json:"primary_vs_neutralDark"`
	NeutralDarkVsNeutralLight float64 `json:"neutralDark_vs_neutralLight"`
}

// Result is the full extraction output.
type Result struct {
	Palette        []PaletteEntry `json:"palette"`
	Harmony        string         `json:"harmony"`
	ContrastMatrix ContrastMatrix `json:"contrastMatrix"`
	Look           look.Metrics   `json:"look"`
}

// Entry returns the palette entry for role.
func (r *Result) Entry(role Role) (PaletteEntry, bool) {
	for _, e := range r.Palette {
		if e.Role == role {
			return e, true
		}
	}
	return PaletteEntry{}, false
}
