package cli

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/dreamburst/internal/colour"
	"github.com/jmylchreest/dreamburst/pkg/smartpalette"
)

const swatchWidth = 8

// formatResultText renders a human-readable summary of an extraction.
func formatResultText(r *smartpalette.Result, preview bool) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Palette (%s)\n\n", r.Harmony)
	if preview {
		for _, e := range r.Palette {
			if rgb, err := colour.ParseHex(e.Hex); err == nil {
				sb.WriteString(colour.FormatColourWithLabel(rgb, string(e.Role), swatchWidth))
				sb.WriteString("\n")
			}
		}
		sb.WriteString("\n")
	}

	palette := NewTable([]string{"ROLE", "HEX", "HSL", "LCH"})
	for _, e := range r.Palette {
		palette.AddRow(string(e.Role), e.Hex, e.HSL, fmt.Sprintf("%.1f %.1f %.1f", e.LCh[0], e.LCh[1], e.LCh[2]))
	}
	sb.WriteString(palette.Render())

	cm := r.ContrastMatrix
	sb.WriteString("\nContrast\n\n")
	contrast := NewTable([]string{"PAIR", "RATIO"})
	contrast.AddRow("primary / neutralLight", fmt.Sprintf("%.2f:1", cm.PrimaryVsNeutralLight))
	contrast.AddRow("primary / neutralDark", fmt.Sprintf("%.2f:1", cm.PrimaryVsNeutralDark))
	contrast.AddRow("neutralDark / neutralLight", fmt.Sprintf("%.2f:1", cm.NeutralDarkVsNeutralLight))
	sb.WriteString(contrast.Render())

	lk := r.Look
	wb, exp, cw := lk.WhiteBalance, lk.Exposure, lk.CoolWarmBalance
	ap, cg := lk.Recipes.Aputure, lk.Recipes.CG

	sb.WriteString("\nLook\n\n")
	look := NewTable([]string{"METRIC", "VALUE"})
	look.SetColumnMaxWidth(1, 56)
	look.AddRow("white balance", fmt.Sprintf("%dK, tint %+.2f, %+d mired from D65", wb.CCT, wb.TintApprox, wb.MiredShiftFromD65))
	look.AddRow("exposure", fmt.Sprintf("%s, %s contrast, %.2f stops of dynamic range", exp.TonalKey, exp.GlobalContrast, exp.DynamicRangeStops))
	look.AddRow("key:fill", fmt.Sprintf("%s (%.2f stops)", exp.KeyFillRatio, exp.KeyFillStops))
	look.AddRow("cool/warm", fmt.Sprintf("%d%% cool, %d%% warm", cw.CoolPct, cw.WarmPct))
	look.AddRow("aputure", fmt.Sprintf("key %dK at %d%%, fill %dK at %d%%, rim %dK",
		ap.Key.CCT, ap.Key.IntensityPct, ap.Fill.CCT, ap.Fill.IntensityPct, ap.Rim.CCT))
	look.AddRow("cg", fmt.Sprintf("environment tint %s, key %dK, exposure %+.1f EV", cg.EnvTintHex, cg.KeyCCT, cg.ExposureEV))
	sb.WriteString(look.Render())

	if preview {
		if rgb, err := colour.ParseHex(cg.EnvTintHex); err == nil {
			sb.WriteString("\n")
			sb.WriteString(colour.ColourPreviewWithText(rgb, "env", swatchWidth))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
