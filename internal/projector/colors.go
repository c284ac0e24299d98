package projector

import (
	"strings"

	"github.com/logmaster/dashboard/internal/models"
)

// Palette
const (
	ColorRed       = "#e74c3c"
	ColorDarkRed   = "#c0392b"
	ColorOrange    = "#f39c12"
	ColorGreen     = "#27ae60"
	ColorBlue      = "#3498db"
	ColorPurple    = "#9b59b6"
	ColorSlate     = "#34495e"
	ColorPumpkin   = "#e67e22"
	ColorTurquoise = "#1abc9c"
	ColorNeutral   = "#95a5a6"
	ColorIndigo    = "#667eea"
)

var interfaceColors = map[string]string{
	models.InterfaceHotel:      ColorRed,
	models.InterfaceCafe:       ColorOrange,
	models.InterfaceRestaurant: ColorGreen,
	models.InterfaceAVM:        ColorBlue,
	models.InterfaceOkul:       ColorPurple,
	models.InterfaceYurt:       ColorSlate,
	models.InterfaceKonukevi:   ColorPumpkin,
	models.InterfaceGeneral:    ColorNeutral,
}

var severityColors = map[string]string{
	models.SeverityError:   ColorRed,
	models.SeverityWarning: ColorOrange,
	models.SeverityInfo:    ColorBlue,
	models.SeverityNotice:  ColorTurquoise,
	models.SeverityDebug:   ColorNeutral,
}

var healthColors = map[models.Health]string{
	models.HealthHealthy: ColorGreen,
	models.HealthWarning: ColorOrange,
	models.HealthError:   ColorRed,
}

var healthIcons = map[models.Health]string{
	models.HealthHealthy: "✓",
	models.HealthWarning: "!",
	models.HealthError:   "✗",
}

var serviceColors = map[string]string{
	models.DeviceActive:   ColorGreen,
	models.DeviceInactive: ColorRed,
	models.DeviceFailed:   ColorDarkRed,
}

// InterfaceColor returns the color of a business interface
func InterfaceColor(name string) string {
	if c, ok := interfaceColors[name]; ok {
		return c
	}
	return ColorNeutral
}

// SeverityClass returns the style class of a severity, "severity-default" if unknown
func SeverityClass(severity string) string {
	if _, ok := severityColors[severity]; ok {
		return "severity-" + severity
	}
	return "severity-default"
}

// SeverityColor returns the color of a severity
func SeverityColor(severity string) string {
	if c, ok := severityColors[severity]; ok {
		return c
	}
	return ColorNeutral
}

// HealthColor returns the color of an overall health value
func HealthColor(h models.Health) string {
	if c, ok := healthColors[h]; ok {
		return c
	}
	return ColorNeutral
}

// HealthIcon returns the symbol of an overall health value
func HealthIcon(h models.Health) string {
	if i, ok := healthIcons[h]; ok {
		return i
	}
	return "?"
}

// ServiceColor returns the color of a service or device state
func ServiceColor(status string) string {
	if c, ok := serviceColors[strings.ToLower(status)]; ok {
		return c
	}
	return ColorNeutral
}

// ServiceIcon returns the symbol of a service state
func ServiceIcon(status string) string {
	switch strings.ToLower(status) {
	case models.DeviceActive:
		return "✓"
	case models.DeviceInactive:
		return "✗"
	case models.DeviceFailed:
		return "●"
	default:
		return "?"
	}
}

// Status classes of the legacy surface
const (
	ClassSuccess   = "success"
	ClassWarning   = "warning"
	ClassDanger    = "danger"
	ClassSecondary = "secondary"
)

// StatusClass groups free-form status words into success, warning, danger
// or secondary
func StatusClass(status string) string {
	switch strings.ToLower(status) {
	case "active", "healthy", "valid", "online":
		return ClassSuccess
	case "warning", "pending":
		return ClassWarning
	case "error", "invalid", "offline", "failed":
		return ClassDanger
	default:
		return ClassSecondary
	}
}

// StatusIcon returns the symbol of a status class
func StatusIcon(status string) string {
	switch StatusClass(status) {
	case ClassSuccess:
		return "✓"
	case ClassWarning:
		return "!"
	case ClassDanger:
		return "✗"
	default:
		return "?"
	}
}

// ClassColor returns the color of a status class
func ClassColor(class string) string {
	switch class {
	case ClassSuccess:
		return ColorGreen
	case ClassWarning:
		return ColorOrange
	case ClassDanger:
		return ColorRed
	default:
		return ColorNeutral
	}
}

// Metric bar colors turn red above their alert threshold
func CPUColor(p float64) string {
	if p > 80 {
		return ColorRed
	}
	return ColorGreen
}

func MemoryColor(p float64) string {
	if p > 85 {
		return ColorRed
	}
	return ColorBlue
}

func DiskColor(p float64) string {
	if p > 90 {
		return ColorRed
	}
	return ColorPurple
}

func NetworkColor(float64) string {
	return ColorOrange
}

// ScoreColor grades a compliance score
func ScoreColor(score float64) string {
	switch {
	case score >= 90:
		return ColorGreen
	case score >= 70:
		return ColorOrange
	default:
		return ColorRed
	}
}

var segmentColors = []string{ColorGreen, ColorOrange, ColorRed, ColorBlue, ColorPurple}

// SegmentColor returns the chart color of the i-th segment
func SegmentColor(i int) string {
	return segmentColors[i%len(segmentColors)]
}
