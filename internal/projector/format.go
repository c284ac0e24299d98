// ============================================================================
// LogMaster - Log Monitoring Dashboard
// ============================================================================
//
// Package:     projector
// Description: Pure value formatting for the dashboard display model
// Author:      LogMaster Contributors
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package projector

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale is used when a locale cannot be parsed
const DefaultLocale = "en"

// MessageMaxLen is the rune budget of truncated log messages
const MessageMaxLen = 50

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// ParseLocale converts a BCP 47 tag, falling back to English
func ParseLocale(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	return tag
}

// FormatNumber groups digits the way locale does ("en": 1,234,567; "tr": 1.234.567)
func FormatNumber(locale string, n int64) string {
	return message.NewPrinter(ParseLocale(locale)).Sprintf("%d", n)
}

// FormatDecimal formats f with the given number of fraction digits, locale aware
func FormatDecimal(locale string, f float64, digits int) string {
	return message.NewPrinter(ParseLocale(locale)).Sprintf("%.*f", digits, f)
}

// CompactNumber abbreviates large counts: 1.2M, 3.4K, 999
func CompactNumber(n int64) string {
	switch {
	case n >= 1_000_000:
		return strconv.FormatFloat(float64(n)/1_000_000, 'f', 1, 64) + "M"
	case n >= 1_000:
		return strconv.FormatFloat(float64(n)/1_000, 'f', 1, 64) + "K"
	default:
		return strconv.FormatInt(n, 10)
	}
}

// FormatBytes renders a byte count in 1024 steps with at most two
// decimals and no trailing zeros. Zero and negative counts are "0 B".
func FormatBytes(b int64) string {
	if b <= 0 {
		return "0 B"
	}

	v := float64(b)
	i := 0
	for v >= 1024 && i < len(byteUnits)-1 {
		v /= 1024
		i++
	}

	v = round2(v)
	if v >= 1024 && i < len(byteUnits)-1 {
		v = round2(v / 1024)
		i++
	}

	return humanize.FtoaWithDigits(v, 2) + " " + byteUnits[i]
}

// FormatUptime renders seconds as "Nd Nh Nm", "Nh Nm" or "Nm". Zero is "Unknown".
// Fractional seconds are dropped.
func FormatUptime(uptime float64) string {
	seconds := int64(uptime)
	if seconds <= 0 {
		return "Unknown"
	}

	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// FormatPercent renders p with one decimal
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// FormatRate renders a per-second rate with two decimals
func FormatRate(v float64, unit string) string {
	return fmt.Sprintf("%.2f %s/s", v, unit)
}

// Truncate shortens s to max runes, appending "..." only when it was cut
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// FormatStatusKey turns a status map key into a label:
// "log_directory" becomes "Log Directory", "service_rsyslog" becomes "Rsyslog"
func FormatStatusKey(key string) string {
	caser := cases.Title(language.English, cases.NoLower)
	label := caser.String(strings.ReplaceAll(key, "_", " "))
	return strings.Replace(label, "Service ", "", 1)
}

// FormatTime renders t in layout, "-" for the zero time
func FormatTime(t time.Time, layout string) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(layout)
}

// FormatRelative renders t relative to now ("3 minutes ago"), "-" for the zero time
func FormatRelative(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
