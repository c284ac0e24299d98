// ============================================================================
// LogMaster - Log Monitoring Dashboard
// ============================================================================
//
// Package:     version
// Description: Central version management for the dashboard binaries
// Author:      LogMaster Contributors
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package version

import "fmt"

// Version constants for all LogMaster dashboard components
const (
	// Application version
	App = "1.0.0"

	// Component versions
	Dashboard = "1.0.0"
	Client    = "1.0.0"
	MockAPI   = "1.0.0"
)

// Build metadata, set via -ldflags at release time
var (
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "dashboard":
		return Dashboard
	case "client":
		return Client
	case "mockapi":
		return MockAPI
	default:
		return App
	}
}

// UserAgent returns the User-Agent sent by the API client
func UserAgent() string {
	return fmt.Sprintf("logmaster-dashboard/%s", Client)
}
