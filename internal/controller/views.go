package controller

import (
	"time"

	"github.com/logmaster/dashboard/internal/projector"
	"github.com/logmaster/dashboard/internal/state"
	"github.com/logmaster/dashboard/pkg/core/config"
)

// viewSpec describes what a view fetches and how often. A nil interval
// loads the domains once when the view is shown.
type viewSpec struct {
	domains         []state.Domain
	interval        func(config.PollingConfig) time.Duration
	autoRefreshOnly bool
}

var v1Order = []projector.View{
	projector.ViewDashboard,
	projector.ViewLogs,
	projector.ViewSystem,
	projector.ViewDiscovery,
}

var v1Views = map[projector.View]viewSpec{
	projector.ViewDashboard: {
		domains:  []state.Domain{state.Stats, state.RecentLogs},
		interval: func(p config.PollingConfig) time.Duration { return p.Dashboard.Duration },
	},
	projector.ViewLogs: {
		domains:         []state.Domain{state.Logs},
		interval:        func(p config.PollingConfig) time.Duration { return p.Logs.Duration },
		autoRefreshOnly: true,
	},
	projector.ViewSystem: {
		domains:  []state.Domain{state.SystemStatus, state.SystemMetrics, state.FileStructure},
		interval: func(p config.PollingConfig) time.Duration { return p.System.Duration },
	},
	projector.ViewDiscovery: {
		domains:  []state.Domain{state.FileStructure},
		interval: func(p config.PollingConfig) time.Duration { return p.Discovery.Duration },
	},
}

var legacyOrder = []projector.View{
	projector.ViewOverview,
	projector.ViewActivity,
	projector.ViewDevices,
	projector.ViewSignatures,
	projector.ViewArchives,
	projector.ViewReports,
	projector.ViewCompliance,
}

var legacyViews = map[projector.View]viewSpec{
	projector.ViewOverview: {
		domains:  []state.Domain{state.Overview, state.ServiceHealth},
		interval: func(p config.PollingConfig) time.Duration { return p.Overview.Duration },
	},
	projector.ViewActivity:   {domains: []state.Domain{state.RecentActivity}},
	projector.ViewDevices:    {domains: []state.Domain{state.Devices}},
	projector.ViewSignatures: {domains: []state.Domain{state.Signatures}},
	projector.ViewArchives:   {domains: []state.Domain{state.Archives}},
	projector.ViewReports:    {domains: []state.Domain{state.Compliance}},
	projector.ViewCompliance: {domains: []state.Domain{state.ServiceHealth}},
}

// legacyInitial is loaded once when the legacy dashboard starts, next to
// the overview view that is shown first
var legacyInitial = []state.Domain{
	state.Devices,
	state.RecentActivity,
	state.Compliance,
}

func taskID(v projector.View) string {
	return "view:" + string(v)
}

const headerTask = "header"
