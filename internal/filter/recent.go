package filter

import (
	"strconv"

	"github.com/logmaster/dashboard/internal/api"
)

// RecentQuery selects the recent activity list of the legacy surface
type RecentQuery struct {
	DeviceID string
	Limit    int
}

// DefaultRecentQuery returns the query used on first load
func DefaultRecentQuery() RecentQuery {
	return RecentQuery{Limit: DefaultLimit}
}

// ToQuery returns the query parameters for /api/logs/recent. The limit is
// always sent; the device only when one is selected.
func (q RecentQuery) ToQuery() api.Params {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultRecentQuery().Limit
	}
	p := api.Params{"limit": strconv.Itoa(limit)}
	if q.DeviceID != "" {
		p["device_id"] = q.DeviceID
	}
	return p
}
