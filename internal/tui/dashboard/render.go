package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/logmaster/dashboard/internal/projector"
	"github.com/logmaster/dashboard/pkg/core/version"
)

var viewTitles = map[projector.View]string{
	projector.ViewDashboard:  "Dashboard",
	projector.ViewLogs:       "Logs",
	projector.ViewSystem:     "System",
	projector.ViewDiscovery:  "Discovery",
	projector.ViewOverview:   "Overview",
	projector.ViewActivity:   "Activity",
	projector.ViewDevices:    "Devices",
	projector.ViewSignatures: "Signatures",
	projector.ViewArchives:   "Archives",
	projector.ViewReports:    "Reports",
	projector.ViewCompliance: "Compliance",
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading LogMaster..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if bar := m.renderFilterBar(); bar != "" {
		b.WriteString(bar)
		b.WriteString("\n")
	}

	b.WriteString(BodyStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")

	b.WriteString(m.renderHelpBar())

	return b.String()
}

// renderHeader renders the logo, health badge, clock and view tabs
func (m Model) renderHeader() string {
	h := m.display.Header

	health := RenderBadge(h.Health)
	if h.Failed {
		health += " " + ErrorStyle.Render("(unreachable)")
	}

	top := lipgloss.JoinHorizontal(lipgloss.Center,
		LogoStyle.Render(Logo),
		strings.Repeat(" ", 3),
		health,
		strings.Repeat(" ", 3),
		ClockStyle.Render(h.Clock),
	)

	tabs := make([]string, len(m.views))
	for i, v := range m.views {
		label := fmt.Sprintf("%d %s", i+1, viewTitles[v])
		if v == m.display.View {
			tabs[i] = ActiveTabStyle.Render(label)
		} else {
			tabs[i] = TabStyle.Render(label)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		TitlePanelStyle.Width(m.width-4).Render(top),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
	)
}

// renderFilterBar renders the logs filters or the active text input
func (m Model) renderFilterBar() string {
	if m.editing != "" {
		return FilterBarStyle.Width(m.width - 2).Render(m.input.View())
	}

	lv := m.display.Logs
	if lv == nil {
		return ""
	}

	f := lv.Filters
	parts := []string{
		RenderFilterStatus("search", f.Search),
		RenderFilterStatus("ip", f.IP),
		RenderFilterStatus("interface", f.Interface),
		RenderFilterStatus("severity", f.Severity),
		HelpDescStyle.Render(fmt.Sprintf("limit:%d", f.Limit)),
	}

	refresh := FilterInactiveStyle.Render("[" + lv.RefreshLabel + "]")
	if lv.AutoRefresh {
		refresh = FilterActiveStyle.Render("[" + lv.RefreshLabel + "]")
	}
	parts = append(parts, refresh)

	return FilterBarStyle.Width(m.width - 2).Render(strings.Join(parts, "  "))
}

// renderStatusBar renders the last action outcome and the version
func (m Model) renderStatusBar() string {
	var left string
	switch {
	case m.busy:
		left = m.spinner.View() + " Working..."
	case m.status != "" && m.statusErr:
		left = ErrorStyle.Render(m.status)
	case m.status != "":
		left = SuccessStyle.Render(m.status)
	default:
		p := m.panel()
		left = HelpDescStyle.Render(p.Phase.String())
		if p.Updated != "" {
			left = HelpDescStyle.Render("Updated " + p.Updated)
		}
	}
	if m.panel().Refreshing && !m.busy {
		left = m.spinner.View() + " " + left
	}

	right := HelpDescStyle.Render("v" + version.Dashboard)

	pad := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad < 2 {
		pad = 2
	}
	return StatusBarStyle.Width(m.width - 2).Render(left + strings.Repeat(" ", pad) + right)
}

// renderHelpBar renders the shortcuts of the active view
func (m Model) renderHelpBar() string {
	if m.editing != "" {
		return HelpStyle.Render(strings.Join([]string{
			RenderKeyHint("Enter", "Apply"),
			RenderKeyHint("Esc", "Cancel"),
		}, "  "))
	}

	items := []string{
		RenderKeyHint("Tab/1-"+fmt.Sprint(len(m.views)), "View"),
		RenderKeyHint("r", "Refresh"),
	}
	switch m.display.View {
	case projector.ViewLogs:
		items = append(items,
			RenderKeyHint("/", "Search"),
			RenderKeyHint("i", "IP"),
			RenderKeyHint("f/s/l", "Interface/Severity/Limit"),
			RenderKeyHint("c", "Clear"),
			RenderKeyHint("a", "Auto"),
			RenderKeyHint("e", "Export"),
		)
	case projector.ViewActivity:
		items = append(items, RenderKeyHint("d", "Device"))
	case projector.ViewReports:
		items = append(items, RenderKeyHint("g", "Generate"))
	}
	items = append(items, RenderKeyHint("q", "Quit"))

	return HelpStyle.Render(strings.Join(items, "  "))
}

// renderBody renders the active view
func renderBody(d projector.Display) string {
	switch {
	case d.Dashboard != nil:
		return renderDashboard(d.Dashboard)
	case d.Logs != nil:
		return renderLogs(d.Logs)
	case d.System != nil:
		return renderSystem(d.System)
	case d.Discovery != nil:
		return renderDiscovery(d.Discovery)
	case d.Overview != nil:
		return renderOverview(d.Overview)
	case d.Activity != nil:
		return renderActivity(d.Activity)
	case d.Devices != nil:
		return renderDevices(d.Devices)
	case d.Signatures != nil:
		return renderSignatures(d.Signatures)
	case d.Archives != nil:
		return renderArchives(d.Archives)
	case d.Reports != nil:
		return renderReports(d.Reports)
	case d.Compliance != nil:
		return renderCompliance(d.Compliance)
	}
	return ""
}

// renderPanel renders the loading, error and empty states. It returns
// false when the view content should follow.
func renderPanel(b *strings.Builder, p projector.Panel) bool {
	switch p.Phase {
	case projector.PhaseLoading:
		b.WriteString(PlaceholderStyle.Render("Loading..."))
		return true
	case projector.PhaseError:
		b.WriteString(ErrorStyle.Render(p.Error))
		b.WriteString("\n")
		b.WriteString(HelpDescStyle.Render("Press r to retry"))
		return true
	case projector.PhaseEmpty:
		b.WriteString(PlaceholderStyle.Render(p.Placeholder))
		return true
	}

	if p.Stale {
		b.WriteString(StaleStyle.Render(p.Error + " (showing last data, press r to retry)"))
		b.WriteString("\n")
	}
	return false
}

func renderCards(b *strings.Builder, cards []projector.Card) {
	if len(cards) == 0 {
		return
	}
	rendered := make([]string, len(cards))
	for i, c := range cards {
		rendered[i] = CardStyle.Render(CardLabelStyle.Render(c.Label) + "\n" + CardValueStyle.Render(c.Value))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n")
}

func renderBars(b *strings.Builder, title string, bars []projector.Bar) {
	if len(bars) == 0 {
		return
	}
	b.WriteString(SectionStyle.Render(title))
	b.WriteString("\n")
	for _, bar := range bars {
		fmt.Fprintf(b, "%s %s %s\n", LabelStyle.Render(bar.Label), RenderBar(bar.Width, bar.Color), bar.Value)
	}
}

func renderDetails(b *strings.Builder, title string, details []projector.Detail) {
	if title != "" {
		b.WriteString(SectionStyle.Render(title))
		b.WriteString("\n")
	}
	for _, d := range details {
		fmt.Fprintf(b, "%s %s\n", LabelStyle.Render(d.Label), d.Value)
	}
}

func renderLogRows(b *strings.Builder, rows []projector.LogRow) {
	for _, r := range rows {
		fmt.Fprintf(b, "%s %-15s %s %s %s\n",
			TimestampStyle.Render(r.Time),
			r.IP,
			Colored(r.InterfaceColor, fmt.Sprintf("%-10s", r.Interface)),
			Colored(r.SeverityColor, fmt.Sprintf("%-8s", strings.ToUpper(r.Severity))),
			r.Message,
		)
	}
}

func renderDashboard(v *projector.DashboardView) string {
	var b strings.Builder
	if renderPanel(&b, v.Panel) {
		return b.String()
	}

	renderCards(&b, v.Cards)
	fmt.Fprintf(&b, "%s %s   %s %s   %s %s\n",
		LabelStyle.Width(0).Render("Status:"), RenderBadge(v.Status),
		LabelStyle.Width(0).Render("Uptime:"), v.Uptime,
		LabelStyle.Width(0).Render("Last update:"), v.LastUpdate)

	renderBars(&b, "Interfaces", v.Interfaces)
	renderBars(&b, "Top IPs", v.TopIPs)
	renderBars(&b, "System Metrics", v.Metrics)

	b.WriteString(SectionStyle.Render("Recent Logs"))
	b.WriteString("\n")
	if v.RecentPlaceholder != "" {
		b.WriteString(PlaceholderStyle.Render(v.RecentPlaceholder))
		b.WriteString("\n")
	}
	renderLogRows(&b, v.Recent)
	return b.String()
}

func renderLogs(v *projector.LogsView) string {
	var b strings.Builder
	if renderPanel(&b, v.Panel) {
		if v.Hint != "" {
			b.WriteString("\n")
			b.WriteString(HelpDescStyle.Render(v.Hint))
		}
		if v.ShowClear {
			b.WriteString("\n")
			b.WriteString(RenderKeyHint("c", "Clear filters"))
		}
		return b.String()
	}

	b.WriteString(HelpDescStyle.Render(v.Summary))
	b.WriteString("\n")
	renderLogRows(&b, v.Rows)
	return b.String()
}

func renderSystem(v *projector.SystemView) string {
	var b strings.Builder
	if renderPanel(&b, v.Panel) {
		return b.String()
	}

	fmt.Fprintf(&b, "%s\n", RenderBadge(v.Health))
	renderDetails(&b, "Details", v.Details)

	b.WriteString(SectionStyle.Render("Services"))
	b.WriteString("\n")
	if v.ServicesEmpty {
		b.WriteString(PlaceholderStyle.Render("No services reported"))
		b.WriteString("\n")
	}
	for _, s := range v.Services {
		fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render(s.Name), Colored(s.Color, s.Icon+" "+s.Status))
	}

	renderBars(&b, "Metrics", v.Metrics)
	renderDetails(&b, "Log Structure", v.Structure)
	for _, dir := range v.Directories {
		fmt.Fprintf(&b, "  %s\n", dir.IP)
		for _, iface := range dir.Interfaces {
			fmt.Fprintf(&b, "    %s %s\n", LabelStyle.Width(20).Render(iface.Label), iface.Value)
		}
	}
	if v.MoreDirectories != "" {
		b.WriteString(PlaceholderStyle.Render(v.MoreDirectories))
		b.WriteString("\n")
	}
	return b.String()
}

func renderDiscovery(v *projector.DiscoveryView) string {
	var b strings.Builder
	if renderPanel(&b, v.Panel) {
		return b.String()
	}

	renderCards(&b, v.Cards)
	b.WriteString(SectionStyle.Render("Directories"))
	b.WriteString("\n")
	for _, d := range v.Directories {
		fmt.Fprintf(&b, "%s %s (%d files)\n", LabelStyle.Render(d.IP), strings.Join(d.Interfaces, ", "), d.Files)
	}
	return b.String()
}

func renderOverview(v *projector.OverviewView) string {
	var b strings.Builder
	if renderPanel(&b, v.Panel) {
		return b.String()
	}

	renderCards(&b, v.Cards)
	renderBars(&b, "Disk", []projector.Bar{v.DiskBar})
	if v.LastUpdated != "" {
		fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render("Last updated"), v.LastUpdated)
	}
	renderStatusRows(&b, "Services", v.Services)
	return b.String()
}

func renderStatusRows(b *strings.Builder, title string, rows []projector.StatusRow) {
	if len(rows) == 0 {
		return
	}
	b.WriteString(SectionStyle.Render(title))
	b.WriteString("\n")
	for _, r := range rows {
		fmt.Fprintf(b, "%s %s\n", LabelStyle.Render(r.Label), Colored(r.Color, r.Icon+" "+r.Value))
	}
}

func renderActivity(v *projector.ActivityView) string {
	var b strings.Builder
	if renderPanel(&b, v.Panel) {
		return b.String()
	}

	for _, r := range v.Rows {
		fmt.Fprintf(&b, "%s %-20s %-15s %s\n", TimestampStyle.Render(r.Time), r.Device, r.SourceIP, r.Message)
	}
	return b.String()
}

func renderDevices(v *projector.DevicesView) string {
	var b strings.Builder
	if renderPanel(&b, v.Panel) {
		return b.String()
	}

	fmt.Fprintf(&b, "%s\n", HelpDescStyle.Render(fmt.Sprintf("%-10s %-16s %-15s %-12s %-10s %8s  %s",
		"ID", "Name", "IP", "Location", "Status", "Logs", "Last Log")))
	for _, d := range v.Rows {
		fmt.Fprintf(&b, "%-10s %-16s %-15s %-12s %s %8s  %s\n",
			d.ID, d.Name, d.IP, d.Location,
			Colored(d.StatusColor, fmt.Sprintf("%-10s", d.StatusIcon+" "+d.Status)),
			d.LogCount, d.LastLog)
	}
	return b.String()
}

func renderSignatures(v *projector.SignaturesView) string {
	var b strings.Builder
	if renderPanel(&b, v.Panel) {
		return b.String()
	}

	b.WriteString(SectionStyle.Render("Status"))
	b.WriteString("\n")
	for _, s := range v.Segments {
		fmt.Fprintf(&b, "%s %s %s (%s)\n", LabelStyle.Render(s.Label), RenderBar(s.Width, s.Color), s.Count, s.Percent)
	}
	renderBars(&b, "Daily", v.Daily)
	return b.String()
}

func renderArchives(v *projector.ArchivesView) string {
	var b strings.Builder
	if renderPanel(&b, v.Panel) {
		return b.String()
	}

	renderCards(&b, v.Cards)
	b.WriteString(SectionStyle.Render("Recent Archives"))
	b.WriteString("\n")
	for _, a := range v.Rows {
		fmt.Fprintf(&b, "%-32s %10s %10s %6s  %s\n", a.FileName, a.OriginalSize, a.CompressedSize, a.Ratio, TimestampStyle.Render(a.CreatedAt))
	}
	return b.String()
}

func renderReports(v *projector.ReportsView) string {
	var b strings.Builder
	if renderPanel(&b, v.Panel) {
		return b.String()
	}

	fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render("Compliance score"), Colored(v.ScoreColor, v.Score))
	fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render("Period"), v.Period)
	if v.CalculatedAt != "" {
		fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render("Calculated"), v.CalculatedAt)
	}
	if v.LastReport != "" {
		b.WriteString("\n")
		if v.LastReportError {
			b.WriteString(ErrorStyle.Render(v.LastReport))
		} else {
			b.WriteString(SuccessStyle.Render(v.LastReport))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderCompliance(v *projector.ComplianceView) string {
	var b strings.Builder
	if renderPanel(&b, v.Panel) {
		return b.String()
	}
	renderStatusRows(&b, "Components", v.Rows)
	return b.String()
}
