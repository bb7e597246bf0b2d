package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/wifitrackr/internal/scan"
	"github.com/sadopc/wifitrackr/internal/stats"
	"github.com/sadopc/wifitrackr/internal/store"
)

type dashboardModel struct {
	store    *store.Store
	recorder *scan.Recorder
	width    int
	height   int

	today    stats.DailyStat
	target   int
	keyword  string
	recent   []stats.Session
	scanning bool
}

func newDashboardModel(s *store.Store, recorder *scan.Recorder) dashboardModel {
	return dashboardModel{
		store:    s,
		recorder: recorder,
		target:   store.DefaultTargetDailyCount,
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	today   stats.DailyStat
	target  int
	keyword string
	recent  []stats.Session
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		cfg, _ := d.store.LoadSettings()

		now := time.Now()
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
		dayEnd := dayStart.AddDate(0, 0, 1)
		records, _ := d.store.RecordsInRange(dayStart.UnixMilli(), dayEnd.UnixMilli())
		today := stats.Daily(records)[dayStart.Format(stats.DateFormat)]

		all, _ := d.store.AllRecords()
		sessions := stats.Sessions(all)
		if len(sessions) > 5 {
			sessions = sessions[:5]
		}

		return dashboardDataMsg{
			today:   today,
			target:  cfg.TargetDailyCount,
			keyword: cfg.TargetKeyword,
			recent:  sessions,
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.today = msg.today
		d.target = msg.target
		d.keyword = msg.keyword
		d.recent = msg.recent
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Scan):
			if d.scanning {
				return d, nil
			}
			d.scanning = true
			return d, d.runManualScan()
		}
	}
	return d, nil
}

func (d dashboardModel) runManualScan() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		out, err := d.recorder.RunAttempt(ctx, scan.TriggerManual)
		return scanDoneMsg{outcome: out, err: err}
	}
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	statusPanel := d.renderStatusPanel(contentWidth)
	recentPanel := d.renderRecentPanel(contentWidth)

	return lipgloss.JoinVertical(lipgloss.Left, statusPanel, recentPanel)
}

func (d dashboardModel) renderStatusPanel(w int) string {
	title := titleStyle.Render("Today")

	var progress string
	if d.today.Successful(d.target) {
		progress = successStyle.Render(fmt.Sprintf("✓ %d/%d periodic scans", d.today.PeriodicSessions, d.target))
	} else {
		progress = warningStyle.Render(fmt.Sprintf("%d/%d periodic scans", d.today.PeriodicSessions, d.target))
	}

	manual := d.today.TotalSessions - d.today.PeriodicSessions
	detail := mutedStyle.Render(fmt.Sprintf("%d session(s) total, %d manual", d.today.TotalSessions, manual))

	var keywordLine string
	if d.keyword == "" {
		keywordLine = errorStyle.Render("No target network configured — set one in Settings")
	} else {
		keywordLine = mutedStyle.Render("Tracking: ") + highlightStyle.Render(d.keyword)
	}

	hint := mutedStyle.Render("Press s to scan now (manual scans don't count toward the target)")

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		progress,
		detail,
		"",
		keywordLine,
		hint,
	)
	if d.today.Successful(d.target) {
		return activePanelStyle.Width(w).Render(content)
	}
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderRecentPanel(w int) string {
	title := titleStyle.Render("Recent Sessions")
	if len(d.recent) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No scan sessions yet"),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	for _, s := range d.recent {
		glyph := scanTypeGlyph(s.ScanType)
		names := strings.Join(s.NetworkNames, ", ")
		row := fmt.Sprintf("  %s %s  %d network(s)  %s",
			glyph, s.Time().Format("2006-01-02 15:04"), s.NetworkCount, names)
		if runes := []rune(row); len(runes) > w-6 && w > 10 {
			row = string(runes[:w-9]) + "…"
		}
		rows = append(rows, row)
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
