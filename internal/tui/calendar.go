package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/wifitrackr/internal/stats"
	"github.com/sadopc/wifitrackr/internal/store"
)

type calendarModel struct {
	store  *store.Store
	width  int
	height int

	year  int
	month time.Month

	daily  map[string]stats.DailyStat
	target int

	chart barchart.Model
}

func newCalendarModel(s *store.Store) calendarModel {
	now := time.Now()
	return calendarModel{
		store:  s,
		year:   now.Year(),
		month:  now.Month(),
		target: store.DefaultTargetDailyCount,
		chart:  barchart.New(60, 8),
	}
}

func (c *calendarModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type calendarDataMsg struct {
	daily  map[string]stats.DailyStat
	target int
}

func (c calendarModel) refresh() tea.Cmd {
	year, month := c.year, c.month
	return func() tea.Msg {
		start, end := stats.MonthRange(year, month, time.Local)
		records, _ := c.store.RecordsInRange(start, end)
		cfg, _ := c.store.LoadSettings()
		return calendarDataMsg{
			daily:  stats.Daily(records),
			target: cfg.TargetDailyCount,
		}
	}
}

func (c calendarModel) update(msg tea.Msg) (calendarModel, tea.Cmd) {
	switch msg := msg.(type) {
	case calendarDataMsg:
		c.daily = msg.daily
		c.target = msg.target
		c.buildChart()
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			c.year, c.month = prevMonth(c.year, c.month)
			return c, c.refresh()
		case key.Matches(msg, keys.Right):
			c.year, c.month = nextMonth(c.year, c.month)
			return c, c.refresh()
		case key.Matches(msg, keys.Today):
			now := time.Now()
			c.year, c.month = now.Year(), now.Month()
			return c, c.refresh()
		}
	}
	return c, nil
}

func prevMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return t.Year(), t.Month()
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return t.Year(), t.Month()
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (c *calendarModel) buildChart() {
	chartWidth := c.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 8

	c.chart = barchart.New(chartWidth, chartHeight)

	days := daysIn(c.year, c.month)
	var bars []barchart.BarData
	for day := 1; day <= days; day++ {
		dateStr := fmt.Sprintf("%04d-%02d-%02d", c.year, c.month, day)
		stat := c.daily[dateStr]

		style := lipgloss.NewStyle().Foreground(colorWarning)
		if stat.Successful(c.target) {
			style = lipgloss.NewStyle().Foreground(colorSuccess)
		}

		values := []barchart.BarValue{{
			Name:  dateStr,
			Value: float64(stat.PeriodicSessions),
			Style: style,
		}}
		if stat.PeriodicSessions == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{
			Label:  fmt.Sprintf("%02d", day),
			Values: values,
		})
	}

	c.chart.PushAll(bars)
	c.chart.Draw()
}

func (c calendarModel) view() string {
	w := c.width - 4

	monthLabel := time.Date(c.year, c.month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Calendar"), "  ", highlightStyle.Render(monthLabel), "  ",
		mutedStyle.Render(fmt.Sprintf("target %d periodic scans/day", c.target)),
	)

	grid := c.renderGrid()
	legend := mutedStyle.Render("  ") +
		daySuccessStyle.Render("✓ target met") + "  " +
		dayPartialStyle.Render("~ some scans") + "  " +
		dayEmptyStyle.Render("· none")
	chartTitle := mutedStyle.Render("Periodic sessions per day")
	nav := mutedStyle.Render("  ←/→: month  t: today")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", grid, "", legend, "", chartTitle, c.chart.View(), "", nav,
		),
	)
}

// renderGrid draws a Monday-first month grid. Day cells are colored by
// whether the day met the periodic target.
func (c calendarModel) renderGrid() string {
	var rows []string
	rows = append(rows, mutedStyle.Render("  Mo  Tu  We  Th  Fr  Sa  Su"))

	first := time.Date(c.year, c.month, 1, 0, 0, 0, 0, time.Local)
	offset := (int(first.Weekday()) + 6) % 7 // Monday = 0
	days := daysIn(c.year, c.month)
	today := time.Now().Format(stats.DateFormat)

	var week []string
	for i := 0; i < offset; i++ {
		week = append(week, "    ")
	}
	for day := 1; day <= days; day++ {
		dateStr := fmt.Sprintf("%04d-%02d-%02d", c.year, c.month, day)
		stat, has := c.daily[dateStr]

		marker := "·"
		style := dayEmptyStyle
		switch {
		case has && stat.Successful(c.target):
			marker, style = "✓", daySuccessStyle
		case has && stat.PeriodicSessions > 0:
			marker, style = "~", dayPartialStyle
		case has:
			// Manual-only day: sessions exist but none periodic.
			style = dayPartialStyle
		}
		// Today is underlined but keeps its success marker.
		if dateStr == today {
			style = todayStyle
		}
		week = append(week, style.Render(fmt.Sprintf(" %s%2d", marker, day)))

		if len(week) == 7 {
			rows = append(rows, strings.Join(week, ""))
			week = nil
		}
	}
	if len(week) > 0 {
		rows = append(rows, strings.Join(week, ""))
	}

	return strings.Join(rows, "\n")
}
