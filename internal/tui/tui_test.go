package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/wifitrackr/internal/logging"
	"github.com/sadopc/wifitrackr/internal/scan"
	"github.com/sadopc/wifitrackr/internal/stats"
	"github.com/sadopc/wifitrackr/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

type fakeScanner struct {
	networks []string
}

func (f *fakeScanner) Enabled(context.Context) (bool, error) {
	return true, nil
}

func (f *fakeScanner) VisibleNetworks(context.Context) ([]string, error) {
	return f.networks, nil
}

func newTestRecorder(s *store.Store) *scan.Recorder {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return scan.NewRecorder(s, &fakeScanner{networks: []string{"OfficeNet"}}, log)
}

func newTestApp(t *testing.T) (App, *store.Store) {
	t.Helper()
	s := newTestStore(t)
	_, ring := logging.New(filepath.Join(t.TempDir(), "test.log"), slog.LevelDebug)
	return NewApp(s, newTestRecorder(s), ring), s
}

func insertSession(t *testing.T, s *store.Store, at time.Time, scanType string, names ...string) int64 {
	t.Helper()
	id := at.UnixMilli()
	for _, name := range names {
		_, err := s.InsertRecord(store.ScanRecord{
			Timestamp:      id,
			NetworkName:    name,
			MatchedKeyword: "office",
			SessionID:      id,
			ScanType:       scanType,
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	return id
}

// ============================================================
// View state
// ============================================================

func TestViewNames(t *testing.T) {
	if len(viewNames) != 4 {
		t.Fatalf("expected 4 view names, got %d", len(viewNames))
	}
	expected := []string{"Dashboard", "Calendar", "Log", "Settings"}
	for i, name := range expected {
		if viewNames[i] != name {
			t.Fatalf("viewNames[%d] = %q, want %q", i, viewNames[i], name)
		}
	}
}

func TestViewStateConstants(t *testing.T) {
	if viewDashboard != 0 || viewCalendar != 1 || viewLog != 2 || viewSettings != 3 {
		t.Fatal("view state constants out of order")
	}
}

// ============================================================
// Helper functions
// ============================================================

func TestFormatStamp(t *testing.T) {
	ts := time.Date(2025, time.March, 10, 9, 30, 15, 0, time.Local)
	if got := formatStamp(ts.UnixMilli()); got != "2025-03-10 09:30:15" {
		t.Fatalf("formatStamp = %q", got)
	}
}

func TestScanTypeGlyph(t *testing.T) {
	if scanTypeGlyph(store.ScanTypeManual) == scanTypeGlyph(store.ScanTypePeriodic) {
		t.Fatal("manual and periodic glyphs must differ")
	}
}

func TestMinMax(t *testing.T) {
	if min(3, 5) != 3 || min(5, 3) != 3 || min(3, 3) != 3 {
		t.Fatal("min broken")
	}
	if max(3, 5) != 5 || max(5, 3) != 5 || max(3, 3) != 3 {
		t.Fatal("max broken")
	}
}

// ============================================================
// Dashboard model
// ============================================================

func TestDashboardLoadData(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()
	noon := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, time.Local)
	insertSession(t, s, noon, store.ScanTypePeriodic, "OfficeNet", "office-guest")
	insertSession(t, s, noon.Add(time.Hour), store.ScanTypeManual, "OfficeNet")

	d := newDashboardModel(s, newTestRecorder(s))
	msg, ok := d.loadData()().(dashboardDataMsg)
	if !ok {
		t.Fatal("loadData should produce dashboardDataMsg")
	}
	if msg.today.PeriodicSessions != 1 || msg.today.TotalSessions != 2 {
		t.Fatalf("unexpected today stats %+v", msg.today)
	}
	if msg.target != store.DefaultTargetDailyCount {
		t.Fatalf("unexpected target %d", msg.target)
	}
	if len(msg.recent) != 2 {
		t.Fatalf("expected 2 recent sessions, got %d", len(msg.recent))
	}
}

func TestDashboardLoadDataCapsRecent(t *testing.T) {
	s := newTestStore(t)
	base := time.Now().Add(-8 * time.Hour)
	for i := 0; i < 7; i++ {
		insertSession(t, s, base.Add(time.Duration(i)*time.Minute), store.ScanTypePeriodic, "OfficeNet")
	}

	d := newDashboardModel(s, newTestRecorder(s))
	msg := d.loadData()().(dashboardDataMsg)
	if len(msg.recent) != 5 {
		t.Fatalf("recent list must cap at 5, got %d", len(msg.recent))
	}
}

func TestDashboardUpdateData(t *testing.T) {
	s := newTestStore(t)
	d := newDashboardModel(s, newTestRecorder(s))

	d, _ = d.update(dashboardDataMsg{
		today:   stats.DailyStat{PeriodicSessions: 2, TotalSessions: 3},
		target:  3,
		keyword: "office",
	})
	if d.today.PeriodicSessions != 2 || d.target != 3 || d.keyword != "office" {
		t.Fatalf("data msg not applied: %+v", d)
	}
}

func TestDashboardViewNoKeyword(t *testing.T) {
	s := newTestStore(t)
	d := newDashboardModel(s, newTestRecorder(s))
	d.setSize(100, 30)

	view := d.view()
	if !strings.Contains(view, "No target network configured") {
		t.Fatal("dashboard should warn when no keyword is set")
	}
}

func TestDashboardViewWithKeyword(t *testing.T) {
	s := newTestStore(t)
	d := newDashboardModel(s, newTestRecorder(s))
	d.setSize(100, 30)
	d.keyword = "office"

	view := d.view()
	if !strings.Contains(view, "office") {
		t.Fatal("dashboard should show the tracked keyword")
	}
}

// ============================================================
// Calendar model
// ============================================================

func TestMonthNavigation(t *testing.T) {
	y, m := prevMonth(2025, time.January)
	if y != 2024 || m != time.December {
		t.Fatalf("prevMonth(Jan 2025) = %d %v", y, m)
	}
	y, m = nextMonth(2025, time.December)
	if y != 2026 || m != time.January {
		t.Fatalf("nextMonth(Dec 2025) = %d %v", y, m)
	}
	y, m = nextMonth(2025, time.March)
	if y != 2025 || m != time.April {
		t.Fatalf("nextMonth(Mar 2025) = %d %v", y, m)
	}
}

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.January, 31},
		{2025, time.February, 28},
		{2024, time.February, 29},
		{2025, time.April, 30},
	}
	for _, tt := range tests {
		if got := daysIn(tt.year, tt.month); got != tt.want {
			t.Fatalf("daysIn(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestCalendarRefresh(t *testing.T) {
	s := newTestStore(t)
	insertSession(t, s, time.Date(2025, time.March, 10, 9, 0, 0, 0, time.Local), store.ScanTypePeriodic, "OfficeNet")

	c := newCalendarModel(s)
	c.year, c.month = 2025, time.March

	msg, ok := c.refresh()().(calendarDataMsg)
	if !ok {
		t.Fatal("refresh should produce calendarDataMsg")
	}
	if _, has := msg.daily["2025-03-10"]; !has {
		t.Fatalf("expected stats for 2025-03-10, got %v", msg.daily)
	}
	if msg.target != store.DefaultTargetDailyCount {
		t.Fatalf("unexpected target %d", msg.target)
	}
}

func TestCalendarRefreshScopedToMonth(t *testing.T) {
	s := newTestStore(t)
	insertSession(t, s, time.Date(2025, time.February, 28, 9, 0, 0, 0, time.Local), store.ScanTypePeriodic, "OfficeNet")

	c := newCalendarModel(s)
	c.year, c.month = 2025, time.March

	msg := c.refresh()().(calendarDataMsg)
	if len(msg.daily) != 0 {
		t.Fatalf("February records must not leak into March, got %v", msg.daily)
	}
}

func TestCalendarGridMarksToday(t *testing.T) {
	s := newTestStore(t)
	c := newCalendarModel(s)
	c.setSize(100, 40)

	now := time.Now()
	c.year, c.month = now.Year(), now.Month()
	c.target = 3
	c.daily = map[string]stats.DailyStat{
		now.Format(stats.DateFormat): {PeriodicSessions: 3, TotalSessions: 3},
	}

	grid := c.renderGrid()
	if !strings.Contains(grid, fmt.Sprintf("✓%2d", now.Day())) {
		t.Fatal("today's cell must keep its success marker")
	}
}

func TestCalendarView(t *testing.T) {
	s := newTestStore(t)
	c := newCalendarModel(s)
	c.setSize(100, 40)
	c.year, c.month = 2025, time.March
	c.daily = map[string]stats.DailyStat{
		"2025-03-10": {PeriodicSessions: 3, TotalSessions: 3},
	}
	c.target = 3
	c.buildChart()

	view := c.view()
	if !strings.Contains(view, "March 2025") {
		t.Fatal("calendar should show the month label")
	}
	if !strings.Contains(view, "Mo") || !strings.Contains(view, "Su") {
		t.Fatal("calendar should show weekday headers")
	}
}

// ============================================================
// Log model
// ============================================================

func TestLogRefresh(t *testing.T) {
	s := newTestStore(t)
	insertSession(t, s, time.Now().Add(-time.Hour), store.ScanTypePeriodic, "OfficeNet", "office-guest")

	_, ring := logging.New(filepath.Join(t.TempDir(), "test.log"), slog.LevelDebug)
	l := newLogModel(s, ring)

	msg, ok := l.refresh()().(logDataMsg)
	if !ok {
		t.Fatal("refresh should produce logDataMsg")
	}
	if len(msg.sessions) != 1 || msg.sessions[0].NetworkCount != 2 {
		t.Fatalf("unexpected sessions %+v", msg.sessions)
	}
}

func TestLogDetail(t *testing.T) {
	s := newTestStore(t)
	id := insertSession(t, s, time.Now().Add(-time.Hour), store.ScanTypePeriodic, "Zeta", "Alpha")

	_, ring := logging.New(filepath.Join(t.TempDir(), "test.log"), slog.LevelDebug)
	l := newLogModel(s, ring)

	msg, ok := l.loadDetail(stats.Session{SessionID: id})().(sessionDetailMsg)
	if !ok {
		t.Fatal("loadDetail should produce sessionDetailMsg")
	}
	// Store orders session rows by network name.
	if len(msg.names) != 2 || msg.names[0] != "Alpha" || msg.names[1] != "Zeta" {
		t.Fatalf("unexpected detail names %v", msg.names)
	}
}

func TestLogClear(t *testing.T) {
	s := newTestStore(t)
	insertSession(t, s, time.Now().Add(-time.Hour), store.ScanTypePeriodic, "OfficeNet")

	_, ring := logging.New(filepath.Join(t.TempDir(), "test.log"), slog.LevelDebug)
	l := newLogModel(s, ring)

	if _, ok := l.doClear()().(recordsClearedMsg); !ok {
		t.Fatal("doClear should produce recordsClearedMsg")
	}
	records, _ := s.AllRecords()
	if len(records) != 0 {
		t.Fatalf("expected no records after clear, got %d", len(records))
	}
}

func TestLogDebugTabReadsRing(t *testing.T) {
	s := newTestStore(t)
	logger, ring := logging.New(filepath.Join(t.TempDir(), "test.log"), slog.LevelDebug)
	logger.Info("hello ring")

	l := newLogModel(s, ring)
	l.setSize(100, 30)
	l.tab = tabDebug

	if !strings.Contains(l.view(), "hello ring") {
		t.Fatal("debug tab should show ring lines")
	}
}

// ============================================================
// Settings model
// ============================================================

func TestSettingsRefresh(t *testing.T) {
	s := newTestStore(t)
	sm := newSettingsModel(s)

	msg, ok := sm.refresh()().(settingsDataMsg)
	if !ok {
		t.Fatal("refresh should produce settingsDataMsg")
	}
	if msg.settings.ScanStartHour != store.DefaultScanStartHour {
		t.Fatalf("unexpected defaults %+v", msg.settings)
	}
}

func TestSettingsSave(t *testing.T) {
	s := newTestStore(t)
	sm := newSettingsModel(s)
	*sm.keyword = " office "
	*sm.startHour = "9"
	*sm.endHour = "18"
	*sm.interval = "30"
	*sm.target = "4"

	if err := sm.saveSettings(); err != nil {
		t.Fatal(err)
	}

	cfg, err := s.LoadSettings()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TargetKeyword != "office" {
		t.Fatalf("keyword must be trimmed, got %q", cfg.TargetKeyword)
	}
	if cfg.ScanStartHour != 9 || cfg.ScanEndHour != 18 || cfg.ScanIntervalMinutes != 30 || cfg.TargetDailyCount != 4 {
		t.Fatalf("unexpected saved settings %+v", cfg)
	}
}

func TestSettingsShowForm(t *testing.T) {
	s := newTestStore(t)
	sm := newSettingsModel(s)
	sm.current = store.Settings{TargetKeyword: "office", ScanStartHour: 8, ScanEndHour: 20, ScanIntervalMinutes: 15, TargetDailyCount: 3}

	sm, _ = sm.showForm()
	if !sm.formActive || sm.form == nil {
		t.Fatal("showForm should activate the form")
	}
	if *sm.keyword != "office" || *sm.startHour != "8" {
		t.Fatal("form values should seed from current settings")
	}
}

func TestValidateHour(t *testing.T) {
	for _, ok := range []string{"0", "12", "23", " 8 "} {
		if err := validateHour(ok); err != nil {
			t.Fatalf("validateHour(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"-1", "24", "abc", ""} {
		if err := validateHour(bad); err == nil {
			t.Fatalf("validateHour(%q) should fail", bad)
		}
	}
}

func TestValidateEndHour(t *testing.T) {
	start := "6"
	validate := validateEndHour(&start)

	if err := validate("7"); err != nil {
		t.Fatalf("distinct end hour should pass: %v", err)
	}
	if err := validate("6"); err == nil {
		t.Fatal("end hour equal to start should fail")
	}
	// Numeric equality, not string equality.
	if err := validate("06"); err == nil {
		t.Fatal(`"06" equals start hour "6" and should fail`)
	}
	if err := validate("25"); err == nil {
		t.Fatal("out-of-range end hour should fail")
	}

	// The start value is read at validation time.
	start = "7"
	if err := validate("6"); err != nil {
		t.Fatalf("end hour 6 with start 7 should pass: %v", err)
	}
}

func TestAtoiOr(t *testing.T) {
	if atoiOr("42", 7) != 42 {
		t.Fatal("valid number should parse")
	}
	if atoiOr("nope", 7) != 7 {
		t.Fatal("invalid number should fall back")
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	app, _ := newTestApp(t)

	if app.activeView != viewDashboard {
		t.Fatal("default view should be dashboard")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
}

func TestAppIsCapturingDefault(t *testing.T) {
	app, _ := newTestApp(t)
	if app.isCapturing() {
		t.Fatal("nothing should capture input initially")
	}
}

func TestAppLoadingState(t *testing.T) {
	app, _ := newTestApp(t)
	if got := app.View(); got != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", got)
	}
}

func TestAppViewStates(t *testing.T) {
	app, _ := newTestApp(t)
	app.width = 120
	app.height = 40
	app.dashboard.setSize(120, 36)
	app.calendar.setSize(120, 36)
	app.logView.setSize(120, 36)
	app.settings.setSize(120, 36)

	for _, v := range []viewState{viewDashboard, viewCalendar, viewLog, viewSettings} {
		app.activeView = v
		if app.View() == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	app, _ := newTestApp(t)
	app.width = 120
	app.height = 40

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppStatusMessage(t *testing.T) {
	app, _ := newTestApp(t)
	app.width = 120
	app.height = 40
	app.status = "test status"

	if !strings.Contains(app.renderFooter(), "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppScanDone(t *testing.T) {
	app, _ := newTestApp(t)
	app.dashboard.scanning = true

	model, _ := app.Update(scanDoneMsg{outcome: scan.Outcome{Count: 2}})
	app = model.(App)
	if app.dashboard.scanning {
		t.Fatal("scanning flag should clear")
	}
	if !strings.Contains(app.status, "2") {
		t.Fatalf("status should mention the match count, got %q", app.status)
	}
}

func TestAppScanSkipped(t *testing.T) {
	app, _ := newTestApp(t)

	model, _ := app.Update(scanDoneMsg{outcome: scan.Outcome{Skipped: true, Reason: scan.SkipNoTarget}})
	app = model.(App)
	if !strings.Contains(app.status, string(scan.SkipNoTarget)) {
		t.Fatalf("status should mention the skip reason, got %q", app.status)
	}
}

func TestAppStoreChangeWakesWatcher(t *testing.T) {
	app, s := newTestApp(t)

	insertSession(t, s, time.Now(), store.ScanTypeManual, "OfficeNet")

	select {
	case <-app.watch:
	case <-time.After(time.Second):
		t.Fatal("store write should signal the app's watch channel")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test — just verify they don't panic)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"success", func() string { return successStyle.Render("test") }},
		{"warning", func() string { return warningStyle.Render("test") }},
		{"error", func() string { return errorStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"highlight", func() string { return highlightStyle.Render("test") }},
		{"header", func() string { return headerStyle.Render("test") }},
		{"footer", func() string { return footerStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"normalItem", func() string { return normalItemStyle.Render("test") }},
		{"daySuccess", func() string { return daySuccessStyle.Render("test") }},
		{"dayPartial", func() string { return dayPartialStyle.Render("test") }},
		{"dayEmpty", func() string { return dayEmptyStyle.Render("test") }},
		{"today", func() string { return todayStyle.Render("test") }},
	}

	for _, s := range styles {
		if s.fn() == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}
