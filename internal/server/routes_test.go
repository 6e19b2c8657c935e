package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/danmuck/timectl/internal/logging"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logging.ConfigureTests()
	os.Exit(m.Run())
}

const projectsFixture = "project_id,project_name,hours_procured\n" +
	"1,Test Project,100\n" +
	"2,Another Project,200\n"

const timesheetHeader = "project_id,date,start_time,end_time,break,comment\n"

func newTestServer(t *testing.T, timesheetRows string) *Server {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultServiceConfig()
	cfg.ProjectsFile = filepath.Join(dir, "projects.csv")
	cfg.TimesheetFile = filepath.Join(dir, "timesheet.csv")
	cfg.IndexFile = filepath.Join(dir, "index.html")

	if err := os.WriteFile(cfg.ProjectsFile, []byte(projectsFixture), 0o644); err != nil {
		t.Fatalf("seed projects: %v", err)
	}
	if err := os.WriteFile(cfg.TimesheetFile, []byte(timesheetHeader+timesheetRows), 0o644); err != nil {
		t.Fatalf("seed timesheet: %v", err)
	}
	if err := os.WriteFile(cfg.IndexFile, []byte("<html><body>Timesheet</body></html>"), 0o644); err != nil {
		t.Fatalf("seed index: %v", err)
	}

	srv := New(cfg)
	srv.RegisterRoutes()
	return srv
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	srv.HTTPRouter().ServeHTTP(rr, req)
	return rr
}

func postForm(srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	srv.HTTPRouter().ServeHTTP(rr, req)
	return rr
}

func submission() url.Values {
	return url.Values{
		"project":   {"1"},
		"date":      {"2026-03-10"},
		"startTime": {"09:00"},
		"endTime":   {"17:00"},
		"break":     {"60"},
		"comment":   {"Test entry"},
	}
}

func TestIndexRoute(t *testing.T) {
	srv := newTestServer(t, "")
	rr := get(srv, "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Timesheet") {
		t.Fatalf("unexpected index body: %s", rr.Body.String())
	}
}

func TestHealthAndReadyRoutes(t *testing.T) {
	srv := newTestServer(t, "")
	for _, path := range []string{"/health", "/ready"} {
		rr := get(srv, path)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d", path, rr.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode %s response: %v", path, err)
		}
		if body["service"] != "timectl" {
			t.Fatalf("unexpected service for %s: %#v", path, body["service"])
		}
	}
}

func TestMetricsRoute(t *testing.T) {
	srv := newTestServer(t, "")
	// Drive one request through the middleware so the request counter has
	// a child to export.
	if rr := get(srv, "/health"); rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for /health, got %d", rr.Code)
	}

	rr := get(srv, "/metrics")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "timectl_http_requests_total") {
		t.Fatalf("expected timectl collectors in metrics output")
	}
}

func TestGetProjects(t *testing.T) {
	srv := newTestServer(t, "")
	rr := get(srv, "/projects")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var projects []map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &projects); err != nil {
		t.Fatalf("decode projects: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	if projects[0]["project_id"] != "1" || projects[0]["project_name"] != "Test Project" || projects[0]["hours_procured"] != "100" {
		t.Fatalf("unexpected first project: %+v", projects[0])
	}
	if projects[1]["project_id"] != "2" || projects[1]["project_name"] != "Another Project" || projects[1]["hours_procured"] != "200" {
		t.Fatalf("unexpected second project: %+v", projects[1])
	}

	// DictReader-style output: keys follow on-disk column order.
	body := rr.Body.String()
	if !(strings.Index(body, "project_id") < strings.Index(body, "project_name")) {
		t.Fatalf("keys not in column order: %s", body)
	}
}

func TestGetProjectsStorageFailure(t *testing.T) {
	srv := newTestServer(t, "")
	if err := os.Remove(srv.Store().ProjectsPath); err != nil {
		t.Fatalf("remove projects table: %v", err)
	}

	rr := get(srv, "/projects")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["error"] != "Failed to load projects" {
		t.Fatalf("unexpected error body: %+v", body)
	}
}

func TestSubmitEntrySuccessAppendsRow(t *testing.T) {
	srv := newTestServer(t, "")
	rr := postForm(srv, "/submit_entry", submission())
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if rr.Body.String() != "Time entry submitted successfully!" {
		t.Fatalf("unexpected body: %q", rr.Body.String())
	}

	data, err := os.ReadFile(srv.Store().TimesheetPath)
	if err != nil {
		t.Fatalf("read timesheet: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if lines[1] != "1,2026-03-10,09:00,17:00,60,Test entry" {
		t.Fatalf("unexpected appended row: %q", lines[1])
	}
}

func TestSubmitEntryValidationFailures(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(url.Values)
		message string
	}{
		{
			name:    "missing endTime",
			mutate:  func(f url.Values) { f.Del("endTime") },
			message: "Missing required fields: endTime",
		},
		{
			name: "missing project and date",
			mutate: func(f url.Values) {
				f.Del("project")
				f.Del("date")
			},
			message: "Missing required fields: project, date",
		},
		{
			name:    "invalid date",
			mutate:  func(f url.Values) { f.Set("date", "invalid-date") },
			message: "Invalid date format. Please use YYYY-MM-DD.",
		},
		{
			name:    "unpadded start time",
			mutate:  func(f url.Values) { f.Set("startTime", "9:00") },
			message: "Invalid time format. Please use HH:MM (24-hour format with leading zeros).",
		},
		{
			name: "end before start",
			mutate: func(f url.Values) {
				f.Set("startTime", "17:00")
				f.Set("endTime", "09:00")
			},
			message: "End time must be after start time.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t, "")
			form := submission()
			tc.mutate(form)

			rr := postForm(srv, "/submit_entry", form)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
			}
			if rr.Body.String() != tc.message {
				t.Fatalf("body = %q, want %q", rr.Body.String(), tc.message)
			}

			data, err := os.ReadFile(srv.Store().TimesheetPath)
			if err != nil {
				t.Fatalf("read timesheet: %v", err)
			}
			if strings.TrimSpace(string(data)) != strings.TrimSpace(timesheetHeader) {
				t.Fatalf("rejected submission mutated storage: %q", string(data))
			}
		})
	}
}

func TestSubmitEntryOptionalDefaults(t *testing.T) {
	srv := newTestServer(t, "")
	form := submission()
	form.Del("break")
	form.Del("comment")

	rr := postForm(srv, "/submit_entry", form)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	entries, err := srv.Store().ListEntries()
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Break != "0" || entries[0].Comment != "" {
		t.Fatalf("defaults not applied: %+v", entries[0])
	}
}

func TestRecentEntries(t *testing.T) {
	rows := "1,2026-03-08,09:00,17:00,60,older\n" +
		"2,2026-03-10,08:00,12:00,0,morning\n" +
		"1,2026-03-10,13:00,17:30,0,afternoon\n" +
		"404,2026-03-09,10:00,11:00,0,orphan\n" +
		"2,2026-03-07,09:00,10:00,0,oldest kept\n" +
		"1,2026-03-06,09:00,17:00,0,dropped\n"
	srv := newTestServer(t, rows)

	rr := get(srv, "/recent_entries")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var entries []struct {
		ProjectName string  `json:"project_name"`
		Date        string  `json:"date"`
		StartTime   string  `json:"start_time"`
		EndTime     string  `json:"end_time"`
		Hours       float64 `json:"hours"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode recent entries: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}

	if entries[0].Date != "2026-03-10" || entries[0].StartTime != "13:00" {
		t.Fatalf("unexpected newest entry: %+v", entries[0])
	}
	if entries[0].ProjectName != "Test Project" || entries[0].Hours != 4.5 {
		t.Fatalf("unexpected newest projection: %+v", entries[0])
	}
	if entries[1].ProjectName != "Another Project" || entries[1].Hours != 4 {
		t.Fatalf("unexpected second projection: %+v", entries[1])
	}
	if entries[2].ProjectName != "Unknown Project" {
		t.Fatalf("expected unknown project fallback, got %+v", entries[2])
	}
	if entries[3].Hours != 7 {
		t.Fatalf("expected break subtracted, got %+v", entries[3])
	}
	if entries[4].Date != "2026-03-07" {
		t.Fatalf("expected 2026-03-06 entry dropped, got %+v", entries[4])
	}
}

func TestRecentEntriesEmptyTable(t *testing.T) {
	srv := newTestServer(t, "")
	rr := get(srv, "/recent_entries")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %q", rr.Body.String())
	}
}

func TestRecentEntriesStorageFailure(t *testing.T) {
	srv := newTestServer(t, "")
	if err := os.Remove(srv.Store().TimesheetPath); err != nil {
		t.Fatalf("remove timesheet table: %v", err)
	}

	rr := get(srv, "/recent_entries")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["error"] != "Failed to fetch recent entries" {
		t.Fatalf("unexpected error body: %+v", body)
	}
}

func TestReadPathsAreIdempotent(t *testing.T) {
	rows := "1,2026-03-10,09:00,17:00,60,stable\n"
	srv := newTestServer(t, rows)

	for _, path := range []string{"/projects", "/recent_entries"} {
		first := get(srv, path)
		second := get(srv, path)
		if first.Code != http.StatusOK || second.Code != http.StatusOK {
			t.Fatalf("expected 200s for %s, got %d and %d", path, first.Code, second.Code)
		}
		if first.Body.String() != second.Body.String() {
			t.Fatalf("repeated %s responses differ", path)
		}
	}

	data, err := os.ReadFile(srv.Store().TimesheetPath)
	if err != nil {
		t.Fatalf("read timesheet: %v", err)
	}
	if strings.Count(string(data), "\n") != 2 {
		t.Fatalf("read paths mutated storage: %q", string(data))
	}
}
