package store

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/danmuck/timectl/internal/timesheet"
)

// Store reads and appends the two CSV backing tables. Every read loads the
// whole table; appends go straight to the end of the file. No locking —
// concurrent-writer safety is whatever the OS append gives for free.
type Store struct {
	ProjectsPath  string
	TimesheetPath string
}

func New(projectsPath, timesheetPath string) *Store {
	return &Store{ProjectsPath: projectsPath, TimesheetPath: timesheetPath}
}

// ListProjects reads the full projects table. Rows keep on-disk order and
// every column stays a string under its header name.
func (s *Store) ListProjects() ([]Project, error) {
	records, err := readTable(s.ProjectsPath)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("projects table %s: missing header row", s.ProjectsPath)
	}
	header := records[0]
	projects := make([]Project, 0, len(records)-1)
	for _, row := range records[1:] {
		projects = append(projects, Project{Columns: header, Values: row})
	}
	return projects, nil
}

// ProjectNames returns the project_id -> project_name lookup used by the
// recent-entries join.
func (s *Store) ProjectNames() (map[string]string, error) {
	projects, err := s.ListProjects()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.Get("project_id")] = p.Get("project_name")
	}
	return names, nil
}

// AppendEntry writes one row to the end of the timesheet table. The header
// is never written here; the table is expected to pre-exist with one.
func (s *Store) AppendEntry(entry timesheet.Entry) error {
	f, err := os.OpenFile(s.TimesheetPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("append entry to %s: %w", s.TimesheetPath, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(entry.Fields()); err != nil {
		return fmt.Errorf("append entry to %s: %w", s.TimesheetPath, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("append entry to %s: %w", s.TimesheetPath, err)
	}
	return nil
}

// ListEntries reads the full timesheet table, skipping the header row.
func (s *Store) ListEntries() ([]timesheet.Entry, error) {
	records, err := readTable(s.TimesheetPath)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("timesheet table %s: missing header row", s.TimesheetPath)
	}
	entries := make([]timesheet.Entry, 0, len(records)-1)
	for _, row := range records[1:] {
		if len(row) != len(entryHeader) {
			return nil, fmt.Errorf("timesheet table %s: row has %d fields, want %d", s.TimesheetPath, len(row), len(entryHeader))
		}
		entries = append(entries, timesheet.Entry{
			ProjectID: row[0],
			Date:      row[1],
			StartTime: row[2],
			EndTime:   row[3],
			Break:     row[4],
			Comment:   row[5],
		})
	}
	return entries, nil
}

func readTable(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", path, err)
	}
	return records, nil
}
