package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Backing table headers. Column order and names are read by downstream
// tools directly, so they are fixed here.
var (
	entryHeader          = []string{"project_id", "date", "start_time", "end_time", "break", "comment"}
	DefaultProjectHeader = []string{"project_id", "project_name", "hours_procured"}
)

// InitProjects creates the projects table with the given header and rows.
// Refuses to overwrite an existing file unless force is set.
func (s *Store) InitProjects(header []string, rows [][]string, force bool) error {
	if len(header) == 0 {
		header = DefaultProjectHeader
	}
	records := make([][]string, 0, len(rows)+1)
	records = append(records, header)
	records = append(records, rows...)
	return writeTable(s.ProjectsPath, records, force)
}

// InitTimesheet creates an empty timesheet table holding only the header.
func (s *Store) InitTimesheet(force bool) error {
	return writeTable(s.TimesheetPath, [][]string{entryHeader}, force)
}

func writeTable(path string, records [][]string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("table already exists: %s", path)
		}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("init table %s: %w", path, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("init table %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("init table %s: %w", path, err)
	}
	return nil
}
