package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "dataset":
		return datasetTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const datasetTemplate = `projects_file = "projects.csv"
timesheet_file = "timesheet.csv"

[[projects]]
id = "1"
name = "Test Project"
hours_procured = "100"

[[projects]]
id = "2"
name = "Another Project"
hours_procured = "200"
`
