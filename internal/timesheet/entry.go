package timesheet

// Submission carries the raw form fields of one submit request, prior to
// validation. Absent optional fields stay empty.
type Submission struct {
	Project   string
	Date      string
	StartTime string
	EndTime   string
	Break     string
	Comment   string
}

// Entry is one validated timesheet record in backing-table column order.
type Entry struct {
	ProjectID string
	Date      string
	StartTime string
	EndTime   string
	Break     string
	Comment   string
}

// Fields returns the entry as one CSV row in the fixed column order
// (project_id, date, start_time, end_time, break, comment).
func (e Entry) Fields() []string {
	return []string{e.ProjectID, e.Date, e.StartTime, e.EndTime, e.Break, e.Comment}
}

// DisplayEntry is the recent-entries projection; break and comment are
// dropped and the project id is resolved to a display name.
type DisplayEntry struct {
	ProjectName string  `json:"project_name"`
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Hours       float64 `json:"hours"`
}
