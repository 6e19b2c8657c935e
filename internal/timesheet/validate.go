package timesheet

import (
	"regexp"
	"strings"
	"time"
)

// Reason identifies which validation check rejected a submission.
type Reason string

const (
	ReasonMissingFields Reason = "missing_fields"
	ReasonDateFormat    Reason = "date_format"
	ReasonTimeFormat    Reason = "time_format"
	ReasonTimeOrder     Reason = "time_order"
)

// Two-digit 24-hour clock, leading zeros required.
var timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

const dateLayout = "2006-01-02"

// ValidationError is a rejected submission with the client-facing message.
type ValidationError struct {
	Reason  Reason
	Missing []string
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonMissingFields:
		return "Missing required fields: " + strings.Join(e.Missing, ", ")
	case ReasonDateFormat:
		return "Invalid date format. Please use YYYY-MM-DD."
	case ReasonTimeFormat:
		return "Invalid time format. Please use HH:MM (24-hour format with leading zeros)."
	case ReasonTimeOrder:
		return "End time must be after start time."
	}
	return "invalid submission"
}

// ValidateSubmission checks one submission and returns the validated entry
// with defaults applied (break "0", comment ""). Check order is part of the
// contract: missing fields, then date format, then time format, then time
// order, so an input failing several checks surfaces the first message.
func ValidateSubmission(sub Submission) (Entry, *ValidationError) {
	var missing []string
	if sub.Project == "" {
		missing = append(missing, "project")
	}
	if sub.Date == "" {
		missing = append(missing, "date")
	}
	if sub.StartTime == "" {
		missing = append(missing, "startTime")
	}
	if sub.EndTime == "" {
		missing = append(missing, "endTime")
	}
	if len(missing) > 0 {
		return Entry{}, &ValidationError{Reason: ReasonMissingFields, Missing: missing}
	}

	if _, err := time.Parse(dateLayout, sub.Date); err != nil {
		return Entry{}, &ValidationError{Reason: ReasonDateFormat}
	}

	if !timePattern.MatchString(sub.StartTime) || !timePattern.MatchString(sub.EndTime) {
		return Entry{}, &ValidationError{Reason: ReasonTimeFormat}
	}

	start, _ := clockMinutes(sub.StartTime)
	end, _ := clockMinutes(sub.EndTime)
	if end <= start {
		return Entry{}, &ValidationError{Reason: ReasonTimeOrder}
	}

	brk := sub.Break
	if brk == "" {
		brk = "0"
	}
	return Entry{
		ProjectID: sub.Project,
		Date:      sub.Date,
		StartTime: sub.StartTime,
		EndTime:   sub.EndTime,
		Break:     brk,
		Comment:   sub.Comment,
	}, nil
}

// clockMinutes converts an HH:MM string to minutes since midnight.
func clockMinutes(s string) (int, bool) {
	if !timePattern.MatchString(s) {
		return 0, false
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	return h*60 + m, true
}
