package models

import (
	"fmt"
	"strings"
	"time"

	dErrors "maidlink/pkg/domain-errors"
)

// Reference is an optional contact from a previous employer.
type Reference struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// WorkExperienceInput is the unvalidated shape accepted by NewWorkExperience.
// Dates accept "2006-01-02" or RFC 3339. An empty EndDate means the stint is ongoing.
type WorkExperienceInput struct {
	Country      string
	JobTitle     string
	Duties       []string
	StartDate    string
	EndDate      string
	IsCurrentJob bool
	Reference    *Reference
}

// WorkExperience is an immutable employment stint held by a MaidProfile.
//
// Invariants:
//   - country and job title are non-empty
//   - start date is a valid calendar date
//   - end date, when present, is valid and not before the start date
type WorkExperience struct {
	country      string
	jobTitle     string
	duties       []string
	startDate    time.Time
	endDate      *time.Time
	isCurrentJob bool
	reference    *Reference
}

// WorkExperienceSnapshot is the serialized form, including the derived duration.
type WorkExperienceSnapshot struct {
	Country          string     `json:"country"`
	JobTitle         string     `json:"jobTitle"`
	Duties           []string   `json:"duties"`
	StartDate        time.Time  `json:"startDate"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	IsCurrentJob     bool       `json:"isCurrentJob"`
	Reference        *Reference `json:"reference,omitempty"`
	DurationInMonths int        `json:"durationInMonths"`
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func NewWorkExperience(in WorkExperienceInput) (WorkExperience, error) {
	country := strings.TrimSpace(in.Country)
	if country == "" {
		return WorkExperience{}, dErrors.New(dErrors.CodeInvalidInput, "work experience country is required")
	}
	jobTitle := strings.TrimSpace(in.JobTitle)
	if jobTitle == "" {
		return WorkExperience{}, dErrors.New(dErrors.CodeInvalidInput, "work experience job title is required")
	}
	start, ok := parseDate(in.StartDate)
	if !ok {
		return WorkExperience{}, dErrors.New(dErrors.CodeInvalidInput, "invalid work experience start date")
	}

	var end *time.Time
	if strings.TrimSpace(in.EndDate) != "" {
		parsed, ok := parseDate(in.EndDate)
		if !ok {
			return WorkExperience{}, dErrors.New(dErrors.CodeInvalidInput, "invalid work experience end date")
		}
		if parsed.Before(start) {
			return WorkExperience{}, dErrors.New(dErrors.CodeInvalidInput, "end date cannot be before start date")
		}
		end = &parsed
	}

	var ref *Reference
	if in.Reference != nil {
		r := *in.Reference
		ref = &r
	}

	return WorkExperience{
		country:      country,
		jobTitle:     jobTitle,
		duties:       cloneStrings(in.Duties),
		startDate:    start,
		endDate:      end,
		isCurrentJob: in.IsCurrentJob,
		reference:    ref,
	}, nil
}

// IsZero reports whether w is the zero value, which is never a valid experience.
func (w WorkExperience) IsZero() bool {
	return w.country == "" && w.jobTitle == "" && w.startDate.IsZero()
}

func (w WorkExperience) Country() string      { return w.country }
func (w WorkExperience) JobTitle() string     { return w.jobTitle }
func (w WorkExperience) Duties() []string     { return cloneStrings(w.duties) }
func (w WorkExperience) StartDate() time.Time { return w.startDate }
func (w WorkExperience) IsCurrentJob() bool   { return w.isCurrentJob }

func (w WorkExperience) EndDate() *time.Time {
	if w.endDate == nil {
		return nil
	}
	end := *w.endDate
	return &end
}

func (w WorkExperience) Reference() *Reference {
	if w.reference == nil {
		return nil
	}
	r := *w.reference
	return &r
}

// effectiveEnd is the end date, or now when the stint has no end date.
func (w WorkExperience) effectiveEnd(now time.Time) time.Time {
	if w.endDate != nil {
		return *w.endDate
	}
	return now.UTC()
}

// DurationInMonths counts whole calendar months between start and end (or now),
// floored at zero.
func (w WorkExperience) DurationInMonths(now time.Time) int {
	start := w.startDate
	end := w.effectiveEnd(now)

	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// FormatDuration renders the duration as "X years, Y months", dropping the
// zero component. A span under a year always renders in months.
func (w WorkExperience) FormatDuration(now time.Time) string {
	return formatMonths(w.DurationInMonths(now))
}

func formatMonths(total int) string {
	years := total / 12
	months := total % 12
	switch {
	case years == 0:
		return pluralize(months, "month")
	case months == 0:
		return pluralize(years, "year")
	default:
		return pluralize(years, "year") + ", " + pluralize(months, "month")
	}
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// Equals compares country, job title, and both dates as instants.
func (w WorkExperience) Equals(other WorkExperience) bool {
	if w.country != other.country || w.jobTitle != other.jobTitle {
		return false
	}
	if !w.startDate.Equal(other.startDate) {
		return false
	}
	switch {
	case w.endDate == nil && other.endDate == nil:
		return true
	case w.endDate == nil || other.endDate == nil:
		return false
	default:
		return w.endDate.Equal(*other.endDate)
	}
}

// OverlapsWith reports whether the two stints share at least one instant,
// treating a missing end date as now.
func (w WorkExperience) OverlapsWith(other WorkExperience, now time.Time) bool {
	latestStart := w.startDate
	if other.startDate.After(latestStart) {
		latestStart = other.startDate
	}
	earliestEnd := w.effectiveEnd(now)
	if otherEnd := other.effectiveEnd(now); otherEnd.Before(earliestEnd) {
		earliestEnd = otherEnd
	}
	return !latestStart.After(earliestEnd)
}

func (w WorkExperience) Snapshot(now time.Time) WorkExperienceSnapshot {
	return WorkExperienceSnapshot{
		Country:          w.country,
		JobTitle:         w.jobTitle,
		Duties:           cloneStrings(w.duties),
		StartDate:        w.startDate,
		EndDate:          w.EndDate(),
		IsCurrentJob:     w.isCurrentJob,
		Reference:        w.Reference(),
		DurationInMonths: w.DurationInMonths(now),
	}
}

// Input converts a snapshot back into constructor input for rehydration.
func (s WorkExperienceSnapshot) Input() WorkExperienceInput {
	in := WorkExperienceInput{
		Country:      s.Country,
		JobTitle:     s.JobTitle,
		Duties:       s.Duties,
		StartDate:    s.StartDate.Format(time.RFC3339Nano),
		IsCurrentJob: s.IsCurrentJob,
		Reference:    s.Reference,
	}
	if s.EndDate != nil {
		in.EndDate = s.EndDate.Format(time.RFC3339Nano)
	}
	return in
}
