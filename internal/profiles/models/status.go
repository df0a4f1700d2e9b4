package models

import (
	dErrors "maidlink/pkg/domain-errors"
)

// ProfileStatus is the lifecycle state shared by every profile aggregate.
//
// Invariant: the value is one of the five canonical states. Construct via
// ParseProfileStatus at trust boundaries; the typed constants are always valid.
// A status is replaced wholesale on transition, never edited in place.
type ProfileStatus string

const (
	StatusDraft       ProfileStatus = "draft"
	StatusUnderReview ProfileStatus = "under_review"
	StatusActive      ProfileStatus = "active"
	StatusRejected    ProfileStatus = "rejected"
	StatusArchived    ProfileStatus = "archived"
)

var statusLabels = map[ProfileStatus]string{
	StatusDraft:       "Draft",
	StatusUnderReview: "Under Review",
	StatusActive:      "Active",
	StatusRejected:    "Rejected",
	StatusArchived:    "Archived",
}

// AllStatuses returns the five lifecycle states in lifecycle order.
func AllStatuses() []ProfileStatus {
	return []ProfileStatus{StatusDraft, StatusUnderReview, StatusActive, StatusRejected, StatusArchived}
}

// ParseProfileStatus constructs a ProfileStatus from a persisted or external string.
func ParseProfileStatus(s string) (ProfileStatus, error) {
	status := ProfileStatus(s)
	if !status.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid status: "+s)
	}
	return status, nil
}

func (s ProfileStatus) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s ProfileStatus) IsDraft() bool       { return s == StatusDraft }
func (s ProfileStatus) IsUnderReview() bool { return s == StatusUnderReview }
func (s ProfileStatus) IsActive() bool      { return s == StatusActive }
func (s ProfileStatus) IsRejected() bool    { return s == StatusRejected }
func (s ProfileStatus) IsArchived() bool    { return s == StatusArchived }

// CanEdit reports whether the owner may still edit the profile content.
func (s ProfileStatus) CanEdit() bool {
	return s == StatusDraft || s == StatusRejected
}

// IsPublic reports whether the profile is visible in search.
func (s ProfileStatus) IsPublic() bool {
	return s == StatusActive
}

// Label returns the human-readable name of the state.
func (s ProfileStatus) Label() string {
	return statusLabels[s]
}

func (s ProfileStatus) String() string {
	return string(s)
}

func (s ProfileStatus) Equals(other ProfileStatus) bool {
	return s == other
}

// UnmarshalText rejects anything that is not a canonical state so snapshots
// can never rehydrate into an unknown status.
func (s *ProfileStatus) UnmarshalText(b []byte) error {
	parsed, err := ParseProfileStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
