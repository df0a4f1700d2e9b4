package models

// allowedTransitions is the advisory status graph. Aggregates enforce their own
// guards inline and do not consult this table: archive is allowed from every
// non-archived state there, while the table only lists active -> archived, and
// no aggregate method performs rejected -> under_review.
var allowedTransitions = map[ProfileStatus][]ProfileStatus{
	StatusDraft:       {StatusUnderReview},
	StatusUnderReview: {StatusActive, StatusRejected},
	StatusActive:      {StatusArchived},
	StatusRejected:    {StatusUnderReview},
	StatusArchived:    {},
}

// IsTransitionAllowed reports whether target is in current's allowed set.
func IsTransitionAllowed(current, target ProfileStatus) bool {
	for _, next := range allowedTransitions[current] {
		if next == target {
			return true
		}
	}
	return false
}

// AllowedNextStatuses returns the allowed targets for current. Unknown and
// archived states yield an empty, non-nil slice.
func AllowedNextStatuses(current ProfileStatus) []ProfileStatus {
	next := allowedTransitions[current]
	out := make([]ProfileStatus, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo is the method form of IsTransitionAllowed.
func (s ProfileStatus) CanTransitionTo(target ProfileStatus) bool {
	return IsTransitionAllowed(s, target)
}
