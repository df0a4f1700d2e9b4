package models

import (
	"math"
	"time"

	id "maidlink/pkg/domain"
	dErrors "maidlink/pkg/domain-errors"
)

// Kind distinguishes the three profile aggregates.
type Kind string

const (
	KindMaid    Kind = "maid"
	KindSponsor Kind = "sponsor"
	KindAgency  Kind = "agency"
)

// ProfileParams carries the lifecycle fields shared by every aggregate's params.
// Zero values take defaults: Status draft, CreatedAt/UpdatedAt now.
type ProfileParams struct {
	ID         id.ProfileID
	UserID     id.UserID
	Status     ProfileStatus
	IsVerified bool
	VerifiedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// profileBase holds identity, lifecycle state, and the pending event buffer.
//
// Invariants:
//   - id and userID are non-nil and never change after construction
//   - completionPercentage is only written by recompute
//   - isVerified/verifiedAt are only written by the activation transition
//   - once archived, every mutator fails before writing
type profileBase struct {
	id                   id.ProfileID
	userID               id.UserID
	status               ProfileStatus
	completionPercentage int
	isVerified           bool
	verifiedAt           *time.Time
	createdAt            time.Time
	updatedAt            time.Time
	events               []DomainEvent
}

func newProfileBase(p ProfileParams, now time.Time) (profileBase, error) {
	if p.ID.IsNil() {
		return profileBase{}, dErrors.New(dErrors.CodeInvalidInput, "profile id is required")
	}
	if p.UserID.IsNil() {
		return profileBase{}, dErrors.New(dErrors.CodeInvalidInput, "user id is required")
	}
	status := p.Status
	if status == "" {
		status = StatusDraft
	}
	if !status.IsValid() {
		return profileBase{}, dErrors.New(dErrors.CodeInvalidInput, "invalid status: "+string(status))
	}
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}
	return profileBase{
		id:         p.ID,
		userID:     p.UserID,
		status:     status,
		isVerified: p.IsVerified,
		verifiedAt: cloneTime(p.VerifiedAt),
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (b *profileBase) ID() id.ProfileID          { return b.id }
func (b *profileBase) UserID() id.UserID         { return b.userID }
func (b *profileBase) Status() ProfileStatus     { return b.status }
func (b *profileBase) CompletionPercentage() int { return b.completionPercentage }
func (b *profileBase) IsVerified() bool          { return b.isVerified }
func (b *profileBase) VerifiedAt() *time.Time    { return cloneTime(b.verifiedAt) }
func (b *profileBase) CreatedAt() time.Time      { return b.createdAt }
func (b *profileBase) UpdatedAt() time.Time      { return b.updatedAt }

// IsComplete holds iff every checklist item is filled.
func (b *profileBase) IsComplete() bool {
	return b.completionPercentage >= 100
}

// PullDomainEvents drains the pending event buffer.
func (b *profileBase) PullDomainEvents() []DomainEvent {
	events := b.events
	b.events = nil
	if events == nil {
		return []DomainEvent{}
	}
	return events
}

func (b *profileBase) record(payload EventPayload, now time.Time) {
	b.events = append(b.events, NewProfileEvent(payload, b.id, now))
}

func (b *profileBase) touch(now time.Time) {
	b.updatedAt = now
}

func (b *profileBase) ensureNotArchived() error {
	if b.status.IsArchived() {
		return dErrors.New(dErrors.CodeInvalidState, "cannot modify an archived profile")
	}
	return nil
}

func (b *profileBase) canSubmit() error {
	if !b.IsComplete() {
		return dErrors.New(dErrors.CodeInvalidState, "profile must be complete before submission")
	}
	if !b.status.IsDraft() {
		return dErrors.New(dErrors.CodeInvalidState, "only draft profiles can be submitted")
	}
	return nil
}

func (b *profileBase) canReview(action string) error {
	if !b.status.IsUnderReview() {
		return dErrors.New(dErrors.CodeInvalidState, "only profiles under review can be "+action)
	}
	return nil
}

func (b *profileBase) canArchive() error {
	if b.status.IsArchived() {
		return dErrors.New(dErrors.CodeInvalidState, "profile is already archived")
	}
	return nil
}

func (b *profileBase) applyStatus(status ProfileStatus, now time.Time) {
	b.status = status
	b.touch(now)
}

func (b *profileBase) applyActivation(now time.Time) {
	verifiedAt := now
	b.status = StatusActive
	b.isVerified = true
	b.verifiedAt = &verifiedAt
	b.touch(now)
}

func (b *profileBase) snapshotBase() ProfileSnapshot {
	return ProfileSnapshot{
		ID:                   b.id,
		UserID:               b.userID,
		Status:               b.status,
		CompletionPercentage: b.completionPercentage,
		IsVerified:           b.isVerified,
		VerifiedAt:           cloneTime(b.verifiedAt),
		CreatedAt:            b.createdAt,
		UpdatedAt:            b.updatedAt,
	}
}

// ProfileSnapshot is the serialized lifecycle part shared by every aggregate snapshot.
type ProfileSnapshot struct {
	ID                   id.ProfileID  `json:"id"`
	UserID               id.UserID     `json:"userId"`
	Status               ProfileStatus `json:"status"`
	CompletionPercentage int           `json:"completionPercentage"`
	IsVerified           bool          `json:"isVerified"`
	VerifiedAt           *time.Time    `json:"verifiedAt"`
	CreatedAt            time.Time     `json:"createdAt"`
	UpdatedAt            time.Time     `json:"updatedAt"`
}

func (s ProfileSnapshot) params() ProfileParams {
	return ProfileParams{
		ID:         s.ID,
		UserID:     s.UserID,
		Status:     s.Status,
		IsVerified: s.IsVerified,
		VerifiedAt: cloneTime(s.VerifiedAt),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// completion returns round(100 * filled / total).
func completion(checks ...bool) int {
	if len(checks) == 0 {
		return 0
	}
	filled := 0
	for _, ok := range checks {
		if ok {
			filled++
		}
	}
	return int(math.Round(100 * float64(filled) / float64(len(checks))))
}

func cloneStrings(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}

func cloneInts(values []int) []int {
	out := make([]int, len(values))
	copy(out, values)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
