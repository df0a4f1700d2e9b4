package models_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"maidlink/internal/profiles/models"
	dErrors "maidlink/pkg/domain-errors"
)

type StatusSuite struct {
	suite.Suite
}

func TestStatusSuite(t *testing.T) {
	suite.Run(t, new(StatusSuite))
}

func (s *StatusSuite) TestParseRoundTrip() {
	for _, raw := range []string{"draft", "under_review", "active", "rejected", "archived"} {
		status, err := models.ParseProfileStatus(raw)
		s.Require().NoError(err, raw)
		s.Equal(raw, status.String())
	}
}

func (s *StatusSuite) TestParseRejectsUnknown() {
	for _, raw := range []string{"", "Draft", "pending", "under-review", " active"} {
		_, err := models.ParseProfileStatus(raw)
		s.Require().Error(err, raw)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
		s.Contains(err.Error(), "invalid status")
	}
}

func (s *StatusSuite) TestPredicates() {
	s.True(models.StatusDraft.CanEdit())
	s.True(models.StatusRejected.CanEdit())
	s.False(models.StatusUnderReview.CanEdit())
	s.False(models.StatusActive.CanEdit())
	s.False(models.StatusArchived.CanEdit())

	for _, st := range models.AllStatuses() {
		s.Equal(st == models.StatusActive, st.IsPublic(), st)
	}
	s.True(models.StatusUnderReview.IsUnderReview())
	s.True(models.StatusArchived.IsArchived())
	s.True(models.StatusDraft.Equals(models.StatusDraft))
	s.False(models.StatusDraft.Equals(models.StatusActive))
}

func (s *StatusSuite) TestLabels() {
	s.Equal("Under Review", models.StatusUnderReview.Label())
	s.Equal("Draft", models.StatusDraft.Label())
	s.Equal("Archived", models.StatusArchived.Label())
}

func (s *StatusSuite) TestUnmarshalTextValidates() {
	var st models.ProfileStatus
	s.Require().NoError(st.UnmarshalText([]byte("active")))
	s.Equal(models.StatusActive, st)
	s.Error(st.UnmarshalText([]byte("bogus")))
}

func (s *StatusSuite) TestTransitionTable() {
	s.Run("lists allowed targets", func() {
		s.Equal([]models.ProfileStatus{models.StatusActive, models.StatusRejected},
			models.AllowedNextStatuses(models.StatusUnderReview))
		s.True(models.IsTransitionAllowed(models.StatusDraft, models.StatusUnderReview))
		s.True(models.StatusRejected.CanTransitionTo(models.StatusUnderReview))
	})

	s.Run("archived is terminal", func() {
		next := models.AllowedNextStatuses(models.StatusArchived)
		s.NotNil(next)
		s.Empty(next)
		for _, st := range models.AllStatuses() {
			s.False(models.IsTransitionAllowed(models.StatusArchived, st))
		}
	})

	s.Run("unknown current state has no targets", func() {
		next := models.AllowedNextStatuses(models.ProfileStatus("bogus"))
		s.NotNil(next)
		s.Empty(next)
	})

	s.Run("returned slice is a copy", func() {
		next := models.AllowedNextStatuses(models.StatusDraft)
		next[0] = models.StatusArchived
		s.Equal([]models.ProfileStatus{models.StatusUnderReview}, models.AllowedNextStatuses(models.StatusDraft))
	})
}
