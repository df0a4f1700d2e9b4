package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"maidlink/internal/profiles/models"
	dErrors "maidlink/pkg/domain-errors"
)

type WorkExperienceSuite struct {
	suite.Suite
}

func TestWorkExperienceSuite(t *testing.T) {
	suite.Run(t, new(WorkExperienceSuite))
}

func (s *WorkExperienceSuite) mustExperience(start, end string) models.WorkExperience {
	exp, err := models.NewWorkExperience(models.WorkExperienceInput{
		Country:   "SA",
		JobTitle:  "Housemaid",
		StartDate: start,
		EndDate:   end,
	})
	s.Require().NoError(err)
	return exp
}

func (s *WorkExperienceSuite) TestConstructionInvariants() {
	cases := []struct {
		name string
		in   models.WorkExperienceInput
		msg  string
	}{
		{"missing country", models.WorkExperienceInput{JobTitle: "Housemaid", StartDate: "2020-01-01"}, "country"},
		{"blank job title", models.WorkExperienceInput{Country: "SA", JobTitle: "  ", StartDate: "2020-01-01"}, "job title"},
		{"bad start date", models.WorkExperienceInput{Country: "SA", JobTitle: "Housemaid", StartDate: "01/01/2020"}, "start date"},
		{"bad end date", models.WorkExperienceInput{Country: "SA", JobTitle: "Housemaid", StartDate: "2020-01-01", EndDate: "soon"}, "end date"},
		{"end before start", models.WorkExperienceInput{Country: "SA", JobTitle: "Housemaid", StartDate: "2022-01-01", EndDate: "2020-01-01"}, "end date cannot be before start date"},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := models.NewWorkExperience(tc.in)
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
			s.Contains(err.Error(), tc.msg)
		})
	}
}

func (s *WorkExperienceSuite) TestDurationInMonths() {
	s.Run("two full years", func() {
		exp := s.mustExperience("2020-01-01", "2022-01-01")
		s.Equal(24, exp.DurationInMonths(fixedNow))
	})

	s.Run("partial month is not counted", func() {
		exp := s.mustExperience("2020-01-15", "2020-03-14")
		s.Equal(1, exp.DurationInMonths(fixedNow))
	})

	s.Run("open ended uses now", func() {
		exp := s.mustExperience("2023-06-15", "")
		s.Equal(12, exp.DurationInMonths(fixedNow))
		s.Nil(exp.EndDate())
	})

	s.Run("start in the future floors at zero", func() {
		exp := s.mustExperience("2030-01-01", "")
		s.Equal(0, exp.DurationInMonths(fixedNow))
	})
}

func (s *WorkExperienceSuite) TestFormatDuration() {
	cases := []struct {
		start, end string
		want       string
	}{
		{"2020-01-01", "2020-01-20", "0 months"},
		{"2020-01-01", "2020-02-01", "1 month"},
		{"2020-01-01", "2021-01-01", "1 year"},
		{"2020-01-01", "2021-02-01", "1 year, 1 month"},
		{"2020-01-01", "2023-04-01", "3 years, 3 months"},
	}
	for _, tc := range cases {
		s.Run(tc.want, func() {
			s.Equal(tc.want, s.mustExperience(tc.start, tc.end).FormatDuration(fixedNow))
		})
	}
}

func (s *WorkExperienceSuite) TestEqualsAndOverlap() {
	a := s.mustExperience("2020-01-01", "2021-01-01")
	b := s.mustExperience("2020-01-01T00:00:00Z", "2021-01-01")
	c := s.mustExperience("2020-06-01", "")
	d := s.mustExperience("2021-02-01", "2021-05-01")

	s.True(a.Equals(b))
	s.False(a.Equals(c))
	s.True(a.OverlapsWith(c, fixedNow))
	s.False(a.OverlapsWith(d, fixedNow))
	s.True(d.OverlapsWith(c, fixedNow))
}

func (s *WorkExperienceSuite) TestSnapshotRoundTrip() {
	exp, err := models.NewWorkExperience(models.WorkExperienceInput{
		Country:   "AE",
		JobTitle:  "Nanny",
		Duties:    []string{"childcare"},
		StartDate: "2019-05-01",
		EndDate:   "2020-05-01",
		Reference: &models.Reference{Name: "Omar", Phone: "+971501234567"},
	})
	s.Require().NoError(err)

	snap := exp.Snapshot(fixedNow)
	s.Equal(12, snap.DurationInMonths)

	restored, err := models.NewWorkExperience(snap.Input())
	s.Require().NoError(err)
	s.True(exp.Equals(restored))
	s.Equal("Omar", restored.Reference().Name)
	s.Equal([]string{"childcare"}, restored.Duties())
	s.Equal(time.UTC, restored.StartDate().Location())
}
