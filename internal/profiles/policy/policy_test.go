package policy_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"maidlink/internal/profiles/models"
	"maidlink/internal/profiles/policy"
)

type PolicySuite struct {
	suite.Suite
	today time.Time
}

func TestPolicySuite(t *testing.T) {
	suite.Run(t, new(PolicySuite))
}

func (s *PolicySuite) SetupTest() {
	s.today = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *PolicySuite) TestCalculateAge() {
	s.Equal(30, policy.CalculateAge(date(1994, time.June, 15), s.today))
	s.Equal(29, policy.CalculateAge(date(1994, time.June, 16), s.today))
	s.Equal(29, policy.CalculateAge(date(1994, time.December, 1), s.today))
	s.Equal(30, policy.CalculateAge(date(1994, time.January, 31), s.today))
}

func (s *PolicySuite) TestIsValidMaidAge() {
	s.True(policy.IsValidMaidAge(date(2003, time.June, 15), s.today))
	s.False(policy.IsValidMaidAge(date(2003, time.June, 16), s.today))
	s.True(policy.IsValidMaidAge(date(1968, time.June, 16), s.today))
	s.False(policy.IsValidMaidAge(date(1968, time.June, 15), s.today))
}

func (s *PolicySuite) TestIsValidPhoneNumber() {
	s.True(policy.IsValidPhoneNumber("+251912345678"))
	s.True(policy.IsValidPhoneNumber("+1234567890"))
	s.True(policy.IsValidPhoneNumber("+123456789012345"))
	s.False(policy.IsValidPhoneNumber("0912345678"))
	s.False(policy.IsValidPhoneNumber("+123456789"))
	s.False(policy.IsValidPhoneNumber("+1234567890123456"))
	s.False(policy.IsValidPhoneNumber("+251 912345678"))
	s.False(policy.IsValidPhoneNumber("+251912345678\n"))
}

func (s *PolicySuite) TestWhitelists() {
	s.True(policy.AreSkillsValid([]string{"cooking", "pet_care"}))
	s.False(policy.AreSkillsValid([]string{"cooking", "plumbing"}))
	s.False(policy.AreSkillsValid(nil))
	s.False(policy.AreSkillsValid([]string{}))

	s.True(policy.AreLanguagesValid([]string{"en", "am"}))
	s.False(policy.AreLanguagesValid([]string{"EN"}))
	s.False(policy.AreLanguagesValid(nil))

	s.Contains(policy.Skills(), "elderly_care")
	s.Len(policy.Languages(), 8)
}

func (s *PolicySuite) TestHasMinimumWorkExperience() {
	mk := func(start, end string) models.WorkExperience {
		exp, err := models.NewWorkExperience(models.WorkExperienceInput{
			Country: "SA", JobTitle: "Housemaid", StartDate: start, EndDate: end,
		})
		s.Require().NoError(err)
		return exp
	}

	s.False(policy.HasMinimumWorkExperience(nil, s.today))
	s.False(policy.HasMinimumWorkExperience([]models.WorkExperience{mk("2020-01-01", "2020-12-01")}, s.today))
	s.True(policy.HasMinimumWorkExperience([]models.WorkExperience{
		mk("2020-01-01", "2020-07-01"),
		mk("2021-01-01", "2021-07-01"),
	}, s.today))
	s.True(policy.HasMinimumWorkExperience([]models.WorkExperience{mk("2023-06-15", "")}, s.today))
}

func (s *PolicySuite) TestIsValidHouseholdSize() {
	s.False(policy.IsValidHouseholdSize(0))
	s.True(policy.IsValidHouseholdSize(1))
	s.True(policy.IsValidHouseholdSize(20))
	s.False(policy.IsValidHouseholdSize(21))
}

func (s *PolicySuite) TestIsValidCountryCode() {
	s.True(policy.IsValidCountryCode("ET"))
	s.True(policy.IsValidCountryCode("sa"))
	s.False(policy.IsValidCountryCode("FR"))
	s.False(policy.IsValidCountryCode(""))
}

func (s *PolicySuite) TestIsValidDocumentURL() {
	s.True(policy.IsValidDocumentURL("https://cdn.example.com/passport.pdf"))
	s.False(policy.IsValidDocumentURL("http://cdn.example.com/passport.pdf"))
	s.True(policy.IsValidDocumentURL("HTTPS://cdn.example.com/passport.pdf"))
	s.False(policy.IsValidDocumentURL("https:///passport.pdf"))
	s.False(policy.IsValidDocumentURL("/relative/passport.pdf"))
	s.False(policy.IsValidDocumentURL("not a url"))
	s.False(policy.IsValidDocumentURL(""))
}

func (s *PolicySuite) TestCanSubmitProfile() {
	s.True(policy.CanSubmitProfile(100))
	s.False(policy.CanSubmitProfile(99))
}
