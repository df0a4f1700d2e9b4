// Package policy holds the stateless profile rules applied at the service
// boundary. Aggregates never call into it.
package policy

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"maidlink/internal/profiles/models"
)

const (
	MinMaidAge = 21
	MaxMaidAge = 55

	MinHouseholdSize = 1
	MaxHouseholdSize = 20

	MinWorkExperienceMonths = 12
)

var phonePattern = regexp.MustCompile(`^\+\d{10,15}$`)

var validSkills = map[string]struct{}{
	"cooking": {}, "cleaning": {}, "childcare": {}, "elderly_care": {}, "laundry": {},
	"ironing": {}, "driving": {}, "gardening": {}, "pet_care": {},
}

var validLanguages = map[string]struct{}{
	"en": {}, "ar": {}, "am": {}, "tl": {}, "id": {}, "si": {}, "fr": {}, "es": {},
}

var validCountries = map[string]struct{}{
	"ET": {}, "SA": {}, "AE": {}, "KW": {}, "QA": {}, "BH": {},
	"OM": {}, "JO": {}, "LB": {}, "US": {}, "GB": {},
}

// CalculateAge returns the exact calendar age on today.
func CalculateAge(dob, today time.Time) int {
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return age
}

func IsValidMaidAge(dob, today time.Time) bool {
	age := CalculateAge(dob, today)
	return age >= MinMaidAge && age <= MaxMaidAge
}

// IsValidPhoneNumber accepts E.164-style numbers: a leading plus and 10 to 15 digits.
func IsValidPhoneNumber(phone string) bool {
	return phonePattern.MatchString(phone)
}

func AreSkillsValid(skills []string) bool {
	return allIn(skills, validSkills)
}

func AreLanguagesValid(languages []string) bool {
	return allIn(languages, validLanguages)
}

// HasMinimumWorkExperience sums whole months across all stints.
func HasMinimumWorkExperience(experiences []models.WorkExperience, now time.Time) bool {
	total := 0
	for _, exp := range experiences {
		total += exp.DurationInMonths(now)
	}
	return total >= MinWorkExperienceMonths
}

func IsValidHouseholdSize(size int) bool {
	return size >= MinHouseholdSize && size <= MaxHouseholdSize
}

func IsValidCountryCode(code string) bool {
	_, ok := validCountries[strings.ToUpper(code)]
	return ok
}

// IsValidDocumentURL requires an absolute https URL with a host.
func IsValidDocumentURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Scheme == "https" && u.Host != ""
}

func CanSubmitProfile(completionPercentage int) bool {
	return completionPercentage >= 100
}

// Skills and Languages expose the whitelists for request validation messages.
func Skills() []string    { return keys(validSkills) }
func Languages() []string { return keys(validLanguages) }

func allIn(values []string, allowed map[string]struct{}) bool {
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if _, ok := allowed[v]; !ok {
			return false
		}
	}
	return true
}

func keys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
