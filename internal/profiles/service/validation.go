package service

import (
	"time"

	"maidlink/internal/profiles/policy"
	dErrors "maidlink/pkg/domain-errors"
)

// Policy checks run at the service boundary; aggregates stay policy-free.
// Empty optional values are skipped since the aggregates treat them as
// "leave unchanged".

func validatePhone(phone string) error {
	if phone != "" && !policy.IsValidPhoneNumber(phone) {
		return dErrors.New(dErrors.CodeValidation, "phone must be in international format, e.g. +9715xxxxxxxx")
	}
	return nil
}

func validateCountry(field, code string) error {
	if code != "" && !policy.IsValidCountryCode(code) {
		return dErrors.New(dErrors.CodeValidation, field+" is not a supported country code")
	}
	return nil
}

func validateCountries(field string, codes []string) error {
	for _, code := range codes {
		if !policy.IsValidCountryCode(code) {
			return dErrors.New(dErrors.CodeValidation, field+" contains an unsupported country code: "+code)
		}
	}
	return nil
}

func validateMaidAge(dob *time.Time, today time.Time) error {
	if dob != nil && !policy.IsValidMaidAge(*dob, today) {
		return dErrors.New(dErrors.CodeValidation, "maid must be between 21 and 55 years old")
	}
	return nil
}

func validateDocumentURL(raw string) error {
	if !policy.IsValidDocumentURL(raw) {
		return dErrors.New(dErrors.CodeValidation, "document url must be an absolute https url")
	}
	return nil
}

func validateSkills(skills []string) error {
	if !policy.AreSkillsValid(skills) {
		return dErrors.New(dErrors.CodeValidation, "skills must be a non-empty list of supported skills")
	}
	return nil
}

func validateLanguages(languages []string) error {
	if !policy.AreLanguagesValid(languages) {
		return dErrors.New(dErrors.CodeValidation, "languages must be a non-empty list of supported languages")
	}
	return nil
}

func validateHouseholdSize(size *int) error {
	if size != nil && !policy.IsValidHouseholdSize(*size) {
		return dErrors.New(dErrors.CodeValidation, "household size must be between 1 and 20")
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
