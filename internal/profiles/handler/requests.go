package handler

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"maidlink/internal/profiles/models"
	dErrors "maidlink/pkg/domain-errors"
	"maidlink/pkg/platform/httputil"
	pstrings "maidlink/pkg/platform/strings"
)

const maxBodyBytes = 1 << 20

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// parseDate accepts "2006-01-02" or RFC 3339; empty means not provided.
func parseDate(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, dErrors.New(dErrors.CodeInvalidInput, field+" must be a date (YYYY-MM-DD)")
}

// decodeOptional tolerates an empty body for endpoints whose fields are all optional.
func decodeOptional(r *http.Request, v any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return dErrors.New(dErrors.CodeBadRequest, "invalid request body")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	r.Body = io.NopCloser(bytes.NewReader(raw))
	return httputil.DecodeJSON(r, v)
}

type MaidBasicInfoRequest struct {
	FullName    string `json:"fullName"`
	DateOfBirth string `json:"dateOfBirth"`
	Nationality string `json:"nationality"`
	Phone       string `json:"phone"`
}

func (req MaidBasicInfoRequest) toModel() (models.MaidBasicInfo, error) {
	dob, err := parseDate("dateOfBirth", req.DateOfBirth)
	if err != nil {
		return models.MaidBasicInfo{}, err
	}
	return models.MaidBasicInfo{
		FullName:    strings.TrimSpace(req.FullName),
		DateOfBirth: dob,
		Nationality: strings.ToUpper(strings.TrimSpace(req.Nationality)),
		Phone:       strings.TrimSpace(req.Phone),
	}, nil
}

type URLRequest struct {
	URL string `json:"url"`
}

type WorkExperienceRequest struct {
	Country      string            `json:"country"`
	JobTitle     string            `json:"jobTitle"`
	Duties       []string          `json:"duties"`
	StartDate    string            `json:"startDate"`
	EndDate      string            `json:"endDate"`
	IsCurrentJob bool              `json:"isCurrentJob"`
	Reference    *models.Reference `json:"reference"`
}

func (req WorkExperienceRequest) toModel() models.WorkExperienceInput {
	return models.WorkExperienceInput{
		Country:      strings.TrimSpace(req.Country),
		JobTitle:     strings.TrimSpace(req.JobTitle),
		Duties:       req.Duties,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		IsCurrentJob: req.IsCurrentJob,
		Reference:    req.Reference,
	}
}

type SkillsRequest struct {
	Skills []string `json:"skills"`
}

// normalized lowercases and trims codes so " Cooking " matches the whitelist.
func (req SkillsRequest) normalized() []string {
	return pstrings.DedupeAndTrimLower(req.Skills)
}

type LanguagesRequest struct {
	Languages []string `json:"languages"`
}

func (req LanguagesRequest) normalized() []string {
	return pstrings.DedupeAndTrimLower(req.Languages)
}

// normalizeList applies fn to an optional list, keeping nil as "not provided".
func normalizeList(values *[]string, fn func([]string) []string) *[]string {
	if values == nil {
		return nil
	}
	out := fn(*values)
	if out == nil {
		out = []string{}
	}
	return &out
}

type AssignAgencyRequest struct {
	AgencyID string `json:"agencyId"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

func (req RejectRequest) validate() error {
	if strings.TrimSpace(req.Reason) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "reason is required")
	}
	return nil
}

type ArchiveRequest struct {
	Reason string `json:"reason"`
}

type SponsorBasicInfoRequest struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Country  string `json:"country"`
	City     string `json:"city"`
	Address  string `json:"address"`
}

func (req SponsorBasicInfoRequest) toModel() models.SponsorBasicInfo {
	return models.SponsorBasicInfo{
		FullName: strings.TrimSpace(req.FullName),
		Phone:    strings.TrimSpace(req.Phone),
		Country:  strings.ToUpper(strings.TrimSpace(req.Country)),
		City:     strings.TrimSpace(req.City),
		Address:  strings.TrimSpace(req.Address),
	}
}

type HouseholdRequest struct {
	HouseholdSize *int   `json:"householdSize"`
	HasChildren   *bool  `json:"hasChildren"`
	HasPets       *bool  `json:"hasPets"`
	ChildrenAges  *[]int `json:"childrenAges"`
}

func (req HouseholdRequest) toModel() models.SponsorHouseholdInfo {
	return models.SponsorHouseholdInfo{
		HouseholdSize: req.HouseholdSize,
		HasChildren:   req.HasChildren,
		HasPets:       req.HasPets,
		ChildrenAges:  req.ChildrenAges,
	}
}

type PreferencesRequest struct {
	PreferredLanguages  *[]string `json:"preferredLanguages"`
	PreferredSkills     *[]string `json:"preferredSkills"`
	ReligiousPreference *string   `json:"religiousPreference"`
}

func (req PreferencesRequest) toModel() models.SponsorPreferences {
	return models.SponsorPreferences{
		PreferredLanguages:  normalizeList(req.PreferredLanguages, pstrings.DedupeAndTrimLower),
		PreferredSkills:     normalizeList(req.PreferredSkills, pstrings.DedupeAndTrimLower),
		ReligiousPreference: req.ReligiousPreference,
	}
}

type AgencyBasicInfoRequest struct {
	AgencyName      string `json:"agencyName"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Website         string `json:"website"`
	Country         string `json:"country"`
	City            string `json:"city"`
	Address         string `json:"address"`
	YearEstablished int    `json:"yearEstablished"`
}

func (req AgencyBasicInfoRequest) toModel() models.AgencyBasicInfo {
	return models.AgencyBasicInfo{
		AgencyName:      strings.TrimSpace(req.AgencyName),
		Phone:           strings.TrimSpace(req.Phone),
		Email:           strings.TrimSpace(req.Email),
		Website:         strings.TrimSpace(req.Website),
		Country:         strings.ToUpper(strings.TrimSpace(req.Country)),
		City:            strings.TrimSpace(req.City),
		Address:         strings.TrimSpace(req.Address),
		YearEstablished: req.YearEstablished,
	}
}

type LicenseRequest struct {
	LicenseNumber      string `json:"licenseNumber"`
	LicenseExpiry      string `json:"licenseExpiry"`
	RegistrationNumber string `json:"registrationNumber"`
}

func (req LicenseRequest) toModel() (models.AgencyLicenseInfo, error) {
	expiry, err := parseDate("licenseExpiry", req.LicenseExpiry)
	if err != nil {
		return models.AgencyLicenseInfo{}, err
	}
	return models.AgencyLicenseInfo{
		LicenseNumber:      strings.TrimSpace(req.LicenseNumber),
		LicenseExpiry:      expiry,
		RegistrationNumber: strings.TrimSpace(req.RegistrationNumber),
	}, nil
}

type ServicesRequest struct {
	ServicesOffered    *[]string `json:"servicesOffered"`
	OperatingCountries *[]string `json:"operatingCountries"`
	Specializations    *[]string `json:"specializations"`
}

func (req ServicesRequest) toModel() models.AgencyServices {
	return models.AgencyServices{
		ServicesOffered:    normalizeList(req.ServicesOffered, pstrings.DedupeAndTrim),
		OperatingCountries: normalizeList(req.OperatingCountries, pstrings.DedupeAndTrim),
		Specializations:    normalizeList(req.Specializations, pstrings.DedupeAndTrim),
	}
}

type AddMaidRequest struct {
	MaidID string `json:"maidId"`
}

type ReviewRequest struct {
	Rating *float64 `json:"rating"`
}
