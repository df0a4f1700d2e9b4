package models

import (
	"time"

	id "maidlink/pkg/domain"
	dErrors "maidlink/pkg/domain-errors"
	pstrings "maidlink/pkg/platform/strings"
)

// AgencyDocumentType is the closed set of documents an agency can upload.
type AgencyDocumentType string

const (
	AgencyDocumentBusinessLicense      AgencyDocumentType = "businessLicense"
	AgencyDocumentTaxCertificate       AgencyDocumentType = "taxCertificate"
	AgencyDocumentInsuranceCertificate AgencyDocumentType = "insuranceCertificate"
)

const (
	MinRating = 0.0
	MaxRating = 5.0
)

var agencyBasicInfoFields = []string{"agencyName", "phone", "email", "website", "country", "city", "address", "yearEstablished"}

// AgencyProfileParams is the construction DTO for AgencyProfile.
type AgencyProfileParams struct {
	ProfileParams

	AgencyName         string
	LicenseNumber      string
	LicenseExpiry      *time.Time
	RegistrationNumber string
	Phone              string
	Email              string
	Website            string
	Country            string
	City               string
	Address            string
	YearEstablished    int

	ServicesOffered    []string
	OperatingCountries []string
	Specializations    []string

	BusinessLicense      string
	TaxCertificate       string
	InsuranceCertificate string

	TotalPlacements int
	ActiveMaids     int
	Rating          float64
	TotalReviews    int
	IsLicenseValid  bool
}

// AgencyBasicInfo carries contact fields; zero values leave the current value untouched.
type AgencyBasicInfo struct {
	AgencyName      string
	Phone           string
	Email           string
	Website         string
	Country         string
	City            string
	Address         string
	YearEstablished int
}

// AgencyLicenseInfo carries licensing fields; zero values leave the current value untouched.
type AgencyLicenseInfo struct {
	LicenseNumber      string
	LicenseExpiry      *time.Time
	RegistrationNumber string
}

// AgencyServices replaces the provided lists; nil lists are left untouched.
type AgencyServices struct {
	ServicesOffered    *[]string
	OperatingCountries *[]string
	Specializations    *[]string
}

// AgencyProfile is the aggregate root for a recruitment agency.
//
// Submission additionally requires a valid (unexpired) license.
//
// Completion checklist (11 items): agencyName, licenseNumber, licenseExpiry,
// registrationNumber, phone, email, country, city, address, businessLicense,
// taxCertificate.
type AgencyProfile struct {
	profileBase

	agencyName         string
	licenseNumber      string
	licenseExpiry      *time.Time
	registrationNumber string
	phone              string
	email              string
	website            string
	country            string
	city               string
	address            string
	yearEstablished    int

	servicesOffered    []string
	operatingCountries []string
	specializations    []string

	businessLicense      string
	taxCertificate       string
	insuranceCertificate string

	totalPlacements int
	activeMaids     int
	rating          float64
	totalReviews    int
	isLicenseValid  bool
}

func NewAgencyProfile(p AgencyProfileParams, now time.Time) (*AgencyProfile, error) {
	base, err := newProfileBase(p.ProfileParams, now)
	if err != nil {
		return nil, err
	}
	if !validRating(p.Rating) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "rating must be between 0 and 5")
	}
	a := &AgencyProfile{
		profileBase:          base,
		agencyName:           p.AgencyName,
		licenseNumber:        p.LicenseNumber,
		licenseExpiry:        cloneTime(p.LicenseExpiry),
		registrationNumber:   p.RegistrationNumber,
		phone:                p.Phone,
		email:                p.Email,
		website:              p.Website,
		country:              p.Country,
		city:                 p.City,
		address:              p.Address,
		yearEstablished:      p.YearEstablished,
		servicesOffered:      cloneStrings(p.ServicesOffered),
		operatingCountries:   cloneStrings(p.OperatingCountries),
		specializations:      cloneStrings(p.Specializations),
		businessLicense:      p.BusinessLicense,
		taxCertificate:       p.TaxCertificate,
		insuranceCertificate: p.InsuranceCertificate,
		totalPlacements:      p.TotalPlacements,
		activeMaids:          p.ActiveMaids,
		rating:               p.Rating,
		totalReviews:         p.TotalReviews,
		isLicenseValid:       p.IsLicenseValid,
	}
	a.recompute()
	return a, nil
}

func (a *AgencyProfile) AgencyName() string           { return a.agencyName }
func (a *AgencyProfile) LicenseNumber() string        { return a.licenseNumber }
func (a *AgencyProfile) LicenseExpiry() *time.Time    { return cloneTime(a.licenseExpiry) }
func (a *AgencyProfile) RegistrationNumber() string   { return a.registrationNumber }
func (a *AgencyProfile) Phone() string                { return a.phone }
func (a *AgencyProfile) Email() string                { return a.email }
func (a *AgencyProfile) Website() string              { return a.website }
func (a *AgencyProfile) Country() string              { return a.country }
func (a *AgencyProfile) City() string                 { return a.city }
func (a *AgencyProfile) Address() string              { return a.address }
func (a *AgencyProfile) YearEstablished() int         { return a.yearEstablished }
func (a *AgencyProfile) ServicesOffered() []string    { return cloneStrings(a.servicesOffered) }
func (a *AgencyProfile) OperatingCountries() []string { return cloneStrings(a.operatingCountries) }
func (a *AgencyProfile) Specializations() []string    { return cloneStrings(a.specializations) }
func (a *AgencyProfile) BusinessLicense() string      { return a.businessLicense }
func (a *AgencyProfile) TaxCertificate() string       { return a.taxCertificate }
func (a *AgencyProfile) InsuranceCertificate() string { return a.insuranceCertificate }
func (a *AgencyProfile) TotalPlacements() int         { return a.totalPlacements }
func (a *AgencyProfile) ActiveMaids() int             { return a.activeMaids }
func (a *AgencyProfile) Rating() float64              { return a.rating }
func (a *AgencyProfile) TotalReviews() int            { return a.totalReviews }
func (a *AgencyProfile) IsLicenseValid() bool         { return a.isLicenseValid }

func (a *AgencyProfile) recompute() {
	a.completionPercentage = completion(
		a.agencyName != "",
		a.licenseNumber != "",
		a.licenseExpiry != nil,
		a.registrationNumber != "",
		a.phone != "",
		a.email != "",
		a.country != "",
		a.city != "",
		a.address != "",
		a.businessLicense != "",
		a.taxCertificate != "",
	)
}

func (a *AgencyProfile) validateLicense(now time.Time) {
	a.isLicenseValid = a.licenseExpiry != nil && a.licenseExpiry.After(now)
}

// CanSubmitForVerification reports why submission would fail, or nil.
func (a *AgencyProfile) CanSubmitForVerification() error {
	if err := a.canSubmit(); err != nil {
		return err
	}
	if !a.isLicenseValid {
		return dErrors.New(dErrors.CodeInvalidState, "agency license must be valid before submission")
	}
	return nil
}

func (a *AgencyProfile) SubmitForVerification(now time.Time) error {
	if err := a.CanSubmitForVerification(); err != nil {
		return err
	}
	a.applyStatus(StatusUnderReview, now)
	a.record(AgencyProfileSubmitted{}, now)
	return nil
}

func (a *AgencyProfile) Verify(verifiedBy string, now time.Time) error {
	if err := a.canReview("verified"); err != nil {
		return err
	}
	a.applyActivation(now)
	a.record(AgencyProfileVerified{VerifiedBy: verifiedBy}, now)
	return nil
}

func (a *AgencyProfile) Reject(reason, rejectedBy string, now time.Time) error {
	if err := a.canReview("rejected"); err != nil {
		return err
	}
	a.applyStatus(StatusRejected, now)
	a.record(AgencyProfileRejected{Reason: reason, RejectedBy: rejectedBy}, now)
	return nil
}

func (a *AgencyProfile) Archive(reason string, now time.Time) error {
	if err := a.canArchive(); err != nil {
		return err
	}
	a.applyStatus(StatusArchived, now)
	a.record(AgencyProfileArchived{Reason: reason}, now)
	return nil
}

func (a *AgencyProfile) UpdateBasicInfo(info AgencyBasicInfo, now time.Time) error {
	if err := a.ensureNotArchived(); err != nil {
		return err
	}
	if info.AgencyName != "" {
		a.agencyName = info.AgencyName
	}
	if info.Phone != "" {
		a.phone = info.Phone
	}
	if info.Email != "" {
		a.email = info.Email
	}
	if info.Website != "" {
		a.website = info.Website
	}
	if info.Country != "" {
		a.country = info.Country
	}
	if info.City != "" {
		a.city = info.City
	}
	if info.Address != "" {
		a.address = info.Address
	}
	if info.YearEstablished != 0 {
		a.yearEstablished = info.YearEstablished
	}
	a.recompute()
	a.touch(now)
	a.record(AgencyProfileUpdated{Fields: cloneStrings(agencyBasicInfoFields)}, now)
	return nil
}

// UpdateLicenseInfo overwrites the provided license fields and re-derives
// license validity against now.
func (a *AgencyProfile) UpdateLicenseInfo(info AgencyLicenseInfo, now time.Time) error {
	if err := a.ensureNotArchived(); err != nil {
		return err
	}
	if info.LicenseNumber != "" {
		a.licenseNumber = info.LicenseNumber
	}
	if info.LicenseExpiry != nil {
		a.licenseExpiry = cloneTime(info.LicenseExpiry)
	}
	if info.RegistrationNumber != "" {
		a.registrationNumber = info.RegistrationNumber
	}
	a.validateLicense(now)
	a.recompute()
	a.touch(now)
	a.record(AgencyLicenseUpdated{LicenseNumber: a.licenseNumber, IsLicenseValid: a.isLicenseValid}, now)
	return nil
}

func (a *AgencyProfile) UpdateServices(services AgencyServices, now time.Time) error {
	if err := a.ensureNotArchived(); err != nil {
		return err
	}
	if services.ServicesOffered != nil {
		a.servicesOffered = pstrings.Dedupe(cloneStrings(*services.ServicesOffered))
	}
	if services.OperatingCountries != nil {
		a.operatingCountries = pstrings.Dedupe(cloneStrings(*services.OperatingCountries))
	}
	if services.Specializations != nil {
		a.specializations = pstrings.Dedupe(cloneStrings(*services.Specializations))
	}
	a.touch(now)
	a.record(AgencyServicesUpdated{
		ServicesOffered:    cloneStrings(a.servicesOffered),
		OperatingCountries: cloneStrings(a.operatingCountries),
		Specializations:    cloneStrings(a.specializations),
	}, now)
	return nil
}

func (a *AgencyProfile) UploadDocument(docType AgencyDocumentType, url string, now time.Time) error {
	if err := a.ensureNotArchived(); err != nil {
		return err
	}
	switch docType {
	case AgencyDocumentBusinessLicense:
		a.businessLicense = url
	case AgencyDocumentTaxCertificate:
		a.taxCertificate = url
	case AgencyDocumentInsuranceCertificate:
		a.insuranceCertificate = url
	default:
		return dErrors.New(dErrors.CodeInvalidInput, "invalid document type: "+string(docType))
	}
	a.recompute()
	a.touch(now)
	a.record(DocumentUploaded{DocumentType: string(docType), DocumentURL: url}, now)
	return nil
}

// AddMaid counts a maid as actively represented by the agency.
func (a *AgencyProfile) AddMaid(_ id.ProfileID, now time.Time) error {
	if err := a.ensureNotArchived(); err != nil {
		return err
	}
	a.activeMaids++
	a.touch(now)
	return nil
}

// RemoveMaid decrements the active count, flooring at zero.
func (a *AgencyProfile) RemoveMaid(_ id.ProfileID, now time.Time) error {
	if err := a.ensureNotArchived(); err != nil {
		return err
	}
	if a.activeMaids > 0 {
		a.activeMaids--
	}
	a.touch(now)
	return nil
}

func (a *AgencyProfile) RecordPlacement(now time.Time) error {
	if err := a.ensureNotArchived(); err != nil {
		return err
	}
	a.totalPlacements++
	a.touch(now)
	return nil
}

// validRating is false for NaN as well as out-of-range values.
func validRating(r float64) bool {
	return r >= MinRating && r <= MaxRating
}

// UpdateRating folds a new review into the running average.
func (a *AgencyProfile) UpdateRating(newRating float64, now time.Time) error {
	if err := a.ensureNotArchived(); err != nil {
		return err
	}
	if !validRating(newRating) {
		return dErrors.New(dErrors.CodeInvalidInput, "rating must be between 0 and 5")
	}
	a.rating = (a.rating*float64(a.totalReviews) + newRating) / float64(a.totalReviews+1)
	a.totalReviews++
	a.touch(now)
	a.record(AgencyRatingUpdated{Rating: a.rating, TotalReviews: a.totalReviews}, now)
	return nil
}

// AgencyProfileSnapshot is the flat serialized form of an AgencyProfile.
type AgencyProfileSnapshot struct {
	ProfileSnapshot

	AgencyName         string     `json:"agencyName"`
	LicenseNumber      string     `json:"licenseNumber"`
	LicenseExpiry      *time.Time `json:"licenseExpiry"`
	RegistrationNumber string     `json:"registrationNumber"`
	Phone              string     `json:"phone"`
	Email              string     `json:"email"`
	Website            string     `json:"website"`
	Country            string     `json:"country"`
	City               string     `json:"city"`
	Address            string     `json:"address"`
	YearEstablished    int        `json:"yearEstablished"`

	ServicesOffered    []string `json:"servicesOffered"`
	OperatingCountries []string `json:"operatingCountries"`
	Specializations    []string `json:"specializations"`

	BusinessLicense      string `json:"businessLicense"`
	TaxCertificate       string `json:"taxCertificate"`
	InsuranceCertificate string `json:"insuranceCertificate"`

	TotalPlacements int     `json:"totalPlacements"`
	ActiveMaids     int     `json:"activeMaids"`
	Rating          float64 `json:"rating"`
	TotalReviews    int     `json:"totalReviews"`
	IsLicenseValid  bool    `json:"isLicenseValid"`
}

func (a *AgencyProfile) Snapshot(_ time.Time) AgencyProfileSnapshot {
	return AgencyProfileSnapshot{
		ProfileSnapshot:      a.snapshotBase(),
		AgencyName:           a.agencyName,
		LicenseNumber:        a.licenseNumber,
		LicenseExpiry:        cloneTime(a.licenseExpiry),
		RegistrationNumber:   a.registrationNumber,
		Phone:                a.phone,
		Email:                a.email,
		Website:              a.website,
		Country:              a.country,
		City:                 a.city,
		Address:              a.address,
		YearEstablished:      a.yearEstablished,
		ServicesOffered:      cloneStrings(a.servicesOffered),
		OperatingCountries:   cloneStrings(a.operatingCountries),
		Specializations:      cloneStrings(a.specializations),
		BusinessLicense:      a.businessLicense,
		TaxCertificate:       a.taxCertificate,
		InsuranceCertificate: a.insuranceCertificate,
		TotalPlacements:      a.totalPlacements,
		ActiveMaids:          a.activeMaids,
		Rating:               a.rating,
		TotalReviews:         a.totalReviews,
		IsLicenseValid:       a.isLicenseValid,
	}
}

func (s AgencyProfileSnapshot) Params() (AgencyProfileParams, error) {
	return AgencyProfileParams{
		ProfileParams:        s.ProfileSnapshot.params(),
		AgencyName:           s.AgencyName,
		LicenseNumber:        s.LicenseNumber,
		LicenseExpiry:        cloneTime(s.LicenseExpiry),
		RegistrationNumber:   s.RegistrationNumber,
		Phone:                s.Phone,
		Email:                s.Email,
		Website:              s.Website,
		Country:              s.Country,
		City:                 s.City,
		Address:              s.Address,
		YearEstablished:      s.YearEstablished,
		ServicesOffered:      s.ServicesOffered,
		OperatingCountries:   s.OperatingCountries,
		Specializations:      s.Specializations,
		BusinessLicense:      s.BusinessLicense,
		TaxCertificate:       s.TaxCertificate,
		InsuranceCertificate: s.InsuranceCertificate,
		TotalPlacements:      s.TotalPlacements,
		ActiveMaids:          s.ActiveMaids,
		Rating:               s.Rating,
		TotalReviews:         s.TotalReviews,
		IsLicenseValid:       s.IsLicenseValid,
	}, nil
}
