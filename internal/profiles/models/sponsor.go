package models

import (
	"time"

	dErrors "maidlink/pkg/domain-errors"
	pstrings "maidlink/pkg/platform/strings"
)

// SponsorDocumentType is the closed set of documents a sponsor can upload.
type SponsorDocumentType string

const (
	SponsorDocumentID               SponsorDocumentType = "idDocument"
	SponsorDocumentProofOfResidence SponsorDocumentType = "proofOfResidence"
)

var sponsorBasicInfoFields = []string{"fullName", "phone", "country", "city", "address"}

// SponsorProfileParams is the construction DTO for SponsorProfile.
type SponsorProfileParams struct {
	ProfileParams

	FullName string
	Phone    string
	Country  string
	City     string
	Address  string

	HouseholdSize int
	HasChildren   bool
	HasPets       bool
	ChildrenAges  []int

	PreferredLanguages  []string
	PreferredSkills     []string
	ReligiousPreference string

	IDDocument       string
	ProofOfResidence string
}

// SponsorBasicInfo carries contact fields; empty values leave the current value untouched.
type SponsorBasicInfo struct {
	FullName string
	Phone    string
	Country  string
	City     string
	Address  string
}

// SponsorHouseholdInfo distinguishes "not provided" (nil) from a provided zero
// value: HasChildren=false is applied, a nil HasChildren is ignored.
type SponsorHouseholdInfo struct {
	HouseholdSize *int
	HasChildren   *bool
	HasPets       *bool
	ChildrenAges  *[]int
}

// SponsorPreferences does not affect completion.
type SponsorPreferences struct {
	PreferredLanguages  *[]string
	PreferredSkills     *[]string
	ReligiousPreference *string
}

// SponsorProfile is the aggregate root for an employer household.
//
// Lifecycle matches MaidProfile with SubmitForVerification/Verify in place of
// SubmitForReview/Approve.
//
// Completion checklist (8 items): fullName, phone, country, city, address,
// householdSize, idDocument, proofOfResidence.
type SponsorProfile struct {
	profileBase

	fullName string
	phone    string
	country  string
	city     string
	address  string

	householdSize int
	hasChildren   bool
	hasPets       bool
	childrenAges  []int

	preferredLanguages  []string
	preferredSkills     []string
	religiousPreference string

	idDocument       string
	proofOfResidence string
}

func NewSponsorProfile(p SponsorProfileParams, now time.Time) (*SponsorProfile, error) {
	base, err := newProfileBase(p.ProfileParams, now)
	if err != nil {
		return nil, err
	}
	s := &SponsorProfile{
		profileBase:         base,
		fullName:            p.FullName,
		phone:               p.Phone,
		country:             p.Country,
		city:                p.City,
		address:             p.Address,
		householdSize:       p.HouseholdSize,
		hasChildren:         p.HasChildren,
		hasPets:             p.HasPets,
		childrenAges:        cloneInts(p.ChildrenAges),
		preferredLanguages:  cloneStrings(p.PreferredLanguages),
		preferredSkills:     cloneStrings(p.PreferredSkills),
		religiousPreference: p.ReligiousPreference,
		idDocument:          p.IDDocument,
		proofOfResidence:    p.ProofOfResidence,
	}
	s.recompute()
	return s, nil
}

func (s *SponsorProfile) FullName() string             { return s.fullName }
func (s *SponsorProfile) Phone() string                { return s.phone }
func (s *SponsorProfile) Country() string              { return s.country }
func (s *SponsorProfile) City() string                 { return s.city }
func (s *SponsorProfile) Address() string              { return s.address }
func (s *SponsorProfile) HouseholdSize() int           { return s.householdSize }
func (s *SponsorProfile) HasChildren() bool            { return s.hasChildren }
func (s *SponsorProfile) HasPets() bool                { return s.hasPets }
func (s *SponsorProfile) ChildrenAges() []int          { return cloneInts(s.childrenAges) }
func (s *SponsorProfile) PreferredLanguages() []string { return cloneStrings(s.preferredLanguages) }
func (s *SponsorProfile) PreferredSkills() []string    { return cloneStrings(s.preferredSkills) }
func (s *SponsorProfile) ReligiousPreference() string  { return s.religiousPreference }
func (s *SponsorProfile) IDDocument() string           { return s.idDocument }
func (s *SponsorProfile) ProofOfResidence() string     { return s.proofOfResidence }

func (s *SponsorProfile) recompute() {
	s.completionPercentage = completion(
		s.fullName != "",
		s.phone != "",
		s.country != "",
		s.city != "",
		s.address != "",
		s.householdSize != 0,
		s.idDocument != "",
		s.proofOfResidence != "",
	)
}

// CanSubmitForVerification reports why submission would fail, or nil.
func (s *SponsorProfile) CanSubmitForVerification() error {
	return s.canSubmit()
}

func (s *SponsorProfile) SubmitForVerification(now time.Time) error {
	if err := s.canSubmit(); err != nil {
		return err
	}
	s.applyStatus(StatusUnderReview, now)
	s.record(SponsorProfileSubmitted{}, now)
	return nil
}

func (s *SponsorProfile) Verify(verifiedBy string, now time.Time) error {
	if err := s.canReview("verified"); err != nil {
		return err
	}
	s.applyActivation(now)
	s.record(SponsorProfileVerified{VerifiedBy: verifiedBy}, now)
	return nil
}

func (s *SponsorProfile) Reject(reason, rejectedBy string, now time.Time) error {
	if err := s.canReview("rejected"); err != nil {
		return err
	}
	s.applyStatus(StatusRejected, now)
	s.record(SponsorProfileRejected{Reason: reason, RejectedBy: rejectedBy}, now)
	return nil
}

func (s *SponsorProfile) Archive(reason string, now time.Time) error {
	if err := s.canArchive(); err != nil {
		return err
	}
	s.applyStatus(StatusArchived, now)
	s.record(SponsorProfileArchived{Reason: reason}, now)
	return nil
}

func (s *SponsorProfile) UpdateBasicInfo(info SponsorBasicInfo, now time.Time) error {
	if err := s.ensureNotArchived(); err != nil {
		return err
	}
	if info.FullName != "" {
		s.fullName = info.FullName
	}
	if info.Phone != "" {
		s.phone = info.Phone
	}
	if info.Country != "" {
		s.country = info.Country
	}
	if info.City != "" {
		s.city = info.City
	}
	if info.Address != "" {
		s.address = info.Address
	}
	s.recompute()
	s.touch(now)
	s.record(SponsorProfileUpdated{Fields: cloneStrings(sponsorBasicInfoFields)}, now)
	return nil
}

func (s *SponsorProfile) UpdateHouseholdInfo(info SponsorHouseholdInfo, now time.Time) error {
	if err := s.ensureNotArchived(); err != nil {
		return err
	}
	if info.HouseholdSize != nil {
		s.householdSize = *info.HouseholdSize
	}
	if info.HasChildren != nil {
		s.hasChildren = *info.HasChildren
	}
	if info.HasPets != nil {
		s.hasPets = *info.HasPets
	}
	if info.ChildrenAges != nil {
		s.childrenAges = cloneInts(*info.ChildrenAges)
	}
	s.recompute()
	s.touch(now)
	s.record(SponsorHouseholdUpdated{
		HouseholdSize: s.householdSize,
		HasChildren:   s.hasChildren,
		HasPets:       s.hasPets,
		ChildrenAges:  cloneInts(s.childrenAges),
	}, now)
	return nil
}

func (s *SponsorProfile) UpdatePreferences(prefs SponsorPreferences, now time.Time) error {
	if err := s.ensureNotArchived(); err != nil {
		return err
	}
	if prefs.PreferredLanguages != nil {
		s.preferredLanguages = pstrings.Dedupe(cloneStrings(*prefs.PreferredLanguages))
	}
	if prefs.PreferredSkills != nil {
		s.preferredSkills = pstrings.Dedupe(cloneStrings(*prefs.PreferredSkills))
	}
	if prefs.ReligiousPreference != nil {
		s.religiousPreference = *prefs.ReligiousPreference
	}
	s.touch(now)
	s.record(SponsorPreferencesUpdated{
		PreferredLanguages:  cloneStrings(s.preferredLanguages),
		PreferredSkills:     cloneStrings(s.preferredSkills),
		ReligiousPreference: s.religiousPreference,
	}, now)
	return nil
}

func (s *SponsorProfile) UploadDocument(docType SponsorDocumentType, url string, now time.Time) error {
	if err := s.ensureNotArchived(); err != nil {
		return err
	}
	switch docType {
	case SponsorDocumentID:
		s.idDocument = url
	case SponsorDocumentProofOfResidence:
		s.proofOfResidence = url
	default:
		return dErrors.New(dErrors.CodeInvalidInput, "invalid document type: "+string(docType))
	}
	s.recompute()
	s.touch(now)
	s.record(DocumentUploaded{DocumentType: string(docType), DocumentURL: url}, now)
	return nil
}

// SponsorProfileSnapshot is the flat serialized form of a SponsorProfile.
type SponsorProfileSnapshot struct {
	ProfileSnapshot

	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Country  string `json:"country"`
	City     string `json:"city"`
	Address  string `json:"address"`

	HouseholdSize int   `json:"householdSize"`
	HasChildren   bool  `json:"hasChildren"`
	HasPets       bool  `json:"hasPets"`
	ChildrenAges  []int `json:"childrenAges"`

	PreferredLanguages  []string `json:"preferredLanguages"`
	PreferredSkills     []string `json:"preferredSkills"`
	ReligiousPreference string   `json:"religiousPreference"`

	IDDocument       string `json:"idDocument"`
	ProofOfResidence string `json:"proofOfResidence"`
}

// Snapshot takes now for parity with the other aggregates; sponsors carry no
// time-derived fields.
func (s *SponsorProfile) Snapshot(_ time.Time) SponsorProfileSnapshot {
	return SponsorProfileSnapshot{
		ProfileSnapshot:     s.snapshotBase(),
		FullName:            s.fullName,
		Phone:               s.phone,
		Country:             s.country,
		City:                s.city,
		Address:             s.address,
		HouseholdSize:       s.householdSize,
		HasChildren:         s.hasChildren,
		HasPets:             s.hasPets,
		ChildrenAges:        cloneInts(s.childrenAges),
		PreferredLanguages:  cloneStrings(s.preferredLanguages),
		PreferredSkills:     cloneStrings(s.preferredSkills),
		ReligiousPreference: s.religiousPreference,
		IDDocument:          s.idDocument,
		ProofOfResidence:    s.proofOfResidence,
	}
}

func (s SponsorProfileSnapshot) Params() (SponsorProfileParams, error) {
	return SponsorProfileParams{
		ProfileParams:       s.ProfileSnapshot.params(),
		FullName:            s.FullName,
		Phone:               s.Phone,
		Country:             s.Country,
		City:                s.City,
		Address:             s.Address,
		HouseholdSize:       s.HouseholdSize,
		HasChildren:         s.HasChildren,
		HasPets:             s.HasPets,
		ChildrenAges:        s.ChildrenAges,
		PreferredLanguages:  s.PreferredLanguages,
		PreferredSkills:     s.PreferredSkills,
		ReligiousPreference: s.ReligiousPreference,
		IDDocument:          s.IDDocument,
		ProofOfResidence:    s.ProofOfResidence,
	}, nil
}
