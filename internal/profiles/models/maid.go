package models

import (
	"time"

	id "maidlink/pkg/domain"
	dErrors "maidlink/pkg/domain-errors"
	pstrings "maidlink/pkg/platform/strings"
)

// MaidDocumentType is the closed set of documents a maid can upload.
type MaidDocumentType string

const (
	MaidDocumentPassport           MaidDocumentType = "passport"
	MaidDocumentMedicalCertificate MaidDocumentType = "medicalCertificate"
	MaidDocumentPoliceClearance    MaidDocumentType = "policeClearance"
)

// maidBasicInfoFields is reported on every basic-info update regardless of
// which fields were actually provided.
var maidBasicInfoFields = []string{"fullName", "dateOfBirth", "nationality", "phone"}

// MaidProfileParams is the construction DTO for MaidProfile.
type MaidProfileParams struct {
	ProfileParams

	FullName     string
	DateOfBirth  *time.Time
	Nationality  string
	Phone        string
	ProfilePhoto string

	WorkExperience     []WorkExperience
	Skills             []string
	Languages          []string
	PreferredCountries []string

	Passport           string
	MedicalCertificate string
	PoliceClearance    string

	AgencyID       *id.ProfileID
	AgencyApproved bool
}

// MaidBasicInfo carries the identity fields; empty values leave the current value untouched.
type MaidBasicInfo struct {
	FullName    string
	DateOfBirth *time.Time
	Nationality string
	Phone       string
}

// MaidProfile is the aggregate root for a domestic worker's profile.
//
// Lifecycle:
//
//	draft --SubmitForReview--> under_review --Approve--> active
//	                           under_review --Reject---> rejected
//	any non-archived --Archive--> archived
//
// Completion checklist (10 items): fullName, dateOfBirth, nationality, phone,
// profilePhoto, skills, languages, passport, medicalCertificate, policeClearance.
type MaidProfile struct {
	profileBase

	fullName     string
	dateOfBirth  *time.Time
	nationality  string
	phone        string
	profilePhoto string

	workExperience     []WorkExperience
	skills             []string
	languages          []string
	preferredCountries []string

	passport           string
	medicalCertificate string
	policeClearance    string

	agencyID       *id.ProfileID
	agencyApproved bool
}

func NewMaidProfile(p MaidProfileParams, now time.Time) (*MaidProfile, error) {
	base, err := newProfileBase(p.ProfileParams, now)
	if err != nil {
		return nil, err
	}
	for _, exp := range p.WorkExperience {
		if exp.IsZero() {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid work experience")
		}
	}
	m := &MaidProfile{
		profileBase:        base,
		fullName:           p.FullName,
		dateOfBirth:        cloneTime(p.DateOfBirth),
		nationality:        p.Nationality,
		phone:              p.Phone,
		profilePhoto:       p.ProfilePhoto,
		workExperience:     append([]WorkExperience(nil), p.WorkExperience...),
		skills:             cloneStrings(p.Skills),
		languages:          cloneStrings(p.Languages),
		preferredCountries: cloneStrings(p.PreferredCountries),
		passport:           p.Passport,
		medicalCertificate: p.MedicalCertificate,
		policeClearance:    p.PoliceClearance,
		agencyApproved:     p.AgencyApproved,
	}
	if p.AgencyID != nil {
		agencyID := *p.AgencyID
		m.agencyID = &agencyID
	}
	m.recompute()
	return m, nil
}

func (m *MaidProfile) FullName() string        { return m.fullName }
func (m *MaidProfile) DateOfBirth() *time.Time { return cloneTime(m.dateOfBirth) }
func (m *MaidProfile) Nationality() string     { return m.nationality }
func (m *MaidProfile) Phone() string           { return m.phone }
func (m *MaidProfile) ProfilePhoto() string    { return m.profilePhoto }
func (m *MaidProfile) Skills() []string        { return cloneStrings(m.skills) }
func (m *MaidProfile) Languages() []string     { return cloneStrings(m.languages) }
func (m *MaidProfile) PreferredCountries() []string {
	return cloneStrings(m.preferredCountries)
}
func (m *MaidProfile) Passport() string           { return m.passport }
func (m *MaidProfile) MedicalCertificate() string { return m.medicalCertificate }
func (m *MaidProfile) PoliceClearance() string    { return m.policeClearance }
func (m *MaidProfile) AgencyApproved() bool       { return m.agencyApproved }

func (m *MaidProfile) WorkExperience() []WorkExperience {
	return append([]WorkExperience(nil), m.workExperience...)
}

func (m *MaidProfile) AgencyID() *id.ProfileID {
	if m.agencyID == nil {
		return nil
	}
	agencyID := *m.agencyID
	return &agencyID
}

func (m *MaidProfile) recompute() {
	m.completionPercentage = completion(
		m.fullName != "",
		m.dateOfBirth != nil,
		m.nationality != "",
		m.phone != "",
		m.profilePhoto != "",
		len(m.skills) > 0,
		len(m.languages) > 0,
		m.passport != "",
		m.medicalCertificate != "",
		m.policeClearance != "",
	)
}

// CanSubmitForReview reports why submission would fail, or nil.
func (m *MaidProfile) CanSubmitForReview() error {
	return m.canSubmit()
}

func (m *MaidProfile) SubmitForReview(now time.Time) error {
	if err := m.canSubmit(); err != nil {
		return err
	}
	m.applyStatus(StatusUnderReview, now)
	m.record(MaidProfileSubmitted{}, now)
	return nil
}

// Approve activates a profile under review and marks it verified.
func (m *MaidProfile) Approve(approvedBy string, now time.Time) error {
	if err := m.canReview("approved"); err != nil {
		return err
	}
	m.applyActivation(now)
	m.record(MaidProfileApproved{ApprovedBy: approvedBy}, now)
	return nil
}

func (m *MaidProfile) Reject(reason, rejectedBy string, now time.Time) error {
	if err := m.canReview("rejected"); err != nil {
		return err
	}
	m.applyStatus(StatusRejected, now)
	m.record(MaidProfileRejected{Reason: reason, RejectedBy: rejectedBy}, now)
	return nil
}

func (m *MaidProfile) Archive(reason string, now time.Time) error {
	if err := m.canArchive(); err != nil {
		return err
	}
	m.applyStatus(StatusArchived, now)
	m.record(MaidProfileArchived{Reason: reason}, now)
	return nil
}

func (m *MaidProfile) UpdateBasicInfo(info MaidBasicInfo, now time.Time) error {
	if err := m.ensureNotArchived(); err != nil {
		return err
	}
	if info.FullName != "" {
		m.fullName = info.FullName
	}
	if info.DateOfBirth != nil {
		m.dateOfBirth = cloneTime(info.DateOfBirth)
	}
	if info.Nationality != "" {
		m.nationality = info.Nationality
	}
	if info.Phone != "" {
		m.phone = info.Phone
	}
	m.recompute()
	m.touch(now)
	m.record(MaidProfileUpdated{Fields: cloneStrings(maidBasicInfoFields)}, now)
	return nil
}

func (m *MaidProfile) UpdateProfilePhoto(url string, now time.Time) error {
	if err := m.ensureNotArchived(); err != nil {
		return err
	}
	if url == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "profile photo url is required")
	}
	m.profilePhoto = url
	m.recompute()
	m.touch(now)
	m.record(MaidProfilePhotoUpdated{ProfilePhoto: url}, now)
	return nil
}

func (m *MaidProfile) AddWorkExperience(exp WorkExperience, now time.Time) error {
	if err := m.ensureNotArchived(); err != nil {
		return err
	}
	if exp.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid work experience")
	}
	m.workExperience = append(m.workExperience, exp)
	m.recompute()
	m.touch(now)
	m.record(WorkExperienceAdded{Experience: exp.Snapshot(now)}, now)
	return nil
}

// UpdateSkills replaces the skill list, keeping the first occurrence of duplicates.
// A nil slice is rejected; an empty slice clears the list.
func (m *MaidProfile) UpdateSkills(skills []string, now time.Time) error {
	if err := m.ensureNotArchived(); err != nil {
		return err
	}
	if skills == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "skills must be a list")
	}
	m.skills = pstrings.Dedupe(skills)
	m.recompute()
	m.touch(now)
	m.record(MaidSkillsUpdated{Skills: cloneStrings(m.skills)}, now)
	return nil
}

// UpdateLanguages mirrors UpdateSkills but emits no event; downstream consumers
// rely on that.
func (m *MaidProfile) UpdateLanguages(languages []string, now time.Time) error {
	if err := m.ensureNotArchived(); err != nil {
		return err
	}
	if languages == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "languages must be a list")
	}
	m.languages = pstrings.Dedupe(languages)
	m.recompute()
	m.touch(now)
	return nil
}

func (m *MaidProfile) UploadDocument(docType MaidDocumentType, url string, now time.Time) error {
	if err := m.ensureNotArchived(); err != nil {
		return err
	}
	switch docType {
	case MaidDocumentPassport:
		m.passport = url
	case MaidDocumentMedicalCertificate:
		m.medicalCertificate = url
	case MaidDocumentPoliceClearance:
		m.policeClearance = url
	default:
		return dErrors.New(dErrors.CodeInvalidInput, "invalid document type: "+string(docType))
	}
	m.recompute()
	m.touch(now)
	m.record(DocumentUploaded{DocumentType: string(docType), DocumentURL: url}, now)
	return nil
}

// AssignAgency links the maid to a recruiting agency pending the maid's confirmation.
func (m *MaidProfile) AssignAgency(agencyID id.ProfileID, now time.Time) error {
	if err := m.ensureNotArchived(); err != nil {
		return err
	}
	if agencyID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "agency id is required")
	}
	m.agencyID = &agencyID
	m.agencyApproved = false
	m.touch(now)
	m.record(MaidAgencyAssigned{AgencyID: agencyID}, now)
	return nil
}

func (m *MaidProfile) ConfirmAgency(now time.Time) error {
	if err := m.ensureNotArchived(); err != nil {
		return err
	}
	if m.agencyID == nil {
		return dErrors.New(dErrors.CodeInvalidState, "no agency assigned")
	}
	m.agencyApproved = true
	m.touch(now)
	m.record(MaidAgencyApproved{AgencyID: *m.agencyID}, now)
	return nil
}

// MaidProfileSnapshot is the flat serialized form of a MaidProfile.
type MaidProfileSnapshot struct {
	ProfileSnapshot

	FullName     string     `json:"fullName"`
	DateOfBirth  *time.Time `json:"dateOfBirth"`
	Nationality  string     `json:"nationality"`
	Phone        string     `json:"phone"`
	ProfilePhoto string     `json:"profilePhoto"`

	WorkExperience     []WorkExperienceSnapshot `json:"workExperience"`
	Skills             []string                 `json:"skills"`
	Languages          []string                 `json:"languages"`
	PreferredCountries []string                 `json:"preferredCountries"`

	Passport           string `json:"passport"`
	MedicalCertificate string `json:"medicalCertificate"`
	PoliceClearance    string `json:"policeClearance"`

	AgencyID       *id.ProfileID `json:"agencyId,omitempty"`
	AgencyApproved bool          `json:"agencyApproved"`
}

func (m *MaidProfile) Snapshot(now time.Time) MaidProfileSnapshot {
	experiences := make([]WorkExperienceSnapshot, 0, len(m.workExperience))
	for _, exp := range m.workExperience {
		experiences = append(experiences, exp.Snapshot(now))
	}
	return MaidProfileSnapshot{
		ProfileSnapshot:    m.snapshotBase(),
		FullName:           m.fullName,
		DateOfBirth:        cloneTime(m.dateOfBirth),
		Nationality:        m.nationality,
		Phone:              m.phone,
		ProfilePhoto:       m.profilePhoto,
		WorkExperience:     experiences,
		Skills:             cloneStrings(m.skills),
		Languages:          cloneStrings(m.languages),
		PreferredCountries: cloneStrings(m.preferredCountries),
		Passport:           m.passport,
		MedicalCertificate: m.medicalCertificate,
		PoliceClearance:    m.policeClearance,
		AgencyID:           m.AgencyID(),
		AgencyApproved:     m.agencyApproved,
	}
}

// Params converts a snapshot back into construction params.
func (s MaidProfileSnapshot) Params() (MaidProfileParams, error) {
	experiences := make([]WorkExperience, 0, len(s.WorkExperience))
	for _, snap := range s.WorkExperience {
		exp, err := NewWorkExperience(snap.Input())
		if err != nil {
			return MaidProfileParams{}, err
		}
		experiences = append(experiences, exp)
	}
	return MaidProfileParams{
		ProfileParams:      s.ProfileSnapshot.params(),
		FullName:           s.FullName,
		DateOfBirth:        cloneTime(s.DateOfBirth),
		Nationality:        s.Nationality,
		Phone:              s.Phone,
		ProfilePhoto:       s.ProfilePhoto,
		WorkExperience:     experiences,
		Skills:             s.Skills,
		Languages:          s.Languages,
		PreferredCountries: s.PreferredCountries,
		Passport:           s.Passport,
		MedicalCertificate: s.MedicalCertificate,
		PoliceClearance:    s.PoliceClearance,
		AgencyID:           s.AgencyID,
		AgencyApproved:     s.AgencyApproved,
	}, nil
}
