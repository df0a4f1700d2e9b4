package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"maidlink/internal/profiles/models"
	id "maidlink/pkg/domain"
	dErrors "maidlink/pkg/domain-errors"
)

type MaidProfileSuite struct {
	suite.Suite
	now time.Time
}

func TestMaidProfileSuite(t *testing.T) {
	suite.Run(t, new(MaidProfileSuite))
}

func (s *MaidProfileSuite) SetupTest() {
	s.now = fixedNow
}

func (s *MaidProfileSuite) newMaid(p models.MaidProfileParams) *models.MaidProfile {
	m, err := models.NewMaidProfile(p, s.now)
	s.Require().NoError(err)
	return m
}

func (s *MaidProfileSuite) underReview() *models.MaidProfile {
	m := s.newMaid(completeMaidParams())
	s.Require().NoError(m.SubmitForReview(s.now))
	m.PullDomainEvents()
	return m
}

func (s *MaidProfileSuite) TestConstruction() {
	s.Run("defaults to draft with zero completion", func() {
		m := s.newMaid(models.MaidProfileParams{ProfileParams: newIdentity()})
		s.Equal(models.StatusDraft, m.Status())
		s.Equal(0, m.CompletionPercentage())
		s.False(m.IsComplete())
		s.False(m.IsVerified())
		s.Nil(m.VerifiedAt())
		s.Equal(s.now, m.CreatedAt())
		s.Equal(s.now, m.UpdatedAt())
		s.Empty(m.PullDomainEvents())
	})

	s.Run("rejects nil identifiers", func() {
		_, err := models.NewMaidProfile(models.MaidProfileParams{}, s.now)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("rejects unknown status", func() {
		p := completeMaidParams()
		p.Status = "pending"
		_, err := models.NewMaidProfile(p, s.now)
		s.Require().Error(err)
		s.Contains(err.Error(), "invalid status")
	})

	s.Run("rejects zero work experience", func() {
		p := completeMaidParams()
		p.WorkExperience = []models.WorkExperience{{}}
		_, err := models.NewMaidProfile(p, s.now)
		s.Require().Error(err)
	})

	s.Run("computes completion from provided fields", func() {
		m := s.newMaid(completeMaidParams())
		s.Equal(100, m.CompletionPercentage())
		s.True(m.IsComplete())
	})
}

func (s *MaidProfileSuite) TestCompletionChecklist() {
	s.Run("each missing item costs a tenth", func() {
		p := completeMaidParams()
		p.Nationality = ""
		m := s.newMaid(p)
		s.Equal(90, m.CompletionPercentage())
		s.False(m.IsComplete())
	})

	s.Run("work experience and preferred countries are not counted", func() {
		p := completeMaidParams()
		p.PreferredCountries = []string{"SA", "AE"}
		m := s.newMaid(p)
		s.Equal(100, m.CompletionPercentage())
	})

	s.Run("recomputes after each mutator", func() {
		m := s.newMaid(models.MaidProfileParams{ProfileParams: newIdentity()})
		dob := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)
		s.Require().NoError(m.UpdateBasicInfo(models.MaidBasicInfo{
			FullName: "Almaz", DateOfBirth: &dob, Nationality: "ET", Phone: "+251912345678",
		}, s.now))
		s.Equal(40, m.CompletionPercentage())

		s.Require().NoError(m.UpdateProfilePhoto("https://cdn.example.com/p.jpg", s.now))
		s.Require().NoError(m.UpdateSkills([]string{"cooking"}, s.now))
		s.Require().NoError(m.UpdateLanguages([]string{"english"}, s.now))
		s.Equal(70, m.CompletionPercentage())

		s.Require().NoError(m.UploadDocument(models.MaidDocumentPassport, "https://x/p.pdf", s.now))
		s.Require().NoError(m.UploadDocument(models.MaidDocumentMedicalCertificate, "https://x/m.pdf", s.now))
		s.Require().NoError(m.UploadDocument(models.MaidDocumentPoliceClearance, "https://x/c.pdf", s.now))
		s.Equal(100, m.CompletionPercentage())
		s.Equal(m.CompletionPercentage() >= 100, m.IsComplete())

		s.Require().NoError(m.UpdateSkills([]string{}, s.now))
		s.Equal(90, m.CompletionPercentage())
	})
}

func (s *MaidProfileSuite) TestSubmitForReview() {
	s.Run("incomplete draft fails on completeness", func() {
		m := s.newMaid(models.MaidProfileParams{ProfileParams: newIdentity()})
		err := m.SubmitForReview(s.now)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
		s.Contains(err.Error(), "complete")
		s.Equal(models.StatusDraft, m.Status())
	})

	s.Run("complete non-draft fails on draft-only", func() {
		m := s.underReview()
		err := m.SubmitForReview(s.now)
		s.Require().Error(err)
		s.Contains(err.Error(), "draft")
	})

	s.Run("complete draft moves to under review", func() {
		m := s.newMaid(completeMaidParams())
		s.NoError(m.CanSubmitForReview())
		later := s.now.Add(time.Hour)
		s.Require().NoError(m.SubmitForReview(later))
		s.Equal(models.StatusUnderReview, m.Status())
		s.Equal(later, m.UpdatedAt())
		s.Equal([]models.EventType{models.EventMaidProfileSubmitted}, eventTypes(m.PullDomainEvents()))
	})
}

func (s *MaidProfileSuite) TestApprove() {
	s.Run("draft profile cannot be approved", func() {
		m := s.newMaid(completeMaidParams())
		err := m.Approve("admin-1", s.now)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
		s.False(m.IsVerified())
	})

	s.Run("under review profile becomes active and verified", func() {
		m := s.underReview()
		s.Require().NoError(m.Approve("admin-1", s.now))
		s.True(m.Status().IsActive())
		s.True(m.IsVerified())
		s.Require().NotNil(m.VerifiedAt())
		s.Equal(s.now, *m.VerifiedAt())

		events := m.PullDomainEvents()
		s.Require().Len(events, 1)
		s.Equal(models.MaidProfileApproved{ApprovedBy: "admin-1"}, events[0].Payload)
		s.Equal(m.ID(), events[0].AggregateID)
		s.Equal(models.ContextName, events[0].Context)
	})
}

func (s *MaidProfileSuite) TestReject() {
	s.Run("draft profile cannot be rejected", func() {
		m := s.newMaid(completeMaidParams())
		s.Error(m.Reject("blurry photo", "admin-1", s.now))
	})

	s.Run("under review profile is rejected and stays editable", func() {
		m := s.underReview()
		s.Require().NoError(m.Reject("blurry photo", "admin-1", s.now))
		s.Equal(models.StatusRejected, m.Status())
		s.True(m.Status().CanEdit())
		s.False(m.IsVerified())
		events := m.PullDomainEvents()
		s.Require().Len(events, 1)
		s.Equal(models.MaidProfileRejected{Reason: "blurry photo", RejectedBy: "admin-1"}, events[0].Payload)
	})
}

func (s *MaidProfileSuite) TestArchive() {
	p := completeMaidParams()
	agencyID := id.ProfileID(uuid.New())
	p.AgencyID = &agencyID
	m := s.newMaid(p)
	s.Require().NoError(m.Archive("left platform", s.now))
	s.Equal([]models.EventType{models.EventMaidProfileArchived}, eventTypes(m.PullDomainEvents()))

	err := m.Archive("again", s.now)
	s.Require().Error(err)
	s.Contains(err.Error(), "already archived")
	s.Empty(m.PullDomainEvents())

	s.Run("archived profile rejects mutators", func() {
		s.Error(m.UpdateBasicInfo(models.MaidBasicInfo{FullName: "x"}, s.now))
		s.Error(m.UpdateSkills([]string{"cooking"}, s.now))
		s.Error(m.UpdateLanguages([]string{"english"}, s.now))
		s.Error(m.UploadDocument(models.MaidDocumentPassport, "https://x", s.now))
		s.Error(m.UpdateProfilePhoto("https://x", s.now))
		s.Error(m.AssignAgency(id.ProfileID(uuid.New()), s.now))

		exp, err := models.NewWorkExperience(models.WorkExperienceInput{Country: "SA", JobTitle: "Cook", StartDate: "2021-01-01"})
		s.Require().NoError(err)
		err = m.AddWorkExperience(exp, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState), "add work experience: %v", err)

		err = m.ConfirmAgency(s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState), "confirm agency: %v", err)
		s.Contains(err.Error(), "archived")
		s.False(m.AgencyApproved())
		s.Empty(m.PullDomainEvents())
	})
}

func (s *MaidProfileSuite) TestUpdateSkills() {
	m := s.newMaid(models.MaidProfileParams{ProfileParams: newIdentity()})
	s.Require().NoError(m.UpdateSkills([]string{"cooking", "cooking", "cleaning"}, s.now))
	s.Equal([]string{"cooking", "cleaning"}, m.Skills())

	events := m.PullDomainEvents()
	s.Require().Len(events, 1)
	s.Equal(models.MaidSkillsUpdated{Skills: []string{"cooking", "cleaning"}}, events[0].Payload)

	err := m.UpdateSkills(nil, s.now)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *MaidProfileSuite) TestUpdateLanguagesEmitsNoEvent() {
	m := s.newMaid(models.MaidProfileParams{ProfileParams: newIdentity()})
	s.Require().NoError(m.UpdateLanguages([]string{"arabic", "english", "arabic"}, s.now))
	s.Equal([]string{"arabic", "english"}, m.Languages())
	s.Empty(m.PullDomainEvents())
	s.Error(m.UpdateLanguages(nil, s.now))
}

func (s *MaidProfileSuite) TestUpdateBasicInfoKeepsUnsetFields() {
	m := s.newMaid(completeMaidParams())
	s.Require().NoError(m.UpdateBasicInfo(models.MaidBasicInfo{Phone: "+251900000000"}, s.now))
	s.Equal("Almaz Tesfaye", m.FullName())
	s.Equal("+251900000000", m.Phone())

	events := m.PullDomainEvents()
	s.Require().Len(events, 1)
	s.Equal(models.MaidProfileUpdated{Fields: []string{"fullName", "dateOfBirth", "nationality", "phone"}}, events[0].Payload)
}

func (s *MaidProfileSuite) TestUploadDocument() {
	m := s.newMaid(models.MaidProfileParams{ProfileParams: newIdentity()})
	s.Require().NoError(m.UploadDocument(models.MaidDocumentMedicalCertificate, "https://x/m.pdf", s.now))
	s.Equal("https://x/m.pdf", m.MedicalCertificate())
	events := m.PullDomainEvents()
	s.Require().Len(events, 1)
	s.Equal(models.DocumentUploaded{DocumentType: "medicalCertificate", DocumentURL: "https://x/m.pdf"}, events[0].Payload)

	err := m.UploadDocument("visa", "https://x/v.pdf", s.now)
	s.Require().Error(err)
	s.Contains(err.Error(), "invalid document type")
}

func (s *MaidProfileSuite) TestAddWorkExperience() {
	m := s.newMaid(completeMaidParams())
	exp, err := models.NewWorkExperience(models.WorkExperienceInput{
		Country: "SA", JobTitle: "Housemaid", StartDate: "2020-01-01", EndDate: "2022-01-01",
	})
	s.Require().NoError(err)

	s.Require().NoError(m.AddWorkExperience(exp, s.now))
	s.Len(m.WorkExperience(), 1)
	s.Equal(100, m.CompletionPercentage())

	events := m.PullDomainEvents()
	s.Require().Len(events, 1)
	payload, ok := events[0].Payload.(models.WorkExperienceAdded)
	s.Require().True(ok)
	s.Equal(24, payload.Experience.DurationInMonths)

	s.Error(m.AddWorkExperience(models.WorkExperience{}, s.now))
}

func (s *MaidProfileSuite) TestAgencyLink() {
	m := s.newMaid(completeMaidParams())
	s.Require().Error(m.ConfirmAgency(s.now))

	agencyID := id.ProfileID(uuid.New())
	s.Require().NoError(m.AssignAgency(agencyID, s.now))
	s.Equal(agencyID, *m.AgencyID())
	s.False(m.AgencyApproved())

	s.Require().NoError(m.ConfirmAgency(s.now))
	s.True(m.AgencyApproved())
	s.Equal([]models.EventType{models.EventMaidAgencyAssigned, models.EventMaidAgencyApproved}, eventTypes(m.PullDomainEvents()))

	s.Error(m.AssignAgency(id.ProfileID{}, s.now))
}

func (s *MaidProfileSuite) TestPullDomainEventsDrains() {
	m := s.newMaid(completeMaidParams())
	s.Require().NoError(m.UpdateSkills([]string{"ironing"}, s.now))
	s.Require().NoError(m.SubmitForReview(s.now))

	first := m.PullDomainEvents()
	s.Equal([]models.EventType{models.EventMaidSkillsUpdated, models.EventMaidProfileSubmitted}, eventTypes(first))
	second := m.PullDomainEvents()
	s.NotNil(second)
	s.Empty(second)
}

func (s *MaidProfileSuite) TestSnapshotRehydration() {
	m := s.underReview()
	exp, err := models.NewWorkExperience(models.WorkExperienceInput{Country: "SA", JobTitle: "Cook", StartDate: "2021-01-01"})
	s.Require().NoError(err)
	s.Require().NoError(m.AddWorkExperience(exp, s.now))
	s.Require().NoError(m.AssignAgency(id.ProfileID(uuid.New()), s.now))

	raw, err := json.Marshal(m.Snapshot(s.now))
	s.Require().NoError(err)

	var snap models.MaidProfileSnapshot
	s.Require().NoError(json.Unmarshal(raw, &snap))
	params, err := snap.Params()
	s.Require().NoError(err)
	restored, err := models.NewMaidProfile(params, s.now.Add(time.Hour))
	s.Require().NoError(err)

	s.Equal(m.ID(), restored.ID())
	s.Equal(m.Status(), restored.Status())
	s.Equal(m.CompletionPercentage(), restored.CompletionPercentage())
	s.Equal(m.UpdatedAt(), restored.UpdatedAt())
	s.Equal(m.AgencyID(), restored.AgencyID())
	s.Require().Len(restored.WorkExperience(), 1)
	s.True(exp.Equals(restored.WorkExperience()[0]))
	s.Empty(restored.PullDomainEvents())
}
