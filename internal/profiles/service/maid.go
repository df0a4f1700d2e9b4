package service

import (
	"context"
	"time"

	"maidlink/internal/profiles/models"
	"maidlink/internal/profiles/policy"
	id "maidlink/pkg/domain"
	"maidlink/pkg/requestcontext"
)

// MaidService orchestrates the MaidProfile use cases.
type MaidService struct {
	lifecycle[*models.MaidProfile]
}

func NewMaidService(s Store[*models.MaidProfile], opts ...Option) *MaidService {
	return &MaidService{lifecycle: newLifecycle(models.KindMaid, s, opts)}
}

// Create opens a draft profile for userID. A user owns at most one maid profile.
func (s *MaidService) Create(ctx context.Context, userID id.UserID, info models.MaidBasicInfo) (*models.MaidProfile, error) {
	now := requestcontext.Now(ctx)
	if err := validateMaidBasicInfo(info, now); err != nil {
		return nil, err
	}
	base, err := newProfileParams(userID)
	if err != nil {
		return nil, err
	}
	maid, err := models.NewMaidProfile(models.MaidProfileParams{
		ProfileParams: base,
		FullName:      info.FullName,
		DateOfBirth:   info.DateOfBirth,
		Nationality:   info.Nationality,
		Phone:         info.Phone,
	}, now)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, maid)
}

func (s *MaidService) Get(ctx context.Context, profileID id.ProfileID) (*models.MaidProfile, error) {
	return s.get(ctx, profileID)
}

func (s *MaidService) GetByUser(ctx context.Context, userID id.UserID) (*models.MaidProfile, error) {
	return s.getByUser(ctx, userID)
}

// ListByStatus returns the review queue and other status views, oldest first.
func (s *MaidService) ListByStatus(ctx context.Context, status models.ProfileStatus) ([]*models.MaidProfile, error) {
	return s.list(ctx, status)
}

func (s *MaidService) Readiness(ctx context.Context, profileID id.ProfileID) (Readiness, error) {
	maid, err := s.get(ctx, profileID)
	if err != nil {
		return Readiness{}, err
	}
	r := readiness(maid.ID(), maid.Status(), maid.CompletionPercentage(), maid.CanSubmitForReview())
	hasExperience := policy.HasMinimumWorkExperience(maid.WorkExperience(), requestcontext.Now(ctx))
	r.HasMinimumWorkExperience = &hasExperience
	return r, nil
}

func (s *MaidService) UpdateBasicInfo(ctx context.Context, profileID id.ProfileID, info models.MaidBasicInfo) (*models.MaidProfile, error) {
	if err := validateMaidBasicInfo(info, requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	return s.mutate(ctx, "basic_info_updated", profileID, func(m *models.MaidProfile, now time.Time) error {
		return m.UpdateBasicInfo(info, now)
	})
}

func (s *MaidService) UpdateProfilePhoto(ctx context.Context, profileID id.ProfileID, url string) (*models.MaidProfile, error) {
	if err := validateDocumentURL(url); err != nil {
		return nil, err
	}
	return s.mutate(ctx, "photo_updated", profileID, func(m *models.MaidProfile, now time.Time) error {
		return m.UpdateProfilePhoto(url, now)
	})
}

func (s *MaidService) AddWorkExperience(ctx context.Context, profileID id.ProfileID, in models.WorkExperienceInput) (*models.MaidProfile, error) {
	exp, err := models.NewWorkExperience(in)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, "work_experience_added", profileID, func(m *models.MaidProfile, now time.Time) error {
		return m.AddWorkExperience(exp, now)
	})
}

func (s *MaidService) UpdateSkills(ctx context.Context, profileID id.ProfileID, skills []string) (*models.MaidProfile, error) {
	if err := validateSkills(skills); err != nil {
		return nil, err
	}
	return s.mutate(ctx, "skills_updated", profileID, func(m *models.MaidProfile, now time.Time) error {
		return m.UpdateSkills(skills, now)
	})
}

func (s *MaidService) UpdateLanguages(ctx context.Context, profileID id.ProfileID, languages []string) (*models.MaidProfile, error) {
	if err := validateLanguages(languages); err != nil {
		return nil, err
	}
	return s.mutate(ctx, "languages_updated", profileID, func(m *models.MaidProfile, now time.Time) error {
		return m.UpdateLanguages(languages, now)
	})
}

func (s *MaidService) UploadDocument(ctx context.Context, profileID id.ProfileID, docType models.MaidDocumentType, url string) (*models.MaidProfile, error) {
	if err := validateDocumentURL(url); err != nil {
		return nil, err
	}
	return s.mutate(ctx, "document_uploaded", profileID, func(m *models.MaidProfile, now time.Time) error {
		return m.UploadDocument(docType, url, now)
	})
}

func (s *MaidService) AssignAgency(ctx context.Context, profileID, agencyID id.ProfileID) (*models.MaidProfile, error) {
	return s.mutate(ctx, "agency_assigned", profileID, func(m *models.MaidProfile, now time.Time) error {
		return m.AssignAgency(agencyID, now)
	})
}

func (s *MaidService) ConfirmAgency(ctx context.Context, profileID id.ProfileID) (*models.MaidProfile, error) {
	return s.mutate(ctx, "agency_confirmed", profileID, func(m *models.MaidProfile, now time.Time) error {
		return m.ConfirmAgency(now)
	})
}

func (s *MaidService) Submit(ctx context.Context, profileID id.ProfileID) (*models.MaidProfile, error) {
	return s.mutate(ctx, "submitted", profileID, func(m *models.MaidProfile, now time.Time) error {
		return m.SubmitForReview(now)
	})
}

func (s *MaidService) Approve(ctx context.Context, profileID id.ProfileID, approvedBy string) (*models.MaidProfile, error) {
	return s.mutate(ctx, "approved", profileID, func(m *models.MaidProfile, now time.Time) error {
		return m.Approve(approvedBy, now)
	})
}

func (s *MaidService) Reject(ctx context.Context, profileID id.ProfileID, reason, rejectedBy string) (*models.MaidProfile, error) {
	return s.mutate(ctx, "rejected", profileID, func(m *models.MaidProfile, now time.Time) error {
		return m.Reject(reason, rejectedBy, now)
	})
}

func (s *MaidService) Archive(ctx context.Context, profileID id.ProfileID, reason string) (*models.MaidProfile, error) {
	return s.mutate(ctx, "archived", profileID, func(m *models.MaidProfile, now time.Time) error {
		return m.Archive(reason, now)
	})
}

func validateMaidBasicInfo(info models.MaidBasicInfo, today time.Time) error {
	return firstError(
		validatePhone(info.Phone),
		validateCountry("nationality", info.Nationality),
		validateMaidAge(info.DateOfBirth, today),
	)
}
