package service

import (
	"context"
	"time"

	"maidlink/internal/profiles/models"
	id "maidlink/pkg/domain"
	"maidlink/pkg/requestcontext"
)

// SponsorService orchestrates the SponsorProfile use cases.
type SponsorService struct {
	lifecycle[*models.SponsorProfile]
}

func NewSponsorService(s Store[*models.SponsorProfile], opts ...Option) *SponsorService {
	return &SponsorService{lifecycle: newLifecycle(models.KindSponsor, s, opts)}
}

func (s *SponsorService) Create(ctx context.Context, userID id.UserID, info models.SponsorBasicInfo) (*models.SponsorProfile, error) {
	if err := validateSponsorBasicInfo(info); err != nil {
		return nil, err
	}
	base, err := newProfileParams(userID)
	if err != nil {
		return nil, err
	}
	sponsor, err := models.NewSponsorProfile(models.SponsorProfileParams{
		ProfileParams: base,
		FullName:      info.FullName,
		Phone:         info.Phone,
		Country:       info.Country,
		City:          info.City,
		Address:       info.Address,
	}, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	return s.create(ctx, sponsor)
}

func (s *SponsorService) Get(ctx context.Context, profileID id.ProfileID) (*models.SponsorProfile, error) {
	return s.get(ctx, profileID)
}

func (s *SponsorService) GetByUser(ctx context.Context, userID id.UserID) (*models.SponsorProfile, error) {
	return s.getByUser(ctx, userID)
}

func (s *SponsorService) ListByStatus(ctx context.Context, status models.ProfileStatus) ([]*models.SponsorProfile, error) {
	return s.list(ctx, status)
}

func (s *SponsorService) Readiness(ctx context.Context, profileID id.ProfileID) (Readiness, error) {
	sponsor, err := s.get(ctx, profileID)
	if err != nil {
		return Readiness{}, err
	}
	return readiness(sponsor.ID(), sponsor.Status(), sponsor.CompletionPercentage(), sponsor.CanSubmitForVerification()), nil
}

func (s *SponsorService) UpdateBasicInfo(ctx context.Context, profileID id.ProfileID, info models.SponsorBasicInfo) (*models.SponsorProfile, error) {
	if err := validateSponsorBasicInfo(info); err != nil {
		return nil, err
	}
	return s.mutate(ctx, "basic_info_updated", profileID, func(sp *models.SponsorProfile, now time.Time) error {
		return sp.UpdateBasicInfo(info, now)
	})
}

func (s *SponsorService) UpdateHouseholdInfo(ctx context.Context, profileID id.ProfileID, info models.SponsorHouseholdInfo) (*models.SponsorProfile, error) {
	if err := validateHouseholdSize(info.HouseholdSize); err != nil {
		return nil, err
	}
	return s.mutate(ctx, "household_updated", profileID, func(sp *models.SponsorProfile, now time.Time) error {
		return sp.UpdateHouseholdInfo(info, now)
	})
}

func (s *SponsorService) UpdatePreferences(ctx context.Context, profileID id.ProfileID, prefs models.SponsorPreferences) (*models.SponsorProfile, error) {
	var errs []error
	if prefs.PreferredLanguages != nil && len(*prefs.PreferredLanguages) > 0 {
		errs = append(errs, validateLanguages(*prefs.PreferredLanguages))
	}
	if prefs.PreferredSkills != nil && len(*prefs.PreferredSkills) > 0 {
		errs = append(errs, validateSkills(*prefs.PreferredSkills))
	}
	if err := firstError(errs...); err != nil {
		return nil, err
	}
	return s.mutate(ctx, "preferences_updated", profileID, func(sp *models.SponsorProfile, now time.Time) error {
		return sp.UpdatePreferences(prefs, now)
	})
}

func (s *SponsorService) UploadDocument(ctx context.Context, profileID id.ProfileID, docType models.SponsorDocumentType, url string) (*models.SponsorProfile, error) {
	if err := validateDocumentURL(url); err != nil {
		return nil, err
	}
	return s.mutate(ctx, "document_uploaded", profileID, func(sp *models.SponsorProfile, now time.Time) error {
		return sp.UploadDocument(docType, url, now)
	})
}

func (s *SponsorService) Submit(ctx context.Context, profileID id.ProfileID) (*models.SponsorProfile, error) {
	return s.mutate(ctx, "submitted", profileID, func(sp *models.SponsorProfile, now time.Time) error {
		return sp.SubmitForVerification(now)
	})
}

func (s *SponsorService) Verify(ctx context.Context, profileID id.ProfileID, verifiedBy string) (*models.SponsorProfile, error) {
	return s.mutate(ctx, "verified", profileID, func(sp *models.SponsorProfile, now time.Time) error {
		return sp.Verify(verifiedBy, now)
	})
}

func (s *SponsorService) Reject(ctx context.Context, profileID id.ProfileID, reason, rejectedBy string) (*models.SponsorProfile, error) {
	return s.mutate(ctx, "rejected", profileID, func(sp *models.SponsorProfile, now time.Time) error {
		return sp.Reject(reason, rejectedBy, now)
	})
}

func (s *SponsorService) Archive(ctx context.Context, profileID id.ProfileID, reason string) (*models.SponsorProfile, error) {
	return s.mutate(ctx, "archived", profileID, func(sp *models.SponsorProfile, now time.Time) error {
		return sp.Archive(reason, now)
	})
}

func validateSponsorBasicInfo(info models.SponsorBasicInfo) error {
	return firstError(
		validatePhone(info.Phone),
		validateCountry("country", info.Country),
	)
}
