package service

import (
	"context"
	"time"

	"maidlink/internal/profiles/models"
	id "maidlink/pkg/domain"
	"maidlink/pkg/requestcontext"
)

// AgencyService orchestrates the AgencyProfile use cases.
type AgencyService struct {
	lifecycle[*models.AgencyProfile]
}

func NewAgencyService(s Store[*models.AgencyProfile], opts ...Option) *AgencyService {
	return &AgencyService{lifecycle: newLifecycle(models.KindAgency, s, opts)}
}

func (s *AgencyService) Create(ctx context.Context, userID id.UserID, info models.AgencyBasicInfo) (*models.AgencyProfile, error) {
	if err := validateAgencyBasicInfo(info); err != nil {
		return nil, err
	}
	base, err := newProfileParams(userID)
	if err != nil {
		return nil, err
	}
	agency, err := models.NewAgencyProfile(models.AgencyProfileParams{
		ProfileParams:   base,
		AgencyName:      info.AgencyName,
		Phone:           info.Phone,
		Email:           info.Email,
		Website:         info.Website,
		Country:         info.Country,
		City:            info.City,
		Address:         info.Address,
		YearEstablished: info.YearEstablished,
	}, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	return s.create(ctx, agency)
}

func (s *AgencyService) Get(ctx context.Context, profileID id.ProfileID) (*models.AgencyProfile, error) {
	return s.get(ctx, profileID)
}

func (s *AgencyService) GetByUser(ctx context.Context, userID id.UserID) (*models.AgencyProfile, error) {
	return s.getByUser(ctx, userID)
}

func (s *AgencyService) ListByStatus(ctx context.Context, status models.ProfileStatus) ([]*models.AgencyProfile, error) {
	return s.list(ctx, status)
}

func (s *AgencyService) Readiness(ctx context.Context, profileID id.ProfileID) (Readiness, error) {
	agency, err := s.get(ctx, profileID)
	if err != nil {
		return Readiness{}, err
	}
	return readiness(agency.ID(), agency.Status(), agency.CompletionPercentage(), agency.CanSubmitForVerification()), nil
}

func (s *AgencyService) UpdateBasicInfo(ctx context.Context, profileID id.ProfileID, info models.AgencyBasicInfo) (*models.AgencyProfile, error) {
	if err := validateAgencyBasicInfo(info); err != nil {
		return nil, err
	}
	return s.mutate(ctx, "basic_info_updated", profileID, func(a *models.AgencyProfile, now time.Time) error {
		return a.UpdateBasicInfo(info, now)
	})
}

func (s *AgencyService) UpdateLicenseInfo(ctx context.Context, profileID id.ProfileID, info models.AgencyLicenseInfo) (*models.AgencyProfile, error) {
	return s.mutate(ctx, "license_updated", profileID, func(a *models.AgencyProfile, now time.Time) error {
		return a.UpdateLicenseInfo(info, now)
	})
}

func (s *AgencyService) UpdateServices(ctx context.Context, profileID id.ProfileID, services models.AgencyServices) (*models.AgencyProfile, error) {
	if services.OperatingCountries != nil {
		if err := validateCountries("operating countries", *services.OperatingCountries); err != nil {
			return nil, err
		}
	}
	return s.mutate(ctx, "services_updated", profileID, func(a *models.AgencyProfile, now time.Time) error {
		return a.UpdateServices(services, now)
	})
}

func (s *AgencyService) UploadDocument(ctx context.Context, profileID id.ProfileID, docType models.AgencyDocumentType, url string) (*models.AgencyProfile, error) {
	if err := validateDocumentURL(url); err != nil {
		return nil, err
	}
	return s.mutate(ctx, "document_uploaded", profileID, func(a *models.AgencyProfile, now time.Time) error {
		return a.UploadDocument(docType, url, now)
	})
}

func (s *AgencyService) AddMaid(ctx context.Context, profileID, maidID id.ProfileID) (*models.AgencyProfile, error) {
	return s.mutate(ctx, "maid_added", profileID, func(a *models.AgencyProfile, now time.Time) error {
		return a.AddMaid(maidID, now)
	})
}

func (s *AgencyService) RemoveMaid(ctx context.Context, profileID, maidID id.ProfileID) (*models.AgencyProfile, error) {
	return s.mutate(ctx, "maid_removed", profileID, func(a *models.AgencyProfile, now time.Time) error {
		return a.RemoveMaid(maidID, now)
	})
}

func (s *AgencyService) RecordPlacement(ctx context.Context, profileID id.ProfileID) (*models.AgencyProfile, error) {
	return s.mutate(ctx, "placement_recorded", profileID, func(a *models.AgencyProfile, now time.Time) error {
		return a.RecordPlacement(now)
	})
}

// AddReview folds a new rating into the agency's running average.
func (s *AgencyService) AddReview(ctx context.Context, profileID id.ProfileID, rating float64) (*models.AgencyProfile, error) {
	return s.mutate(ctx, "rating_updated", profileID, func(a *models.AgencyProfile, now time.Time) error {
		return a.UpdateRating(rating, now)
	})
}

func (s *AgencyService) Submit(ctx context.Context, profileID id.ProfileID) (*models.AgencyProfile, error) {
	return s.mutate(ctx, "submitted", profileID, func(a *models.AgencyProfile, now time.Time) error {
		return a.SubmitForVerification(now)
	})
}

func (s *AgencyService) Verify(ctx context.Context, profileID id.ProfileID, verifiedBy string) (*models.AgencyProfile, error) {
	return s.mutate(ctx, "verified", profileID, func(a *models.AgencyProfile, now time.Time) error {
		return a.Verify(verifiedBy, now)
	})
}

func (s *AgencyService) Reject(ctx context.Context, profileID id.ProfileID, reason, rejectedBy string) (*models.AgencyProfile, error) {
	return s.mutate(ctx, "rejected", profileID, func(a *models.AgencyProfile, now time.Time) error {
		return a.Reject(reason, rejectedBy, now)
	})
}

func (s *AgencyService) Archive(ctx context.Context, profileID id.ProfileID, reason string) (*models.AgencyProfile, error) {
	return s.mutate(ctx, "archived", profileID, func(a *models.AgencyProfile, now time.Time) error {
		return a.Archive(reason, now)
	})
}

func validateAgencyBasicInfo(info models.AgencyBasicInfo) error {
	return firstError(
		validatePhone(info.Phone),
		validateCountry("country", info.Country),
	)
}
