package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"maidlink/internal/profiles/models"
	"maidlink/internal/profiles/service"
	id "maidlink/pkg/domain"
	dErrors "maidlink/pkg/domain-errors"
	"maidlink/pkg/platform/httputil"
	"maidlink/pkg/platform/middleware/admin"
	"maidlink/pkg/platform/middleware/auth"
	"maidlink/pkg/requestcontext"
)

type MaidService interface {
	Create(ctx context.Context, userID id.UserID, info models.MaidBasicInfo) (*models.MaidProfile, error)
	Get(ctx context.Context, profileID id.ProfileID) (*models.MaidProfile, error)
	GetByUser(ctx context.Context, userID id.UserID) (*models.MaidProfile, error)
	ListByStatus(ctx context.Context, status models.ProfileStatus) ([]*models.MaidProfile, error)
	Readiness(ctx context.Context, profileID id.ProfileID) (service.Readiness, error)
	UpdateBasicInfo(ctx context.Context, profileID id.ProfileID, info models.MaidBasicInfo) (*models.MaidProfile, error)
	UpdateProfilePhoto(ctx context.Context, profileID id.ProfileID, url string) (*models.MaidProfile, error)
	AddWorkExperience(ctx context.Context, profileID id.ProfileID, in models.WorkExperienceInput) (*models.MaidProfile, error)
	UpdateSkills(ctx context.Context, profileID id.ProfileID, skills []string) (*models.MaidProfile, error)
	UpdateLanguages(ctx context.Context, profileID id.ProfileID, languages []string) (*models.MaidProfile, error)
	UploadDocument(ctx context.Context, profileID id.ProfileID, docType models.MaidDocumentType, url string) (*models.MaidProfile, error)
	AssignAgency(ctx context.Context, profileID, agencyID id.ProfileID) (*models.MaidProfile, error)
	ConfirmAgency(ctx context.Context, profileID id.ProfileID) (*models.MaidProfile, error)
	Submit(ctx context.Context, profileID id.ProfileID) (*models.MaidProfile, error)
	Approve(ctx context.Context, profileID id.ProfileID, approvedBy string) (*models.MaidProfile, error)
	Reject(ctx context.Context, profileID id.ProfileID, reason, rejectedBy string) (*models.MaidProfile, error)
	Archive(ctx context.Context, profileID id.ProfileID, reason string) (*models.MaidProfile, error)
}

type SponsorService interface {
	Create(ctx context.Context, userID id.UserID, info models.SponsorBasicInfo) (*models.SponsorProfile, error)
	Get(ctx context.Context, profileID id.ProfileID) (*models.SponsorProfile, error)
	GetByUser(ctx context.Context, userID id.UserID) (*models.SponsorProfile, error)
	ListByStatus(ctx context.Context, status models.ProfileStatus) ([]*models.SponsorProfile, error)
	Readiness(ctx context.Context, profileID id.ProfileID) (service.Readiness, error)
	UpdateBasicInfo(ctx context.Context, profileID id.ProfileID, info models.SponsorBasicInfo) (*models.SponsorProfile, error)
	UpdateHouseholdInfo(ctx context.Context, profileID id.ProfileID, info models.SponsorHouseholdInfo) (*models.SponsorProfile, error)
	UpdatePreferences(ctx context.Context, profileID id.ProfileID, prefs models.SponsorPreferences) (*models.SponsorProfile, error)
	UploadDocument(ctx context.Context, profileID id.ProfileID, docType models.SponsorDocumentType, url string) (*models.SponsorProfile, error)
	Submit(ctx context.Context, profileID id.ProfileID) (*models.SponsorProfile, error)
	Verify(ctx context.Context, profileID id.ProfileID, verifiedBy string) (*models.SponsorProfile, error)
	Reject(ctx context.Context, profileID id.ProfileID, reason, rejectedBy string) (*models.SponsorProfile, error)
	Archive(ctx context.Context, profileID id.ProfileID, reason string) (*models.SponsorProfile, error)
}

type AgencyService interface {
	Create(ctx context.Context, userID id.UserID, info models.AgencyBasicInfo) (*models.AgencyProfile, error)
	Get(ctx context.Context, profileID id.ProfileID) (*models.AgencyProfile, error)
	GetByUser(ctx context.Context, userID id.UserID) (*models.AgencyProfile, error)
	ListByStatus(ctx context.Context, status models.ProfileStatus) ([]*models.AgencyProfile, error)
	Readiness(ctx context.Context, profileID id.ProfileID) (service.Readiness, error)
	UpdateBasicInfo(ctx context.Context, profileID id.ProfileID, info models.AgencyBasicInfo) (*models.AgencyProfile, error)
	UpdateLicenseInfo(ctx context.Context, profileID id.ProfileID, info models.AgencyLicenseInfo) (*models.AgencyProfile, error)
	UpdateServices(ctx context.Context, profileID id.ProfileID, services models.AgencyServices) (*models.AgencyProfile, error)
	UploadDocument(ctx context.Context, profileID id.ProfileID, docType models.AgencyDocumentType, url string) (*models.AgencyProfile, error)
	AddMaid(ctx context.Context, profileID, maidID id.ProfileID) (*models.AgencyProfile, error)
	RemoveMaid(ctx context.Context, profileID, maidID id.ProfileID) (*models.AgencyProfile, error)
	RecordPlacement(ctx context.Context, profileID id.ProfileID) (*models.AgencyProfile, error)
	AddReview(ctx context.Context, profileID id.ProfileID, rating float64) (*models.AgencyProfile, error)
	Submit(ctx context.Context, profileID id.ProfileID) (*models.AgencyProfile, error)
	Verify(ctx context.Context, profileID id.ProfileID, verifiedBy string) (*models.AgencyProfile, error)
	Reject(ctx context.Context, profileID id.ProfileID, reason, rejectedBy string) (*models.AgencyProfile, error)
	Archive(ctx context.Context, profileID id.ProfileID, reason string) (*models.AgencyProfile, error)
}

// Handler serves the profile endpoints for maids, sponsors and agencies.
type Handler struct {
	maids        MaidService
	sponsors     SponsorService
	agencies     AgencyService
	jwtValidator auth.JWTValidator
	logger       *slog.Logger
}

func New(maids MaidService, sponsors SponsorService, agencies AgencyService, jwtValidator auth.JWTValidator, logger *slog.Logger) *Handler {
	return &Handler{
		maids:        maids,
		sponsors:     sponsors,
		agencies:     agencies,
		jwtValidator: jwtValidator,
		logger:       logger,
	}
}

// Register mounts every profile route behind bearer authentication.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(h.jwtValidator, h.logger))
		r.Get("/profiles/statuses/{status}/transitions", h.handleTransitions)
		r.Route("/maids", h.maidRoutes)
		r.Route("/sponsors", h.sponsorRoutes)
		r.Route("/agencies", h.agencyRoutes)
	})
}

func (h *Handler) reviewerOnly() func(http.Handler) http.Handler {
	return admin.RequireReviewer(h.logger)
}

type transitionsResponse struct {
	Status              models.ProfileStatus   `json:"status"`
	Label               string                 `json:"label"`
	AllowedNextStatuses []models.ProfileStatus `json:"allowedNextStatuses"`
}

func (h *Handler) handleTransitions(w http.ResponseWriter, r *http.Request) {
	status, err := models.ParseProfileStatus(chi.URLParam(r, "status"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, transitionsResponse{
		Status:              status,
		Label:               status.Label(),
		AllowedNextStatuses: models.AllowedNextStatuses(status),
	})
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(r.Context(), "profile request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestcontext.RequestID(r.Context()),
		)
	}
	httputil.WriteError(w, err)
}

// owned is satisfied by every profile aggregate.
type owned interface {
	UserID() id.UserID
}

// resource binds the generic route plumbing to one aggregate kind.
type resource[T owned] struct {
	h      *Handler
	get    func(context.Context, id.ProfileID) (T, error)
	render func(context.Context, T) any
}

type action[T any] func(r *http.Request, profileID id.ProfileID) (T, error)

// read serves a profile to its owner or to reviewers.
func (res resource[T]) read(fn action[any]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, agg, ok := res.load(w, r, true)
		if !ok {
			return
		}
		if fn == nil {
			httputil.WriteJSON(w, http.StatusOK, res.render(r.Context(), agg))
			return
		}
		out, err := fn(r, profileID)
		if err != nil {
			res.h.writeError(w, r, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, out)
	}
}

// owner runs fn for the profile's owner (or an admin).
func (res resource[T]) owner(fn action[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, _, ok := res.load(w, r, false)
		if !ok {
			return
		}
		res.apply(w, r, profileID, fn)
	}
}

// review runs fn for reviewers; the route must sit behind reviewerOnly.
func (res resource[T]) review(fn action[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, err := profileIDParam(r, "id")
		if err != nil {
			res.h.writeError(w, r, err)
			return
		}
		res.apply(w, r, profileID, fn)
	}
}

func (res resource[T]) apply(w http.ResponseWriter, r *http.Request, profileID id.ProfileID, fn action[T]) {
	agg, err := fn(r, profileID)
	if err != nil {
		res.h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res.render(r.Context(), agg))
}

func (res resource[T]) load(w http.ResponseWriter, r *http.Request, reviewersMayRead bool) (id.ProfileID, T, bool) {
	var zero T
	profileID, err := profileIDParam(r, "id")
	if err != nil {
		res.h.writeError(w, r, err)
		return profileID, zero, false
	}
	agg, err := res.get(r.Context(), profileID)
	if err != nil {
		res.h.writeError(w, r, err)
		return profileID, zero, false
	}
	if err := authorize(r.Context(), agg.UserID(), reviewersMayRead); err != nil {
		res.h.writeError(w, r, err)
		return profileID, zero, false
	}
	return profileID, agg, true
}

func authorize(ctx context.Context, owner id.UserID, reviewersAllowed bool) error {
	role := requestcontext.CallerRole(ctx)
	if role == requestcontext.RoleAdmin || (reviewersAllowed && role.CanReview()) {
		return nil
	}
	if requestcontext.UserID(ctx) != owner {
		return dErrors.New(dErrors.CodeForbidden, "profile belongs to another user")
	}
	return nil
}

func profileIDParam(r *http.Request, name string) (id.ProfileID, error) {
	profileID, err := id.ParseProfileID(chi.URLParam(r, name))
	if err != nil {
		return id.ProfileID{}, dErrors.New(dErrors.CodeBadRequest, "invalid "+name+" path parameter")
	}
	return profileID, nil
}

func statusQuery(r *http.Request) (models.ProfileStatus, error) {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		return models.StatusUnderReview, nil
	}
	return models.ParseProfileStatus(raw)
}

func reviewer(ctx context.Context) string {
	return requestcontext.UserID(ctx).String()
}
