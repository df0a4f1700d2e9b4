package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"maidlink/internal/profiles/models"
	id "maidlink/pkg/domain"
	dErrors "maidlink/pkg/domain-errors"
	"maidlink/pkg/platform/httputil"
	"maidlink/pkg/requestcontext"
)

func (h *Handler) agencyRoutes(r chi.Router) {
	res := resource[*models.AgencyProfile]{h: h, get: h.agencies.Get, render: renderAgency}

	r.Post("/", h.handleCreateAgency)
	r.Get("/me", h.handleMyAgency)
	r.With(h.reviewerOnly()).Get("/", h.handleListAgencies)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", res.read(nil))
		r.Get("/readiness", res.read(func(r *http.Request, profileID id.ProfileID) (any, error) {
			return h.agencies.Readiness(r.Context(), profileID)
		}))
		r.Put("/basic-info", res.owner(func(r *http.Request, profileID id.ProfileID) (*models.AgencyProfile, error) {
			var req AgencyBasicInfoRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				return nil, err
			}
			return h.agencies.UpdateBasicInfo(r.Context(), profileID, req.toModel())
		}))
		r.Put("/license", res.owner(func(r *http.Request, profileID id.ProfileID) (*models.AgencyProfile, error) {
			var req LicenseRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				return nil, err
			}
			info, err := req.toModel()
			if err != nil {
				return nil, err
			}
			return h.agencies.UpdateLicenseInfo(r.Context(), profileID, info)
		}))
		r.Put("/services", res.owner(func(r *http.Request, profileID id.ProfileID) (*models.AgencyProfile, error) {
			var req ServicesRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				return nil, err
			}
			return h.agencies.UpdateServices(r.Context(), profileID, req.toModel())
		}))
		r.Put("/documents/{type}", res.owner(func(r *http.Request, profileID id.ProfileID) (*models.AgencyProfile, error) {
			var req URLRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				return nil, err
			}
			docType := models.AgencyDocumentType(chi.URLParam(r, "type"))
			return h.agencies.UploadDocument(r.Context(), profileID, docType, req.URL)
		}))
		r.Post("/maids", res.owner(func(r *http.Request, profileID id.ProfileID) (*models.AgencyProfile, error) {
			var req AddMaidRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				return nil, err
			}
			maidID, err := id.ParseProfileID(req.MaidID)
			if err != nil {
				return nil, err
			}
			return h.agencies.AddMaid(r.Context(), profileID, maidID)
		}))
		r.Delete("/maids/{maidID}", res.owner(func(r *http.Request, profileID id.ProfileID) (*models.AgencyProfile, error) {
			maidID, err := profileIDParam(r, "maidID")
			if err != nil {
				return nil, err
			}
			return h.agencies.RemoveMaid(r.Context(), profileID, maidID)
		}))
		r.Post("/placements", res.owner(func(r *http.Request, profileID id.ProfileID) (*models.AgencyProfile, error) {
			return h.agencies.RecordPlacement(r.Context(), profileID)
		}))
		r.Post("/submit", res.owner(func(r *http.Request, profileID id.ProfileID) (*models.AgencyProfile, error) {
			return h.agencies.Submit(r.Context(), profileID)
		}))
		r.Post("/archive", res.owner(func(r *http.Request, profileID id.ProfileID) (*models.AgencyProfile, error) {
			var req ArchiveRequest
			if err := decodeOptional(r, &req); err != nil {
				return nil, err
			}
			return h.agencies.Archive(r.Context(), profileID, req.Reason)
		}))

		// Any authenticated user other than the agency itself may leave a review.
		r.Post("/reviews", h.handleAddAgencyReview)

		r.Group(func(r chi.Router) {
			r.Use(h.reviewerOnly())
			r.Post("/verify", res.review(func(r *http.Request, profileID id.ProfileID) (*models.AgencyProfile, error) {
				return h.agencies.Verify(r.Context(), profileID, reviewer(r.Context()))
			}))
			r.Post("/reject", res.review(func(r *http.Request, profileID id.ProfileID) (*models.AgencyProfile, error) {
				var req RejectRequest
				if err := httputil.DecodeJSON(r, &req); err != nil {
					return nil, err
				}
				if err := req.validate(); err != nil {
					return nil, err
				}
				return h.agencies.Reject(r.Context(), profileID, req.Reason, reviewer(r.Context()))
			}))
		})
	})
}

func (h *Handler) handleCreateAgency(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req AgencyBasicInfoRequest
	if err := decodeOptional(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	agency, err := h.agencies.Create(ctx, requestcontext.UserID(ctx), req.toModel())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toAgencyResponse(ctx, agency))
}

func (h *Handler) handleMyAgency(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	agency, err := h.agencies.GetByUser(ctx, requestcontext.UserID(ctx))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAgencyResponse(ctx, agency))
}

func (h *Handler) handleListAgencies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status, err := statusQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	agencies, err := h.agencies.ListByStatus(ctx, status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse(ctx, status, agencies, toAgencyResponse))
}

func (h *Handler) handleAddAgencyReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	profileID, err := profileIDParam(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req ReviewRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Rating == nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeInvalidInput, "rating is required"))
		return
	}
	agency, err := h.agencies.Get(ctx, profileID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if agency.UserID() == requestcontext.UserID(ctx) {
		h.writeError(w, r, dErrors.New(dErrors.CodeForbidden, "agencies cannot review themselves"))
		return
	}
	agency, err = h.agencies.AddReview(ctx, profileID, *req.Rating)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAgencyResponse(ctx, agency))
}
