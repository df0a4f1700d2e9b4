package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"maidlink/internal/profiles/models"
	id "maidlink/pkg/domain"
	"maidlink/pkg/platform/httputil"
	"maidlink/pkg/requestcontext"
)

func (h *Handler) sponsorRoutes(r chi.Router) {
	res := resource[*models.SponsorProfile]{h: h, get: h.sponsors.Get, render: renderSponsor}

	r.Post("/", h.handleCreateSponsor)
	r.Get("/me", h.handleMySponsor)
	r.With(h.reviewerOnly()).Get("/", h.handleListSponsors)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", res.read(nil))
		r.Get("/readiness", res.read(func(r *http.Request, profileID id.ProfileID) (any, error) {
			return h.sponsors.Readiness(r.Context(), profileID)
		}))
		r.Put("/basic-info", res.owner(func(r *http.Request, profileID id.ProfileID) (*models.SponsorProfile, error) {
			var req SponsorBasicInfoRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				return nil, err
			}
			return h.sponsors.UpdateBasicInfo(r.Context(), profileID, req.toModel())
		}))
		r.Put("/household", res.owner(func(r *http.Request, profileID id.ProfileID) (*models.SponsorProfile, error) {
			var req HouseholdRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				return nil, err
			}
			return h.sponsors.UpdateHouseholdInfo(r.Context(), profileID, req.toModel())
		}))
		r.Put("/preferences", res.owner(func(r *http.Request, profileID id.ProfileID) (*models.SponsorProfile, error) {
			var req PreferencesRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				return nil, err
			}
			return h.sponsors.UpdatePreferences(r.Context(), profileID, req.toModel())
		}))
		r.Put("/documents/{type}", res.owner(func(r *http.Request, profileID id.ProfileID) (*models.SponsorProfile, error) {
			var req URLRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				return nil, err
			}
			docType := models.SponsorDocumentType(chi.URLParam(r, "type"))
			return h.sponsors.UploadDocument(r.Context(), profileID, docType, req.URL)
		}))
		r.Post("/submit", res.owner(func(r *http.Request, profileID id.ProfileID) (*models.SponsorProfile, error) {
			return h.sponsors.Submit(r.Context(), profileID)
		}))
		r.Post("/archive", res.owner(func(r *http.Request, profileID id.ProfileID) (*models.SponsorProfile, error) {
			var req ArchiveRequest
			if err := decodeOptional(r, &req); err != nil {
				return nil, err
			}
			return h.sponsors.Archive(r.Context(), profileID, req.Reason)
		}))

		r.Group(func(r chi.Router) {
			r.Use(h.reviewerOnly())
			r.Post("/verify", res.review(func(r *http.Request, profileID id.ProfileID) (*models.SponsorProfile, error) {
				return h.sponsors.Verify(r.Context(), profileID, reviewer(r.Context()))
			}))
			r.Post("/reject", res.review(func(r *http.Request, profileID id.ProfileID) (*models.SponsorProfile, error) {
				var req RejectRequest
				if err := httputil.DecodeJSON(r, &req); err != nil {
					return nil, err
				}
				if err := req.validate(); err != nil {
					return nil, err
				}
				return h.sponsors.Reject(r.Context(), profileID, req.Reason, reviewer(r.Context()))
			}))
		})
	})
}

func (h *Handler) handleCreateSponsor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req SponsorBasicInfoRequest
	if err := decodeOptional(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	sponsor, err := h.sponsors.Create(ctx, requestcontext.UserID(ctx), req.toModel())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toSponsorResponse(ctx, sponsor))
}

func (h *Handler) handleMySponsor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sponsor, err := h.sponsors.GetByUser(ctx, requestcontext.UserID(ctx))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toSponsorResponse(ctx, sponsor))
}

func (h *Handler) handleListSponsors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status, err := statusQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	sponsors, err := h.sponsors.ListByStatus(ctx, status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse(ctx, status, sponsors, toSponsorResponse))
}
