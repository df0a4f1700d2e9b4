package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"maidlink/internal/profiles/models"
	id "maidlink/pkg/domain"
	"maidlink/pkg/platform/httputil"
	"maidlink/pkg/requestcontext"
)

func (h *Handler) maidRoutes(r chi.Router) {
	res := resource[*models.MaidProfile]{h: h, get: h.maids.Get, render: renderMaid}

	r.Post("/", h.handleCreateMaid)
	r.Get("/me", h.handleMyMaid)
	r.With(h.reviewerOnly()).Get("/", h.handleListMaids)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", res.read(nil))
		r.Get("/readiness", res.read(func(r *http.Request, profileID id.ProfileID) (any, error) {
			return h.maids.Readiness(r.Context(), profileID)
		}))
		r.Put("/basic-info", res.owner(func(r *http.Request, profileID id.ProfileID) (*models.MaidProfile, error) {
			var req MaidBasicInfoRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				return nil, err
			}
			info, err := req.toModel()
			if err != nil {
				return nil, err
			}
			return h.maids.UpdateBasicInfo(r.Context(), profileID, info)
		}))
		r.Put("/photo", res.owner(func(r *http.Request, profileID id.ProfileID) (*models.MaidProfile, error) {
			var req URLRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				return nil, err
			}
			return h.maids.UpdateProfilePhoto(r.Context(), profileID, req.URL)
		}))
		r.Post("/work-experience", res.owner(func(r *http.Request, profileID id.ProfileID) (*models.MaidProfile, error) {
			var req WorkExperienceRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				return nil, err
			}
			return h.maids.AddWorkExperience(r.Context(), profileID, req.toModel())
		}))
		r.Put("/skills", res.owner(func(r *http.Request, profileID id.ProfileID) (*models.MaidProfile, error) {
			var req SkillsRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				return nil, err
			}
			return h.maids.UpdateSkills(r.Context(), profileID, req.normalized())
		}))
		r.Put("/languages", res.owner(func(r *http.Request, profileID id.ProfileID) (*models.MaidProfile, error) {
			var req LanguagesRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				return nil, err
			}
			return h.maids.UpdateLanguages(r.Context(), profileID, req.normalized())
		}))
		r.Put("/documents/{type}", res.owner(func(r *http.Request, profileID id.ProfileID) (*models.MaidProfile, error) {
			var req URLRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				return nil, err
			}
			docType := models.MaidDocumentType(chi.URLParam(r, "type"))
			return h.maids.UploadDocument(r.Context(), profileID, docType, req.URL)
		}))
		r.Put("/agency", res.owner(func(r *http.Request, profileID id.ProfileID) (*models.MaidProfile, error) {
			var req AssignAgencyRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				return nil, err
			}
			agencyID, err := id.ParseProfileID(req.AgencyID)
			if err != nil {
				return nil, err
			}
			return h.maids.AssignAgency(r.Context(), profileID, agencyID)
		}))
		r.Post("/agency/confirm", res.owner(func(r *http.Request, profileID id.ProfileID) (*models.MaidProfile, error) {
			return h.maids.ConfirmAgency(r.Context(), profileID)
		}))
		r.Post("/submit", res.owner(func(r *http.Request, profileID id.ProfileID) (*models.MaidProfile, error) {
			return h.maids.Submit(r.Context(), profileID)
		}))
		r.Post("/archive", res.owner(func(r *http.Request, profileID id.ProfileID) (*models.MaidProfile, error) {
			var req ArchiveRequest
			if err := decodeOptional(r, &req); err != nil {
				return nil, err
			}
			return h.maids.Archive(r.Context(), profileID, req.Reason)
		}))

		r.Group(func(r chi.Router) {
			r.Use(h.reviewerOnly())
			r.Post("/approve", res.review(func(r *http.Request, profileID id.ProfileID) (*models.MaidProfile, error) {
				return h.maids.Approve(r.Context(), profileID, reviewer(r.Context()))
			}))
			r.Post("/reject", res.review(func(r *http.Request, profileID id.ProfileID) (*models.MaidProfile, error) {
				var req RejectRequest
				if err := httputil.DecodeJSON(r, &req); err != nil {
					return nil, err
				}
				if err := req.validate(); err != nil {
					return nil, err
				}
				return h.maids.Reject(r.Context(), profileID, req.Reason, reviewer(r.Context()))
			}))
		})
	})
}

func (h *Handler) handleCreateMaid(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req MaidBasicInfoRequest
	if err := decodeOptional(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	info, err := req.toModel()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	maid, err := h.maids.Create(ctx, requestcontext.UserID(ctx), info)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toMaidResponse(ctx, maid))
}

func (h *Handler) handleMyMaid(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	maid, err := h.maids.GetByUser(ctx, requestcontext.UserID(ctx))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toMaidResponse(ctx, maid))
}

func (h *Handler) handleListMaids(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status, err := statusQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	maids, err := h.maids.ListByStatus(ctx, status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse(ctx, status, maids, toMaidResponse))
}
