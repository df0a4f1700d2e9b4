package handler

import (
	"context"

	"maidlink/internal/profiles/models"
	"maidlink/pkg/requestcontext"
)

type MaidResponse struct {
	models.MaidProfileSnapshot
	AllowedNextStatuses []models.ProfileStatus `json:"allowedNextStatuses"`
}

type SponsorResponse struct {
	models.SponsorProfileSnapshot
	AllowedNextStatuses []models.ProfileStatus `json:"allowedNextStatuses"`
}

type AgencyResponse struct {
	models.AgencyProfileSnapshot
	AllowedNextStatuses []models.ProfileStatus `json:"allowedNextStatuses"`
}

type ListResponse[T any] struct {
	Status   models.ProfileStatus `json:"status"`
	Profiles []T                  `json:"profiles"`
	Count    int                  `json:"count"`
}

func renderMaid(ctx context.Context, m *models.MaidProfile) any {
	return toMaidResponse(ctx, m)
}

func toMaidResponse(ctx context.Context, m *models.MaidProfile) MaidResponse {
	return MaidResponse{
		MaidProfileSnapshot: m.Snapshot(requestcontext.Now(ctx)),
		AllowedNextStatuses: models.AllowedNextStatuses(m.Status()),
	}
}

func renderSponsor(ctx context.Context, s *models.SponsorProfile) any {
	return toSponsorResponse(ctx, s)
}

func toSponsorResponse(ctx context.Context, s *models.SponsorProfile) SponsorResponse {
	return SponsorResponse{
		SponsorProfileSnapshot: s.Snapshot(requestcontext.Now(ctx)),
		AllowedNextStatuses:    models.AllowedNextStatuses(s.Status()),
	}
}

func renderAgency(ctx context.Context, a *models.AgencyProfile) any {
	return toAgencyResponse(ctx, a)
}

func toAgencyResponse(ctx context.Context, a *models.AgencyProfile) AgencyResponse {
	return AgencyResponse{
		AgencyProfileSnapshot: a.Snapshot(requestcontext.Now(ctx)),
		AllowedNextStatuses:   models.AllowedNextStatuses(a.Status()),
	}
}

func listResponse[A any, R any](ctx context.Context, status models.ProfileStatus, aggs []A, to func(context.Context, A) R) ListResponse[R] {
	out := make([]R, 0, len(aggs))
	for _, agg := range aggs {
		out = append(out, to(ctx, agg))
	}
	return ListResponse[R]{Status: status, Profiles: out, Count: len(out)}
}
