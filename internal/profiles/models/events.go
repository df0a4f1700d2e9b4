package models

import (
	"sort"
	"time"

	id "maidlink/pkg/domain"
)

// ContextName tags every event emitted by this bounded context.
const ContextName = "profiles"

// EventType names a domain event. The constants below are the complete catalogue.
type EventType string

const (
	EventMaidProfileSubmitted    EventType = "MaidProfileSubmitted"
	EventMaidProfileApproved     EventType = "MaidProfileApproved"
	EventMaidProfileRejected     EventType = "MaidProfileRejected"
	EventMaidProfileArchived     EventType = "MaidProfileArchived"
	EventMaidProfileUpdated      EventType = "MaidProfileUpdated"
	EventMaidProfilePhotoUpdated EventType = "MaidProfilePhotoUpdated"
	EventMaidSkillsUpdated       EventType = "MaidSkillsUpdated"
	EventMaidAgencyAssigned      EventType = "MaidAgencyAssigned"
	EventMaidAgencyApproved      EventType = "MaidAgencyApproved"
	EventWorkExperienceAdded     EventType = "WorkExperienceAdded"
	EventDocumentUploaded        EventType = "DocumentUploaded"

	EventSponsorProfileSubmitted   EventType = "SponsorProfileSubmitted"
	EventSponsorProfileVerified    EventType = "SponsorProfileVerified"
	EventSponsorProfileRejected    EventType = "SponsorProfileRejected"
	EventSponsorProfileArchived    EventType = "SponsorProfileArchived"
	EventSponsorProfileUpdated     EventType = "SponsorProfileUpdated"
	EventSponsorHouseholdUpdated   EventType = "SponsorHouseholdUpdated"
	EventSponsorPreferencesUpdated EventType = "SponsorPreferencesUpdated"

	EventAgencyProfileSubmitted EventType = "AgencyProfileSubmitted"
	EventAgencyProfileVerified  EventType = "AgencyProfileVerified"
	EventAgencyProfileRejected  EventType = "AgencyProfileRejected"
	EventAgencyProfileArchived  EventType = "AgencyProfileArchived"
	EventAgencyProfileUpdated   EventType = "AgencyProfileUpdated"
	EventAgencyLicenseUpdated   EventType = "AgencyLicenseUpdated"
	EventAgencyServicesUpdated  EventType = "AgencyServicesUpdated"
	EventAgencyRatingUpdated    EventType = "AgencyRatingUpdated"
)

var eventCatalogue = map[EventType]struct{}{
	EventMaidProfileSubmitted: {}, EventMaidProfileApproved: {}, EventMaidProfileRejected: {},
	EventMaidProfileArchived: {}, EventMaidProfileUpdated: {}, EventMaidProfilePhotoUpdated: {},
	EventMaidSkillsUpdated: {}, EventMaidAgencyAssigned: {}, EventMaidAgencyApproved: {},
	EventWorkExperienceAdded: {}, EventDocumentUploaded: {},
	EventSponsorProfileSubmitted: {}, EventSponsorProfileVerified: {}, EventSponsorProfileRejected: {},
	EventSponsorProfileArchived: {}, EventSponsorProfileUpdated: {}, EventSponsorHouseholdUpdated: {},
	EventSponsorPreferencesUpdated: {},
	EventAgencyProfileSubmitted:    {}, EventAgencyProfileVerified: {}, EventAgencyProfileRejected: {},
	EventAgencyProfileArchived: {}, EventAgencyProfileUpdated: {}, EventAgencyLicenseUpdated: {},
	EventAgencyServicesUpdated: {}, EventAgencyRatingUpdated: {},
}

// EventTypes lists the catalogue in lexical order.
func EventTypes() []EventType {
	out := make([]EventType, 0, len(eventCatalogue))
	for t := range eventCatalogue {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (t EventType) IsKnown() bool {
	_, ok := eventCatalogue[t]
	return ok
}

func (t EventType) String() string { return string(t) }

// EventPayload is the closed set of typed event payloads. Each payload struct
// names its own event type.
type EventPayload interface {
	EventType() EventType
	isEventPayload()
}

// DomainEvent is an immutable record of something that happened to an aggregate.
type DomainEvent struct {
	ID          id.EventID
	Type        EventType
	Context     string
	AggregateID id.ProfileID
	OccurredAt  time.Time
	Payload     EventPayload
}

// NewProfileEvent stamps a payload with its type, the aggregate it belongs to,
// and the time it occurred.
func NewProfileEvent(payload EventPayload, aggregateID id.ProfileID, now time.Time) DomainEvent {
	return DomainEvent{
		ID:          id.NewEventID(),
		Type:        payload.EventType(),
		Context:     ContextName,
		AggregateID: aggregateID,
		OccurredAt:  now,
		Payload:     payload,
	}
}

// Maid payloads.

type MaidProfileSubmitted struct{}

type MaidProfileApproved struct {
	ApprovedBy string `json:"approvedBy"`
}

type MaidProfileRejected struct {
	Reason     string `json:"reason"`
	RejectedBy string `json:"rejectedBy"`
}

type MaidProfileArchived struct {
	Reason string `json:"reason"`
}

type MaidProfileUpdated struct {
	Fields []string `json:"fields"`
}

type MaidProfilePhotoUpdated struct {
	ProfilePhoto string `json:"profilePhoto"`
}

type MaidSkillsUpdated struct {
	Skills []string `json:"skills"`
}

type MaidAgencyAssigned struct {
	AgencyID id.ProfileID `json:"agencyId"`
}

type MaidAgencyApproved struct {
	AgencyID id.ProfileID `json:"agencyId"`
}

type WorkExperienceAdded struct {
	Experience WorkExperienceSnapshot `json:"experience"`
}

// DocumentUploaded is shared by all three aggregates.
type DocumentUploaded struct {
	DocumentType string `json:"documentType"`
	DocumentURL  string `json:"documentUrl"`
}

// Sponsor payloads.

type SponsorProfileSubmitted struct{}

type SponsorProfileVerified struct {
	VerifiedBy string `json:"verifiedBy"`
}

type SponsorProfileRejected struct {
	Reason     string `json:"reason"`
	RejectedBy string `json:"rejectedBy"`
}

type SponsorProfileArchived struct {
	Reason string `json:"reason"`
}

type SponsorProfileUpdated struct {
	Fields []string `json:"fields"`
}

type SponsorHouseholdUpdated struct {
	HouseholdSize int   `json:"householdSize"`
	HasChildren   bool  `json:"hasChildren"`
	HasPets       bool  `json:"hasPets"`
	ChildrenAges  []int `json:"childrenAges"`
}

type SponsorPreferencesUpdated struct {
	PreferredLanguages  []string `json:"preferredLanguages"`
	PreferredSkills     []string `json:"preferredSkills"`
	ReligiousPreference string   `json:"religiousPreference"`
}

// Agency payloads.

type AgencyProfileSubmitted struct{}

type AgencyProfileVerified struct {
	VerifiedBy string `json:"verifiedBy"`
}

type AgencyProfileRejected struct {
	Reason     string `json:"reason"`
	RejectedBy string `json:"rejectedBy"`
}

type AgencyProfileArchived struct {
	Reason string `json:"reason"`
}

type AgencyProfileUpdated struct {
	Fields []string `json:"fields"`
}

type AgencyLicenseUpdated struct {
	LicenseNumber  string `json:"licenseNumber"`
	IsLicenseValid bool   `json:"isLicenseValid"`
}

type AgencyServicesUpdated struct {
	ServicesOffered    []string `json:"servicesOffered"`
	OperatingCountries []string `json:"operatingCountries"`
	Specializations    []string `json:"specializations"`
}

type AgencyRatingUpdated struct {
	Rating       float64 `json:"rating"`
	TotalReviews int     `json:"totalReviews"`
}

func (MaidProfileSubmitted) EventType() EventType      { return EventMaidProfileSubmitted }
func (MaidProfileApproved) EventType() EventType       { return EventMaidProfileApproved }
func (MaidProfileRejected) EventType() EventType       { return EventMaidProfileRejected }
func (MaidProfileArchived) EventType() EventType       { return EventMaidProfileArchived }
func (MaidProfileUpdated) EventType() EventType        { return EventMaidProfileUpdated }
func (MaidProfilePhotoUpdated) EventType() EventType   { return EventMaidProfilePhotoUpdated }
func (MaidSkillsUpdated) EventType() EventType         { return EventMaidSkillsUpdated }
func (MaidAgencyAssigned) EventType() EventType        { return EventMaidAgencyAssigned }
func (MaidAgencyApproved) EventType() EventType        { return EventMaidAgencyApproved }
func (WorkExperienceAdded) EventType() EventType       { return EventWorkExperienceAdded }
func (DocumentUploaded) EventType() EventType          { return EventDocumentUploaded }
func (SponsorProfileSubmitted) EventType() EventType   { return EventSponsorProfileSubmitted }
func (SponsorProfileVerified) EventType() EventType    { return EventSponsorProfileVerified }
func (SponsorProfileRejected) EventType() EventType    { return EventSponsorProfileRejected }
func (SponsorProfileArchived) EventType() EventType    { return EventSponsorProfileArchived }
func (SponsorProfileUpdated) EventType() EventType     { return EventSponsorProfileUpdated }
func (SponsorHouseholdUpdated) EventType() EventType   { return EventSponsorHouseholdUpdated }
func (SponsorPreferencesUpdated) EventType() EventType { return EventSponsorPreferencesUpdated }
func (AgencyProfileSubmitted) EventType() EventType    { return EventAgencyProfileSubmitted }
func (AgencyProfileVerified) EventType() EventType     { return EventAgencyProfileVerified }
func (AgencyProfileRejected) EventType() EventType     { return EventAgencyProfileRejected }
func (AgencyProfileArchived) EventType() EventType     { return EventAgencyProfileArchived }
func (AgencyProfileUpdated) EventType() EventType      { return EventAgencyProfileUpdated }
func (AgencyLicenseUpdated) EventType() EventType      { return EventAgencyLicenseUpdated }
func (AgencyServicesUpdated) EventType() EventType     { return EventAgencyServicesUpdated }
func (AgencyRatingUpdated) EventType() EventType       { return EventAgencyRatingUpdated }

func (MaidProfileSubmitted) isEventPayload()      {}
func (MaidProfileApproved) isEventPayload()       {}
func (MaidProfileRejected) isEventPayload()       {}
func (MaidProfileArchived) isEventPayload()       {}
func (MaidProfileUpdated) isEventPayload()        {}
func (MaidProfilePhotoUpdated) isEventPayload()   {}
func (MaidSkillsUpdated) isEventPayload()         {}
func (MaidAgencyAssigned) isEventPayload()        {}
func (MaidAgencyApproved) isEventPayload()        {}
func (WorkExperienceAdded) isEventPayload()       {}
func (DocumentUploaded) isEventPayload()          {}
func (SponsorProfileSubmitted) isEventPayload()   {}
func (SponsorProfileVerified) isEventPayload()    {}
func (SponsorProfileRejected) isEventPayload()    {}
func (SponsorProfileArchived) isEventPayload()    {}
func (SponsorProfileUpdated) isEventPayload()     {}
func (SponsorHouseholdUpdated) isEventPayload()   {}
func (SponsorPreferencesUpdated) isEventPayload() {}
func (AgencyProfileSubmitted) isEventPayload()    {}
func (AgencyProfileVerified) isEventPayload()     {}
func (AgencyProfileRejected) isEventPayload()     {}
func (AgencyProfileArchived) isEventPayload()     {}
func (AgencyProfileUpdated) isEventPayload()      {}
func (AgencyLicenseUpdated) isEventPayload()      {}
func (AgencyServicesUpdated) isEventPayload()     {}
func (AgencyRatingUpdated) isEventPayload()       {}
