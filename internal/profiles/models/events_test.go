package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"maidlink/internal/profiles/models"
	id "maidlink/pkg/domain"
)

type EventsSuite struct {
	suite.Suite
}

func TestEventsSuite(t *testing.T) {
	suite.Run(t, new(EventsSuite))
}

func (s *EventsSuite) TestCatalogue() {
	types := models.EventTypes()
	s.Len(types, 26)
	for i := 1; i < len(types); i++ {
		s.Less(string(types[i-1]), string(types[i]))
	}
	s.True(models.EventAgencyRatingUpdated.IsKnown())
	s.False(models.EventType("MaidLanguagesUpdated").IsKnown())
}

func (s *EventsSuite) TestNewProfileEvent() {
	aggregate := id.NewProfileID()
	e := models.NewProfileEvent(models.MaidProfileArchived{Reason: "left"}, aggregate, fixedNow)

	s.False(e.ID.IsNil())
	s.Equal(models.EventMaidProfileArchived, e.Type)
	s.Equal(models.ContextName, e.Context)
	s.Equal(aggregate, e.AggregateID)
	s.Equal(fixedNow, e.OccurredAt)

	other := models.NewProfileEvent(models.MaidProfileArchived{Reason: "left"}, aggregate, fixedNow)
	s.NotEqual(e.ID, other.ID)
}

func (s *EventsSuite) TestPayloadJSONShape() {
	raw, err := json.Marshal(models.AgencyLicenseUpdated{LicenseNumber: "L-1", IsLicenseValid: true})
	s.Require().NoError(err)
	s.JSONEq(`{"licenseNumber":"L-1","isLicenseValid":true}`, string(raw))

	raw, err = json.Marshal(models.DocumentUploaded{DocumentType: "passport", DocumentURL: "https://x"})
	s.Require().NoError(err)
	s.JSONEq(`{"documentType":"passport","documentUrl":"https://x"}`, string(raw))
}
