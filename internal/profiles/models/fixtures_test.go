package models_test

import (
	"time"

	"github.com/google/uuid"

	"maidlink/internal/profiles/models"
	id "maidlink/pkg/domain"
)

var fixedNow = time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

func newIdentity() models.ProfileParams {
	return models.ProfileParams{
		ID:     id.ProfileID(uuid.New()),
		UserID: id.UserID(uuid.New()),
	}
}

func ptr[T any](v T) *T { return &v }

func completeMaidParams() models.MaidProfileParams {
	dob := time.Date(1995, time.March, 10, 0, 0, 0, 0, time.UTC)
	return models.MaidProfileParams{
		ProfileParams:      newIdentity(),
		FullName:           "Almaz Tesfaye",
		DateOfBirth:        &dob,
		Nationality:        "ET",
		Phone:              "+251912345678",
		ProfilePhoto:       "https://cdn.example.com/photo.jpg",
		Skills:             []string{"cooking", "cleaning"},
		Languages:          []string{"amharic", "english"},
		Passport:           "https://cdn.example.com/passport.pdf",
		MedicalCertificate: "https://cdn.example.com/medical.pdf",
		PoliceClearance:    "https://cdn.example.com/police.pdf",
	}
}

func completeSponsorParams() models.SponsorProfileParams {
	return models.SponsorProfileParams{
		ProfileParams:    newIdentity(),
		FullName:         "Fatima Al-Saud",
		Phone:            "+966501234567",
		Country:          "SA",
		City:             "Riyadh",
		Address:          "King Fahd Rd 12",
		HouseholdSize:    4,
		IDDocument:       "https://cdn.example.com/id.pdf",
		ProofOfResidence: "https://cdn.example.com/residence.pdf",
	}
}

func completeAgencyParams() models.AgencyProfileParams {
	expiry := fixedNow.AddDate(1, 0, 0)
	return models.AgencyProfileParams{
		ProfileParams:      newIdentity(),
		AgencyName:         "Addis Placement Services",
		LicenseNumber:      "LIC-2041",
		LicenseExpiry:      &expiry,
		RegistrationNumber: "REG-88",
		Phone:              "+251911000000",
		Email:              "ops@addis.example.com",
		Country:            "ET",
		City:               "Addis Ababa",
		Address:            "Bole Rd 4",
		BusinessLicense:    "https://cdn.example.com/business.pdf",
		TaxCertificate:     "https://cdn.example.com/tax.pdf",
		IsLicenseValid:     true,
	}
}

func eventTypes(events []models.DomainEvent) []models.EventType {
	out := make([]models.EventType, 0, len(events))
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}
