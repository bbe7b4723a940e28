package repository

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"bloodbank-backend/internal/domain"
	"bloodbank-backend/internal/logger"
	"bloodbank-backend/internal/utils"
)

//go:embed seed.yaml
var seedYAML []byte

type seedUser struct {
	ID          string `yaml:"id"`
	Email       string `yaml:"email"`
	Name        string `yaml:"name"`
	Role        string `yaml:"role"`
	Phone       string `yaml:"phone"`
	Address     string `yaml:"address"`
	BloodType   string `yaml:"blood_type"`
	DateOfBirth string `yaml:"date_of_birth"`
	CreatedAt   string `yaml:"created_at"`
}

type seedInventory struct {
	BloodType      string   `yaml:"blood_type"`
	UnitsAvailable int      `yaml:"units_available"`
	UnitsReserved  int      `yaml:"units_reserved"`
	ExpiryDates    []string `yaml:"expiry_dates"`
	LastUpdated    string   `yaml:"last_updated"`
	Location       string   `yaml:"location"`
}

type seedListing struct {
	CenterName string        `yaml:"center_name"`
	Phone      string        `yaml:"phone"`
	DistanceKm float64       `yaml:"distance_km"`
	Inventory  seedInventory `yaml:"inventory"`
}

type seedRequest struct {
	ID              string `yaml:"id"`
	RecipientID     string `yaml:"recipient_id"`
	RecipientName   string `yaml:"recipient_name"`
	BloodType       string `yaml:"blood_type"`
	UnitsNeeded     int    `yaml:"units_needed"`
	Urgency         string `yaml:"urgency"`
	HospitalName    string `yaml:"hospital_name"`
	HospitalAddress string `yaml:"hospital_address"`
	ContactNumber   string `yaml:"contact_number"`
	MedicalReason   string `yaml:"medical_reason"`
	Status          string `yaml:"status"`
	RequestDate     string `yaml:"request_date"`
	RequiredBy      string `yaml:"required_by"`
	Notes           string `yaml:"notes"`
}

type seedDonation struct {
	ID             string `yaml:"id"`
	DonorID        string `yaml:"donor_id"`
	DonorName      string `yaml:"donor_name"`
	BloodType      string `yaml:"blood_type"`
	UnitsCollected int    `yaml:"units_collected"`
	DonationDate   string `yaml:"donation_date"`
	Location       string `yaml:"location"`
	Status         string `yaml:"status"`
	HealthChecked  bool   `yaml:"health_checked"`
}

// SeedData is the demo data set shipped with the server.
type SeedData struct {
	Users     []domain.User
	Inventory []domain.BloodInventory
	Listings  []domain.BloodBankListing
	Requests  []domain.BloodRequest
	Donations []domain.DonationRecord
}

// LoadSeedData parses the embedded demo data set.
func LoadSeedData() (*SeedData, error) {
	var raw struct {
		Users     []seedUser      `yaml:"users"`
		Inventory []seedInventory `yaml:"inventory"`
		Listings  []seedListing   `yaml:"listings"`
		Requests  []seedRequest   `yaml:"requests"`
		Donations []seedDonation  `yaml:"donations"`
	}
	if err := yaml.Unmarshal(seedYAML, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}

	data := &SeedData{}
	for _, su := range raw.Users {
		u := domain.User{
			ID:        su.ID,
			Email:     su.Email,
			Name:      su.Name,
			Role:      domain.UserRole(su.Role),
			Phone:     su.Phone,
			Address:   su.Address,
			BloodType: domain.BloodType(su.BloodType),
		}
		created, err := time.Parse(time.RFC3339, su.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("user %s: %w", su.ID, err)
		}
		u.CreatedAt = created
		if su.DateOfBirth != "" {
			dob, err := utils.ParseDate(su.DateOfBirth)
			if err != nil {
				return nil, fmt.Errorf("user %s: %w", su.ID, err)
			}
			u.DateOfBirth = &dob
		}
		data.Users = append(data.Users, u)
	}

	for _, si := range raw.Inventory {
		inv, err := si.toDomain()
		if err != nil {
			return nil, err
		}
		data.Inventory = append(data.Inventory, inv)
	}

	for _, sl := range raw.Listings {
		inv, err := sl.Inventory.toDomain()
		if err != nil {
			return nil, err
		}
		data.Listings = append(data.Listings, domain.BloodBankListing{
			BloodInventory: inv,
			CenterName:     sl.CenterName,
			Phone:          sl.Phone,
			DistanceKm:     sl.DistanceKm,
		})
	}

	for _, sr := range raw.Requests {
		requestDate, err := time.Parse(time.RFC3339, sr.RequestDate)
		if err != nil {
			return nil, fmt.Errorf("request %s: %w", sr.ID, err)
		}
		requiredBy, err := time.Parse(time.RFC3339, sr.RequiredBy)
		if err != nil {
			return nil, fmt.Errorf("request %s: %w", sr.ID, err)
		}
		data.Requests = append(data.Requests, domain.BloodRequest{
			ID:              sr.ID,
			RecipientID:     sr.RecipientID,
			RecipientName:   sr.RecipientName,
			BloodType:       domain.BloodType(sr.BloodType),
			UnitsNeeded:     sr.UnitsNeeded,
			Urgency:         domain.RequestUrgency(sr.Urgency),
			HospitalName:    sr.HospitalName,
			HospitalAddress: sr.HospitalAddress,
			ContactNumber:   sr.ContactNumber,
			MedicalReason:   sr.MedicalReason,
			Status:          domain.RequestStatus(sr.Status),
			RequestDate:     requestDate,
			RequiredBy:      requiredBy,
			Notes:           sr.Notes,
		})
	}

	for _, sd := range raw.Donations {
		date, err := utils.ParseDate(sd.DonationDate)
		if err != nil {
			return nil, fmt.Errorf("donation %s: %w", sd.ID, err)
		}
		data.Donations = append(data.Donations, domain.DonationRecord{
			ID:               sd.ID,
			DonorID:          sd.DonorID,
			DonorName:        sd.DonorName,
			BloodType:        domain.BloodType(sd.BloodType),
			UnitsCollected:   sd.UnitsCollected,
			DonationDate:     date,
			Location:         sd.Location,
			Status:           domain.DonationStatus(sd.Status),
			NextEligibleDate: utils.NextEligibleDonation(date),
			HealthChecked:    sd.HealthChecked,
		})
	}
	return data, nil
}

func (si seedInventory) toDomain() (domain.BloodInventory, error) {
	inv := domain.BloodInventory{
		BloodType:      domain.BloodType(si.BloodType),
		UnitsAvailable: si.UnitsAvailable,
		UnitsReserved:  si.UnitsReserved,
		Location:       si.Location,
	}
	for _, s := range si.ExpiryDates {
		d, err := utils.ParseDate(s)
		if err != nil {
			return inv, fmt.Errorf("inventory %s: %w", si.BloodType, err)
		}
		inv.ExpiryDates = append(inv.ExpiryDates, d)
	}
	updated, err := time.Parse(time.RFC3339, si.LastUpdated)
	if err != nil {
		return inv, fmt.Errorf("inventory %s: %w", si.BloodType, err)
	}
	inv.LastUpdated = updated
	return inv, nil
}

// Seed writes the demo data set into s. It is meant for an empty store.
func Seed(ctx context.Context, s Store) error {
	data, err := LoadSeedData()
	if err != nil {
		return err
	}

	for i := range data.Users {
		if err := s.Users().Create(ctx, &data.Users[i]); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", data.Users[i].Email, err)
		}
	}
	for i := range data.Inventory {
		if err := s.Inventory().Create(ctx, &data.Inventory[i]); err != nil {
			return fmt.Errorf("failed to seed inventory %s: %w", data.Inventory[i].BloodType, err)
		}
	}
	for i := range data.Listings {
		if err := s.Inventory().CreateListing(ctx, &data.Listings[i]); err != nil {
			return fmt.Errorf("failed to seed listing %s: %w", data.Listings[i].CenterName, err)
		}
	}
	for i := range data.Requests {
		if err := s.Requests().Create(ctx, &data.Requests[i]); err != nil {
			return fmt.Errorf("failed to seed request %s: %w", data.Requests[i].ID, err)
		}
	}
	for i := range data.Donations {
		if err := s.Donations().Create(ctx, &data.Donations[i]); err != nil {
			return fmt.Errorf("failed to seed donation %s: %w", data.Donations[i].ID, err)
		}
	}

	logger.Info("Seeded store",
		"users", len(data.Users),
		"inventory", len(data.Inventory),
		"listings", len(data.Listings),
		"requests", len(data.Requests),
		"donations", len(data.Donations))
	return nil
}

// SeedIfEmpty seeds s unless it already holds users. It reports whether
// the demo data was written.
func SeedIfEmpty(ctx context.Context, s Store) (bool, error) {
	users, err := s.Users().List(ctx, "")
	if err != nil {
		return false, fmt.Errorf("failed to check store: %w", err)
	}
	if len(users) > 0 {
		logger.Info("Store already populated, skipping seed", "users", len(users))
		return false, nil
	}
	return true, Seed(ctx, s)
}
