package model

import (
	"time"
)

// Patient is a person receiving care. PersonalIDNumber is the national
// identifier, exactly 11 digits and unique across all patients.
type Patient struct {
	Base
	FirstName        string    `db:"first_name" json:"first_name"`
	LastName         string    `db:"last_name" json:"last_name"`
	PersonalIDNumber string    `db:"personal_id_number" json:"personal_id_number"`
	DateOfBirth      time.Time `db:"date_of_birth" json:"date_of_birth"`
	Gender           string    `db:"gender" json:"gender"`

	MedicalHistories []*MedicalHistory `db:"-" json:"medical_histories,omitempty"`
	Examinations     []*Examination    `db:"-" json:"examinations,omitempty"`
	Prescriptions    []*Prescription   `db:"-" json:"prescriptions,omitempty"`
}

// Age in full years as of today.
func (p *Patient) Age() int {
	today := time.Now().UTC()
	age := today.Year() - p.DateOfBirth.Year()
	if today.YearDay() < p.DateOfBirth.YearDay() {
		age--
	}
	return age
}

type CreatePatientRequest struct {
	FirstName        string    `json:"first_name" binding:"required"`
	LastName         string    `json:"last_name" binding:"required"`
	PersonalIDNumber string    `json:"personal_id_number" binding:"required,natid"`
	DateOfBirth      time.Time `json:"date_of_birth" binding:"required"`
	Gender           string    `json:"gender" binding:"required"`
}

type UpdatePatientRequest struct {
	FirstName        string    `json:"first_name" binding:"required"`
	LastName         string    `json:"last_name" binding:"required"`
	PersonalIDNumber string    `json:"personal_id_number" binding:"required,natid"`
	DateOfBirth      time.Time `json:"date_of_birth" binding:"required"`
	Gender           string    `json:"gender" binding:"required"`
	Version          int64     `json:"version"`
}
