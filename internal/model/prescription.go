package model

import (
	"time"
)

// Prescription is medication prescribed during an examination. Its patient
// and doctor must match the referenced examination's.
type Prescription struct {
	Base
	ExaminationID int64     `db:"examination_id" json:"examination_id"`
	PatientID     int64     `db:"patient_id" json:"patient_id"`
	DoctorID      int64     `db:"doctor_id" json:"doctor_id"`
	Medication    string    `db:"medication" json:"medication"`
	Dosage        string    `db:"dosage" json:"dosage"`
	Instructions  string    `db:"instructions" json:"instructions"`
	Date          time.Time `db:"prescription_date" json:"date"`

	Examination *Examination `db:"-" json:"examination,omitempty"`
	Patient     *Patient     `db:"-" json:"patient,omitempty"`
	Doctor      *Doctor      `db:"-" json:"doctor,omitempty"`
}

type CreatePrescriptionRequest struct {
	ExaminationID int64     `json:"examination_id" binding:"required"`
	PatientID     int64     `json:"patient_id" binding:"required"`
	DoctorID      int64     `json:"doctor_id" binding:"required"`
	Medication    string    `json:"medication" binding:"required"`
	Dosage        string    `json:"dosage" binding:"required"`
	Instructions  string    `json:"instructions" binding:"required"`
	Date          time.Time `json:"date" binding:"required"`
}

type UpdatePrescriptionRequest struct {
	ExaminationID int64     `json:"examination_id" binding:"required"`
	PatientID     int64     `json:"patient_id" binding:"required"`
	DoctorID      int64     `json:"doctor_id" binding:"required"`
	Medication    string    `json:"medication" binding:"required"`
	Dosage        string    `json:"dosage" binding:"required"`
	Instructions  string    `json:"instructions" binding:"required"`
	Date          time.Time `json:"date" binding:"required"`
	Version       int64     `json:"version"`
}
