package model

import (
	"time"
)

// MedicalHistory records a patient's disease over a period. A nil EndDate
// means the condition is still active.
type MedicalHistory struct {
	Base
	PatientID   int64      `db:"patient_id" json:"patient_id"`
	DiseaseName string     `db:"disease_name" json:"disease_name"`
	StartDate   time.Time  `db:"start_date" json:"start_date"`
	EndDate     *time.Time `db:"end_date" json:"end_date,omitempty"`

	Patient *Patient `db:"-" json:"patient,omitempty"`
}

// Active reports whether the condition has no recorded end.
func (h *MedicalHistory) Active() bool {
	return h.EndDate == nil
}

type CreateMedicalHistoryRequest struct {
	PatientID   int64      `json:"patient_id" binding:"required"`
	DiseaseName string     `json:"disease_name" binding:"required"`
	StartDate   time.Time  `json:"start_date" binding:"required"`
	EndDate     *time.Time `json:"end_date"`
}

type UpdateMedicalHistoryRequest struct {
	PatientID   int64      `json:"patient_id" binding:"required"`
	DiseaseName string     `json:"disease_name" binding:"required"`
	StartDate   time.Time  `json:"start_date" binding:"required"`
	EndDate     *time.Time `json:"end_date"`
	Version     int64      `json:"version"`
}
