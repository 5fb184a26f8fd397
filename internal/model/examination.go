package model

import (
	"time"
)

// ExaminationType is the clinical category of an examination.
type ExaminationType string

const (
	ExaminationTypeGP    ExaminationType = "GP"    // general physical
	ExaminationTypeKRV   ExaminationType = "KRV"   // blood test
	ExaminationTypeXRAY  ExaminationType = "XRAY"  // x-ray scan
	ExaminationTypeCT    ExaminationType = "CT"    // CT scan
	ExaminationTypeMR    ExaminationType = "MR"    // MRI scan
	ExaminationTypeULTRA ExaminationType = "ULTRA" // ultrasound
	ExaminationTypeEKG   ExaminationType = "EKG"   // electrocardiogram
	ExaminationTypeECHO  ExaminationType = "ECHO"  // echocardiogram
	ExaminationTypeEYE   ExaminationType = "EYE"   // eye examination
	ExaminationTypeDERM  ExaminationType = "DERM"  // dermatological
	ExaminationTypeDENTA ExaminationType = "DENTA" // dental
	ExaminationTypeMAMMO ExaminationType = "MAMMO" // mammography
	ExaminationTypeNEURO ExaminationType = "NEURO" // neurological
)

var examinationTypes = map[ExaminationType]struct{}{
	ExaminationTypeGP: {}, ExaminationTypeKRV: {}, ExaminationTypeXRAY: {},
	ExaminationTypeCT: {}, ExaminationTypeMR: {}, ExaminationTypeULTRA: {},
	ExaminationTypeEKG: {}, ExaminationTypeECHO: {}, ExaminationTypeEYE: {},
	ExaminationTypeDERM: {}, ExaminationTypeDENTA: {}, ExaminationTypeMAMMO: {},
	ExaminationTypeNEURO: {},
}

func (t ExaminationType) IsValid() bool {
	_, ok := examinationTypes[t]
	return ok
}

// Examination is a clinical examination of a patient by a doctor.
type Examination struct {
	Base
	PatientID int64           `db:"patient_id" json:"patient_id"`
	DoctorID  int64           `db:"doctor_id" json:"doctor_id"`
	Type      ExaminationType `db:"examination_type" json:"type"`
	DateTime  time.Time       `db:"examination_datetime" json:"date_time"`
	Notes     string          `db:"notes" json:"notes"`

	Patient       *Patient        `db:"-" json:"patient,omitempty"`
	Doctor        *Doctor         `db:"-" json:"doctor,omitempty"`
	MedicalImages []*MedicalImage `db:"-" json:"medical_images,omitempty"`
	Prescriptions []*Prescription `db:"-" json:"prescriptions,omitempty"`
}

type CreateExaminationRequest struct {
	PatientID int64     `json:"patient_id" binding:"required"`
	DoctorID  int64     `json:"doctor_id" binding:"required"`
	Type      string    `json:"type" binding:"required"`
	DateTime  time.Time `json:"date_time" binding:"required"`
	Notes     string    `json:"notes" binding:"required"`
}

type UpdateExaminationRequest struct {
	PatientID int64     `json:"patient_id" binding:"required"`
	DoctorID  int64     `json:"doctor_id" binding:"required"`
	Type      string    `json:"type" binding:"required"`
	DateTime  time.Time `json:"date_time" binding:"required"`
	Notes     string    `json:"notes" binding:"required"`
	Version   int64     `json:"version"`
}
