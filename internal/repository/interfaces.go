package repository

import (
	"context"

	"github.com/medisys/clinical-api/internal/model"
)

// All repository interfaces in one file.
//
// Contract shared by every Update: the whole record is replaced at its id.
// A missing row is NotFound; a version that moved between the caller's read
// and the write is Conflict. Delete of an already-removed row is NotFound.
type (
	// PatientRepository stores patients. Get loads medical histories;
	// GetWithDetails loads the full graph (histories, examinations with
	// doctors and images, prescriptions with doctors).
	PatientRepository interface {
		List(ctx context.Context) ([]*model.Patient, error)
		Get(ctx context.Context, id int64) (*model.Patient, error)
		GetWithDetails(ctx context.Context, id int64) (*model.Patient, error)
		GetByPersonalIDNumber(ctx context.Context, personalID string) (*model.Patient, error)
		SearchByLastName(ctx context.Context, lastName string) ([]*model.Patient, error)
		Create(ctx context.Context, patient *model.Patient) error
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id int64) error
		Exists(ctx context.Context, id int64) (bool, error)
		Count(ctx context.Context) (int64, error)
	}

	// DoctorRepository stores doctors. Get loads examinations;
	// GetWithDetails additionally loads prescriptions and the patients on
	// both relation sets.
	DoctorRepository interface {
		List(ctx context.Context) ([]*model.Doctor, error)
		ListWithExaminations(ctx context.Context) ([]*model.Doctor, error)
		Get(ctx context.Context, id int64) (*model.Doctor, error)
		GetWithDetails(ctx context.Context, id int64) (*model.Doctor, error)
		Create(ctx context.Context, doctor *model.Doctor) error
		Update(ctx context.Context, doctor *model.Doctor) error
		Delete(ctx context.Context, id int64) error
		Exists(ctx context.Context, id int64) (bool, error)
		Count(ctx context.Context) (int64, error)
	}

	// ExaminationRepository stores examinations, listed newest first.
	ExaminationRepository interface {
		List(ctx context.Context) ([]*model.Examination, error)
		Get(ctx context.Context, id int64) (*model.Examination, error)
		GetWithDetails(ctx context.Context, id int64) (*model.Examination, error)
		ListByPatient(ctx context.Context, patientID int64) ([]*model.Examination, error)
		ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Examination, error)
		Create(ctx context.Context, examination *model.Examination) error
		Update(ctx context.Context, examination *model.Examination) error
		Delete(ctx context.Context, id int64) error
		Exists(ctx context.Context, id int64) (bool, error)
		Count(ctx context.Context) (int64, error)
	}

	// MedicalHistoryRepository stores history entries, newest start first.
	MedicalHistoryRepository interface {
		List(ctx context.Context) ([]*model.MedicalHistory, error)
		Get(ctx context.Context, id int64) (*model.MedicalHistory, error)
		ListByPatient(ctx context.Context, patientID int64) ([]*model.MedicalHistory, error)
		ListActiveByPatient(ctx context.Context, patientID int64) ([]*model.MedicalHistory, error)
		Create(ctx context.Context, history *model.MedicalHistory) error
		Update(ctx context.Context, history *model.MedicalHistory) error
		Delete(ctx context.Context, id int64) error
		Exists(ctx context.Context, id int64) (bool, error)
		Count(ctx context.Context) (int64, error)
	}

	// MedicalImageRepository stores image metadata, newest upload first.
	// Image rows are never updated: the filename is generated and the
	// upload timestamp fixed, so replacement is delete plus re-upload.
	MedicalImageRepository interface {
		List(ctx context.Context) ([]*model.MedicalImage, error)
		Get(ctx context.Context, id int64) (*model.MedicalImage, error)
		ListByExamination(ctx context.Context, examinationID int64) ([]*model.MedicalImage, error)
		Create(ctx context.Context, image *model.MedicalImage) error
		Delete(ctx context.Context, id int64) error
		Exists(ctx context.Context, id int64) (bool, error)
		Count(ctx context.Context) (int64, error)
	}

	// PrescriptionRepository stores prescriptions, newest date first.
	PrescriptionRepository interface {
		List(ctx context.Context) ([]*model.Prescription, error)
		Get(ctx context.Context, id int64) (*model.Prescription, error)
		ListByPatient(ctx context.Context, patientID int64) ([]*model.Prescription, error)
		ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Prescription, error)
		Create(ctx context.Context, prescription *model.Prescription) error
		Update(ctx context.Context, prescription *model.Prescription) error
		Delete(ctx context.Context, id int64) error
		Exists(ctx context.Context, id int64) (bool, error)
		Count(ctx context.Context) (int64, error)
	}
)
