// Package memory implements the repository contracts over versioned
// in-process maps. It honours the same cascade and restrict rules the
// relational schema declares, which makes it a faithful stand-in for the
// Entity Store in service tests.
package memory

import (
	"sync"

	"github.com/medisys/clinical-api/internal/model"
	"github.com/medisys/clinical-api/internal/repository"
)

type Store struct {
	mu sync.RWMutex

	patients      *table[model.Patient, *model.Patient]
	doctors       *table[model.Doctor, *model.Doctor]
	examinations  *table[model.Examination, *model.Examination]
	histories     *table[model.MedicalHistory, *model.MedicalHistory]
	images        *table[model.MedicalImage, *model.MedicalImage]
	prescriptions *table[model.Prescription, *model.Prescription]
}

func NewStore() *Store {
	return &Store{
		patients:      newTable[model.Patient, *model.Patient](),
		doctors:       newTable[model.Doctor, *model.Doctor](),
		examinations:  newTable[model.Examination, *model.Examination](),
		histories:     newTable[model.MedicalHistory, *model.MedicalHistory](),
		images:        newTable[model.MedicalImage, *model.MedicalImage](),
		prescriptions: newTable[model.Prescription, *model.Prescription](),
	}
}

func (s *Store) Patients() repository.PatientRepository {
	return &patientRepository{store: s}
}

func (s *Store) Doctors() repository.DoctorRepository {
	return &doctorRepository{store: s}
}

func (s *Store) Examinations() repository.ExaminationRepository {
	return &examinationRepository{store: s}
}

func (s *Store) MedicalHistories() repository.MedicalHistoryRepository {
	return &medicalHistoryRepository{store: s}
}

func (s *Store) MedicalImages() repository.MedicalImageRepository {
	return &medicalImageRepository{store: s}
}

func (s *Store) Prescriptions() repository.PrescriptionRepository {
	return &prescriptionRepository{store: s}
}
