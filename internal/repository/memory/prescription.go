package memory

import (
	"context"
	"sort"

	"github.com/medisys/clinical-api/internal/model"
	apperr "github.com/medisys/clinical-api/pkg/errors"
)

type prescriptionRepository struct {
	store *Store
}

func flatPrescription(p *model.Prescription) *model.Prescription {
	cp := *p
	cp.Examination = nil
	cp.Patient = nil
	cp.Doctor = nil
	return &cp
}

func (r *prescriptionRepository) List(ctx context.Context) ([]*model.Prescription, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	prescriptions := s.prescriptions.all()
	for _, p := range prescriptions {
		p.Patient, _ = s.patients.get(p.PatientID)
		p.Doctor, _ = s.doctors.get(p.DoctorID)
		p.Examination, _ = s.examinations.get(p.ExaminationID)
	}
	sort.Slice(prescriptions, func(i, j int) bool { return prescriptions[i].Date.After(prescriptions[j].Date) })
	return prescriptions, nil
}

func (r *prescriptionRepository) Get(ctx context.Context, id int64) (*model.Prescription, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.prescriptions.get(id)
	if !ok {
		return nil, apperr.NotFound("prescription", id)
	}
	p.Patient, _ = s.patients.get(p.PatientID)
	p.Doctor, _ = s.doctors.get(p.DoctorID)
	p.Examination, _ = s.examinations.get(p.ExaminationID)
	return p, nil
}

func (r *prescriptionRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Prescription, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	prescriptions := s.prescriptionsByPatient(patientID)
	for _, p := range prescriptions {
		p.Doctor, _ = s.doctors.get(p.DoctorID)
		p.Examination, _ = s.examinations.get(p.ExaminationID)
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Prescription, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	prescriptions := s.prescriptionsByDoctor(doctorID)
	for _, p := range prescriptions {
		p.Patient, _ = s.patients.get(p.PatientID)
		p.Examination, _ = s.examinations.get(p.ExaminationID)
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) Create(ctx context.Context, prescription *model.Prescription) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := flatPrescription(prescription)
	s.prescriptions.add(rec)
	prescription.SetKey(rec.ID, rec.Version)
	return nil
}

func (r *prescriptionRepository) Update(ctx context.Context, prescription *model.Prescription) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := flatPrescription(prescription)
	switch s.prescriptions.update(rec) {
	case updateNotFound:
		return apperr.NotFound("prescription", prescription.ID)
	case updateConflict:
		return apperr.Conflict("prescription %d was modified by another request", prescription.ID)
	}
	prescription.SetKey(rec.ID, rec.Version)
	return nil
}

func (r *prescriptionRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.prescriptions.delete(id) {
		return apperr.NotFound("prescription", id)
	}
	return nil
}

func (r *prescriptionRepository) Exists(ctx context.Context, id int64) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prescriptions.exists(id), nil
}

func (r *prescriptionRepository) Count(ctx context.Context) (int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prescriptions.count(), nil
}
