package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/medisys/clinical-api/internal/model"
	apperr "github.com/medisys/clinical-api/pkg/errors"
)

type patientRepository struct {
	store *Store
}

func flatPatient(p *model.Patient) *model.Patient {
	cp := *p
	cp.MedicalHistories = nil
	cp.Examinations = nil
	cp.Prescriptions = nil
	return &cp
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	patients := s.patients.all()
	for _, p := range patients {
		p.MedicalHistories = s.historiesByPatient(p.ID)
	}
	return patients, nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.patients.get(id)
	if !ok {
		return nil, apperr.NotFound("patient", id)
	}
	p.MedicalHistories = s.historiesByPatient(id)
	return p, nil
}

func (r *patientRepository) GetWithDetails(ctx context.Context, id int64) (*model.Patient, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.patients.get(id)
	if !ok {
		return nil, apperr.NotFound("patient", id)
	}
	p.MedicalHistories = s.historiesByPatient(id)
	p.Examinations = s.examinationsByPatient(id)
	for _, e := range p.Examinations {
		e.Doctor, _ = s.doctors.get(e.DoctorID)
		e.MedicalImages = s.imagesByExamination(e.ID)
	}
	p.Prescriptions = s.prescriptionsByPatient(id)
	for _, pr := range p.Prescriptions {
		pr.Doctor, _ = s.doctors.get(pr.DoctorID)
	}
	return p, nil
}

func (r *patientRepository) GetByPersonalIDNumber(ctx context.Context, personalID string) (*model.Patient, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.patients.all() {
		if p.PersonalIDNumber == personalID {
			p.MedicalHistories = s.historiesByPatient(p.ID)
			return p, nil
		}
	}
	return nil, apperr.NotFoundMsg("patient with personal ID number " + personalID + " not found")
}

func (r *patientRepository) SearchByLastName(ctx context.Context, lastName string) ([]*model.Patient, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(lastName)
	var out []*model.Patient
	for _, p := range s.patients.all() {
		if strings.Contains(strings.ToLower(p.LastName), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.personalIDTaken(patient.PersonalIDNumber, 0) {
		return apperr.Conflict("patient with personal ID number %s already exists", patient.PersonalIDNumber)
	}
	rec := flatPatient(patient)
	s.patients.add(rec)
	patient.SetKey(rec.ID, rec.Version)
	return nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.personalIDTaken(patient.PersonalIDNumber, patient.ID) {
		return apperr.Conflict("patient with personal ID number %s already exists", patient.PersonalIDNumber)
	}
	rec := flatPatient(patient)
	switch s.patients.update(rec) {
	case updateNotFound:
		return apperr.NotFound("patient", patient.ID)
	case updateConflict:
		return apperr.Conflict("patient %d was modified by another request", patient.ID)
	}
	patient.SetKey(rec.ID, rec.Version)
	return nil
}

// Delete removes the patient and cascades to histories, examinations
// (with their images and prescriptions) and prescriptions, mirroring the
// schema's ON DELETE CASCADE rules.
func (r *patientRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.patients.exists(id) {
		return apperr.NotFound("patient", id)
	}
	for _, h := range s.histories.all() {
		if h.PatientID == id {
			s.histories.delete(h.ID)
		}
	}
	for _, e := range s.examinations.all() {
		if e.PatientID == id {
			s.deleteExaminationCascade(e.ID)
		}
	}
	for _, p := range s.prescriptions.all() {
		if p.PatientID == id {
			s.prescriptions.delete(p.ID)
		}
	}
	s.patients.delete(id)
	return nil
}

func (r *patientRepository) Exists(ctx context.Context, id int64) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.patients.exists(id), nil
}

func (r *patientRepository) Count(ctx context.Context) (int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.patients.count(), nil
}

// Lock must be held by the caller for all helpers below.

func (s *Store) personalIDTaken(personalID string, excludeID int64) bool {
	for _, p := range s.patients.all() {
		if p.PersonalIDNumber == personalID && p.ID != excludeID {
			return true
		}
	}
	return false
}

func (s *Store) historiesByPatient(patientID int64) []*model.MedicalHistory {
	var out []*model.MedicalHistory
	for _, h := range s.histories.all() {
		if h.PatientID == patientID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out
}

func (s *Store) examinationsByPatient(patientID int64) []*model.Examination {
	var out []*model.Examination
	for _, e := range s.examinations.all() {
		if e.PatientID == patientID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateTime.After(out[j].DateTime) })
	return out
}

func (s *Store) prescriptionsByPatient(patientID int64) []*model.Prescription {
	var out []*model.Prescription
	for _, p := range s.prescriptions.all() {
		if p.PatientID == patientID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}
