package memory

import (
	"context"
	"sort"

	"github.com/medisys/clinical-api/internal/model"
	apperr "github.com/medisys/clinical-api/pkg/errors"
)

type examinationRepository struct {
	store *Store
}

func flatExamination(e *model.Examination) *model.Examination {
	cp := *e
	cp.Patient = nil
	cp.Doctor = nil
	cp.MedicalImages = nil
	cp.Prescriptions = nil
	return &cp
}

func (r *examinationRepository) List(ctx context.Context) ([]*model.Examination, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	exams := s.examinations.all()
	for _, e := range exams {
		e.Patient, _ = s.patients.get(e.PatientID)
		e.Doctor, _ = s.doctors.get(e.DoctorID)
	}
	sort.Slice(exams, func(i, j int) bool { return exams[i].DateTime.After(exams[j].DateTime) })
	return exams, nil
}

func (r *examinationRepository) Get(ctx context.Context, id int64) (*model.Examination, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.examinations.get(id)
	if !ok {
		return nil, apperr.NotFound("examination", id)
	}
	e.Patient, _ = s.patients.get(e.PatientID)
	e.Doctor, _ = s.doctors.get(e.DoctorID)
	return e, nil
}

func (r *examinationRepository) GetWithDetails(ctx context.Context, id int64) (*model.Examination, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.examinations.get(id)
	if !ok {
		return nil, apperr.NotFound("examination", id)
	}
	e.Patient, _ = s.patients.get(e.PatientID)
	e.Doctor, _ = s.doctors.get(e.DoctorID)
	e.MedicalImages = s.imagesByExamination(id)
	e.Prescriptions = s.prescriptionsByExamination(id)
	for _, p := range e.Prescriptions {
		p.Doctor, _ = s.doctors.get(p.DoctorID)
	}
	return e, nil
}

func (r *examinationRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Examination, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	exams := s.examinationsByPatient(patientID)
	for _, e := range exams {
		e.Doctor, _ = s.doctors.get(e.DoctorID)
		e.MedicalImages = s.imagesByExamination(e.ID)
		e.Prescriptions = s.prescriptionsByExamination(e.ID)
	}
	return exams, nil
}

func (r *examinationRepository) ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Examination, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	exams := s.examinationsByDoctor(doctorID)
	for _, e := range exams {
		e.Patient, _ = s.patients.get(e.PatientID)
		e.MedicalImages = s.imagesByExamination(e.ID)
		e.Prescriptions = s.prescriptionsByExamination(e.ID)
	}
	return exams, nil
}

func (r *examinationRepository) Create(ctx context.Context, examination *model.Examination) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := flatExamination(examination)
	s.examinations.add(rec)
	examination.SetKey(rec.ID, rec.Version)
	return nil
}

func (r *examinationRepository) Update(ctx context.Context, examination *model.Examination) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := flatExamination(examination)
	switch s.examinations.update(rec) {
	case updateNotFound:
		return apperr.NotFound("examination", examination.ID)
	case updateConflict:
		return apperr.Conflict("examination %d was modified by another request", examination.ID)
	}
	examination.SetKey(rec.ID, rec.Version)
	return nil
}

// Delete cascades to the examination's images and prescriptions.
func (r *examinationRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.examinations.exists(id) {
		return apperr.NotFound("examination", id)
	}
	s.deleteExaminationCascade(id)
	return nil
}

func (r *examinationRepository) Exists(ctx context.Context, id int64) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.examinations.exists(id), nil
}

func (r *examinationRepository) Count(ctx context.Context) (int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.examinations.count(), nil
}

func (s *Store) deleteExaminationCascade(id int64) {
	for _, img := range s.images.all() {
		if img.ExaminationID == id {
			s.images.delete(img.ID)
		}
	}
	for _, p := range s.prescriptions.all() {
		if p.ExaminationID == id {
			s.prescriptions.delete(p.ID)
		}
	}
	s.examinations.delete(id)
}

func (s *Store) imagesByExamination(examinationID int64) []*model.MedicalImage {
	var out []*model.MedicalImage
	for _, img := range s.images.all() {
		if img.ExaminationID == examinationID {
			out = append(out, img)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadDateTime.After(out[j].UploadDateTime) })
	return out
}

func (s *Store) prescriptionsByExamination(examinationID int64) []*model.Prescription {
	var out []*model.Prescription
	for _, p := range s.prescriptions.all() {
		if p.ExaminationID == examinationID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}
