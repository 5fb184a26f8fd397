package memory

import (
	"context"
	"sort"

	"github.com/medisys/clinical-api/internal/model"
	apperr "github.com/medisys/clinical-api/pkg/errors"
)

type doctorRepository struct {
	store *Store
}

func flatDoctor(d *model.Doctor) *model.Doctor {
	cp := *d
	cp.Examinations = nil
	cp.Prescriptions = nil
	return &cp
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	doctors := s.doctors.all()
	for _, d := range doctors {
		d.Examinations = s.examinationsByDoctor(d.ID)
	}
	return doctors, nil
}

func (r *doctorRepository) ListWithExaminations(ctx context.Context) ([]*model.Doctor, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	doctors := s.doctors.all()
	for _, d := range doctors {
		s.expandDoctor(d)
	}
	return doctors, nil
}

func (r *doctorRepository) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.doctors.get(id)
	if !ok {
		return nil, apperr.NotFound("doctor", id)
	}
	d.Examinations = s.examinationsByDoctor(id)
	return d, nil
}

func (r *doctorRepository) GetWithDetails(ctx context.Context, id int64) (*model.Doctor, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.doctors.get(id)
	if !ok {
		return nil, apperr.NotFound("doctor", id)
	}
	s.expandDoctor(d)
	return d, nil
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := flatDoctor(doctor)
	s.doctors.add(rec)
	doctor.SetKey(rec.ID, rec.Version)
	return nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := flatDoctor(doctor)
	switch s.doctors.update(rec) {
	case updateNotFound:
		return apperr.NotFound("doctor", doctor.ID)
	case updateConflict:
		return apperr.Conflict("doctor %d was modified by another request", doctor.ID)
	}
	doctor.SetKey(rec.ID, rec.Version)
	return nil
}

// Delete enforces the schema's RESTRICT rule: a referenced doctor cannot
// be removed.
func (r *doctorRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.doctors.exists(id) {
		return apperr.NotFound("doctor", id)
	}
	for _, e := range s.examinations.all() {
		if e.DoctorID == id {
			return apperr.Conflict("cannot delete doctor %d: examinations reference it", id)
		}
	}
	for _, p := range s.prescriptions.all() {
		if p.DoctorID == id {
			return apperr.Conflict("cannot delete doctor %d: prescriptions reference it", id)
		}
	}
	s.doctors.delete(id)
	return nil
}

func (r *doctorRepository) Exists(ctx context.Context, id int64) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doctors.exists(id), nil
}

func (r *doctorRepository) Count(ctx context.Context) (int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doctors.count(), nil
}

func (s *Store) expandDoctor(d *model.Doctor) {
	d.Examinations = s.examinationsByDoctor(d.ID)
	for _, e := range d.Examinations {
		e.Patient, _ = s.patients.get(e.PatientID)
	}
	d.Prescriptions = s.prescriptionsByDoctor(d.ID)
	for _, p := range d.Prescriptions {
		p.Patient, _ = s.patients.get(p.PatientID)
	}
}

func (s *Store) examinationsByDoctor(doctorID int64) []*model.Examination {
	var out []*model.Examination
	for _, e := range s.examinations.all() {
		if e.DoctorID == doctorID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateTime.After(out[j].DateTime) })
	return out
}

func (s *Store) prescriptionsByDoctor(doctorID int64) []*model.Prescription {
	var out []*model.Prescription
	for _, p := range s.prescriptions.all() {
		if p.DoctorID == doctorID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}
