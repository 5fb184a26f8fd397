package memory

import (
	"context"
	"sort"

	"github.com/medisys/clinical-api/internal/model"
	apperr "github.com/medisys/clinical-api/pkg/errors"
)

type medicalHistoryRepository struct {
	store *Store
}

func flatHistory(h *model.MedicalHistory) *model.MedicalHistory {
	cp := *h
	cp.Patient = nil
	return &cp
}

func (r *medicalHistoryRepository) List(ctx context.Context) ([]*model.MedicalHistory, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	histories := s.histories.all()
	for _, h := range histories {
		h.Patient, _ = s.patients.get(h.PatientID)
	}
	sort.Slice(histories, func(i, j int) bool { return histories[i].StartDate.After(histories[j].StartDate) })
	return histories, nil
}

func (r *medicalHistoryRepository) Get(ctx context.Context, id int64) (*model.MedicalHistory, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.histories.get(id)
	if !ok {
		return nil, apperr.NotFound("medical history", id)
	}
	h.Patient, _ = s.patients.get(h.PatientID)
	return h, nil
}

func (r *medicalHistoryRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.MedicalHistory, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	histories := s.historiesByPatient(patientID)
	for _, h := range histories {
		h.Patient, _ = s.patients.get(h.PatientID)
	}
	return histories, nil
}

func (r *medicalHistoryRepository) ListActiveByPatient(ctx context.Context, patientID int64) ([]*model.MedicalHistory, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.MedicalHistory
	for _, h := range s.historiesByPatient(patientID) {
		if h.EndDate == nil {
			h.Patient, _ = s.patients.get(h.PatientID)
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *medicalHistoryRepository) Create(ctx context.Context, history *model.MedicalHistory) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := flatHistory(history)
	s.histories.add(rec)
	history.SetKey(rec.ID, rec.Version)
	return nil
}

func (r *medicalHistoryRepository) Update(ctx context.Context, history *model.MedicalHistory) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := flatHistory(history)
	switch s.histories.update(rec) {
	case updateNotFound:
		return apperr.NotFound("medical history", history.ID)
	case updateConflict:
		return apperr.Conflict("medical history %d was modified by another request", history.ID)
	}
	history.SetKey(rec.ID, rec.Version)
	return nil
}

func (r *medicalHistoryRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.histories.delete(id) {
		return apperr.NotFound("medical history", id)
	}
	return nil
}

func (r *medicalHistoryRepository) Exists(ctx context.Context, id int64) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.histories.exists(id), nil
}

func (r *medicalHistoryRepository) Count(ctx context.Context) (int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.histories.count(), nil
}
