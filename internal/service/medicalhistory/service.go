package medicalhistory

import (
	"context"
	"strings"
	"time"

	"github.com/medisys/clinical-api/internal/model"
	"github.com/medisys/clinical-api/internal/repository"
	apperr "github.com/medisys/clinical-api/pkg/errors"
)

type MedicalHistoryService interface {
	GetAll(ctx context.Context) ([]*model.MedicalHistory, error)
	GetByID(ctx context.Context, id int64) (*model.MedicalHistory, error)
	GetByPatient(ctx context.Context, patientID int64) ([]*model.MedicalHistory, error)
	GetActiveConditions(ctx context.Context, patientID int64) ([]*model.MedicalHistory, error)
	Create(ctx context.Context, req *model.CreateMedicalHistoryRequest) (*model.MedicalHistory, error)
	Update(ctx context.Context, id int64, req *model.UpdateMedicalHistoryRequest) (*model.MedicalHistory, error)
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo        repository.MedicalHistoryRepository
	patientRepo repository.PatientRepository
}

func NewService(repo repository.MedicalHistoryRepository, patientRepo repository.PatientRepository) *Service {
	return &Service{repo: repo, patientRepo: patientRepo}
}

func (s *Service) GetAll(ctx context.Context) ([]*model.MedicalHistory, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*model.MedicalHistory, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) GetByPatient(ctx context.Context, patientID int64) ([]*model.MedicalHistory, error) {
	if err := s.checkPatient(ctx, patientID); err != nil {
		return nil, err
	}
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) GetActiveConditions(ctx context.Context, patientID int64) ([]*model.MedicalHistory, error) {
	if err := s.checkPatient(ctx, patientID); err != nil {
		return nil, err
	}
	return s.repo.ListActiveByPatient(ctx, patientID)
}

func (s *Service) checkPatient(ctx context.Context, patientID int64) error {
	ok, err := s.patientRepo.Exists(ctx, patientID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("patient", patientID)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, req *model.CreateMedicalHistoryRequest) (*model.MedicalHistory, error) {
	history := &model.MedicalHistory{
		PatientID:   req.PatientID,
		DiseaseName: req.DiseaseName,
		StartDate:   req.StartDate.UTC(),
		EndDate:     normalizeEnd(req.EndDate),
	}
	if err := s.validate(ctx, history); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, history); err != nil {
		return nil, err
	}
	return history, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *model.UpdateMedicalHistoryRequest) (*model.MedicalHistory, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	history := &model.MedicalHistory{
		Base:        model.Base{ID: id, Version: req.Version},
		PatientID:   req.PatientID,
		DiseaseName: req.DiseaseName,
		StartDate:   req.StartDate.UTC(),
		EndDate:     normalizeEnd(req.EndDate),
	}
	if err := s.validate(ctx, history); err != nil {
		return nil, err
	}
	if history.Version == 0 {
		history.Version = existing.Version
	}
	if err := s.repo.Update(ctx, history); err != nil {
		return nil, err
	}
	return history, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) validate(ctx context.Context, history *model.MedicalHistory) error {
	if strings.TrimSpace(history.DiseaseName) == "" {
		return apperr.Validation("disease name is required")
	}
	now := time.Now().UTC()
	if history.StartDate.After(now) {
		return apperr.Validation("start date cannot be in the future")
	}
	if history.EndDate != nil {
		if history.EndDate.After(now) {
			return apperr.Validation("end date cannot be in the future")
		}
		if history.EndDate.Before(history.StartDate) {
			return apperr.Validation("end date cannot be before start date")
		}
	}

	ok, err := s.patientRepo.Exists(ctx, history.PatientID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Validation("patient %d does not exist", history.PatientID)
	}
	return nil
}

func normalizeEnd(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
