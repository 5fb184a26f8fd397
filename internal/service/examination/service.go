package examination

import (
	"context"
	"strings"
	"time"

	"github.com/medisys/clinical-api/internal/model"
	"github.com/medisys/clinical-api/internal/repository"
	apperr "github.com/medisys/clinical-api/pkg/errors"
)

type ExaminationService interface {
	GetAll(ctx context.Context) ([]*model.Examination, error)
	GetByID(ctx context.Context, id int64) (*model.Examination, error)
	GetWithDetails(ctx context.Context, id int64) (*model.Examination, error)
	GetByPatient(ctx context.Context, patientID int64) ([]*model.Examination, error)
	GetByDoctor(ctx context.Context, doctorID int64) ([]*model.Examination, error)
	Create(ctx context.Context, req *model.CreateExaminationRequest) (*model.Examination, error)
	Update(ctx context.Context, id int64, req *model.UpdateExaminationRequest) (*model.Examination, error)
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo        repository.ExaminationRepository
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
}

func NewService(repo repository.ExaminationRepository, patientRepo repository.PatientRepository, doctorRepo repository.DoctorRepository) *Service {
	return &Service{repo: repo, patientRepo: patientRepo, doctorRepo: doctorRepo}
}

func (s *Service) GetAll(ctx context.Context) ([]*model.Examination, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*model.Examination, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) GetWithDetails(ctx context.Context, id int64) (*model.Examination, error) {
	return s.repo.GetWithDetails(ctx, id)
}

func (s *Service) GetByPatient(ctx context.Context, patientID int64) ([]*model.Examination, error) {
	ok, err := s.patientRepo.Exists(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("patient", patientID)
	}
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) GetByDoctor(ctx context.Context, doctorID int64) ([]*model.Examination, error) {
	ok, err := s.doctorRepo.Exists(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("doctor", doctorID)
	}
	return s.repo.ListByDoctor(ctx, doctorID)
}

func (s *Service) Create(ctx context.Context, req *model.CreateExaminationRequest) (*model.Examination, error) {
	exam := &model.Examination{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Type:      model.ExaminationType(req.Type),
		DateTime:  req.DateTime.UTC(),
		Notes:     req.Notes,
	}
	if err := s.validate(ctx, exam); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *model.UpdateExaminationRequest) (*model.Examination, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	exam := &model.Examination{
		Base:      model.Base{ID: id, Version: req.Version},
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Type:      model.ExaminationType(req.Type),
		DateTime:  req.DateTime.UTC(),
		Notes:     req.Notes,
	}
	if err := s.validate(ctx, exam); err != nil {
		return nil, err
	}
	if exam.Version == 0 {
		exam.Version = existing.Version
	}
	if err := s.repo.Update(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// validate checks shape and temporal rules before touching the store, so a
// malformed request never costs reference lookups.
func (s *Service) validate(ctx context.Context, exam *model.Examination) error {
	if strings.TrimSpace(exam.Notes) == "" {
		return apperr.Validation("notes are required")
	}
	if !exam.Type.IsValid() {
		return apperr.Validation("unknown examination type %q", string(exam.Type))
	}
	if exam.DateTime.After(time.Now().UTC().AddDate(1, 0, 0)) {
		return apperr.Validation("examination date cannot be more than one year in the future")
	}

	ok, err := s.patientRepo.Exists(ctx, exam.PatientID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Validation("patient %d does not exist", exam.PatientID)
	}
	ok, err = s.doctorRepo.Exists(ctx, exam.DoctorID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Validation("doctor %d does not exist", exam.DoctorID)
	}
	return nil
}
