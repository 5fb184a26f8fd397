package prescription

import (
	"context"
	"strings"
	"time"

	"github.com/medisys/clinical-api/internal/model"
	"github.com/medisys/clinical-api/internal/repository"
	apperr "github.com/medisys/clinical-api/pkg/errors"
)

type PrescriptionService interface {
	GetAll(ctx context.Context) ([]*model.Prescription, error)
	GetByID(ctx context.Context, id int64) (*model.Prescription, error)
	GetByPatient(ctx context.Context, patientID int64) ([]*model.Prescription, error)
	GetByDoctor(ctx context.Context, doctorID int64) ([]*model.Prescription, error)
	Create(ctx context.Context, req *model.CreatePrescriptionRequest) (*model.Prescription, error)
	Update(ctx context.Context, id int64, req *model.UpdatePrescriptionRequest) (*model.Prescription, error)
	Delete(ctx context.Context, id int64) error
	ExportPDF(ctx context.Context, id int64) ([]byte, error)
}

type Service struct {
	repo            repository.PrescriptionRepository
	examinationRepo repository.ExaminationRepository
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
}

func NewService(
	repo repository.PrescriptionRepository,
	examinationRepo repository.ExaminationRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
) *Service {
	return &Service{
		repo:            repo,
		examinationRepo: examinationRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
	}
}

func (s *Service) GetAll(ctx context.Context) ([]*model.Prescription, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*model.Prescription, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) GetByPatient(ctx context.Context, patientID int64) ([]*model.Prescription, error) {
	ok, err := s.patientRepo.Exists(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("patient", patientID)
	}
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) GetByDoctor(ctx context.Context, doctorID int64) ([]*model.Prescription, error) {
	ok, err := s.doctorRepo.Exists(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("doctor", doctorID)
	}
	return s.repo.ListByDoctor(ctx, doctorID)
}

func (s *Service) Create(ctx context.Context, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	prescription := &model.Prescription{
		ExaminationID: req.ExaminationID,
		PatientID:     req.PatientID,
		DoctorID:      req.DoctorID,
		Medication:    req.Medication,
		Dosage:        req.Dosage,
		Instructions:  req.Instructions,
		Date:          req.Date.UTC(),
	}
	if err := s.validate(ctx, prescription); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, prescription); err != nil {
		return nil, err
	}
	return prescription, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *model.UpdatePrescriptionRequest) (*model.Prescription, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	prescription := &model.Prescription{
		Base:          model.Base{ID: id, Version: req.Version},
		ExaminationID: req.ExaminationID,
		PatientID:     req.PatientID,
		DoctorID:      req.DoctorID,
		Medication:    req.Medication,
		Dosage:        req.Dosage,
		Instructions:  req.Instructions,
		Date:          req.Date.UTC(),
	}
	if err := s.validate(ctx, prescription); err != nil {
		return nil, err
	}
	if prescription.Version == 0 {
		prescription.Version = existing.Version
	}
	if err := s.repo.Update(ctx, prescription); err != nil {
		return nil, err
	}
	return prescription, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// ExportPDF is a stable endpoint whose rendering is not built yet. Callers
// get a deterministic Unimplemented outcome rather than an ad hoc failure.
func (s *Service) ExportPDF(ctx context.Context, id int64) ([]byte, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}
	return nil, apperr.Unimplemented("prescription PDF export")
}

func (s *Service) validate(ctx context.Context, prescription *model.Prescription) error {
	if strings.TrimSpace(prescription.Medication) == "" {
		return apperr.Validation("medication is required")
	}
	if strings.TrimSpace(prescription.Dosage) == "" {
		return apperr.Validation("dosage is required")
	}
	if strings.TrimSpace(prescription.Instructions) == "" {
		return apperr.Validation("instructions are required")
	}
	if prescription.Date.After(time.Now().UTC()) {
		return apperr.Validation("prescription date cannot be in the future")
	}

	ok, err := s.patientRepo.Exists(ctx, prescription.PatientID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Validation("patient %d does not exist", prescription.PatientID)
	}
	ok, err = s.doctorRepo.Exists(ctx, prescription.DoctorID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Validation("doctor %d does not exist", prescription.DoctorID)
	}

	exam, err := s.examinationRepo.Get(ctx, prescription.ExaminationID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return apperr.Validation("examination %d does not exist", prescription.ExaminationID)
		}
		return err
	}
	if exam.PatientID != prescription.PatientID {
		return apperr.Validation("prescription patient does not match the examination's patient")
	}
	if exam.DoctorID != prescription.DoctorID {
		return apperr.Validation("prescription doctor does not match the examination's doctor")
	}
	return nil
}
