package patient

import (
	"context"
	"strings"
	"time"

	"github.com/medisys/clinical-api/internal/model"
	"github.com/medisys/clinical-api/internal/repository"
	apperr "github.com/medisys/clinical-api/pkg/errors"
	"github.com/medisys/clinical-api/pkg/validator"
)

type PatientService interface {
	GetAll(ctx context.Context) ([]*model.Patient, error)
	GetByID(ctx context.Context, id int64) (*model.Patient, error)
	GetWithFullDetails(ctx context.Context, id int64) (*model.Patient, error)
	GetByPersonalIDNumber(ctx context.Context, personalID string) (*model.Patient, error)
	SearchByLastName(ctx context.Context, lastName string) ([]*model.Patient, error)
	Create(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error)
	Update(ctx context.Context, id int64, req *model.UpdatePatientRequest) (*model.Patient, error)
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetAll(ctx context.Context) ([]*model.Patient, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*model.Patient, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) GetWithFullDetails(ctx context.Context, id int64) (*model.Patient, error) {
	return s.repo.GetWithDetails(ctx, id)
}

func (s *Service) GetByPersonalIDNumber(ctx context.Context, personalID string) (*model.Patient, error) {
	if !validator.NationalID(personalID) {
		return nil, apperr.Validation("personal ID number must be exactly 11 digits")
	}
	return s.repo.GetByPersonalIDNumber(ctx, personalID)
}

func (s *Service) SearchByLastName(ctx context.Context, lastName string) ([]*model.Patient, error) {
	if strings.TrimSpace(lastName) == "" {
		return nil, apperr.Validation("last name search term is required")
	}
	return s.repo.SearchByLastName(ctx, lastName)
}

func (s *Service) Create(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	patient := &model.Patient{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		PersonalIDNumber: req.PersonalIDNumber,
		DateOfBirth:      req.DateOfBirth.UTC(),
		Gender:           req.Gender,
	}
	if err := s.validate(patient); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByPersonalIDNumber(ctx, patient.PersonalIDNumber); err == nil {
		return nil, apperr.Conflict("patient with personal ID number %s already exists", patient.PersonalIDNumber)
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *model.UpdatePatientRequest) (*model.Patient, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patient := &model.Patient{
		Base:             model.Base{ID: id, Version: req.Version},
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		PersonalIDNumber: req.PersonalIDNumber,
		DateOfBirth:      req.DateOfBirth.UTC(),
		Gender:           req.Gender,
	}
	if err := s.validate(patient); err != nil {
		return nil, err
	}

	if other, err := s.repo.GetByPersonalIDNumber(ctx, patient.PersonalIDNumber); err == nil {
		if other.ID != id {
			return nil, apperr.Conflict("patient with personal ID number %s already exists", patient.PersonalIDNumber)
		}
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	if patient.Version == 0 {
		patient.Version = existing.Version
	}
	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) validate(patient *model.Patient) error {
	if patient.FirstName == "" || patient.LastName == "" {
		return apperr.Validation("first name and last name are required")
	}
	if !validator.NationalID(patient.PersonalIDNumber) {
		return apperr.Validation("personal ID number must be exactly 11 digits")
	}
	if !patient.DateOfBirth.Before(time.Now().UTC()) {
		return apperr.Validation("date of birth must be in the past")
	}
	switch patient.Gender {
	case "M", "F", "m", "f":
	default:
		return apperr.Validation("gender must be M or F")
	}
	return nil
}
