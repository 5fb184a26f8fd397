package doctor

import (
	"context"

	"github.com/medisys/clinical-api/internal/model"
	"github.com/medisys/clinical-api/internal/repository"
	apperr "github.com/medisys/clinical-api/pkg/errors"
)

type DoctorService interface {
	GetAll(ctx context.Context) ([]*model.Doctor, error)
	GetAllWithExaminations(ctx context.Context) ([]*model.Doctor, error)
	GetByID(ctx context.Context, id int64) (*model.Doctor, error)
	GetWithDetails(ctx context.Context, id int64) (*model.Doctor, error)
	Create(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error)
	Update(ctx context.Context, id int64, req *model.UpdateDoctorRequest) (*model.Doctor, error)
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo repository.DoctorRepository
}

func NewService(repo repository.DoctorRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetAll(ctx context.Context) ([]*model.Doctor, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetAllWithExaminations(ctx context.Context) ([]*model.Doctor, error) {
	return s.repo.ListWithExaminations(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*model.Doctor, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) GetWithDetails(ctx context.Context, id int64) (*model.Doctor, error) {
	return s.repo.GetWithDetails(ctx, id)
}

func (s *Service) Create(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	doctor := &model.Doctor{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Specialization: req.Specialization,
	}
	if err := validate(doctor); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *Service) Update(ctx context.Context, id int64, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	doctor := &model.Doctor{
		Base:           model.Base{ID: id, Version: req.Version},
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Specialization: req.Specialization,
	}
	if err := validate(doctor); err != nil {
		return nil, err
	}
	if doctor.Version == 0 {
		doctor.Version = existing.Version
	}
	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

// Delete refuses doctors that examinations or prescriptions still reference.
// The repository re-checks on delete, so a dependent created between the
// expanded read and the delete still cannot be orphaned.
func (s *Service) Delete(ctx context.Context, id int64) error {
	doctor, err := s.repo.GetWithDetails(ctx, id)
	if err != nil {
		return err
	}
	if len(doctor.Examinations) > 0 || len(doctor.Prescriptions) > 0 {
		return apperr.Conflict("doctor %d has examinations or prescriptions and cannot be deleted", id)
	}
	return s.repo.Delete(ctx, id)
}

func validate(doctor *model.Doctor) error {
	if doctor.FirstName == "" || doctor.LastName == "" {
		return apperr.Validation("first name and last name are required")
	}
	if doctor.Specialization == "" {
		return apperr.Validation("specialization is required")
	}
	return nil
}
