package medicalimage

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medisys/clinical-api/internal/model"
	"github.com/medisys/clinical-api/internal/repository"
	"github.com/medisys/clinical-api/pkg/blob"
	apperr "github.com/medisys/clinical-api/pkg/errors"
)

// allowedFileTypes is the upload allow-list. Anything else is rejected
// before the bytes touch the blob store.
var allowedFileTypes = map[string]struct{}{
	"image/jpeg":  {},
	"image/png":   {},
	"image/dicom": {},
}

type MedicalImageService interface {
	GetAll(ctx context.Context) ([]*model.MedicalImage, error)
	GetByID(ctx context.Context, id int64) (*model.MedicalImage, error)
	GetByExamination(ctx context.Context, examinationID int64) ([]*model.MedicalImage, error)
	Upload(ctx context.Context, examinationID int64, data []byte, originalName, fileType string) (*model.MedicalImage, error)
	File(ctx context.Context, id int64) (*model.MedicalImage, []byte, error)
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo            repository.MedicalImageRepository
	examinationRepo repository.ExaminationRepository
	blobs           blob.Store
}

func NewService(repo repository.MedicalImageRepository, examinationRepo repository.ExaminationRepository, blobs blob.Store) *Service {
	return &Service{repo: repo, examinationRepo: examinationRepo, blobs: blobs}
}

func (s *Service) GetAll(ctx context.Context) ([]*model.MedicalImage, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*model.MedicalImage, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) GetByExamination(ctx context.Context, examinationID int64) ([]*model.MedicalImage, error) {
	ok, err := s.examinationRepo.Exists(ctx, examinationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("examination", examinationID)
	}
	return s.repo.ListByExamination(ctx, examinationID)
}

func (s *Service) Upload(ctx context.Context, examinationID int64, data []byte, originalName, fileType string) (*model.MedicalImage, error) {
	if len(data) == 0 {
		return nil, apperr.Validation("image file is empty")
	}
	if _, ok := allowedFileTypes[fileType]; !ok {
		return nil, apperr.Validation("file type %s is not allowed", fileType)
	}
	ok, err := s.examinationRepo.Exists(ctx, examinationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Validation("examination %d does not exist", examinationID)
	}

	name, err := s.blobs.Save(ctx, data, originalName)
	if err != nil {
		return nil, err
	}

	image := &model.MedicalImage{
		ExaminationID:  examinationID,
		FileName:       name,
		FileType:       fileType,
		UploadDateTime: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, image); err != nil {
		if delErr := s.blobs.Delete(ctx, name); delErr != nil {
			log.Warn().Err(delErr).Str("file", name).Msg("failed to remove orphaned blob")
		}
		return nil, err
	}
	return image, nil
}

func (s *Service) File(ctx context.Context, id int64) (*model.MedicalImage, []byte, error) {
	image, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.blobs.Open(ctx, image.FileName)
	if err != nil {
		return nil, nil, err
	}
	return image, data, nil
}

// Delete removes the metadata row first; the blob delete is best-effort so a
// straggling file never blocks the API operation.
func (s *Service) Delete(ctx context.Context, id int64) error {
	image, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, image.FileName); err != nil {
		log.Warn().Err(err).Str("file", image.FileName).Msg("failed to delete image blob")
	}
	return nil
}
