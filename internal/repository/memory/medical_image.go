package memory

import (
	"context"
	"sort"

	"github.com/medisys/clinical-api/internal/model"
	apperr "github.com/medisys/clinical-api/pkg/errors"
)

type medicalImageRepository struct {
	store *Store
}

func flatImage(img *model.MedicalImage) *model.MedicalImage {
	cp := *img
	cp.Examination = nil
	return &cp
}

func (r *medicalImageRepository) List(ctx context.Context) ([]*model.MedicalImage, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	images := s.images.all()
	for _, img := range images {
		img.Examination, _ = s.examinations.get(img.ExaminationID)
	}
	sort.Slice(images, func(i, j int) bool { return images[i].UploadDateTime.After(images[j].UploadDateTime) })
	return images, nil
}

func (r *medicalImageRepository) Get(ctx context.Context, id int64) (*model.MedicalImage, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	img, ok := s.images.get(id)
	if !ok {
		return nil, apperr.NotFound("medical image", id)
	}
	img.Examination, _ = s.examinations.get(img.ExaminationID)
	return img, nil
}

func (r *medicalImageRepository) ListByExamination(ctx context.Context, examinationID int64) ([]*model.MedicalImage, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	images := s.imagesByExamination(examinationID)
	for _, img := range images {
		img.Examination, _ = s.examinations.get(img.ExaminationID)
	}
	return images, nil
}

func (r *medicalImageRepository) Create(ctx context.Context, image *model.MedicalImage) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := flatImage(image)
	s.images.add(rec)
	image.SetKey(rec.ID, rec.Version)
	return nil
}

func (r *medicalImageRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.images.delete(id) {
		return apperr.NotFound("medical image", id)
	}
	return nil
}

func (r *medicalImageRepository) Exists(ctx context.Context, id int64) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.images.exists(id), nil
}

func (r *medicalImageRepository) Count(ctx context.Context) (int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.images.count(), nil
}
