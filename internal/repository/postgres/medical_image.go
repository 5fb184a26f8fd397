package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/medisys/clinical-api/internal/model"
	"github.com/medisys/clinical-api/internal/repository"
	apperr "github.com/medisys/clinical-api/pkg/errors"
)

type medicalImageRepository struct {
	db *sqlx.DB
}

func NewMedicalImageRepository(db *sqlx.DB) repository.MedicalImageRepository {
	return &medicalImageRepository{db: db}
}

func (r *medicalImageRepository) List(ctx context.Context) ([]*model.MedicalImage, error) {
	var images []*model.MedicalImage
	if err := r.db.SelectContext(ctx, &images, `SELECT * FROM medical_images ORDER BY upload_datetime DESC`); err != nil {
		return nil, apperr.Unavailable(err)
	}
	if err := r.attachExaminations(ctx, images); err != nil {
		return nil, err
	}
	return images, nil
}

func (r *medicalImageRepository) Get(ctx context.Context, id int64) (*model.MedicalImage, error) {
	var image model.MedicalImage
	if err := r.db.GetContext(ctx, &image, `SELECT * FROM medical_images WHERE id = $1`, id); err != nil {
		return nil, getErr(err, "medical image", id)
	}
	if err := r.attachExaminations(ctx, []*model.MedicalImage{&image}); err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *medicalImageRepository) ListByExamination(ctx context.Context, examinationID int64) ([]*model.MedicalImage, error) {
	var images []*model.MedicalImage
	if err := r.db.SelectContext(ctx, &images,
		`SELECT * FROM medical_images WHERE examination_id = $1 ORDER BY upload_datetime DESC`, examinationID); err != nil {
		return nil, apperr.Unavailable(err)
	}
	return images, nil
}

func (r *medicalImageRepository) Create(ctx context.Context, image *model.MedicalImage) error {
	query := `
		INSERT INTO medical_images (examination_id, file_name, file_type, upload_datetime, version)
		VALUES ($1, $2, $3, $4, 1)
		RETURNING id
	`
	err := r.db.GetContext(ctx, &image.ID, query,
		image.ExaminationID,
		image.FileName,
		image.FileType,
		image.UploadDateTime,
	)
	if err != nil {
		return apperr.Unavailable(err)
	}
	image.Version = 1
	return nil
}

func (r *medicalImageRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM medical_images WHERE id = $1`, id)
	if err != nil {
		return apperr.Unavailable(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Unavailable(err)
	}
	if n == 0 {
		return apperr.NotFound("medical image", id)
	}
	return nil
}

func (r *medicalImageRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return existsByID(ctx, r.db, "medical_images", id)
}

func (r *medicalImageRepository) Count(ctx context.Context) (int64, error) {
	return countAll(ctx, r.db, "medical_images")
}

func (r *medicalImageRepository) attachExaminations(ctx context.Context, images []*model.MedicalImage) error {
	ids := make([]int64, 0, len(images))
	for _, img := range images {
		ids = append(ids, img.ExaminationID)
	}
	exams, err := examinationsByIDs(ctx, r.db, ids)
	if err != nil {
		return err
	}
	for _, img := range images {
		img.Examination = exams[img.ExaminationID]
	}
	return nil
}
