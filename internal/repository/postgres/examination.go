package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/medisys/clinical-api/internal/model"
	"github.com/medisys/clinical-api/internal/repository"
	apperr "github.com/medisys/clinical-api/pkg/errors"
)

type examinationRepository struct {
	db *sqlx.DB
}

func NewExaminationRepository(db *sqlx.DB) repository.ExaminationRepository {
	return &examinationRepository{db: db}
}

func (r *examinationRepository) List(ctx context.Context) ([]*model.Examination, error) {
	var exams []*model.Examination
	if err := r.db.SelectContext(ctx, &exams, `SELECT * FROM examinations ORDER BY examination_datetime DESC`); err != nil {
		return nil, apperr.Unavailable(err)
	}
	if err := attachPatients(ctx, r.db, exams); err != nil {
		return nil, err
	}
	if err := attachDoctors(ctx, r.db, exams); err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examinationRepository) Get(ctx context.Context, id int64) (*model.Examination, error) {
	var exam model.Examination
	if err := r.db.GetContext(ctx, &exam, `SELECT * FROM examinations WHERE id = $1`, id); err != nil {
		return nil, getErr(err, "examination", id)
	}
	return &exam, nil
}

func (r *examinationRepository) GetWithDetails(ctx context.Context, id int64) (*model.Examination, error) {
	exam, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	exams := []*model.Examination{exam}
	if err := attachPatients(ctx, r.db, exams); err != nil {
		return nil, err
	}
	if err := attachDoctors(ctx, r.db, exams); err != nil {
		return nil, err
	}
	images, err := imagesByExaminationIDs(ctx, r.db, []int64{id})
	if err != nil {
		return nil, err
	}
	exam.MedicalImages = images[id]
	prescriptions, err := prescriptionsByExaminationIDs(ctx, r.db, []int64{id})
	if err != nil {
		return nil, err
	}
	exam.Prescriptions = prescriptions[id]
	return exam, nil
}

func (r *examinationRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Examination, error) {
	var exams []*model.Examination
	if err := r.db.SelectContext(ctx, &exams,
		`SELECT * FROM examinations WHERE patient_id = $1 ORDER BY examination_datetime DESC`, patientID); err != nil {
		return nil, apperr.Unavailable(err)
	}
	if err := attachDoctors(ctx, r.db, exams); err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examinationRepository) ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Examination, error) {
	var exams []*model.Examination
	if err := r.db.SelectContext(ctx, &exams,
		`SELECT * FROM examinations WHERE doctor_id = $1 ORDER BY examination_datetime DESC`, doctorID); err != nil {
		return nil, apperr.Unavailable(err)
	}
	if err := attachPatients(ctx, r.db, exams); err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examinationRepository) Create(ctx context.Context, exam *model.Examination) error {
	query := `
		INSERT INTO examinations (patient_id, doctor_id, examination_type, examination_datetime, notes, version)
		VALUES ($1, $2, $3, $4, $5, 1)
		RETURNING id
	`
	err := r.db.GetContext(ctx, &exam.ID, query,
		exam.PatientID,
		exam.DoctorID,
		exam.Type,
		exam.DateTime,
		exam.Notes,
	)
	if err != nil {
		return apperr.Unavailable(err)
	}
	exam.Version = 1
	return nil
}

func (r *examinationRepository) Update(ctx context.Context, exam *model.Examination) error {
	query := `
		UPDATE examinations
		SET patient_id = $1, doctor_id = $2, examination_type = $3,
		    examination_datetime = $4, notes = $5, version = version + 1
		WHERE id = $6 AND version = $7
	`
	res, err := r.db.ExecContext(ctx, query,
		exam.PatientID,
		exam.DoctorID,
		exam.Type,
		exam.DateTime,
		exam.Notes,
		exam.ID,
		exam.Version,
	)
	if err != nil {
		return apperr.Unavailable(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Unavailable(err)
	}
	if n == 0 {
		return checkVersionedWrite(ctx, r.db, "examinations", "examination", exam.ID)
	}
	exam.Version++
	return nil
}

func (r *examinationRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM examinations WHERE id = $1`, id)
	if err != nil {
		return apperr.Unavailable(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Unavailable(err)
	}
	if n == 0 {
		return apperr.NotFound("examination", id)
	}
	return nil
}

func (r *examinationRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return existsByID(ctx, r.db, "examinations", id)
}

func (r *examinationRepository) Count(ctx context.Context) (int64, error) {
	return countAll(ctx, r.db, "examinations")
}
