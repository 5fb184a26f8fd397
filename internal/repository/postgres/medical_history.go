package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/medisys/clinical-api/internal/model"
	"github.com/medisys/clinical-api/internal/repository"
	apperr "github.com/medisys/clinical-api/pkg/errors"
)

type medicalHistoryRepository struct {
	db *sqlx.DB
}

func NewMedicalHistoryRepository(db *sqlx.DB) repository.MedicalHistoryRepository {
	return &medicalHistoryRepository{db: db}
}

func (r *medicalHistoryRepository) List(ctx context.Context) ([]*model.MedicalHistory, error) {
	var histories []*model.MedicalHistory
	if err := r.db.SelectContext(ctx, &histories, `SELECT * FROM medical_histories ORDER BY start_date DESC`); err != nil {
		return nil, apperr.Unavailable(err)
	}
	if err := r.attachPatients(ctx, histories); err != nil {
		return nil, err
	}
	return histories, nil
}

func (r *medicalHistoryRepository) Get(ctx context.Context, id int64) (*model.MedicalHistory, error) {
	var history model.MedicalHistory
	if err := r.db.GetContext(ctx, &history, `SELECT * FROM medical_histories WHERE id = $1`, id); err != nil {
		return nil, getErr(err, "medical history", id)
	}
	if err := r.attachPatients(ctx, []*model.MedicalHistory{&history}); err != nil {
		return nil, err
	}
	return &history, nil
}

func (r *medicalHistoryRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.MedicalHistory, error) {
	var histories []*model.MedicalHistory
	if err := r.db.SelectContext(ctx, &histories,
		`SELECT * FROM medical_histories WHERE patient_id = $1 ORDER BY start_date DESC`, patientID); err != nil {
		return nil, apperr.Unavailable(err)
	}
	return histories, nil
}

func (r *medicalHistoryRepository) ListActiveByPatient(ctx context.Context, patientID int64) ([]*model.MedicalHistory, error) {
	var histories []*model.MedicalHistory
	if err := r.db.SelectContext(ctx, &histories,
		`SELECT * FROM medical_histories WHERE patient_id = $1 AND end_date IS NULL ORDER BY start_date DESC`, patientID); err != nil {
		return nil, apperr.Unavailable(err)
	}
	return histories, nil
}

func (r *medicalHistoryRepository) Create(ctx context.Context, history *model.MedicalHistory) error {
	query := `
		INSERT INTO medical_histories (patient_id, disease_name, start_date, end_date, version)
		VALUES ($1, $2, $3, $4, 1)
		RETURNING id
	`
	err := r.db.GetContext(ctx, &history.ID, query,
		history.PatientID,
		history.DiseaseName,
		history.StartDate,
		history.EndDate,
	)
	if err != nil {
		return apperr.Unavailable(err)
	}
	history.Version = 1
	return nil
}

func (r *medicalHistoryRepository) Update(ctx context.Context, history *model.MedicalHistory) error {
	query := `
		UPDATE medical_histories
		SET patient_id = $1, disease_name = $2, start_date = $3, end_date = $4, version = version + 1
		WHERE id = $5 AND version = $6
	`
	res, err := r.db.ExecContext(ctx, query,
		history.PatientID,
		history.DiseaseName,
		history.StartDate,
		history.EndDate,
		history.ID,
		history.Version,
	)
	if err != nil {
		return apperr.Unavailable(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Unavailable(err)
	}
	if n == 0 {
		return checkVersionedWrite(ctx, r.db, "medical_histories", "medical history", history.ID)
	}
	history.Version++
	return nil
}

func (r *medicalHistoryRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM medical_histories WHERE id = $1`, id)
	if err != nil {
		return apperr.Unavailable(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Unavailable(err)
	}
	if n == 0 {
		return apperr.NotFound("medical history", id)
	}
	return nil
}

func (r *medicalHistoryRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return existsByID(ctx, r.db, "medical_histories", id)
}

func (r *medicalHistoryRepository) Count(ctx context.Context) (int64, error) {
	return countAll(ctx, r.db, "medical_histories")
}

func (r *medicalHistoryRepository) attachPatients(ctx context.Context, histories []*model.MedicalHistory) error {
	ids := make([]int64, 0, len(histories))
	for _, h := range histories {
		ids = append(ids, h.PatientID)
	}
	patients, err := patientsByIDs(ctx, r.db, ids)
	if err != nil {
		return err
	}
	for _, h := range histories {
		h.Patient = patients[h.PatientID]
	}
	return nil
}
