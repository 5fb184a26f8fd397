// Package postgres implements the repository contracts over sqlx. Eager
// relationship loads are explicit secondary queries per named variant, and
// updates are versioned full-record replaces: the WHERE clause carries the
// caller's concurrency token, so a lost race surfaces as Conflict instead
// of a silent overwrite.
package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/medisys/clinical-api/internal/model"
	apperr "github.com/medisys/clinical-api/pkg/errors"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// getErr translates a single-row read failure.
func getErr(err error, resource string, id interface{}) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(resource, id)
	}
	return apperr.Unavailable(err)
}

// checkVersionedWrite classifies an UPDATE that matched no rows: the row is
// either gone (NotFound) or its version moved (Conflict).
func checkVersionedWrite(ctx context.Context, db *sqlx.DB, table, resource string, id int64) error {
	var exists bool
	if err := db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, id); err != nil {
		return apperr.Unavailable(err)
	}
	if !exists {
		return apperr.NotFound(resource, id)
	}
	return apperr.Conflict("%s %d was modified by another request", resource, id)
}

func existsByID(ctx context.Context, db *sqlx.DB, table string, id int64) (bool, error) {
	var exists bool
	if err := db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, id); err != nil {
		return false, apperr.Unavailable(err)
	}
	return exists, nil
}

func countAll(ctx context.Context, db *sqlx.DB, table string) (int64, error) {
	var n int64
	if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM `+table); err != nil {
		return 0, apperr.Unavailable(err)
	}
	return n, nil
}

func patientsByIDs(ctx context.Context, db *sqlx.DB, ids []int64) (map[int64]*model.Patient, error) {
	out := make(map[int64]*model.Patient)
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`SELECT * FROM patients WHERE id IN (?)`, ids)
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	var patients []*model.Patient
	if err := db.SelectContext(ctx, &patients, db.Rebind(query), args...); err != nil {
		return nil, apperr.Unavailable(err)
	}
	for _, p := range patients {
		out[p.ID] = p
	}
	return out, nil
}

func doctorsByIDs(ctx context.Context, db *sqlx.DB, ids []int64) (map[int64]*model.Doctor, error) {
	out := make(map[int64]*model.Doctor)
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`SELECT * FROM doctors WHERE id IN (?)`, ids)
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	var doctors []*model.Doctor
	if err := db.SelectContext(ctx, &doctors, db.Rebind(query), args...); err != nil {
		return nil, apperr.Unavailable(err)
	}
	for _, d := range doctors {
		out[d.ID] = d
	}
	return out, nil
}

func examinationsByIDs(ctx context.Context, db *sqlx.DB, ids []int64) (map[int64]*model.Examination, error) {
	out := make(map[int64]*model.Examination)
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`SELECT * FROM examinations WHERE id IN (?)`, ids)
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	var exams []*model.Examination
	if err := db.SelectContext(ctx, &exams, db.Rebind(query), args...); err != nil {
		return nil, apperr.Unavailable(err)
	}
	for _, e := range exams {
		out[e.ID] = e
	}
	return out, nil
}

func imagesByExaminationIDs(ctx context.Context, db *sqlx.DB, ids []int64) (map[int64][]*model.MedicalImage, error) {
	out := make(map[int64][]*model.MedicalImage)
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`SELECT * FROM medical_images WHERE examination_id IN (?) ORDER BY upload_datetime DESC`, ids)
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	var images []*model.MedicalImage
	if err := db.SelectContext(ctx, &images, db.Rebind(query), args...); err != nil {
		return nil, apperr.Unavailable(err)
	}
	for _, img := range images {
		out[img.ExaminationID] = append(out[img.ExaminationID], img)
	}
	return out, nil
}

func prescriptionsByExaminationIDs(ctx context.Context, db *sqlx.DB, ids []int64) (map[int64][]*model.Prescription, error) {
	out := make(map[int64][]*model.Prescription)
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`SELECT * FROM prescriptions WHERE examination_id IN (?) ORDER BY prescription_date DESC`, ids)
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	var prescriptions []*model.Prescription
	if err := db.SelectContext(ctx, &prescriptions, db.Rebind(query), args...); err != nil {
		return nil, apperr.Unavailable(err)
	}
	for _, p := range prescriptions {
		out[p.ExaminationID] = append(out[p.ExaminationID], p)
	}
	return out, nil
}

func attachDoctors(ctx context.Context, db *sqlx.DB, exams []*model.Examination) error {
	ids := make([]int64, 0, len(exams))
	for _, e := range exams {
		ids = append(ids, e.DoctorID)
	}
	doctors, err := doctorsByIDs(ctx, db, ids)
	if err != nil {
		return err
	}
	for _, e := range exams {
		e.Doctor = doctors[e.DoctorID]
	}
	return nil
}

func attachPatients(ctx context.Context, db *sqlx.DB, exams []*model.Examination) error {
	ids := make([]int64, 0, len(exams))
	for _, e := range exams {
		ids = append(ids, e.PatientID)
	}
	patients, err := patientsByIDs(ctx, db, ids)
	if err != nil {
		return err
	}
	for _, e := range exams {
		e.Patient = patients[e.PatientID]
	}
	return nil
}
