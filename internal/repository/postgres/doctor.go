package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/medisys/clinical-api/internal/model"
	"github.com/medisys/clinical-api/internal/repository"
	apperr "github.com/medisys/clinical-api/pkg/errors"
)

type doctorRepository struct {
	db *sqlx.DB
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, `SELECT * FROM doctors ORDER BY id`); err != nil {
		return nil, apperr.Unavailable(err)
	}
	return doctors, nil
}

func (r *doctorRepository) ListWithExaminations(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(doctors) == 0 {
		return doctors, nil
	}
	ids := make([]int64, 0, len(doctors))
	for _, d := range doctors {
		ids = append(ids, d.ID)
	}
	query, args, err := sqlx.In(`SELECT * FROM examinations WHERE doctor_id IN (?) ORDER BY examination_datetime DESC`, ids)
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	var exams []*model.Examination
	if err := r.db.SelectContext(ctx, &exams, r.db.Rebind(query), args...); err != nil {
		return nil, apperr.Unavailable(err)
	}
	if err := attachPatients(ctx, r.db, exams); err != nil {
		return nil, err
	}
	byDoctor := make(map[int64][]*model.Examination)
	for _, e := range exams {
		byDoctor[e.DoctorID] = append(byDoctor[e.DoctorID], e)
	}
	for _, d := range doctors {
		d.Examinations = byDoctor[d.ID]
	}
	return doctors, nil
}

func (r *doctorRepository) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, `SELECT * FROM doctors WHERE id = $1`, id); err != nil {
		return nil, getErr(err, "doctor", id)
	}
	if err := r.db.SelectContext(ctx, &doctor.Examinations,
		`SELECT * FROM examinations WHERE doctor_id = $1 ORDER BY examination_datetime DESC`, id); err != nil {
		return nil, apperr.Unavailable(err)
	}
	return &doctor, nil
}

func (r *doctorRepository) GetWithDetails(ctx context.Context, id int64) (*model.Doctor, error) {
	doctor, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := attachPatients(ctx, r.db, doctor.Examinations); err != nil {
		return nil, err
	}
	if err := r.db.SelectContext(ctx, &doctor.Prescriptions,
		`SELECT * FROM prescriptions WHERE doctor_id = $1 ORDER BY prescription_date DESC`, id); err != nil {
		return nil, apperr.Unavailable(err)
	}
	patientIDs := make([]int64, 0, len(doctor.Prescriptions))
	for _, p := range doctor.Prescriptions {
		patientIDs = append(patientIDs, p.PatientID)
	}
	patients, err := patientsByIDs(ctx, r.db, patientIDs)
	if err != nil {
		return nil, err
	}
	for _, p := range doctor.Prescriptions {
		p.Patient = patients[p.PatientID]
	}
	return doctor, nil
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (first_name, last_name, specialization, version)
		VALUES ($1, $2, $3, 1)
		RETURNING id
	`
	err := r.db.GetContext(ctx, &doctor.ID, query,
		doctor.FirstName,
		doctor.LastName,
		doctor.Specialization,
	)
	if err != nil {
		return apperr.Unavailable(err)
	}
	doctor.Version = 1
	return nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	query := `
		UPDATE doctors
		SET first_name = $1, last_name = $2, specialization = $3, version = version + 1
		WHERE id = $4 AND version = $5
	`
	res, err := r.db.ExecContext(ctx, query,
		doctor.FirstName,
		doctor.LastName,
		doctor.Specialization,
		doctor.ID,
		doctor.Version,
	)
	if err != nil {
		return apperr.Unavailable(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Unavailable(err)
	}
	if n == 0 {
		return checkVersionedWrite(ctx, r.db, "doctors", "doctor", doctor.ID)
	}
	doctor.Version++
	return nil
}

// Delete refuses to remove a doctor that examinations or prescriptions still
// reference. The foreign keys are RESTRICT as well, so the pre-check only
// improves the error; a racing insert still fails at the constraint.
func (r *doctorRepository) Delete(ctx context.Context, id int64) error {
	var referenced bool
	query := `
		SELECT EXISTS (SELECT 1 FROM examinations WHERE doctor_id = $1)
		    OR EXISTS (SELECT 1 FROM prescriptions WHERE doctor_id = $1)
	`
	if err := r.db.GetContext(ctx, &referenced, query, id); err != nil {
		return apperr.Unavailable(err)
	}
	if referenced {
		return apperr.Conflict("doctor %d has examinations or prescriptions and cannot be deleted", id)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return apperr.Unavailable(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Unavailable(err)
	}
	if n == 0 {
		return apperr.NotFound("doctor", id)
	}
	return nil
}

func (r *doctorRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return existsByID(ctx, r.db, "doctors", id)
}

func (r *doctorRepository) Count(ctx context.Context) (int64, error) {
	return countAll(ctx, r.db, "doctors")
}
