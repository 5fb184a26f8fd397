package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/medisys/clinical-api/internal/model"
	"github.com/medisys/clinical-api/internal/repository"
	apperr "github.com/medisys/clinical-api/pkg/errors"
)

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, `SELECT * FROM patients ORDER BY id`); err != nil {
		return nil, apperr.Unavailable(err)
	}
	if err := r.attachHistories(ctx, patients); err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, `SELECT * FROM patients WHERE id = $1`, id); err != nil {
		return nil, getErr(err, "patient", id)
	}
	if err := r.attachHistories(ctx, []*model.Patient{&patient}); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) GetWithDetails(ctx context.Context, id int64) (*model.Patient, error) {
	patient, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.db.SelectContext(ctx, &patient.Examinations,
		`SELECT * FROM examinations WHERE patient_id = $1 ORDER BY examination_datetime DESC`, id); err != nil {
		return nil, apperr.Unavailable(err)
	}
	if err := attachDoctors(ctx, r.db, patient.Examinations); err != nil {
		return nil, err
	}
	examIDs := make([]int64, 0, len(patient.Examinations))
	for _, e := range patient.Examinations {
		examIDs = append(examIDs, e.ID)
	}
	images, err := imagesByExaminationIDs(ctx, r.db, examIDs)
	if err != nil {
		return nil, err
	}
	for _, e := range patient.Examinations {
		e.MedicalImages = images[e.ID]
	}

	if err := r.db.SelectContext(ctx, &patient.Prescriptions,
		`SELECT * FROM prescriptions WHERE patient_id = $1 ORDER BY prescription_date DESC`, id); err != nil {
		return nil, apperr.Unavailable(err)
	}
	doctorIDs := make([]int64, 0, len(patient.Prescriptions))
	for _, p := range patient.Prescriptions {
		doctorIDs = append(doctorIDs, p.DoctorID)
	}
	doctors, err := doctorsByIDs(ctx, r.db, doctorIDs)
	if err != nil {
		return nil, err
	}
	for _, p := range patient.Prescriptions {
		p.Doctor = doctors[p.DoctorID]
	}

	return patient, nil
}

func (r *patientRepository) GetByPersonalIDNumber(ctx context.Context, personalID string) (*model.Patient, error) {
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, `SELECT * FROM patients WHERE personal_id_number = $1`, personalID); err != nil {
		return nil, getErr(err, "patient", personalID)
	}
	return &patient, nil
}

func (r *patientRepository) SearchByLastName(ctx context.Context, lastName string) ([]*model.Patient, error) {
	var patients []*model.Patient
	query := `SELECT * FROM patients WHERE LOWER(last_name) LIKE '%' || LOWER($1) || '%' ORDER BY id`
	if err := r.db.SelectContext(ctx, &patients, query, lastName); err != nil {
		return nil, apperr.Unavailable(err)
	}
	return patients, nil
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (first_name, last_name, personal_id_number, date_of_birth, gender, version)
		VALUES ($1, $2, $3, $4, $5, 1)
		RETURNING id
	`
	err := r.db.GetContext(ctx, &patient.ID, query,
		patient.FirstName,
		patient.LastName,
		patient.PersonalIDNumber,
		patient.DateOfBirth,
		patient.Gender,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("patient with personal ID number %s already exists", patient.PersonalIDNumber)
		}
		return apperr.Unavailable(err)
	}
	patient.Version = 1
	return nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET first_name = $1, last_name = $2, personal_id_number = $3,
		    date_of_birth = $4, gender = $5, version = version + 1
		WHERE id = $6 AND version = $7
	`
	res, err := r.db.ExecContext(ctx, query,
		patient.FirstName,
		patient.LastName,
		patient.PersonalIDNumber,
		patient.DateOfBirth,
		patient.Gender,
		patient.ID,
		patient.Version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("patient with personal ID number %s already exists", patient.PersonalIDNumber)
		}
		return apperr.Unavailable(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Unavailable(err)
	}
	if n == 0 {
		return checkVersionedWrite(ctx, r.db, "patients", "patient", patient.ID)
	}
	patient.Version++
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return apperr.Unavailable(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Unavailable(err)
	}
	if n == 0 {
		return apperr.NotFound("patient", id)
	}
	return nil
}

func (r *patientRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return existsByID(ctx, r.db, "patients", id)
}

func (r *patientRepository) Count(ctx context.Context) (int64, error) {
	return countAll(ctx, r.db, "patients")
}

func (r *patientRepository) attachHistories(ctx context.Context, patients []*model.Patient) error {
	if len(patients) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(patients))
	for _, p := range patients {
		ids = append(ids, p.ID)
	}
	query, args, err := sqlx.In(`SELECT * FROM medical_histories WHERE patient_id IN (?) ORDER BY start_date DESC`, ids)
	if err != nil {
		return apperr.Unavailable(err)
	}
	var histories []*model.MedicalHistory
	if err := r.db.SelectContext(ctx, &histories, r.db.Rebind(query), args...); err != nil {
		return apperr.Unavailable(err)
	}
	byPatient := make(map[int64][]*model.MedicalHistory)
	for _, h := range histories {
		byPatient[h.PatientID] = append(byPatient[h.PatientID], h)
	}
	for _, p := range patients {
		p.MedicalHistories = byPatient[p.ID]
	}
	return nil
}
