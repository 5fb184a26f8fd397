package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/medisys/clinical-api/internal/model"
	"github.com/medisys/clinical-api/internal/repository"
	apperr "github.com/medisys/clinical-api/pkg/errors"
)

type prescriptionRepository struct {
	db *sqlx.DB
}

func NewPrescriptionRepository(db *sqlx.DB) repository.PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

func (r *prescriptionRepository) List(ctx context.Context) ([]*model.Prescription, error) {
	var prescriptions []*model.Prescription
	if err := r.db.SelectContext(ctx, &prescriptions, `SELECT * FROM prescriptions ORDER BY prescription_date DESC`); err != nil {
		return nil, apperr.Unavailable(err)
	}
	if err := r.attach(ctx, prescriptions, true, true, true); err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) Get(ctx context.Context, id int64) (*model.Prescription, error) {
	var prescription model.Prescription
	if err := r.db.GetContext(ctx, &prescription, `SELECT * FROM prescriptions WHERE id = $1`, id); err != nil {
		return nil, getErr(err, "prescription", id)
	}
	if err := r.attach(ctx, []*model.Prescription{&prescription}, true, true, true); err != nil {
		return nil, err
	}
	return &prescription, nil
}

func (r *prescriptionRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Prescription, error) {
	var prescriptions []*model.Prescription
	if err := r.db.SelectContext(ctx, &prescriptions,
		`SELECT * FROM prescriptions WHERE patient_id = $1 ORDER BY prescription_date DESC`, patientID); err != nil {
		return nil, apperr.Unavailable(err)
	}
	if err := r.attach(ctx, prescriptions, false, true, true); err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Prescription, error) {
	var prescriptions []*model.Prescription
	if err := r.db.SelectContext(ctx, &prescriptions,
		`SELECT * FROM prescriptions WHERE doctor_id = $1 ORDER BY prescription_date DESC`, doctorID); err != nil {
		return nil, apperr.Unavailable(err)
	}
	if err := r.attach(ctx, prescriptions, true, false, true); err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) Create(ctx context.Context, prescription *model.Prescription) error {
	query := `
		INSERT INTO prescriptions (examination_id, patient_id, doctor_id, medication, dosage, instructions, prescription_date, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 1)
		RETURNING id
	`
	err := r.db.GetContext(ctx, &prescription.ID, query,
		prescription.ExaminationID,
		prescription.PatientID,
		prescription.DoctorID,
		prescription.Medication,
		prescription.Dosage,
		prescription.Instructions,
		prescription.Date,
	)
	if err != nil {
		return apperr.Unavailable(err)
	}
	prescription.Version = 1
	return nil
}

func (r *prescriptionRepository) Update(ctx context.Context, prescription *model.Prescription) error {
	query := `
		UPDATE prescriptions
		SET examination_id = $1, patient_id = $2, doctor_id = $3, medication = $4,
		    dosage = $5, instructions = $6, prescription_date = $7, version = version + 1
		WHERE id = $8 AND version = $9
	`
	res, err := r.db.ExecContext(ctx, query,
		prescription.ExaminationID,
		prescription.PatientID,
		prescription.DoctorID,
		prescription.Medication,
		prescription.Dosage,
		prescription.Instructions,
		prescription.Date,
		prescription.ID,
		prescription.Version,
	)
	if err != nil {
		return apperr.Unavailable(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Unavailable(err)
	}
	if n == 0 {
		return checkVersionedWrite(ctx, r.db, "prescriptions", "prescription", prescription.ID)
	}
	prescription.Version++
	return nil
}

func (r *prescriptionRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM prescriptions WHERE id = $1`, id)
	if err != nil {
		return apperr.Unavailable(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Unavailable(err)
	}
	if n == 0 {
		return apperr.NotFound("prescription", id)
	}
	return nil
}

func (r *prescriptionRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return existsByID(ctx, r.db, "prescriptions", id)
}

func (r *prescriptionRepository) Count(ctx context.Context) (int64, error) {
	return countAll(ctx, r.db, "prescriptions")
}

func (r *prescriptionRepository) attach(ctx context.Context, prescriptions []*model.Prescription, withPatient, withDoctor, withExamination bool) error {
	if len(prescriptions) == 0 {
		return nil
	}
	if withPatient {
		ids := make([]int64, 0, len(prescriptions))
		for _, p := range prescriptions {
			ids = append(ids, p.PatientID)
		}
		patients, err := patientsByIDs(ctx, r.db, ids)
		if err != nil {
			return err
		}
		for _, p := range prescriptions {
			p.Patient = patients[p.PatientID]
		}
	}
	if withDoctor {
		ids := make([]int64, 0, len(prescriptions))
		for _, p := range prescriptions {
			ids = append(ids, p.DoctorID)
		}
		doctors, err := doctorsByIDs(ctx, r.db, ids)
		if err != nil {
			return err
		}
		for _, p := range prescriptions {
			p.Doctor = doctors[p.DoctorID]
		}
	}
	if withExamination {
		ids := make([]int64, 0, len(prescriptions))
		for _, p := range prescriptions {
			ids = append(ids, p.ExaminationID)
		}
		exams, err := examinationsByIDs(ctx, r.db, ids)
		if err != nil {
			return err
		}
		for _, p := range prescriptions {
			p.Examination = exams[p.ExaminationID]
		}
	}
	return nil
}
