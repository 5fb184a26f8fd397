package prescription

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisys/clinical-api/internal/model"
	"github.com/medisys/clinical-api/internal/repository/memory"
	apperr "github.com/medisys/clinical-api/pkg/errors"
)

type fixture struct {
	store   *memory.Store
	svc     *Service
	patient *model.Patient
	doctor  *model.Doctor
	exam    *model.Examination
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	patient := &model.Patient{
		FirstName: "Ana", LastName: "Kovač", PersonalIDNumber: "12345678901",
		DateOfBirth: time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC), Gender: "F",
	}
	require.NoError(t, store.Patients().Create(ctx, patient))

	doctor := &model.Doctor{FirstName: "Ivan", LastName: "Horvat", Specialization: "radiology"}
	require.NoError(t, store.Doctors().Create(ctx, doctor))

	exam := &model.Examination{
		PatientID: patient.ID, DoctorID: doctor.ID,
		Type: model.ExaminationTypeXRAY, DateTime: time.Now().UTC(), Notes: "chest",
	}
	require.NoError(t, store.Examinations().Create(ctx, exam))

	svc := NewService(store.Prescriptions(), store.Examinations(), store.Patients(), store.Doctors())
	return fixture{store: store, svc: svc, patient: patient, doctor: doctor, exam: exam}
}

func (f fixture) createReq() *model.CreatePrescriptionRequest {
	return &model.CreatePrescriptionRequest{
		ExaminationID: f.exam.ID,
		PatientID:     f.patient.ID,
		DoctorID:      f.doctor.ID,
		Medication:    "Ibuprofen",
		Dosage:        "200mg",
		Instructions:  "after meals",
		Date:          time.Now().UTC().Add(-time.Hour),
	}
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	created, err := f.svc.Create(ctx, f.createReq())
	require.NoError(t, err)

	got, err := f.svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Medication, got.Medication)
	assert.Equal(t, created.Dosage, got.Dosage)
	assert.Equal(t, created.Instructions, got.Instructions)
}

func TestCreateRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	cases := map[string]func(*model.CreatePrescriptionRequest){
		"missing medication":   func(r *model.CreatePrescriptionRequest) { r.Medication = "" },
		"missing dosage":       func(r *model.CreatePrescriptionRequest) { r.Dosage = " " },
		"missing instructions": func(r *model.CreatePrescriptionRequest) { r.Instructions = "" },
		"future date":          func(r *model.CreatePrescriptionRequest) { r.Date = time.Now().UTC().Add(time.Hour) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := f.createReq()
			mutate(req)
			_, err := f.svc.Create(ctx, req)
			assert.True(t, apperr.IsValidation(err), "got %v", err)
		})
	}
}

func TestCreateRejectsMismatchedDoctor(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	other := &model.Doctor{FirstName: "Petra", LastName: "Novak", Specialization: "cardiology"}
	require.NoError(t, f.store.Doctors().Create(ctx, other))

	req := f.createReq()
	req.DoctorID = other.ID
	_, err := f.svc.Create(ctx, req)
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateRejectsMismatchedPatient(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	other := &model.Patient{
		FirstName: "Maja", LastName: "Novak", PersonalIDNumber: "12345678902",
		DateOfBirth: time.Date(1990, 2, 1, 0, 0, 0, 0, time.UTC), Gender: "F",
	}
	require.NoError(t, f.store.Patients().Create(ctx, other))

	req := f.createReq()
	req.PatientID = other.ID
	_, err := f.svc.Create(ctx, req)
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateRequiresExistingExamination(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	req := f.createReq()
	req.ExaminationID = 99
	_, err := f.svc.Create(ctx, req)
	assert.True(t, apperr.IsValidation(err))
}

func TestUpdateStaleVersionConflicts(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	created, err := f.svc.Create(ctx, f.createReq())
	require.NoError(t, err)

	req := &model.UpdatePrescriptionRequest{
		ExaminationID: created.ExaminationID,
		PatientID:     created.PatientID,
		DoctorID:      created.DoctorID,
		Medication:    created.Medication,
		Dosage:        "400mg",
		Instructions:  created.Instructions,
		Date:          created.Date,
		Version:       created.Version,
	}
	_, err = f.svc.Update(ctx, created.ID, req)
	require.NoError(t, err)

	req.Dosage = "600mg"
	_, err = f.svc.Update(ctx, created.ID, req)
	assert.True(t, apperr.IsConflict(err))
}

func TestExportPDFUnimplemented(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	created, err := f.svc.Create(ctx, f.createReq())
	require.NoError(t, err)

	_, err = f.svc.ExportPDF(ctx, created.ID)
	assert.True(t, apperr.IsUnimplemented(err))

	_, err = f.svc.ExportPDF(ctx, 99)
	assert.True(t, apperr.IsNotFound(err))
}
