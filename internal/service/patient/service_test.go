package patient

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

func newService() (*Service, *memory.Store) {
	store := memory.NewStore()
	return NewService(store.Patients()), store
}

func createReq() *model.CreatePatientRequest {
	return &model.CreatePatientRequest{
		FirstName:        "Ana",
		LastName:         "Kovač",
		PersonalIDNumber: "12345678901",
		DateOfBirth:      time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC),
		Gender:           "F",
	}
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	created, err := svc.Create(ctx, createReq())
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.FirstName, got.FirstName)
	assert.Equal(t, created.LastName, got.LastName)
	assert.Equal(t, created.PersonalIDNumber, got.PersonalIDNumber)
	assert.Equal(t, created.DateOfBirth, got.DateOfBirth)
	assert.Equal(t, created.Gender, got.Gender)
	assert.Equal(t, created.Version, got.Version)
}

func TestCreateRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	cases := map[string]func(*model.CreatePatientRequest){
		"short personal id":  func(r *model.CreatePatientRequest) { r.PersonalIDNumber = "123" },
		"alpha personal id":  func(r *model.CreatePatientRequest) { r.PersonalIDNumber = "1234567890a" },
		"future birth date":  func(r *model.CreatePatientRequest) { r.DateOfBirth = time.Now().UTC().AddDate(1, 0, 0) },
		"unknown gender":     func(r *model.CreatePatientRequest) { r.Gender = "X" },
		"missing first name": func(r *model.CreatePatientRequest) { r.FirstName = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := createReq()
			mutate(req)
			_, err := svc.Create(ctx, req)
			assert.True(t, apperr.IsValidation(err), "got %v", err)
		})
	}
}

func TestCreateDuplicatePersonalIDConflicts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, err := svc.Create(ctx, createReq())
	require.NoError(t, err)

	dup := createReq()
	dup.FirstName = "Ivana"
	_, err = svc.Create(ctx, dup)
	assert.True(t, apperr.IsConflict(err))
}

func TestUpdateRejectsTakenPersonalID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, err := svc.Create(ctx, createReq())
	require.NoError(t, err)

	second := createReq()
	second.PersonalIDNumber = "12345678902"
	other, err := svc.Create(ctx, second)
	require.NoError(t, err)

	_, err = svc.Update(ctx, other.ID, &model.UpdatePatientRequest{
		FirstName:        other.FirstName,
		LastName:         other.LastName,
		PersonalIDNumber: "12345678901",
		DateOfBirth:      other.DateOfBirth,
		Gender:           other.Gender,
	})
	assert.True(t, apperr.IsConflict(err))
}

func TestUpdateKeepingOwnPersonalIDSucceeds(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	created, err := svc.Create(ctx, createReq())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, &model.UpdatePatientRequest{
		FirstName:        "Ana",
		LastName:         "Horvat",
		PersonalIDNumber: created.PersonalIDNumber,
		DateOfBirth:      created.DateOfBirth,
		Gender:           created.Gender,
	})
	require.NoError(t, err)
	assert.Equal(t, "Horvat", updated.LastName)
	assert.Equal(t, created.Version+1, updated.Version)
}

func TestUpdateStaleVersionConflicts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	created, err := svc.Create(ctx, createReq())
	require.NoError(t, err)

	req := &model.UpdatePatientRequest{
		FirstName:        created.FirstName,
		LastName:         "First",
		PersonalIDNumber: created.PersonalIDNumber,
		DateOfBirth:      created.DateOfBirth,
		Gender:           created.Gender,
		Version:          created.Version,
	}
	_, err = svc.Update(ctx, created.ID, req)
	require.NoError(t, err)

	req.LastName = "Second"
	_, err = svc.Update(ctx, created.ID, req)
	assert.True(t, apperr.IsConflict(err), "stale version should conflict, got %v", err)
}

func TestUpdateWithoutVersionAdoptsCurrent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	created, err := svc.Create(ctx, createReq())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, &model.UpdatePatientRequest{
		FirstName:        created.FirstName,
		LastName:         "Renamed",
		PersonalIDNumber: created.PersonalIDNumber,
		DateOfBirth:      created.DateOfBirth,
		Gender:           created.Gender,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)
}

func TestUpdateMissingPatientNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, err := svc.Update(ctx, 42, &model.UpdatePatientRequest{
		FirstName:        "Ana",
		LastName:         "Kovač",
		PersonalIDNumber: "12345678901",
		DateOfBirth:      time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC),
		Gender:           "F",
	})
	assert.True(t, apperr.IsNotFound(err))
}

func TestSearchByLastNameRejectsBlank(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, err := svc.SearchByLastName(ctx, "   ")
	assert.True(t, apperr.IsValidation(err))
}

func TestDeleteCascadesToRecords(t *testing.T) {
	ctx := context.Background()
	svc, store := newService()

	created, err := svc.Create(ctx, createReq())
	require.NoError(t, err)

	hist := &model.MedicalHistory{PatientID: created.ID, DiseaseName: "asthma", StartDate: time.Now().UTC().AddDate(-2, 0, 0)}
	require.NoError(t, store.MedicalHistories().Create(ctx, hist))

	require.NoError(t, svc.Delete(ctx, created.ID))

	ok, err := store.MedicalHistories().Exists(ctx, hist.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetWithFullDetails(t *testing.T) {
	ctx := context.Background()
	svc, store := newService()

	created, err := svc.Create(ctx, createReq())
	require.NoError(t, err)

	doc := &model.Doctor{FirstName: "Ivan", LastName: "Horvat", Specialization: "radiology"}
	require.NoError(t, store.Doctors().Create(ctx, doc))

	exam := &model.Examination{PatientID: created.ID, DoctorID: doc.ID, Type: model.ExaminationTypeXRAY, DateTime: time.Now().UTC(), Notes: "chest"}
	require.NoError(t, store.Examinations().Create(ctx, exam))

	rx := &model.Prescription{
		ExaminationID: exam.ID, PatientID: created.ID, DoctorID: doc.ID,
		Medication: "Ibuprofen", Dosage: "200mg", Instructions: "after meals", Date: time.Now().UTC(),
	}
	require.NoError(t, store.Prescriptions().Create(ctx, rx))

	full, err := svc.GetWithFullDetails(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, full.Examinations, 1)
	require.Len(t, full.Prescriptions, 1)
	assert.Equal(t, "Horvat", full.Examinations[0].Doctor.LastName)
	assert.Equal(t, "Ibuprofen", full.Prescriptions[0].Medication)
}
