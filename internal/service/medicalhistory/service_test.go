package medicalhistory

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

func setup(t *testing.T) (*Service, *model.Patient) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	patient := &model.Patient{
		FirstName: "Ana", LastName: "Kovač", PersonalIDNumber: "12345678901",
		DateOfBirth: time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC), Gender: "F",
	}
	require.NoError(t, store.Patients().Create(ctx, patient))

	return NewService(store.MedicalHistories(), store.Patients()), patient
}

func TestCreateAndRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, patient := setup(t)

	created, err := svc.Create(ctx, &model.CreateMedicalHistoryRequest{
		PatientID:   patient.ID,
		DiseaseName: "asthma",
		StartDate:   time.Now().UTC().AddDate(-3, 0, 0),
	})
	require.NoError(t, err)
	assert.Nil(t, created.EndDate)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "asthma", got.DiseaseName)
	assert.True(t, got.Active())
}

func TestTemporalRules(t *testing.T) {
	ctx := context.Background()
	svc, patient := setup(t)

	start := time.Now().UTC().AddDate(-1, 0, 0)

	futureStart := &model.CreateMedicalHistoryRequest{
		PatientID: patient.ID, DiseaseName: "flu",
		StartDate: time.Now().UTC().Add(time.Hour),
	}
	_, err := svc.Create(ctx, futureStart)
	assert.True(t, apperr.IsValidation(err))

	beforeStart := start.AddDate(0, -1, 0)
	_, err = svc.Create(ctx, &model.CreateMedicalHistoryRequest{
		PatientID: patient.ID, DiseaseName: "flu", StartDate: start, EndDate: &beforeStart,
	})
	assert.True(t, apperr.IsValidation(err))

	futureEnd := time.Now().UTC().Add(time.Hour)
	_, err = svc.Create(ctx, &model.CreateMedicalHistoryRequest{
		PatientID: patient.ID, DiseaseName: "flu", StartDate: start, EndDate: &futureEnd,
	})
	assert.True(t, apperr.IsValidation(err))

	sameDay := start
	created, err := svc.Create(ctx, &model.CreateMedicalHistoryRequest{
		PatientID: patient.ID, DiseaseName: "flu", StartDate: start, EndDate: &sameDay,
	})
	require.NoError(t, err)
	assert.False(t, created.Active())
}

func TestCreateRequiresExistingPatient(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	_, err := svc.Create(ctx, &model.CreateMedicalHistoryRequest{
		PatientID: 99, DiseaseName: "flu", StartDate: time.Now().UTC().AddDate(-1, 0, 0),
	})
	assert.True(t, apperr.IsValidation(err))
}

func TestActiveConditionsFilter(t *testing.T) {
	ctx := context.Background()
	svc, patient := setup(t)

	ended := time.Now().UTC().AddDate(0, -1, 0)
	_, err := svc.Create(ctx, &model.CreateMedicalHistoryRequest{
		PatientID: patient.ID, DiseaseName: "flu",
		StartDate: ended.AddDate(0, -1, 0), EndDate: &ended,
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &model.CreateMedicalHistoryRequest{
		PatientID: patient.ID, DiseaseName: "asthma",
		StartDate: time.Now().UTC().AddDate(-2, 0, 0),
	})
	require.NoError(t, err)

	active, err := svc.GetActiveConditions(ctx, patient.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "asthma", active[0].DiseaseName)
}

func TestUpdateClosesCondition(t *testing.T) {
	ctx := context.Background()
	svc, patient := setup(t)

	created, err := svc.Create(ctx, &model.CreateMedicalHistoryRequest{
		PatientID: patient.ID, DiseaseName: "asthma",
		StartDate: time.Now().UTC().AddDate(-2, 0, 0),
	})
	require.NoError(t, err)

	end := time.Now().UTC().AddDate(0, 0, -1)
	updated, err := svc.Update(ctx, created.ID, &model.UpdateMedicalHistoryRequest{
		PatientID: patient.ID, DiseaseName: "asthma",
		StartDate: created.StartDate, EndDate: &end, Version: created.Version,
	})
	require.NoError(t, err)
	assert.False(t, updated.Active())
	assert.Equal(t, created.Version+1, updated.Version)
}
