package doctor

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

func TestCreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewService(store.Doctors())

	created, err := svc.Create(ctx, &model.CreateDoctorRequest{
		FirstName: "Ivan", LastName: "Horvat", Specialization: "radiology",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Version)

	updated, err := svc.Update(ctx, created.ID, &model.UpdateDoctorRequest{
		FirstName: "Ivan", LastName: "Horvat", Specialization: "neurology",
	})
	require.NoError(t, err)
	assert.Equal(t, "neurology", updated.Specialization)
	assert.Equal(t, int64(2), updated.Version)
}

func TestCreateRequiresSpecialization(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStore().Doctors())

	_, err := svc.Create(ctx, &model.CreateDoctorRequest{FirstName: "Ivan", LastName: "Horvat"})
	assert.True(t, apperr.IsValidation(err))
}

func TestDeleteRestrictedWhileReferenced(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewService(store.Doctors())

	created, err := svc.Create(ctx, &model.CreateDoctorRequest{
		FirstName: "Ivan", LastName: "Horvat", Specialization: "radiology",
	})
	require.NoError(t, err)

	patient := &model.Patient{
		FirstName: "Ana", LastName: "Kovač", PersonalIDNumber: "12345678901",
		DateOfBirth: time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC), Gender: "F",
	}
	require.NoError(t, store.Patients().Create(ctx, patient))

	exam := &model.Examination{
		PatientID: patient.ID, DoctorID: created.ID,
		Type: model.ExaminationTypeGP, DateTime: time.Now().UTC(), Notes: "checkup",
	}
	require.NoError(t, store.Examinations().Create(ctx, exam))

	err = svc.Delete(ctx, created.ID)
	assert.True(t, apperr.IsConflict(err))

	require.NoError(t, store.Examinations().Delete(ctx, exam.ID))
	assert.NoError(t, svc.Delete(ctx, created.ID))
}

func TestUpdateStaleVersionConflicts(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStore().Doctors())

	created, err := svc.Create(ctx, &model.CreateDoctorRequest{
		FirstName: "Ivan", LastName: "Horvat", Specialization: "radiology",
	})
	require.NoError(t, err)

	req := &model.UpdateDoctorRequest{
		FirstName: "Ivan", LastName: "Horvat", Specialization: "neurology", Version: created.Version,
	}
	_, err = svc.Update(ctx, created.ID, req)
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, req)
	assert.True(t, apperr.IsConflict(err))
}
