package medicalimage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisys/clinical-api/internal/model"
	"github.com/medisys/clinical-api/internal/repository/memory"
	"github.com/medisys/clinical-api/pkg/blob"
	apperr "github.com/medisys/clinical-api/pkg/errors"
)

func setup(t *testing.T) (*Service, *model.Examination) {
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

	blobs, err := blob.NewFSStore(t.TempDir())
	require.NoError(t, err)

	return NewService(store.MedicalImages(), store.Examinations(), blobs), exam
}

func TestUploadAndFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, exam := setup(t)

	image, err := svc.Upload(ctx, exam.ID, []byte("png bytes"), "chest.png", "image/png")
	require.NoError(t, err)
	assert.NotEmpty(t, image.FileName)
	assert.Equal(t, "image/png", image.FileType)

	meta, data, err := svc.File(ctx, image.ID)
	require.NoError(t, err)
	assert.Equal(t, image.FileName, meta.FileName)
	assert.Equal(t, []byte("png bytes"), data)
}

func TestUploadRejectsDisallowedType(t *testing.T) {
	ctx := context.Background()
	svc, exam := setup(t)

	_, err := svc.Upload(ctx, exam.ID, []byte("pdf bytes"), "report.pdf", "application/pdf")
	assert.True(t, apperr.IsValidation(err))
}

func TestUploadRejectsEmptyFile(t *testing.T) {
	ctx := context.Background()
	svc, exam := setup(t)

	_, err := svc.Upload(ctx, exam.ID, nil, "chest.png", "image/png")
	assert.True(t, apperr.IsValidation(err))
}

func TestUploadRequiresExistingExamination(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	_, err := svc.Upload(ctx, 99, []byte("png bytes"), "chest.png", "image/png")
	assert.True(t, apperr.IsValidation(err))
}

func TestDeleteRemovesMetadataAndBlob(t *testing.T) {
	ctx := context.Background()
	svc, exam := setup(t)

	image, err := svc.Upload(ctx, exam.ID, []byte("png bytes"), "chest.png", "image/png")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, image.ID))

	_, err = svc.GetByID(ctx, image.ID)
	assert.True(t, apperr.IsNotFound(err))

	_, _, err = svc.File(ctx, image.ID)
	assert.True(t, apperr.IsNotFound(err))
}
