package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisys/clinical-api/internal/model"
	apperr "github.com/medisys/clinical-api/pkg/errors"
)

func newPatient(personalID string) *model.Patient {
	return &model.Patient{
		FirstName:        "Ana",
		LastName:         "Kovač",
		PersonalIDNumber: personalID,
		DateOfBirth:      time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:           "F",
	}
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	p1 := newPatient("12345678901")
	p2 := newPatient("12345678902")
	require.NoError(t, store.Patients().Create(ctx, p1))
	require.NoError(t, store.Patients().Create(ctx, p2))

	assert.Equal(t, int64(1), p1.ID)
	assert.Equal(t, int64(2), p2.ID)
	assert.Equal(t, int64(1), p1.Version)
}

func TestGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	p := newPatient("12345678901")
	require.NoError(t, store.Patients().Create(ctx, p))

	got, err := store.Patients().Get(ctx, p.ID)
	require.NoError(t, err)
	got.LastName = "changed"

	again, err := store.Patients().Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kovač", again.LastName)
}

func TestStaleUpdateConflicts(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	doc := &model.Doctor{FirstName: "Ivan", LastName: "Horvat", Specialization: "radiology"}
	require.NoError(t, store.Doctors().Create(ctx, doc))
	p := newPatient("12345678901")
	require.NoError(t, store.Patients().Create(ctx, p))

	exam := &model.Examination{
		PatientID: p.ID, DoctorID: doc.ID,
		Type: model.ExaminationTypeXRAY, DateTime: time.Now().UTC(), Notes: "routine",
	}
	require.NoError(t, store.Examinations().Create(ctx, exam))

	first, err := store.Examinations().Get(ctx, exam.ID)
	require.NoError(t, err)
	second, err := store.Examinations().Get(ctx, exam.ID)
	require.NoError(t, err)

	first.Notes = "updated first"
	require.NoError(t, store.Examinations().Update(ctx, first))
	assert.Equal(t, int64(2), first.Version)

	second.Notes = "updated second"
	err = store.Examinations().Update(ctx, second)
	assert.True(t, apperr.IsConflict(err), "stale update should conflict, got %v", err)
}

func TestUpdateMissingIsNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	err := store.Doctors().Update(ctx, &model.Doctor{
		Base: model.Base{ID: 99, Version: 1}, FirstName: "a", LastName: "b", Specialization: "c",
	})
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteGoneIsNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	p := newPatient("12345678901")
	require.NoError(t, store.Patients().Create(ctx, p))
	require.NoError(t, store.Patients().Delete(ctx, p.ID))

	err := store.Patients().Delete(ctx, p.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDuplicatePersonalIDConflicts(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.Patients().Create(ctx, newPatient("12345678901")))
	err := store.Patients().Create(ctx, newPatient("12345678901"))
	assert.True(t, apperr.IsConflict(err))

	other := newPatient("12345678902")
	require.NoError(t, store.Patients().Create(ctx, other))
	other.PersonalIDNumber = "12345678901"
	err = store.Patients().Update(ctx, other)
	assert.True(t, apperr.IsConflict(err))
}

func TestPatientDeleteCascades(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	doc := &model.Doctor{FirstName: "Ivan", LastName: "Horvat", Specialization: "radiology"}
	require.NoError(t, store.Doctors().Create(ctx, doc))
	p := newPatient("12345678901")
	require.NoError(t, store.Patients().Create(ctx, p))

	hist := &model.MedicalHistory{PatientID: p.ID, DiseaseName: "asthma", StartDate: time.Now().UTC().AddDate(-1, 0, 0)}
	require.NoError(t, store.MedicalHistories().Create(ctx, hist))

	exam := &model.Examination{PatientID: p.ID, DoctorID: doc.ID, Type: model.ExaminationTypeGP, DateTime: time.Now().UTC(), Notes: "n"}
	require.NoError(t, store.Examinations().Create(ctx, exam))

	img := &model.MedicalImage{ExaminationID: exam.ID, FileName: "f.png", FileType: "image/png", UploadDateTime: time.Now().UTC()}
	require.NoError(t, store.MedicalImages().Create(ctx, img))

	rx := &model.Prescription{
		ExaminationID: exam.ID, PatientID: p.ID, DoctorID: doc.ID,
		Medication: "Ibuprofen", Dosage: "200mg", Instructions: "twice daily", Date: time.Now().UTC(),
	}
	require.NoError(t, store.Prescriptions().Create(ctx, rx))

	require.NoError(t, store.Patients().Delete(ctx, p.ID))

	for name, exists := range map[string]func() (bool, error){
		"history":      func() (bool, error) { return store.MedicalHistories().Exists(ctx, hist.ID) },
		"examination":  func() (bool, error) { return store.Examinations().Exists(ctx, exam.ID) },
		"image":        func() (bool, error) { return store.MedicalImages().Exists(ctx, img.ID) },
		"prescription": func() (bool, error) { return store.Prescriptions().Exists(ctx, rx.ID) },
	} {
		ok, err := exists()
		require.NoError(t, err)
		assert.False(t, ok, "%s should be cascaded away", name)
	}

	n, err := store.Examinations().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = store.Doctors().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestDoctorDeleteRestricted(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	doc := &model.Doctor{FirstName: "Ivan", LastName: "Horvat", Specialization: "radiology"}
	require.NoError(t, store.Doctors().Create(ctx, doc))
	p := newPatient("12345678901")
	require.NoError(t, store.Patients().Create(ctx, p))
	exam := &model.Examination{PatientID: p.ID, DoctorID: doc.ID, Type: model.ExaminationTypeGP, DateTime: time.Now().UTC(), Notes: "n"}
	require.NoError(t, store.Examinations().Create(ctx, exam))

	err := store.Doctors().Delete(ctx, doc.ID)
	assert.True(t, apperr.IsConflict(err))

	require.NoError(t, store.Examinations().Delete(ctx, exam.ID))
	assert.NoError(t, store.Doctors().Delete(ctx, doc.ID))
}

func TestExaminationListOrdering(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	doc := &model.Doctor{FirstName: "Ivan", LastName: "Horvat", Specialization: "radiology"}
	require.NoError(t, store.Doctors().Create(ctx, doc))
	p := newPatient("12345678901")
	require.NoError(t, store.Patients().Create(ctx, p))

	old := &model.Examination{PatientID: p.ID, DoctorID: doc.ID, Type: model.ExaminationTypeGP, DateTime: time.Now().UTC().AddDate(0, -2, 0), Notes: "old"}
	recent := &model.Examination{PatientID: p.ID, DoctorID: doc.ID, Type: model.ExaminationTypeGP, DateTime: time.Now().UTC(), Notes: "recent"}
	require.NoError(t, store.Examinations().Create(ctx, old))
	require.NoError(t, store.Examinations().Create(ctx, recent))

	exams, err := store.Examinations().ListByPatient(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, exams, 2)
	assert.Equal(t, "recent", exams[0].Notes)
	assert.Equal(t, "old", exams[1].Notes)
}

func TestSearchByLastNameIsCaseInsensitiveSubstring(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.Patients().Create(ctx, newPatient("12345678901")))

	found, err := store.Patients().SearchByLastName(ctx, "kovA")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	none, err := store.Patients().SearchByLastName(ctx, "petrov")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestActiveConditions(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	p := newPatient("12345678901")
	require.NoError(t, store.Patients().Create(ctx, p))

	ended := time.Now().UTC().AddDate(0, -1, 0)
	require.NoError(t, store.MedicalHistories().Create(ctx, &model.MedicalHistory{
		PatientID: p.ID, DiseaseName: "flu", StartDate: ended.AddDate(0, -1, 0), EndDate: &ended,
	}))
	require.NoError(t, store.MedicalHistories().Create(ctx, &model.MedicalHistory{
		PatientID: p.ID, DiseaseName: "asthma", StartDate: time.Now().UTC().AddDate(-2, 0, 0),
	}))

	active, err := store.MedicalHistories().ListActiveByPatient(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "asthma", active[0].DiseaseName)
}
