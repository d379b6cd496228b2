package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	classModel "ecole_backend/internals/features/academics/classes/model"
	"ecole_backend/internals/features/academics/enrollments/dto"
	"ecole_backend/internals/features/academics/enrollments/model"
	optionModel "ecole_backend/internals/features/academics/options/model"
	yearModel "ecole_backend/internals/features/academics/school_years/model"
	parentModel "ecole_backend/internals/features/people/parents/model"
	studentModel "ecole_backend/internals/features/people/students/model"
	"ecole_backend/internals/helpers/dbtime"
	"ecole_backend/internals/helpers/testdb"
)

type world struct {
	db      *gorm.DB
	student int64
	class   int64
	years   [2]int64
}

func seed(t *testing.T) world {
	db := testdb.Open(t,
		&parentModel.ParentModel{}, &studentModel.StudentModel{},
		&optionModel.OptionModel{}, &classModel.ClassModel{},
		&yearModel.SchoolYearModel{}, &model.EnrollmentModel{},
	)
	s := studentModel.StudentModel{Nom: "Amani", PostNom: "Mulumba", Status: studentModel.StatusOngoing}
	require.NoError(t, db.Create(&s).Error)
	opt := optionModel.OptionModel{NomOption: "Pédagogie", Abreviation: "PD"}
	require.NoError(t, db.Create(&opt).Error)
	cls := classModel.ClassModel{NomClasse: "1ère B", IDOption: opt.IDOption}
	require.NoError(t, db.Create(&cls).Error)

	w := world{db: db, student: s.IDEleve, class: cls.IDClasse}
	for i, y := range []int{2023, 2024} {
		year := yearModel.SchoolYearModel{
			Libelle:   "année",
			Status:    yearModel.StatusFinished,
			DateDebut: dbtime.NewDate(y, 9, 1),
			DateFin:   dbtime.NewDate(y+1, 7, 1),
		}
		require.NoError(t, db.Create(&year).Error)
		w.years[i] = year.IDAnneeScolaire
	}
	return w
}

func (w world) form(year int64) *dto.EnrollmentForm {
	return &dto.EnrollmentForm{
		IDEleve:         null.Int64From(w.student),
		IDClasse:        null.Int64From(w.class),
		IDAnneeScolaire: null.Int64From(year),
	}
}

func TestKeysDifferingOnlyByYearAreDistinct(t *testing.T) {
	w := seed(t)
	svc := NewEnrollmentService(w.db, nil)
	ctx := context.Background()

	first := svc.CreateForm(ctx, w.form(w.years[0]))
	require.True(t, first.Success, first.Error)
	second := svc.CreateForm(ctx, w.form(w.years[1]))
	require.True(t, second.Success, second.Error)
	assert.NotEqual(t, first.Data.Key(), second.Data.Key())

	again := svc.CreateForm(ctx, w.form(w.years[0]))
	assert.False(t, again.Success)
	assert.True(t, again.IsConstraint())

	got := svc.GetByKey(ctx, second.Data.Key())
	require.True(t, got.Success)
	require.NotNil(t, got.Data.Classe)
	require.NotNil(t, got.Data.Classe.Option)
	assert.Equal(t, "PD", got.Data.Classe.Option.Abreviation)
	assert.Equal(t, "Amani", got.Data.Eleve.Nom)
}

func TestUpdateKeepsKey(t *testing.T) {
	w := seed(t)
	svc := NewEnrollmentService(w.db, nil)
	ctx := context.Background()

	created := svc.CreateForm(ctx, w.form(w.years[0]))
	require.True(t, created.Success, created.Error)
	k := created.Data.Key()

	moved := w.form(w.years[1])
	res := svc.UpdateForm(ctx, k, moved)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "supprimez-la puis recréez-la")

	when := time.Date(2024, 9, 2, 8, 0, 0, 0, time.UTC)
	same := w.form(w.years[0])
	same.DateInscription = null.TimeFrom(when)
	res = svc.UpdateForm(ctx, k, same)
	require.True(t, res.Success, res.Error)
	assert.True(t, res.Data.DateInscription.Equal(when))

	require.True(t, svc.DeleteByKey(ctx, k).Success)
	assert.True(t, svc.GetByKey(ctx, k).IsNotFound())
}

func TestRecentIsNewestFirstAndLimited(t *testing.T) {
	w := seed(t)
	svc := NewEnrollmentService(w.db, nil)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, y := range w.years {
		m := model.EnrollmentModel{
			IDEleve: w.student, IDClasse: w.class, IDAnneeScolaire: y,
			DateInscription: base.AddDate(0, i, 0),
		}
		require.True(t, svc.Create(ctx, &m).Success)
	}

	res := svc.Recent(ctx, 1)
	require.True(t, res.Success, res.Error)
	require.Len(t, res.Data, 1)
	assert.Equal(t, w.years[1], res.Data[0].IDAnneeScolaire)

	latest := svc.LatestByStudent(ctx, []int64{w.student})
	require.True(t, latest.Success)
	assert.Equal(t, w.years[1], latest.Data[w.student].IDAnneeScolaire)
}

func TestParseKey(t *testing.T) {
	k, err := model.ParseKey("4-7-2")
	require.NoError(t, err)
	assert.Equal(t, model.Key{IDEleve: 4, IDClasse: 7, IDAnneeScolaire: 2}, k)
	assert.Equal(t, "4-7-2", k.String())

	for _, bad := range []string{"", "4-7", "4-x-2", "0-1-2"} {
		_, err := model.ParseKey(bad)
		assert.Error(t, err, bad)
	}
}
