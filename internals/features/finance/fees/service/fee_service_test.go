package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	yearModel "ecole_backend/internals/features/academics/school_years/model"
	"ecole_backend/internals/features/finance/fees/dto"
	"ecole_backend/internals/features/finance/fees/model"
	"ecole_backend/internals/helpers/dbtime"
	"ecole_backend/internals/helpers/form"
	"ecole_backend/internals/helpers/testdb"
)

func TestFeeLifecycle(t *testing.T) {
	db := testdb.Open(t, &yearModel.SchoolYearModel{}, &model.FeeModel{})
	svc := NewFeeService(db, nil)
	ctx := context.Background()

	year := yearModel.SchoolYearModel{
		Libelle: "2024-2025", Status: yearModel.StatusOngoing,
		DateDebut: dbtime.NewDate(2024, 9, 1), DateFin: dbtime.NewDate(2025, 7, 1),
	}
	require.NoError(t, db.Create(&year).Error)

	in := &dto.FeeForm{
		Description:     "Minerval premier trimestre",
		MontantTotal:    120.456,
		DateEcheance:    null.StringFrom("2024-10-15"),
		IDAnneeScolaire: null.Int64From(year.IDAnneeScolaire),
	}
	form.Normalize(in)
	created := svc.CreateForm(ctx, in)
	require.True(t, created.Success, created.Error)
	assert.Equal(t, 120.46, created.Data.MontantTotal)
	assert.Equal(t, "2024-10-15", created.Data.DateEcheance.String())
	require.NotNil(t, created.Data.AnneeScolaire)
	assert.Equal(t, "2024-2025", created.Data.AnneeScolaire.Libelle)

	loose := svc.CreateForm(ctx, &dto.FeeForm{Description: "Frais d'examen", MontantTotal: 15})
	require.True(t, loose.Success, loose.Error)
	assert.Nil(t, loose.Data.IDAnneeScolaire)
	assert.True(t, loose.Data.DateEcheance.IsZero())

	byYear := svc.ListByYear(ctx, year.IDAnneeScolaire)
	require.True(t, byYear.Success)
	require.Len(t, byYear.Data, 1)

	// the school year is optional: removing it detaches the fee
	require.NoError(t, db.Delete(&yearModel.SchoolYearModel{}, year.IDAnneeScolaire).Error)
	got := svc.Get(ctx, created.Data.IDFrais)
	require.True(t, got.Success, got.Error)
	assert.Nil(t, got.Data.IDAnneeScolaire)

	require.True(t, svc.Delete(ctx, created.Data.IDFrais).Success)
	assert.True(t, svc.Get(ctx, created.Data.IDFrais).IsNotFound())
}

func TestFeeFormRules(t *testing.T) {
	v := form.NewValidator()

	short := &dto.FeeForm{Description: "abc", MontantTotal: 10}
	assert.Error(t, v.Struct(short))

	zero := &dto.FeeForm{Description: "Transport", MontantTotal: 0.001}
	form.Normalize(zero)
	assert.Error(t, v.Struct(zero))

	ok := &dto.FeeForm{Description: "Transport", MontantTotal: 0.01}
	assert.NoError(t, v.Struct(ok))
}
