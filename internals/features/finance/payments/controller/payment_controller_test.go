package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	yearModel "ecole_backend/internals/features/academics/school_years/model"
	feeModel "ecole_backend/internals/features/finance/fees/model"
	"ecole_backend/internals/features/finance/payments/dto"
	"ecole_backend/internals/features/finance/payments/model"
	"ecole_backend/internals/features/finance/payments/service"
	parentModel "ecole_backend/internals/features/people/parents/model"
	studentModel "ecole_backend/internals/features/people/students/model"
	"ecole_backend/internals/helpers/form"
	"ecole_backend/internals/helpers/testdb"
)

func newController(t *testing.T) (*PaymentController, *service.PaymentService) {
	db := testdb.Open(t,
		&yearModel.SchoolYearModel{}, &parentModel.ParentModel{}, &studentModel.StudentModel{},
		&feeModel.FeeModel{}, &model.PaymentModel{},
	)
	svc := service.NewPaymentService(db, nil)
	return NewPaymentController(svc), svc
}

func TestPaymentFormAllowsUnattached(t *testing.T) {
	ctl, svc := newController(t)
	ctx := context.Background()

	out := ctl.Form.Submit(ctx, "", nil, &dto.PaymentForm{MontantPayer: 10, Status: model.StatusPending})
	require.Equal(t, form.StateSuccess, out.State, out.Error)
	assert.Empty(t, out.Fields)
	require.NotNil(t, out.Data)

	saved := svc.Get(ctx, out.Data.IDPaiement)
	require.True(t, saved.Success, saved.Error)
	assert.Nil(t, saved.Data.IDEleve)
	assert.Nil(t, saved.Data.IDFrais)
	assert.InDelta(t, 10, saved.Data.MontantPayer, 0.001)
}

func TestPaymentFormRejectsZeroIDs(t *testing.T) {
	ctl, _ := newController(t)

	out := ctl.Form.Submit(context.Background(), "", nil, &dto.PaymentForm{
		MontantPayer: 10,
		Status:       model.StatusPending,
		IDEleve:      null.Int64From(0),
		IDFrais:      null.Int64From(0),
	})
	assert.Equal(t, form.StateFailure, out.State)
	assert.Equal(t, []string{"Élève invalide."}, out.Fields["ideleve"])
	assert.Equal(t, []string{"Frais invalide."}, out.Fields["idfrais"])
	assert.Nil(t, out.Data)
}

func TestPaymentFormRequiresAmount(t *testing.T) {
	ctl, _ := newController(t)

	out := ctl.Form.Submit(context.Background(), "", nil, &dto.PaymentForm{Status: model.StatusSuccess})
	assert.Equal(t, form.StateFailure, out.State)
	assert.Equal(t, []string{"Le montant payé est requis."}, out.Fields["montantpayer"])
}
