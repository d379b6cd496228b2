package form

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	helper "ecole_backend/internals/helpers"
)

type yearForm struct {
	Libelle   string      `json:"libelle" validate:"required,min=2"`
	Status    string      `json:"status" validate:"required,oneof='en cours' terminé"`
	DateDebut string      `json:"datedebut" validate:"required,datetime=2006-01-02"`
	DateFin   string      `json:"datefin" validate:"required,datetime=2006-01-02"`
	Note      null.String `json:"note"`
	IdParent  null.Int64  `json:"idparent" validate:"omitempty,gt=0"`
}

func (f *yearForm) CrossCheck() map[string]string {
	if f.DateFin < f.DateDebut {
		return map[string]string{"datefin": "La date de fin ne peut pas être antérieure à la date de début."}
	}
	return nil
}

type fakeAccess struct {
	creates int32
	updates int32
	result  helper.Result[string]
	block   chan struct{}
}

func (f *fakeAccess) create(ctx context.Context, in *yearForm) helper.Result[string] {
	atomic.AddInt32(&f.creates, 1)
	if f.block != nil {
		<-f.block
	}
	return f.result
}

func (f *fakeAccess) update(ctx context.Context, key int64, in *yearForm) helper.Result[string] {
	atomic.AddInt32(&f.updates, 1)
	return f.result
}

func newYearController(f *fakeAccess) *Controller[int64, yearForm, string] {
	return NewController(Config[int64, yearForm, string]{
		ListRoute: "/dashboard/anneescolaire",
		Created:   "Année scolaire ajoutée avec succès !",
		Updated:   "Année scolaire mise à jour avec succès !",
		Messages: map[string]string{
			"libelle.min": "Le libellé est requis et doit contenir au moins 2 caractères.",
		},
		Create: f.create,
		Update: f.update,
	})
}

func validYear() *yearForm {
	return &yearForm{Libelle: "2024-2025", Status: "en cours", DateDebut: "2024-09-01", DateFin: "2025-07-01"}
}

func TestSubmitCreateSuccess(t *testing.T) {
	f := &fakeAccess{result: helper.Ok("created")}
	ctl := newYearController(f)

	out := ctl.Submit(context.Background(), "", nil, validYear())

	assert.Equal(t, StateSuccess, out.State)
	assert.Equal(t, "/dashboard/anneescolaire", out.Redirect)
	assert.True(t, out.Refresh)
	assert.Equal(t, ToastSuccess, out.Toast.Level)
	assert.Equal(t, "Année scolaire ajoutée avec succès !", out.Toast.Message)
	require.NotNil(t, out.Data)
	assert.Equal(t, "created", *out.Data)
	assert.Equal(t, int32(1), f.creates)
	assert.Equal(t, int32(0), f.updates)
}

func TestSubmitWithKeyUpdates(t *testing.T) {
	f := &fakeAccess{result: helper.Ok("updated")}
	ctl := newYearController(f)
	key := int64(7)

	out := ctl.Submit(context.Background(), "", &key, validYear())

	assert.Equal(t, StateSuccess, out.State)
	assert.Equal(t, "Année scolaire mise à jour avec succès !", out.Toast.Message)
	assert.Equal(t, int32(1), f.updates)
}

func TestEndBeforeStartFailsWithoutRemoteCall(t *testing.T) {
	f := &fakeAccess{result: helper.Ok("x")}
	ctl := newYearController(f)
	in := validYear()
	in.DateFin = "2024-08-31"

	out := ctl.Submit(context.Background(), "", nil, in)

	assert.Equal(t, StateFailure, out.State)
	assert.Equal(t, helper.KindValidation, out.Kind)
	assert.Contains(t, out.Fields, "datefin")
	assert.Equal(t, int32(0), f.creates)
	assert.Empty(t, out.Redirect)
}

func TestFieldRuleUsesConfiguredMessage(t *testing.T) {
	f := &fakeAccess{result: helper.Ok("x")}
	ctl := newYearController(f)
	in := validYear()
	in.Libelle = "a"

	out := ctl.Submit(context.Background(), "", nil, in)

	assert.Equal(t, []string{"Le libellé est requis et doit contenir au moins 2 caractères."}, out.Fields["libelle"])
	assert.Equal(t, ToastError, out.Toast.Level)
	assert.Equal(t, int32(0), f.creates)
}

func TestRemoteFailureReturnsToIdle(t *testing.T) {
	f := &fakeAccess{result: helper.Fail[string](helper.KindRemote, "Erreur lors de l'ajout : down")}
	ctl := newYearController(f)

	out := ctl.Submit(context.Background(), "form-1", nil, validYear())

	assert.Equal(t, StateFailure, out.State)
	assert.Equal(t, "Erreur lors de l'ajout : down", out.Toast.Message)
	assert.Empty(t, out.Redirect)
	assert.Equal(t, StateIdle, ctl.State("form-1"))
}

func TestConcurrentSubmitSameTokenIsRefused(t *testing.T) {
	f := &fakeAccess{result: helper.Ok("x"), block: make(chan struct{})}
	ctl := newYearController(f)

	done := make(chan Outcome[string])
	go func() { done <- ctl.Submit(context.Background(), "form-2", nil, validYear()) }()

	require.Eventually(t, func() bool { return ctl.State("form-2") == StateSubmitting },
		time.Second, 5*time.Millisecond)

	second := ctl.Submit(context.Background(), "form-2", nil, validYear())
	assert.Equal(t, StateSubmitting, second.State)

	close(f.block)
	first := <-done
	assert.Equal(t, StateSuccess, first.State)
	assert.Equal(t, int32(1), atomic.LoadInt32(&f.creates))
}

func TestNormalizeBlankOptionalBecomesNull(t *testing.T) {
	var in yearForm
	require.NoError(t, json.Unmarshal([]byte(`{"libelle":"  2024  ","note":"   ","idparent":null}`), &in))

	Normalize(&in)

	assert.Equal(t, "2024", in.Libelle)
	assert.False(t, in.Note.Valid)
	assert.False(t, in.IdParent.Valid)
	assert.Nil(t, StringPtr(in.Note))
	assert.Nil(t, Int64Ptr(in.IdParent))
}

func TestNullSelectValidatesAsAbsent(t *testing.T) {
	v := NewValidator()
	in := validYear()
	assert.NoError(t, v.Struct(in))

	in.IdParent = null.Int64From(-1)
	assert.Error(t, v.Struct(in))
}
