package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"ecole_backend/internals/features/academics/classes/dto"
	"ecole_backend/internals/features/academics/classes/model"
	optionModel "ecole_backend/internals/features/academics/options/model"
	optionService "ecole_backend/internals/features/academics/options/service"
	"ecole_backend/internals/helpers/testdb"
)

func TestClassJoinsOptionAndKeepsUntouchedFields(t *testing.T) {
	db := testdb.Open(t, &optionModel.OptionModel{}, &model.ClassModel{})
	ctx := context.Background()
	options := optionService.NewOptionService(db, nil)
	classes := NewClassService(db, nil)

	opt := options.Create(ctx, &optionModel.OptionModel{NomOption: "Scientifique", Abreviation: "SC"})
	require.True(t, opt.Success, opt.Error)

	created := classes.CreateForm(ctx, &dto.ClassForm{
		NomClasse: "6ème A",
		Niveau:    null.StringFrom("6"),
		IDOption:  null.Int64From(opt.Data.IDOption),
	})
	require.True(t, created.Success, created.Error)
	require.NotNil(t, created.Data.Option)
	assert.Equal(t, "SC", created.Data.Option.Abreviation)

	upd := classes.Update(ctx, map[string]any{"nomclasse": "6ème B"}, created.Data.IDClasse)
	require.True(t, upd.Success, upd.Error)
	assert.Equal(t, "6ème B", upd.Data.NomClasse)
	require.NotNil(t, upd.Data.Niveau)
	assert.Equal(t, "6", *upd.Data.Niveau)

	assert.Equal(t, int64(1), classes.CountClasses(ctx).Count)

	// option still referenced by a class
	del := options.Delete(ctx, opt.Data.IDOption)
	assert.False(t, del.Success)
	assert.True(t, del.IsConstraint())
}

func TestClassListOrderedByName(t *testing.T) {
	db := testdb.Open(t, &optionModel.OptionModel{}, &model.ClassModel{})
	ctx := context.Background()
	options := optionService.NewOptionService(db, nil)
	classes := NewClassService(db, nil)

	opt := options.Create(ctx, &optionModel.OptionModel{NomOption: "Littéraire", Abreviation: "LT"})
	require.True(t, opt.Success)
	for _, name := range []string{"B2", "A1", "C3"} {
		require.True(t, classes.Create(ctx, &model.ClassModel{NomClasse: name, IDOption: opt.Data.IDOption}).Success)
	}

	list := classes.List(ctx)
	require.True(t, list.Success)
	names := []string{list.Data[0].NomClasse, list.Data[1].NomClasse, list.Data[2].NomClasse}
	assert.Equal(t, []string{"A1", "B2", "C3"}, names)
	assert.NotNil(t, list.Data[0].Option)
}
