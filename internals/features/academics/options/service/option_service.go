package service

import (
	"context"

	"gorm.io/gorm"

	"ecole_backend/internals/features/academics/options/dto"
	"ecole_backend/internals/features/academics/options/model"
	helper "ecole_backend/internals/helpers"
	"ecole_backend/internals/helpers/crud"
	"ecole_backend/internals/revalidate"
)

type OptionService struct {
	*crud.Access[model.OptionModel]
}

func NewOptionService(db *gorm.DB, inv crud.Invalidator) *OptionService {
	return &OptionService{crud.New(db, crud.Config[model.OptionModel]{
		Entity:   revalidate.EntityOption,
		Keys:     []string{"idoption"},
		KeyOf:    func(m *model.OptionModel) []any { return []any{m.IDOption} },
		Order:    crud.Asc("idoption"),
		NotFound: "Option non trouvée.",
		Singular: "de l'option",
		Plural:   "des options",
	}, inv)}
}

func (s *OptionService) CreateForm(ctx context.Context, f *dto.OptionForm) helper.Result[model.OptionModel] {
	m := f.ToModel()
	return s.Create(ctx, &m)
}

func (s *OptionService) UpdateForm(ctx context.Context, id int64, f *dto.OptionForm) helper.Result[model.OptionModel] {
	return s.Update(ctx, f.Patch(), id)
}
