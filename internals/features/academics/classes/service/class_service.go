package service

import (
	"context"

	"gorm.io/gorm"

	"ecole_backend/internals/features/academics/classes/dto"
	"ecole_backend/internals/features/academics/classes/model"
	helper "ecole_backend/internals/helpers"
	"ecole_backend/internals/helpers/crud"
	"ecole_backend/internals/revalidate"
)

type ClassService struct {
	*crud.Access[model.ClassModel]
}

func NewClassService(db *gorm.DB, inv crud.Invalidator) *ClassService {
	return &ClassService{crud.New(db, crud.Config[model.ClassModel]{
		Entity:   revalidate.EntityClass,
		Keys:     []string{"idclasse"},
		KeyOf:    func(m *model.ClassModel) []any { return []any{m.IDClasse} },
		Order:    crud.Asc("nomclasse"),
		Preloads: []string{"Option"},
		NotFound: "Classe non trouvée.",
		Singular: "de la classe",
		Plural:   "des classes",
	}, inv)}
}

func (s *ClassService) CreateForm(ctx context.Context, f *dto.ClassForm) helper.Result[model.ClassModel] {
	m := f.ToModel()
	return s.Create(ctx, &m)
}

func (s *ClassService) UpdateForm(ctx context.Context, id int64, f *dto.ClassForm) helper.Result[model.ClassModel] {
	return s.Update(ctx, f.Patch(), id)
}

// CountClasses feeds the dashboard card.
func (s *ClassService) CountClasses(ctx context.Context) helper.CountResult {
	return helper.ToCount(s.Count(ctx))
}
