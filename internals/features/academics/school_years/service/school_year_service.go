package service

import (
	"context"

	"gorm.io/gorm"

	"ecole_backend/internals/features/academics/school_years/dto"
	"ecole_backend/internals/features/academics/school_years/model"
	helper "ecole_backend/internals/helpers"
	"ecole_backend/internals/helpers/crud"
	"ecole_backend/internals/revalidate"
)

type SchoolYearService struct {
	*crud.Access[model.SchoolYearModel]
}

func NewSchoolYearService(db *gorm.DB, inv crud.Invalidator) *SchoolYearService {
	return &SchoolYearService{crud.New(db, crud.Config[model.SchoolYearModel]{
		Entity:   revalidate.EntitySchoolYear,
		Keys:     []string{"idanneescolaire"},
		KeyOf:    func(m *model.SchoolYearModel) []any { return []any{m.IDAnneeScolaire} },
		Order:    crud.Desc("datedebut"),
		NotFound: "Année scolaire non trouvée.",
		Singular: "de l'année scolaire",
		Plural:   "des années scolaires",
	}, inv)}
}

func (s *SchoolYearService) CreateForm(ctx context.Context, f *dto.SchoolYearForm) helper.Result[model.SchoolYearModel] {
	m := f.ToModel()
	return s.Create(ctx, &m)
}

func (s *SchoolYearService) UpdateForm(ctx context.Context, id int64, f *dto.SchoolYearForm) helper.Result[model.SchoolYearModel] {
	return s.Update(ctx, f.Patch(), id)
}

// Current is the most recent year still running, used as form default.
func (s *SchoolYearService) Current(ctx context.Context) helper.Result[model.SchoolYearModel] {
	return s.First(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", model.StatusOngoing)
	})
}
