package service

import (
	"context"

	"gorm.io/gorm"

	"ecole_backend/internals/features/finance/fees/dto"
	"ecole_backend/internals/features/finance/fees/model"
	helper "ecole_backend/internals/helpers"
	"ecole_backend/internals/helpers/crud"
	"ecole_backend/internals/revalidate"
)

type FeeService struct {
	*crud.Access[model.FeeModel]
}

func NewFeeService(db *gorm.DB, inv crud.Invalidator) *FeeService {
	return &FeeService{crud.New(db, crud.Config[model.FeeModel]{
		Entity:   revalidate.EntityFee,
		Keys:     []string{"idfrais"},
		KeyOf:    func(m *model.FeeModel) []any { return []any{m.IDFrais} },
		Order:    crud.Desc("dateecheance"),
		Preloads: []string{"AnneeScolaire"},
		NotFound: "Frais non trouvé.",
		Singular: "du frais",
		Plural:   "des frais",
	}, inv)}
}

func (s *FeeService) CreateForm(ctx context.Context, f *dto.FeeForm) helper.Result[model.FeeModel] {
	m := f.ToModel()
	return s.Create(ctx, &m)
}

func (s *FeeService) UpdateForm(ctx context.Context, id int64, f *dto.FeeForm) helper.Result[model.FeeModel] {
	return s.Update(ctx, f.Patch(), id)
}

// ListByYear narrows the list to one school year.
func (s *FeeService) ListByYear(ctx context.Context, yearID int64) helper.Result[[]model.FeeModel] {
	return s.List(ctx, func(db *gorm.DB) *gorm.DB { return db.Where("idanneescolaire = ?", yearID) })
}
