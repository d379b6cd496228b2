package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"ecole_backend/internals/features/people/parents/dto"
	"ecole_backend/internals/features/people/parents/model"
	helper "ecole_backend/internals/helpers"
	"ecole_backend/internals/helpers/crud"
	"ecole_backend/internals/revalidate"
)

type ParentService struct {
	*crud.Access[model.ParentModel]
}

func NewParentService(db *gorm.DB, inv crud.Invalidator) *ParentService {
	return &ParentService{crud.New(db, crud.Config[model.ParentModel]{
		Entity:   revalidate.EntityParent,
		Keys:     []string{"idparent"},
		KeyOf:    func(m *model.ParentModel) []any { return []any{m.IDParent} },
		Order:    crud.Asc("idparent"),
		NotFound: "Parent non trouvé.",
		Singular: "du parent",
		Plural:   "des parents",
	}, inv)}
}

func (s *ParentService) CreateForm(ctx context.Context, f *dto.ParentForm) helper.Result[model.ParentModel] {
	m := f.ToModel()
	return s.Create(ctx, &m)
}

func (s *ParentService) UpdateForm(ctx context.Context, id int64, f *dto.ParentForm) helper.Result[model.ParentModel] {
	return s.Update(ctx, f.Patch(), id)
}

// FindByEmail matches either parent's email, case-insensitively.
func (s *ParentService) FindByEmail(ctx context.Context, email string) helper.Result[model.ParentModel] {
	email = strings.ToLower(strings.TrimSpace(email))
	res := s.First(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("lower(emailpere) = ? OR lower(emailmere) = ?", email, email)
	})
	if res.IsNotFound() {
		return helper.NotFound[model.ParentModel]("Aucun parent trouvé avec cet email")
	}
	return res
}

// ParentIDByEmail reports the parent an email belongs to, if any.
func (s *ParentService) ParentIDByEmail(ctx context.Context, email string) (int64, bool, error) {
	res := s.FindByEmail(ctx, email)
	switch {
	case res.Success:
		return res.Data.IDParent, true, nil
	case res.IsNotFound():
		return 0, false, nil
	}
	return 0, false, errors.New(res.Error)
}
