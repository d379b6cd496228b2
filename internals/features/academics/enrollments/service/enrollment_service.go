package service

import (
	"context"

	"gorm.io/gorm"

	"ecole_backend/internals/features/academics/enrollments/dto"
	"ecole_backend/internals/features/academics/enrollments/model"
	helper "ecole_backend/internals/helpers"
	"ecole_backend/internals/helpers/crud"
	"ecole_backend/internals/revalidate"
)

const RecentLimit = 7

type EnrollmentService struct {
	*crud.Access[model.EnrollmentModel]
}

func NewEnrollmentService(db *gorm.DB, inv crud.Invalidator) *EnrollmentService {
	return &EnrollmentService{crud.New(db, crud.Config[model.EnrollmentModel]{
		Entity:   revalidate.EntityEnrollment,
		Keys:     []string{"ideleve", "idclasse", "idanneescolaire"},
		KeyOf:    func(m *model.EnrollmentModel) []any { return m.Key().Values() },
		Order:    crud.Desc("dateinscription"),
		Preloads: []string{"Eleve", "Classe.Option", "AnneeScolaire"},
		NotFound: "Inscription non trouvée.",
		Singular: "de l'inscription",
		Plural:   "des inscriptions",
	}, inv)}
}

func (s *EnrollmentService) GetByKey(ctx context.Context, k model.Key) helper.Result[model.EnrollmentModel] {
	return s.Get(ctx, k.Values()...)
}

func (s *EnrollmentService) CreateForm(ctx context.Context, f *dto.EnrollmentForm) helper.Result[model.EnrollmentModel] {
	m := f.ToModel()
	return s.Create(ctx, &m)
}

// UpdateForm refuses a body whose ids differ from the edited key:
// changing any part of the key means delete then create.
func (s *EnrollmentService) UpdateForm(ctx context.Context, k model.Key, f *dto.EnrollmentForm) helper.Result[model.EnrollmentModel] {
	if f.Key() != k {
		return helper.Fail[model.EnrollmentModel](helper.KindValidation,
			"La clé d'une inscription ne peut pas être modifiée : supprimez-la puis recréez-la.")
	}
	return s.Update(ctx, f.Patch(), k.Values()...)
}

func (s *EnrollmentService) DeleteByKey(ctx context.Context, k model.Key) helper.Result[struct{}] {
	return s.Delete(ctx, k.Values()...)
}

// Recent returns the latest enrollments with every relation joined.
func (s *EnrollmentService) Recent(ctx context.Context, limit int) helper.Result[[]model.EnrollmentModel] {
	if limit <= 0 {
		limit = RecentLimit
	}
	return s.List(ctx, func(db *gorm.DB) *gorm.DB { return db.Limit(limit) })
}

// LatestByStudent maps each student to the class of their most recent
// enrollment.
func (s *EnrollmentService) LatestByStudent(ctx context.Context, studentIDs []int64) helper.Result[map[int64]model.EnrollmentModel] {
	out := map[int64]model.EnrollmentModel{}
	if len(studentIDs) == 0 {
		return helper.Ok(out)
	}
	res := s.List(ctx, func(db *gorm.DB) *gorm.DB { return db.Where("ideleve IN ?", studentIDs) })
	return helper.Map(res, func(rows []model.EnrollmentModel) map[int64]model.EnrollmentModel {
		for _, r := range rows {
			// rows come newest first
			if _, seen := out[r.IDEleve]; !seen {
				out[r.IDEleve] = r
			}
		}
		return out
	})
}
