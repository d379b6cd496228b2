package service

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	enrollmentService "ecole_backend/internals/features/academics/enrollments/service"
	"ecole_backend/internals/features/people/students/dto"
	"ecole_backend/internals/features/people/students/model"
	helper "ecole_backend/internals/helpers"
	"ecole_backend/internals/helpers/crud"
	"ecole_backend/internals/helpers/media"
	"ecole_backend/internals/revalidate"
)

const (
	warnPhotoDelete    = "La photo n'a pas pu être supprimée."
	warnOldPhotoDelete = "L'ancienne photo n'a pas pu être supprimée."
)

type StudentService struct {
	*crud.Access[model.StudentModel]
	// Photos is nil when no media host is configured; photo uploads are
	// then refused and deletions skipped.
	Photos      *media.Photos
	Enrollments *enrollmentService.EnrollmentService
}

func NewStudentService(db *gorm.DB, inv crud.Invalidator, photos *media.Photos) *StudentService {
	return &StudentService{
		Access: crud.New(db, crud.Config[model.StudentModel]{
			Entity:   revalidate.EntityStudent,
			Keys:     []string{"ideleve"},
			KeyOf:    func(m *model.StudentModel) []any { return []any{m.IDEleve} },
			Order:    crud.Asc("nom"),
			Preloads: []string{"Parent"},
			NotFound: "Élève non trouvé.",
			Singular: "de l'élève",
			Plural:   "des élèves",
		}, inv),
		Photos:      photos,
		Enrollments: enrollmentService.NewEnrollmentService(db, inv),
	}
}

func (s *StudentService) stage(ctx context.Context, f *dto.StudentForm) (media.UploadResult, helper.Result[model.StudentModel], bool) {
	if s.Photos == nil {
		return media.UploadResult{}, helper.Fail[model.StudentModel](helper.KindValidation,
			"Aucun hébergeur de photos n'est configuré."), false
	}
	staged, err := s.Photos.Stage(ctx, f.Photo)
	if err != nil {
		kind := helper.KindRemote
		if errors.Is(err, media.ErrUnsupportedImage) {
			kind = helper.KindValidation
		}
		return staged, helper.Fail[model.StudentModel](kind, "Erreur lors de l'upload de la photo : "+err.Error()), false
	}
	return staged, helper.Result[model.StudentModel]{}, true
}

// CreateForm uploads the photo first; nothing is inserted when the upload
// fails. When the insert fails the uploaded asset is removed again and the
// insert error is returned.
func (s *StudentService) CreateForm(ctx context.Context, f *dto.StudentForm) helper.Result[model.StudentModel] {
	m := f.ToModel()

	var staged media.UploadResult
	if f.Photo != nil {
		var (
			fail helper.Result[model.StudentModel]
			ok   bool
		)
		if staged, fail, ok = s.stage(ctx, f); !ok {
			return fail
		}
		m.Photo = &staged.SecureURL
	}

	res := s.Create(ctx, &m)
	if !res.Success && f.Photo != nil {
		s.Photos.Compensate(ctx, staged)
	}
	return res
}

// UpdateForm takes one of three paths: a new file replaces the photo, the
// delete flag clears it, otherwise the photo column is left alone.
func (s *StudentService) UpdateForm(ctx context.Context, id int64, f *dto.StudentForm) helper.Result[model.StudentModel] {
	patch := f.Patch()

	if f.Photo == nil && !f.DeleteExistingPhoto {
		return s.Update(ctx, patch, id)
	}

	cur := s.Get(ctx, id)
	if !cur.Success {
		return cur
	}
	oldURL := ""
	if cur.Data.Photo != nil {
		oldURL = *cur.Data.Photo
	}

	if f.Photo != nil {
		staged, fail, ok := s.stage(ctx, f)
		if !ok {
			return fail
		}
		patch["photo"] = staged.SecureURL
		res := s.Update(ctx, patch, id)
		if !res.Success {
			s.Photos.Compensate(ctx, staged)
			return res
		}
		if err := s.Photos.Discard(ctx, oldURL); err != nil {
			log.Printf("[MEDIA] élève %d: ancienne photo: %v", id, err)
			res.Warning = warnOldPhotoDelete
		}
		return res
	}

	warning := ""
	if s.Photos != nil {
		if err := s.Photos.Discard(ctx, oldURL); err != nil {
			log.Printf("[MEDIA] élève %d: suppression photo: %v", id, err)
			warning = warnPhotoDelete
		}
	}
	patch["photo"] = nil
	res := s.Update(ctx, patch, id)
	if res.Success {
		res.Warning = warning
	}
	return res
}

// DeleteWithPhoto removes the row, then the photo. A photo that cannot be
// removed only produces a warning.
func (s *StudentService) DeleteWithPhoto(ctx context.Context, id int64) helper.Result[struct{}] {
	cur := s.Get(ctx, id)
	if !cur.Success {
		return helper.Failed[struct{}](cur)
	}
	res := s.Delete(ctx, id)
	if !res.Success || cur.Data.Photo == nil || s.Photos == nil {
		return res
	}
	if err := s.Photos.Discard(ctx, *cur.Data.Photo); err != nil {
		log.Printf("[MEDIA] élève %d supprimé, photo restante: %v", id, err)
		res.Warning = warnPhotoDelete
	}
	return res
}

func (s *StudentService) CountStudents(ctx context.Context) helper.CountResult {
	return helper.ToCount(s.Count(ctx))
}

// ListByParent returns the parent's children with their current class.
func (s *StudentService) ListByParent(ctx context.Context, parentID int64) helper.Result[[]dto.ChildView] {
	kids := s.List(ctx, func(db *gorm.DB) *gorm.DB { return db.Where("idparent = ?", parentID) })
	if !kids.Success {
		return helper.Failed[[]dto.ChildView](kids)
	}
	ids := make([]int64, 0, len(kids.Data))
	for _, k := range kids.Data {
		ids = append(ids, k.IDEleve)
	}
	latest := s.Enrollments.LatestByStudent(ctx, ids)
	if !latest.Success {
		return helper.Failed[[]dto.ChildView](latest)
	}

	out := make([]dto.ChildView, 0, len(kids.Data))
	for _, k := range kids.Data {
		v := dto.ChildView{StudentModel: k}
		if e, ok := latest.Data[k.IDEleve]; ok && e.Classe != nil {
			v.NomClasse = &e.Classe.NomClasse
			if e.Classe.Option != nil {
				v.NomOption = &e.Classe.Option.NomOption
			}
		}
		out = append(out, v)
	}
	return helper.Ok(out)
}

// PhotoURLs lists every stored photo, for the orphan reaper.
func (s *StudentService) PhotoURLs(ctx context.Context) ([]string, error) {
	var urls []string
	err := s.DB().WithContext(ctx).Model(&model.StudentModel{}).
		Where("photo IS NOT NULL AND photo <> ''").
		Pluck("photo", &urls).Error
	return urls, err
}
