package service

import (
	"context"

	"gorm.io/gorm"

	"ecole_backend/internals/features/communication/notifications/dto"
	"ecole_backend/internals/features/communication/notifications/model"
	helper "ecole_backend/internals/helpers"
	"ecole_backend/internals/helpers/crud"
	"ecole_backend/internals/revalidate"
)

type NotificationService struct {
	*crud.Access[model.NotificationModel]
}

func NewNotificationService(db *gorm.DB, inv crud.Invalidator) *NotificationService {
	return &NotificationService{crud.New(db, crud.Config[model.NotificationModel]{
		Entity:   revalidate.EntityNotification,
		Keys:     []string{"idnotification"},
		KeyOf:    func(m *model.NotificationModel) []any { return []any{m.IDNotification} },
		Order:    crud.Desc("dateenvoi"),
		Preloads: []string{"Parent"},
		NotFound: "Notification non trouvée.",
		Singular: "de la notification",
		Plural:   "des notifications",
	}, inv)}
}

func (s *NotificationService) CreateForm(ctx context.Context, f *dto.NotificationForm) helper.Result[model.NotificationModel] {
	m := f.ToModel()
	return s.Create(ctx, &m)
}

func (s *NotificationService) UpdateForm(ctx context.Context, id int64, f *dto.NotificationForm) helper.Result[model.NotificationModel] {
	return s.Update(ctx, f.Patch(), id)
}

// ListForParent returns the parent's own notifications and the broadcasts.
func (s *NotificationService) ListForParent(ctx context.Context, parentID int64) helper.Result[[]model.NotificationModel] {
	return s.List(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("idparent = ? OR idparent IS NULL", parentID)
	})
}
