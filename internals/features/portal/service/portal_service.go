package service

import (
	"context"

	notificationModel "ecole_backend/internals/features/communication/notifications/model"
	paymentModel "ecole_backend/internals/features/finance/payments/model"
	parentModel "ecole_backend/internals/features/people/parents/model"
	studentDTO "ecole_backend/internals/features/people/students/dto"
	helper "ecole_backend/internals/helpers"
)

type ParentReader interface {
	Get(ctx context.Context, key ...any) helper.Result[parentModel.ParentModel]
}

type ChildrenReader interface {
	ListByParent(ctx context.Context, parentID int64) helper.Result[[]studentDTO.ChildView]
}

type PaymentReader interface {
	ListForParent(ctx context.Context, parentID int64) helper.Result[[]paymentModel.PaymentModel]
}

type NotificationReader interface {
	ListForParent(ctx context.Context, parentID int64) helper.Result[[]notificationModel.NotificationModel]
}

// PortalService is the read-only view a parent gets of their family.
// Every method is scoped to the parent id taken from the session.
type PortalService struct {
	Parents       ParentReader
	Children      ChildrenReader
	Payments      PaymentReader
	Notifications NotificationReader
}

type Me struct {
	parentModel.ParentModel
	Greeting string `json:"greeting"`
}

func (s *PortalService) Me(ctx context.Context, parentID int64) helper.Result[Me] {
	return helper.Map(s.Parents.Get(ctx, parentID), func(p parentModel.ParentModel) Me {
		return Me{ParentModel: p, Greeting: p.DisplayName()}
	})
}

func (s *PortalService) ListChildren(ctx context.Context, parentID int64) helper.Result[[]studentDTO.ChildView] {
	return s.Children.ListByParent(ctx, parentID)
}

func (s *PortalService) ListPayments(ctx context.Context, parentID int64) helper.Result[[]paymentModel.PaymentModel] {
	return s.Payments.ListForParent(ctx, parentID)
}

func (s *PortalService) ListNotifications(ctx context.Context, parentID int64) helper.Result[[]notificationModel.NotificationModel] {
	return s.Notifications.ListForParent(ctx, parentID)
}
