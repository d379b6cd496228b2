package controller

import (
	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/features/communication/notifications/dto"
	"ecole_backend/internals/features/communication/notifications/model"
	"ecole_backend/internals/features/communication/notifications/service"
	helper "ecole_backend/internals/helpers"
	"ecole_backend/internals/helpers/form"
	"ecole_backend/internals/revalidate"
)

type NotificationController struct {
	Svc  *service.NotificationService
	Form *form.Controller[int64, dto.NotificationForm, model.NotificationModel]
}

func NewNotificationController(svc *service.NotificationService) *NotificationController {
	return &NotificationController{
		Svc: svc,
		Form: form.NewController(form.Config[int64, dto.NotificationForm, model.NotificationModel]{
			ListRoute: revalidate.RouteNotifications,
			Created:   "Notification envoyée avec succès !",
			Updated:   "Notification mise à jour avec succès !",
			Messages:  dto.Messages,
			Create:    svc.CreateForm,
			Update:    svc.UpdateForm,
		}),
	}
}

// GET /notifications?idparent=
func (ctl *NotificationController) List(c *fiber.Ctx) error {
	parent, err := helper.QueryID(c, "idparent")
	if err != nil {
		return err
	}
	if parent != nil {
		return helper.JsonResult(c, ctl.Svc.ListForParent(c.UserContext(), *parent), 0)
	}
	return helper.JsonResult(c, ctl.Svc.List(c.UserContext()), 0)
}

func (ctl *NotificationController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	return helper.JsonResult(c, ctl.Svc.Get(c.UserContext(), id), 0)
}

func (ctl *NotificationController) Create(c *fiber.Ctx) error {
	in, err := form.Bind[dto.NotificationForm](c)
	if err != nil {
		return err
	}
	return form.Respond(c, ctl.Form.Submit(c.UserContext(), form.Token(c), nil, in), fiber.StatusCreated)
}

func (ctl *NotificationController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	in, err := form.Bind[dto.NotificationForm](c)
	if err != nil {
		return err
	}
	return form.Respond(c, ctl.Form.Submit(c.UserContext(), form.Token(c), &id, in), 0)
}

func (ctl *NotificationController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	return helper.JsonResult(c, ctl.Svc.Delete(c.UserContext(), id), 0)
}
