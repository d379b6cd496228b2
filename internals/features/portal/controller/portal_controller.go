package controller

import (
	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/features/portal/service"
	helper "ecole_backend/internals/helpers"
	"ecole_backend/internals/middlewares/auth"
)

type PortalController struct {
	Svc *service.PortalService
}

func NewPortalController(svc *service.PortalService) *PortalController {
	return &PortalController{Svc: svc}
}

// parentID is guaranteed by RequireParentLink on the group.
func parentID(c *fiber.Ctx) int64 {
	id, _ := auth.ParentID(c)
	return id
}

func (ctl *PortalController) Me(c *fiber.Ctx) error {
	return helper.JsonResult(c, ctl.Svc.Me(c.UserContext(), parentID(c)), 0)
}

func (ctl *PortalController) Children(c *fiber.Ctx) error {
	return helper.JsonResult(c, ctl.Svc.ListChildren(c.UserContext(), parentID(c)), 0)
}

func (ctl *PortalController) Payments(c *fiber.Ctx) error {
	return helper.JsonResult(c, ctl.Svc.ListPayments(c.UserContext(), parentID(c)), 0)
}

func (ctl *PortalController) Notifications(c *fiber.Ctx) error {
	return helper.JsonResult(c, ctl.Svc.ListNotifications(c.UserContext(), parentID(c)), 0)
}
