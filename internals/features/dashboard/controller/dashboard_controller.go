package controller

import (
	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/features/dashboard/service"
)

type DashboardController struct {
	Svc *service.DashboardService
}

func NewDashboardController(svc *service.DashboardService) *DashboardController {
	return &DashboardController{Svc: svc}
}

// GET /dashboard always answers 200; failed cards are listed in "errors".
func (ctl *DashboardController) Summary(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    ctl.Svc.Summary(c.UserContext()),
	})
}
