package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/features/finance/payments/dto"
	"ecole_backend/internals/features/finance/payments/model"
	"ecole_backend/internals/features/finance/payments/service"
	helper "ecole_backend/internals/helpers"
	"ecole_backend/internals/helpers/form"
	"ecole_backend/internals/revalidate"
)

type PaymentController struct {
	Svc  *service.PaymentService
	Form *form.Controller[int64, dto.PaymentForm, model.PaymentModel]
}

func NewPaymentController(svc *service.PaymentService) *PaymentController {
	return &PaymentController{
		Svc: svc,
		Form: form.NewController(form.Config[int64, dto.PaymentForm, model.PaymentModel]{
			ListRoute: revalidate.RoutePayments,
			Created:   "Paiement enregistré avec succès !",
			Updated:   "Paiement mis à jour avec succès !",
			Messages:  dto.Messages,
			Create:    svc.CreateForm,
			Update:    svc.UpdateForm,
		}),
	}
}

// GET /paiements?status=pending
func (ctl *PaymentController) List(c *fiber.Ctx) error {
	if st := c.Query("status"); st != "" {
		if !model.ValidStatus(st) {
			return fiber.NewError(fiber.StatusBadRequest, "Statut de paiement invalide.")
		}
		return helper.JsonResult(c, ctl.Svc.ListByStatus(c.UserContext(), st), 0)
	}
	return helper.JsonResult(c, ctl.Svc.List(c.UserContext()), 0)
}

func (ctl *PaymentController) Total(c *fiber.Ctx) error {
	return c.JSON(ctl.Svc.TotalAmount(c.UserContext()))
}

func (ctl *PaymentController) CountPending(c *fiber.Ctx) error {
	return c.JSON(ctl.Svc.CountPending(c.UserContext()))
}

// GET /paiements/monthly?start=2024-01-01&end=2024-06-30
func (ctl *PaymentController) Monthly(c *fiber.Ctx) error {
	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Paramètre start invalide (AAAA-MM-JJ).")
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil || end.Before(start) {
		return fiber.NewError(fiber.StatusBadRequest, "Paramètre end invalide (AAAA-MM-JJ).")
	}
	return helper.JsonResult(c, ctl.Svc.Monthly(c.UserContext(), start, end), 0)
}

func (ctl *PaymentController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	return helper.JsonResult(c, ctl.Svc.Get(c.UserContext(), id), 0)
}

func (ctl *PaymentController) Create(c *fiber.Ctx) error {
	in, err := form.Bind[dto.PaymentForm](c)
	if err != nil {
		return err
	}
	return form.Respond(c, ctl.Form.Submit(c.UserContext(), form.Token(c), nil, in), fiber.StatusCreated)
}

func (ctl *PaymentController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	in, err := form.Bind[dto.PaymentForm](c)
	if err != nil {
		return err
	}
	return form.Respond(c, ctl.Form.Submit(c.UserContext(), form.Token(c), &id, in), 0)
}

func (ctl *PaymentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	return helper.JsonResult(c, ctl.Svc.Delete(c.UserContext(), id), 0)
}
