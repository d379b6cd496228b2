package controller

import (
	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/features/finance/fees/dto"
	"ecole_backend/internals/features/finance/fees/model"
	"ecole_backend/internals/features/finance/fees/service"
	helper "ecole_backend/internals/helpers"
	"ecole_backend/internals/helpers/form"
	"ecole_backend/internals/revalidate"
)

type FeeController struct {
	Svc  *service.FeeService
	Form *form.Controller[int64, dto.FeeForm, model.FeeModel]
}

func NewFeeController(svc *service.FeeService) *FeeController {
	return &FeeController{
		Svc: svc,
		Form: form.NewController(form.Config[int64, dto.FeeForm, model.FeeModel]{
			ListRoute: revalidate.RouteFees,
			Created:   "Frais ajouté avec succès !",
			Updated:   "Frais mis à jour avec succès !",
			Messages:  dto.Messages,
			Create:    svc.CreateForm,
			Update:    svc.UpdateForm,
		}),
	}
}

// GET /frais?idanneescolaire=
func (ctl *FeeController) List(c *fiber.Ctx) error {
	year, err := helper.QueryID(c, "idanneescolaire")
	if err != nil {
		return err
	}
	if year != nil {
		return helper.JsonResult(c, ctl.Svc.ListByYear(c.UserContext(), *year), 0)
	}
	return helper.JsonResult(c, ctl.Svc.List(c.UserContext()), 0)
}

func (ctl *FeeController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	return helper.JsonResult(c, ctl.Svc.Get(c.UserContext(), id), 0)
}

func (ctl *FeeController) Create(c *fiber.Ctx) error {
	in, err := form.Bind[dto.FeeForm](c)
	if err != nil {
		return err
	}
	return form.Respond(c, ctl.Form.Submit(c.UserContext(), form.Token(c), nil, in), fiber.StatusCreated)
}

func (ctl *FeeController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	in, err := form.Bind[dto.FeeForm](c)
	if err != nil {
		return err
	}
	return form.Respond(c, ctl.Form.Submit(c.UserContext(), form.Token(c), &id, in), 0)
}

func (ctl *FeeController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	return helper.JsonResult(c, ctl.Svc.Delete(c.UserContext(), id), 0)
}
