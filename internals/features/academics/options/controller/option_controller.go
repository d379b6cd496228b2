package controller

import (
	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/features/academics/options/dto"
	"ecole_backend/internals/features/academics/options/model"
	"ecole_backend/internals/features/academics/options/service"
	helper "ecole_backend/internals/helpers"
	"ecole_backend/internals/helpers/form"
	"ecole_backend/internals/revalidate"
)

type OptionController struct {
	Svc  *service.OptionService
	Form *form.Controller[int64, dto.OptionForm, model.OptionModel]
}

func NewOptionController(svc *service.OptionService) *OptionController {
	return &OptionController{
		Svc: svc,
		Form: form.NewController(form.Config[int64, dto.OptionForm, model.OptionModel]{
			ListRoute: revalidate.RouteOptions,
			Created:   "Option ajoutée avec succès !",
			Updated:   "Option mise à jour avec succès !",
			Messages:  dto.Messages,
			Create:    svc.CreateForm,
			Update:    svc.UpdateForm,
		}),
	}
}

// GET /options
func (ctl *OptionController) List(c *fiber.Ctx) error {
	return helper.JsonResult(c, ctl.Svc.List(c.UserContext()), 0)
}

// GET /options/:id
func (ctl *OptionController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	return helper.JsonResult(c, ctl.Svc.Get(c.UserContext(), id), 0)
}

// POST /options
func (ctl *OptionController) Create(c *fiber.Ctx) error {
	in, err := form.Bind[dto.OptionForm](c)
	if err != nil {
		return err
	}
	return form.Respond(c, ctl.Form.Submit(c.UserContext(), form.Token(c), nil, in), fiber.StatusCreated)
}

// PUT /options/:id
func (ctl *OptionController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	in, err := form.Bind[dto.OptionForm](c)
	if err != nil {
		return err
	}
	return form.Respond(c, ctl.Form.Submit(c.UserContext(), form.Token(c), &id, in), 0)
}

// DELETE /options/:id
func (ctl *OptionController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	return helper.JsonResult(c, ctl.Svc.Delete(c.UserContext(), id), 0)
}
