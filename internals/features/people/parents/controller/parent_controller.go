package controller

import (
	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/features/people/parents/dto"
	"ecole_backend/internals/features/people/parents/model"
	"ecole_backend/internals/features/people/parents/service"
	helper "ecole_backend/internals/helpers"
	"ecole_backend/internals/helpers/form"
	"ecole_backend/internals/revalidate"
)

type ParentController struct {
	Svc  *service.ParentService
	Form *form.Controller[int64, dto.ParentForm, model.ParentModel]
}

func NewParentController(svc *service.ParentService) *ParentController {
	return &ParentController{
		Svc: svc,
		Form: form.NewController(form.Config[int64, dto.ParentForm, model.ParentModel]{
			ListRoute: revalidate.RouteParents,
			Created:   "Parent ajouté avec succès !",
			Updated:   "Parent mis à jour avec succès !",
			Messages:  dto.Messages,
			Create:    svc.CreateForm,
			Update:    svc.UpdateForm,
		}),
	}
}

func (ctl *ParentController) List(c *fiber.Ctx) error {
	return helper.JsonResult(c, ctl.Svc.List(c.UserContext()), 0)
}

func (ctl *ParentController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	return helper.JsonResult(c, ctl.Svc.Get(c.UserContext(), id), 0)
}

func (ctl *ParentController) Create(c *fiber.Ctx) error {
	in, err := form.Bind[dto.ParentForm](c)
	if err != nil {
		return err
	}
	return form.Respond(c, ctl.Form.Submit(c.UserContext(), form.Token(c), nil, in), fiber.StatusCreated)
}

func (ctl *ParentController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	in, err := form.Bind[dto.ParentForm](c)
	if err != nil {
		return err
	}
	return form.Respond(c, ctl.Form.Submit(c.UserContext(), form.Token(c), &id, in), 0)
}

// DELETE /parents/:id answers 409 while students still point to the parent.
func (ctl *ParentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	return helper.JsonResult(c, ctl.Svc.Delete(c.UserContext(), id), 0)
}
