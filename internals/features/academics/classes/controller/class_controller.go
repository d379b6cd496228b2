package controller

import (
	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/features/academics/classes/dto"
	"ecole_backend/internals/features/academics/classes/model"
	"ecole_backend/internals/features/academics/classes/service"
	helper "ecole_backend/internals/helpers"
	"ecole_backend/internals/helpers/form"
	"ecole_backend/internals/revalidate"
)

type ClassController struct {
	Svc  *service.ClassService
	Form *form.Controller[int64, dto.ClassForm, model.ClassModel]
}

func NewClassController(svc *service.ClassService) *ClassController {
	return &ClassController{
		Svc: svc,
		Form: form.NewController(form.Config[int64, dto.ClassForm, model.ClassModel]{
			ListRoute: revalidate.RouteClasses,
			Created:   "Classe ajoutée avec succès !",
			Updated:   "Classe mise à jour avec succès !",
			Messages:  dto.Messages,
			Create:    svc.CreateForm,
			Update:    svc.UpdateForm,
		}),
	}
}

func (ctl *ClassController) List(c *fiber.Ctx) error {
	return helper.JsonResult(c, ctl.Svc.List(c.UserContext()), 0)
}

func (ctl *ClassController) Count(c *fiber.Ctx) error {
	return c.JSON(ctl.Svc.CountClasses(c.UserContext()))
}

func (ctl *ClassController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	return helper.JsonResult(c, ctl.Svc.Get(c.UserContext(), id), 0)
}

func (ctl *ClassController) Create(c *fiber.Ctx) error {
	in, err := form.Bind[dto.ClassForm](c)
	if err != nil {
		return err
	}
	return form.Respond(c, ctl.Form.Submit(c.UserContext(), form.Token(c), nil, in), fiber.StatusCreated)
}

func (ctl *ClassController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	in, err := form.Bind[dto.ClassForm](c)
	if err != nil {
		return err
	}
	return form.Respond(c, ctl.Form.Submit(c.UserContext(), form.Token(c), &id, in), 0)
}

func (ctl *ClassController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	return helper.JsonResult(c, ctl.Svc.Delete(c.UserContext(), id), 0)
}
