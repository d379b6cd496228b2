package controller

import (
	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/features/academics/school_years/dto"
	"ecole_backend/internals/features/academics/school_years/model"
	"ecole_backend/internals/features/academics/school_years/service"
	helper "ecole_backend/internals/helpers"
	"ecole_backend/internals/helpers/form"
	"ecole_backend/internals/revalidate"
)

type SchoolYearController struct {
	Svc  *service.SchoolYearService
	Form *form.Controller[int64, dto.SchoolYearForm, model.SchoolYearModel]
}

func NewSchoolYearController(svc *service.SchoolYearService) *SchoolYearController {
	return &SchoolYearController{
		Svc: svc,
		Form: form.NewController(form.Config[int64, dto.SchoolYearForm, model.SchoolYearModel]{
			ListRoute: revalidate.RouteSchoolYears,
			Created:   "Année scolaire ajoutée avec succès !",
			Updated:   "Année scolaire mise à jour avec succès !",
			Messages:  dto.Messages,
			Create:    svc.CreateForm,
			Update:    svc.UpdateForm,
		}),
	}
}

func (ctl *SchoolYearController) List(c *fiber.Ctx) error {
	return helper.JsonResult(c, ctl.Svc.List(c.UserContext()), 0)
}

// GET /anneescolaire/current
func (ctl *SchoolYearController) Current(c *fiber.Ctx) error {
	return helper.JsonResult(c, ctl.Svc.Current(c.UserContext()), 0)
}

func (ctl *SchoolYearController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	return helper.JsonResult(c, ctl.Svc.Get(c.UserContext(), id), 0)
}

func (ctl *SchoolYearController) Create(c *fiber.Ctx) error {
	in, err := form.Bind[dto.SchoolYearForm](c)
	if err != nil {
		return err
	}
	return form.Respond(c, ctl.Form.Submit(c.UserContext(), form.Token(c), nil, in), fiber.StatusCreated)
}

func (ctl *SchoolYearController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	in, err := form.Bind[dto.SchoolYearForm](c)
	if err != nil {
		return err
	}
	return form.Respond(c, ctl.Form.Submit(c.UserContext(), form.Token(c), &id, in), 0)
}

func (ctl *SchoolYearController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	return helper.JsonResult(c, ctl.Svc.Delete(c.UserContext(), id), 0)
}
