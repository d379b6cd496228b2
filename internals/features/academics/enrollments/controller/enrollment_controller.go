package controller

import (
	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/features/academics/enrollments/dto"
	"ecole_backend/internals/features/academics/enrollments/model"
	"ecole_backend/internals/features/academics/enrollments/service"
	helper "ecole_backend/internals/helpers"
	"ecole_backend/internals/helpers/form"
	"ecole_backend/internals/revalidate"
)

type EnrollmentController struct {
	Svc  *service.EnrollmentService
	Form *form.Controller[model.Key, dto.EnrollmentForm, model.EnrollmentModel]
}

func NewEnrollmentController(svc *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{
		Svc: svc,
		Form: form.NewController(form.Config[model.Key, dto.EnrollmentForm, model.EnrollmentModel]{
			ListRoute: revalidate.RouteEnrollments,
			Created:   "Inscription ajoutée avec succès !",
			Updated:   "Inscription mise à jour avec succès !",
			Messages:  dto.Messages,
			Create:    svc.CreateForm,
			Update:    svc.UpdateForm,
		}),
	}
}

func keyParam(c *fiber.Ctx) (model.Key, error) {
	k, err := model.ParseKey(c.Params("key"))
	if err != nil {
		return k, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return k, nil
}

func (ctl *EnrollmentController) List(c *fiber.Ctx) error {
	return helper.JsonResult(c, ctl.Svc.List(c.UserContext()), 0)
}

// GET /inscriptions/recent?limit=7
func (ctl *EnrollmentController) Recent(c *fiber.Ctx) error {
	return helper.JsonResult(c, ctl.Svc.Recent(c.UserContext(), c.QueryInt("limit", service.RecentLimit)), 0)
}

// GET /inscriptions/:key where key is "ideleve-idclasse-idanneescolaire"
func (ctl *EnrollmentController) Get(c *fiber.Ctx) error {
	k, err := keyParam(c)
	if err != nil {
		return err
	}
	return helper.JsonResult(c, ctl.Svc.GetByKey(c.UserContext(), k), 0)
}

func (ctl *EnrollmentController) Create(c *fiber.Ctx) error {
	in, err := form.Bind[dto.EnrollmentForm](c)
	if err != nil {
		return err
	}
	return form.Respond(c, ctl.Form.Submit(c.UserContext(), form.Token(c), nil, in), fiber.StatusCreated)
}

func (ctl *EnrollmentController) Update(c *fiber.Ctx) error {
	k, err := keyParam(c)
	if err != nil {
		return err
	}
	in, err := form.Bind[dto.EnrollmentForm](c)
	if err != nil {
		return err
	}
	return form.Respond(c, ctl.Form.Submit(c.UserContext(), form.Token(c), &k, in), 0)
}

func (ctl *EnrollmentController) Delete(c *fiber.Ctx) error {
	k, err := keyParam(c)
	if err != nil {
		return err
	}
	return helper.JsonResult(c, ctl.Svc.DeleteByKey(c.UserContext(), k), 0)
}
