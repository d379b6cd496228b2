package controller

import (
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/constants"
	"ecole_backend/internals/features/people/students/dto"
	"ecole_backend/internals/features/people/students/model"
	"ecole_backend/internals/features/people/students/service"
	helper "ecole_backend/internals/helpers"
	"ecole_backend/internals/helpers/form"
	"ecole_backend/internals/helpers/media"
	"ecole_backend/internals/revalidate"
)

type StudentController struct {
	Svc  *service.StudentService
	Form *form.Controller[int64, dto.StudentForm, model.StudentModel]
}

func NewStudentController(svc *service.StudentService) *StudentController {
	return &StudentController{
		Svc: svc,
		Form: form.NewController(form.Config[int64, dto.StudentForm, model.StudentModel]{
			ListRoute: revalidate.RouteStudents,
			Created:   "Élève ajouté avec succès !",
			Updated:   "Élève mis à jour avec succès !",
			Messages:  dto.Messages,
			Create:    svc.CreateForm,
			Update:    svc.UpdateForm,
		}),
	}
}

// bindStudent accepts plain JSON, or multipart with the form in "payload"
// and the picture in "photo". The returned closer must be called once the
// submission is done.
func bindStudent(c *fiber.Ctx) (*dto.StudentForm, func(), error) {
	noop := func() {}
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		in, err := form.Bind[dto.StudentForm](c)
		return in, noop, err
	}

	in := new(dto.StudentForm)
	if raw := c.FormValue("payload"); raw != "" {
		if err := sonic.UnmarshalString(raw, in); err != nil {
			return nil, noop, fiber.NewError(fiber.StatusBadRequest, "Payload invalide")
		}
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		// no file part
		return in, noop, nil
	}
	if constants.DetectFileTypeFromExt(fh.Filename) != constants.FileImage {
		return nil, noop, fiber.NewError(fiber.StatusUnsupportedMediaType, "Format de photo non supporté (png, jpg, webp)")
	}
	if fh.Size > media.MaxUploadSize {
		return nil, noop, fiber.NewError(fiber.StatusRequestEntityTooLarge, "Photo trop volumineuse (max 5 Mo)")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, noop, fiber.NewError(fiber.StatusBadRequest, "Photo illisible")
	}
	in.Photo = io.Reader(f)
	return in, func() { _ = f.Close() }, nil
}

func (ctl *StudentController) List(c *fiber.Ctx) error {
	return helper.JsonResult(c, ctl.Svc.List(c.UserContext()), 0)
}

func (ctl *StudentController) Count(c *fiber.Ctx) error {
	return c.JSON(ctl.Svc.CountStudents(c.UserContext()))
}

func (ctl *StudentController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	return helper.JsonResult(c, ctl.Svc.Get(c.UserContext(), id), 0)
}

// GET /eleves/by-parent/:id
func (ctl *StudentController) ListByParent(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	return helper.JsonResult(c, ctl.Svc.ListByParent(c.UserContext(), id), 0)
}

func (ctl *StudentController) Create(c *fiber.Ctx) error {
	in, done, err := bindStudent(c)
	if err != nil {
		return err
	}
	defer done()
	return form.Respond(c, ctl.Form.Submit(c.UserContext(), form.Token(c), nil, in), fiber.StatusCreated)
}

func (ctl *StudentController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	in, done, err := bindStudent(c)
	if err != nil {
		return err
	}
	defer done()
	return form.Respond(c, ctl.Form.Submit(c.UserContext(), form.Token(c), &id, in), 0)
}

func (ctl *StudentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	return helper.JsonResult(c, ctl.Svc.DeleteWithPhoto(c.UserContext(), id), 0)
}
