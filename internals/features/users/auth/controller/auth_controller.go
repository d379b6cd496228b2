package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"ecole_backend/internals/features/users/auth/dto"
	"ecole_backend/internals/features/users/auth/service"
	helper "ecole_backend/internals/helpers"
	"ecole_backend/internals/helpers/form"
	"ecole_backend/internals/middlewares/auth"
)

type AuthController struct {
	Svc      *service.AuthService
	validate func(any) error
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Svc: svc, validate: form.NewValidator().Struct}
}

func (ac *AuthController) invalid(c *fiber.Ctx, err error) error {
	fields := helper.FieldErrors(err)
	for name, tags := range fields {
		for i, tag := range tags {
			if msg, ok := dto.Messages[name+"."+tag]; ok {
				tags[i] = msg
			}
		}
	}
	return helper.JsonValidationError(c, fields)
}

// POST /api/auth/parent/check-email
func (ac *AuthController) CheckEmail(c *fiber.Ctx) error {
	in, err := form.Bind[dto.CheckEmailRequest](c)
	if err != nil {
		return err
	}
	if err := ac.validate(in); err != nil {
		return ac.invalid(c, err)
	}
	return helper.JsonResult(c, ac.Svc.CheckEmail(c.UserContext(), in.Email), 0)
}

// POST /api/auth/parent/sign-up
func (ac *AuthController) SignUp(c *fiber.Ctx) error {
	in, err := form.Bind[dto.SignUpRequest](c)
	if err != nil {
		return err
	}
	// passwords are taken verbatim
	in.Email = strings.TrimSpace(in.Email)
	if err := ac.validate(in); err != nil {
		return ac.invalid(c, err)
	}
	return helper.JsonResult(c, ac.Svc.SignUpParent(c.UserContext(), in), fiber.StatusCreated)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	return helper.JsonOK(c, auth.SessionFrom(c))
}
