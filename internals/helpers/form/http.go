package form

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	helper "ecole_backend/internals/helpers"
)

// TokenHeader identifies one open form on the client, so a double click
// does not create the record twice.
const TokenHeader = "X-Form-Token"

func Bind[In any](c *fiber.Ctx) (*In, error) {
	in := new(In)
	if err := c.BodyParser(in); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Payload invalide")
	}
	return in, nil
}

func Token(c *fiber.Ctx) string {
	return strings.TrimSpace(c.Get(TokenHeader))
}

// Status picks the HTTP status of an outcome.
func Status[Out any](out Outcome[Out], okStatus int) int {
	switch out.State {
	case StateSuccess:
		if okStatus == 0 {
			return fiber.StatusOK
		}
		return okStatus
	case StateSubmitting:
		return fiber.StatusConflict
	}
	switch out.Kind {
	case helper.KindValidation:
		return fiber.StatusUnprocessableEntity
	case helper.KindNotFound:
		return fiber.StatusNotFound
	case helper.KindException:
		return fiber.StatusInternalServerError
	}
	if strings.HasPrefix(out.Code, "23") {
		return fiber.StatusConflict
	}
	return fiber.StatusBadGateway
}

func Respond[Out any](c *fiber.Ctx, out Outcome[Out], okStatus int) error {
	return c.Status(Status(out, okStatus)).JSON(out)
}
