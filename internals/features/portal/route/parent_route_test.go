package route

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	notificationModel "ecole_backend/internals/features/communication/notifications/model"
	paymentModel "ecole_backend/internals/features/finance/payments/model"
	parentModel "ecole_backend/internals/features/people/parents/model"
	studentDTO "ecole_backend/internals/features/people/students/dto"
	studentModel "ecole_backend/internals/features/people/students/model"
	"ecole_backend/internals/features/portal/service"
	helper "ecole_backend/internals/helpers"
	"ecole_backend/internals/middlewares/auth"
	"ecole_backend/internals/revalidate"
)

type family struct{}

func (family) Get(_ context.Context, key ...any) helper.Result[parentModel.ParentModel] {
	if key[0].(int64) != 7 {
		return helper.NotFound[parentModel.ParentModel]("Parent non trouvé.")
	}
	return helper.Ok(parentModel.ParentModel{IDParent: 7, NomPere: "", NomMere: "Ilunga"})
}

func (family) ListByParent(_ context.Context, id int64) helper.Result[[]studentDTO.ChildView] {
	return helper.Ok([]studentDTO.ChildView{{StudentModel: studentModel.StudentModel{IDEleve: 1, IDParent: &id}}})
}

type payments struct{ seen *int64 }

func (p payments) ListForParent(_ context.Context, id int64) helper.Result[[]paymentModel.PaymentModel] {
	*p.seen = id
	return helper.Ok([]paymentModel.PaymentModel{})
}

type notes struct{}

func (notes) ListForParent(_ context.Context, _ int64) helper.Result[[]notificationModel.NotificationModel] {
	return helper.Fail[[]notificationModel.NotificationModel](helper.KindRemote, "Erreur lors de la récupération des notifications : timeout")
}

func portalApp(parentID int64, seen *int64) *fiber.App {
	svc := &service.PortalService{Parents: family{}, Children: family{}, Payments: payments{seen}, Notifications: notes{}}
	app := fiber.New()
	p := app.Group("/api/p", func(c *fiber.Ctx) error {
		c.Locals(auth.LocalParentID, parentID)
		return c.Next()
	})
	PortalRoutes(p, svc, revalidate.NewRegistry(nil))
	return app
}

func get(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]any
	require.NoError(t, sonic.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

func TestMeGreetsParent(t *testing.T) {
	var seen int64
	code, body := get(t, portalApp(7, &seen), "/api/p/me")
	require.Equal(t, fiber.StatusOK, code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "Mme. Ilunga", data["greeting"])

	code, _ = get(t, portalApp(9, &seen), "/api/p/me")
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestListsAreScopedToSessionParent(t *testing.T) {
	var seen int64
	app := portalApp(7, &seen)

	code, body := get(t, app, "/api/p/payments")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, int64(7), seen)

	code, body = get(t, app, "/api/p/children")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Len(t, body["data"], 1)

	code, body = get(t, app, "/api/p/notifications")
	assert.Equal(t, fiber.StatusBadGateway, code)
	assert.Equal(t, false, body["success"])
}
