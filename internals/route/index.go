package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecole_backend/internals/constants"
	authMiddleware "ecole_backend/internals/middlewares/auth"
	"ecole_backend/internals/realtime"
	"ecole_backend/internals/revalidate"
	routeDetails "ecole_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, s *routeDetails.Services, reg *revalidate.Registry, hub *realtime.Hub) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db, hub)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, s)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + ParentBinding + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(""),
		authMiddleware.BindParentByEmail(s.Parents),
		authMiddleware.OnlyRolesSlice(constants.ErrOnlyAdminsCanAccess, constants.AdminOnly),
	)

	// ===================== PARENT =====================
	log.Println("[INFO] Setting up PARENT group (Auth + ParentBinding + RoleCheck + Link)...")
	parent := app.Group("/api/p",
		authMiddleware.AuthMiddleware(""),
		authMiddleware.BindParentByEmail(s.Parents),
		authMiddleware.OnlyRolesSlice(constants.ErrOnlyParentsCanAccess, constants.ParentOnly),
		authMiddleware.RequireParentLink(),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting School routes...")
	routeDetails.SchoolAdminRoutes(admin, s, reg)

	log.Println("[INFO] Mounting Finance routes...")
	routeDetails.FinanceAdminRoutes(admin, s, reg)

	log.Println("[INFO] Mounting Communication routes...")
	routeDetails.CommunicationAdminRoutes(admin, s, reg, hub)

	log.Println("[INFO] Mounting Parent routes...")
	routeDetails.ParentRoutes(parent, s, reg)
}
