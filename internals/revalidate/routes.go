package revalidate

// Route keys of the pages whose data must be re-fetched after a mutation.
const (
	RouteDashboard           = "/dashboard"
	RouteSchoolYears         = "/dashboard/anneescolaire"
	RouteClasses             = "/dashboard/classes"
	RouteOptions             = "/dashboard/options"
	RouteStudents            = "/dashboard/eleves"
	RouteParents             = "/dashboard/parents"
	RouteFees                = "/dashboard/frais"
	RouteEnrollments         = "/dashboard/inscriptions"
	RoutePayments            = "/dashboard/paiements"
	RouteNotifications       = "/dashboard/notifications"
	RoutePortal              = "/parents"
	RoutePortalPayments      = "/parents/paiements"
	RoutePortalNotifications = "/parents/notifications"
)

// Entity keys are the table names, so change notifications coming from
// the database can be fed straight into Invalidate.
const (
	EntitySchoolYear   = "anneescolaire"
	EntityOption       = "option"
	EntityClass        = "classe"
	EntityParent       = "parent"
	EntityStudent      = "eleve"
	EntityFee          = "frais"
	EntityEnrollment   = "inscription"
	EntityPayment      = "paiement"
	EntityNotification = "notification"
)

// Dependencies lists, per entity, every route whose rendered data reads
// that entity (directly or through a join).
var Dependencies = map[string][]string{
	EntitySchoolYear: {RouteSchoolYears, RouteFees, RouteEnrollments, RouteDashboard},
	EntityOption:     {RouteOptions, RouteClasses, RouteEnrollments, RoutePortal, RouteDashboard},
	EntityClass:      {RouteClasses, RouteEnrollments, RoutePortal, RouteDashboard},
	EntityParent: {
		RouteParents, RouteStudents, RouteNotifications,
		RoutePortal, RoutePortalNotifications,
	},
	EntityStudent: {
		RouteStudents, RouteEnrollments, RoutePayments,
		RoutePortal, RoutePortalPayments, RouteDashboard,
	},
	EntityFee:          {RouteFees, RoutePayments, RoutePortalPayments},
	EntityEnrollment:   {RouteEnrollments, RoutePortal, RouteDashboard},
	EntityPayment:      {RoutePayments, RoutePortalPayments, RouteDashboard},
	EntityNotification: {RouteNotifications, RoutePortalNotifications},
}

// AllRoutes is the fallback for an entity missing from Dependencies.
var AllRoutes = []string{
	RouteDashboard, RouteSchoolYears, RouteClasses, RouteOptions, RouteStudents,
	RouteParents, RouteFees, RouteEnrollments, RoutePayments, RouteNotifications,
	RoutePortal, RoutePortalPayments, RoutePortalNotifications,
}
