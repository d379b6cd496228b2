package constants

// Roles carried in the Supabase user_metadata.role claim. A session
// without one is an admin.
const (
	RoleAdmin  = "admin"
	RoleParent = "parent"
)

const (
	ErrOnlyAdminsCanAccess  = "Seuls les administrateurs peuvent accéder à cette section."
	ErrOnlyParentsCanAccess = "Seuls les parents peuvent accéder à cette section."
	ErrNoParentLinked       = "Aucun parent n'est associé à ce compte."
	ErrLoginRequired        = "Veuillez vous connecter."
	ErrSessionCheckFailed   = "Impossible de vérifier le compte pour le moment."
)

// Where each role lands; also the redirect hint of a refused request.
const (
	HomeLogin  = "/auth/login"
	HomeAdmin  = "/dashboard"
	HomeParent = "/parents"
)

var (
	AllRoles   = []string{RoleAdmin, RoleParent}
	AdminOnly  = []string{RoleAdmin}
	ParentOnly = []string{RoleParent}
)

// HomeFor returns the landing route of role.
func HomeFor(role string) string {
	if role == RoleParent {
		return HomeParent
	}
	return HomeAdmin
}
