package campusfound

// Server endpoints consumed by the session manager. Domain endpoints live in
// the lostfound subpackage.
const (
	pathUserLogin          = "/api/user/login"
	pathLostItemAdminLogin = "/api/admin/lost-item/login"
	pathSuperAdminLogin    = "/api/admin/super/login"
	pathLogout             = "/api/logout"
	pathUserProfile        = "/api/user/profile"
	pathAdminProfile       = "/api/admin/lost-item/profile"
)
