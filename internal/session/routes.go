package session

import "github.com/hongminglow/society-be/internal/models"

// landingRoutes maps each role to the view a freshly logged-in user is sent to.
var landingRoutes = map[models.Role]string{
	models.RoleUser:  "/GetTransactions",
	models.RoleAdmin: "/AdminDashboard",
}

// RouteFor returns the landing view for role. Unknown roles have none.
func RouteFor(role models.Role) (string, bool) {
	route, ok := landingRoutes[role]
	return route, ok
}
