package user

// Page identifies a portal route gated by role. Authorization here is
// advisory: the flags drive what the frontend router shows, while the
// HTTP middleware enforces the same mapping server-side.
type Page string

const (
	PageAdminDashboard     Page = "/admin-dashboard"
	PageEmployeeManagement Page = "/employee-management"
	PageAttendanceTracking Page = "/attendance-tracking"
	PagePayrollProcessing  Page = "/payroll-processing"
	PageReportsAnalytics   Page = "/reports-analytics"
)

// RolePages maps roles to the portal routes they may open.
var RolePages = map[Role][]Page{
	RoleAdmin: {
		PageAdminDashboard,
		PageEmployeeManagement,
		PageAttendanceTracking,
		PagePayrollProcessing,
		PageReportsAnalytics,
	},
	RoleHRManager: {
		PageEmployeeManagement,
		PageAttendanceTracking,
		PagePayrollProcessing,
		PageReportsAnalytics,
	},
	RoleDepartmentHead: {
		PageAttendanceTracking,
		PageReportsAnalytics,
	},
	RoleEmployee: {
		PageAttendanceTracking,
	},
}

// CanView checks if a role may open a portal route
func CanView(role Role, page Page) bool {
	pages, exists := RolePages[role]
	if !exists {
		return false
	}

	for _, p := range pages {
		if p == page {
			return true
		}
	}

	return false
}

// Visibility returns the per-route flags for a role, keyed by route path.
func Visibility(role Role) map[string]bool {
	result := make(map[string]bool, 5)
	for _, page := range []Page{
		PageAdminDashboard,
		PageEmployeeManagement,
		PageAttendanceTracking,
		PagePayrollProcessing,
		PageReportsAnalytics,
	} {
		result[string(page)] = CanView(role, page)
	}
	return result
}
