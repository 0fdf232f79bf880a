package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteIndex   = "/"
	RouteHealthz = "/healthz"

	// Auth Routes - Login & Logout
	RouteAuthLogin  = "/auth/login"
	RouteAuthLogout = "/auth/logout"

	// Auth Routes - Password Recovery
	RouteForgotPassword = "/auth/forgot-password"
	RouteVerifyOTP      = "/auth/verify-otp"
	RouteResendOTP      = "/auth/verify-otp/resend"
	RouteResetPassword  = "/auth/reset-password"

	// Admin Routes
	RouteAdminDashboard      = "/admin/dashboard"
	RouteAdminUsers          = "/admin/users"
	RouteAdminUser           = "/admin/users/{id}"
	RouteAdminBadges         = "/admin/badges"
	RouteAdminBadge          = "/admin/badges/{id}"
	RouteAdminBadgesDelete   = "/admin/badges/delete"
	RouteAdminCategories     = "/admin/categories"
	RouteAdminCategory       = "/admin/categories/{id}"
	RouteAdminCategoryDelete = "/admin/categories/{id}/delete"
	RouteAdminInterests      = "/admin/interests"
	RouteAdminInterest       = "/admin/interests/{id}"
	RouteAdminInterestDelete = "/admin/interests/{id}/delete"
	RouteAdminReports        = "/admin/reports"
	RouteAdminReport         = "/admin/reports/{id}"
	RouteAdminReportResolve  = "/admin/reports/{id}/resolve"
	RouteAdminReportDelete   = "/admin/reports/{id}/delete"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/css/{file}"
	RouteStaticJS  = "/js/{file}"
	RouteStaticImg = "/img/{file}"
)

// Non-pattern admin prefix used to validate return paths
const adminPrefix = "/admin/"
