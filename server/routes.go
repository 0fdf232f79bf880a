package server

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteIndex+"{$}", ChainMiddleware(s.IndexHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("GET "+RouteHealthz, s.HealthzHandler())

	// LOGIN
	s.RegisterRouteHandler("GET "+RouteAuthLogin, ChainMiddleware(s.LoginPageUIHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// Password recovery: request code, verify code, set new password
	s.RegisterRouteHandler("GET "+RouteForgotPassword, ChainMiddleware(s.ForgotPasswordGetHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteForgotPassword, ChainMiddleware(s.ForgotPasswordPostHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteVerifyOTP, ChainMiddleware(s.VerifyOTPGetHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteVerifyOTP, ChainMiddleware(s.VerifyOTPPostHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteResendOTP, ChainMiddleware(s.ResendOTPHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteResetPassword, ChainMiddleware(s.ResetPasswordGetHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteResetPassword, ChainMiddleware(s.ResetPasswordPostHandler(), s.HTMLMiddleWare()...))

	// Admin routes (require a session, and a CSRF token on POST)
	s.RegisterRouteHandler("GET "+RouteAdminDashboard, ChainMiddleware(s.AdminDashboardHandler(), s.AdminMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteAdminUsers, ChainMiddleware(s.AdminUsersListHandler(), s.AdminMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAdminUser, ChainMiddleware(s.AdminUserHandler(), s.AdminMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteAdminBadges, ChainMiddleware(s.AdminBadgesListHandler(), s.AdminMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAdminBadges, ChainMiddleware(s.AdminBadgeCreateHandler(), s.AdminMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAdminBadgesDelete, ChainMiddleware(s.AdminBadgesDeleteHandler(), s.AdminMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAdminBadge, ChainMiddleware(s.AdminBadgeUpdateHandler(), s.AdminMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteAdminCategories, ChainMiddleware(s.AdminCategoriesListHandler(), s.AdminMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAdminCategories, ChainMiddleware(s.AdminCategoryCreateHandler(), s.AdminMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAdminCategory, ChainMiddleware(s.AdminCategoryUpdateHandler(), s.AdminMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAdminCategoryDelete, ChainMiddleware(s.AdminCategoryDeleteHandler(), s.AdminMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteAdminInterests, ChainMiddleware(s.AdminInterestsListHandler(), s.AdminMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAdminInterests, ChainMiddleware(s.AdminInterestCreateHandler(), s.AdminMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAdminInterest, ChainMiddleware(s.AdminInterestUpdateHandler(), s.AdminMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAdminInterestDelete, ChainMiddleware(s.AdminInterestDeleteHandler(), s.AdminMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteAdminReports, ChainMiddleware(s.AdminReportsListHandler(), s.AdminMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAdminReports, ChainMiddleware(s.AdminReportCreateHandler(), s.AdminMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAdminReport, ChainMiddleware(s.AdminReportHandler(), s.AdminMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAdminReport, ChainMiddleware(s.AdminReportUpdateHandler(), s.AdminMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAdminReportResolve, ChainMiddleware(s.AdminReportResolveHandler(), s.AdminMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAdminReportDelete, ChainMiddleware(s.AdminReportDeleteHandler(), s.AdminMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteStaticCSS, ChainMiddleware(s.serveFileHandler("css"), s.StaticMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteStaticJS, ChainMiddleware(s.serveFileHandler("js"), s.StaticMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteStaticImg, ChainMiddleware(s.serveFileHandler("img"), s.StaticMiddleware()...))
}
