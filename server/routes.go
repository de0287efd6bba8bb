package server

import "net/http"

func (s *Server) initRoutes() {
	// Anti-forgery bootstrap
	s.RegisterRouteFunc("GET "+RouteCSRFCookie, ChainMiddleware(s.CSRFCookieHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteAdminPage, ChainMiddleware(s.AdminPageHandler(), s.HTMLMiddleWare()...))

	// AUTH
	s.RegisterRouteFunc("POST "+RouteLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.AuthMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteMe, ChainMiddleware(s.MeHandler(), s.AuthMiddleware()...))

	// Public
	s.RegisterRouteFunc("POST "+RouteContactSubmit, ChainMiddleware(s.ContactSubmitHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteSiteConfig, ChainMiddleware(s.SiteConfigHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("PUT "+RouteSiteConfig, ChainMiddleware(s.UpdateSiteConfigHandler(), s.AuthMiddleware(superAdminRoles)...))

	admin := s.AuthMiddleware(adminRoles)
	superAdmin := s.AuthMiddleware(superAdminRoles)

	// Resources
	registerResource(s, s.driverResource(), admin)
	registerResource(s, s.leagueResource(), admin)
	registerResource(s, s.carResource(), admin)
	registerResource(s, s.adminResource(), superAdmin)

	users := s.userResource()
	s.RegisterRouteFunc("GET "+RouteUsers, ChainMiddleware(listHandler(s, users), superAdmin...))
	s.RegisterRouteFunc("POST "+RouteUsers, ChainMiddleware(s.CreateUserHandler(), superAdmin...))
	s.RegisterRouteFunc("GET "+RouteUsers+"/{id}", ChainMiddleware(getHandler(s, users), superAdmin...))
	s.RegisterRouteFunc("PUT "+RouteUsers+"/{id}", ChainMiddleware(updateHandler(s, users), superAdmin...))
	s.RegisterRouteFunc("PATCH "+RouteUsers+"/{id}", ChainMiddleware(updateHandler(s, users), superAdmin...))
	s.RegisterRouteFunc("DELETE "+RouteUsers+"/{id}", ChainMiddleware(deleteHandler(s, users), superAdmin...))

	// League entries
	s.RegisterRouteFunc("GET "+RouteLeagues+"/{id}/drivers", ChainMiddleware(s.LeagueDriversHandler(), admin...))
	s.RegisterRouteFunc("POST "+RouteLeagues+"/{id}/drivers", ChainMiddleware(s.AddLeagueDriverHandler(), admin...))
	s.RegisterRouteFunc("DELETE "+RouteLeagues+"/{id}/drivers/{driverID}", ChainMiddleware(s.RemoveLeagueDriverHandler(), admin...))

	// Inbox
	s.RegisterRouteFunc("GET "+RouteContacts, ChainMiddleware(s.ContactListHandler(), admin...))
	s.RegisterRouteFunc("GET "+RouteContacts+"/{id}", ChainMiddleware(getHandler(s, s.contactResource()), admin...))
	s.RegisterRouteFunc("PATCH "+RouteContacts+"/{id}/read", ChainMiddleware(s.ContactMarkReadHandler(), admin...))
	s.RegisterRouteFunc("DELETE "+RouteContacts+"/{id}", ChainMiddleware(deleteHandler(s, s.contactResource()), admin...))

	s.RegisterRouteFunc("GET "+RouteNotifications, ChainMiddleware(s.NotificationListHandler(), admin...))
	s.RegisterRouteFunc("GET "+RouteNotifications+"/unread-count", ChainMiddleware(s.NotificationUnreadCountHandler(), admin...))
	s.RegisterRouteFunc("POST "+RouteNotifications+"/read-all", ChainMiddleware(s.NotificationMarkAllReadHandler(), admin...))
	s.RegisterRouteFunc("POST "+RouteNotifications+"/{id}/read", ChainMiddleware(s.NotificationMarkReadHandler(), admin...))
	s.RegisterRouteFunc("DELETE "+RouteNotifications+"/{id}", ChainMiddleware(s.NotificationDeleteHandler(), admin...))

	// Monitoring
	s.RegisterRouteFunc("GET "+RouteActivityLogs, ChainMiddleware(s.ActivityListHandler(), admin...))
	s.RegisterRouteFunc("GET "+RouteActivityLogs+"/{id}", ChainMiddleware(s.ActivityGetHandler(), admin...))
	s.RegisterRouteFunc("GET "+RouteQueueStats, ChainMiddleware(s.QueueStatsHandler(), admin...))
	s.RegisterRouteFunc("GET "+RouteQueueFailed, ChainMiddleware(s.FailedJobsHandler(), admin...))
	s.RegisterRouteFunc("POST "+RouteQueueFailed+"/{uuid}/retry", ChainMiddleware(s.RetryJobHandler(), admin...))
	s.RegisterRouteFunc("DELETE "+RouteQueueFailed, ChainMiddleware(s.FlushFailedJobsHandler(), superAdmin...))

	// CORS preflight never matches the method-specific patterns above
	s.RegisterRouteFunc("OPTIONS /api/", ChainMiddleware(s.preflightHandler(), s.CorsMiddleware))
	s.RegisterRouteFunc("OPTIONS "+RouteCSRFCookie, ChainMiddleware(s.preflightHandler(), s.CorsMiddleware))
}

func (s *Server) preflightHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}
