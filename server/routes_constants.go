package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Anti-forgery bootstrap and the HTML shell carrying the csrf meta tag
	RouteCSRFCookie = "/sanctum/csrf-cookie"
	RouteAdminPage  = "/admin"

	// Auth
	RouteLogin  = "/api/login"
	RouteLogout = "/api/logout"
	RouteMe     = "/api/user"

	// Public
	RouteContactSubmit = "/api/contact"
	RouteSiteConfig    = "/api/site-config"

	// Resources
	RouteUsers         = "/api/users"
	RouteDrivers       = "/api/drivers"
	RouteLeagues       = "/api/leagues"
	RouteAdmins        = "/api/admins"
	RouteContacts      = "/api/contacts"
	RouteNotifications = "/api/notifications"
	RouteActivityLogs  = "/api/activity-logs"
	RoutePlatformCars  = "/api/platform-cars"

	// Queue monitoring
	RouteQueueStats  = "/api/queue/stats"
	RouteQueueFailed = "/api/queue/failed"
)
