package http

const (
	HomePath      = "/"
	RegisterPath  = "/register"
	LoginPath     = "/login"
	LogoutPath    = "/logout"
	DashboardPath = "/dashboard"
)

const (
	messageEmailTaken         = "An account with this email already exists"
	messageInvalidCredentials = "Invalid email or password"
	messageInvalidForm        = "Please correct the errors below"
)
