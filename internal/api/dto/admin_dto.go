package dto

// AdminLoginForm is the dashboard login payload.
type AdminLoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// DashboardQuery carries the dashboard filter and flash message.
type DashboardQuery struct {
	Search   string `query:"search"`
	Status   string `query:"status"`
	Category string `query:"category"`
	Flash    string `query:"flash"`
}
