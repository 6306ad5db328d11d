package admin

import "time"

const (
	CookieName = "pharmacare_admin"

	defaultUsername = "admin"
	defaultPassword = "admin123"

	sessionDuration = 12 * time.Hour

	whatsappProvider = "whatsapp"
)

// Admin is stored under its username.
type Admin struct {
	UID          string
	Username     string
	PasswordHash string `datastore:",noindex"`
}

// Session is stored under the digest of the token handed to the browser.
type Session struct {
	AdminUID  string
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AdminInfo struct {
	UID      string `json:"id"`
	Username string `json:"username"`
}

type LoginResponse struct {
	Message string    `json:"message"`
	Admin   AdminInfo `json:"admin"`
	Token   string    `json:"token"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type Analytics struct {
	TotalProducts     int             `json:"totalProducts"`
	TotalCategories   int             `json:"totalCategories"`
	MonthlyOrders     int             `json:"monthlyOrders"`
	CategoryBreakdown []CategoryCount `json:"categoryBreakdown"`
}

type WhatsAppTokenRequest struct {
	AccessToken string `json:"accessToken"`
}
