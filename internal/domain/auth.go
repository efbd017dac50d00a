package domain

// AuthUser is the authenticated principal recovered from a session token.
type AuthUser struct {
	Username string `json:"username"`
}
