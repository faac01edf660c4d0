package common

// AuthHeaderName is the HTTP header carrying the raw session token.
// The token is sent as-is, without a "Bearer" prefix.
const AuthHeaderName = "Authorization"

// Roles assigned at registration. The first registered user becomes
// RoleAdmin, everyone after that RoleUser.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
