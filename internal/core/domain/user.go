package domain

// UserRole defines the position a user holds in the business hierarchy.
type UserRole string

const (
	RoleOwner      UserRole = "OWNER"      // Hands out funds, approves returns
	RoleIncharge   UserRole = "INCHARGE"   // Receives funds, runs purchasing/manufacturing
	RoleShopkeeper UserRole = "SHOPKEEPER" // Holds wholesale stock, returns sale proceeds
)

// ValidUserRole reports whether the given role is one of the known roles.
func ValidUserRole(r UserRole) bool {
	switch r {
	case RoleOwner, RoleIncharge, RoleShopkeeper:
		return true
	}
	return false
}

// User represents an application user.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Name         string   `json:"name"`
	Username     string   `json:"username"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	IsActive     bool     `json:"isActive"`
	AuditFields
}

// Actor is the request-scoped authenticated identity, built by the auth
// middleware from token claims and passed explicitly into every core operation.
type Actor struct {
	UserID string   `json:"userID"`
	Role   UserRole `json:"role"`
}

// IsOwner reports whether the actor holds the owner role.
func (a Actor) IsOwner() bool {
	return a.Role == RoleOwner
}
