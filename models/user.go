package models

// UserRole defines the capability sets the gateway can route to.
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleSeller   UserRole = "seller"
	RoleRider    UserRole = "rider"
)

// User mirrors the auth service's profile document. Role is empty until the
// user has been through role selection.
type User struct {
	ID     string   `json:"_id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Image  string   `json:"image,omitempty"`
	Avatar string   `json:"avatar,omitempty"`
	Role   UserRole `json:"role"`
}

// HasRole reports whether the user has completed role selection.
func (u *User) HasRole() bool {
	return u != nil && u.Role != ""
}
