package model

const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// Identity is the principal resolved by the external identity provider.
type Identity struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
