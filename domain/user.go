package domain

type User struct {
	ID        int64  `json:"id" db:"id"`
	Username  string `json:"username" db:"username"`
	Email     string `json:"email" db:"email"`
	Password  string `json:"password,omitempty" db:"password"`
	Role      string `json:"role" db:"role"`
	CreatedAt string `json:"created_at,omitempty" db:"created_at"`
}

// Staff roles accepted at registration.
const (
	RoleAdmin        = "admin"
	RoleReceptionist = "receptionist"
	RoleDoctor       = "doctor"
	RoleStorekeeper  = "storekeeper"
)

// ValidRole reports whether r is one of the known staff roles.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleReceptionist, RoleDoctor, RoleStorekeeper:
		return true
	}
	return false
}
