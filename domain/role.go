package domain

// RoleEntry is a row of the role administration list.
type RoleEntry struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	Users       int    `db:"users" json:"users"`
}

func (r RoleEntry) Row() map[string]any {
	return map[string]any{
		"id":          r.ID,
		"name":        r.Name,
		"description": r.Description,
		"users":       r.Users,
	}
}
