package schema

// UsersTable represents the 'public.users' table
type UsersTable struct {
	Table        string
	UserID       string
	Username     string
	PasswordHash string
	Name         string
	Role         string
	IsActive     string
	LastActive   string
	CreatedAt    string
}

// Users is the schema definition for public.users
var Users = UsersTable{
	Table:        "public.users",
	UserID:       "user_id",
	Username:     "username",
	PasswordHash: "password_hash",
	Name:         "name",
	Role:         "role",
	IsActive:     "is_active",
	LastActive:   "last_active",
	CreatedAt:    "created_at",
}

// Columns returns all standard column names
func (t UsersTable) Columns() []string {
	return []string{
		t.UserID, t.Username, t.PasswordHash, t.Name,
		t.Role, t.IsActive, t.LastActive, t.CreatedAt,
	}
}
