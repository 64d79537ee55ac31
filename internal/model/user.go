package model

// Role values as stored in users.role.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents a row of the shared `users` table.  Only the contact
// columns are loaded; passwords never leave the database.  Name, Email
// and Phone may be empty when the row has NULL or blank values.
type User struct {
	ID    ID     // users.id
	Email string // users.email
	Name  string // users.name
	Phone string // users.phone (nullable)
	Role  string // users.role
}
