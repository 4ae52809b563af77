package auth

// RoleAdmin is the only role the review console accepts today.
const RoleAdmin = "ADMIN"

// User is the domain entity.
type User struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     string
}
