package domain

import "strings"

// AdminUsername is the reserved account name that carries admin rights.
const AdminUsername = "admin"

// User is a storefront account.
//
// The logged-in flag is process-local: it is not part of the JSON encoding,
// so reloading the users collection resets every account to logged out.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`

	loggedIn bool
}

// IsAdmin reports whether the username is "admin", ignoring case.
func (u User) IsAdmin() bool {
	return strings.EqualFold(u.Username, AdminUsername)
}

// LoggedIn reports whether the user has an active login.
func (u User) LoggedIn() bool {
	return u.loggedIn
}

// Login marks the user logged in if password matches exactly.
// On mismatch it returns false and leaves the state unchanged.
func (u *User) Login(password string) bool {
	if u.Password != password {
		return false
	}
	u.loggedIn = true
	return true
}

// Logout clears the logged-in flag. Returns false if the user was not logged in.
func (u *User) Logout() bool {
	if !u.loggedIn {
		return false
	}
	u.loggedIn = false
	return true
}
