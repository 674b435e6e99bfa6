package models

// User is the session identity handed out by the login service.
type User struct {
	ID       int    `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Email    string `db:"email" json:"email,omitempty"`
}

// UserSummary is the search-result view of a user.
type UserSummary struct {
	ID       int    `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
}
