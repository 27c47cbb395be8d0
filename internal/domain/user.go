package domain

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is the payload returned by /auth/login.
type Session struct {
	ID        int    `json:"id" db:"id"`
	Username  string `json:"username" db:"username"`
	Email     string `json:"email" db:"email"`
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName" db:"last_name"`
	Image     string `json:"image" db:"image"`
	Token     string `json:"token"`
}

// User is the dev server's stored account row.
type User struct {
	ID        int    `db:"id"`
	Username  string `db:"username"`
	Email     string `db:"email"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Image     string `db:"image"`
	Hash      string `db:"password_hash"`
}
