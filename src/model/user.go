package model

import (
	"database/sql"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) HashPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}

func (u *User) CreateUser(db *sql.DB) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	res, err := db.Exec(`
		INSERT INTO users (email, password, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		u.Email, u.Password, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func GetUserByEmail(db *sql.DB, email string) (*User, error) {
	var u User
	err := db.QueryRow(`
		SELECT id, email, password FROM users WHERE email = ?`, email,
	).Scan(&u.ID, &u.Email, &u.Password)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func GetUserByID(db *sql.DB, id int64) (*User, error) {
	var u User
	err := db.QueryRow(`
		SELECT id, email, password FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Email, &u.Password)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// EnsureUser creates the account when the email is unknown, mirroring the
// demo-account seeding the app performs at startup. Existing accounts are
// left untouched.
func EnsureUser(db *sql.DB, email, password string) error {
	_, err := GetUserByEmail(db, email)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return err
	}
	u := &User{Email: email}
	if err := u.HashPassword(password); err != nil {
		return err
	}
	return u.CreateUser(db)
}
