package repositories

import (
	"database/sql"
	"errors"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

const userColumns = `id, full_name, email, COALESCE(phone,''), password_hash, role, created_at`

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.CreatedAt)
	return u, err
}

func (r UserRepository) Create(u models.User) error {
	_, err := r.DB.Exec(`
		INSERT INTO users (id, full_name, email, phone, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.FullName, u.Email, u.Phone, u.PasswordHash, u.Role, u.CreatedAt,
	)
	return err
}

func (r UserRepository) GetByEmail(email string) (models.User, error) {
	u, err := scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	return u, err
}

func (r UserRepository) GetByID(id string) (models.User, error) {
	u, err := scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	return u, err
}
