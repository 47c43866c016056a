package user

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// uniqueViolation is the Postgres error code for a UNIQUE constraint hit.
const uniqueViolation = "23505"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `user_id, name, email, password, role, phone, addresses, wishlist, is_active, last_login, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var (
		u                    User
		addresses            []byte
		wishlist             []sql.NullInt64
		lastLogin            sql.NullTime
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.Phone,
		&addresses, pq.Array(&wishlist), &u.IsActive, &lastLogin, &createdAt, &updatedAt)
	if err != nil {
		return User{}, err
	}

	json.Unmarshal(addresses, &u.Addresses)
	if u.Addresses == nil {
		u.Addresses = []Address{}
	}
	for _, w := range wishlist {
		if w.Valid {
			u.Wishlist = append(u.Wishlist, int(w.Int64))
		}
	}
	if lastLogin.Valid {
		ts := lastLogin.Time.UTC().Format(time.RFC3339)
		u.LastLogin = &ts
	}
	u.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	u.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	return u, nil
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	u, err := scanUser(r.db.QueryRow("SELECT "+userColumns+" FROM users WHERE user_id = $1", id))
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	return u, err
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	u, err := scanUser(r.db.QueryRow("SELECT "+userColumns+" FROM users WHERE email = $1", email))
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	return u, err
}

func (r *PostgresRepository) Create(u User) (User, error) {
	addresses, _ := json.Marshal(u.Addresses)
	if u.Addresses == nil {
		addresses = []byte("[]")
	}

	err := r.db.QueryRow(`INSERT INTO users (name, email, password, role, phone, addresses)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING user_id`,
		u.Name, u.Email, u.Password, u.Role, u.Phone, addresses).Scan(&u.ID)
	if err != nil {
		// two racing registrations can both pass the service's email
		// pre-check; the constraint is the source of truth
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}
	return r.GetByID(u.ID)
}

func (r *PostgresRepository) Update(id int, u User) (User, error) {
	addresses, _ := json.Marshal(u.Addresses)
	if u.Addresses == nil {
		addresses = []byte("[]")
	}

	res, err := r.db.Exec(`UPDATE users
		SET name = $1, phone = $2, addresses = $3, updated_at = NOW()
		WHERE user_id = $4`,
		u.Name, u.Phone, addresses, id)
	if err != nil {
		return User{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return User{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) UpdatePassword(id int, hashed string) error {
	res, err := r.db.Exec(`UPDATE users SET password = $1, updated_at = NOW() WHERE user_id = $2`, hashed, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) TouchLastLogin(id int) error {
	_, err := r.db.Exec(`UPDATE users SET last_login = NOW() WHERE user_id = $1`, id)
	return err
}
