package wishlist

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Toggle flips the product in or out of the wishlist in one statement, so
// concurrent toggles never overwrite each other. RETURNING reads the array
// after the update: containment means the product was just added.
func (r *PostgresRepository) Toggle(userID, productID int) (bool, error) {
	var added bool
	err := r.db.QueryRow(`UPDATE users SET
		wishlist = CASE WHEN wishlist @> ARRAY[$2]::integer[]
			THEN array_remove(wishlist, $2)
			ELSE array_append(wishlist, $2) END,
		updated_at = NOW()
		WHERE user_id = $1
		RETURNING wishlist @> ARRAY[$2]::integer[]`,
		userID, productID).Scan(&added)
	if err == sql.ErrNoRows {
		return false, ErrUserNotFound
	}
	return added, err
}

func (r *PostgresRepository) List(userID int) ([]int, error) {
	var raw []sql.NullInt64
	err := r.db.QueryRow(`SELECT wishlist FROM users WHERE user_id = $1`, userID).Scan(pq.Array(&raw))
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(raw))
	for _, v := range raw {
		if v.Valid {
			ids = append(ids, int(v.Int64))
		}
	}
	return ids, nil
}
