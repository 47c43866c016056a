package cart

import (
	"database/sql"
	"encoding/json"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Get loads the user's cart, creating the row on first access.
func (r *PostgresRepository) Get(userID int) (Cart, error) {
	var raw []byte
	err := r.db.QueryRow(`SELECT items FROM carts WHERE user_id = $1`, userID).Scan(&raw)
	if err == sql.ErrNoRows {
		if _, err := r.db.Exec(`INSERT INTO carts (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID); err != nil {
			return Cart{}, err
		}
		return Cart{Items: []Item{}}, nil
	}
	if err != nil {
		return Cart{}, err
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return Cart{}, err
	}
	if items == nil {
		items = []Item{}
	}
	return Cart{Items: items}, nil
}

func (r *PostgresRepository) Save(userID int, c Cart) error {
	items := c.Items
	if items == nil {
		items = []Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`INSERT INTO carts (user_id, items) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET items = EXCLUDED.items, updated_at = NOW()`,
		userID, raw)
	return err
}
