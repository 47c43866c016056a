package order

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const orderColumns = `order_id, user_id, order_number, items, shipping_address, payment_method, payment_status,
		items_price, shipping_price, tax_price, total_price, status,
		tracking_number, delivered_at, cancelled_at, cancel_reason, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var (
		o                    Order
		items, address       []byte
		tracking, reason     sql.NullString
		delivered, cancelled sql.NullTime
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&o.ID, &o.UserID, &o.OrderNumber, &items, &address, &o.PaymentMethod, &o.PaymentStatus,
		&o.ItemsPrice, &o.ShippingPrice, &o.TaxPrice, &o.TotalPrice, &o.Status,
		&tracking, &delivered, &cancelled, &reason, &createdAt, &updatedAt)
	if err != nil {
		return Order{}, err
	}

	json.Unmarshal(items, &o.Items)
	if o.Items == nil {
		o.Items = []Item{}
	}
	json.Unmarshal(address, &o.ShippingAddress)
	if tracking.Valid {
		o.TrackingNumber = &tracking.String
	}
	if reason.Valid {
		o.CancelReason = &reason.String
	}
	if delivered.Valid {
		ts := delivered.Time.UTC().Format(time.RFC3339)
		o.DeliveredAt = &ts
	}
	if cancelled.Valid {
		ts := cancelled.Time.UTC().Format(time.RFC3339)
		o.CancelledAt = &ts
	}
	o.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	o.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	return o, nil
}

// Create inserts the order inside a transaction, drawing the order number
// from order_number_seq so concurrent checkouts never collide.
func (r *PostgresRepository) Create(o Order) (Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, err
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRow(`SELECT nextval('order_number_seq')`).Scan(&seq); err != nil {
		return Order{}, err
	}
	o.OrderNumber = formatOrderNumber(time.Now(), seq)

	items, _ := json.Marshal(o.Items)
	address, _ := json.Marshal(o.ShippingAddress)

	err = tx.QueryRow(`INSERT INTO orders
		(user_id, order_number, items, shipping_address, payment_method, payment_status,
		 items_price, shipping_price, tax_price, total_price, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING order_id`,
		o.UserID, o.OrderNumber, items, address, o.PaymentMethod, o.PaymentStatus,
		o.ItemsPrice, o.ShippingPrice, o.TaxPrice, o.TotalPrice, o.Status).Scan(&o.ID)
	if err != nil {
		return Order{}, err
	}

	if err := tx.Commit(); err != nil {
		return Order{}, err
	}
	return r.GetByID(o.ID)
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	o, err := scanOrder(r.db.QueryRow("SELECT "+orderColumns+" FROM orders WHERE order_id = $1", id))
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	return o, err
}

func (r *PostgresRepository) List(q ListQuery) (Page, error) {
	q = q.Normalize()

	where := "WHERE TRUE"
	args := []any{}
	if q.UserID != 0 {
		args = append(args, q.UserID)
		where += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if q.Status != "" {
		args = append(args, string(q.Status))
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM orders "+where, args...).Scan(&total); err != nil {
		return Page{}, err
	}

	query := fmt.Sprintf("SELECT %s FROM orders %s ORDER BY created_at DESC LIMIT %d OFFSET %d",
		orderColumns, where, q.Limit, (q.Page-1)*q.Limit)
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return Page{}, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return Page{}, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return Page{}, err
	}

	pages := (total + q.Limit - 1) / q.Limit
	return Page{Orders: orders, Total: total, Page: q.Page, Pages: pages}, nil
}

func (r *PostgresRepository) Update(o Order) (Order, error) {
	var delivered, cancelled any
	if o.DeliveredAt != nil {
		if t, err := time.Parse(time.RFC3339, *o.DeliveredAt); err == nil {
			delivered = t
		}
	}
	if o.CancelledAt != nil {
		if t, err := time.Parse(time.RFC3339, *o.CancelledAt); err == nil {
			cancelled = t
		}
	}

	res, err := r.db.Exec(`UPDATE orders SET
		status = $1, payment_status = $2, tracking_number = $3,
		delivered_at = $4, cancelled_at = $5, cancel_reason = $6, updated_at = NOW()
		WHERE order_id = $7`,
		o.Status, o.PaymentStatus, o.TrackingNumber, delivered, cancelled, o.CancelReason, o.ID)
	if err != nil {
		return Order{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Order{}, ErrNotFound
	}
	return r.GetByID(o.ID)
}
