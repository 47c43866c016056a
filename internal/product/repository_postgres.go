package product

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const productColumns = `product_id, name, description, price, compare_price, category, collection,
		images, sizes, colors, tags, badge, rating_average, rating_count,
		is_limited, limited_stock, is_featured, is_active, sold_count, created_at, updated_at`

var sortColumns = map[string]string{
	"price":     "price",
	"createdAt": "created_at",
	"soldCount": "sold_count",
	"rating":    "rating_average",
	"name":      "name",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var (
		p                     Product
		comparePrice, limited sql.NullInt64
		collection, badge     sql.NullString
		images, sizes, colors []byte
		createdAt, updatedAt  time.Time
	)

	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &comparePrice, &p.Category, &collection,
		&images, &sizes, &colors, pq.Array(&p.Tags), &badge, &p.Rating.Average, &p.Rating.Count,
		&p.IsLimited, &limited, &p.IsFeatured, &p.IsActive, &p.SoldCount, &createdAt, &updatedAt)
	if err != nil {
		return Product{}, err
	}

	if comparePrice.Valid {
		v := int(comparePrice.Int64)
		p.ComparePrice = &v
	}
	if limited.Valid {
		v := int(limited.Int64)
		p.LimitedStock = &v
	}
	if collection.Valid {
		p.Collection = &collection.String
	}
	if badge.Valid {
		p.Badge = &badge.String
	}
	json.Unmarshal(images, &p.Images)
	json.Unmarshal(sizes, &p.Sizes)
	json.Unmarshal(colors, &p.Colors)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	p.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	p.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	return p, nil
}

// buildWhere renders the filter set into a WHERE clause. Active-only is
// always applied.
func buildWhere(q ListQuery) (string, []any) {
	clauses := []string{"is_active = TRUE"}
	args := []any{}

	if q.Category != "" {
		args = append(args, q.Category)
		clauses = append(clauses, "category = "+fmt.Sprintf("$%d", len(args)))
	}
	if q.Collection != "" {
		args = append(args, q.Collection)
		clauses = append(clauses, "collection = "+fmt.Sprintf("$%d", len(args)))
	}
	if q.MinPrice != nil {
		args = append(args, *q.MinPrice)
		clauses = append(clauses, "price >= "+fmt.Sprintf("$%d", len(args)))
	}
	if q.MaxPrice != nil {
		args = append(args, *q.MaxPrice)
		clauses = append(clauses, "price <= "+fmt.Sprintf("$%d", len(args)))
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

func orderBy(sortKey string) string {
	if sortKey == "" {
		return "ORDER BY created_at DESC"
	}
	dir := "ASC"
	field := sortKey
	if strings.HasPrefix(sortKey, "-") {
		dir = "DESC"
		field = sortKey[1:]
	}
	col, ok := sortColumns[field]
	if !ok {
		return "ORDER BY created_at DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s", col, dir)
}

func (r *PostgresRepository) List(q ListQuery) (Page, error) {
	q = q.Normalize()
	where, args := buildWhere(q)

	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM products "+where, args...).Scan(&total); err != nil {
		return Page{}, err
	}

	query := fmt.Sprintf("SELECT %s FROM products %s %s LIMIT %d OFFSET %d",
		productColumns, where, orderBy(q.Sort), q.Limit, (q.Page-1)*q.Limit)
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return Page{}, err
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return Page{}, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return Page{}, err
	}

	pages := (total + q.Limit - 1) / q.Limit
	return Page{Products: products, Total: total, Page: q.Page, Pages: pages}, nil
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	row := r.db.QueryRow("SELECT "+productColumns+" FROM products WHERE product_id = $1", id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) Featured(limit int) ([]Product, error) {
	return r.listFlagged("is_featured", limit)
}

func (r *PostgresRepository) Limited(limit int) ([]Product, error) {
	return r.listFlagged("is_limited", limit)
}

func (r *PostgresRepository) listFlagged(flag string, limit int) ([]Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE %s = TRUE AND is_active = TRUE ORDER BY created_at DESC LIMIT $1",
		productColumns, flag)
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0, limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Search(query string, limit int) ([]Product, error) {
	pattern := "%" + query + "%"
	rows, err := r.db.Query(`SELECT `+productColumns+` FROM products
		WHERE is_active = TRUE
		  AND (name ILIKE $1 OR description ILIKE $1 OR array_to_string(tags, ' ') ILIKE $1)
		ORDER BY sold_count DESC
		LIMIT $2`, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	images, _ := json.Marshal(orEmptyImages(p.Images))
	sizes, _ := json.Marshal(orEmptySizes(p.Sizes))
	colors, _ := json.Marshal(orEmptyColors(p.Colors))

	err := r.db.QueryRow(`INSERT INTO products
		(name, description, price, compare_price, category, collection, images, sizes, colors, tags,
		 badge, rating_average, rating_count, is_limited, limited_stock, is_featured, is_active, sold_count)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		RETURNING product_id`,
		p.Name, p.Description, p.Price, p.ComparePrice, p.Category, p.Collection, images, sizes, colors,
		pq.Array(p.Tags), p.Badge, p.Rating.Average, p.Rating.Count,
		p.IsLimited, p.LimitedStock, p.IsFeatured, p.IsActive, p.SoldCount).Scan(&p.ID)
	if err != nil {
		return Product{}, err
	}
	return r.GetByID(p.ID)
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	images, _ := json.Marshal(orEmptyImages(p.Images))
	sizes, _ := json.Marshal(orEmptySizes(p.Sizes))
	colors, _ := json.Marshal(orEmptyColors(p.Colors))

	res, err := r.db.Exec(`UPDATE products SET
		name = $1, description = $2, price = $3, compare_price = $4, category = $5, collection = $6,
		images = $7, sizes = $8, colors = $9, tags = $10, badge = $11,
		rating_average = $12, rating_count = $13, is_limited = $14, limited_stock = $15,
		is_featured = $16, is_active = $17, updated_at = NOW()
		WHERE product_id = $18`,
		p.Name, p.Description, p.Price, p.ComparePrice, p.Category, p.Collection,
		images, sizes, colors, pq.Array(p.Tags), p.Badge,
		p.Rating.Average, p.Rating.Count, p.IsLimited, p.LimitedStock,
		p.IsFeatured, p.IsActive, id)
	if err != nil {
		return Product{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Product{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Deactivate(id int) error {
	res, err := r.db.Exec(`UPDATE products SET is_active = FALSE, updated_at = NOW() WHERE product_id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) IncrementSold(id int, by int) error {
	res, err := r.db.Exec(`UPDATE products SET sold_count = sold_count + $1, updated_at = NOW() WHERE product_id = $2`, by, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func orEmptyImages(v []Image) []Image {
	if v == nil {
		return []Image{}
	}
	return v
}

func orEmptySizes(v []SizeStock) []SizeStock {
	if v == nil {
		return []SizeStock{}
	}
	return v
}

func orEmptyColors(v []Color) []Color {
	if v == nil {
		return []Color{}
	}
	return v
}
