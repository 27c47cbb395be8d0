package devserver

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jmoiron/sqlx"

	"vitrin/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

type productRow struct {
	ID         int     `db:"id"`
	Title      string  `db:"title"`
	Price      float64 `db:"price"`
	ImagesJSON string  `db:"images_json"`
}

func (r *ProductRepo) hydrate(rows []productRow) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		p := domain.Product{ID: row.ID, Title: row.Title, Price: row.Price, Images: []string{}}
		if row.ImagesJSON != "" {
			if err := json.Unmarshal([]byte(row.ImagesJSON), &p.Images); err != nil {
				return nil, err
			}
		}
		var revs []domain.Review
		err := r.db.Select(&revs, `
  SELECT rating, comment, reviewer_name, date
  FROM reviews WHERE product_id = ? ORDER BY date`, row.ID)
		if err != nil {
			return nil, err
		}
		p.Reviews = revs
		out = append(out, p)
	}
	return out, nil
}

// List returns one page ordered by id plus the unpaginated total.
func (r *ProductRepo) List(limit, offset int) ([]domain.Product, int, error) {
	var rows []productRow
	err := r.db.Select(&rows, `
  SELECT id, title, price, images_json
  FROM products ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM products`); err != nil {
		return nil, 0, err
	}
	out, err := r.hydrate(rows)
	return out, total, err
}

func (r *ProductRepo) Search(q string, limit, offset int) ([]domain.Product, int, error) {
	like := "%" + q + "%"
	var rows []productRow
	err := r.db.Select(&rows, `
  SELECT id, title, price, images_json
  FROM products WHERE LOWER(title) LIKE LOWER(?)
  ORDER BY id LIMIT ? OFFSET ?`, like, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM products WHERE LOWER(title) LIKE LOWER(?)`, like); err != nil {
		return nil, 0, err
	}
	out, err := r.hydrate(rows)
	return out, total, err
}

func (r *ProductRepo) Get(id int) (domain.Product, bool, error) {
	var row productRow
	err := r.db.Get(&row, `SELECT id, title, price, images_json FROM products WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, false, nil
		}
		return domain.Product{}, false, err
	}
	out, err := r.hydrate([]productRow{row})
	if err != nil {
		return domain.Product{}, false, err
	}
	return out[0], true, nil
}

func (r *ProductRepo) Add(title string, price float64) (domain.Product, error) {
	res, err := r.db.Exec(`INSERT INTO products(title, price, images_json) VALUES (?, ?, '[]')`, title, price)
	if err != nil {
		return domain.Product{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Product{}, err
	}
	return domain.Product{ID: int(id), Title: title, Price: price, Images: []string{}, Reviews: []domain.Review{}}, nil
}

func (r *ProductRepo) Update(id int, title string, price float64) (domain.Product, bool, error) {
	res, err := r.db.Exec(`UPDATE products SET title = ?, price = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, title, price, id)
	if err != nil {
		return domain.Product{}, false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Product{}, false, err
	}
	if n == 0 {
		return domain.Product{}, false, nil
	}
	return r.Get(id)
}

func (r *ProductRepo) Delete(id int) (domain.Product, bool, error) {
	p, ok, err := r.Get(id)
	if err != nil || !ok {
		return domain.Product{}, ok, err
	}
	_, err = r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	return p, true, err
}
