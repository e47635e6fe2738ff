package order

import (
	"context"
	"errors"

	"elitecart/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const uniqueViolation = "23505"

func (r *postgresRepo) Create(ctx context.Context, o *domain.Order) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO orders (order_number, payment_id, gateway_order_id, invoice, customer_name, user_id, email, currency, discount_cents, total_cents, status, order_date, address)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`
	_, err = tx.Exec(ctx, q,
		o.OrderNumber,
		o.PaymentID,
		o.GatewayOrderID,
		o.Invoice,
		o.CustomerName,
		o.UserID,
		o.Email,
		o.Currency,
		toCents(o.Discount),
		toCents(o.TotalPrice),
		string(o.Status),
		o.OrderDate,
		o.Address,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrOrderExists
		}
		return err
	}

	for i, line := range o.Lines {
		if _, err := tx.Exec(ctx, `
INSERT INTO order_lines (order_number, product_ref, quantity, position)
VALUES ($1, $2, $3, $4)
`, o.OrderNumber, line.ProductRef, line.Quantity, i); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	const q = `
SELECT order_number, payment_id, gateway_order_id, invoice, customer_name, user_id, email, currency, discount_cents, total_cents, status, order_date, address
FROM orders
WHERE order_number = $1
`
	o, err := r.scanOrder(r.pool.QueryRow(ctx, q, orderNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	lines, err := r.fetchLines(ctx, o.OrderNumber)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return o, nil
}

func (r *postgresRepo) List(ctx context.Context, limit, offset int) ([]domain.Order, error) {
	const q = `
SELECT order_number, payment_id, gateway_order_id, invoice, customer_name, user_id, email, currency, discount_cents, total_cents, status, order_date, address
FROM orders
ORDER BY order_date DESC
LIMIT $1 OFFSET $2
`
	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		lines, err := r.fetchLines(ctx, orders[i].OrderNumber)
		if err != nil {
			return nil, err
		}
		orders[i].Lines = lines
	}
	return orders, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, orderNumber string, status domain.OrderStatus) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE orders
SET status = $1
WHERE order_number = $2
`, string(status), orderNumber)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var discountCents, totalCents int64
	var status string
	if err := row.Scan(
		&o.OrderNumber,
		&o.PaymentID,
		&o.GatewayOrderID,
		&o.Invoice,
		&o.CustomerName,
		&o.UserID,
		&o.Email,
		&o.Currency,
		&discountCents,
		&totalCents,
		&status,
		&o.OrderDate,
		&o.Address,
	); err != nil {
		return nil, err
	}
	o.Discount = fromCents(discountCents)
	o.TotalPrice = fromCents(totalCents)
	o.Status = domain.OrderStatus(status)
	return &o, nil
}

func (r *postgresRepo) fetchLines(ctx context.Context, orderNumber string) ([]domain.OrderLine, error) {
	rows, err := r.pool.Query(ctx, `
SELECT product_ref, quantity
FROM order_lines
WHERE order_number = $1
ORDER BY position ASC
`, orderNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ProductRef, &line.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// Amounts are stored as integer minor units; the document exposes major
// units, so conversion happens at the repository boundary.
func toCents(major float64) int64 {
	return decimal.NewFromFloat(major).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func fromCents(cents int64) float64 {
	f, _ := decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).Float64()
	return f
}
