package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/greenlake/portal/internal/domain/errors"
	"github.com/greenlake/portal/internal/domain/model"
	"github.com/greenlake/portal/internal/domain/repository"
)

// dbPool is the subset of pgxpool.Pool the storage uses; tests substitute a
// pgxmock pool.
type dbPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   dbPool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

type suborderRepository struct {
	storage *Storage
}

type propertyRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Suborders() repository.SuborderRepository {
	return &suborderRepository{storage: s}
}

func (s *Storage) Properties() repository.PropertyRepository {
	return &propertyRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            linear_id TEXT UNIQUE,
            property_code TEXT NOT NULL,
            utilities TEXT NOT NULL,
            reason TEXT NOT NULL,
            requested_for DATE,
            special_instructions TEXT,
            status TEXT NOT NULL DEFAULT 'TODO',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            completed_on TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS suborders (
            linear_id TEXT PRIMARY KEY,
            order_linear_id TEXT NOT NULL,
            utilities TEXT NOT NULL,
            provider TEXT NOT NULL,
            scheduled_for DATE,
            status TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS properties (
            code TEXT PRIMARY KEY,
            street TEXT NOT NULL,
            city TEXT NOT NULL DEFAULT '',
            state TEXT NOT NULL DEFAULT '',
            zip TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS order_id_seq (
            day TEXT PRIMARY KEY,
            seq INTEGER NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_suborders_order ON suborders(order_linear_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created ON orders(created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, linear_id, property_code, utilities, reason, requested_for, special_instructions, status, created_at, completed_on`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	var utilities string
	err := row.Scan(&o.ID, &o.LinearID, &o.PropertyCode, &utilities, &o.Reason,
		&o.RequestedFor, &o.SpecialInstructions, &o.Status, &o.CreatedAt, &o.CompletedOn)
	if err != nil {
		return nil, err
	}
	o.Utilities = model.ParseUtilitiesList(utilities)
	return &o, nil
}

func (r *orderRepository) NextID(ctx context.Context, day time.Time) (string, error) {
	// Single-statement allocation against a per-day counter row. Concurrent
	// callers get distinct sequence numbers; the row update is atomic.
	const query = `INSERT INTO order_id_seq (day, seq) VALUES ($1, 1)
                   ON CONFLICT (day) DO UPDATE SET seq = order_id_seq.seq + 1
                   RETURNING seq`
	prefix := day.Format("20060102")
	var seq int
	if err := r.storage.pool.QueryRow(ctx, query, prefix).Scan(&seq); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%03d", prefix, seq), nil
}

func (r *orderRepository) Insert(ctx context.Context, order *model.Order) error {
	const query = `INSERT INTO orders (` + orderColumns + `)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.storage.pool.Exec(ctx, query,
		order.ID, order.LinearID, order.PropertyCode, model.FormatUtilities(order.Utilities),
		string(order.Reason), order.RequestedFor, order.SpecialInstructions,
		string(order.Status), order.CreatedAt, order.CompletedOn)
	return err
}

func (r *orderRepository) Get(ctx context.Context, id string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	return r.queryOrders(ctx, query)
}

func (r *orderRepository) ListMirrored(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE linear_id IS NOT NULL ORDER BY created_at DESC`
	return r.queryOrders(ctx, query)
}

func (r *orderRepository) queryOrders(ctx context.Context, query string) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdateFields(ctx context.Context, order *model.Order) error {
	const query = `UPDATE orders
                   SET property_code=$1, utilities=$2, reason=$3, requested_for=$4, special_instructions=$5
                   WHERE id=$6`
	tag, err := r.storage.pool.Exec(ctx, query,
		order.PropertyCode, model.FormatUtilities(order.Utilities), string(order.Reason),
		order.RequestedFor, order.SpecialInstructions, order.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	const query = `UPDATE orders SET status=$1 WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, string(status), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- SuborderRepository implementation ---

const suborderColumns = `linear_id, order_linear_id, utilities, provider, scheduled_for, status`

func scanSuborder(row pgx.Row) (*model.Suborder, error) {
	var sub model.Suborder
	var utilities string
	err := row.Scan(&sub.LinearID, &sub.OrderLinearID, &utilities, &sub.Provider, &sub.ScheduledFor, &sub.Status)
	if err != nil {
		return nil, err
	}
	sub.Utilities = model.ParseUtilitiesList(utilities)
	return &sub, nil
}

func (r *suborderRepository) Insert(ctx context.Context, suborder *model.Suborder) error {
	const query = `INSERT INTO suborders (` + suborderColumns + `)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   ON CONFLICT (linear_id) DO NOTHING`
	_, err := r.storage.pool.Exec(ctx, query,
		suborder.LinearID, suborder.OrderLinearID, model.FormatUtilities(suborder.Utilities),
		suborder.Provider, suborder.ScheduledFor, string(suborder.Status))
	return err
}

func (r *suborderRepository) Upsert(ctx context.Context, suborder *model.Suborder) error {
	const query = `INSERT INTO suborders (` + suborderColumns + `)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   ON CONFLICT (linear_id) DO UPDATE SET
                       order_linear_id = EXCLUDED.order_linear_id,
                       utilities = EXCLUDED.utilities,
                       provider = EXCLUDED.provider,
                       scheduled_for = EXCLUDED.scheduled_for,
                       status = EXCLUDED.status`
	_, err := r.storage.pool.Exec(ctx, query,
		suborder.LinearID, suborder.OrderLinearID, model.FormatUtilities(suborder.Utilities),
		suborder.Provider, suborder.ScheduledFor, string(suborder.Status))
	return err
}

func (r *suborderRepository) Get(ctx context.Context, linearID string) (*model.Suborder, error) {
	const query = `SELECT ` + suborderColumns + ` FROM suborders WHERE linear_id=$1`
	sub, err := scanSuborder(r.storage.pool.QueryRow(ctx, query, linearID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return sub, nil
}

func (r *suborderRepository) ListByOrder(ctx context.Context, orderLinearID string) ([]model.Suborder, error) {
	const query = `SELECT ` + suborderColumns + ` FROM suborders WHERE order_linear_id=$1 ORDER BY linear_id`
	rows, err := r.storage.pool.Query(ctx, query, orderLinearID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Suborder
	for rows.Next() {
		sub, err := scanSuborder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *suborderRepository) Delete(ctx context.Context, linearID string) error {
	// Deleting a missing row is a success no-op: deliveries may repeat.
	const query = `DELETE FROM suborders WHERE linear_id=$1`
	_, err := r.storage.pool.Exec(ctx, query, linearID)
	return err
}

// --- PropertyRepository implementation ---

func (r *propertyRepository) GetByCode(ctx context.Context, code string) (*model.Property, error) {
	const query = `SELECT code, street, city, state, zip FROM properties WHERE code=$1`
	var p model.Property
	err := r.storage.pool.QueryRow(ctx, query, code).Scan(&p.Code, &p.Street, &p.City, &p.State, &p.Zip)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
