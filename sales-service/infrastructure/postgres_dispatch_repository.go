package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/motorline/sales-system/sales-service/domain"
	"github.com/motorline/sales-system/shared/models"
	"github.com/pkg/errors"
)

// PostgresDispatchRepository implements DispatchRepository using PostgreSQL
type PostgresDispatchRepository struct {
	db *sqlx.DB
}

// NewPostgresDispatchRepository creates a new PostgresDispatchRepository
func NewPostgresDispatchRepository(db *sqlx.DB) *PostgresDispatchRepository {
	return &PostgresDispatchRepository{db: db}
}

type postgresDispatch struct {
	OrderID      string    `db:"order_id"`
	Status       string    `db:"status"`
	DispatchedBy string    `db:"dispatched_by"`
	DispatchedAt time.Time `db:"dispatched_at"`
}

type postgresDelivery struct {
	OrderID     string    `db:"order_id"`
	Status      string    `db:"status"`
	Recipient   string    `db:"recipient"`
	DeliveredBy string    `db:"delivered_by"`
	DeliveredAt time.Time `db:"delivered_at"`
}

// SaveDispatch inserts the dispatch record for an order
func (r *PostgresDispatchRepository) SaveDispatch(ctx context.Context, record *domain.DispatchRecord) error {
	query := `
		INSERT INTO dispatches (order_id, status, dispatched_by, dispatched_at)
		VALUES (:order_id, :status, :dispatched_by, :dispatched_at)
		ON CONFLICT (order_id) DO UPDATE
		SET status = EXCLUDED.status, dispatched_at = EXCLUDED.dispatched_at`

	_, err := r.db.NamedExecContext(ctx, query, &postgresDispatch{
		OrderID:      record.OrderID.String(),
		Status:       string(record.Status),
		DispatchedBy: record.DispatchedBy,
		DispatchedAt: record.DispatchedAt,
	})
	if err != nil {
		return domain.Transient(errors.Wrap(err, "failed to save dispatch record"))
	}
	return nil
}

// FindDispatchByOrderID finds the dispatch record for an order; returns
// nil, nil when absent
func (r *PostgresDispatchRepository) FindDispatchByOrderID(ctx context.Context, orderID models.ID) (*domain.DispatchRecord, error) {
	query := `
		SELECT order_id, status, dispatched_by, dispatched_at
		FROM dispatches
		WHERE order_id = $1`

	var pg postgresDispatch
	err := r.db.GetContext(ctx, &pg, query, orderID.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, domain.Transient(errors.Wrap(err, "failed to find dispatch record"))
	}
	return &domain.DispatchRecord{
		OrderID:      models.ID(pg.OrderID),
		Status:       domain.DispatchStatus(pg.Status),
		DispatchedBy: pg.DispatchedBy,
		DispatchedAt: pg.DispatchedAt,
	}, nil
}

// SaveDelivery upserts the delivery record so a re-confirmation with the same
// recipient data leaves one row
func (r *PostgresDispatchRepository) SaveDelivery(ctx context.Context, record *domain.DeliveryRecord) error {
	query := `
		INSERT INTO deliveries (order_id, status, recipient, delivered_by, delivered_at)
		VALUES (:order_id, :status, :recipient, :delivered_by, :delivered_at)
		ON CONFLICT (order_id) DO UPDATE
		SET recipient = EXCLUDED.recipient, delivered_by = EXCLUDED.delivered_by`

	_, err := r.db.NamedExecContext(ctx, query, &postgresDelivery{
		OrderID:     record.OrderID.String(),
		Status:      string(record.Status),
		Recipient:   record.Recipient,
		DeliveredBy: record.DeliveredBy,
		DeliveredAt: record.DeliveredAt,
	})
	if err != nil {
		return domain.Transient(errors.Wrap(err, "failed to save delivery record"))
	}
	return nil
}

// FindDeliveryByOrderID finds the delivery record for an order; returns
// nil, nil when absent
func (r *PostgresDispatchRepository) FindDeliveryByOrderID(ctx context.Context, orderID models.ID) (*domain.DeliveryRecord, error) {
	query := `
		SELECT order_id, status, recipient, delivered_by, delivered_at
		FROM deliveries
		WHERE order_id = $1`

	var pg postgresDelivery
	err := r.db.GetContext(ctx, &pg, query, orderID.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, domain.Transient(errors.Wrap(err, "failed to find delivery record"))
	}
	return &domain.DeliveryRecord{
		OrderID:     models.ID(pg.OrderID),
		Status:      domain.DeliveryStatus(pg.Status),
		Recipient:   pg.Recipient,
		DeliveredBy: pg.DeliveredBy,
		DeliveredAt: pg.DeliveredAt,
	}, nil
}
