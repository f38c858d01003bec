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

// PostgresFinanceRepository implements FinanceRepository using PostgreSQL
type PostgresFinanceRepository struct {
	db *sqlx.DB
}

// NewPostgresFinanceRepository creates a new PostgresFinanceRepository
func NewPostgresFinanceRepository(db *sqlx.DB) *PostgresFinanceRepository {
	return &PostgresFinanceRepository{db: db}
}

// postgresFinance represents a financing decision in the database
type postgresFinance struct {
	OrderID      string    `db:"order_id"`
	CustomerName string    `db:"customer_name"`
	Status       string    `db:"status"`
	DecidedBy    *string   `db:"decided_by"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Save inserts a new financing decision
func (r *PostgresFinanceRepository) Save(ctx context.Context, decision *domain.FinanceDecision) error {
	query := `
		INSERT INTO finance_decisions (
			order_id, customer_name, status, decided_by, created_at, updated_at
		) VALUES (
			:order_id, :customer_name, :status, :decided_by, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, r.toPostgres(decision))
	if err != nil {
		return domain.Transient(errors.Wrap(err, "failed to insert financing decision"))
	}
	return nil
}

// Update stores the resolved decision
func (r *PostgresFinanceRepository) Update(ctx context.Context, decision *domain.FinanceDecision) error {
	query := `
		UPDATE finance_decisions
		SET status = :status, decided_by = :decided_by, updated_at = :updated_at
		WHERE order_id = :order_id`

	res, err := r.db.NamedExecContext(ctx, query, r.toPostgres(decision))
	if err != nil {
		return domain.Transient(errors.Wrap(err, "failed to update financing decision"))
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return domain.ErrFinanceNotFound
	}
	return nil
}

// FindByOrderID finds the financing decision for an order; returns nil, nil
// when absent
func (r *PostgresFinanceRepository) FindByOrderID(ctx context.Context, orderID models.ID) (*domain.FinanceDecision, error) {
	query := `
		SELECT order_id, customer_name, status, decided_by, created_at, updated_at
		FROM finance_decisions
		WHERE order_id = $1`

	var pgFinance postgresFinance
	err := r.db.GetContext(ctx, &pgFinance, query, orderID.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, domain.Transient(errors.Wrap(err, "failed to find financing decision"))
	}
	return r.toDomain(&pgFinance), nil
}

func (r *PostgresFinanceRepository) toPostgres(decision *domain.FinanceDecision) *postgresFinance {
	var decidedBy *string
	if decision.DecidedBy != "" {
		s := decision.DecidedBy
		decidedBy = &s
	}
	return &postgresFinance{
		OrderID:      decision.OrderID.String(),
		CustomerName: decision.CustomerName,
		Status:       string(decision.Status),
		DecidedBy:    decidedBy,
		CreatedAt:    decision.Timestamps.CreatedAt,
		UpdatedAt:    decision.Timestamps.UpdatedAt,
	}
}

func (r *PostgresFinanceRepository) toDomain(pg *postgresFinance) *domain.FinanceDecision {
	decidedBy := ""
	if pg.DecidedBy != nil {
		decidedBy = *pg.DecidedBy
	}
	return &domain.FinanceDecision{
		OrderID:      models.ID(pg.OrderID),
		CustomerName: pg.CustomerName,
		Status:       domain.FinanceStatus(pg.Status),
		DecidedBy:    decidedBy,
		Timestamps: models.Timestamps{
			CreatedAt: pg.CreatedAt,
			UpdatedAt: pg.UpdatedAt,
		},
	}
}
