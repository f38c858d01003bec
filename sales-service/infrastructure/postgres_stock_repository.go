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

// PostgresStockRepository implements StockRepository using PostgreSQL
type PostgresStockRepository struct {
	db *sqlx.DB
}

// NewPostgresStockRepository creates a new PostgresStockRepository
func NewPostgresStockRepository(db *sqlx.DB) *PostgresStockRepository {
	return &PostgresStockRepository{db: db}
}

// postgresStock represents a stock row in the database
type postgresStock struct {
	ID               string     `db:"id"`
	VariantID        string     `db:"variant_id"`
	ModelName        string     `db:"model_name"`
	Colour           string     `db:"colour"`
	FuelType         string     `db:"fuel_type"`
	TransmissionType string     `db:"transmission_type"`
	Quantity         int        `db:"quantity"`
	Status           string     `db:"status"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
	DeletedAt        *time.Time `db:"deleted_at"`
}

// Save upserts a stock row, accumulating quantity on conflict so replenishment
// events can reuse it
func (r *PostgresStockRepository) Save(ctx context.Context, stock *domain.Stock) error {
	query := `
		INSERT INTO stock (
			id, variant_id, model_name, colour, fuel_type, transmission_type,
			quantity, status, created_at, updated_at
		) VALUES (
			:id, :variant_id, :model_name, :colour, :fuel_type, :transmission_type,
			:quantity, :status, :created_at, :updated_at
		)
		ON CONFLICT (id) DO UPDATE
		SET quantity = stock.quantity + EXCLUDED.quantity,
			status = :status, updated_at = :updated_at`

	_, err := r.db.NamedExecContext(ctx, query, r.toPostgres(stock))
	if err != nil {
		return domain.Transient(errors.Wrap(err, "failed to save stock"))
	}
	return nil
}

// FindByID finds a stock row by ID; returns nil, nil when absent
func (r *PostgresStockRepository) FindByID(ctx context.Context, id models.ID) (*domain.Stock, error) {
	query := `
		SELECT id, variant_id, model_name, colour, fuel_type, transmission_type,
			   quantity, status, created_at, updated_at, deleted_at
		FROM stock
		WHERE id = $1 AND deleted_at IS NULL`

	var pgStock postgresStock
	err := r.db.GetContext(ctx, &pgStock, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, domain.Transient(errors.Wrap(err, "failed to find stock"))
	}
	return r.toDomain(&pgStock), nil
}

// ReserveMatching decrements a matching available row in a single conditional
// UPDATE. The quantity guard in the WHERE clause makes the check-then-decrement
// atomic, so two concurrent orders cannot drain the same vehicles.
func (r *PostgresStockRepository) ReserveMatching(ctx context.Context, sel domain.StockSelection) (*domain.Stock, error) {
	query := `
		UPDATE stock
		SET quantity = quantity - $1,
			status = CASE WHEN quantity - $1 = 0 THEN $2 ELSE status END,
			updated_at = NOW()
		WHERE id = (
			SELECT id FROM stock
			WHERE variant_id = $3 AND colour = $4 AND fuel_type = $5
			  AND transmission_type = $6 AND status = $7
			  AND quantity >= $1 AND deleted_at IS NULL
			ORDER BY created_at
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, variant_id, model_name, colour, fuel_type, transmission_type,
				  quantity, status, created_at, updated_at, deleted_at`

	var pgStock postgresStock
	err := r.db.GetContext(ctx, &pgStock, query,
		sel.Quantity,
		string(domain.StockStatusDepleted),
		sel.VariantID.String(),
		sel.Colour,
		sel.FuelType,
		sel.TransmissionType,
		string(domain.StockStatusAvailable),
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrStockNotFound
		}
		return nil, domain.Transient(errors.Wrap(err, "failed to reserve stock"))
	}
	return r.toDomain(&pgStock), nil
}

// ReleaseQuantity restores quantity to a stock row after a cancellation
func (r *PostgresStockRepository) ReleaseQuantity(ctx context.Context, stockID models.ID, quantity int) error {
	query := `
		UPDATE stock
		SET quantity = quantity + $1, status = $2, updated_at = NOW()
		WHERE id = $3 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, quantity, string(domain.StockStatusAvailable), stockID.String())
	if err != nil {
		return domain.Transient(errors.Wrap(err, "failed to release stock"))
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return domain.ErrStockNotFound
	}
	return nil
}

func (r *PostgresStockRepository) toPostgres(stock *domain.Stock) *postgresStock {
	return &postgresStock{
		ID:               stock.ID.String(),
		VariantID:        stock.VariantID.String(),
		ModelName:        stock.ModelName,
		Colour:           stock.Colour,
		FuelType:         stock.FuelType,
		TransmissionType: stock.TransmissionType,
		Quantity:         stock.Quantity,
		Status:           string(stock.Status),
		CreatedAt:        stock.Timestamps.CreatedAt,
		UpdatedAt:        stock.Timestamps.UpdatedAt,
		DeletedAt:        stock.Timestamps.DeletedAt,
	}
}

func (r *PostgresStockRepository) toDomain(pg *postgresStock) *domain.Stock {
	return &domain.Stock{
		ID:               models.ID(pg.ID),
		VariantID:        models.ID(pg.VariantID),
		ModelName:        pg.ModelName,
		Colour:           pg.Colour,
		FuelType:         pg.FuelType,
		TransmissionType: pg.TransmissionType,
		Quantity:         pg.Quantity,
		Status:           domain.StockStatus(pg.Status),
		Timestamps: models.Timestamps{
			CreatedAt: pg.CreatedAt,
			UpdatedAt: pg.UpdatedAt,
			DeletedAt: pg.DeletedAt,
		},
	}
}
