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

// PostgresOrderRepository implements OrderRepository using PostgreSQL
type PostgresOrderRepository struct {
	db *sqlx.DB
}

// NewPostgresOrderRepository creates a new PostgresOrderRepository
func NewPostgresOrderRepository(db *sqlx.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// postgresOrder represents an order in the database
type postgresOrder struct {
	ID               string     `db:"id"`
	CustomerName     string     `db:"customer_name"`
	Phone            string     `db:"phone"`
	Email            string     `db:"email"`
	Address          string     `db:"address"`
	ModelName        string     `db:"model_name"`
	VariantID        string     `db:"variant_id"`
	Variant          string     `db:"variant"`
	Colour           string     `db:"colour"`
	FuelType         string     `db:"fuel_type"`
	TransmissionType string     `db:"transmission_type"`
	Quantity         int        `db:"quantity"`
	TotalPrice       int64      `db:"total_price"`
	BookingAmount    int64      `db:"booking_amount"`
	Currency         string     `db:"currency"`
	PaymentMode      string     `db:"payment_mode"`
	Status           string     `db:"status"`
	BlockedStockID   *string    `db:"blocked_stock_id"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
	DeletedAt        *time.Time `db:"deleted_at"`
	Version          int        `db:"version"`
}

// Save inserts a new order
func (r *PostgresOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (
			id, customer_name, phone, email, address, model_name, variant_id,
			variant, colour, fuel_type, transmission_type, quantity,
			total_price, booking_amount, currency, payment_mode, status,
			blocked_stock_id, created_at, updated_at, version
		) VALUES (
			:id, :customer_name, :phone, :email, :address, :model_name, :variant_id,
			:variant, :colour, :fuel_type, :transmission_type, :quantity,
			:total_price, :booking_amount, :currency, :payment_mode, :status,
			:blocked_stock_id, :created_at, :updated_at, :version
		)`

	_, err := r.db.NamedExecContext(ctx, query, r.toPostgres(order))
	if err != nil {
		return domain.Transient(errors.Wrap(err, "failed to insert order"))
	}
	return nil
}

// Update updates an existing order with optimistic locking
func (r *PostgresOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	query := `
		UPDATE orders
		SET status = :status, blocked_stock_id = :blocked_stock_id,
			updated_at = :updated_at, version = :version
		WHERE id = :id AND version = :old_version`

	var blockedStockID *string
	if !order.BlockedStockID.IsEmpty() {
		s := order.BlockedStockID.String()
		blockedStockID = &s
	}

	res, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":               order.ID.String(),
		"status":           string(order.Status),
		"blocked_stock_id": blockedStockID,
		"updated_at":       order.Timestamps.UpdatedAt,
		"version":          order.Version.Value,
		"old_version":      order.Version.Value - 1, // Optimistic locking
	})
	if err != nil {
		return domain.Transient(errors.Wrap(err, "failed to update order"))
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return errors.Errorf("order %s was modified concurrently", order.ID)
	}
	return nil
}

// FindByID finds an order by ID; returns nil, nil when absent
func (r *PostgresOrderRepository) FindByID(ctx context.Context, id models.ID) (*domain.Order, error) {
	query := `
		SELECT id, customer_name, phone, email, address, model_name, variant_id,
			   variant, colour, fuel_type, transmission_type, quantity,
			   total_price, booking_amount, currency, payment_mode, status,
			   blocked_stock_id, created_at, updated_at, deleted_at, version
		FROM orders
		WHERE id = $1 AND deleted_at IS NULL`

	var pgOrder postgresOrder
	err := r.db.GetContext(ctx, &pgOrder, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // order not found
		}
		return nil, domain.Transient(errors.Wrap(err, "failed to find order"))
	}
	return r.toDomain(&pgOrder), nil
}

// FindPendingByVariant finds back-ordered orders waiting on a variant
func (r *PostgresOrderRepository) FindPendingByVariant(ctx context.Context, variantID models.ID) ([]*domain.Order, error) {
	query := `
		SELECT id, customer_name, phone, email, address, model_name, variant_id,
			   variant, colour, fuel_type, transmission_type, quantity,
			   total_price, booking_amount, currency, payment_mode, status,
			   blocked_stock_id, created_at, updated_at, deleted_at, version
		FROM orders
		WHERE variant_id = $1 AND status = $2 AND deleted_at IS NULL
		ORDER BY created_at`

	var pgOrders []postgresOrder
	err := r.db.SelectContext(ctx, &pgOrders, query, variantID.String(), string(domain.OrderStatusPending))
	if err != nil {
		return nil, domain.Transient(errors.Wrap(err, "failed to find pending orders"))
	}

	orders := make([]*domain.Order, len(pgOrders))
	for i := range pgOrders {
		orders[i] = r.toDomain(&pgOrders[i])
	}
	return orders, nil
}

func (r *PostgresOrderRepository) toPostgres(order *domain.Order) *postgresOrder {
	var blockedStockID *string
	if !order.BlockedStockID.IsEmpty() {
		s := order.BlockedStockID.String()
		blockedStockID = &s
	}
	return &postgresOrder{
		ID:               order.ID.String(),
		CustomerName:     order.CustomerName,
		Phone:            order.Phone,
		Email:            order.Email,
		Address:          order.Address,
		ModelName:        order.ModelName,
		VariantID:        order.VariantID.String(),
		Variant:          order.Variant,
		Colour:           order.Colour,
		FuelType:         order.FuelType,
		TransmissionType: order.TransmissionType,
		Quantity:         order.Quantity,
		TotalPrice:       order.TotalPrice.Amount,
		BookingAmount:    order.BookingAmount.Amount,
		Currency:         order.TotalPrice.Currency,
		PaymentMode:      order.PaymentMode,
		Status:           string(order.Status),
		BlockedStockID:   blockedStockID,
		CreatedAt:        order.Timestamps.CreatedAt,
		UpdatedAt:        order.Timestamps.UpdatedAt,
		DeletedAt:        order.Timestamps.DeletedAt,
		Version:          order.Version.Value,
	}
}

func (r *PostgresOrderRepository) toDomain(pg *postgresOrder) *domain.Order {
	var blockedStockID models.ID
	if pg.BlockedStockID != nil {
		blockedStockID = models.ID(*pg.BlockedStockID)
	}
	return &domain.Order{
		ID:               models.ID(pg.ID),
		CustomerName:     pg.CustomerName,
		Phone:            pg.Phone,
		Email:            pg.Email,
		Address:          pg.Address,
		ModelName:        pg.ModelName,
		VariantID:        models.ID(pg.VariantID),
		Variant:          pg.Variant,
		Colour:           pg.Colour,
		FuelType:         pg.FuelType,
		TransmissionType: pg.TransmissionType,
		Quantity:         pg.Quantity,
		TotalPrice:       models.NewMoney(pg.TotalPrice, pg.Currency),
		BookingAmount:    models.NewMoney(pg.BookingAmount, pg.Currency),
		PaymentMode:      pg.PaymentMode,
		Status:           domain.OrderStatus(pg.Status),
		BlockedStockID:   blockedStockID,
		Timestamps: models.Timestamps{
			CreatedAt: pg.CreatedAt,
			UpdatedAt: pg.UpdatedAt,
			DeletedAt: pg.DeletedAt,
		},
		Version: models.Version{Value: pg.Version},
	}
}
