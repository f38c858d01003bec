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

// PostgresSagaStateRepository implements SagaStateRepository using PostgreSQL
type PostgresSagaStateRepository struct {
	db *sqlx.DB
}

// NewPostgresSagaStateRepository creates a new PostgresSagaStateRepository
func NewPostgresSagaStateRepository(db *sqlx.DB) *PostgresSagaStateRepository {
	return &PostgresSagaStateRepository{db: db}
}

type postgresSagaState struct {
	OrderID   string     `db:"order_id"`
	Stage     string     `db:"stage"`
	Waiting   string     `db:"waiting"`
	Deadline  *time.Time `db:"deadline"`
	UpdatedAt time.Time  `db:"updated_at"`
}

// Save upserts the checkpoint, one row per order
func (r *PostgresSagaStateRepository) Save(ctx context.Context, state *domain.SagaState) error {
	query := `
		INSERT INTO saga_states (order_id, stage, waiting, deadline, updated_at)
		VALUES (:order_id, :stage, :waiting, :deadline, :updated_at)
		ON CONFLICT (order_id) DO UPDATE
		SET stage = EXCLUDED.stage, waiting = EXCLUDED.waiting,
			deadline = EXCLUDED.deadline, updated_at = EXCLUDED.updated_at`

	_, err := r.db.NamedExecContext(ctx, query, &postgresSagaState{
		OrderID:   state.OrderID.String(),
		Stage:     string(state.Stage),
		Waiting:   string(state.Waiting),
		Deadline:  state.Deadline,
		UpdatedAt: state.UpdatedAt,
	})
	if err != nil {
		return domain.Transient(errors.Wrap(err, "failed to save saga state"))
	}
	return nil
}

// FindByOrderID finds the checkpoint for an order; returns nil, nil when absent
func (r *PostgresSagaStateRepository) FindByOrderID(ctx context.Context, orderID models.ID) (*domain.SagaState, error) {
	query := `
		SELECT order_id, stage, waiting, deadline, updated_at
		FROM saga_states
		WHERE order_id = $1`

	var pg postgresSagaState
	err := r.db.GetContext(ctx, &pg, query, orderID.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, domain.Transient(errors.Wrap(err, "failed to find saga state"))
	}
	return pg.toDomain(), nil
}

// FindUnfinished returns every checkpoint whose stage is not final, oldest
// first, for resumption after a restart
func (r *PostgresSagaStateRepository) FindUnfinished(ctx context.Context) ([]*domain.SagaState, error) {
	query := `
		SELECT order_id, stage, waiting, deadline, updated_at
		FROM saga_states
		WHERE stage NOT IN ($1, $2, $3)
		ORDER BY updated_at`

	var rows []postgresSagaState
	err := r.db.SelectContext(ctx, &rows, query,
		string(domain.StageCompleted), string(domain.StageCanceled), string(domain.StageStalled))
	if err != nil {
		return nil, domain.Transient(errors.Wrap(err, "failed to find unfinished saga states"))
	}

	states := make([]*domain.SagaState, 0, len(rows))
	for _, pg := range rows {
		states = append(states, pg.toDomain())
	}
	return states, nil
}

func (pg *postgresSagaState) toDomain() *domain.SagaState {
	return &domain.SagaState{
		OrderID:   models.ID(pg.OrderID),
		Stage:     domain.Stage(pg.Stage),
		Waiting:   domain.WaitKind(pg.Waiting),
		Deadline:  pg.Deadline,
		UpdatedAt: pg.UpdatedAt,
	}
}
