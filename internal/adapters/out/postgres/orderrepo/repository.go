package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/core/ports"
	"swiftdrop/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Postgres error code for unique constraint violations.
const pqUniqueViolation = "23505"

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
// A tracking number collision surfaces as ports.ErrTrackingNumberTaken so the
// caller can regenerate and retry.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isTrackingNumberViolation(err) {
			return fmt.Errorf("%w: %s", ports.ErrTrackingNumberTaken, dto.TrackingNumber)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateIfStatus saves an existing order, conditioned on its stored status
// still being the one the caller read. The WHERE clause makes the transition
// atomic at the database: of N concurrent writers keyed on the same expected
// status, exactly one affects a row.
func (r *GormOrderRepository) UpdateIfStatus(
	ctx context.Context, aggregate *order.Order, expected order.Status,
) error {
	if err := errors.Join(aggregate.Validate(), expected.Validate()); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expected)).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		// Zero rows means either the order vanished or its status moved on.
		// Distinguish the two so callers can report not-found vs conflict.
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&OrderDTO{}).
			Where("id = ?", dto.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewStateConflictErrorWithCause(
			"order status",
			fmt.Errorf("order %s is no longer %s", aggregate.ID(), expected),
		)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTrackingNumber retrieves an order by its customer-facing tracking number.
func (r *GormOrderRepository) GetByTrackingNumber(
	ctx context.Context, trackingNumber kernel.TrackingNumber,
) (*order.Order, error) {
	if err := trackingNumber.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).First(&dto, "tracking_number = ?", trackingNumber.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tracking number", trackingNumber.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPending retrieves all orders open for claiming, oldest first.
func (r *GormOrderRepository) GetAllPending(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "status = ?", int(order.Pending)).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllPendingOlderThan retrieves pending orders created at or before the cutoff.
func (r *GormOrderRepository) GetAllPendingOlderThan(
	ctx context.Context, cutoff time.Time,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "status = ? AND created_at <= ?", int(order.Pending), cutoff).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	aggregates := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		aggregates = append(aggregates, aggregate)
	}

	return aggregates, nil
}

// isTrackingNumberViolation recognizes a unique violation on the tracking
// number index from either Postgres driver: pgx (what the GORM driver speaks)
// or lib/pq (what database/sql tooling around the app uses).
func isTrackingNumberViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pqUniqueViolation && pgErr.ConstraintName == "idx_orders_tracking_number"
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation && pqErr.Constraint == "idx_orders_tracking_number"
	}

	return false
}
