package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CesarAugustusGroB/PriceApp/internal/apperrors"
	"github.com/CesarAugustusGroB/PriceApp/internal/core/domain"
	portsrepo "github.com/CesarAugustusGroB/PriceApp/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

type PgxPriceRepository struct {
	pool *pgxpool.Pool
}

// NewPgxPriceRepository creates a new repository for price data.
func NewPgxPriceRepository(pool *pgxpool.Pool) portsrepo.PriceRepositoryFacade {
	return &PgxPriceRepository{pool: pool}
}

// FindApplicablePrices retrieves every price whose validity window contains
// the given instant for the product/brand pair, ordered by priority DESC.
func (r *PgxPriceRepository) FindApplicablePrices(ctx context.Context, productID, brandID int, at time.Time) ([]domain.Price, error) {
	query := `
		SELECT price_id, brand_id, start_date, end_date, price_list, product_id, priority, price, currency
		FROM prices
		WHERE product_id = $1
		  AND brand_id = $2
		  AND $3 BETWEEN start_date AND end_date
		ORDER BY priority DESC;
	`
	rows, err := r.pool.Query(ctx, query, productID, brandID, at)
	if err != nil {
		return nil, fmt.Errorf("failed to query applicable prices: %w", err)
	}
	defer rows.Close()

	prices, err := pgx.CollectRows(rows, scanPrice)
	if err != nil {
		return nil, fmt.Errorf("failed to scan applicable prices: %w", err)
	}
	return prices, nil
}

// FindByProductBrandStartDate retrieves the price matching the admission
// uniqueness key exactly.
func (r *PgxPriceRepository) FindByProductBrandStartDate(ctx context.Context, productID, brandID int, startDate time.Time) (*domain.Price, error) {
	query := `
		SELECT price_id, brand_id, start_date, end_date, price_list, product_id, priority, price, currency
		FROM prices
		WHERE product_id = $1 AND brand_id = $2 AND start_date = $3;
	`
	row := r.pool.QueryRow(ctx, query, productID, brandID, startDate)
	price, err := scanPriceRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find price by product/brand/start date: %w", err)
	}
	return &price, nil
}

// SavePrice inserts a new price row and returns it with the generated ID.
// The unique index on (product_id, brand_id, start_date) turns a concurrent
// duplicate insert into ErrDuplicate.
func (r *PgxPriceRepository) SavePrice(ctx context.Context, price domain.Price) (*domain.Price, error) {
	query := `
		INSERT INTO prices (brand_id, start_date, end_date, price_list, product_id, priority, price, currency)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING price_id;
	`
	err := r.pool.QueryRow(ctx, query,
		price.BrandID,
		price.StartDate,
		price.EndDate,
		price.PriceList,
		price.ProductID,
		price.Priority,
		price.Price,
		price.Currency,
	).Scan(&price.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, apperrors.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to save price: %w", err)
	}
	return &price, nil
}

// DeletePrice removes the price with the given ID, reporting ErrNotFound when
// no row was deleted.
func (r *PgxPriceRepository) DeletePrice(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM prices WHERE price_id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete price %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanPrice(row pgx.CollectableRow) (domain.Price, error) {
	return scanPriceRow(row)
}

func scanPriceRow(row pgx.Row) (domain.Price, error) {
	var price domain.Price
	err := row.Scan(
		&price.ID,
		&price.BrandID,
		&price.StartDate,
		&price.EndDate,
		&price.PriceList,
		&price.ProductID,
		&price.Priority,
		&price.Price,
		&price.Currency,
	)
	return price, err
}
