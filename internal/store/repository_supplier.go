package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/fornecedor-api/internal/logger"
	"github.com/MKhiriev/fornecedor-api/models"
)

// supplierRepository is the SQL implementation of [SupplierRepository]
// over the "fornecedores" table.
type supplierRepository struct {
	*DB
	logger *logger.Logger
}

// NewSupplierRepository constructs a [SupplierRepository] backed by db.
func NewSupplierRepository(db *DB, logger *logger.Logger) SupplierRepository {
	logger.Debug().Msg("creating supplier repository")
	return &supplierRepository{
		DB:     db,
		logger: logger,
	}
}

// GetAll returns every supplier ordered by name. An empty table yields an
// empty, non-nil slice.
func (r *supplierRepository) GetAll(ctx context.Context) ([]models.Supplier, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectAllSuppliersQuery(r.builder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*supplierRepository.GetAll").Msg("failed to execute query for getting suppliers")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	suppliers := make([]models.Supplier, 0)
	for rows.Next() {
		var s models.Supplier
		if err = rows.Scan(&s.ID, &s.Name, &s.Document, &s.Active); err != nil {
			log.Err(err).Str("func", "*supplierRepository.GetAll").Msg("failed to scan supplier row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		suppliers = append(suppliers, s)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*supplierRepository.GetAll").Msg("error iterating supplier rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return suppliers, nil
}

// GetByID returns the supplier with the given id or [ErrSupplierNotFound].
func (r *supplierRepository) GetByID(ctx context.Context, id string) (models.Supplier, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectSupplierByIDQuery(r.builder, id)
	if err != nil {
		return models.Supplier{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var s models.Supplier
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.Name, &s.Document, &s.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Supplier{}, ErrSupplierNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*supplierRepository.GetByID").Str("id", id).Msg("failed to scan supplier")
		return models.Supplier{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return s, nil
}

// Create inserts supplier and returns the commit count.
func (r *supplierRepository) Create(ctx context.Context, supplier models.Supplier) (int64, error) {
	query, args, err := buildInsertSupplierQuery(r.builder, supplier)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.exec(ctx, "*supplierRepository.Create", supplier.ID, query, args)
}

// Update replaces every column of the row identified by supplier.ID and
// returns the commit count.
func (r *supplierRepository) Update(ctx context.Context, supplier models.Supplier) (int64, error) {
	query, args, err := buildUpdateSupplierQuery(r.builder, supplier)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.exec(ctx, "*supplierRepository.Update", supplier.ID, query, args)
}

// Delete removes the row with the given id and returns the commit count.
func (r *supplierRepository) Delete(ctx context.Context, id string) (int64, error) {
	query, args, err := buildDeleteSupplierQuery(r.builder, id)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.exec(ctx, "*supplierRepository.Delete", id, query, args)
}

func (r *supplierRepository) exec(ctx context.Context, funcName, id, query string, args []any) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Str("id", id).
			Stringer("classification", r.errorClassificator.Classify(err)).
			Msg("error executing statement")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", funcName).Str("id", id).Msg("error reading rows affected")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}
