package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sanjeetk-dev/videograb-server/internal/domain/model"
	"github.com/sanjeetk-dev/videograb-server/internal/domain/repository"
	"github.com/sanjeetk-dev/videograb-server/internal/infrastructure/metrics"
)

// DBTX is an interface that abstracts pgxpool.Pool and pgx.Tx for testability.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// MediaRepository implements repository.MediaRepository using PostgreSQL.
type MediaRepository struct {
	db DBTX
}

// NewMediaRepository creates a new MediaRepository instance.
func NewMediaRepository(db DBTX) *MediaRepository {
	return &MediaRepository{db: db}
}

// Create persists a new media record.
func (r *MediaRepository) Create(ctx context.Context, record *model.MediaRecord) error {
	const query = `
		INSERT INTO media (id, file_id, title, thumbnail_url, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryInsert, metrics.TableMedia).Inc()

	_, err := r.db.Exec(ctx, query,
		record.ID,
		record.FileID,
		record.Title,
		nullString(record.ThumbnailURL),
		record.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicateMedia
		}
		return fmt.Errorf("failed to create media record: %w", err)
	}

	return nil
}

// GetByID retrieves a media record by its unique identifier.
func (r *MediaRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.MediaRecord, error) {
	const query = `
		SELECT id, file_id, title, thumbnail_url, created_at
		FROM media
		WHERE id = $1
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableMedia).Inc()

	record, err := scanMediaRecord(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrMediaNotFound
		}
		return nil, fmt.Errorf("failed to get media record by ID: %w", err)
	}

	return record, nil
}

// ListPage retrieves one page of records, newest first by creation time.
func (r *MediaRepository) ListPage(ctx context.Context, offset, limit int) ([]*model.MediaRecord, error) {
	const query = `
		SELECT id, file_id, title, thumbnail_url, created_at
		FROM media
		ORDER BY created_at DESC
		OFFSET $1
		LIMIT $2
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableMedia).Inc()

	rows, err := r.db.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query media page: %w", err)
	}
	defer rows.Close()

	var records []*model.MediaRecord
	for rows.Next() {
		record, err := scanMediaRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan media record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating media records: %w", err)
	}

	return records, nil
}

// Count returns the total number of records in the catalog.
func (r *MediaRepository) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM media`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableMedia).Inc()

	var total int64
	if err := r.db.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count media records: %w", err)
	}

	return total, nil
}

// scanMediaRecord scans a single row into a MediaRecord.
func scanMediaRecord(row pgx.Row) (*model.MediaRecord, error) {
	var (
		record       model.MediaRecord
		thumbnailURL *string
	)

	err := row.Scan(
		&record.ID,
		&record.FileID,
		&record.Title,
		&thumbnailURL,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if thumbnailURL != nil {
		record.ThumbnailURL = *thumbnailURL
	}

	return &record, nil
}

// nullString returns nil for empty strings, otherwise returns a pointer to the string.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Compile-time verification that MediaRepository implements repository.MediaRepository.
var _ repository.MediaRepository = (*MediaRepository)(nil)
