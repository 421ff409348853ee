package itemrequest

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, r *ItemRequest) error
	GetByID(ctx context.Context, id int64) (*ItemRequest, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]*ItemRequest, error)
	ListExcludingRequester(ctx context.Context, requesterID int64, limit, offset int) ([]*ItemRequest, error)

	// ItemsForRequests returns the items referencing each of the given requests, keyed by request id.
	ItemsForRequests(ctx context.Context, requestIDs []int64) (map[int64][]ItemReply, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
	psql squirrel.StatementBuilderType
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{
		pool: pool,
		psql: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var requestColumns = []string{"id", "description", "requester_id", "created"}

func (r *pgxRepository) Create(ctx context.Context, ir *ItemRequest) error {
	query, args, err := r.psql.Insert("public.requests").
		Columns("description", "requester_id", "created").
		Values(ir.Description, ir.RequesterID, ir.Created).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create request query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&ir.ID); err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*ItemRequest, error) {
	query, args, err := r.psql.Select(requestColumns...).
		From("public.requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get request query failed: %w", err)
	}

	var ir ItemRequest
	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&ir.ID, &ir.Description, &ir.RequesterID, &ir.Created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound.Withf("item request with id %d not found", id)
		}
		return nil, fmt.Errorf("get request failed: %w", err)
	}
	return &ir, nil
}

func (r *pgxRepository) ListByRequester(ctx context.Context, requesterID int64) ([]*ItemRequest, error) {
	query := r.psql.Select(requestColumns...).
		From("public.requests").
		Where(squirrel.Eq{"requester_id": requesterID}).
		OrderBy("created DESC", "id DESC")

	return r.list(ctx, query)
}

func (r *pgxRepository) ListExcludingRequester(ctx context.Context, requesterID int64, limit, offset int) ([]*ItemRequest, error) {
	query := r.psql.Select(requestColumns...).
		From("public.requests").
		Where(squirrel.NotEq{"requester_id": requesterID}).
		OrderBy("created DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	return r.list(ctx, query)
}

func (r *pgxRepository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]*ItemRequest, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list requests query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests failed: %w", err)
	}
	defer rows.Close()

	var out []*ItemRequest
	for rows.Next() {
		var ir ItemRequest
		if err := rows.Scan(&ir.ID, &ir.Description, &ir.RequesterID, &ir.Created); err != nil {
			return nil, fmt.Errorf("scan request failed: %w", err)
		}
		out = append(out, &ir)
	}
	return out, rows.Err()
}

func (r *pgxRepository) ItemsForRequests(ctx context.Context, requestIDs []int64) (map[int64][]ItemReply, error) {
	out := make(map[int64][]ItemReply, len(requestIDs))
	if len(requestIDs) == 0 {
		return out, nil
	}

	query, args, err := r.psql.Select("id", "name", "description", "is_available", "request_id", "owner_id").
		From("public.items").
		Where(squirrel.Eq{"request_id": requestIDs}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build request items query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list request items failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it ItemReply
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.RequestID, &it.OwnerID); err != nil {
			return nil, fmt.Errorf("scan request item failed: %w", err)
		}
		out[it.RequestID] = append(out[it.RequestID], it)
	}
	return out, rows.Err()
}
