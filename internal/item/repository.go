package item

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// statusApproved mirrors booking.StatusApproved; booking depends on item, not the reverse.
const statusApproved = "APPROVED"

type Repository interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id int64) (*Item, error)
	Update(ctx context.Context, it *Item) error
	Delete(ctx context.Context, id int64) error
	ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*Item, error)

	// Search matches text case-insensitively against name or description of available items.
	Search(ctx context.Context, text string, limit, offset int) ([]*Item, error)

	ApprovedBookings(ctx context.Context, itemIDs []int64) (map[int64][]BookingSlot, error)
	Comments(ctx context.Context, itemIDs []int64) (map[int64][]Comment, error)
	CreateComment(ctx context.Context, cm *Comment) error

	// HasFinishedBooking reports whether userID has any booking of itemID that ended before now.
	HasFinishedBooking(ctx context.Context, itemID, userID int64, now time.Time) (bool, error)
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

var itemColumns = []string{"id", "name", "description", "is_available", "owner_id", "request_id"}

func scanItem(row pgx.Row) (*Item, error) {
	var it Item
	if err := row.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID); err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *pgxRepository) Create(ctx context.Context, it *Item) error {
	query, args, err := r.psql.Insert("public.items").
		Columns("name", "description", "is_available", "owner_id", "request_id").
		Values(it.Name, it.Description, it.Available, it.OwnerID, it.RequestID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create item query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&it.ID); err != nil {
		return fmt.Errorf("create item failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Item, error) {
	query, args, err := r.psql.Select(itemColumns...).
		From("public.items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get item query failed: %w", err)
	}

	it, err := scanItem(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound.Withf("item with id %d not found", id)
		}
		return nil, fmt.Errorf("get item failed: %w", err)
	}
	return it, nil
}

func (r *pgxRepository) Update(ctx context.Context, it *Item) error {
	query, args, err := r.psql.Update("public.items").
		Set("name", it.Name).
		Set("description", it.Description).
		Set("is_available", it.Available).
		Where(squirrel.Eq{"id": it.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update item query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound.Withf("item with id %d not found", it.ID)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.psql.Delete("public.items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete item query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound.Withf("item with id %d not found", id)
	}
	return nil
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*Item, error) {
	query := r.psql.Select(itemColumns...).
		From("public.items").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	return r.list(ctx, query)
}

func (r *pgxRepository) Search(ctx context.Context, text string, limit, offset int) ([]*Item, error) {
	pattern := "%" + escapeLike(text) + "%"
	query := r.psql.Select(itemColumns...).
		From("public.items").
		Where(squirrel.Eq{"is_available": true}).
		Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
		}).
		OrderBy("id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	return r.list(ctx, query)
}

func (r *pgxRepository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]*Item, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list items query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items failed: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item failed: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *pgxRepository) ApprovedBookings(ctx context.Context, itemIDs []int64) (map[int64][]BookingSlot, error) {
	out := make(map[int64][]BookingSlot, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}

	query, args, err := r.psql.Select("id", "item_id", "booker_id", "start_date", "end_date").
		From("public.bookings").
		Where(squirrel.Eq{"item_id": itemIDs, "status": statusApproved}).
		OrderBy("start_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build item bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list item bookings failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			itemID int64
			b      BookingSlot
		)
		if err := rows.Scan(&b.ID, &itemID, &b.BookerID, &b.Start, &b.End); err != nil {
			return nil, fmt.Errorf("scan item booking failed: %w", err)
		}
		out[itemID] = append(out[itemID], b)
	}
	return out, rows.Err()
}

func (r *pgxRepository) Comments(ctx context.Context, itemIDs []int64) (map[int64][]Comment, error) {
	out := make(map[int64][]Comment, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}

	query, args, err := r.psql.Select("c.id", "c.text", "c.item_id", "c.author_id", "u.name", "c.creation_date").
		From("public.comments c").
		Join("public.users u ON c.author_id = u.id").
		Where(squirrel.Eq{"c.item_id": itemIDs}).
		OrderBy("c.creation_date DESC", "c.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build comments query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cm Comment
		if err := rows.Scan(&cm.ID, &cm.Text, &cm.ItemID, &cm.AuthorID, &cm.AuthorName, &cm.Created); err != nil {
			return nil, fmt.Errorf("scan comment failed: %w", err)
		}
		out[cm.ItemID] = append(out[cm.ItemID], cm)
	}
	return out, rows.Err()
}

func (r *pgxRepository) CreateComment(ctx context.Context, cm *Comment) error {
	query, args, err := r.psql.Insert("public.comments").
		Columns("text", "item_id", "author_id", "creation_date").
		Values(cm.Text, cm.ItemID, cm.AuthorID, cm.Created).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create comment query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&cm.ID); err != nil {
		return fmt.Errorf("create comment failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) HasFinishedBooking(ctx context.Context, itemID, userID int64, now time.Time) (bool, error) {
	sub, args, err := r.psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"item_id": itemID, "booker_id": userID}).
		Where(squirrel.Lt{"end_date": now}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build finished booking query failed: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check finished booking failed: %w", err)
	}
	return exists, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
