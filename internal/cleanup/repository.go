package cleanup

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is the orphan-upload queue: object keys a failed
// persist uploaded but never referenced from any row.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Enqueue(ctx context.Context, bucket, key string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO orphan_uploads (bucket, key, status)
		VALUES ($1, $2, 'PENDING')
	`, bucket, key)
	return err
}

// FetchPending claims ONE pending entry. id 0 means the queue is empty.
func (r *Repository) FetchPending(ctx context.Context) (int64, string, string, error) {
	var (
		id     int64
		bucket string
		key    string
	)

	err := r.db.QueryRow(ctx, `
		UPDATE orphan_uploads
		SET status = 'DELETING'
		WHERE id = (
			SELECT id
			FROM orphan_uploads
			WHERE status = 'PENDING'
			ORDER BY created_at ASC
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, bucket, key
	`).Scan(&id, &bucket, &key)

	if err == pgx.ErrNoRows {
		return 0, "", "", nil
	}
	if err != nil {
		return 0, "", "", err
	}
	return id, bucket, key, nil
}

func (r *Repository) MarkDeleted(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM orphan_uploads WHERE id = $1
	`, id)
	return err
}

func (r *Repository) MarkFailed(ctx context.Context, id int64, reason string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE orphan_uploads
		SET status = 'PENDING', last_error = $1
		WHERE id = $2
	`, reason, id)
	return err
}
