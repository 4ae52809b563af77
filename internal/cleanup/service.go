package cleanup

import (
	"context"
	"log"
	"time"
)

// Deleter is the slice of the object store this worker needs.
type Deleter interface {
	Delete(ctx context.Context, bucket, key string) error
}

type Service struct {
	repo  *Repository
	store Deleter
}

func NewService(repo *Repository, store Deleter) *Service {
	return &Service{repo: repo, store: store}
}

// ProcessOne claims ONE queued orphan and deletes it. A failed
// delete puts the entry back to PENDING and never blocks the worker.
func (s *Service) ProcessOne(ctx context.Context) error {
	id, bucket, key, err := s.repo.FetchPending(ctx)
	if err != nil || id == 0 {
		// empty queue is NOT an error
		return err
	}

	if err := s.store.Delete(ctx, bucket, key); err != nil {
		log.Printf("CLEANUP_FAILED id=%d bucket=%s key=%s err=%v", id, bucket, key, err)
		_ = s.repo.MarkFailed(ctx, id, err.Error())
		return nil
	}

	log.Printf("CLEANUP_DELETED id=%d bucket=%s key=%s", id, bucket, key)
	return s.repo.MarkDeleted(ctx, id)
}

// Run polls the queue until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	log.Println("orphan cleanup worker started")

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("orphan cleanup worker stopped")
			return
		case <-ticker.C:
			if err := s.ProcessOne(ctx); err != nil {
				log.Printf("CLEANUP_POLL_ERROR err=%v", err)
			}
		}
	}
}
