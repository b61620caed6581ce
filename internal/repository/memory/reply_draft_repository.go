package memory

import (
	"context"
	"time"

	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type ReplyDraftRepository struct {
	cache *cache.Cache
}

func NewReplyDraftRepository(defaultTTL time.Duration) contract.ReplyDraftRepository {
	// Expired drafts are purged every 10 minutes
	c := cache.New(defaultTTL, 10*time.Minute)
	return &ReplyDraftRepository{
		cache: c,
	}
}

func (r *ReplyDraftRepository) Save(ctx context.Context, draft *entity.ReplyDraft, ttl time.Duration) error {
	stored := *draft
	r.cache.Set(draft.Id.String(), &stored, ttl)
	return nil
}

func (r *ReplyDraftRepository) Get(ctx context.Context, id uuid.UUID) (*entity.ReplyDraft, error) {
	if x, found := r.cache.Get(id.String()); found {
		draft := *x.(*entity.ReplyDraft)
		return &draft, nil
	}
	return nil, nil
}

func (r *ReplyDraftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.cache.Delete(id.String())
	return nil
}
