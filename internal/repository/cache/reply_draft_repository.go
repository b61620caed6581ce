package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const draftKeyPrefix = "reply_draft:"

// ReplyDraftRepository keeps drafts in Redis so any instance can serve the
// choose call.
type ReplyDraftRepository struct {
	rdb *redis.Client
}

func NewReplyDraftRepository(rdb *redis.Client) contract.ReplyDraftRepository {
	return &ReplyDraftRepository{
		rdb: rdb,
	}
}

func draftKey(id uuid.UUID) string {
	return draftKeyPrefix + id.String()
}

func (r *ReplyDraftRepository) Save(ctx context.Context, draft *entity.ReplyDraft, ttl time.Duration) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal reply draft: %w", err)
	}
	return r.rdb.Set(ctx, draftKey(draft.Id), payload, ttl).Err()
}

func (r *ReplyDraftRepository) Get(ctx context.Context, id uuid.UUID) (*entity.ReplyDraft, error) {
	payload, err := r.rdb.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var draft entity.ReplyDraft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, fmt.Errorf("unmarshal reply draft: %w", err)
	}
	return &draft, nil
}

func (r *ReplyDraftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.rdb.Del(ctx, draftKey(id)).Err()
}
