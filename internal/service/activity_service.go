package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"persona-replicator-be/internal/constant"
	"persona-replicator-be/internal/dto"
	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/pkg/logger"
	"persona-replicator-be/internal/repository/specification"
	"persona-replicator-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IActivityService interface {
	// Record queues an activity entry. Failures are logged, never returned.
	Record(ctx context.Context, userId uuid.UUID, actionType string, details map[string]interface{})
	GetRecent(ctx context.Context, userId uuid.UUID) ([]*dto.ActivityResponse, error)
}

type activityService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	logger           logger.ILogger
	now              func() time.Time
}

func NewActivityService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) IActivityService {
	return &activityService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		logger:           log,
		now:              time.Now,
	}
}

func (s *activityService) Record(ctx context.Context, userId uuid.UUID, actionType string, details map[string]interface{}) {
	if details == nil {
		details = map[string]interface{}{}
	}

	payload, err := json.Marshal(dto.ActivityMessage{
		UserId:     userId,
		ActionType: actionType,
		Details:    details,
		OccurredAt: s.now(),
	})
	if err != nil {
		s.logger.Warn("ACTIVITY", "Failed to encode activity", map[string]interface{}{"action_type": actionType, "error": err.Error()})
		return
	}

	// The request context ends with the response; the consumer outlives it.
	if err := s.publisherService.Publish(context.WithoutCancel(ctx), payload); err != nil {
		s.logger.Warn("ACTIVITY", "Failed to publish activity", map[string]interface{}{"action_type": actionType, "error": err.Error()})
	}
}

func (s *activityService) GetRecent(ctx context.Context, userId uuid.UUID) ([]*dto.ActivityResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	actions, err := uow.ActionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.Latest(),
		specification.Pagination{Limit: constant.RecentActivityLimit},
	)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := make([]*dto.ActivityResponse, 0, len(actions))
	for _, a := range actions {
		result = append(result, &dto.ActivityResponse{
			Action:    formatAction(a),
			Timestamp: formatTimeAgo(a.CreatedAt, now),
		})
	}
	return result, nil
}

func formatAction(a *entity.Action) string {
	switch a.ActionType {
	case constant.ActionSamplesUploaded:
		return fmt.Sprintf("Uploaded %d samples", intDetail(a.Details, "count", 0))
	case constant.ActionPersonaRetrained:
		return "Persona retrained successfully"
	case constant.ActionReplyGenerated:
		return fmt.Sprintf("Generated %d reply candidates", intDetail(a.Details, "candidateCount", 3))
	case constant.ActionMessageSent:
		return "Message sent successfully"
	default:
		return a.ActionType
	}
}

// intDetail reads a numeric detail; JSON round trips turn ints into float64.
func intDetail(details map[string]interface{}, key string, fallback int) int {
	switch v := details[key].(type) {
	case int:
		if v != 0 {
			return v
		}
	case int64:
		if v != 0 {
			return int(v)
		}
	case float64:
		if v != 0 {
			return int(v)
		}
	}
	return fallback
}

func formatTimeAgo(at, now time.Time) string {
	diff := now.Sub(at)
	minutes := int(diff / time.Minute)
	hours := int(diff / time.Hour)
	days := int(diff / (24 * time.Hour))

	switch {
	case minutes < 1:
		return "Just now"
	case minutes < 60:
		return fmt.Sprintf("%dm ago", minutes)
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	default:
		return at.Format("1/2/2006")
	}
}
