package service

import (
	"context"
	"encoding/json"
	"time"

	"persona-replicator-be/internal/constant"
	"persona-replicator-be/internal/dto"
	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/pkg/logger"
	"persona-replicator-be/internal/repository/unitofwork"
	"persona-replicator-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService persists activity records and forwards them to the
// external event bus.
type consumerService struct {
	subscriber     message.Subscriber
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher events.Publisher
	logger         logger.ILogger
}

// NewConsumerService accepts a nil eventPublisher when NATS is unavailable.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:     subscriber,
		topicName:      topicName,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	// Activity is auxiliary: every outcome acks so a broken row cannot
	// be redelivered forever.
	defer msg.Ack()

	ctx := msg.Context()

	var payload dto.ActivityMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ACTIVITY_CONSUMER", "Failed to unmarshal activity message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}
	if payload.UserId == uuid.Nil || payload.ActionType == "" {
		cs.logger.Warn("ACTIVITY_CONSUMER", "Dropping incomplete activity message", map[string]interface{}{
			"message_id": msg.UUID,
		})
		return
	}
	if payload.OccurredAt.IsZero() {
		payload.OccurredAt = time.Now()
	}

	action := entity.Action{
		UserId:     payload.UserId,
		ActionType: payload.ActionType,
		Details:    payload.Details,
		CreatedAt:  payload.OccurredAt,
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ActionRepository().Create(ctx, &action); err != nil {
		cs.logger.Error("ACTIVITY_CONSUMER", "Failed to persist activity", map[string]interface{}{
			"user_id":     payload.UserId.String(),
			"action_type": payload.ActionType,
			"error":       err.Error(),
		})
		return
	}

	if cs.eventPublisher == nil {
		return
	}

	data := make(map[string]interface{}, len(payload.Details)+1)
	for k, v := range payload.Details {
		data[k] = v
	}
	data["user_id"] = payload.UserId.String()

	evt := events.BaseEvent{
		Type:       constant.ActivityEventPrefix + payload.ActionType,
		Data:       data,
		OccurredAt: payload.OccurredAt,
	}
	if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
		cs.logger.Warn("ACTIVITY_CONSUMER", "Failed to forward activity event", map[string]interface{}{
			"event": evt.Type,
			"error": err.Error(),
		})
	}
}
