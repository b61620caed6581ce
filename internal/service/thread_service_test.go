package service

import (
	"context"
	"testing"
	"time"

	"persona-replicator-be/internal/dto"
	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedThread(store *memStore, userId uuid.UUID, title string) *entity.Thread {
	now := time.Now()
	t := &entity.Thread{Id: uuid.New(), UserId: userId, Title: title, CreatedAt: now, UpdatedAt: now}
	store.threads = append(store.threads, t)
	return t
}

func TestThreadService_Create(t *testing.T) {
	store := newMemStore()
	svc := NewThreadService(store, logger.NewNopLogger())
	userId := uuid.New()
	p := seedPersona(store, userId, "Work", time.Now())

	res, err := svc.Create(context.Background(), userId, &dto.CreateThreadRequest{Title: "  Q3 launch  ", Description: "planning", PersonaId: &p.Id})
	require.NoError(t, err)

	assert.Equal(t, "Q3 launch", res.Title)
	assert.Equal(t, "planning", res.Description)
	assert.Equal(t, &p.Id, res.PersonaId)
	assert.Zero(t, res.MessageCount)
	assert.Nil(t, res.LastMessageAt)
	require.Len(t, store.threads, 1)
	assert.Equal(t, userId, store.threads[0].UserId)
}

func TestThreadService_CreateRejects(t *testing.T) {
	store := newMemStore()
	svc := NewThreadService(store, logger.NewNopLogger())
	userId := uuid.New()
	foreign := seedPersona(store, uuid.New(), "Not yours", time.Now())

	tests := []struct {
		name    string
		req     *dto.CreateThreadRequest
		code    int
		message string
	}{
		{"empty title", &dto.CreateThreadRequest{}, fiber.StatusBadRequest, "Thread title is required"},
		{"blank title", &dto.CreateThreadRequest{Title: "   "}, fiber.StatusBadRequest, "Thread title is required"},
		{"foreign persona", &dto.CreateThreadRequest{Title: "x", PersonaId: &foreign.Id}, fiber.StatusNotFound, "Persona not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), userId, tt.req)
			assertFiberError(t, err, tt.code, tt.message)
		})
	}
	assert.Empty(t, store.threads)
}

func TestThreadService_GetAll(t *testing.T) {
	store := newMemStore()
	svc := NewThreadService(store, logger.NewNopLogger())
	userId := uuid.New()
	p := seedPersona(store, userId, "Work", time.Now())
	p.Color = "#ff8800"

	idle := seedThread(store, userId, "Idle")
	older := seedThread(store, userId, "Older")
	recent := seedThread(store, userId, "Recent")
	seedThread(store, uuid.New(), "Foreign")

	earlier, later := time.Now().Add(-2*time.Hour), time.Now().Add(-time.Minute)
	older.LastMessageAt = &earlier
	recent.LastMessageAt = &later
	recent.PersonaId = &p.Id

	res, err := svc.GetAll(context.Background(), userId)
	require.NoError(t, err)

	require.Len(t, res, 3)
	assert.Equal(t, recent.Id, res[0].Id)
	assert.Equal(t, older.Id, res[1].Id)
	assert.Equal(t, idle.Id, res[2].Id, "threads without messages sort last")

	require.NotNil(t, res[0].PersonaName)
	assert.Equal(t, "Work", *res[0].PersonaName)
	assert.Equal(t, "#ff8800", *res[0].PersonaColor)
	assert.Nil(t, res[1].PersonaName)
}

func TestThreadService_Update(t *testing.T) {
	store := newMemStore()
	svc := NewThreadService(store, logger.NewNopLogger())
	userId := uuid.New()
	th := seedThread(store, userId, "Draft")
	th.Description = "keep me"

	title := " Final "
	res, err := svc.Update(context.Background(), userId, th.Id, &dto.UpdateThreadRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Final", res.Title)
	assert.Equal(t, "keep me", res.Description)
	assert.Equal(t, "Final", store.threads[0].Title)

	desc := ""
	res, err = svc.Update(context.Background(), userId, th.Id, &dto.UpdateThreadRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Final", res.Title)
	assert.Empty(t, res.Description)

	blank := "  "
	_, err = svc.Update(context.Background(), userId, th.Id, &dto.UpdateThreadRequest{Title: &blank})
	assertFiberError(t, err, fiber.StatusBadRequest, "Thread title is required")
	assert.Equal(t, "Final", store.threads[0].Title)

	_, err = svc.Update(context.Background(), uuid.New(), th.Id, &dto.UpdateThreadRequest{Title: &title})
	assertFiberError(t, err, fiber.StatusNotFound, "Thread not found")
}

func TestThreadService_Delete(t *testing.T) {
	store := newMemStore()
	svc := NewThreadService(store, logger.NewNopLogger())
	userId := uuid.New()
	only := seedThread(store, userId, "General")

	err := svc.Delete(context.Background(), userId, only.Id)
	assertFiberError(t, err, fiber.StatusBadRequest, "Cannot delete your only thread")
	require.Len(t, store.threads, 1)

	second := seedThread(store, userId, "Side")
	foreign := seedThread(store, uuid.New(), "Foreign")
	seedThread(store, foreign.UserId, "Foreign too")

	err = svc.Delete(context.Background(), userId, foreign.Id)
	assertFiberError(t, err, fiber.StatusNotFound, "Thread not found")

	require.NoError(t, svc.Delete(context.Background(), userId, second.Id))
	require.Len(t, store.threads, 3)
	for _, th := range store.threads {
		assert.NotEqual(t, second.Id, th.Id)
	}
}

func TestThreadService_Messages(t *testing.T) {
	store := newMemStore()
	svc := NewThreadService(store, logger.NewNopLogger())
	userId := uuid.New()
	th := seedThread(store, userId, "General")
	other := seedThread(store, userId, "Other")
	start := time.Now().Add(-time.Hour)

	store.messages = append(store.messages,
		&entity.ChatMessage{Id: uuid.New(), UserId: userId, ThreadId: &th.Id, Content: "second", CreatedAt: start.Add(time.Minute)},
		&entity.ChatMessage{Id: uuid.New(), UserId: userId, ThreadId: &other.Id, Content: "elsewhere", CreatedAt: start},
		&entity.ChatMessage{Id: uuid.New(), UserId: userId, ThreadId: &th.Id, Content: "first", CreatedAt: start},
		&entity.ChatMessage{Id: uuid.New(), UserId: userId, Content: "unthreaded", CreatedAt: start},
	)

	items, err := svc.Messages(context.Background(), userId, th.Id)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "first", items[0].Content)
	assert.Equal(t, "second", items[1].Content)

	_, err = svc.Messages(context.Background(), uuid.New(), th.Id)
	assertFiberError(t, err, fiber.StatusNotFound, "Thread not found")
}
