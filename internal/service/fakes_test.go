package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"persona-replicator-be/internal/dto"
	"persona-replicator-be/internal/entity"
	"persona-replicator-be/internal/repository/contract"
	"persona-replicator-be/internal/repository/specification"
	"persona-replicator-be/internal/repository/unitofwork"
	"persona-replicator-be/pkg/twin"

	"github.com/google/uuid"
)

var errStoreDown = errors.New("store unavailable")

// memStore backs every fake repository. It understands the specifications
// the services use.
type memStore struct {
	mu sync.Mutex

	personas []*entity.Persona
	samples  []*entity.PersonaSample
	metrics  map[uuid.UUID]*entity.Metric
	messages []*entity.ChatMessage
	actions  []*entity.Action
	threads  []*entity.Thread
	emails   []*entity.EmailMessage

	failSampleFiles map[string]bool
	failMessages    bool
	failActions     bool
	failEmails      bool
	failThreads     bool

	begun, committed, rolledBack int
}

func newMemStore() *memStore {
	return &memStore{
		metrics:         map[uuid.UUID]*entity.Metric{},
		failSampleFiles: map[string]bool{},
	}
}

func (s *memStore) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memUow{store: s}
}

type row struct {
	id        uuid.UUID
	userId    uuid.UUID
	personaId uuid.UUID
	threadId  uuid.UUID
	direction string
	createdAt time.Time
	arrivedAt time.Time
}

func (r row) sortKey(field string) time.Time {
	if field == specification.ArrivalField {
		return r.arrivedAt
	}
	return r.createdAt
}

func (s *memStore) ownsPersona(userId, personaId uuid.UUID) bool {
	for _, p := range s.personas {
		if p.Id == personaId && p.UserId == userId {
			return true
		}
	}
	return false
}

func query[T any](s *memStore, items []T, key func(T) row, specs []specification.Specification) []T {
	out := make([]T, 0, len(items))
	out = append(out, items...)
	limit := 0

	keep := func(pred func(row) bool) {
		filtered := out[:0:0]
		for _, it := range out {
			if pred(key(it)) {
				filtered = append(filtered, it)
			}
		}
		out = filtered
	}

	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			keep(func(r row) bool { return r.id == sp.ID })
		case specification.UserOwnedBy:
			keep(func(r row) bool { return r.userId == sp.UserID })
		case specification.ByPersonaID:
			keep(func(r row) bool { return r.personaId == sp.PersonaID })
		case specification.ByPersonaOwner:
			keep(func(r row) bool { return s.ownsPersona(sp.UserID, r.personaId) })
		case specification.ByThreadID:
			keep(func(r row) bool { return r.threadId == sp.ThreadID })
		case specification.ByDirection:
			keep(func(r row) bool { return r.direction == sp.Direction })
		case specification.OrderBy:
			sort.SliceStable(out, func(i, j int) bool {
				a, b := key(out[i]).sortKey(sp.Field), key(out[j]).sortKey(sp.Field)
				if sp.Desc {
					return a.After(b)
				}
				return a.Before(b)
			})
		case specification.Pagination:
			limit = sp.Limit
		}
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func personaRow(p *entity.Persona) row {
	return row{id: p.Id, userId: p.UserId, createdAt: p.CreatedAt}
}

func sampleRow(p *entity.PersonaSample) row {
	return row{id: p.Id, personaId: p.PersonaId, createdAt: p.CreatedAt}
}

func messageRow(m *entity.ChatMessage) row {
	r := row{id: m.Id, userId: m.UserId, createdAt: m.CreatedAt}
	if m.ThreadId != nil {
		r.threadId = *m.ThreadId
	}
	return r
}

func threadRow(t *entity.Thread) row {
	return row{id: t.Id, userId: t.UserId, createdAt: t.CreatedAt}
}

func emailRow(m *entity.EmailMessage) row {
	return row{id: m.Id, userId: m.UserId, direction: m.Direction, createdAt: m.CreatedAt, arrivedAt: m.ArrivedAt()}
}

func actionRow(a *entity.Action) row {
	return row{id: a.Id, userId: a.UserId, createdAt: a.CreatedAt}
}

type memUow struct {
	store *memStore
}

func (u *memUow) Begin(ctx context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.store.begun++
	return nil
}

func (u *memUow) Commit() error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.store.committed++
	return nil
}

func (u *memUow) Rollback() error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.store.rolledBack++
	return nil
}

func (u *memUow) PersonaRepository() contract.PersonaRepository {
	return &memPersonaRepo{u.store}
}

func (u *memUow) PersonaSampleRepository() contract.PersonaSampleRepository {
	return &memSampleRepo{u.store}
}

func (u *memUow) MetricRepository() contract.MetricRepository {
	return &memMetricRepo{u.store}
}

func (u *memUow) ChatMessageRepository() contract.ChatMessageRepository {
	return &memMessageRepo{u.store}
}

func (u *memUow) ActionRepository() contract.ActionRepository {
	return &memActionRepo{u.store}
}

func (u *memUow) ThreadRepository() contract.ThreadRepository {
	return &memThreadRepo{u.store}
}

func (u *memUow) EmailMessageRepository() contract.EmailMessageRepository {
	return &memEmailRepo{u.store}
}

type memPersonaRepo struct{ s *memStore }

func (r *memPersonaRepo) Create(ctx context.Context, p *entity.Persona) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.personas = append(r.s.personas, &cp)
	return nil
}

func (r *memPersonaRepo) Update(ctx context.Context, p *entity.Persona) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, existing := range r.s.personas {
		if existing.Id == p.Id {
			cp := *p
			r.s.personas[i] = &cp
			return nil
		}
	}
	return errors.New("persona not found")
}

func (r *memPersonaRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Persona, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	found := query(r.s, r.s.personas, personaRow, specs)
	if len(found) == 0 {
		return nil, nil
	}
	cp := *found[0]
	return &cp, nil
}

func (r *memPersonaRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Persona, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return query(r.s, r.s.personas, personaRow, specs), nil
}

func (r *memPersonaRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(query(r.s, r.s.personas, personaRow, specs))), nil
}

func (r *memPersonaRepo) UsageByPersona(ctx context.Context, userId uuid.UUID) ([]*entity.PersonaUsage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	usage := make([]*entity.PersonaUsage, 0)
	for _, p := range r.s.personas {
		if p.UserId != userId {
			continue
		}
		u := &entity.PersonaUsage{PersonaId: p.Id, Name: p.Name, Color: p.Color}
		for _, m := range r.s.messages {
			if m.PersonaId != nil && *m.PersonaId == p.Id {
				u.MessageCount++
			}
		}
		usage = append(usage, u)
	}
	sort.SliceStable(usage, func(i, j int) bool { return usage[i].MessageCount > usage[j].MessageCount })
	return usage, nil
}

type memSampleRepo struct{ s *memStore }

func (r *memSampleRepo) Create(ctx context.Context, sample *entity.PersonaSample) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failSampleFiles[sample.FileName] {
		return errStoreDown
	}
	cp := *sample
	r.s.samples = append(r.s.samples, &cp)
	return nil
}

func (r *memSampleRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PersonaSample, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return query(r.s, r.s.samples, sampleRow, specs), nil
}

func (r *memSampleRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(query(r.s, r.s.samples, sampleRow, specs))), nil
}

type memMetricRepo struct{ s *memStore }

func (r *memMetricRepo) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.Metric, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.metrics[userId]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *memMetricRepo) row(userId uuid.UUID) *entity.Metric {
	m, ok := r.s.metrics[userId]
	if !ok {
		m = &entity.Metric{Id: uuid.New(), UserId: userId}
		r.s.metrics[userId] = m
	}
	return m
}

func (r *memMetricRepo) AddTokensUsed(ctx context.Context, userId uuid.UUID, tokens int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.row(userId).TokensUsed += int64(tokens)
	return nil
}

func (r *memMetricRepo) IncrementMessagesSent(ctx context.Context, userId uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.row(userId).MessagesSent++
	return nil
}

func (r *memMetricRepo) RecordMessageSent(ctx context.Context, userId uuid.UUID, confidence int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m := r.row(userId)
	m.AvgConfidence = (m.AvgConfidence*float64(m.MessagesSent) + float64(confidence)) / float64(m.MessagesSent+1)
	m.MessagesSent++
	return nil
}

type memMessageRepo struct{ s *memStore }

func (r *memMessageRepo) Create(ctx context.Context, m *entity.ChatMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failMessages {
		return errStoreDown
	}
	cp := *m
	r.s.messages = append(r.s.messages, &cp)
	return nil
}

func (r *memMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return query(r.s, r.s.messages, messageRow, specs), nil
}

func (r *memMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(query(r.s, r.s.messages, messageRow, specs))), nil
}

func (r *memMessageRepo) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.messages[:0]
	for _, m := range r.s.messages {
		if m.UserId != userId {
			kept = append(kept, m)
		}
	}
	r.s.messages = kept
	return nil
}

func (r *memMessageRepo) CountByDay(ctx context.Context, userId uuid.UUID, since time.Time) ([]*entity.DailyMessageCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	buckets := map[time.Time]int64{}
	for _, m := range r.s.messages {
		if m.UserId != userId || m.CreatedAt.Before(since) {
			continue
		}
		y, mo, d := m.CreatedAt.UTC().Date()
		buckets[time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)]++
	}
	counts := make([]*entity.DailyMessageCount, 0, len(buckets))
	for day, n := range buckets {
		counts = append(counts, &entity.DailyMessageCount{Day: day, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Day.Before(counts[j].Day) })
	return counts, nil
}

type memThreadRepo struct{ s *memStore }

func (r *memThreadRepo) Create(ctx context.Context, t *entity.Thread) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failThreads {
		return errStoreDown
	}
	cp := *t
	r.s.threads = append(r.s.threads, &cp)
	return nil
}

func (r *memThreadRepo) Update(ctx context.Context, t *entity.Thread) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, existing := range r.s.threads {
		if existing.Id == t.Id {
			cp := *t
			r.s.threads[i] = &cp
			return nil
		}
	}
	return errors.New("thread not found")
}

func (r *memThreadRepo) Delete(ctx context.Context, t *entity.Thread) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.threads[:0]
	for _, existing := range r.s.threads {
		if existing.Id != t.Id {
			kept = append(kept, existing)
		}
	}
	r.s.threads = kept
	return nil
}

func (r *memThreadRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Thread, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	found := query(r.s, r.s.threads, threadRow, specs)
	if len(found) == 0 {
		return nil, nil
	}
	cp := *found[0]
	return &cp, nil
}

func (r *memThreadRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(query(r.s, r.s.threads, threadRow, specs))), nil
}

func (r *memThreadRepo) FindAllWithPersona(ctx context.Context, userId uuid.UUID) ([]*entity.Thread, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Thread, 0)
	for _, t := range r.s.threads {
		if t.UserId != userId {
			continue
		}
		cp := *t
		for _, p := range r.s.personas {
			if cp.PersonaId != nil && p.Id == *cp.PersonaId {
				name, color := p.Name, p.Color
				cp.PersonaName, cp.PersonaColor = &name, &color
			}
		}
		out = append(out, &cp)
	}
	// last_message_at DESC NULLS LAST, then updated_at DESC
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].LastMessageAt, out[j].LastMessageAt
		switch {
		case a != nil && b != nil && !a.Equal(*b):
			return a.After(*b)
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (r *memThreadRepo) FindMostActive(ctx context.Context, userId uuid.UUID, limit int) ([]*entity.Thread, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Thread, 0)
	for _, t := range r.s.threads {
		if t.UserId == userId {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MessageCount > out[j].MessageCount })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memThreadRepo) RecordMessages(ctx context.Context, threadId uuid.UUID, added int, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failThreads {
		return errStoreDown
	}
	for _, t := range r.s.threads {
		if t.Id == threadId {
			t.MessageCount += added
			last := at
			t.LastMessageAt = &last
			t.UpdatedAt = at
		}
	}
	return nil
}

type memEmailRepo struct{ s *memStore }

func (r *memEmailRepo) Create(ctx context.Context, m *entity.EmailMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failEmails {
		return errStoreDown
	}
	cp := *m
	r.s.emails = append(r.s.emails, &cp)
	return nil
}

func (r *memEmailRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.EmailMessage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	found := query(r.s, r.s.emails, emailRow, specs)
	if len(found) == 0 {
		return nil, nil
	}
	cp := *found[0]
	return &cp, nil
}

func (r *memEmailRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EmailMessage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return query(r.s, r.s.emails, emailRow, specs), nil
}

type memActionRepo struct{ s *memStore }

func (r *memActionRepo) Create(ctx context.Context, a *entity.Action) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failActions {
		return errStoreDown
	}
	cp := *a
	if cp.Id == uuid.Nil {
		cp.Id = uuid.New()
	}
	r.s.actions = append(r.s.actions, &cp)
	return nil
}

func (r *memActionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Action, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return query(r.s, r.s.actions, actionRow, specs), nil
}

func (s *memStore) actionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.actions)
}

type recordedActivity struct {
	userId     uuid.UUID
	actionType string
	details    map[string]interface{}
}

type fakeActivity struct {
	mu      sync.Mutex
	records []recordedActivity
}

func (f *fakeActivity) Record(ctx context.Context, userId uuid.UUID, actionType string, details map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, recordedActivity{userId, actionType, details})
}

func (f *fakeActivity) GetRecent(ctx context.Context, userId uuid.UUID) ([]*dto.ActivityResponse, error) {
	return nil, nil
}

type fakeGenerator struct {
	mu    sync.Mutex
	reply *twin.Reply
	calls []generatorCall
}

type generatorCall struct {
	persona twin.Persona
	msg     twin.InboundMessage
	opts    twin.Options
}

func (f *fakeGenerator) GenerateTwinReply(ctx context.Context, persona twin.Persona, msg twin.InboundMessage, opts twin.Options) *twin.Reply {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, generatorCall{persona, msg, opts})
	return f.reply
}

func generatedReply(tokens int) *twin.Reply {
	return &twin.Reply{
		Candidates: twin.Candidates{
			{Label: twin.LabelConservative, Text: "Noted.", LengthChars: 6, Confidence: 90, Rationale: "safe", PersonaRulesApplied: []string{}, Origin: twin.OriginGenerated},
			{Label: twin.LabelNormal, Text: "Sounds good, talk soon.", LengthChars: 23, Confidence: 80, Rationale: "balanced", PersonaRulesApplied: []string{}, Origin: twin.OriginGenerated},
			{Label: twin.LabelBold, Text: "Let's ship it today.", LengthChars: 20, Confidence: 60, Rationale: "bold", PersonaRulesApplied: []string{}, Origin: twin.OriginGenerated},
		},
		Origin:     twin.OriginGenerated,
		Provider:   "fake",
		TokensUsed: tokens,
	}
}
