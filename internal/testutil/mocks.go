package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pausely/pausely/internal/domain/cancellation"
	"github.com/pausely/pausely/internal/domain/insight"
	"github.com/pausely/pausely/internal/domain/subscription"
	"github.com/pausely/pausely/internal/domain/user"
)

// MockUserRepository is a mock implementation of user.Repository
type MockUserRepository struct {
	Users       map[int64]*user.User
	EmailIndex  map[string]*user.User
	Profiles    map[int64]*user.Profile
	NextID      int64
	CreateError error
	GetError    error
	UpdateError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:      make(map[int64]*user.User),
		EmailIndex: make(map[string]*user.User),
		Profiles:   make(map[int64]*user.Profile),
		NextID:     1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	u.ID = m.NextID
	m.NextID++
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.Users[u.ID] = u
	m.EmailIndex[strings.ToLower(u.Email)] = u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	return u, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.EmailIndex[strings.ToLower(email)]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	return u, nil
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Users[u.ID]; !ok {
		return fmt.Errorf("user not found")
	}
	m.Users[u.ID] = u
	m.EmailIndex[strings.ToLower(u.Email)] = u
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	if u, ok := m.Users[id]; ok {
		delete(m.EmailIndex, strings.ToLower(u.Email))
		delete(m.Users, id)
		delete(m.Profiles, id)
	}
	return nil
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, int64, error) {
	var result []*user.User
	for _, u := range m.Users {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, int64(len(result)), nil
}

func (m *MockUserRepository) CreateProfile(ctx context.Context, p *user.Profile) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	p.ID = p.UserID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.Profiles[p.UserID] = p
	return nil
}

func (m *MockUserRepository) GetProfile(ctx context.Context, userID int64) (*user.Profile, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	p, ok := m.Profiles[userID]
	if !ok {
		return nil, fmt.Errorf("profile not found")
	}
	return p, nil
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, p *user.Profile) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Profiles[p.UserID]; !ok {
		return fmt.Errorf("profile not found")
	}
	m.Profiles[p.UserID] = p
	return nil
}

// MockSubscriptionRepository is a mock implementation of
// subscription.Repository
type MockSubscriptionRepository struct {
	Subscriptions map[int64]*subscription.Subscription
	PauseEvents   []*subscription.PauseEvent
	NextID        int64
	NextEventID   int64
	CreateError   error
	GetError      error
	UpdateError   error
}

func NewMockSubscriptionRepository() *MockSubscriptionRepository {
	return &MockSubscriptionRepository{
		Subscriptions: make(map[int64]*subscription.Subscription),
		NextID:        1,
		NextEventID:   1,
	}
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	sub.ID = m.NextID
	m.NextID++
	sub.CreatedAt = time.Now()
	sub.UpdatedAt = sub.CreatedAt
	m.Subscriptions[sub.ID] = sub
	return nil
}

func (m *MockSubscriptionRepository) GetByID(ctx context.Context, userID, id int64) (*subscription.Subscription, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	sub, ok := m.Subscriptions[id]
	if !ok || sub.UserID != userID {
		return nil, fmt.Errorf("subscription not found")
	}
	return sub, nil
}

func (m *MockSubscriptionRepository) List(ctx context.Context, userID int64, filter subscription.Filter) ([]*subscription.Subscription, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	var result []*subscription.Subscription
	for _, sub := range m.Subscriptions {
		if sub.UserID != userID {
			continue
		}
		if filter.Status != "" && sub.Status != filter.Status {
			continue
		}
		if filter.Category != "" && sub.Category != filter.Category {
			continue
		}
		result = append(result, sub)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *MockSubscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Subscriptions[sub.ID]; !ok {
		return fmt.Errorf("subscription not found")
	}
	sub.UpdatedAt = time.Now()
	m.Subscriptions[sub.ID] = sub
	return nil
}

func (m *MockSubscriptionRepository) Delete(ctx context.Context, userID, id int64) error {
	sub, ok := m.Subscriptions[id]
	if !ok || sub.UserID != userID {
		return fmt.Errorf("subscription not found")
	}
	delete(m.Subscriptions, id)
	return nil
}

func (m *MockSubscriptionRepository) CountTracked(ctx context.Context, userID int64) (int, error) {
	count := 0
	for _, sub := range m.Subscriptions {
		if sub.UserID == userID && sub.Tracked() {
			count++
		}
	}
	return count, nil
}

func (m *MockSubscriptionRepository) CreatePauseEvent(ctx context.Context, ev *subscription.PauseEvent) error {
	ev.ID = m.NextEventID
	m.NextEventID++
	m.PauseEvents = append(m.PauseEvents, ev)
	return nil
}

func (m *MockSubscriptionRepository) CloseOpenPauseEvent(ctx context.Context, subscriptionID int64) (*subscription.PauseEvent, error) {
	for i := len(m.PauseEvents) - 1; i >= 0; i-- {
		ev := m.PauseEvents[i]
		if ev.SubscriptionID == subscriptionID && ev.ResumedAt == nil {
			now := time.Now()
			ev.ResumedAt = &now
			return ev, nil
		}
	}
	return nil, nil
}

func (m *MockSubscriptionRepository) ListPauseEvents(ctx context.Context, userID int64) ([]*subscription.PauseEvent, error) {
	var result []*subscription.PauseEvent
	for _, ev := range m.PauseEvents {
		if ev.UserID == userID {
			result = append(result, ev)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

// MockCancellationRepository is a mock implementation of
// cancellation.Repository
type MockCancellationRepository struct {
	Requests    map[int64]*cancellation.Request
	Messages    []*cancellation.Message
	NextID      int64
	NextMsgID   int64
	CreateError error
	GetError    error
}

func NewMockCancellationRepository() *MockCancellationRepository {
	return &MockCancellationRepository{
		Requests:  make(map[int64]*cancellation.Request),
		NextID:    1,
		NextMsgID: 1,
	}
}

func (m *MockCancellationRepository) Create(ctx context.Context, req *cancellation.Request) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	req.ID = m.NextID
	m.NextID++
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	m.Requests[req.ID] = req
	return nil
}

func (m *MockCancellationRepository) GetByID(ctx context.Context, userID, id int64) (*cancellation.Request, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	req, ok := m.Requests[id]
	if !ok || req.UserID != userID {
		return nil, fmt.Errorf("cancellation request not found")
	}
	return req, nil
}

func (m *MockCancellationRepository) ListByUser(ctx context.Context, userID int64) ([]*cancellation.Request, error) {
	var result []*cancellation.Request
	for _, req := range m.Requests {
		if req.UserID == userID {
			result = append(result, req)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *MockCancellationRepository) Update(ctx context.Context, req *cancellation.Request) error {
	if _, ok := m.Requests[req.ID]; !ok {
		return fmt.Errorf("cancellation request not found")
	}
	req.UpdatedAt = time.Now()
	m.Requests[req.ID] = req
	return nil
}

func (m *MockCancellationRepository) AddMessage(ctx context.Context, msg *cancellation.Message) error {
	msg.ID = m.NextMsgID
	m.NextMsgID++
	msg.CreatedAt = time.Now()
	m.Messages = append(m.Messages, msg)
	return nil
}

func (m *MockCancellationRepository) ListMessages(ctx context.Context, requestID int64) ([]*cancellation.Message, error) {
	var result []*cancellation.Message
	for _, msg := range m.Messages {
		if msg.RequestID == requestID {
			result = append(result, msg)
		}
	}
	return result, nil
}

// MockInsightRepository is a mock implementation of insight.Repository
type MockInsightRepository struct {
	Insights    map[int64]*insight.Insight
	NextID      int64
	CreateError error
	GetError    error
}

func NewMockInsightRepository() *MockInsightRepository {
	return &MockInsightRepository{
		Insights: make(map[int64]*insight.Insight),
		NextID:   1,
	}
}

func (m *MockInsightRepository) Create(ctx context.Context, ins *insight.Insight) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	ins.ID = m.NextID
	m.NextID++
	ins.CreatedAt = time.Now()
	m.Insights[ins.ID] = ins
	return nil
}

func (m *MockInsightRepository) GetByID(ctx context.Context, userID, id int64) (*insight.Insight, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	ins, ok := m.Insights[id]
	if !ok || ins.UserID != userID {
		return nil, fmt.Errorf("insight not found")
	}
	return ins, nil
}

func (m *MockInsightRepository) List(ctx context.Context, userID int64, filter insight.Filter) ([]*insight.Insight, error) {
	var result []*insight.Insight
	for _, ins := range m.Insights {
		if ins.UserID != userID {
			continue
		}
		if filter.Type != "" && ins.Type != filter.Type {
			continue
		}
		if filter.UnreadOnly && ins.IsRead {
			continue
		}
		result = append(result, ins)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *MockInsightRepository) Update(ctx context.Context, ins *insight.Insight) error {
	if _, ok := m.Insights[ins.ID]; !ok {
		return fmt.Errorf("insight not found")
	}
	m.Insights[ins.ID] = ins
	return nil
}

func (m *MockInsightRepository) Delete(ctx context.Context, userID, id int64) error {
	ins, ok := m.Insights[id]
	if !ok || ins.UserID != userID {
		return fmt.Errorf("insight not found")
	}
	delete(m.Insights, id)
	return nil
}

func (m *MockInsightRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	count := 0
	for _, ins := range m.Insights {
		if ins.UserID == userID && !ins.IsRead {
			count++
		}
	}
	return count, nil
}
