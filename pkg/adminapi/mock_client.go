package adminapi

import (
	"context"
	"sync"
)

// MockData seeds deterministic admin API responses for tests or local demos.
type MockData struct {
	Activity ActivityPage
	Overview OverviewMetrics
	Health   HealthReport
	Users    UserPage
	Recovery []RecoveryGroup
}

// MockClient implements Client using in-memory fixtures. Individual endpoints
// can be overridden per test via the exported function fields; unset fields
// fall back to the fixture data.
type MockClient struct {
	mu   sync.Mutex
	data MockData

	ActivityFeedFn  func(ctx context.Context, query ActivityQuery) (*ActivityPage, error)
	OverviewFn      func(ctx context.Context) (*OverviewMetrics, error)
	HealthFn        func(ctx context.Context) (*HealthReport, error)
	UsersFn         func(ctx context.Context, query UserQuery) (*UserPage, error)
	ToggleFn        func(ctx context.Context, userID string) error
	ResetPasswordFn func(ctx context.Context, userID string, input ResetPasswordInput) (string, error)
	CatalogFn       func(ctx context.Context) ([]RecoveryGroup, error)
	ExecuteFn       func(ctx context.Context, input ExecuteRecoveryInput) (string, error)
	TrainingFn      func(ctx context.Context, action string) error
	BackupFn        func(ctx context.Context) error

	ActivityCalls int
	OverviewCalls int
	HealthCalls   int
	UserCalls     int
	UserQueries   []UserQuery
	ToggleCalls   []string
	ResetCalls    []string
	ExecuteCalls  []ExecuteRecoveryInput
	TrainingCalls []string
	BackupCalls   int
}

var _ Client = (*MockClient)(nil)

// NewMockClient builds a mock admin API client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{data: data}
}

func (c *MockClient) ActivityFeed(ctx context.Context, query ActivityQuery) (*ActivityPage, error) {
	c.mu.Lock()
	c.ActivityCalls++
	fn := c.ActivityFeedFn
	page := c.data.Activity
	c.mu.Unlock()
	if fn != nil {
		return fn(ctx, query)
	}
	out := page
	return &out, nil
}

func (c *MockClient) Overview(ctx context.Context) (*OverviewMetrics, error) {
	c.mu.Lock()
	c.OverviewCalls++
	fn := c.OverviewFn
	metrics := c.data.Overview
	c.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	out := metrics
	return &out, nil
}

func (c *MockClient) Health(ctx context.Context) (*HealthReport, error) {
	c.mu.Lock()
	c.HealthCalls++
	fn := c.HealthFn
	report := c.data.Health
	c.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	out := report
	return &out, nil
}

func (c *MockClient) Users(ctx context.Context, query UserQuery) (*UserPage, error) {
	c.mu.Lock()
	c.UserCalls++
	c.UserQueries = append(c.UserQueries, query)
	fn := c.UsersFn
	page := c.data.Users
	c.mu.Unlock()
	if fn != nil {
		return fn(ctx, query)
	}
	out := page
	return &out, nil
}

func (c *MockClient) ToggleUserStatus(ctx context.Context, userID string) error {
	c.mu.Lock()
	c.ToggleCalls = append(c.ToggleCalls, userID)
	fn := c.ToggleFn
	c.mu.Unlock()
	if fn != nil {
		return fn(ctx, userID)
	}
	return nil
}

func (c *MockClient) ResetUserPassword(ctx context.Context, userID string, input ResetPasswordInput) (string, error) {
	c.mu.Lock()
	c.ResetCalls = append(c.ResetCalls, userID)
	fn := c.ResetPasswordFn
	c.mu.Unlock()
	if fn != nil {
		return fn(ctx, userID, input)
	}
	return "password reset", nil
}

func (c *MockClient) RecoveryCatalog(ctx context.Context) ([]RecoveryGroup, error) {
	c.mu.Lock()
	fn := c.CatalogFn
	groups := c.data.Recovery
	c.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	out := make([]RecoveryGroup, len(groups))
	copy(out, groups)
	return out, nil
}

func (c *MockClient) ExecuteRecovery(ctx context.Context, input ExecuteRecoveryInput) (string, error) {
	c.mu.Lock()
	c.ExecuteCalls = append(c.ExecuteCalls, input)
	fn := c.ExecuteFn
	c.mu.Unlock()
	if fn != nil {
		return fn(ctx, input)
	}
	return "recovery executed", nil
}

func (c *MockClient) StartTraining(ctx context.Context) error {
	return c.training(ctx, "start")
}

func (c *MockClient) PauseTraining(ctx context.Context) error {
	return c.training(ctx, "pause")
}

func (c *MockClient) training(ctx context.Context, action string) error {
	c.mu.Lock()
	c.TrainingCalls = append(c.TrainingCalls, action)
	fn := c.TrainingFn
	c.mu.Unlock()
	if fn != nil {
		return fn(ctx, action)
	}
	return nil
}

func (c *MockClient) TriggerBackup(ctx context.Context) error {
	c.mu.Lock()
	c.BackupCalls++
	fn := c.BackupFn
	c.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return nil
}
