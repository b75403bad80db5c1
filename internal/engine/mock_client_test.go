package engine

import (
	"context"
	"errors"

	"github.com/umitdogu/proxysql-monitor/internal/model"
)

var errMockFailure = errors.New("mock failure")

// MockClient implements admin.Client with overridable function fields.
// Unset fields return empty results.
type MockClient struct {
	QueryFunc func(ctx context.Context, sql string, minFields int) ([]model.Row, error)
	ExecFunc  func(ctx context.Context, sql string) error
	PingFunc  func(ctx context.Context) error
}

func (m *MockClient) Query(ctx context.Context, sql string, minFields int) ([]model.Row, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, sql, minFields)
	}
	return nil, nil
}

func (m *MockClient) Exec(ctx context.Context, sql string) error {
	if m.ExecFunc != nil {
		return m.ExecFunc(ctx, sql)
	}
	return nil
}

func (m *MockClient) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}
