package knowledgetest

import (
	"context"

	"github.com/habiliai/toolserver/knowledge"
	"github.com/stretchr/testify/mock"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Search(ctx context.Context, query string, limit int) ([]string, error) {
	args := m.Called(ctx, query, limit)
	titles, _ := args.Get(0).([]string)
	return titles, args.Error(1)
}

func (m *ServiceMock) GetPage(ctx context.Context, title string, opts knowledge.PageOptions) (*knowledge.Page, error) {
	args := m.Called(ctx, title, opts)
	page, _ := args.Get(0).(*knowledge.Page)
	return page, args.Error(1)
}

var (
	_ knowledge.Service = (*ServiceMock)(nil)
)
