package handler_test

import (
	"context"

	"github.com/wfdeller/feedback/internal/directory"
	"github.com/wfdeller/feedback/internal/model"
	"github.com/wfdeller/feedback/internal/service"
	"github.com/wfdeller/feedback/internal/store"
)

type mockFeedbackService struct {
	submitFn       func(ctx context.Context, params service.SubmitParams) (*model.FeedbackRequest, error)
	getFn          func(ctx context.Context, id int64) (*model.FeedbackRequest, error)
	listFn         func(ctx context.Context, filter store.Filter) ([]model.FeedbackRequest, error)
	updateFn       func(ctx context.Context, id int64, params store.UpdateParams) (*model.FeedbackRequest, error)
	changeStatusFn func(ctx context.Context, id int64, status, detail string) (*model.FeedbackRequest, error)
}

func (m *mockFeedbackService) Submit(ctx context.Context, params service.SubmitParams) (*model.FeedbackRequest, error) {
	if m.submitFn != nil {
		return m.submitFn(ctx, params)
	}
	return &model.FeedbackRequest{ID: 1}, nil
}

func (m *mockFeedbackService) Get(ctx context.Context, id int64) (*model.FeedbackRequest, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, service.ErrNotFound
}

func (m *mockFeedbackService) List(ctx context.Context, filter store.Filter) ([]model.FeedbackRequest, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockFeedbackService) Update(ctx context.Context, id int64, params store.UpdateParams) (*model.FeedbackRequest, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, params)
	}
	return nil, service.ErrNotFound
}

func (m *mockFeedbackService) ChangeStatus(ctx context.Context, id int64, status, detail string) (*model.FeedbackRequest, error) {
	if m.changeStatusFn != nil {
		return m.changeStatusFn(ctx, id, status, detail)
	}
	return nil, service.ErrNotFound
}

type mockDirectoryService struct {
	resolveFn       func(ctx context.Context, userID string) (*directory.UserInfo, error)
	invalidateCalls []string
}

func (m *mockDirectoryService) Resolve(ctx context.Context, userID string) (*directory.UserInfo, error) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, userID)
	}
	return &directory.UserInfo{
		UserID:   userID,
		UserName: directory.FallbackName(userID),
	}, nil
}

func (m *mockDirectoryService) Invalidate(userID string) {
	m.invalidateCalls = append(m.invalidateCalls, userID)
}
