package services

import (
	"context"

	"github.com/pausely/pausely/internal/domain/insight"
	"github.com/pausely/pausely/internal/pkg/errors"
	"github.com/pausely/pausely/internal/pkg/logger"
)

// InsightService implements insight.Service
type InsightService struct {
	repo   insight.Repository
	logger *logger.Logger
}

// NewInsightService creates a new insight service
func NewInsightService(repo insight.Repository, log *logger.Logger) insight.Service {
	return &InsightService{repo: repo, logger: log}
}

// List retrieves a user's insights, newest first
func (s *InsightService) List(ctx context.Context, userID int64, filter insight.Filter) ([]*insight.Insight, error) {
	if filter.Type != "" && !insight.ValidType(filter.Type) {
		return nil, errors.BadRequest("Unknown insight type")
	}
	return s.repo.List(ctx, userID, filter)
}

// GetByID retrieves one insight owned by the user
func (s *InsightService) GetByID(ctx context.Context, userID, id int64) (*insight.Insight, error) {
	ins, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, errors.NotFound("insight")
	}
	return ins, nil
}

// MarkRead flags an insight as read
func (s *InsightService) MarkRead(ctx context.Context, userID, id int64) (*insight.Insight, error) {
	ins, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, errors.NotFound("insight")
	}
	if ins.IsRead {
		return ins, nil
	}
	ins.IsRead = true
	if err := s.repo.Update(ctx, ins); err != nil {
		return nil, errors.DatabaseError("Failed to update insight", err)
	}
	return ins, nil
}

// MarkActioned flags an insight as acted on (implies read)
func (s *InsightService) MarkActioned(ctx context.Context, userID, id int64) (*insight.Insight, error) {
	ins, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, errors.NotFound("insight")
	}
	ins.IsRead = true
	ins.ActionTaken = true
	if err := s.repo.Update(ctx, ins); err != nil {
		return nil, errors.DatabaseError("Failed to update insight", err)
	}
	return ins, nil
}

// Dismiss removes an insight from the feed
func (s *InsightService) Dismiss(ctx context.Context, userID, id int64) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return errors.NotFound("insight")
	}
	return nil
}

// UnreadCount returns the number of unread insights
func (s *InsightService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}
