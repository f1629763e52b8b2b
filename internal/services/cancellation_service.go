package services

import (
	"context"
	"time"

	"github.com/pausely/pausely/internal/domain/cancellation"
	"github.com/pausely/pausely/internal/domain/subscription"
	"github.com/pausely/pausely/internal/domain/user"
	"github.com/pausely/pausely/internal/pkg/errors"
	"github.com/pausely/pausely/internal/pkg/logger"
	"github.com/pausely/pausely/internal/templates"
)

// CancellationService implements cancellation.Service. Drafts come from the
// embedded provider template catalog; the request then walks its status
// machine as messages are exchanged.
type CancellationService struct {
	repo    cancellation.Repository
	subs    subscription.Repository
	users   user.Repository
	catalog *templates.Catalog
	logger  *logger.Logger
}

// NewCancellationService creates a new cancellation service
func NewCancellationService(repo cancellation.Repository, subs subscription.Repository, users user.Repository, catalog *templates.Catalog, log *logger.Logger) cancellation.Service {
	return &CancellationService{
		repo:    repo,
		subs:    subs,
		users:   users,
		catalog: catalog,
		logger:  log,
	}
}

// Start drafts a cancellation email for a subscription and opens a request
// in the drafting state.
func (s *CancellationService) Start(ctx context.Context, userID, subscriptionID int64) (*cancellation.Request, error) {
	sub, err := s.subs.GetByID(ctx, userID, subscriptionID)
	if err != nil {
		return nil, errors.NotFound("subscription")
	}
	if sub.Status == subscription.StatusCancelled {
		return nil, errors.Conflict("Subscription is already cancelled")
	}

	fields := templates.Fields{}
	if u, uerr := s.users.GetByID(ctx, userID); uerr == nil {
		fields.UserEmail = u.Email
		if u.FullName != nil {
			fields.UserName = *u.FullName
		}
	}

	draft, err := s.catalog.Render(sub.Name, fields)
	if err != nil {
		return nil, errors.Internal("Failed to draft cancellation email", err)
	}

	req := &cancellation.Request{
		UserID:         userID,
		SubscriptionID: subscriptionID,
		Status:         cancellation.StatusDrafting,
		Provider:       sub.Name,
		DraftSubject:   draft.Subject,
		DraftBody:      draft.Body,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create cancellation request")
		return nil, errors.DatabaseError("Failed to create cancellation request", err)
	}

	msg := &cancellation.Message{
		RequestID: req.ID,
		Role:      cancellation.RoleAgent,
		Kind:      cancellation.KindEmail,
		Subject:   draft.Subject,
		Body:      draft.Body,
	}
	if err := s.repo.AddMessage(ctx, msg); err != nil {
		s.logger.ErrorWithErr(err, "Failed to log draft message")
	}

	s.logger.WithFields(map[string]interface{}{
		"request_id": req.ID,
		"user_id":    userID,
		"provider":   sub.Name,
	}).Info("Cancellation request drafted")
	return req, nil
}

// GetByID retrieves one request owned by the user
func (s *CancellationService) GetByID(ctx context.Context, userID, id int64) (*cancellation.Request, error) {
	req, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, errors.NotFound("cancellation request")
	}
	return req, nil
}

// ListByUser lists the user's requests, newest first
func (s *CancellationService) ListByUser(ctx context.Context, userID int64) ([]*cancellation.Request, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *CancellationService) advance(ctx context.Context, userID, id int64, to string) (*cancellation.Request, error) {
	req, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, errors.NotFound("cancellation request")
	}
	if !cancellation.ValidTransition(req.Status, to) {
		return nil, errors.InvalidTransition(req.Status, to)
	}
	req.Status = to
	if cancellation.Terminal(to) {
		now := time.Now()
		req.ResolvedAt = &now
	}
	if err := s.repo.Update(ctx, req); err != nil {
		return nil, errors.DatabaseError("Failed to update cancellation request", err)
	}
	return req, nil
}

// Send marks the drafted email as sent.
func (s *CancellationService) Send(ctx context.Context, userID, id int64) (*cancellation.Request, error) {
	req, err := s.advance(ctx, userID, id, cancellation.StatusSent)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(map[string]interface{}{
		"request_id": req.ID,
	}).Info("Cancellation email sent")
	return req, nil
}

// RecordReply logs a counterparty or user message and moves a sent request
// into negotiation.
func (s *CancellationService) RecordReply(ctx context.Context, userID, id int64, msg *cancellation.Message) (*cancellation.Request, error) {
	req, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, errors.NotFound("cancellation request")
	}
	if cancellation.Terminal(req.Status) {
		return nil, errors.Conflict("Request is already resolved")
	}
	if !cancellation.ValidMessage(msg) {
		return nil, errors.BadRequest("Message needs a valid role, kind and body")
	}

	msg.RequestID = req.ID
	if err := s.repo.AddMessage(ctx, msg); err != nil {
		return nil, errors.DatabaseError("Failed to record message", err)
	}

	if req.Status == cancellation.StatusSent {
		return s.advance(ctx, userID, id, cancellation.StatusNegotiating)
	}
	return req, nil
}

// Resolve closes a request as cancelled or saved. Cancelling also marks the
// underlying subscription cancelled when its lifecycle allows it.
func (s *CancellationService) Resolve(ctx context.Context, userID, id int64, outcome string) (*cancellation.Request, error) {
	if outcome != cancellation.StatusCancelled && outcome != cancellation.StatusSaved {
		return nil, errors.BadRequest("Outcome must be cancelled or saved")
	}

	req, err := s.advance(ctx, userID, id, outcome)
	if err != nil {
		return nil, err
	}
	req.Outcome = outcome

	if outcome == cancellation.StatusCancelled {
		if sub, serr := s.subs.GetByID(ctx, userID, req.SubscriptionID); serr == nil {
			if subscription.ValidTransition(sub.Status, subscription.StatusCancelled) {
				sub.Status = subscription.StatusCancelled
				if uerr := s.subs.Update(ctx, sub); uerr != nil {
					s.logger.ErrorWithErr(uerr, "Failed to cancel subscription from request")
				} else {
					req.SavedAmount = sub.MonthlyEquivalent()
				}
			}
		}
	}

	if err := s.repo.Update(ctx, req); err != nil {
		return nil, errors.DatabaseError("Failed to update cancellation request", err)
	}

	if req.SavedAmount > 0 {
		if profile, perr := s.users.GetProfile(ctx, userID); perr == nil {
			profile.TotalSaved += req.SavedAmount
			if uerr := s.users.UpdateProfile(ctx, profile); uerr != nil {
				s.logger.ErrorWithErr(uerr, "Failed to credit cancellation savings")
			}
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"request_id": req.ID,
		"outcome":    outcome,
	}).Info("Cancellation request resolved")
	return req, nil
}

// Messages returns the conversation log for a request the user owns.
func (s *CancellationService) Messages(ctx context.Context, userID, id int64) ([]*cancellation.Message, error) {
	req, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, errors.NotFound("cancellation request")
	}
	return s.repo.ListMessages(ctx, req.ID)
}
