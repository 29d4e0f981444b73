package service

import (
	"context"
	"errors"

	notifserrors "vowsuite/internal/notifications/errors"
	"vowsuite/internal/notifications/repository"
	"vowsuite/pkg/config"
	apperrors "vowsuite/pkg/errors"
	"vowsuite/pkg/model"
)

type NotificationService interface {
	Record(ctx context.Context, notification *model.Notification) error
	ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

type notificationService struct {
	cfg  *config.Config
	repo repository.NotificationRepository
}

func NewNotificationService(cfg *config.Config, repo repository.NotificationRepository) NotificationService {
	return &notificationService{
		cfg:  cfg,
		repo: repo,
	}
}

func (s *notificationService) Record(ctx context.Context, notification *model.Notification) error {
	if notification.To == "" || notification.Message == "" {
		return apperrors.InvalidInput("Notification recipient and message are required")
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		return apperrors.Internal("Failed to record notification", err)
	}

	s.cfg.Log.Info("Notification recorded",
		"notification_id", notification.ID,
		"to", notification.To,
	)
	return nil
}

func (s *notificationService) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]*model.Notification, error) {
	notifications, err := s.repo.FindByRecipient(ctx, userID, unreadOnly)
	if err != nil {
		return nil, apperrors.Internal("Failed to list notifications", err)
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id string) error {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		if errors.Is(err, notifserrors.ErrNotFound) || errors.Is(err, notifserrors.ErrInvalidID) {
			return apperrors.NotFoundWithID("Notification", id)
		}
		return apperrors.Internal("Failed to mark notification read", err)
	}
	return nil
}
