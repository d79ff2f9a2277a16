package service

import (
	"context"
	"fmt"

	"github.com/minhngvn/finshare-server/internal/models"
	"github.com/minhngvn/finshare-server/internal/utils"
)

// Friend methods

func (s *DefaultService) ListFriends(ctx context.Context, userID string) ([]models.Friendship, error) {
	friendships, err := s.repo.GetAcceptedFriendships(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing friends: %w", err)
	}

	return friendships, nil
}

func (s *DefaultService) SendFriendRequest(ctx context.Context, userID, friendEmail string) error {
	friend, err := s.repo.GetUserByEmail(ctx, friendEmail)
	if err != nil {
		return fmt.Errorf("error getting user: %w", err)
	}
	if friend == nil {
		return ErrNotFound
	}

	if friend.ID == userID {
		return ErrSelfFriend
	}

	existing, err := s.repo.FindFriendshipBetween(ctx, userID, friend.ID)
	if err != nil {
		return fmt.Errorf("error checking existing friendship: %w", err)
	}
	if existing != nil {
		return ErrDuplicateFriendship
	}

	requester, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("error getting requester: %w", err)
	}
	if requester == nil {
		return ErrNotFound
	}

	friendship := &models.Friendship{
		UserID:      userID,
		FriendID:    friend.ID,
		FriendEmail: friend.Email,
		FriendName:  friend.FullName,
		Status:      models.FriendshipPending,
	}

	if err := s.repo.CreateFriendship(ctx, friendship); err != nil {
		return fmt.Errorf("error creating friendship: %w", err)
	}

	notification := &models.Notification{
		UserID:  friend.ID,
		Type:    models.NotificationFriendRequest,
		Content: fmt.Sprintf("%s đã gửi lời mời kết bạn", requester.FullName),
	}
	if err := s.repo.CreateNotification(ctx, notification); err != nil {
		utils.Logger.WithError(err).WithField("userId", friend.ID).
			Error("failed to create friend request notification")
	}

	return nil
}

func (s *DefaultService) AcceptFriendRequest(ctx context.Context, userID, friendshipID string) error {
	friendship, err := s.repo.GetFriendship(ctx, friendshipID)
	if err != nil {
		return fmt.Errorf("error getting friendship: %w", err)
	}
	if friendship == nil {
		return ErrNotFound
	}

	// Only the recipient of the request may accept it.
	if friendship.FriendID != userID {
		return ErrForbidden
	}

	if err := s.repo.UpdateFriendshipStatus(ctx, friendshipID, models.FriendshipAccepted); err != nil {
		return fmt.Errorf("error accepting friendship: %w", err)
	}

	return nil
}

// Notification methods

func (s *DefaultService) ListNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	notifications, err := s.repo.GetUserNotifications(ctx, userID, 100)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}

	return notifications, nil
}

func (s *DefaultService) MarkNotificationRead(ctx context.Context, userID, notificationID string) error {
	if err := s.repo.MarkNotificationRead(ctx, notificationID, userID); err != nil {
		return fmt.Errorf("error marking notification read: %w", err)
	}

	return nil
}
