// Package services holds the invariant-bearing core: the social graph,
// content and notification services. Handlers stay thin; everything that must
// hold under concurrent requests lives here or in the store constraints the
// repositories lean on.
package services

import (
	"github.com/campusnet/backend/internal/apperrors"
	"github.com/campusnet/backend/internal/models"
	"github.com/campusnet/backend/internal/repositories"
)

var (
	// ErrSelfFollow rejects follow(A, A).
	ErrSelfFollow = apperrors.New(apperrors.Validation, "cannot follow yourself")
	// ErrAlreadyFollowing rejects a duplicate edge for the same ordered pair.
	ErrAlreadyFollowing = apperrors.New(apperrors.Conflict, "already following this user")
)

// SocialGraphService maintains the directed follow graph.
type SocialGraphService struct {
	follows repositories.FollowRepository
	users   repositories.UserRepository
}

// NewSocialGraphService creates a new SocialGraphService
func NewSocialGraphService(follows repositories.FollowRepository, users repositories.UserRepository) *SocialGraphService {
	return &SocialGraphService{follows: follows, users: users}
}

// Follow creates the edge follower -> followee and emits exactly one follow
// notification to the followee, both in a single transaction. Fails with
// ErrSelfFollow when the two sides match and ErrAlreadyFollowing when the
// edge exists; the unique index backs the latter under concurrent requests.
func (s *SocialGraphService) Follow(followerID, followeeID string) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}
	if _, err := s.users.GetUserByID(followeeID); err != nil {
		return err
	}

	edge := &models.Follow{FollowerID: followerID, FolloweeID: followeeID}
	notification := &models.Notification{
		FromID:    followerID,
		ToID:      followeeID,
		Type:      models.NotificationTypeFollow,
		ContentID: followerID,
	}

	if err := s.follows.CreateFollowWithNotification(edge, notification); err != nil {
		if apperrors.KindOf(err) == apperrors.Conflict {
			return ErrAlreadyFollowing
		}
		return err
	}
	return nil
}

// Unfollow removes the edge follower -> followee. Removing an absent edge
// succeeds: idempotence keeps client retries safe.
func (s *SocialGraphService) Unfollow(followerID, followeeID string) error {
	_, err := s.follows.DeleteFollow(followerID, followeeID)
	return err
}

// IsFollowing reports whether follower currently follows followee.
func (s *SocialGraphService) IsFollowing(followerID, followeeID string) (bool, error) {
	return s.follows.IsFollowing(followerID, followeeID)
}

// Followers returns the users following userID.
func (s *SocialGraphService) Followers(userID string) ([]models.User, error) {
	return s.follows.GetFollowers(userID)
}

// Following returns the users userID follows.
func (s *SocialGraphService) Following(userID string) ([]models.User, error) {
	return s.follows.GetFollowing(userID)
}

// Counts returns (followers, following) for userID.
func (s *SocialGraphService) Counts(userID string) (int64, int64, error) {
	followers, err := s.follows.GetFollowersCount(userID)
	if err != nil {
		return 0, 0, err
	}
	following, err := s.follows.GetFollowingCount(userID)
	if err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}
