package services

import (
	"strings"
	"unicode/utf8"

	"github.com/campusnet/backend/internal/apperrors"
	"github.com/campusnet/backend/internal/models"
	"github.com/campusnet/backend/internal/repositories"
)

var (
	// ErrPostContentLength rejects post content outside 1..512 chars after trimming.
	ErrPostContentLength = apperrors.New(apperrors.Validation, "post content must be between 1 and 512 characters")
	// ErrCommentContentEmpty rejects empty comment content.
	ErrCommentContentEmpty = apperrors.New(apperrors.Validation, "comment content must not be empty")
	// ErrNotPostOwner rejects mutations by anyone but the owner.
	ErrNotPostOwner = apperrors.New(apperrors.Forbidden, "only the owner can modify this post")
	// ErrNotCommentOwner rejects comment deletions by anyone but the owner.
	ErrNotCommentOwner = apperrors.New(apperrors.Forbidden, "only the owner can delete this comment")
	// ErrThreadMismatch rejects replies whose parent belongs to another post.
	ErrThreadMismatch = apperrors.New(apperrors.Validation, "thread parent does not belong to this post")
)

// CommentView is a comment plus availability markers for soft-deleted
// referents: a reply whose parent comment is gone, or a comment whose post is
// gone, renders as "unavailable" instead of erroring.
type CommentView struct {
	models.Comment
	PostUnavailable   bool `json:"post_unavailable,omitempty"`
	ThreadUnavailable bool `json:"thread_unavailable,omitempty"`
}

// ContentService owns posts, comments and likes.
type ContentService struct {
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	likes    repositories.LikeRepository
	follows  repositories.FollowRepository
	users    repositories.UserRepository
	orgs     repositories.OrgRepository
}

// NewContentService creates a new ContentService
func NewContentService(
	posts repositories.PostRepository,
	comments repositories.CommentRepository,
	likes repositories.LikeRepository,
	follows repositories.FollowRepository,
	users repositories.UserRepository,
	orgs repositories.OrgRepository,
) *ContentService {
	return &ContentService{
		posts:    posts,
		comments: comments,
		likes:    likes,
		follows:  follows,
		users:    users,
		orgs:     orgs,
	}
}

// CreatePost validates and persists a post, emitting mention notifications
// for @username references in the same transaction. Scope defaults to
// "following" when unspecified.
func (s *ContentService) CreatePost(actorID string, req models.CreatePostRequest) (*models.Post, error) {
	content := strings.TrimSpace(req.Content)
	// character count, not bytes: multibyte content gets the full limit
	if n := utf8.RuneCountInString(content); n < 1 || n > models.PostContentMaxLen {
		return nil, ErrPostContentLength
	}

	scope := req.Type
	if scope == "" {
		scope = models.PostScopeFollowing
	}

	post := &models.Post{UserID: actorID, Content: content, Type: scope}
	notifications, err := s.mentionNotifications(actorID, content, models.NotificationTypeMentionPost)
	if err != nil {
		return nil, err
	}

	if err := s.posts.CreatePostWithNotifications(post, notifications); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost replaces the content (and optionally the scope) of a live post
// owned by the actor. When nothing changed the write is skipped entirely.
func (s *ContentService) UpdatePost(actorID, postID string, req models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.posts.GetPostByID(postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != actorID {
		return nil, ErrNotPostOwner
	}

	trimmed := strings.TrimSpace(req.Content)
	if n := utf8.RuneCountInString(trimmed); n < 1 || n > models.PostContentMaxLen {
		return nil, ErrPostContentLength
	}

	updates := map[string]interface{}{}
	if trimmed != post.Content {
		updates["content"] = trimmed
	}
	if req.Type != "" && req.Type != post.Type {
		updates["type"] = req.Type
	}
	if len(updates) == 0 {
		return post, nil
	}

	if err := s.posts.UpdatePostFields(postID, updates); err != nil {
		return nil, err
	}
	post.Content = trimmed
	if req.Type != "" {
		post.Type = req.Type
	}
	return post, nil
}

// DeletePost soft-deletes a post owned by the actor. Comments, likes and
// notifications referencing it remain; read paths filter the post out.
func (s *ContentService) DeletePost(actorID, postID string) error {
	post, err := s.posts.GetPostByID(postID)
	if err != nil {
		return err
	}
	if post.UserID != actorID {
		return ErrNotPostOwner
	}
	return s.posts.SoftDeletePost(postID)
}

// GetPost returns a live post.
func (s *ContentService) GetPost(postID string) (*models.Post, error) {
	return s.posts.GetPostByID(postID)
}

// GetFeed returns the posts visible to the actor, newest first, resolving the
// actor's follow list and affiliation into the audience query.
func (s *ContentService) GetFeed(actorID string, page, limit int) ([]models.Post, int64, error) {
	followeeIDs, err := s.follows.GetFollowingIDs(actorID)
	if err != nil {
		return nil, 0, err
	}

	actor, err := s.users.GetUserByID(actorID)
	if err != nil {
		return nil, 0, err
	}

	var collegeID string
	if actor.ProgramID != "" {
		program, err := s.orgs.GetProgramByID(actor.ProgramID)
		if err == nil {
			collegeID = program.CollegeID
		}
	}

	return s.posts.ListFeed(repositories.FeedQuery{
		ActorID:     actorID,
		FolloweeIDs: followeeIDs,
		ProgramID:   actor.ProgramID,
		CollegeID:   collegeID,
		Page:        page,
		Limit:       limit,
	})
}

// ListUserPosts returns a user's live posts, newest first.
func (s *ContentService) ListUserPosts(userID string, page, limit int) ([]models.Post, int64, error) {
	return s.posts.ListByUserID(userID, page, limit)
}

// AddComment persists a comment on a live post, emitting the comment
// notification to the post owner and mention notifications in the same
// transaction. A reply may target a soft-deleted parent comment; it must just
// belong to the same post.
func (s *ContentService) AddComment(actorID, postID string, req models.CreateCommentRequest) (*models.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrCommentContentEmpty
	}

	post, err := s.posts.GetPostByID(postID)
	if err != nil {
		return nil, err
	}

	if req.ThreadID != "" {
		parent, err := s.comments.GetCommentByIDAny(req.ThreadID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, ErrThreadMismatch
		}
	}

	comment := &models.Comment{
		UserID:   actorID,
		PostID:   postID,
		Content:  content,
		ThreadID: req.ThreadID,
	}

	notifications, err := s.mentionNotifications(actorID, content, models.NotificationTypeMentionComment)
	if err != nil {
		return nil, err
	}
	if post.UserID != actorID {
		notifications = append(notifications, models.Notification{
			FromID: actorID,
			ToID:   post.UserID,
			Type:   models.NotificationTypeComment,
		})
	}

	if err := s.comments.CreateCommentWithNotifications(comment, notifications); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment soft-deletes a comment owned by the actor.
func (s *ContentService) DeleteComment(actorID, commentID string) error {
	comment, err := s.comments.GetCommentByID(commentID)
	if err != nil {
		return err
	}
	if comment.UserID != actorID {
		return ErrNotCommentOwner
	}
	return s.comments.SoftDeleteComment(commentID)
}

// GetComment returns a comment by ID with availability markers resolved, so
// a comment under a soft-deleted post stays queryable.
func (s *ContentService) GetComment(commentID string) (*CommentView, error) {
	comment, err := s.comments.GetCommentByID(commentID)
	if err != nil {
		return nil, err
	}
	view := &CommentView{Comment: *comment}

	post, err := s.posts.GetPostByIDAny(comment.PostID)
	if err != nil || post.DeletedAt.Valid {
		view.PostUnavailable = true
	}
	if comment.ThreadID != "" {
		parent, err := s.comments.GetCommentByIDAny(comment.ThreadID)
		if err != nil || parent.DeletedAt.Valid {
			view.ThreadUnavailable = true
		}
	}
	return view, nil
}

// GetComments returns the live comments of a live post, oldest first, marking
// replies whose thread parent has been soft-deleted.
func (s *ContentService) GetComments(postID string) ([]CommentView, error) {
	if _, err := s.posts.GetPostByID(postID); err != nil {
		return nil, err
	}

	comments, err := s.comments.GetCommentsByPostID(postID)
	if err != nil {
		return nil, err
	}

	live := make(map[string]bool, len(comments))
	for _, c := range comments {
		live[c.ID] = true
	}

	views := make([]CommentView, len(comments))
	for i, c := range comments {
		views[i] = CommentView{Comment: c}
		if c.ThreadID != "" && !live[c.ThreadID] {
			views[i].ThreadUnavailable = true
		}
	}
	return views, nil
}

// ToggleLike likes the post when no like row exists and unlikes it
// otherwise, returning the resulting state. The first like emits one
// notification to the owner (suppressed for self-likes); unliking never
// retracts it, and a concurrent duplicate insert lands on the unique index
// and is treated as already liked.
func (s *ContentService) ToggleLike(actorID, postID string) (bool, error) {
	post, err := s.posts.GetPostByID(postID)
	if err != nil {
		return false, err
	}

	liked, err := s.likes.HasUserLikedPost(actorID, postID)
	if err != nil {
		return false, err
	}
	if liked {
		if _, err := s.likes.DeleteLike(actorID, postID); err != nil {
			return true, err
		}
		return false, nil
	}

	like := &models.Like{UserID: actorID, PostID: postID}
	var notification *models.Notification
	if post.UserID != actorID {
		notification = &models.Notification{
			FromID:    actorID,
			ToID:      post.UserID,
			Type:      models.NotificationTypeLike,
			ContentID: postID,
		}
	}

	if err := s.likes.CreateLikeWithNotification(like, notification); err != nil {
		if apperrors.KindOf(err) == apperrors.Conflict {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// LikeCount returns the number of likes on a post.
func (s *ContentService) LikeCount(postID string) (int64, error) {
	return s.likes.GetLikesCountByPostID(postID)
}

// Likes returns the like rows of a live post.
func (s *ContentService) Likes(postID string) ([]models.Like, error) {
	if _, err := s.posts.GetPostByID(postID); err != nil {
		return nil, err
	}
	return s.likes.GetLikesByPostID(postID)
}

// mentionNotifications resolves @username references in content into mention
// notifications from the actor, skipping self-mentions and unknown names.
func (s *ContentService) mentionNotifications(actorID, content, notificationType string) ([]models.Notification, error) {
	usernames := extractMentions(content)
	if len(usernames) == 0 {
		return nil, nil
	}

	mentioned, err := s.users.GetUsersByUsernames(usernames)
	if err != nil {
		return nil, err
	}

	var notifications []models.Notification
	for _, u := range mentioned {
		if u.ID == actorID {
			continue
		}
		notifications = append(notifications, models.Notification{
			FromID: actorID,
			ToID:   u.ID,
			Type:   notificationType,
		})
	}
	return notifications, nil
}
