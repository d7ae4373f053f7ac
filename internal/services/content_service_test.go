package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/campusnet/backend/internal/apperrors"
	"github.com/campusnet/backend/internal/models"
	"github.com/campusnet/backend/internal/repositories"
)

func newContentService() (*ContentService, *MockPostRepository, *MockCommentRepository, *MockLikeRepository, *MockFollowRepository, *MockUserRepository, *MockOrgRepository) {
	posts := new(MockPostRepository)
	comments := new(MockCommentRepository)
	likes := new(MockLikeRepository)
	follows := new(MockFollowRepository)
	users := new(MockUserRepository)
	orgs := new(MockOrgRepository)
	svc := NewContentService(posts, comments, likes, follows, users, orgs)
	return svc, posts, comments, likes, follows, users, orgs
}

func softDeleted() gorm.DeletedAt {
	return gorm.DeletedAt{Time: time.Now(), Valid: true}
}

func TestCreatePost_Success(t *testing.T) {
	svc, posts, _, _, _, users, _ := newContentService()

	users.On("GetUsersByUsernames", mock.Anything).Return([]models.User{}, nil).Maybe()
	posts.On("CreatePostWithNotifications",
		mock.MatchedBy(func(p *models.Post) bool {
			return p.UserID == "alice" && p.Content == "hello campus" && p.Type == models.PostScopeAll
		}),
		mock.Anything,
	).Return(nil).Once()

	post, err := svc.CreatePost("alice", models.CreatePostRequest{Content: "  hello campus  ", Type: models.PostScopeAll})

	assert.NoError(t, err)
	assert.Equal(t, "hello campus", post.Content)
	posts.AssertExpectations(t)
}

func TestCreatePost_DefaultScope(t *testing.T) {
	svc, posts, _, _, _, _, _ := newContentService()

	posts.On("CreatePostWithNotifications",
		mock.MatchedBy(func(p *models.Post) bool { return p.Type == models.PostScopeFollowing }),
		mock.Anything,
	).Return(nil).Once()

	_, err := svc.CreatePost("alice", models.CreatePostRequest{Content: "no scope given"})

	assert.NoError(t, err)
	posts.AssertExpectations(t)
}

func TestCreatePost_ContentTooLong(t *testing.T) {
	svc, posts, _, _, _, users, _ := newContentService()

	_, err := svc.CreatePost("alice", models.CreatePostRequest{Content: strings.Repeat("x", models.PostContentMaxLen+1)})

	assert.ErrorIs(t, err, ErrPostContentLength)
	// rejected before any store access
	posts.AssertNotCalled(t, "CreatePostWithNotifications", mock.Anything, mock.Anything)
	users.AssertNotCalled(t, "GetUsersByUsernames", mock.Anything)
}

func TestCreatePost_LengthCountsCharactersNotBytes(t *testing.T) {
	svc, posts, _, _, _, _, _ := newContentService()

	// 512 two-byte characters is exactly at the limit
	posts.On("CreatePostWithNotifications", mock.Anything, mock.Anything).Return(nil).Once()
	_, err := svc.CreatePost("alice", models.CreatePostRequest{Content: strings.Repeat("é", models.PostContentMaxLen)})
	assert.NoError(t, err)
	posts.AssertExpectations(t)

	_, err = svc.CreatePost("alice", models.CreatePostRequest{Content: strings.Repeat("é", models.PostContentMaxLen+1)})
	assert.ErrorIs(t, err, ErrPostContentLength)
}

func TestUpdatePost_LengthCountsCharactersNotBytes(t *testing.T) {
	svc, posts, _, _, _, _, _ := newContentService()

	posts.On("GetPostByID", "p1").Return(&models.Post{ID: "p1", UserID: "alice", Content: "old"}, nil)
	posts.On("UpdatePostFields", "p1", mock.Anything).Return(nil).Once()

	_, err := svc.UpdatePost("alice", "p1", models.UpdatePostRequest{Content: strings.Repeat("ü", models.PostContentMaxLen)})
	assert.NoError(t, err)

	_, err = svc.UpdatePost("alice", "p1", models.UpdatePostRequest{Content: strings.Repeat("ü", models.PostContentMaxLen+1)})
	assert.ErrorIs(t, err, ErrPostContentLength)
	posts.AssertExpectations(t)
}

func TestCreatePost_ContentEmptyAfterTrim(t *testing.T) {
	svc, posts, _, _, _, _, _ := newContentService()

	_, err := svc.CreatePost("alice", models.CreatePostRequest{Content: "   "})

	assert.ErrorIs(t, err, ErrPostContentLength)
	posts.AssertNotCalled(t, "CreatePostWithNotifications", mock.Anything, mock.Anything)
}

func TestCreatePost_MentionNotifications(t *testing.T) {
	svc, posts, _, _, _, users, _ := newContentService()

	users.On("GetUsersByUsernames", []string{"bob", "alice"}).
		Return([]models.User{{ID: "u-bob", Username: "bob"}, {ID: "u-alice", Username: "alice"}}, nil)

	var captured []models.Notification
	posts.On("CreatePostWithNotifications", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).([]models.Notification)
		}).Return(nil)

	_, err := svc.CreatePost("u-alice", models.CreatePostRequest{Content: "shoutout @bob and @alice"})

	assert.NoError(t, err)
	// self-mention suppressed, one notification to bob
	assert.Len(t, captured, 1)
	assert.Equal(t, "u-bob", captured[0].ToID)
	assert.Equal(t, models.NotificationTypeMentionPost, captured[0].Type)
}

func TestUpdatePost_NotOwner(t *testing.T) {
	svc, posts, _, _, _, _, _ := newContentService()

	posts.On("GetPostByID", "p1").Return(&models.Post{ID: "p1", UserID: "bob", Content: "hi"}, nil)

	_, err := svc.UpdatePost("alice", "p1", models.UpdatePostRequest{Content: "edited"})

	assert.ErrorIs(t, err, ErrNotPostOwner)
	assert.Equal(t, apperrors.Forbidden, apperrors.KindOf(err))
	posts.AssertNotCalled(t, "UpdatePostFields", mock.Anything, mock.Anything)
}

func TestUpdatePost_UnchangedContentSkipsWrite(t *testing.T) {
	svc, posts, _, _, _, _, _ := newContentService()

	posts.On("GetPostByID", "p1").Return(&models.Post{ID: "p1", UserID: "alice", Content: "same"}, nil)

	post, err := svc.UpdatePost("alice", "p1", models.UpdatePostRequest{Content: "  same  "})

	assert.NoError(t, err)
	assert.Equal(t, "same", post.Content)
	posts.AssertNotCalled(t, "UpdatePostFields", mock.Anything, mock.Anything)
}

func TestUpdatePost_Success(t *testing.T) {
	svc, posts, _, _, _, _, _ := newContentService()

	posts.On("GetPostByID", "p1").Return(&models.Post{ID: "p1", UserID: "alice", Content: "old"}, nil)
	posts.On("UpdatePostFields", "p1", map[string]interface{}{"content": "new"}).Return(nil).Once()

	post, err := svc.UpdatePost("alice", "p1", models.UpdatePostRequest{Content: "new"})

	assert.NoError(t, err)
	assert.Equal(t, "new", post.Content)
	posts.AssertExpectations(t)
}

func TestUpdatePost_ScopeChange(t *testing.T) {
	svc, posts, _, _, _, _, _ := newContentService()

	posts.On("GetPostByID", "p1").Return(&models.Post{ID: "p1", UserID: "alice", Content: "same", Type: models.PostScopeFollowing}, nil)
	posts.On("UpdatePostFields", "p1", map[string]interface{}{"type": models.PostScopeAll}).Return(nil).Once()

	post, err := svc.UpdatePost("alice", "p1", models.UpdatePostRequest{Content: "same", Type: models.PostScopeAll})

	assert.NoError(t, err)
	assert.Equal(t, models.PostScopeAll, post.Type)
	posts.AssertExpectations(t)
}

func TestDeletePost_NotOwner(t *testing.T) {
	svc, posts, _, _, _, _, _ := newContentService()

	posts.On("GetPostByID", "p1").Return(&models.Post{ID: "p1", UserID: "bob"}, nil)

	err := svc.DeletePost("alice", "p1")

	assert.ErrorIs(t, err, ErrNotPostOwner)
	posts.AssertNotCalled(t, "SoftDeletePost", mock.Anything)
}

func TestDeletePost_Success(t *testing.T) {
	svc, posts, _, _, _, _, _ := newContentService()

	posts.On("GetPostByID", "p1").Return(&models.Post{ID: "p1", UserID: "alice"}, nil)
	posts.On("SoftDeletePost", "p1").Return(nil).Once()

	assert.NoError(t, svc.DeletePost("alice", "p1"))
	posts.AssertExpectations(t)
}

func TestGetFeed_ResolvesAudience(t *testing.T) {
	svc, posts, _, _, follows, users, orgs := newContentService()

	follows.On("GetFollowingIDs", "alice").Return([]string{"bob", "carol"}, nil)
	users.On("GetUserByID", "alice").Return(&models.User{ID: "alice", ProgramID: "prog1"}, nil)
	orgs.On("GetProgramByID", "prog1").Return(&models.Program{ID: "prog1", CollegeID: "col1"}, nil)
	posts.On("ListFeed", repositories.FeedQuery{
		ActorID:     "alice",
		FolloweeIDs: []string{"bob", "carol"},
		ProgramID:   "prog1",
		CollegeID:   "col1",
		Page:        1,
		Limit:       20,
	}).Return([]models.Post{{ID: "p1"}}, int64(1), nil).Once()

	feed, total, err := svc.GetFeed("alice", 1, 20)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, feed, 1)
	posts.AssertExpectations(t)
}

func TestAddComment_EmptyContent(t *testing.T) {
	svc, posts, comments, _, _, _, _ := newContentService()

	_, err := svc.AddComment("alice", "p1", models.CreateCommentRequest{Content: "  "})

	assert.ErrorIs(t, err, ErrCommentContentEmpty)
	posts.AssertNotCalled(t, "GetPostByID", mock.Anything)
	comments.AssertNotCalled(t, "CreateCommentWithNotifications", mock.Anything, mock.Anything)
}

func TestAddComment_DeletedPost(t *testing.T) {
	svc, posts, comments, _, _, _, _ := newContentService()

	posts.On("GetPostByID", "p1").Return(nil, apperrors.New(apperrors.NotFound, "post not found"))

	_, err := svc.AddComment("alice", "p1", models.CreateCommentRequest{Content: "hi"})

	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
	comments.AssertNotCalled(t, "CreateCommentWithNotifications", mock.Anything, mock.Anything)
}

func TestAddComment_ThreadMismatch(t *testing.T) {
	svc, posts, comments, _, _, _, _ := newContentService()

	posts.On("GetPostByID", "p1").Return(&models.Post{ID: "p1", UserID: "bob"}, nil)
	comments.On("GetCommentByIDAny", "c9").Return(&models.Comment{ID: "c9", PostID: "other-post"}, nil)

	_, err := svc.AddComment("alice", "p1", models.CreateCommentRequest{Content: "hi", ThreadID: "c9"})

	assert.ErrorIs(t, err, ErrThreadMismatch)
	comments.AssertNotCalled(t, "CreateCommentWithNotifications", mock.Anything, mock.Anything)
}

func TestAddComment_ReplyToDeletedParentAllowed(t *testing.T) {
	svc, posts, comments, _, _, _, _ := newContentService()

	posts.On("GetPostByID", "p1").Return(&models.Post{ID: "p1", UserID: "alice"}, nil)
	parent := &models.Comment{ID: "c1", PostID: "p1", DeletedAt: softDeleted()}
	comments.On("GetCommentByIDAny", "c1").Return(parent, nil)
	comments.On("CreateCommentWithNotifications", mock.Anything, mock.Anything).Return(nil).Once()

	comment, err := svc.AddComment("alice", "p1", models.CreateCommentRequest{Content: "late reply", ThreadID: "c1"})

	assert.NoError(t, err)
	assert.Equal(t, "c1", comment.ThreadID)
	comments.AssertExpectations(t)
}

func TestAddComment_NotifiesPostOwner(t *testing.T) {
	svc, posts, comments, _, _, _, _ := newContentService()

	posts.On("GetPostByID", "p1").Return(&models.Post{ID: "p1", UserID: "bob"}, nil)

	var captured []models.Notification
	comments.On("CreateCommentWithNotifications", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).([]models.Notification)
		}).Return(nil)

	_, err := svc.AddComment("alice", "p1", models.CreateCommentRequest{Content: "nice"})

	assert.NoError(t, err)
	assert.Len(t, captured, 1)
	assert.Equal(t, "alice", captured[0].FromID)
	assert.Equal(t, "bob", captured[0].ToID)
	assert.Equal(t, models.NotificationTypeComment, captured[0].Type)
}

func TestAddComment_OwnPostNoNotification(t *testing.T) {
	svc, posts, comments, _, _, _, _ := newContentService()

	posts.On("GetPostByID", "p1").Return(&models.Post{ID: "p1", UserID: "alice"}, nil)

	var captured []models.Notification
	comments.On("CreateCommentWithNotifications", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).([]models.Notification)
		}).Return(nil)

	_, err := svc.AddComment("alice", "p1", models.CreateCommentRequest{Content: "my own thread"})

	assert.NoError(t, err)
	assert.Empty(t, captured)
}

func TestDeleteComment_NotOwner(t *testing.T) {
	svc, _, comments, _, _, _, _ := newContentService()

	comments.On("GetCommentByID", "c1").Return(&models.Comment{ID: "c1", UserID: "bob"}, nil)

	err := svc.DeleteComment("alice", "c1")

	assert.ErrorIs(t, err, ErrNotCommentOwner)
	comments.AssertNotCalled(t, "SoftDeleteComment", mock.Anything)
}

func TestGetComment_MarksDeletedPost(t *testing.T) {
	svc, posts, comments, _, _, _, _ := newContentService()

	comments.On("GetCommentByID", "c1").Return(&models.Comment{ID: "c1", PostID: "p1"}, nil)
	posts.On("GetPostByIDAny", "p1").Return(&models.Post{ID: "p1", DeletedAt: softDeleted()}, nil)

	view, err := svc.GetComment("c1")

	assert.NoError(t, err)
	assert.True(t, view.PostUnavailable)
	assert.False(t, view.ThreadUnavailable)
}

func TestGetComments_MarksDeletedThreadParent(t *testing.T) {
	svc, posts, comments, _, _, _, _ := newContentService()

	posts.On("GetPostByID", "p1").Return(&models.Post{ID: "p1"}, nil)
	// c1 was soft-deleted so only its reply comes back live
	comments.On("GetCommentsByPostID", "p1").Return([]models.Comment{
		{ID: "c2", PostID: "p1", ThreadID: "c1"},
		{ID: "c3", PostID: "p1"},
	}, nil)

	views, err := svc.GetComments("p1")

	assert.NoError(t, err)
	assert.Len(t, views, 2)
	assert.True(t, views[0].ThreadUnavailable)
	assert.False(t, views[1].ThreadUnavailable)
}

func TestToggleLike_LikeEmitsOneNotification(t *testing.T) {
	svc, posts, _, likes, _, _, _ := newContentService()

	posts.On("GetPostByID", "p1").Return(&models.Post{ID: "p1", UserID: "bob"}, nil)
	likes.On("HasUserLikedPost", "alice", "p1").Return(false, nil)
	likes.On("CreateLikeWithNotification",
		mock.MatchedBy(func(l *models.Like) bool { return l.UserID == "alice" && l.PostID == "p1" }),
		mock.MatchedBy(func(n *models.Notification) bool {
			return n != nil && n.FromID == "alice" && n.ToID == "bob" && n.Type == models.NotificationTypeLike
		}),
	).Return(nil).Once()

	liked, err := svc.ToggleLike("alice", "p1")

	assert.NoError(t, err)
	assert.True(t, liked)
	likes.AssertExpectations(t)
}

func TestToggleLike_SelfLikeNoNotification(t *testing.T) {
	svc, posts, _, likes, _, _, _ := newContentService()

	posts.On("GetPostByID", "p1").Return(&models.Post{ID: "p1", UserID: "alice"}, nil)
	likes.On("HasUserLikedPost", "alice", "p1").Return(false, nil)
	likes.On("CreateLikeWithNotification",
		mock.Anything,
		mock.MatchedBy(func(n *models.Notification) bool { return n == nil }),
	).Return(nil).Once()

	liked, err := svc.ToggleLike("alice", "p1")

	assert.NoError(t, err)
	assert.True(t, liked)
	likes.AssertExpectations(t)
}

func TestToggleLike_UnlikeRemovesRowOnly(t *testing.T) {
	svc, posts, _, likes, _, _, _ := newContentService()

	posts.On("GetPostByID", "p1").Return(&models.Post{ID: "p1", UserID: "bob"}, nil)
	likes.On("HasUserLikedPost", "alice", "p1").Return(true, nil)
	likes.On("DeleteLike", "alice", "p1").Return(true, nil).Once()

	liked, err := svc.ToggleLike("alice", "p1")

	assert.NoError(t, err)
	assert.False(t, liked)
	likes.AssertNotCalled(t, "CreateLikeWithNotification", mock.Anything, mock.Anything)
}

func TestToggleLike_ConcurrentDuplicateTreatedAsLiked(t *testing.T) {
	svc, posts, _, likes, _, _, _ := newContentService()

	posts.On("GetPostByID", "p1").Return(&models.Post{ID: "p1", UserID: "bob"}, nil)
	likes.On("HasUserLikedPost", "alice", "p1").Return(false, nil)
	likes.On("CreateLikeWithNotification", mock.Anything, mock.Anything).
		Return(apperrors.New(apperrors.Conflict, "already liked"))

	liked, err := svc.ToggleLike("alice", "p1")

	assert.NoError(t, err)
	assert.True(t, liked)
}

func TestLikes_ListsRowsOfLivePost(t *testing.T) {
	svc, posts, _, likes, _, _, _ := newContentService()

	posts.On("GetPostByID", "p1").Return(&models.Post{ID: "p1", UserID: "bob"}, nil)
	likes.On("GetLikesByPostID", "p1").Return([]models.Like{{ID: "l1", UserID: "alice", PostID: "p1"}}, nil)

	rows, err := svc.Likes("p1")

	assert.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestLikes_DeletedPost(t *testing.T) {
	svc, posts, _, likes, _, _, _ := newContentService()

	posts.On("GetPostByID", "gone").Return(nil, apperrors.New(apperrors.NotFound, "post not found"))

	_, err := svc.Likes("gone")

	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
	likes.AssertNotCalled(t, "GetLikesByPostID", mock.Anything)
}

func TestToggleLike_DeletedPost(t *testing.T) {
	svc, posts, _, likes, _, _, _ := newContentService()

	posts.On("GetPostByID", "p1").Return(nil, apperrors.New(apperrors.NotFound, "post not found"))

	_, err := svc.ToggleLike("alice", "p1")

	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
	likes.AssertNotCalled(t, "CreateLikeWithNotification", mock.Anything, mock.Anything)
}
