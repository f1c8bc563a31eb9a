package handlers

import (
	"errors"
	"net/http"

	"github.com/isdelr/devconnect-be/internal/models"
	"github.com/isdelr/devconnect-be/internal/services"
)

// Feed event names published by PostHandler.
const (
	EventPostCreated     = "post.created"
	EventPostDeleted     = "post.deleted"
	EventPostLiked       = "post.liked"
	EventPostUnliked     = "post.unliked"
	EventPostCommented   = "post.commented"
	EventPostUncommented = "post.uncommented"
)

// Notifier fans post events out to live subscribers.
type Notifier interface {
	Publish(action string, payload interface{})
}

// PostHandler handles posts, likes and comments.
type PostHandler struct {
	posts    services.PostServiceProvider
	users    services.UserServiceProvider
	notifier Notifier
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(posts services.PostServiceProvider, users services.UserServiceProvider, notifier Notifier) *PostHandler {
	return &PostHandler{posts: posts, users: users, notifier: notifier}
}

// TextPayload is the body of post and comment submissions.
type TextPayload struct {
	Text string `json:"text" validate:"required" msg:"Text is required"`
}

type likesEvent struct {
	PostID string        `json:"postId"`
	Likes  []models.Like `json:"likes"`
}

type commentsEvent struct {
	PostID   string           `json:"postId"`
	Comments []models.Comment `json:"comments"`
}

func postNotFound() Result {
	return Msg(http.StatusNotFound, "post is not found")
}

// Create stores a post written by the caller.
func (h *PostHandler) Create(req *Request) Result {
	var payload TextPayload
	if res, ok := bind(req, &payload); !ok {
		return res
	}

	user, err := h.users.GetUserByID(req.Context(), req.UserID())
	if err != nil {
		return ServerError(err, "Failed to load post author")
	}

	post, err := h.posts.CreatePost(req.Context(), models.Post{
		UserID: req.UserID(),
		Text:   payload.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
	})
	if err != nil {
		return ServerError(err, "Failed to create post")
	}

	h.notifier.Publish(EventPostCreated, post)
	return OK(post)
}

// GetAll lists every post, newest first.
func (h *PostHandler) GetAll(req *Request) Result {
	posts, err := h.posts.GetAllPosts(req.Context())
	if err != nil {
		return ServerError(err, "Failed to retrieve posts")
	}
	return OK(posts)
}

// Get returns one post.
func (h *PostHandler) Get(req *Request) Result {
	post, err := h.posts.GetPostByID(req.Context(), req.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return postNotFound()
		}
		return ServerError(err, "Failed to retrieve post")
	}
	return OK(post)
}

// Delete removes a post. The ownership check compares the route id with the
// caller id, so in practice only a post whose id equals the caller's id can
// be removed.
func (h *PostHandler) Delete(req *Request) Result {
	id := req.Param("id")
	if _, err := h.posts.GetPostByID(req.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return postNotFound()
		}
		return ServerError(err, "Failed to retrieve post")
	}

	if id != req.UserID() {
		return Msg(http.StatusUnauthorized, "User not authorized")
	}

	if err := h.posts.DeletePost(req.Context(), id); err != nil {
		return ServerError(err, "Failed to delete post")
	}

	h.notifier.Publish(EventPostDeleted, map[string]string{"postId": id})
	return Msg(http.StatusOK, "post removed")
}

// Like adds the caller to a post's likes.
func (h *PostHandler) Like(req *Request) Result {
	id := req.Param("id")
	likes, err := h.posts.LikePost(req.Context(), id, req.UserID())
	switch {
	case errors.Is(err, services.ErrNotFound):
		return postNotFound()
	case errors.Is(err, services.ErrAlreadyLiked):
		return Msg(http.StatusBadRequest, "Post already liked")
	case err != nil:
		return ServerError(err, "Failed to like post")
	}

	h.notifier.Publish(EventPostLiked, likesEvent{PostID: id, Likes: likes})
	return OK(likes)
}

// Unlike removes the caller from a post's likes.
func (h *PostHandler) Unlike(req *Request) Result {
	id := req.Param("id")
	likes, err := h.posts.UnlikePost(req.Context(), id, req.UserID())
	switch {
	case errors.Is(err, services.ErrNotFound):
		return postNotFound()
	case errors.Is(err, services.ErrNotLiked):
		return Msg(http.StatusBadRequest, "Post has not yet been liked")
	case err != nil:
		return ServerError(err, "Failed to unlike post")
	}

	h.notifier.Publish(EventPostUnliked, likesEvent{PostID: id, Likes: likes})
	return OK(likes)
}

// Comment adds a comment by the caller to the front of a post's comments.
func (h *PostHandler) Comment(req *Request) Result {
	var payload TextPayload
	if res, ok := bind(req, &payload); !ok {
		return res
	}

	user, err := h.users.GetUserByID(req.Context(), req.UserID())
	if err != nil {
		return ServerError(err, "Failed to load comment author")
	}

	id := req.Param("id")
	comments, err := h.posts.AddComment(req.Context(), id, models.Comment{
		UserID: req.UserID(),
		Text:   payload.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
	})
	switch {
	case errors.Is(err, services.ErrNotFound):
		return postNotFound()
	case err != nil:
		return ServerError(err, "Failed to add comment")
	}

	h.notifier.Publish(EventPostCommented, commentsEvent{PostID: id, Comments: comments})
	return OK(comments)
}

// Uncomment removes one of the caller's comments.
func (h *PostHandler) Uncomment(req *Request) Result {
	id := req.Param("id")
	comments, err := h.posts.RemoveComment(req.Context(), id, req.Param("comment_id"), req.UserID())
	switch {
	case errors.Is(err, services.ErrNotFound):
		return postNotFound()
	case errors.Is(err, services.ErrCommentNotFound):
		return Msg(http.StatusNotFound, "Comment does not exist")
	case errors.Is(err, services.ErrNotCommentAuthor):
		return Msg(http.StatusUnauthorized, "User not authorized")
	case err != nil:
		return ServerError(err, "Failed to remove comment")
	}

	h.notifier.Publish(EventPostUncommented, commentsEvent{PostID: id, Comments: comments})
	return OK(comments)
}
