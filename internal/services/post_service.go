package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/devconnect-be/internal/database"
	"github.com/isdelr/devconnect-be/internal/models"
)

// PostServiceProvider defines the interface for post services.
type PostServiceProvider interface {
	CreatePost(ctx context.Context, post models.Post) (models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	GetPostByID(ctx context.Context, id string) (models.Post, error)
	DeletePost(ctx context.Context, id string) error
	LikePost(ctx context.Context, postID, userID string) ([]models.Like, error)
	UnlikePost(ctx context.Context, postID, userID string) ([]models.Like, error)
	AddComment(ctx context.Context, postID string, comment models.Comment) ([]models.Comment, error)
	RemoveComment(ctx context.Context, postID, commentID, userID string) ([]models.Comment, error)
	CountOrphanedPosts(ctx context.Context) (int, error)
}

// PostService provides business logic for posts, likes and comments.
type PostService struct {
	db *sql.DB
}

// NewPostService creates a new PostService.
func NewPostService(db *sql.DB) *PostService {
	return &PostService{db: db}
}

const selectPost = `SELECT id, user_id, text, name, avatar, likes_json, comments_json, created_at FROM posts`

func scanPost(row scanner) (models.Post, error) {
	var p models.Post
	var createdAt string
	if err := row.Scan(&p.ID, &p.UserID, &p.Text, &p.Name, &p.Avatar, &p.LikesJSON, &p.CommentsJSON, &createdAt); err != nil {
		return p, err
	}

	var err error
	if p.CreatedAt, err = database.ParseTime(createdAt); err != nil {
		return p, err
	}
	if err := p.PrepareForAPI(); err != nil {
		return p, fmt.Errorf("decode post %s: %w", p.ID, err)
	}
	return p, nil
}

// CreatePost stores a new post. ID and creation time are assigned here.
func (s *PostService) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	post.ID = uuid.New().String()
	post.CreatedAt = time.Now().UTC()
	post.PrepareForSave()

	stmt, err := s.db.PrepareContext(ctx, `
		INSERT INTO posts(id, user_id, text, name, avatar, likes_json, comments_json, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return models.Post{}, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, post.ID, post.UserID, post.Text, post.Name, post.Avatar,
		post.LikesJSON, post.CommentsJSON, database.FormatTime(post.CreatedAt))
	if err != nil {
		return models.Post{}, fmt.Errorf("failed to insert post: %w", err)
	}
	return post, nil
}

// GetAllPosts retrieves every post, newest first. The result is never nil.
func (s *PostService) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	rows, err := s.db.QueryContext(ctx, selectPost+" ORDER BY created_at DESC, rowid DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetPostByID retrieves a single post.
func (s *PostService) GetPostByID(ctx context.Context, id string) (models.Post, error) {
	p, err := scanPost(s.db.QueryRowContext(ctx, selectPost+" WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Post{}, fmt.Errorf("post %s: %w", id, ErrNotFound)
		}
		return models.Post{}, err
	}
	return p, nil
}

// DeletePost removes a post.
func (s *PostService) DeletePost(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", id)
	return err
}

// LikePost adds userID to the front of the post's likes.
func (s *PostService) LikePost(ctx context.Context, postID, userID string) ([]models.Like, error) {
	p, err := s.modify(ctx, postID, func(p *models.Post) error {
		if p.LikedBy(userID) {
			return ErrAlreadyLiked
		}
		p.Likes = append([]models.Like{{UserID: userID}}, p.Likes...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p.Likes, nil
}

// UnlikePost removes userID from the post's likes.
func (s *PostService) UnlikePost(ctx context.Context, postID, userID string) ([]models.Like, error) {
	p, err := s.modify(ctx, postID, func(p *models.Post) error {
		if !p.LikedBy(userID) {
			return ErrNotLiked
		}
		kept := make([]models.Like, 0, len(p.Likes))
		for _, like := range p.Likes {
			if like.UserID != userID {
				kept = append(kept, like)
			}
		}
		p.Likes = kept
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p.Likes, nil
}

// AddComment prepends comment to the post's comments.
func (s *PostService) AddComment(ctx context.Context, postID string, comment models.Comment) ([]models.Comment, error) {
	comment.ID = uuid.New().String()
	comment.CreatedAt = time.Now().UTC()

	p, err := s.modify(ctx, postID, func(p *models.Post) error {
		p.Comments = append([]models.Comment{comment}, p.Comments...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p.Comments, nil
}

// RemoveComment deletes commentID if userID wrote it.
func (s *PostService) RemoveComment(ctx context.Context, postID, commentID, userID string) ([]models.Comment, error) {
	p, err := s.modify(ctx, postID, func(p *models.Post) error {
		idx := -1
		for i, c := range p.Comments {
			if c.ID == commentID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrCommentNotFound
		}
		if p.Comments[idx].UserID != userID {
			return ErrNotCommentAuthor
		}
		p.Comments = append(p.Comments[:idx:idx], p.Comments[idx+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p.Comments, nil
}

// modify loads a post, applies fn and writes likes and comments back.
func (s *PostService) modify(ctx context.Context, postID string, fn func(p *models.Post) error) (models.Post, error) {
	p, err := s.GetPostByID(ctx, postID)
	if err != nil {
		return models.Post{}, err
	}
	if err := fn(&p); err != nil {
		return models.Post{}, err
	}
	p.PrepareForSave()

	_, err = s.db.ExecContext(ctx, "UPDATE posts SET likes_json = ?, comments_json = ? WHERE id = ?",
		p.LikesJSON, p.CommentsJSON, p.ID)
	if err != nil {
		return models.Post{}, fmt.Errorf("failed to update post %s: %w", p.ID, err)
	}
	return p, nil
}

// CountOrphanedPosts counts posts whose author no longer exists.
func (s *PostService) CountOrphanedPosts(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM posts p WHERE NOT EXISTS (SELECT 1 FROM users u WHERE u.id = p.user_id)").Scan(&n)
	return n, err
}
