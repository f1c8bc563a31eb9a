package models

import (
	"encoding/json"
	"time"
)

// Post is a text entry written by a user. Name and Avatar are copied from the
// author when the post is created.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"date"`

	LikesJSON    string `json:"-"`
	CommentsJSON string `json:"-"`

	Likes    []Like    `json:"likes"`
	Comments []Comment `json:"comments"`
}

// Like records that a user liked a post.
type Like struct {
	UserID string `json:"user"`
}

// Comment is a reply attached to a post.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"date"`
}

// LikedBy reports whether userID already liked the post.
func (p *Post) LikedBy(userID string) bool {
	for _, like := range p.Likes {
		if like.UserID == userID {
			return true
		}
	}
	return false
}

// PrepareForSave marshals likes and comments into their JSON columns.
func (p *Post) PrepareForSave() {
	if p.Likes == nil {
		p.Likes = []Like{}
	}
	if p.Comments == nil {
		p.Comments = []Comment{}
	}

	likesBytes, _ := json.Marshal(p.Likes)
	p.LikesJSON = string(likesBytes)

	commentsBytes, _ := json.Marshal(p.Comments)
	p.CommentsJSON = string(commentsBytes)
}

// PrepareForAPI unmarshals the JSON columns into likes and comments.
func (p *Post) PrepareForAPI() error {
	if p.LikesJSON != "" {
		if err := json.Unmarshal([]byte(p.LikesJSON), &p.Likes); err != nil {
			return err
		}
	}
	if p.CommentsJSON != "" {
		if err := json.Unmarshal([]byte(p.CommentsJSON), &p.Comments); err != nil {
			return err
		}
	}
	if p.Likes == nil {
		p.Likes = []Like{}
	}
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
	return nil
}
