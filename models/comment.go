package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Comment is a reader comment on a post. PostID is not checked against existing posts.
type Comment struct {
	ID        string    `json:"id" db:"id" gorm:"type:text;primaryKey;not null"`
	PostID    string    `json:"postId" db:"post_id" gorm:"type:text;not null;index:idx_comment_post_id"`
	Author    string    `json:"author" db:"author" gorm:"type:text;not null"`
	Email     string    `json:"email" db:"email" gorm:"type:text;not null"`
	Content   string    `json:"content" db:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"not null;autoCreateTime:false"`
}

// CommentInput is the body accepted when commenting. PostID is taken from the request path.
type CommentInput struct {
	PostID  string `json:"postId"`
	Author  string `json:"author"`
	Email   string `json:"email"`
	Content string `json:"content"`
}

func (in CommentInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.PostID, validation.Required),
		validation.Field(&in.Author, validation.Required, notBlank, validation.RuneLength(1, 100)),
		validation.Field(&in.Email, validation.Required, is.EmailFormat),
		validation.Field(&in.Content, validation.Required, notBlank, validation.RuneLength(1, 5000)),
	)
}

func (in CommentInput) ToComment() *Comment {
	return &Comment{
		PostID:  in.PostID,
		Author:  in.Author,
		Email:   in.Email,
		Content: in.Content,
	}
}
