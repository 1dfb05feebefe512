package models

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Post represents a blog post. Content holds the Markdown source.
type Post struct {
	ID            string    `json:"id" db:"id" gorm:"type:text;primaryKey;not null"`
	Title         string    `json:"title" db:"title" gorm:"type:text;not null"`
	Subtitle      *string   `json:"subtitle" db:"subtitle" gorm:"type:text"`
	Content       string    `json:"content" db:"content" gorm:"type:text;not null"`
	Excerpt       string    `json:"excerpt" db:"excerpt" gorm:"type:text;not null"`
	Category      string    `json:"category" db:"category" gorm:"type:text;not null"`
	FeaturedImage *string   `json:"featuredImage" db:"featured_image" gorm:"type:text"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at" gorm:"not null;autoCreateTime:false;index:idx_post_created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at" gorm:"not null;autoUpdateTime:false"`
}

var notBlank = validation.NewStringRule(func(s string) bool {
	return strings.TrimSpace(s) != ""
}, "cannot be blank")

// PostInput is the body accepted when creating a post.
type PostInput struct {
	Title         string  `json:"title"`
	Subtitle      *string `json:"subtitle"`
	Content       string  `json:"content"`
	Excerpt       string  `json:"excerpt"`
	Category      string  `json:"category"`
	FeaturedImage *string `json:"featuredImage"`
}

// Normalize maps empty optional fields to nil. Everything else is kept exactly as sent.
func (in *PostInput) Normalize() {
	in.Subtitle = optional(in.Subtitle)
	in.FeaturedImage = optional(in.FeaturedImage)
}

func (in PostInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, notBlank, validation.RuneLength(1, 200)),
		validation.Field(&in.Subtitle, validation.RuneLength(0, 300)),
		validation.Field(&in.Content, validation.Required, notBlank),
		validation.Field(&in.Excerpt, notBlank, validation.RuneLength(0, 500)),
		validation.Field(&in.Category, validation.Required, notBlank, validation.RuneLength(1, 100)),
		validation.Field(&in.FeaturedImage, is.URL),
	)
}

// ToPost builds the record to hand to the store. Identity and timestamps are left for the store.
func (in PostInput) ToPost() *Post {
	return &Post{
		Title:         in.Title,
		Subtitle:      optional(in.Subtitle),
		Content:       in.Content,
		Excerpt:       in.Excerpt,
		Category:      in.Category,
		FeaturedImage: optional(in.FeaturedImage),
	}
}

// PostPatch is a partial update. Nil fields are left untouched.
type PostPatch struct {
	Title         *string `json:"title"`
	Subtitle      *string `json:"subtitle"`
	Content       *string `json:"content"`
	Excerpt       *string `json:"excerpt"`
	Category      *string `json:"category"`
	FeaturedImage *string `json:"featuredImage"`
}

func (p PostPatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.NilOrNotEmpty, notBlank, validation.RuneLength(1, 200)),
		validation.Field(&p.Subtitle, validation.RuneLength(0, 300)),
		validation.Field(&p.Content, validation.NilOrNotEmpty, notBlank),
		validation.Field(&p.Excerpt, validation.NilOrNotEmpty, notBlank, validation.RuneLength(1, 500)),
		validation.Field(&p.Category, validation.NilOrNotEmpty, notBlank, validation.RuneLength(1, 100)),
		validation.Field(&p.FeaturedImage, is.URL),
	)
}

// Apply merges the supplied fields over post. An empty subtitle or featured image clears it.
func (p PostPatch) Apply(post *Post) {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Subtitle != nil {
		post.Subtitle = optional(p.Subtitle)
	}
	if p.Content != nil {
		post.Content = *p.Content
	}
	if p.Excerpt != nil {
		post.Excerpt = *p.Excerpt
	}
	if p.Category != nil {
		post.Category = *p.Category
	}
	if p.FeaturedImage != nil {
		post.FeaturedImage = optional(p.FeaturedImage)
	}
}

// Clone returns a deep copy so callers never share optional field storage with the store.
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	c := *p
	c.Subtitle = copyString(p.Subtitle)
	c.FeaturedImage = copyString(p.FeaturedImage)
	return &c
}

// optional maps nil and the empty string to nil and copies anything else.
func optional(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return copyString(s)
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
