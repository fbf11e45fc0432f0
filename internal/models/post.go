package models

import (
	"time"
)

type Post struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Slug        string     `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Excerpt     *string    `gorm:"type:text" json:"excerpt"`
	Published   bool       `gorm:"not null;default:false;index" json:"published"`
	PublishedAt *time.Time `gorm:"index" json:"publishedAt"`
	AuthorID    uint       `gorm:"not null;index" json:"authorId"`
	Author      User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (p *Post) OwnerID() uint {
	return p.AuthorID
}

// PostCategory is the join row between a post and one of its categories.
// Position keeps the order the author supplied the category ids in.
type PostCategory struct {
	PostID     uint `gorm:"primaryKey;autoIncrement:false"`
	CategoryID uint `gorm:"primaryKey;autoIncrement:false;index"`
	Position   int  `gorm:"not null;default:0"`
}

func (PostCategory) TableName() string {
	return "post_categories"
}

// AuthorSummary is the slice of the author's profile shown next to a post.
type AuthorSummary struct {
	ID     uint    `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
	Bio    *string `json:"bio,omitempty"`
}

// PostView is a post annotated with its author and categories.
type PostView struct {
	Post
	AuthorName string         `json:"authorName,omitempty"`
	Author     *AuthorSummary `json:"author,omitempty"`
	Categories []Category     `json:"categories"`
}

// PostDetail adds the rendered body and reading statistics to a PostView.
type PostDetail struct {
	PostView
	ContentHTML string `json:"contentHtml"`
	WordCount   int    `json:"wordCount"`
	ReadingTime int    `json:"readingTime"` // minutes
}
