package model

import "time"

const (
	MaxPostContentLength = 1000
	MaxPostTags          = 20
)

// Post is immutable after creation except for the two reaction counters,
// which are a cache of the rows in post_reactions.
type Post struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)"`
	Content       string    `gorm:"type:text;not null"`
	Author        string    `gorm:"type:varchar(30);not null;index:idx_post_author_created,priority:1"`
	Tags          []string  `gorm:"type:text;serializer:json"`
	CreatedAt     time.Time `gorm:"not null;index:idx_post_author_created,priority:2"`
	LikesCount    int64     `gorm:"not null;default:0"`
	DislikesCount int64     `gorm:"not null;default:0"`
}

func (Post) TableName() string { return "posts" }
