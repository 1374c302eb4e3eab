package model

import "time"

type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

func (k ReactionKind) Valid() bool {
	return k == ReactionLike || k == ReactionDislike
}

// Reaction holds at most one row per (post, user); a second reaction replaces the first.
type Reaction struct {
	PostID    string       `gorm:"primaryKey;type:varchar(36)"`
	UserLogin string       `gorm:"primaryKey;type:varchar(30)"`
	Kind      ReactionKind `gorm:"column:reaction;type:varchar(8);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Reaction) TableName() string { return "post_reactions" }
