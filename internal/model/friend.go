package model

import (
	"time"
)

// Friend is a directed edge: OwnerLogin added FriendLogin.
// The reverse edge is a separate row; removing one never touches the other.
type Friend struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	OwnerLogin  string `gorm:"type:varchar(30);not null;uniqueIndex:idx_friend_pair,priority:1;index:idx_friend_owner_created,priority:1"`
	FriendLogin string `gorm:"type:varchar(30);not null;uniqueIndex:idx_friend_pair,priority:2"`
	// idx_friend_pair = (owner_login, friend_login) keeps inserts idempotent
	CreatedAt time.Time `gorm:"not null;index:idx_friend_owner_created,priority:2"`
}

func (Friend) TableName() string { return "friends" }
