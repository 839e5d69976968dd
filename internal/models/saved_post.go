package models

import (
	"time"
)

// SavedPost is a bookmark: a weak reference from a user to a content item.
// It is not cleaned up when the target is deleted. The unique index rejects
// saving the same item twice.
type SavedPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserEmail string    `gorm:"size:255;not null;index;uniqueIndex:idx_saved_owner_post" json:"userEmail"`
	PostType  string    `gorm:"size:16;not null;uniqueIndex:idx_saved_owner_post" json:"postType"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_saved_owner_post" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}
