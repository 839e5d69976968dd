package models

import (
	"time"
)

// Comment is an append-only remark on a content item. Author and timestamp
// are assigned by the server, never taken from the request.
type Comment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ContentType string    `gorm:"size:16;not null;index:idx_comment_content" json:"-"`
	ContentID   uint      `gorm:"not null;index:idx_comment_content" json:"-"`
	Author      string    `gorm:"size:64;not null" json:"author"`
	Body        string    `gorm:"type:text;not null" json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
}
