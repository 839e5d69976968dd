package models

import (
	"time"
)

// User is a local record for an identity-provider account, created lazily on
// the first verified request. Username starts unset and can be claimed
// exactly once; there is no rename path.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UID       string    `gorm:"uniqueIndex;size:128;not null" json:"uid"`
	Username  *string   `gorm:"uniqueIndex;size:64" json:"username"`
	Email     string    `gorm:"index;not null" json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// DisplayName returns the claimed username, or "" when none is set.
func (u *User) DisplayName() string {
	if u.Username != nil {
		return *u.Username
	}
	return ""
}
