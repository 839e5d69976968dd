package models

import (
	"time"
)

// Vote kinds.
const (
	VoteUp   = "upvote"
	VoteDown = "downvote"
)

func ValidVoteKind(k string) bool {
	return k == VoteUp || k == VoteDown
}

// Vote is one entry in a content item's voter ledger. The unique index keeps
// at most one row per (content, voter) pair, which is what makes the vote
// engine's insert/flip/delete transitions safe to retry.
type Vote struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	ContentType string    `gorm:"size:16;not null;uniqueIndex:idx_content_voter" json:"-"`
	ContentID   uint      `gorm:"not null;uniqueIndex:idx_content_voter" json:"-"`
	Username    string    `gorm:"size:64;not null;uniqueIndex:idx_content_voter" json:"username"`
	Kind        string    `gorm:"size:8;not null" json:"voteType"`
	CreatedAt   time.Time `json:"-"`
}
