package models

import (
	"time"
)

// Content type tags, shared by the vote ledger, comments and saved posts.
const (
	KindNote       = "note"
	KindDiscussion = "discussion"
	KindNode       = "node"
)

func ValidPostType(t string) bool {
	return t == KindNote || t == KindDiscussion || t == KindNode
}

// ContentMeta carries everything the three content types have in common:
// identity, authorship, the derived search text and the vote tallies. The
// tallies are maintained by the vote engine and always match the ledger.
type ContentMeta struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Author     string    `gorm:"size:64;not null;index" json:"author"`
	FileURL    string    `json:"fileUrl,omitempty"`
	SearchText string    `gorm:"type:text" json:"-"`
	Upvotes    int       `gorm:"not null;default:0" json:"upvotes"`
	Downvotes  int       `gorm:"not null;default:0" json:"downvotes"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (m *ContentMeta) Meta() *ContentMeta { return m }

// ContentForm is the union of the multipart fields a client may submit when
// creating or updating any content type. Each model picks the fields it
// understands; empty fields leave the stored value untouched.
type ContentForm struct {
	Title       string
	Subject     string
	Body        string
	Description string
	CodeSnippet string
}
