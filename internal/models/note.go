package models

import (
	"synapshare/internal/apperr"
)

// Note is a study note: a title plus a subject line, usually with an
// attached file.
type Note struct {
	ContentMeta
	Subject  string    `gorm:"type:text;not null" json:"subject"`
	Voters   []Vote    `gorm:"polymorphic:Content;polymorphicValue:note" json:"voters"`
	Comments []Comment `gorm:"polymorphic:Content;polymorphicValue:note" json:"comments"`
}

func (*Note) Kind() string { return KindNote }

func (n *Note) Apply(f ContentForm) {
	if f.Title != "" {
		n.Title = f.Title
	}
	if f.Subject != "" {
		n.Subject = f.Subject
	}
}

func (n *Note) Validate() error {
	if n.Title == "" || n.Subject == "" {
		return apperr.Validation("Title and subject are required")
	}
	return nil
}

func (n *Note) Searchable() string { return n.Title + " " + n.Subject }

func (n *Note) Render() {
	if n.Voters == nil {
		n.Voters = []Vote{}
	}
	if n.Comments == nil {
		n.Comments = []Comment{}
	}
}
