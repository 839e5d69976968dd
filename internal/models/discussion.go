package models

import (
	"synapshare/internal/apperr"
	"synapshare/internal/markdown"
)

// Discussion is a free-form post with a markdown body.
type Discussion struct {
	ContentMeta
	Body     string    `gorm:"type:text;not null" json:"content"`
	BodyHTML string    `gorm:"-" json:"contentHtml,omitempty"`
	Voters   []Vote    `gorm:"polymorphic:Content;polymorphicValue:discussion" json:"voters"`
	Comments []Comment `gorm:"polymorphic:Content;polymorphicValue:discussion" json:"comments"`
}

func (*Discussion) Kind() string { return KindDiscussion }

func (d *Discussion) Apply(f ContentForm) {
	if f.Title != "" {
		d.Title = f.Title
	}
	if f.Body != "" {
		d.Body = f.Body
	}
}

func (d *Discussion) Validate() error {
	if d.Title == "" || d.Body == "" {
		return apperr.Validation("Title and content are required")
	}
	return nil
}

func (d *Discussion) Searchable() string { return d.Title + " " + d.Body }

func (d *Discussion) Render() {
	d.BodyHTML = markdown.Render(d.Body)
	if d.Voters == nil {
		d.Voters = []Vote{}
	}
	if d.Comments == nil {
		d.Comments = []Comment{}
	}
}
