package models

import (
	"synapshare/internal/apperr"
	"synapshare/internal/markdown"
)

// Node is a knowledge node: a described concept, optionally with a code
// snippet attached.
type Node struct {
	ContentMeta
	Description     string    `gorm:"type:text;not null" json:"description"`
	DescriptionHTML string    `gorm:"-" json:"descriptionHtml,omitempty"`
	CodeSnippet     string    `gorm:"type:text" json:"codeSnippet,omitempty"`
	Voters          []Vote    `gorm:"polymorphic:Content;polymorphicValue:node" json:"voters"`
	Comments        []Comment `gorm:"polymorphic:Content;polymorphicValue:node" json:"comments"`
}

func (*Node) Kind() string { return KindNode }

func (n *Node) Apply(f ContentForm) {
	if f.Title != "" {
		n.Title = f.Title
	}
	if f.Description != "" {
		n.Description = f.Description
	}
	if f.CodeSnippet != "" {
		n.CodeSnippet = f.CodeSnippet
	}
}

func (n *Node) Validate() error {
	if n.Title == "" || n.Description == "" {
		return apperr.Validation("Title and description are required")
	}
	return nil
}

func (n *Node) Searchable() string { return n.Title + " " + n.Description }

func (n *Node) Render() {
	n.DescriptionHTML = markdown.Render(n.Description)
	if n.Voters == nil {
		n.Voters = []Vote{}
	}
	if n.Comments == nil {
		n.Comments = []Comment{}
	}
}
