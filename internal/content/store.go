// Package content implements the one votable-content capability shared by
// notes, discussions and nodes: CRUD with derived search text, the
// toggle/switch vote engine, append-only comments and substring search.
package content

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"synapshare/internal/apperr"
	"synapshare/internal/models"
)

// Item is the capability a content model must provide to be served by a
// Store. All three models satisfy it via pointer receivers.
type Item[T any] interface {
	*T
	Meta() *models.ContentMeta
	Kind() string
	Apply(models.ContentForm)
	Validate() error
	Searchable() string
	Render()
}

// Store is a content collection over one model type. It owns the item rows
// plus their ledger and comment rows; nothing else writes those.
type Store[T any, P Item[T]] struct {
	db *gorm.DB
}

func NewStore[T any, P Item[T]](database *gorm.DB) *Store[T, P] {
	return &Store[T, P]{db: database}
}

// Kind is the collection's content type tag ("note", "discussion", "node").
func (s *Store[T, P]) Kind() string {
	var zero T
	return P(&zero).Kind()
}

// Label is the capitalized kind, for client-facing messages.
func (s *Store[T, P]) Label() string {
	k := s.Kind()
	return strings.ToUpper(k[:1]) + k[1:]
}

func (s *Store[T, P]) kind() string { return s.Kind() }

func (s *Store[T, P]) notFound() error {
	return apperr.NotFound(s.Label() + " not found")
}

func (s *Store[T, P]) storeErr(op string, err error) error {
	return apperr.Wrap(apperr.KindStore, "Failed to "+op+" "+s.kind(), err)
}

func (s *Store[T, P]) withAssociations(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Voters").Preload("Comments")
}

// List returns every item, newest first, with ledger and comments attached.
// An empty collection is an empty slice, never nil; clients see [].
func (s *Store[T, P]) List(ctx context.Context) ([]T, error) {
	items := []T{}
	if err := s.withAssociations(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, s.storeErr("fetch", err)
	}
	return items, nil
}

func (s *Store[T, P]) Get(ctx context.Context, id uint) (P, error) {
	item := P(new(T))
	if err := s.withAssociations(ctx).First(item, id).Error; err != nil {
		var zero P
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, s.notFound()
		}
		return zero, s.storeErr("fetch", err)
	}
	return item, nil
}

// Create validates the item, derives its search text and persists it with
// zero tallies and empty ledger.
func (s *Store[T, P]) Create(ctx context.Context, item P) error {
	if err := item.Validate(); err != nil {
		return err
	}
	item.Meta().SearchText = item.Searchable()
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return s.storeErr("save", err)
	}
	return nil
}

// Update persists mutated payload fields and recomputes the search text.
// Ledger and comments are never written through this path.
func (s *Store[T, P]) Update(ctx context.Context, item P) error {
	item.Meta().SearchText = item.Searchable()
	if err := s.db.WithContext(ctx).Omit("Voters", "Comments").Save(item).Error; err != nil {
		return s.storeErr("update", err)
	}
	return nil
}

// Delete removes the item together with its ledger and comment rows, and
// returns the removed item so the caller can clean up an attached file.
func (s *Store[T, P]) Delete(ctx context.Context, id uint) (P, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		var zero P
		return zero, err
	}
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("content_type = ? AND content_id = ?", s.kind(), id).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("content_type = ? AND content_id = ?", s.kind(), id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(P(new(T)), id).Error
	})
	if txErr != nil {
		var zero P
		return zero, s.storeErr("delete", txErr)
	}
	return item, nil
}

// ApplyVote runs one vote transition for (item, voter): no ledger entry
// inserts one, a same-kind entry toggles off, an opposite-kind entry
// switches. The whole transition runs in a transaction that locks the item
// row, and both tallies are recounted from the ledger before commit, so the
// invariant cannot drift under concurrent votes.
func (s *Store[T, P]) ApplyVote(ctx context.Context, id uint, username, kind string) (P, error) {
	var zero P
	if !models.ValidVoteKind(kind) {
		return zero, apperr.Validation("Invalid vote type")
	}
	if username == "" {
		return zero, apperr.NameRequired("Please set a username")
	}

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item := P(new(T))
		q := tx
		if tx.Dialector.Name() == "postgres" {
			// Serializes concurrent votes on the same item. Sqlite (tests)
			// has no FOR UPDATE; its writer lock covers the same ground.
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return s.notFound()
			}
			return err
		}

		var existing models.Vote
		err := tx.Where("content_type = ? AND content_id = ? AND username = ?", s.kind(), id, username).
			First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := models.Vote{ContentType: s.kind(), ContentID: id, Username: username, Kind: kind}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		case existing.Kind == kind:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		default:
			if err := tx.Model(&existing).Update("kind", kind).Error; err != nil {
				return err
			}
		}

		up, err := s.countVotes(tx, id, models.VoteUp)
		if err != nil {
			return err
		}
		down, err := s.countVotes(tx, id, models.VoteDown)
		if err != nil {
			return err
		}
		return tx.Model(item).Updates(map[string]interface{}{
			"upvotes":   up,
			"downvotes": down,
		}).Error
	})
	if txErr != nil {
		var e *apperr.Error
		if errors.As(txErr, &e) {
			return zero, txErr
		}
		return zero, s.storeErr("vote on", txErr)
	}
	return s.Get(ctx, id)
}

func (s *Store[T, P]) countVotes(tx *gorm.DB, id uint, kind string) (int64, error) {
	var n int64
	err := tx.Model(&models.Vote{}).
		Where("content_type = ? AND content_id = ? AND kind = ?", s.kind(), id, kind).
		Count(&n).Error
	return n, err
}

// AddComment appends one comment with server-assigned author and timestamp
// and returns the updated item.
func (s *Store[T, P]) AddComment(ctx context.Context, id uint, author, body string) (P, error) {
	var zero P
	if strings.TrimSpace(body) == "" {
		return zero, apperr.Validation("Comment content is required")
	}
	if err := s.db.WithContext(ctx).First(P(new(T)), id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, s.notFound()
		}
		return zero, s.storeErr("fetch", err)
	}
	comment := models.Comment{
		ContentType: s.kind(),
		ContentID:   id,
		Author:      author,
		Body:        body,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return zero, s.storeErr("comment on", err)
	}
	return s.Get(ctx, id)
}

// Search matches the query as a case-insensitive substring of the derived
// search text. An empty query matches nothing.
func (s *Store[T, P]) Search(ctx context.Context, query string) ([]T, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []T{}, nil
	}
	pattern := "%" + query + "%"
	items := []T{}
	err := s.withAssociations(ctx).
		Where("lower(search_text) LIKE lower(?)", pattern).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, s.storeErr("search", err)
	}
	return items, nil
}
