// Package users owns the local user records backing the external identity
// provider: lazy creation on first verified request and the one-time
// username claim.
package users

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"synapshare/internal/apperr"
	"synapshare/internal/models"
)

type Store struct {
	db *gorm.DB
}

func NewStore(database *gorm.DB) *Store {
	return &Store{db: database}
}

// Ensure returns the user record for a verified identity, creating it on
// first sight. Records are only ever created through this path.
func (s *Store) Ensure(ctx context.Context, uid, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where(models.User{UID: uid}).
		Attrs(models.User{Email: email}).
		FirstOrCreate(&user).Error
	if err != nil {
		// Two first requests can race the insert; the unique index on uid
		// picks a winner, the loser re-reads.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.ByUID(ctx, uid)
		}
		return nil, apperr.Wrap(apperr.KindStore, "Failed to load user", err)
	}
	return &user, nil
}

func (s *Store) ByUID(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("uid = ?", uid).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "Failed to fetch user", err)
	}
	return &user, nil
}

func (s *Store) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "Failed to fetch user", err)
	}
	return &user, nil
}

// UsernameTaken reports whether any user has claimed the name.
func (s *Store) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", username).Count(&n).Error
	if err != nil {
		return false, apperr.Wrap(apperr.KindStore, "Failed to check username", err)
	}
	return n > 0, nil
}

// ClaimUsername sets a user's display name exactly once. A second claim by
// the same user, or a name already held by anyone, is a conflict. The unique
// index on username backstops the in-transaction check.
func (s *Store) ClaimUsername(ctx context.Context, uid, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperr.Validation("Username is required")
	}

	var user models.User
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.Where("uid = ?", uid).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("User not found")
			}
			return err
		}
		if user.Username != nil {
			return apperr.Conflict("User already has a username")
		}
		var n int64
		if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return apperr.Conflict("Username already taken")
		}
		user.Username = &username
		return tx.Model(&user).Update("username", username).Error
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Username already taken")
		}
		var e *apperr.Error
		if errors.As(txErr, &e) {
			return nil, txErr
		}
		return nil, apperr.Wrap(apperr.KindStore, "Failed to save username", txErr)
	}
	return &user, nil
}

func (s *Store) List(ctx context.Context) ([]models.User, error) {
	all := []models.User{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&all).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindStore, "Failed to fetch users", err)
	}
	return all, nil
}

// Delete removes a user record by provider uid. Content the user authored
// stays; authorship is a plain string, not a foreign key.
func (s *Store) Delete(ctx context.Context, uid string) error {
	res := s.db.WithContext(ctx).Where("uid = ?", uid).Delete(&models.User{})
	if res.Error != nil {
		return apperr.Wrap(apperr.KindStore, "Failed to delete user", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("User not found")
	}
	return nil
}
