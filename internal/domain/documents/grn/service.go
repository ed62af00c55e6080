package grn

import (
	"context"
	"fmt"

	"stockd/internal/core/apperror"
	"stockd/internal/core/id"
	"stockd/internal/core/tx"
	"stockd/internal/domain"
	"stockd/pkg/logger"
)

// ReceiptMatcher applies a matched note to the stock register. The
// returned flag reports whether the stock effect was applied in this
// call; false means the note did not meet the preconditions.
type ReceiptMatcher interface {
	MatchReceipt(ctx context.Context, noteID id.ID) (bool, error)
}

// Service provides business operations for goods received notes.
//
// Persisting the note and applying its stock effect are two separate
// transactions. A note whose matching fails therefore still exists,
// unprocessed, and a later save attempt picks it up again.
type Service struct {
	repo      Repository
	matcher   ReceiptMatcher
	txManager tx.Manager
}

// NewService creates a new note service.
func NewService(repo Repository, matcher ReceiptMatcher, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		matcher:   matcher,
		txManager: txManager,
	}
}

// Create persists the note, then runs receipt matching when the note
// arrived already matched.
func (s *Service) Create(ctx context.Context, n *GoodsReceivedNote) error {
	if n.Processed {
		return apperror.NewValidation("a new note cannot be processed").
			WithDetail("field", "processed")
	}
	if err := n.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, n)
	})
	if err != nil {
		return fmt.Errorf("create note: %w", err)
	}

	return s.runMatcher(ctx, n)
}

// GetByID retrieves a note.
func (s *Service) GetByID(ctx context.Context, noteID id.ID) (*GoodsReceivedNote, error) {
	return s.repo.GetByID(ctx, noteID)
}

// Update modifies a note, then runs receipt matching. The processed
// flag is owned by the matcher and cannot be changed here.
func (s *Service) Update(ctx context.Context, n *GoodsReceivedNote) error {
	if err := n.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, n.ID)
		if err != nil {
			return err
		}
		if current.Processed {
			return apperror.NewBusinessRule("processed note cannot be modified").
				WithDetail("note_id", n.ID.String())
		}
		n.Processed = current.Processed
		return s.repo.Update(ctx, n)
	})
	if err != nil {
		return err
	}

	return s.runMatcher(ctx, n)
}

// Delete removes an unprocessed note.
func (s *Service) Delete(ctx context.Context, noteID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, noteID)
		if err != nil {
			return err
		}
		if current.Processed {
			return apperror.NewBusinessRule("processed note cannot be deleted").
				WithDetail("note_id", noteID.String())
		}
		return s.repo.Delete(ctx, noteID)
	})
}

// List retrieves notes with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*GoodsReceivedNote], error) {
	filter.Normalize()
	return s.repo.List(ctx, filter)
}

func (s *Service) runMatcher(ctx context.Context, n *GoodsReceivedNote) error {
	applied, err := s.matcher.MatchReceipt(ctx, n.ID)
	if err != nil {
		return fmt.Errorf("match receipt: %w", err)
	}
	if applied {
		n.Processed = true
		logger.Info(ctx, "note processed", "note_id", n.ID,
			"purchase_order_id", n.PurchaseOrderID)
	}
	return nil
}
