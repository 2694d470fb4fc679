package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huangang/collabhub/internal/models"
	"github.com/huangang/collabhub/internal/store"
	"github.com/huangang/collabhub/pkg/logger"
)

const (
	DefaultAcceptAttempts = 3
	AcceptRetryBackoff    = 20 * time.Millisecond
)

// CapacityGuard performs the accept transition and the slot increment as one
// transaction. Both writes are conditional, so a stale read can never push
// slots_filled past slots_total.
type CapacityGuard struct {
	store       store.Store
	maxAttempts int
	backoff     time.Duration
}

func NewCapacityGuard(s store.Store, maxAttempts int) *CapacityGuard {
	if maxAttempts <= 0 {
		maxAttempts = DefaultAcceptAttempts
	}
	return &CapacityGuard{store: s, maxAttempts: maxAttempts, backoff: AcceptRetryBackoff}
}

// Accept moves a pending membership to accepted and consumes one slot of its project.
func (g *CapacityGuard) Accept(ctx context.Context, member *models.ProjectMember) error {
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		err := g.store.WithTx(ctx, func(tx store.Store) error {
			return acceptInTx(ctx, tx, member)
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, store.ErrConflict) {
			if errors.Is(err, ErrNotPending) || errors.Is(err, ErrCapacityExceeded) {
				return err
			}
			return storeErr(err, "accept member")
		}

		logger.Warnf("[CapacityGuard] Write conflict accepting member %s (attempt %d/%d): %v",
			member.ID, attempt, g.maxAttempts, err)
		if attempt == g.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("accept member: %w: %w", ErrTransientConflict, ctx.Err())
		case <-time.After(time.Duration(attempt) * g.backoff):
		}
	}
	return ErrTransientConflict
}

func acceptInTx(ctx context.Context, tx store.Store, member *models.ProjectMember) error {
	ok, err := tx.TransitionMembership(ctx, member.ID, models.MemberStatusPending, models.MemberStatusAccepted)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotPending
	}

	ok, err = tx.IncrementSlotsFilled(ctx, member.ProjectID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCapacityExceeded
	}
	return nil
}
