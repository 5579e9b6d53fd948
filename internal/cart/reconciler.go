package cart

import (
	"context"
	"fmt"

	"github.com/shopvue/storefront/pkg/commerce"
	pkgerrors "github.com/shopvue/storefront/pkg/errors"
	"github.com/shopvue/storefront/pkg/logger"
	"github.com/shopvue/storefront/pkg/session"
	"github.com/shopvue/storefront/pkg/store/models"
	"go.uber.org/multierr"
)

// ReconcileStatus describes how far a reconciliation run got.
type ReconcileStatus string

const (
	// ReconcileComplete means the server-side cart now mirrors the local cart.
	ReconcileComplete ReconcileStatus = "complete"
	// ReconcilePartial means at least one remote call failed. The local cart is
	// untouched and checkout may proceed on local state.
	ReconcilePartial ReconcileStatus = "partial"
	// ReconcileSkipped means there was no authenticated remote session to
	// reconcile against.
	ReconcileSkipped ReconcileStatus = "skipped"
)

// ReconcileResult reports the outcome of one reconciliation run.
type ReconcileResult struct {
	Status           ReconcileStatus `json:"status"`
	FailedProductIDs []string        `json:"failed_product_ids,omitempty"`
}

type remoteCart interface {
	FetchCart(ctx context.Context, token string) ([]commerce.RemoteCartEntry, error)
	AddCartEntry(ctx context.Context, token, productID string, quantity int) error
	UpdateCartEntry(ctx context.Context, token string, entryID int64, quantity int) error
	RemoveCartEntry(ctx context.Context, token string, entryID int64) error
}

// Reconciler pushes the local cart onto the shopper's server-side cart. The
// local cart is authoritative: remote lines are updated, created, or removed
// to match it, and local state is never modified.
type Reconciler struct {
	remote remoteCart
	logg   *logger.Logger
}

// NewReconciler builds a reconciler over the remote cart API.
func NewReconciler(remote remoteCart, logg *logger.Logger) (*Reconciler, error) {
	if remote == nil {
		return nil, fmt.Errorf("remote cart client required")
	}
	return &Reconciler{remote: remote, logg: logg}, nil
}

// Reconcile mirrors the local lines onto the remote cart. Each remote call
// fails soft: a failed product is recorded and the run continues, so one bad
// line never blocks checkout. A product the remote no longer knows is skipped
// without being counted as a failure. When the remote cart cannot be fetched
// the remote set is treated as empty and every local line is pushed as an
// add; the run is reported partial and no removals are attempted, since the
// true remote contents are unknown.
func (r *Reconciler) Reconcile(ctx context.Context, lines []models.CartLine, id session.Identity) (ReconcileResult, error) {
	if !id.Authenticated || id.RemoteToken == "" {
		return ReconcileResult{Status: ReconcileSkipped}, nil
	}

	remoteEntries, fetchErr := r.remote.FetchCart(ctx, id.RemoteToken)
	if fetchErr != nil {
		r.warn(ctx, "remote cart fetch failed, merging additively", fetchErr)
		remoteEntries = nil
	}

	remoteByProduct := make(map[string]commerce.RemoteCartEntry, len(remoteEntries))
	for _, entry := range remoteEntries {
		remoteByProduct[entry.ProductID] = entry
	}

	result := ReconcileResult{Status: ReconcileComplete}
	var errs error
	if fetchErr != nil {
		result.Status = ReconcilePartial
		errs = multierr.Append(errs, fetchErr)
	}

	localProducts := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		localProducts[line.ProductID] = struct{}{}

		entry, exists := remoteByProduct[line.ProductID]
		var opErr error
		switch {
		case exists && entry.Quantity == line.Quantity:
			continue
		case exists:
			opErr = r.remote.UpdateCartEntry(ctx, id.RemoteToken, entry.ID, line.Quantity)
		default:
			opErr = r.remote.AddCartEntry(ctx, id.RemoteToken, line.ProductID, line.Quantity)
		}

		if opErr == nil {
			continue
		}
		if isNotFound(opErr) {
			continue
		}
		r.warn(ctx, fmt.Sprintf("reconcile failed for product %s", line.ProductID), opErr)
		result.FailedProductIDs = append(result.FailedProductIDs, line.ProductID)
		errs = multierr.Append(errs, opErr)
	}

	// Remote lines with no local counterpart are stale and get removed. The
	// pass only runs on a fresh fetch: after a fetch failure there is nothing
	// trustworthy to diff against.
	if fetchErr == nil {
		for _, entry := range remoteEntries {
			if _, kept := localProducts[entry.ProductID]; kept {
				continue
			}
			if opErr := r.remote.RemoveCartEntry(ctx, id.RemoteToken, entry.ID); opErr != nil && !isNotFound(opErr) {
				r.warn(ctx, fmt.Sprintf("reconcile failed removing product %s", entry.ProductID), opErr)
				result.FailedProductIDs = append(result.FailedProductIDs, entry.ProductID)
				errs = multierr.Append(errs, opErr)
			}
		}
	}

	if len(result.FailedProductIDs) > 0 {
		result.Status = ReconcilePartial
	}
	return result, errs
}

func (r *Reconciler) warn(ctx context.Context, msg string, err error) {
	if r.logg == nil {
		return
	}
	r.logg.Warn(ctx, fmt.Sprintf("%s: %v", msg, err))
}

func isNotFound(err error) bool {
	typed := pkgerrors.As(err)
	return typed != nil && typed.Code() == pkgerrors.CodeNotFound
}
