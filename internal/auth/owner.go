// Package auth resolves the acting owner of a request and guards portfolio ownership.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/tropicaldog17/folio/internal/errors"
	"github.com/tropicaldog17/folio/internal/models"
)

// DefaultOwnerHeader is the request header that names the acting owner.
const DefaultOwnerHeader = "X-Owner-ID"

type ownerKey struct{}

// WithOwner returns a copy of ctx carrying the acting owner id.
func WithOwner(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerKey{}, strings.TrimSpace(ownerID))
}

// OwnerFromContext returns the acting owner or ErrUnauthenticated.
func OwnerFromContext(ctx context.Context) (string, error) {
	owner, _ := ctx.Value(ownerKey{}).(string)
	if owner == "" {
		return "", errors.ErrUnauthenticated
	}
	return owner, nil
}

// AssertOwner fails with ErrForbidden unless actingOwner owns p.
func AssertOwner(p *models.Portfolio, actingOwner string) error {
	if actingOwner == "" {
		return errors.ErrUnauthenticated
	}
	if p == nil || p.OwnerID != actingOwner {
		return fmt.Errorf("owner %q may not modify this portfolio: %w", actingOwner, errors.ErrForbidden)
	}
	return nil
}
