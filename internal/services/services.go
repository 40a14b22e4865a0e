// Interface definitions for the external collaborators: the step-sheet
// catalog and the remote profile/document store.
package services

import (
	"context"

	"github.com/desertthunder/stepx/internal/models"
)

// Catalog defines read operations against the step-sheet catalog API.
type Catalog interface {
	// Search issues a keyed text query and returns normalized records.
	// Transport failures and non-2xx statuses are returned as errors; a
	// successful response with zero items returns an empty slice and nil error.
	Search(ctx context.Context, query string) ([]models.Dance, error)

	// GetByID fetches the extended detail record for a dance.
	GetByID(ctx context.Context, id string) (*models.Dance, error)

	// GetStepSheet fetches step-sheet content by step-sheet identifier.
	GetStepSheet(ctx context.Context, id string) ([]models.StepRow, error)

	// Name returns the catalog's display name.
	Name() string
}

// IdentityFunc receives identity-change notifications. A nil identity means
// signed out.
type IdentityFunc func(*models.Identity)

// ProfileStore defines the remote per-user document store and its
// authentication provider.
type ProfileStore interface {
	// SignUp creates an email/password account and signs in.
	SignUp(ctx context.Context, email, password string) (*models.Identity, error)

	// SignIn authenticates with email and password.
	SignIn(ctx context.Context, email, password string) (*models.Identity, error)

	// SignOut clears the active session. Subscribers are notified with nil.
	SignOut()

	// Identity returns the active identity, or nil when signed out.
	Identity() *models.Identity

	// Subscribe registers a callback for identity changes. If a session is
	// already active the callback fires immediately, mirroring a provider
	// restoring a cached credential at startup.
	Subscribe(fn IdentityFunc)

	// GetDocument reads the signed-in user's document. Returns
	// [shared.ErrDocumentNotFound] when none exists yet.
	GetDocument(ctx context.Context) (*models.SyncDocument, error)

	// PutDocument replaces the signed-in user's document wholesale.
	PutDocument(ctx context.Context, doc *models.SyncDocument) error
}
