package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/stepx/internal/library"
	"github.com/desertthunder/stepx/internal/models"
	"github.com/desertthunder/stepx/internal/services"
	"github.com/desertthunder/stepx/internal/shared"
)

// SessionState is the sign-in lifecycle phase.
type SessionState int

const (
	StateSignedOut SessionState = iota
	StateSigningIn
	StateSignedIn
)

func (s SessionState) String() string {
	switch s {
	case StateSigningIn:
		return "signing_in"
	case StateSignedIn:
		return "signed_in"
	default:
		return "signed_out"
	}
}

// pushTimeout bounds the background document push fired after each mutation.
const pushTimeout = 30 * time.Second

// SessionManager owns the sign-in lifecycle and mirrors the collection store
// against the remote per-user document.
//
// On sign-in the remote document replaces local state wholesale (a missing
// document is seeded from local state instead). While signed in, every store
// mutation triggers a background whole-document push. Writes are last-writer-
// wins; the revision counter and client ID only make a lost update visible in
// the logs.
type SessionManager struct {
	profile services.ProfileStore
	store   *library.Store
	logger  *log.Logger

	// clientID identifies this process in pushed documents.
	clientID string

	mu          sync.Mutex
	state       SessionState
	revision    int64
	userProfile *models.Profile
	suppress    bool

	pushes sync.WaitGroup
}

// NewSessionManager wires a manager to the profile store and collection store.
// It subscribes to identity changes, so constructing the manager after the
// profile service restored a cached session immediately triggers a pull.
func NewSessionManager(profile services.ProfileStore, store *library.Store, logger *log.Logger) *SessionManager {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	m := &SessionManager{
		profile:  profile,
		store:    store,
		logger:   logger,
		clientID: shared.GenerateID(),
	}

	store.OnSave(m.onCollectionsSaved)
	profile.Subscribe(m.onIdentity)
	return m
}

// State returns the current lifecycle phase.
func (m *SessionManager) State() SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Identity returns the active identity, or nil when signed out.
func (m *SessionManager) Identity() *models.Identity {
	return m.profile.Identity()
}

// Profile returns the signed-in user's profile, or nil when none is set.
func (m *SessionManager) Profile() *models.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.userProfile == nil {
		return nil
	}
	copied := *m.userProfile
	return &copied
}

// Revision returns the revision of the last document adopted or pushed,
// or zero when nothing has synced yet.
func (m *SessionManager) Revision() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revision
}

// SignIn authenticates and pulls the remote document before returning.
func (m *SessionManager) SignIn(ctx context.Context, email, password string) error {
	_, err := m.profile.SignIn(ctx, email, password)
	return err
}

// SignUp creates an account; the new user's document is seeded from local state.
func (m *SessionManager) SignUp(ctx context.Context, email, password string) error {
	_, err := m.profile.SignUp(ctx, email, password)
	return err
}

// SignOut ends the session after waiting for in-flight pushes to settle.
// Local collections are kept as-is and keep persisting locally.
func (m *SessionManager) SignOut() {
	m.pushes.Wait()
	m.profile.SignOut()
}

// Wait blocks until in-flight background pushes complete. Called at shutdown.
func (m *SessionManager) Wait() {
	m.pushes.Wait()
}

// UpdateProfile stores the profile and pushes the document immediately.
func (m *SessionManager) UpdateProfile(ctx context.Context, p models.Profile) error {
	m.mu.Lock()
	if m.state != StateSignedIn {
		m.mu.Unlock()
		return shared.ErrNotAuthenticated
	}
	m.userProfile = &p
	m.mu.Unlock()

	return m.Push(ctx, nil)
}

// Push writes the current local state to the remote document synchronously.
func (m *SessionManager) Push(ctx context.Context, progress chan<- ProgressUpdate) error {
	m.mu.Lock()
	if m.state != StateSignedIn {
		m.mu.Unlock()
		return shared.ErrNotAuthenticated
	}
	m.revision++
	doc := m.documentLocked(m.store.Snapshot())
	m.mu.Unlock()

	m.send(progress, pushDocumentUpdate(doc.Revision))
	return m.putDocument(ctx, doc)
}

// Pull refetches the remote document and adopts it, discarding local state.
func (m *SessionManager) Pull(ctx context.Context, progress chan<- ProgressUpdate) error {
	m.mu.Lock()
	if m.state != StateSignedIn {
		m.mu.Unlock()
		return shared.ErrNotAuthenticated
	}
	m.mu.Unlock()

	m.send(progress, pullDocumentUpdate(1, 1))
	return m.adoptRemote(ctx)
}

// onIdentity handles identity transitions from the profile service.
func (m *SessionManager) onIdentity(identity *models.Identity) {
	if identity == nil {
		m.mu.Lock()
		m.state = StateSignedOut
		m.revision = 0
		m.userProfile = nil
		m.mu.Unlock()
		m.logger.Info("signed out")
		return
	}

	m.mu.Lock()
	m.state = StateSigningIn
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()

	if err := m.adoptRemote(ctx); err != nil {
		// Local state stays authoritative until the next successful pull.
		m.logger.Warn("document pull failed, keeping local collections", "err", err)
	}

	m.mu.Lock()
	m.state = StateSignedIn
	m.mu.Unlock()
	m.logger.Info("signed in", "user", identity.UserID)
}

// adoptRemote pulls the remote document and replaces local state with it. A
// missing document is seeded from local state at revision 1 instead.
func (m *SessionManager) adoptRemote(ctx context.Context) error {
	doc, err := m.profile.GetDocument(ctx)
	if errors.Is(err, shared.ErrDocumentNotFound) {
		return m.seedRemote(ctx)
	}
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.suppress = true
	m.mu.Unlock()

	m.store.Adopt(doc.Collections)

	m.mu.Lock()
	m.suppress = false
	m.revision = doc.Revision
	m.userProfile = doc.Profile
	m.mu.Unlock()

	m.logger.Debug("adopted remote document", "revision", doc.Revision)
	return nil
}

// seedRemote creates the user's first document from local state.
func (m *SessionManager) seedRemote(ctx context.Context) error {
	m.mu.Lock()
	m.revision = 1
	doc := m.documentLocked(m.store.Snapshot())
	m.mu.Unlock()

	if err := m.putDocument(ctx, doc); err != nil {
		return fmt.Errorf("failed to seed document: %w", err)
	}

	m.logger.Debug("seeded remote document from local collections")
	return nil
}

// onCollectionsSaved is the store hook: while signed in, every mutation pushes
// the whole document in the background. Push failures are logged, never
// surfaced; the local mutation already stands.
func (m *SessionManager) onCollectionsSaved(set models.CollectionSet) error {
	m.mu.Lock()
	if m.state != StateSignedIn || m.suppress {
		m.mu.Unlock()
		return nil
	}
	m.revision++
	doc := m.documentLocked(set)
	m.mu.Unlock()

	m.pushes.Add(1)
	go func() {
		defer m.pushes.Done()

		ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		defer cancel()

		if err := m.putDocument(ctx, doc); err != nil {
			m.logger.Warn("document push failed", "revision", doc.Revision, "err", err)
		}
	}()
	return nil
}

// documentLocked builds the push payload. Caller holds m.mu.
func (m *SessionManager) documentLocked(set models.CollectionSet) *models.SyncDocument {
	return &models.SyncDocument{
		Collections: set,
		Profile:     m.userProfile,
		Revision:    m.revision,
		ClientID:    m.clientID,
		UpdatedAt:   time.Now().UTC(),
	}
}

// putDocument writes the document, first logging when the write is about to
// clobber a newer revision pushed by another client. The local revision is
// bumped past the remote one so the counter stays monotonic across clients.
func (m *SessionManager) putDocument(ctx context.Context, doc *models.SyncDocument) error {
	if remote, err := m.profile.GetDocument(ctx); err == nil {
		if remote.Revision >= doc.Revision && remote.ClientID != m.clientID {
			m.logger.Warn("overwriting newer remote document",
				"remoteRevision", remote.Revision, "localRevision", doc.Revision)
		}
		if remote.Revision >= doc.Revision {
			doc.Revision = remote.Revision + 1

			m.mu.Lock()
			if doc.Revision > m.revision {
				m.revision = doc.Revision
			}
			m.mu.Unlock()
		}
	}

	return m.profile.PutDocument(ctx, doc)
}

func (m *SessionManager) send(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
