// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/stepx/internal/models"
	"github.com/desertthunder/stepx/internal/services"
	"github.com/desertthunder/stepx/internal/shared"
)

// MockCatalog is a configurable test double for [services.Catalog].
// Unset function fields return empty results.
type MockCatalog struct {
	SearchFunc       func(ctx context.Context, query string) ([]models.Dance, error)
	GetByIDFunc      func(ctx context.Context, id string) (*models.Dance, error)
	GetStepSheetFunc func(ctx context.Context, id string) ([]models.StepRow, error)
}

func (m *MockCatalog) Search(ctx context.Context, query string) ([]models.Dance, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return []models.Dance{}, nil
}

func (m *MockCatalog) GetByID(ctx context.Context, id string) (*models.Dance, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	d := models.Normalize(models.Dance{ID: id})
	return &d, nil
}

func (m *MockCatalog) GetStepSheet(ctx context.Context, id string) ([]models.StepRow, error) {
	if m.GetStepSheetFunc != nil {
		return m.GetStepSheetFunc(ctx, id)
	}
	return []models.StepRow{}, nil
}

func (m *MockCatalog) Name() string { return "mock" }

// MockProfile is an in-memory test double for [services.ProfileStore].
// Sign-in always succeeds with a fixed identity; documents live in Doc.
type MockProfile struct {
	mu          sync.Mutex
	identity    *models.Identity
	subscribers []services.IdentityFunc

	Doc    *models.SyncDocument
	GetErr error // returned by GetDocument when set
	PutErr error // returned by PutDocument when set

	Puts int // PutDocument call count
}

func (m *MockProfile) SignUp(ctx context.Context, email, password string) (*models.Identity, error) {
	return m.SignIn(ctx, email, password)
}

func (m *MockProfile) SignIn(ctx context.Context, email, password string) (*models.Identity, error) {
	m.mu.Lock()
	m.identity = &models.Identity{UserID: "user-1", Email: email}
	identity := m.identity
	subscribers := append([]services.IdentityFunc(nil), m.subscribers...)
	m.mu.Unlock()

	for _, fn := range subscribers {
		fn(identity)
	}
	return identity, nil
}

func (m *MockProfile) SignOut() {
	m.mu.Lock()
	m.identity = nil
	subscribers := append([]services.IdentityFunc(nil), m.subscribers...)
	m.mu.Unlock()

	for _, fn := range subscribers {
		fn(nil)
	}
}

func (m *MockProfile) Identity() *models.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identity
}

func (m *MockProfile) Subscribe(fn services.IdentityFunc) {
	m.mu.Lock()
	m.subscribers = append(m.subscribers, fn)
	identity := m.identity
	m.mu.Unlock()

	if identity != nil {
		fn(identity)
	}
}

func (m *MockProfile) GetDocument(ctx context.Context) (*models.SyncDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.Doc == nil {
		return nil, shared.ErrDocumentNotFound
	}
	copied := *m.Doc
	return &copied, nil
}

func (m *MockProfile) PutDocument(ctx context.Context, doc *models.SyncDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Puts++
	if m.PutErr != nil {
		return m.PutErr
	}
	copied := *doc
	m.Doc = &copied
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
