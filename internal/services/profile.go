// Remote profile/document store implementation of [ProfileStore]
//
// The store is an opaque keyed get/set service: one JSON document per
// authenticated user, read and written whole. Its auth provider issues JWT ID
// tokens for email/password accounts and supports OAuth2 authorization-code
// sign-in for the hosted identity provider.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/desertthunder/stepx/internal/models"
	"github.com/desertthunder/stepx/internal/shared"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// tokenResponse is the auth provider's reply to sign-in and sign-up.
type tokenResponse struct {
	IDToken string `json:"idToken"`
}

// ProfileService implements [ProfileStore] over HTTP.
//
// Identity state is guarded by a mutex because subscriber notifications can
// fire from a session-restore at startup while the TUI is already running.
type ProfileService struct {
	baseURL    string
	httpClient *http.Client
	oauth      *oauth2.Config

	mu          sync.Mutex
	token       string
	identity    *models.Identity
	subscribers []IdentityFunc
}

// NewProfileService creates a profile/document client from configuration.
func NewProfileService(cfg shared.ProfileConfig, client *http.Client) *ProfileService {
	if client == nil {
		client = http.DefaultClient
	}

	var oauthConf *oauth2.Config
	if cfg.ClientID != "" {
		oauthConf = &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.BaseURL + "/v1/oauth/authorize",
				TokenURL: cfg.BaseURL + "/v1/oauth/token",
			},
		}
	}

	return &ProfileService{
		baseURL:    cfg.BaseURL,
		httpClient: client,
		oauth:      oauthConf,
	}
}

// OAuthConfig returns the provider sign-in configuration, or nil when no
// client credentials are configured.
func (p *ProfileService) OAuthConfig() *oauth2.Config {
	return p.oauth
}

// AuthURL returns the identity-provider authorization URL for interactive sign-in.
func (p *ProfileService) AuthURL(state string) (string, error) {
	if p.oauth == nil {
		return "", fmt.Errorf("%w: provider sign-in not configured", shared.ErrMissingCredentials)
	}
	return p.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

// SignUp creates an email/password account and signs in.
func (p *ProfileService) SignUp(ctx context.Context, email, password string) (*models.Identity, error) {
	return p.authenticate(ctx, "/v1/auth/signup", email, password)
}

// SignIn authenticates with email and password.
func (p *ProfileService) SignIn(ctx context.Context, email, password string) (*models.Identity, error) {
	return p.authenticate(ctx, "/v1/auth/login", email, password)
}

func (p *ProfileService) authenticate(ctx context.Context, endpoint, email, password string) (*models.Identity, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password required", shared.ErrMissingCredentials)
	}

	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: status %d", shared.ErrInvalidCredentials, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: auth status %d", shared.ErrAuthFailed, resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	return p.AdoptToken(tr.IDToken)
}

// AdoptToken installs an ID token as the active session and notifies
// subscribers. Used after sign-in, after provider token exchange, and when
// restoring a cached token at startup.
//
// The token is parsed unverified: this client only needs the claims, the
// document service verifies the signature on every request.
func (p *ProfileService) AdoptToken(tokenString string) (*models.Identity, error) {
	identity, err := parseIdentity(tokenString)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.token = tokenString
	p.identity = identity
	subscribers := append([]IdentityFunc(nil), p.subscribers...)
	p.mu.Unlock()

	for _, fn := range subscribers {
		fn(identity)
	}

	return identity, nil
}

// parseIdentity reads sub, email, and exp claims from a JWT ID token.
func parseIdentity(tokenString string) (*models.Identity, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("%w: empty token", shared.ErrInvalidCredentials)
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidCredentials, err)
	}

	identity := &models.Identity{}
	if sub, err := claims.GetSubject(); err == nil {
		identity.UserID = sub
	}
	if identity.UserID == "" {
		return nil, fmt.Errorf("%w: token missing subject", shared.ErrInvalidCredentials)
	}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		identity.Expiry = exp.Time
	}

	return identity, nil
}

// SignOut clears the active session and notifies subscribers with nil.
// No remote call is made; subsequent mutations persist locally only.
func (p *ProfileService) SignOut() {
	p.mu.Lock()
	p.token = ""
	p.identity = nil
	subscribers := append([]IdentityFunc(nil), p.subscribers...)
	p.mu.Unlock()

	for _, fn := range subscribers {
		fn(nil)
	}
}

// Identity returns the active identity, or nil when signed out.
func (p *ProfileService) Identity() *models.Identity {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.identity
}

// Token returns the active ID token for the caller to cache locally.
func (p *ProfileService) Token() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.token
}

// Subscribe registers an identity-change callback. If a session is already
// active the callback fires immediately, mirroring a provider restoring a
// cached credential at startup.
func (p *ProfileService) Subscribe(fn IdentityFunc) {
	p.mu.Lock()
	p.subscribers = append(p.subscribers, fn)
	identity := p.identity
	p.mu.Unlock()

	if identity != nil {
		fn(identity)
	}
}

// session returns the current token and identity, or an error when signed out
// or expired.
func (p *ProfileService) session() (string, *models.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.identity == nil || p.token == "" {
		return "", nil, shared.ErrNotAuthenticated
	}
	if !p.identity.Expiry.IsZero() && time.Now().After(p.identity.Expiry) {
		return "", nil, shared.ErrTokenExpired
	}

	return p.token, p.identity, nil
}

// GetDocument reads the signed-in user's document.
func (p *ProfileService) GetDocument(ctx context.Context) (*models.SyncDocument, error) {
	token, identity, err := p.session()
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1/documents/%s", p.baseURL, identity.UserID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, shared.ErrDocumentNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: document status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var doc models.SyncDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	return &doc, nil
}

// PutDocument replaces the signed-in user's document wholesale.
// Last writer wins; no merge of concurrent remote changes is attempted.
func (p *ProfileService) PutDocument(ctx context.Context, doc *models.SyncDocument) error {
	token, identity, err := p.session()
	if err != nil {
		return err
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/documents/%s", p.baseURL, identity.UserID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: document status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	return nil
}
