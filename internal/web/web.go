// Package web implements an HTMX-based web application mirroring the TUI functionality.
//
// # HTMX Web Application Implementation Plan
//
// # Architecture
//
// The web app replicates the five-view TUI workflow using server-side rendering
// with HTMX for dynamic updates. Each view corresponds to a template and handler:
//
//  1. Search: Server-rendered form plus result table with hx-get per row
//  2. Collections: List of named collections with counts
//  3. Collection Detail: Member table with hx-delete for removal
//  4. Dance Detail: Staged load, basic record first then step sheet partial
//  5. Account: Sign in/out, profile form, manual push/pull
//
// Core Components
//
//   - HTTP Server: net/http server with html/template rendering
//   - Service Integration: Uses same services.Catalog and tasks.DanceEngine as TUI
//   - Collection State: Shares library.Store and tasks.SessionManager with the CLI
//   - Step Sheet Partial: Lazy hx-get swap once the sheet rows arrive
//
// Routes
//
//	GET  /                       → Search view
//	GET  /search?q=...           → HTMX partial: result rows
//	GET  /dances/{id}            → Dance detail view
//	GET  /dances/{id}/steps      → HTMX partial: step sheet rows
//	GET  /collections            → Collection list view
//	GET  /collections/{name}     → Collection detail view
//	POST /collections/{name}     → Add dance (form: dance id)
//	DELETE /collections/{name}/{id} → Remove dance, return refreshed partial
//	GET  /auth/login             → OAuth initiation
//	GET  /auth/callback          → OAuth completion
//	POST /sync/push              → Manual document push
//	POST /sync/pull              → Manual document pull
//
// Templates
//
//   - base.html: Layout with navigation, session status
//   - search.html: Query form, recent queries, result table
//   - collections.html: Collection list with counts
//   - detail.html: Dance fields plus lazy step sheet container
//   - account.html: Profile form and sync controls
//
// # State Management
//
// Unlike the TUI's in-memory model, the web app persists state in:
//   - Session cookies: Authentication tokens, client ID
//   - library.Store: Shared collection state, flushed through repositories
//   - In-flight snapshot channels: One per open dance detail request
//
// # Staged Detail Loading
//
// Dance detail mirrors the engine's snapshot sequence:
//
//  1. GET /dances/{id} renders the basic record immediately
//  2. The step container carries hx-get="/dances/{id}/steps" hx-trigger="load"
//  3. Handler runs DanceEngine.LoadFull and renders the final snapshot
//  4. A missing sheet renders the "not available" partial
//
// Authentication Flow
//
//  1. User visits /account, offered email form or provider button
//  2. OAuth dance stores the session token via repositories.SessionRepository
//  3. SessionManager subscription pulls the remote document on sign in
//  4. Expired tokens trigger reauthorization flow
//
// Dependencies
//
//   - html/template: Server-side rendering
//   - net/http: HTTP server
//   - gorilla/sessions or similar: Cookie management
//
// Implementation Tasks
//
//  1. HTTP server setup with route registration
//  2. Template structure with HTMX integration
//  3. Session middleware for auth state
//  4. Search handler with recent query recording
//  5. Dance detail handler (staged partial)
//  6. Collection mutation handlers wired to library.Store
//  7. Sync handlers delegating to SessionManager
//  8. OAuth handlers wrapping the existing loopback flow
//  9. Error handling and validation
//
// # Testing Strategy
//
// Use httptest:
//   - Mock services.Catalog for search/detail data
//   - Seed library.Store directly for collection views
//   - Validate HTMX headers and response structure
//   - Test the lazy step sheet partial against a slow catalog
package web
