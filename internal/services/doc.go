// Package services defines the [Catalog] and [ProfileStore] interfaces for the
// external collaborators of stepx and implements them for the BootStepper
// catalog API and the remote profile/document service.
//
// # Catalog
//
// [BootStepperService] wraps the step-sheet catalog's three read endpoints
// (search, detail by ID, step sheet by ID). The catalog's payloads are
// duck-typed with multiple possible field names per concept; every response
// item passes through [NormalizeDance] before leaving this package, so
// consumers only ever see fully-defaulted [models.Dance] values.
//
// # ProfileStore
//
// [ProfileService] wraps the opaque keyed get/set document store plus its
// authentication provider: email/password sign-in and sign-up,
// identity-provider sign-in via OAuth2 authorization code, and sign-out.
// Identity changes are delivered to subscribers, which may fire immediately at
// startup when a cached token is restored. ID tokens are JWTs; claims are read
// client-side without verification since the issuing service is the verifier.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrNotAuthenticated] : no active session for a keyed document call
//   - [shared.ErrAPIRequest] : HTTP request failed or returned non-2xx
//   - [shared.ErrDanceNotFound] : catalog ID not found
//   - [shared.ErrDocumentNotFound] : no remote document for this identity yet
package services
