package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/stepx/internal/models"
	"github.com/desertthunder/stepx/internal/server"
	"github.com/desertthunder/stepx/internal/services"
	"github.com/desertthunder/stepx/internal/shared"
	"github.com/urfave/cli/v3"
)

// AccountSignUp creates an email/password account. The new user's document is
// seeded from the local collections.
func (r *Runner) AccountSignUp(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	if err := r.session.SignUp(ctx, cmd.String("email"), cmd.String("password")); err != nil {
		return err
	}

	r.writePlain("✓ Account created and signed in\n")
	return nil
}

// AccountLogin signs in with email/password, or via the hosted identity
// provider when --provider is set. The remote document replaces local
// collections on success.
func (r *Runner) AccountLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	if cmd.Bool("provider") {
		return r.providerLogin(ctx)
	}

	email := cmd.String("email")
	password := cmd.String("password")
	if email == "" || password == "" {
		return fmt.Errorf("%w: --email and --password are required (or use --provider)", shared.ErrMissingCredentials)
	}

	if err := r.session.SignIn(ctx, email, password); err != nil {
		return err
	}

	r.writePlain("✓ Signed in as %s\n", email)
	return nil
}

// providerLogin runs the loopback authorization-code flow: starts a local
// HTTP server, opens the browser, and adopts the ID token from the exchange.
func (r *Runner) providerLogin(ctx context.Context) error {
	ps, ok := r.profile.(*services.ProfileService)
	if !ok {
		return fmt.Errorf("%w: provider sign-in unavailable", shared.ErrServiceUnavailable)
	}

	oauthConf := ps.OAuthConfig()
	if oauthConf == nil {
		return fmt.Errorf("%w: profile client_id and client_secret must be set in config.toml", shared.ErrMissingCredentials)
	}

	state := shared.GenerateID()
	authURL, err := ps.AuthURL(state)
	if err != nil {
		return err
	}

	oauthHandler := server.NewOAuthHandler(oauthConf, state)
	router := server.NewLoopbackRouter()
	router.Use(server.RequestLogging(r.logger))
	router.Mount(oauthHandler)

	serverAddr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting sign-in callback server at %v", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for sign-in...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.OAuthResult

	select {
	case result = <-oauthHandler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return fmt.Errorf("authorization failed: %w", result.Error())
	}
	if result.Token == nil {
		return fmt.Errorf("%w: no token received", shared.ErrAuthFailed)
	}

	idToken, _ := result.Token.Extra("id_token").(string)
	if idToken == "" {
		idToken = result.Token.AccessToken
	}

	identity, err := ps.AdoptToken(idToken)
	if err != nil {
		return err
	}

	r.writePlainln("✓ Signed in as %s", identity.Email)
	return nil
}

// AccountLogout signs out and clears the cached session token. Collections
// stay local.
func (r *Runner) AccountLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	r.session.SignOut()
	r.writePlain("✓ Signed out\n")
	return nil
}

// AccountStatus prints the session state and profile summary.
func (r *Runner) AccountStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	identity := r.session.Identity()
	if identity == nil {
		return r.writePlain("Signed out\n")
	}

	r.writePlain("✓ Signed in as %s\n", identity.Email)
	r.writePlain("User ID: %s\n", identity.UserID)
	if !identity.Expiry.IsZero() {
		r.writePlain("Session expires: %s\n", identity.Expiry.Format(time.RFC1123))
	}
	if profile := r.session.Profile(); profile != nil && profile.Username != "" {
		r.writePlain("Username: %s\n", profile.Username)
	}
	return nil
}

// AccountProfile updates profile fields in the synced document. Only provided
// flags are changed.
func (r *Runner) AccountProfile(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	profile := models.Profile{}
	if current := r.session.Profile(); current != nil {
		profile = *current
	}

	if cmd.IsSet("username") {
		profile.Username = cmd.String("username")
	}
	if cmd.IsSet("first-name") {
		profile.FirstName = cmd.String("first-name")
	}
	if cmd.IsSet("last-name") {
		profile.LastName = cmd.String("last-name")
	}
	if cmd.IsSet("bio") {
		profile.Bio = cmd.String("bio")
	}
	if cmd.IsSet("location") {
		profile.Location = cmd.String("location")
	}
	if cmd.IsSet("photo-url") {
		profile.PhotoURL = cmd.String("photo-url")
	}

	if err := r.session.UpdateProfile(ctx, profile); err != nil {
		return err
	}

	r.writePlain("✓ Profile updated\n")
	return nil
}
