// Package identity wraps the external identity provider. The rest of the
// server only sees the Verifier interface, so tests swap in a stub.
package identity

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"synapshare/internal/apperr"
)

// Token is the verified identity extracted from a bearer credential.
type Token struct {
	UID   string
	Email string
}

type Verifier interface {
	// VerifyToken validates a bearer ID token and returns the stable user
	// identity it proves.
	VerifyToken(ctx context.Context, idToken string) (*Token, error)
	// PasswordResetLink asks the provider to issue a reset link for the
	// account; the provider sends the email itself.
	PasswordResetLink(ctx context.Context, email string) (string, error)
}

// Firebase is the production Verifier, backed by the Firebase Admin SDK.
type Firebase struct {
	client *auth.Client
}

// NewFirebase builds a verifier from service-account credentials JSON.
func NewFirebase(ctx context.Context, credentialsJSON []byte) (*Firebase, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &Firebase{client: client}, nil
}

func (f *Firebase) VerifyToken(ctx context.Context, idToken string) (*Token, error) {
	decoded, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindAuthInvalid, "Invalid token", err)
	}
	email, _ := decoded.Claims["email"].(string)
	return &Token{UID: decoded.UID, Email: email}, nil
}

func (f *Firebase) PasswordResetLink(ctx context.Context, email string) (string, error) {
	link, err := f.client.PasswordResetLink(ctx, email)
	if err != nil {
		return "", apperr.Wrap(apperr.KindUpstream, "Failed to send password reset email", err)
	}
	return link, nil
}
