package common

import (
	"context"

	"github.com/sngm3741/delight-spot/api/internal/public/application"
)

type contextKey string

const credentialContextKey contextKey = "credential"

// CredentialSource tells how the caller authenticated.
type CredentialSource int

const (
	SourceNone CredentialSource = iota
	SourceToken
	SourceSession
)

// Credential is the resolved caller of a request.
type Credential struct {
	Principal application.Principal
	Source    CredentialSource
	SessionID string
}

// ContextWithCredential stores the resolved credential into context.
func ContextWithCredential(ctx context.Context, cred Credential) context.Context {
	return context.WithValue(ctx, credentialContextKey, cred)
}

// CredentialFromContext extracts the credential. Anonymous requests yield the zero value.
func CredentialFromContext(ctx context.Context) Credential {
	cred, _ := ctx.Value(credentialContextKey).(Credential)
	return cred
}

// PrincipalFromContext is a shorthand for CredentialFromContext(ctx).Principal.
func PrincipalFromContext(ctx context.Context) application.Principal {
	return CredentialFromContext(ctx).Principal
}
