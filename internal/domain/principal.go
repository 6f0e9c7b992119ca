package domain

import "context"

// Principal is the authenticated caller derived from a bearer token.
type Principal struct {
	UserID string
	Email  string
	Name   string
}

type principalKey struct{}

// ContextWithPrincipal returns a context carrying the principal.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal, or false for anonymous requests.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	if !ok || p.UserID == "" {
		return Principal{}, false
	}
	return p, true
}

// Viewer is the optional principal of a read request.
type Viewer struct {
	principal *Principal
}

// Anonymous returns a viewer without identity.
func Anonymous() Viewer { return Viewer{} }

// ViewerOf returns a viewer for the given principal.
func ViewerOf(p Principal) Viewer { return Viewer{principal: &p} }

// ViewerFromContext derives the viewer from the request context.
func ViewerFromContext(ctx context.Context) Viewer {
	if p, ok := PrincipalFromContext(ctx); ok {
		return ViewerOf(p)
	}
	return Anonymous()
}

// IsAnonymous reports whether the viewer has no identity.
func (v Viewer) IsAnonymous() bool { return v.principal == nil }

// UserID returns the viewer's user id, empty for anonymous viewers.
func (v Viewer) UserID() string {
	if v.principal == nil {
		return ""
	}
	return v.principal.UserID
}
