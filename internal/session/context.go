package session

import (
	"context"
	"net/http"
)

type jarCtxKey struct{}

// WithJar stores the request's Jar in ctx.
func WithJar(ctx context.Context, j *Jar) context.Context {
	return context.WithValue(ctx, jarCtxKey{}, j)
}

// JarFromCtx returns the Jar stored by the session middleware.
func JarFromCtx(ctx context.Context) (*Jar, bool) {
	j, ok := ctx.Value(jarCtxKey{}).(*Jar)
	return j, ok && j != nil
}

// FromRequest returns the Jar bound by the session middleware, or a new Jar
// over w and r when none is bound.
func FromRequest(w http.ResponseWriter, r *http.Request, opts Options) *Jar {
	if j, ok := JarFromCtx(r.Context()); ok {
		return j
	}
	return NewJar(w, r, opts)
}
