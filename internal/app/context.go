package app

import "context"

type ctxKey struct{}

// WithApp returns a copy of ctx carrying a.
func WithApp(ctx context.Context, a *App) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// FromContext returns the App stored by WithApp, or ErrNotInitialized when
// the command ran without the root pre-run hook.
func FromContext(ctx context.Context) (*App, error) {
	if ctx == nil {
		return nil, ErrNotInitialized
	}
	a, ok := ctx.Value(ctxKey{}).(*App)
	if !ok || a == nil {
		return nil, ErrNotInitialized
	}
	return a, nil
}
