package middleware

import "net/http"

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain composes middleware so that the first one is outermost:
// Chain(a, b)(h) serves as a(b(h)). Nil entries are skipped, which lets
// callers switch a stage off without rebuilding the list.
func Chain(mws ...Middleware) Middleware {
	return func(h http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			if mws[i] == nil {
				continue
			}
			h = mws[i](h)
		}
		return h
	}
}

// When returns mw if on is true and nil otherwise, for use with Chain.
func When(on bool, mw Middleware) Middleware {
	if !on {
		return nil
	}
	return mw
}
