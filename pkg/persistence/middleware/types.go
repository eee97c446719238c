// Package middleware decorates a ports.TranscriptStore with masking and
// encryption of message text.
package middleware

import "github.com/Shahad-Alharbi-creater/AbsherAi/pkg/ports"

// Middleware allows wrapping a TranscriptStore to add behavior.
type Middleware func(ports.TranscriptStore) ports.TranscriptStore

// Chain wraps store so that the first middleware sees each entry first.
func Chain(store ports.TranscriptStore, mws ...Middleware) ports.TranscriptStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
