// Package translator wraps the external machine-translation capability.
package translator

import "context"

// Translator performs a single synchronous translation call. Implementations
// are fallible: network, quota and server-side failures come back as errors
// wrapping common.ErrTranslationUnavailable and are retried by the worker.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}
