package ports

import "context"

// Synthesizer speaks text. Speak blocks until the utterance ends or fails.
// Voice, rate, pitch and locale selection belong to the implementation.
type Synthesizer interface {
	Speak(ctx context.Context, text string) error
}

// Listener captures one utterance from the platform's speech recognition.
type Listener interface {
	// ListenOnce blocks until one utterance is recognized, or returns an error.
	ListenOnce(ctx context.Context) (string, error)
}
