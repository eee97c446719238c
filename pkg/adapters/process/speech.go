package process

import (
	"context"
	"errors"
)

// ErrNoSpeech is returned when the listen command recognized nothing.
var ErrNoSpeech = errors.New("no speech recognized")

// Locale is passed to speech commands as ABSHER_ARG_LANG.
const Locale = "ar-SA"

// Synthesizer implements ports.Synthesizer with the "speak" command.
// The text is available as ABSHER_ARG_TEXT (and on stdin when configured).
type Synthesizer struct {
	runner *Runner
}

// Speak blocks until the command exits.
func (s *Synthesizer) Speak(ctx context.Context, text string) error {
	_, err := s.runner.Run(ctx, CommandSpeak, map[string]string{"text": text, "lang": Locale})
	return err
}

// Listener implements ports.Listener with the "listen" command, whose stdout
// is the recognized utterance.
type Listener struct {
	runner *Runner
}

// ListenOnce blocks until the command exits.
func (l *Listener) ListenOnce(ctx context.Context) (string, error) {
	out, err := l.runner.Run(ctx, CommandListen, map[string]string{"lang": Locale})
	if err != nil {
		return "", err
	}
	if out == "" {
		return "", ErrNoSpeech
	}
	return out, nil
}

// NewSynthesizer returns a Synthesizer if the runner has a speak command.
func NewSynthesizer(r *Runner) (*Synthesizer, bool) {
	if !r.Has(CommandSpeak) {
		return nil, false
	}
	return &Synthesizer{runner: r}, true
}

// NewListener returns a Listener if the runner has a listen command.
func NewListener(r *Runner) (*Listener, bool) {
	if !r.Has(CommandListen) {
		return nil, false
	}
	return &Listener{runner: r}, true
}
