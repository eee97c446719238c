package ports

import (
	"context"

	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
)

// UI is the rendering collaborator. Implementations must not call back into the
// session controller synchronously.
type UI interface {
	// Render displays one chat message.
	Render(ctx context.Context, msg domain.Message)

	// RenderChoices displays a row of buttons. Selecting one must dispatch its Command.
	// The prompt may be empty.
	RenderChoices(ctx context.Context, prompt string, choices []domain.Choice)
}
