package interactive

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/altuslabsxyz/dwapp/pkg/network"
)

// ErrNotInteractive is returned when a confirmation is required but stdin is
// not a terminal.
var ErrNotInteractive = errors.New("confirmation required but stdin is not a terminal (use --yes)")

// CancellationError indicates the user cancelled the operation.
type CancellationError struct {
	Message string
}

func (e *CancellationError) Error() string {
	return e.Message
}

// IsCancellation returns true if the error is a cancellation error.
func IsCancellation(err error) bool {
	var ce *CancellationError
	return errors.As(err, &ce)
}

// IsTerminalInteractive checks stdin, since promptui reads from it.
func IsTerminalInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Confirmer reviews broadcasts with the user before anything is signed.
type Confirmer struct {
	prompter    Prompter
	interactive func() bool
}

// NewConfirmer creates a Confirmer. A nil prompter uses the terminal.
func NewConfirmer(prompter Prompter) *Confirmer {
	if prompter == nil {
		prompter = TerminalPrompter{}
	}
	return &Confirmer{prompter: prompter, interactive: IsTerminalInteractive}
}

// Confirm loops until the user broadcasts or cancels. Memo edits are
// returned in the edited request.
func (c *Confirmer) Confirm(ctx context.Context, req network.ConfirmRequest) (network.ConfirmRequest, bool, error) {
	if !c.interactive() {
		return req, false, ErrNotInteractive
	}

	for {
		if err := ctx.Err(); err != nil {
			return req, false, err
		}

		action, err := c.prompter.ChooseAction(NewSummary(req))
		if err != nil {
			if IsCancellation(err) {
				return req, false, nil
			}
			return req, false, fmt.Errorf("confirmation prompt failed: %w", err)
		}

		switch action {
		case ActionBroadcast:
			return req, true, nil
		case ActionCancel:
			return req, false, nil
		case ActionEditMemo:
			memo, err := c.prompter.EditMemo(req.Memo)
			if err != nil {
				if IsCancellation(err) {
					return req, false, nil
				}
				return req, false, fmt.Errorf("memo prompt failed: %w", err)
			}
			req.Memo = memo
		default:
			return req, false, fmt.Errorf("unknown action %d", action)
		}
	}
}

var _ network.Confirmer = (*Confirmer)(nil)
