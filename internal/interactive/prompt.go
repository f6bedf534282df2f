package interactive

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/altuslabsxyz/dwapp/internal/tui"
)

// maxMemoLength mirrors the chain's default memo limit.
const maxMemoLength = 256

// Prompter asks the user questions. The promptui implementation is used in
// terminals; tests substitute their own.
type Prompter interface {
	// ChooseAction asks what to do with the reviewed transaction.
	ChooseAction(summary Summary) (Action, error)
	// EditMemo asks for a new memo, offering the current one as default.
	EditMemo(current string) (string, error)
}

// TerminalPrompter implements Prompter with promptui.
type TerminalPrompter struct{}

// ChooseAction prompts the user to pick an action for the transaction.
func (TerminalPrompter) ChooseAction(summary Summary) (Action, error) {
	fmt.Printf("\n%s\n", tui.Box("About to broadcast", summary.String(), tui.BoxStyle))

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ .Name | cyan }} - {{ .Description | faint }}",
		Inactive: "  {{ .Name }} - {{ .Description | faint }}",
		Selected: "✓ {{ .Name | green }}",
	}

	prompt := promptui.Select{
		Label:     "Proceed",
		Items:     Actions,
		Templates: templates,
		Size:      len(Actions),
	}

	index, _, err := prompt.Run()
	if err != nil {
		return ActionCancel, handleInterruptError(err)
	}
	return Actions[index].Action, nil
}

// EditMemo prompts the user to enter a memo.
func (TerminalPrompter) EditMemo(current string) (string, error) {
	validate := func(input string) error {
		if len(input) > maxMemoLength {
			return fmt.Errorf("memo must be at most %d characters", maxMemoLength)
		}
		return nil
	}

	prompt := promptui.Prompt{
		Label:     "Memo",
		Default:   current,
		AllowEdit: true,
		Validate:  validate,
		Templates: &promptui.PromptTemplates{
			Prompt:  "{{ . }}: ",
			Valid:   "{{ . | green }}: ",
			Invalid: "{{ . | red }}: ",
			Success: "{{ . | bold }}: ",
		},
	}

	result, err := prompt.Run()
	if err != nil {
		return current, handleInterruptError(err)
	}
	return strings.TrimSpace(result), nil
}

// ConfirmYesNo asks a plain yes/no question defaulting to yes.
func ConfirmYesNo(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Default:   "y",
	}

	_, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrAbort {
			return false, nil
		}
		return false, handleInterruptError(err)
	}

	return true, nil
}

func handleInterruptError(err error) error {
	if err == promptui.ErrInterrupt {
		return &CancellationError{Message: "Operation cancelled"}
	}
	if err == promptui.ErrEOF {
		return &CancellationError{Message: "Operation cancelled (EOF)"}
	}
	return err
}
