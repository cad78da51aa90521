package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/meysamhadeli/codectx/constants/lipgloss"
)

// ConfirmPrompt asks a yes/no question on out and reads the answer from
// reader. Only "y" and "yes" confirm; end of input counts as no.
func ConfirmPrompt(reader *bufio.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprint(out, lipgloss.BlueSky.Render(question+" (y/N): "))

	answer, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("error reading input: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
