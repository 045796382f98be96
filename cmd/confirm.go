package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/zhubert/grove/internal/workspace"
)

// newConfirmer returns a ConfirmFunc reading y/n answers from input. A
// single buffered reader is shared across prompts so that answers typed
// ahead of a later question are not dropped.
func newConfirmer(input io.Reader) workspace.ConfirmFunc {
	reader := bufio.NewReader(input)
	return func(prompt string) bool {
		fmt.Printf("%s [y/N]: ", prompt)
		response, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		response = strings.ToLower(strings.TrimSpace(response))
		return response == "y" || response == "yes"
	}
}

// confirm asks a single yes/no question on input.
func confirm(input io.Reader, prompt string) bool {
	return newConfirmer(input)(prompt)
}
