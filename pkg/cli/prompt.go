package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// stdin is shared by every prompt so no buffered input is lost between them.
var stdin = bufio.NewReader(os.Stdin)

// PromptLine displays a prompt and reads a full line of input from the user.
// The returned string is trimmed of surrounding whitespace.
func PromptLine(prompt string) (string, error) {
	return promptFrom(stdin, prompt)
}

func promptFrom(r *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := r.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// PromptLineOrFzf reads a full line and treats a lone "/" as a request to
// pick a file with fzf. When fzf is unavailable or cancelled the user is
// asked again. Whole lines are read so paths may contain spaces.
func PromptLineOrFzf(prompt string) (string, error) {
	input, err := PromptLine(prompt)
	if err != nil || input != "/" {
		return input, err
	}
	if sel, err := SelectFileWithFzf("."); err == nil && sel != "" {
		fmt.Printf(" [fzf] %s\n", sel)
		return sel, nil
	}
	return PromptLine(prompt)
}
