// pkg/interaction/prompt.go

package interaction

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"
)

// IsTerminal reports whether stdin is attached to a TTY. The wizard
// only runs interactively.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ReadLine prints a prompt and returns one trimmed line of input.
func ReadLine(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Printf("%s: ", prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// PromptSelect displays numbered options and returns the selected index
// (zero-based). It keeps asking until a valid number is entered.
func PromptSelect(prompt string, options []string) int {
	fmt.Println(prompt)
	for i, option := range options {
		fmt.Printf("  %d) %s\n", i+1, option)
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		choice, err := ReadLine(reader, "Enter choice")
		if err != nil {
			zap.L().Error("Failed to read choice", zap.Error(err))
			continue
		}

		idx, err := strconv.Atoi(choice)
		if err == nil && idx >= 1 && idx <= len(options) {
			zap.L().Debug("User selected option", zap.Int("index", idx), zap.String("value", options[idx-1]))
			return idx - 1
		}

		fmt.Println("Invalid selection. Please try again.")
	}
}

// PromptYesNo asks a yes/no question and returns true/false. Falls back
// to the default on unrecognized input.
func PromptYesNo(prompt string, defaultYes bool) bool {
	defPrompt := "Y/n"
	if !defaultYes {
		defPrompt = "y/N"
	}
	label := fmt.Sprintf("%s [%s]", prompt, defPrompt)

	reader := bufio.NewReader(os.Stdin)
	input, err := ReadLine(reader, label)
	if err != nil {
		zap.L().Error("Failed to read yes/no input", zap.Error(err))
		return defaultYes
	}

	if answer, ok := NormalizeYesNoInput(input); ok {
		return answer
	}
	return defaultYes
}

// PromptInput asks for user input with an optional default fallback.
func PromptInput(prompt, defaultVal string) string {
	reader := bufio.NewReader(os.Stdin)
	if defaultVal != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, defaultVal)
	}
	input, err := ReadLine(reader, prompt)
	if err != nil {
		zap.L().Error("Failed to read user input", zap.Error(err))
		return defaultVal
	}
	if input == "" {
		return defaultVal
	}
	return input
}

// NormalizeYesNoInput returns (answer, recognized) for inputs like
// "y", "yes", "n", "no". It trims whitespace and lowercases first.
func NormalizeYesNoInput(input string) (bool, bool) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "y" || input == "yes" {
		return true, true
	}
	if input == "n" || input == "no" {
		return false, true
	}
	return false, false
}
