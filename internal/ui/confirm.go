package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ConfirmDanger prompts a yes/no question styled for destructive actions.
// Returns true only on an explicit yes.
func ConfirmDanger(prompt string) bool {
	fmt.Printf("%s [y/N]: ", StyleError.Render("⚠ "+prompt))
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(strings.ToLower(line))
	return line == "y" || line == "yes"
}
