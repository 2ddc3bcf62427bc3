package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// prompt reads a line from stdin with the given label. When echo is
// false the input is read without terminal echo, for passwords.
func prompt(label string, echo bool) (string, error) {
	fmt.Print(label + ": ")

	if echo {
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Scan()
		return strings.TrimSpace(scanner.Text()), scanner.Err()
	}

	passBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(passBytes), nil
}
