package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// maxPromptAttempts bounds every re-prompt loop.
const maxPromptAttempts = 5

// Option is one of the choices offered by AskForOption.
type Option struct {
	Key         string
	Description string
}

// readLine reads one trimmed line. A last line without a newline is returned as is.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// AskYesNo asks until the answer is y or n.
func (that *Console) AskYesNo(question string) (bool, error) {
	for attempt := 0; attempt < maxPromptAttempts; attempt++ {
		that.printf("%s\ny for yes\nn for no\n", question)

		response, err := readLine(that.reader)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(response) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}

		that.printf("'%s' is not a valid input. Try again.\n\n", response)
	}

	return false, fmt.Errorf("%w: %s", apperror.ErrTooManyAttempts, question)
}

// AskForOption asks until one of the option keys is entered and returns it.
func (that *Console) AskForOption(question string, options []Option) (string, error) {
	for attempt := 0; attempt < maxPromptAttempts; attempt++ {
		that.printf("%s\n", question)
		for _, option := range options {
			that.printf("\t%s for %s\n", option.Key, option.Description)
		}
		that.printf("Your choice? ")

		choice, err := readLine(that.reader)
		if err != nil {
			return "", err
		}

		for _, option := range options {
			if option.Key == choice {
				return choice, nil
			}
		}

		that.printf("'%s' is not a valid input. Try again.\n\n", choice)
	}

	return "", fmt.Errorf("%w: %s", apperror.ErrTooManyAttempts, question)
}

// AskForText asks until validate accepts the input.
func (that *Console) AskForText(question string, minLength int, validate func(string) error) (string, error) {
	for attempt := 0; attempt < maxPromptAttempts; attempt++ {
		that.printf("%s (At least %d characters)\n", question, minLength)

		response, err := readLine(that.reader)
		if err != nil {
			return "", err
		}

		if err = validate(response); err != nil {
			that.printf("'%s' is not allowed: %v. Try again.\n\n", response, err)
			continue
		}

		return response, nil
	}

	return "", fmt.Errorf("%w: %s", apperror.ErrTooManyAttempts, question)
}

// AskForTurn asks until one of the allowed cell ids is entered.
func (that *Console) AskForTurn(question string, allowed []int) (int, error) {
	ids := make([]string, 0, len(allowed))
	for _, cell := range allowed {
		ids = append(ids, strconv.Itoa(cell))
	}

	for attempt := 0; attempt < maxPromptAttempts; attempt++ {
		that.printf("%s (Allowed fields: %s)\n", question, strings.Join(ids, ", "))

		turn, err := readLine(that.reader)
		if err != nil {
			return 0, err
		}

		if cell, convErr := strconv.Atoi(turn); convErr == nil && slices.Contains(allowed, cell) {
			return cell, nil
		}

		that.printf("'%s' is not allowed. Try again.\n\n", turn)
	}

	return 0, fmt.Errorf("%w: %s", apperror.ErrTooManyAttempts, question)
}
