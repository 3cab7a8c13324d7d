package cli

import (
	"context"
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	cliValidationCode    = "MDTREE_VALIDATION_FAILED"
	cliCommandFailedCode = "MDTREE_COMMAND_FAILED"
	cliIssuesFoundCode   = "MDTREE_ISSUES_FOUND"
	cliCanceledCode      = "MDTREE_CANCELED"
)

// ErrIssuesFound is wrapped by the error returned when check or fix leaves
// issues behind.
var ErrIssuesFound = errors.New("issues found")

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid mdtree configuration").
		WithTextCode(cliValidationCode)
}

func wrapCommandError(err error, message string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "mdtree run cancelled").
			WithTextCode(cliCanceledCode)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, message).
		WithTextCode(cliCommandFailedCode)
}

func issuesFoundError(mode string, count int) error {
	err := fmt.Errorf("%s found %d issue(s): %w", mode, count, ErrIssuesFound)
	return goerrors.Wrap(err, goerrors.CategoryCommand, err.Error()).
		WithTextCode(cliIssuesFoundCode)
}
