package context_builder

import (
	"errors"
	"fmt"

	"github.com/meysamhadeli/codectx/context_builder/models"
)

var (
	// ErrNoFilesLoaded means the corpus is empty.
	ErrNoFilesLoaded = errors.New("no files loaded, open a folder or files first")
	// ErrNoFilesSelected means the selection is empty or none of its paths has
	// readable content.
	ErrNoFilesSelected = errors.New("no files selected for context")
	// ErrTokenBudgetExceeded is matched by every *TokenBudgetExceededError.
	ErrTokenBudgetExceeded = errors.New("generated context exceeds maximum token limit")
)

// TokenBudgetExceededError is returned together with a partial result when the
// rendered report does not fit the effective token limit.
type TokenBudgetExceededError struct {
	Tokens int
	Limit  int
}

func (e *TokenBudgetExceededError) Error() string {
	return fmt.Sprintf("%v (%d > %d)", ErrTokenBudgetExceeded, e.Tokens, e.Limit)
}

func (e *TokenBudgetExceededError) Is(target error) bool {
	return target == ErrTokenBudgetExceeded
}

// ParseError means a rendered report could not be parsed back into a view.
// Callers treat it as "no parsed view".
type ParseError struct {
	Format models.Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s context: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
