package loom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danpasecinic/loom/internal/registry"
	"github.com/danpasecinic/loom/internal/resolve"
)

type ErrorCode uint16

const (
	ErrCodeUnknown ErrorCode = iota
	ErrCodeNotFound
	ErrCodeCircularDependency
	ErrCodeUnknownStrategy
	ErrCodeConstantRedefined
	ErrCodeNestedProvider
	ErrCodeInvalidConfig
	ErrCodeResolutionFailed
	ErrCodeValidationFailed
	ErrCodeModuleBuildFailed
)

var codeNames = map[ErrorCode]string{
	ErrCodeUnknown:            "UNKNOWN",
	ErrCodeNotFound:           "NOT_FOUND",
	ErrCodeCircularDependency: "CIRCULAR_DEPENDENCY",
	ErrCodeUnknownStrategy:    "UNKNOWN_STRATEGY",
	ErrCodeConstantRedefined:  "CONSTANT_REDEFINED",
	ErrCodeNestedProvider:     "NESTED_PROVIDER",
	ErrCodeInvalidConfig:      "INVALID_CONFIG",
	ErrCodeResolutionFailed:   "RESOLUTION_FAILED",
	ErrCodeValidationFailed:   "VALIDATION_FAILED",
	ErrCodeModuleBuildFailed:  "MODULE_BUILD_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", c)
}

// Error is the error type returned by every public operation. For
// CIRCULAR_DEPENDENCY errors, Message is exactly the owner-qualified cycle
// path ("module: a -> b -> a") and Path holds its node names in order.
type Error struct {
	Code    ErrorCode
	Message string
	Name    string
	Cause   error
	Path    []string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s]", e.Code))

	if e.Name != "" {
		b.WriteString(fmt.Sprintf(" dependency=%q:", e.Name))
	}

	b.WriteString(" ")
	b.WriteString(e.Message)

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func (e *Error) WithName(name string) *Error {
	e.Name = name
	return e
}

func newError(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func errNotFound(name string, cause error) *Error {
	return newError(
		ErrCodeNotFound,
		fmt.Sprintf("no config registered for %s", name),
		cause,
	).WithName(name)
}

func errCircularDependency(owner string, path []string) *Error {
	e := newError(
		ErrCodeCircularDependency,
		owner+": "+strings.Join(path, " -> "),
		nil,
	)
	e.Path = path
	return e
}

func errUnknownStrategy(name string, strategy Strategy) *Error {
	return newError(
		ErrCodeUnknownStrategy,
		fmt.Sprintf("unknown strategy %q", string(strategy)),
		nil,
	).WithName(name)
}

func errConstantRedefined(name string) *Error {
	return newError(
		ErrCodeConstantRedefined,
		"constant already defined",
		nil,
	).WithName(name)
}

func errNestedProvider(name string) *Error {
	return newError(
		ErrCodeNestedProvider,
		"provider produced another provider",
		nil,
	).WithName(name)
}

func errInvalidConfig(name, reason string) *Error {
	return newError(
		ErrCodeInvalidConfig,
		reason,
		nil,
	).WithName(name)
}

func errResolutionFailed(name string, cause error) *Error {
	return newError(
		ErrCodeResolutionFailed,
		fmt.Sprintf("failed to resolve %s", name),
		cause,
	).WithName(name)
}

func errValidationFailed(cause error) *Error {
	return newError(ErrCodeValidationFailed, "injector validation failed", cause)
}

func errModuleBuildFailed(moduleName string, cause error) *Error {
	return newError(
		ErrCodeModuleBuildFailed,
		"failed to build module "+moduleName,
		cause,
	)
}

// wrapRegisterErr translates registry errors into coded errors.
func wrapRegisterErr(err error) error {
	if err == nil {
		return nil
	}

	var unknown *registry.UnknownStrategyError
	if errors.As(err, &unknown) {
		return errUnknownStrategy(unknown.Name, Strategy(unknown.Strategy))
	}

	var redefined *registry.ConstantRedefinedError
	if errors.As(err, &redefined) {
		return errConstantRedefined(redefined.Name)
	}

	var nested *registry.NestedProviderError
	if errors.As(err, &nested) {
		return errNestedProvider(nested.Name)
	}

	var invalid *registry.InvalidConfigError
	if errors.As(err, &invalid) {
		return errInvalidConfig(invalid.Name, invalid.Reason)
	}

	return newError(ErrCodeUnknown, "registration failed", err)
}

// wrapResolveErr translates engine errors into coded errors. Cycle errors
// keep their owner-qualified path untouched.
func wrapResolveErr(name string, err error) error {
	if err == nil {
		return nil
	}

	var cycle *resolve.CycleError
	if errors.As(err, &cycle) {
		return errCircularDependency(cycle.Owner, cycle.Path)
	}

	var notFound *resolve.NotFoundError
	if errors.As(err, &notFound) {
		if notFound.Name == name {
			return errNotFound(name, nil)
		}
		return errNotFound(notFound.Name, err)
	}

	return errResolutionFailed(name, err)
}

// hasCode walks the whole chain so wrapped causes (e.g. a configuration
// error inside a module build failure) still match.
func hasCode(err error, code ErrorCode) bool {
	return errors.Is(err, &Error{Code: code})
}

func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

func IsCircularDependency(err error) bool {
	return hasCode(err, ErrCodeCircularDependency)
}

// IsConfiguration reports whether err carries any registration-time
// configuration error.
func IsConfiguration(err error) bool {
	return hasCode(err, ErrCodeUnknownStrategy) ||
		hasCode(err, ErrCodeConstantRedefined) ||
		hasCode(err, ErrCodeNestedProvider) ||
		hasCode(err, ErrCodeInvalidConfig)
}

func IsResolutionFailed(err error) bool {
	return hasCode(err, ErrCodeResolutionFailed)
}

func IsValidationFailed(err error) bool {
	return hasCode(err, ErrCodeValidationFailed)
}
