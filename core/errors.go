package core

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	WalletErrorValidation         = "WALLET_VALIDATION"
	WalletErrorNotReady           = "WALLET_NOT_READY"
	WalletErrorSessionActive      = "WALLET_SESSION_ACTIVE"
	WalletErrorPresentationFailed = "WALLET_PRESENTATION_FAILED"
	WalletErrorCanceled           = "WALLET_CANCELED"
	WalletErrorFailed             = "WALLET_FAILED"
	WalletErrorUnknown            = "WALLET_UNKNOWN"
	WalletErrorContinuationReplay = "WALLET_CONTINUATION_REPLAY"
	WalletErrorInternal           = "WALLET_INTERNAL_ERROR"
)

func validationError(message string) error {
	return newWalletError(message, goerrors.CategoryValidation, WalletErrorValidation)
}

func notReadyError(message string) error {
	return newWalletError(message, goerrors.CategoryConflict, WalletErrorNotReady)
}

func sessionActiveError(message string) error {
	return newWalletError(message, goerrors.CategoryConflict, WalletErrorSessionActive)
}

func internalError(message string) error {
	return newWalletError(message, goerrors.CategoryInternal, WalletErrorInternal)
}

func presentationError(source error, message string) error {
	return goerrors.Wrap(source, goerrors.CategoryOperation, message).
		WithCode(http.StatusBadGateway).
		WithTextCode(WalletErrorPresentationFailed)
}

// outcomeError maps a terminal sheet outcome onto the caller-facing error
// taxonomy. Success never reaches this function.
func outcomeError(outcome Outcome) error {
	reason := strings.TrimSpace(outcome.Reason)
	switch outcome.Status {
	case OutcomeCanceled:
		if reason == "" {
			reason = "payment was canceled by the user"
		}
		return newWalletError(reason, goerrors.CategoryOperation, WalletErrorCanceled)
	case OutcomeFailure:
		if reason == "" {
			reason = "payment sheet reported a processing failure"
		}
		return newWalletError(reason, goerrors.CategoryOperation, WalletErrorFailed)
	default:
		if reason == "" {
			reason = "payment sheet finished with an unclassified status"
		}
		return newWalletError(reason, goerrors.CategoryInternal, WalletErrorUnknown)
	}
}

func newWalletError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureWalletErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func walletErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureWalletErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "session") && strings.Contains(msg, "active"):
		return newWalletError(err.Error(), goerrors.CategoryConflict, WalletErrorSessionActive)
	case strings.Contains(msg, "not ready"), strings.Contains(msg, "no pending"):
		return newWalletError(err.Error(), goerrors.CategoryConflict, WalletErrorNotReady)
	case strings.Contains(msg, "cancel"):
		return newWalletError(err.Error(), goerrors.CategoryOperation, WalletErrorCanceled)
	case strings.Contains(msg, "present"):
		return newWalletError(err.Error(), goerrors.CategoryOperation, WalletErrorPresentationFailed)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"):
		return newWalletError(err.Error(), goerrors.CategoryValidation, WalletErrorValidation)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureWalletErrorEnvelope(mapped)
}

func ensureWalletErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = walletHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultWalletTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultWalletTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return WalletErrorValidation
	case goerrors.CategoryConflict:
		return WalletErrorNotReady
	case goerrors.CategoryOperation:
		return WalletErrorFailed
	default:
		return WalletErrorInternal
	}
}

func walletHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// HasTextCode reports whether err carries the given wallet text code. Tests
// and callers use it to distinguish cancellation from generic failure.
func HasTextCode(err error, textCode string) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == textCode
}
