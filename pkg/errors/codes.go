package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_005"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_006"
	ErrCodeTimeout            ErrorCode = "COMMON_007"
	ErrCodeValidation         ErrorCode = "COMMON_008"
	ErrCodeSerialization      ErrorCode = "COMMON_009"
	ErrCodeNotImplemented     ErrorCode = "COMMON_010"
)

// Aliases used throughout the codebase
const (
	CodeInternal       = ErrCodeInternal
	CodeInvalidParam   = ErrCodeBadRequest
	CodeNotFound       = ErrCodeNotFound
	CodeConflict       = ErrCodeConflict
	CodeRateLimit      = ErrCodeTooManyRequests
	CodeNotImplemented = ErrCodeNotImplemented
	CodeOK             = ErrorCode("OK")
	CodeUnknown        = ErrorCode("UNKNOWN")

	// Domain specific aliases
	CodeChemParseFailed   = ErrCodeChemParseFailed
	CodeModelNotLoaded    = ErrCodeModelNotLoaded
	CodeFeatureMismatch   = ErrCodeFeatureMismatch
	CodeTrainingFailed    = ErrCodeTrainingFailed
	CodeModelCorrupt      = ErrCodeModelCorrupt
	CodeModelSaveFailed   = ErrCodeModelSaveFailed
	CodeDatasetNotFound   = ErrCodeDatasetNotFound
	CodeDatasetRowInvalid = ErrCodeDatasetRowInvalid
	CodeDatasetEmpty      = ErrCodeDatasetEmpty
)

// Chemistry Module Error Codes
const (
	ErrCodeChemParseFailed      ErrorCode = "CHEM_001"
	ErrCodeChemUnknownElement   ErrorCode = "CHEM_002"
	ErrCodeChemEmptyInput       ErrorCode = "CHEM_003"
	ErrCodeFingerprintFailed    ErrorCode = "CHEM_004"
	ErrCodeSimilarityThreshold  ErrorCode = "CHEM_005"
)

// QSAR Module Error Codes
const (
	ErrCodeModelNotLoaded    ErrorCode = "QSAR_001"
	ErrCodeFeatureMismatch   ErrorCode = "QSAR_002"
	ErrCodeTrainingFailed    ErrorCode = "QSAR_003"
	ErrCodeModelCorrupt      ErrorCode = "QSAR_004"
	ErrCodeModelSaveFailed   ErrorCode = "QSAR_005"
)

// Dataset Error Codes
const (
	ErrCodeDatasetNotFound   ErrorCode = "DATA_001"
	ErrCodeDatasetRowInvalid ErrorCode = "DATA_002"
	ErrCodeDatasetEmpty      ErrorCode = "DATA_003"
	ErrCodeDatasetWriteFailed ErrorCode = "DATA_004"
)

// Screening Module Error Codes
const (
	ErrCodeScreeningFailed   ErrorCode = "SCR_001"
	ErrCodeBatchInputInvalid ErrorCode = "SCR_002"
)

// Report Module Error Codes
const (
	ErrCodeReportRenderFailed     ErrorCode = "RPT_001"
	ErrCodeReportFormatUnsupported ErrorCode = "RPT_002"
)

// Configuration Error Codes
const (
	ErrCodeConfigLoadFailed ErrorCode = "CFG_001"
	ErrCodeConfigInvalid    ErrorCode = "CFG_002"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeChemParseFailed:     http.StatusBadRequest,
	ErrCodeChemUnknownElement:  http.StatusBadRequest,
	ErrCodeChemEmptyInput:      http.StatusBadRequest,
	ErrCodeFingerprintFailed:   http.StatusInternalServerError,
	ErrCodeSimilarityThreshold: http.StatusBadRequest,

	ErrCodeModelNotLoaded:  http.StatusServiceUnavailable,
	ErrCodeFeatureMismatch: http.StatusInternalServerError,
	ErrCodeTrainingFailed:  http.StatusInternalServerError,
	ErrCodeModelCorrupt:    http.StatusInternalServerError,
	ErrCodeModelSaveFailed: http.StatusInternalServerError,

	ErrCodeDatasetNotFound:    http.StatusNotFound,
	ErrCodeDatasetRowInvalid:  http.StatusBadRequest,
	ErrCodeDatasetEmpty:       http.StatusBadRequest,
	ErrCodeDatasetWriteFailed: http.StatusInternalServerError,

	ErrCodeScreeningFailed:   http.StatusInternalServerError,
	ErrCodeBatchInputInvalid: http.StatusBadRequest,

	ErrCodeReportRenderFailed:      http.StatusInternalServerError,
	ErrCodeReportFormatUnsupported: http.StatusBadRequest,

	ErrCodeConfigLoadFailed: http.StatusInternalServerError,
	ErrCodeConfigInvalid:    http.StatusInternalServerError,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeChemParseFailed:     "failed to parse SMILES",
	ErrCodeChemUnknownElement:  "unknown element in SMILES",
	ErrCodeChemEmptyInput:      "empty SMILES input",
	ErrCodeFingerprintFailed:   "failed to generate fingerprint",
	ErrCodeSimilarityThreshold: "invalid similarity threshold",

	ErrCodeModelNotLoaded:  "solubility model not loaded",
	ErrCodeFeatureMismatch: "model feature set mismatch",
	ErrCodeTrainingFailed:  "model training failed",
	ErrCodeModelCorrupt:    "model artifact corrupt",
	ErrCodeModelSaveFailed: "failed to save model artifact",

	ErrCodeDatasetNotFound:    "dataset not found",
	ErrCodeDatasetRowInvalid:  "invalid dataset row",
	ErrCodeDatasetEmpty:       "dataset contains no usable rows",
	ErrCodeDatasetWriteFailed: "failed to write dataset",

	ErrCodeScreeningFailed:   "screening failed",
	ErrCodeBatchInputInvalid: "invalid batch input",

	ErrCodeReportRenderFailed:      "failed to render report",
	ErrCodeReportFormatUnsupported: "unsupported report format",

	ErrCodeConfigLoadFailed: "failed to load configuration",
	ErrCodeConfigInvalid:    "invalid configuration",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
