package split

import "net/http"

type ErrorCode string

const (
	ErrTableIDRequired       ErrorCode = "TABLE_ID_REQUIRED"
	ErrOrderIDRequired       ErrorCode = "ORDER_ID_REQUIRED"
	ErrSplitTypeRequired     ErrorCode = "SPLIT_TYPE_REQUIRED"
	ErrSplitTypeInvalid      ErrorCode = "SPLIT_TYPE_INVALID"
	ErrCountInvalid          ErrorCode = "SPLIT_COUNT_INVALID"
	ErrPercentagesRequired   ErrorCode = "SPLIT_PERCENTAGES_REQUIRED"
	ErrPercentageNotPositive ErrorCode = "SPLIT_PERCENTAGE_NOT_POSITIVE"
	ErrPercentageSumMismatch ErrorCode = "SPLIT_PERCENTAGE_SUM_MISMATCH"
)

type Error struct {
	Code       ErrorCode
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	return e.Message
}

func ValidationError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, StatusCode: http.StatusBadRequest}
}
