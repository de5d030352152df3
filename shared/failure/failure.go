package failure

import (
	"errors"
	"net/http"
)

// Failure carries an HTTP status code with the message returned to the caller.
// Anything that is not a Failure answers 500.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var (
	ForbiddenError          = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
	InvalidID               = &Failure{Code: http.StatusBadRequest, Message: "invalid id"}
	HotelNotFound           = &Failure{Code: http.StatusNotFound, Message: "hotel not found"}
	BookingNotFound         = &Failure{Code: http.StatusNotFound, Message: "booking not found"}
	InvalidWebhookSignature = &Failure{Code: http.StatusUnauthorized, Message: "invalid webhook signature"}
)

// Error returns the message shown to the caller.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
