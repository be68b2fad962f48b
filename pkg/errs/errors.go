package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer         = http.StatusInternalServerError
	ErrStatusClient                 = http.StatusBadRequest
	ErrStatusUnauthorized           = http.StatusUnauthorized
	ErrStatusNotFound               = http.StatusNotFound
	ErrStatusFileSizeExceedingLimit = http.StatusRequestEntityTooLarge
)

var (
	ErrInternalServer         = errors.New("Internal server error")
	ErrClient                 = errors.New("Bad request")
	ErrInvalidCredentials     = errors.New("Invalid username or password")
	ErrWrongPassword          = errors.New("Current password is incorrect")
	ErrNotFound               = errors.New("Resource not found")
	ErrFileSizeExceedingLimit = errors.New("Uploaded file exceeds the size limit")
	ErrInvalidFilename        = errors.New("Uploaded file has an invalid filename")
)

var errorMap = map[error]int{
	ErrInternalServer:         ErrStatusInternalServer,
	ErrClient:                 ErrStatusClient,
	ErrInvalidCredentials:     ErrStatusUnauthorized,
	ErrWrongPassword:          ErrStatusUnauthorized,
	ErrNotFound:               ErrStatusNotFound,
	ErrFileSizeExceedingLimit: ErrStatusFileSizeExceedingLimit,
	ErrInvalidFilename:        ErrStatusClient,
}

func GetErrorStatusCode(err error) int {
	errStatusCode, ok := errorMap[err]
	if !ok {
		errStatusCode = errorMap[ErrInternalServer]
	}
	return errStatusCode
}
