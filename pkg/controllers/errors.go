package controllers

import (
	"errors"
	"net/http"

	"github.com/ledgerly/backend/pkg/httputil"
	"github.com/ledgerly/backend/pkg/jobs"
	"github.com/ledgerly/backend/pkg/ledger"
	"github.com/ledgerly/backend/pkg/models"
	"github.com/ledgerly/backend/pkg/receipt"
	"github.com/ledgerly/backend/pkg/scheduler"
)

var (
	errNoFilePost      = errors.New("you must send an image in the 'file' form field to this endpoint")
	errFileTooLarge    = errors.New("the image must not be larger than 10 MiB")
	errScannerDisabled = errors.New("receipt scanning is not configured on this server")
	errJobNotFound     = errors.New("there is no job matching your query")
)

// status returns the appropriate HTTP status for an error
func status(err error) int {
	switch {
	case errors.Is(err, httputil.ErrOwnerMissing):
		return http.StatusUnauthorized

	case errors.Is(err, models.ErrGeneral), errors.Is(err, ledger.ErrStorage), errors.Is(err, ledger.ErrNotification):
		return http.StatusInternalServerError

	case errors.Is(err, models.ErrResourceNotFound), errors.Is(err, errJobNotFound):
		return http.StatusNotFound

	case errors.Is(err, scheduler.ErrSweepRunning):
		return http.StatusConflict

	case errors.Is(err, errFileTooLarge):
		return http.StatusRequestEntityTooLarge

	case errors.Is(err, receipt.ErrUnsupportedImage):
		return http.StatusUnsupportedMediaType

	case errors.Is(err, receipt.ErrNotAReceipt):
		return http.StatusUnprocessableEntity

	case errors.Is(err, receipt.ErrInvalidResponse):
		return http.StatusBadGateway

	case errors.Is(err, errScannerDisabled), errors.Is(err, jobs.ErrQueueClosed):
		return http.StatusServiceUnavailable
	}

	return http.StatusBadRequest
}
