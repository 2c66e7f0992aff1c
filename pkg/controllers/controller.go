// Package controllers implements the HTTP handlers of the API.
package controllers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ledgerly/backend/pkg/httputil"
	"github.com/ledgerly/backend/pkg/jobs"
	"github.com/ledgerly/backend/pkg/ledger"
	"github.com/ledgerly/backend/pkg/receipt"
	"github.com/ledgerly/backend/pkg/scheduler"
	"gorm.io/gorm"
)

// SweepRunner runs a sweep synchronously.
type SweepRunner interface {
	Run(ctx context.Context, kind scheduler.Kind) (any, error)
}

// JobStore exposes the state of recurring transaction jobs.
type JobStore interface {
	Jobs() []jobs.RecurringJob
	Job(id string) (jobs.RecurringJob, bool)
}

type Controller struct {
	DB      *gorm.DB
	Poster  ledger.Poster
	Monitor ledger.Monitor
	Sweeps  SweepRunner
	Jobs    JobStore

	// Scanner is optional. Without it, receipt scanning is unavailable.
	Scanner receipt.Scanner

	// Now defaults to time.Now
	Now func() time.Time
}

// New creates a controller with the ledger services on db.
func New(db *gorm.DB, sweeps SweepRunner, store JobStore, scanner receipt.Scanner) Controller {
	return Controller{
		DB:      db,
		Poster:  ledger.Poster{DB: db},
		Monitor: ledger.Monitor{DB: db},
		Sweeps:  sweeps,
		Jobs:    store,
		Scanner: scanner,
	}
}

func (co Controller) now() time.Time {
	if co.Now != nil {
		return co.Now().UTC()
	}
	return time.Now().UTC()
}

// owner returns the ID of the requesting user. If the request does not
// identify one, the error response is written and ok is false.
func owner(c *gin.Context) (id string, ok bool) {
	id, err := httputil.OwnerID(c)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return "", false
	}

	return id, true
}
