package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerly/backend/pkg/httputil"
	"github.com/ledgerly/backend/pkg/jobs"
	"github.com/ledgerly/backend/pkg/scheduler"
)

type RecurrenceSweepResponse struct {
	Data  *scheduler.RecurrenceResult `json:"data"`                                                                // Result of the sweep
	Error *string                     `json:"error,omitempty" example:"a sweep of this kind is already running"` // The error, if any occurred
}

type BudgetSweepResponse struct {
	Data  *scheduler.BudgetResult `json:"data"`                                                                // Result of the sweep
	Error *string                 `json:"error,omitempty" example:"a sweep of this kind is already running"` // The error, if any occurred
}

type JobListResponse struct {
	Data []jobs.RecurringJob `json:"data"` // List of jobs, oldest first
}

type JobResponse struct {
	Data  *jobs.RecurringJob `json:"data"`                                                       // Data for the job
	Error *string            `json:"error,omitempty" example:"there is no job matching your query"` // The error, if any occurred
}

// RegisterSweepRoutes registers the routes for sweeps with
// the RouterGroup that is passed.
func (co Controller) RegisterSweepRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/recurrence", co.OptionsSweep)
	r.POST("/recurrence", co.RunRecurrenceSweep)
	r.OPTIONS("/budget-alerts", co.OptionsSweep)
	r.POST("/budget-alerts", co.RunBudgetSweep)

	r.OPTIONS("/jobs", co.OptionsJobs)
	r.GET("/jobs", co.GetJobs)
	r.OPTIONS("/jobs/:id", co.OptionsJobs)
	r.GET("/jobs/:id", co.GetJob)
}

// OptionsSweep returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Sweeps
//	@Success		204
//	@Router			/v1/sweeps/recurrence [options]
//	@Router			/v1/sweeps/budget-alerts [options]
func (co Controller) OptionsSweep(c *gin.Context) {
	httputil.OptionsPost(c)
}

// OptionsJobs returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Sweeps
//	@Success		204
//	@Router			/v1/sweeps/jobs [options]
//	@Router			/v1/sweeps/jobs/{id} [options]
func (co Controller) OptionsJobs(c *gin.Context) {
	httputil.OptionsGet(c)
}

// RunRecurrenceSweep runs the recurrence sweep
//
//	@Summary		Run recurrence sweep
//	@Description	Finds all recurring transactions that are due and dispatches one job for each of them. The jobs are processed asynchronously.
//	@Tags			Sweeps
//	@Produce		json
//	@Success		200	{object}	RecurrenceSweepResponse
//	@Failure		409	{object}	RecurrenceSweepResponse
//	@Failure		500	{object}	RecurrenceSweepResponse
//	@Router			/v1/sweeps/recurrence [post]
func (co Controller) RunRecurrenceSweep(c *gin.Context) {
	result, err := co.Sweeps.Run(c, scheduler.KindRecurrence)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurrenceSweepResponse{Error: &e})
		return
	}

	r := result.(scheduler.RecurrenceResult)
	c.JSON(http.StatusOK, RecurrenceSweepResponse{Data: &r})
}

// RunBudgetSweep runs the budget alert sweep
//
//	@Summary		Run budget alert sweep
//	@Description	Checks all budgets and sends an alert to every user who used at least 80% of their budget and was not alerted this month
//	@Tags			Sweeps
//	@Produce		json
//	@Success		200	{object}	BudgetSweepResponse
//	@Failure		409	{object}	BudgetSweepResponse
//	@Failure		500	{object}	BudgetSweepResponse
//	@Router			/v1/sweeps/budget-alerts [post]
func (co Controller) RunBudgetSweep(c *gin.Context) {
	result, err := co.Sweeps.Run(c, scheduler.KindBudgetAlerts)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetSweepResponse{Error: &e})
		return
	}

	r := result.(scheduler.BudgetResult)
	c.JSON(http.StatusOK, BudgetSweepResponse{Data: &r})
}

// GetJobs returns all recurring transaction jobs
//
//	@Summary		List jobs
//	@Description	Returns all jobs dispatched by the recurrence sweep since the server started
//	@Tags			Sweeps
//	@Produce		json
//	@Success		200	{object}	JobListResponse
//	@Router			/v1/sweeps/jobs [get]
func (co Controller) GetJobs(c *gin.Context) {
	data := make([]jobs.RecurringJob, 0)
	data = append(data, co.Jobs.Jobs()...)

	c.JSON(http.StatusOK, JobListResponse{Data: data})
}

// GetJob returns a specific job
//
//	@Summary		Get job
//	@Description	Returns a specific job
//	@Tags			Sweeps
//	@Produce		json
//	@Success		200	{object}	JobResponse
//	@Failure		404	{object}	JobResponse
//	@Param			id	path		string	true	"ID of the job"
//	@Router			/v1/sweeps/jobs/{id} [get]
func (co Controller) GetJob(c *gin.Context) {
	job, ok := co.Jobs.Job(c.Param("id"))
	if !ok {
		e := errJobNotFound.Error()
		c.JSON(status(errJobNotFound), JobResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, JobResponse{Data: &job})
}
