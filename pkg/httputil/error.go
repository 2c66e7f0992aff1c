package httputil

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// HTTPError is used for error responses that contain a body.
type HTTPError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// NewError writes err as HTTPError with the given status.
//
// For server errors, the error is logged and users get a generic message
// containing the request ID instead of the internals.
func NewError(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		err = fmt.Errorf("an error occurred on the server during your request, please contact your server administrator. The request id is '%v', send this to your server administrator to help them finding the problem", requestid.Get(c))
	}

	c.AbortWithStatusJSON(status, HTTPError{
		Error: err.Error(),
	})
}
