package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// OwnerHeader carries the ID of the authenticated user. Authentication
// happens in front of the API, the value is trusted as is.
const OwnerHeader = "X-User-ID"

// BindData binds the data from the request to the struct passed in the interface.
func BindData(c *gin.Context, data any) error {
	if err := c.ShouldBindJSON(data); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrRequestBodyEmpty
		}

		var jsonUnmarshalTypeError *json.UnmarshalTypeError
		if errors.As(err, &jsonUnmarshalTypeError) {
			return err
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidBody
	}

	return nil
}

// OwnerID returns the ID of the user the request is made for.
func OwnerID(c *gin.Context) (string, error) {
	owner := strings.TrimSpace(c.GetHeader(OwnerHeader))
	if owner == "" {
		return "", ErrOwnerMissing
	}

	return owner, nil
}

// UUIDFromString binds a string to a UUID
func UUIDFromString(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}

	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, ErrInvalidUUID
	}

	return u, nil
}
