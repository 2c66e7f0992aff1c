package controllers

import (
	"github.com/ledgerly/backend/internal/uuid"
)

type URIID struct {
	ID uuid.UUID `uri:"id" binding:"required"` // The ID of the resource
}

type QueryIDs struct {
	IDs uuid.List `form:"ids" binding:"required" swaggertype:"array,string"` // Comma separated list of IDs
}

// Pagination of list responses
type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources returned for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}
