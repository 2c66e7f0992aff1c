package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerly/backend/pkg/httputil"
	"github.com/ledgerly/backend/pkg/models"
	"gorm.io/gorm/clause"
)

type UserEditable struct {
	Name  string `json:"name" example:"Ada"`             // Name used in notifications
	Email string `json:"email" example:"ada@example.com"` // Address notifications are sent to
}

type UserResponse struct {
	Data  *models.User `json:"data"`                                                         // Data for the user
	Error *string      `json:"error,omitempty" example:"the email address must not be empty"` // The error, if any occurred
}

// RegisterUserRoutes registers the routes for the current user with
// the RouterGroup that is passed.
func (co Controller) RegisterUserRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/me", co.OptionsUser)
	r.GET("/me", co.GetUser)
	r.PUT("/me", co.SetUser)
}

// OptionsUser returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Users
//	@Success		204
//	@Router			/v1/users/me [options]
func (co Controller) OptionsUser(c *gin.Context) {
	httputil.OptionsGetPut(c)
}

// GetUser returns the requesting user
//
//	@Summary		Get user
//	@Description	Returns the user identified by the X-User-ID header
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	UserResponse
//	@Failure		401	{object}	UserResponse
//	@Failure		404	{object}	UserResponse
//	@Failure		500	{object}	UserResponse
//	@Router			/v1/users/me [get]
func (co Controller) GetUser(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var user models.User
	err := co.DB.WithContext(c).Where(&models.User{ID: ownerID}).First(&user).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, UserResponse{Data: &user})
}

// SetUser creates or updates the requesting user
//
//	@Summary		Set user
//	@Description	Creates the user identified by the X-User-ID header or updates name and email
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	UserResponse
//	@Failure		400		{object}	UserResponse
//	@Failure		401		{object}	UserResponse
//	@Failure		500		{object}	UserResponse
//	@Param			user	body		UserEditable	true	"User"
//	@Router			/v1/users/me [put]
func (co Controller) SetUser(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var editable UserEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{Error: &e})
		return
	}

	user := models.User{
		ID:    ownerID,
		Name:  editable.Name,
		Email: editable.Email,
	}

	db := co.DB.WithContext(c)
	err := db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "email", "updated_at"}),
		}).
		Create(&user).Error
	if err == nil {
		err = db.Where(&models.User{ID: ownerID}).First(&user).Error
	}
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, UserResponse{Data: &user})
}
