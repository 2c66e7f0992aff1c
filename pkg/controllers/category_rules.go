package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerly/backend/pkg/httputil"
	"github.com/ledgerly/backend/pkg/models"
)

type CategoryRuleEditable struct {
	Priority uint   `json:"priority" example:"3"`       // Rules with a higher priority are evaluated first
	Match    string `json:"match" example:"*coffee*"`  // Glob pattern matched against the merchant name
	Category string `json:"category" example:"food"`   // Category assigned on match
}

type CategoryRuleResponse struct {
	Data  *models.CategoryRule `json:"data"`                                                          // Data for the category rule
	Error *string              `json:"error,omitempty" example:"the match pattern must not be empty"` // The error, if any occurred
}

type CategoryRuleListResponse struct {
	Data  []models.CategoryRule `json:"data"`                                                       // List of category rules
	Error *string               `json:"error,omitempty" example:"the X-User-ID header must be set"` // The error, if any occurred
}

// RegisterCategoryRuleRoutes registers the routes for category rules with
// the RouterGroup that is passed.
func (co Controller) RegisterCategoryRuleRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsCategoryRuleList)
		r.GET("", co.GetCategoryRules)
		r.POST("", co.CreateCategoryRule)
	}

	// Category rule with ID
	{
		r.OPTIONS("/:id", co.OptionsCategoryRuleDetail)
		r.DELETE("/:id", co.DeleteCategoryRule)
	}
}

// OptionsCategoryRuleList returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			CategoryRules
//	@Success		204
//	@Router			/v1/category-rules [options]
func (co Controller) OptionsCategoryRuleList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsCategoryRuleDetail returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			CategoryRules
//	@Success		204
//	@Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/category-rules/{id} [options]
func (co Controller) OptionsCategoryRuleDetail(c *gin.Context) {
	httputil.OptionsDelete(c)
}

// GetCategoryRules returns all category rules of the user
//
//	@Summary		List category rules
//	@Description	Returns all category rules of the user, highest priority first
//	@Tags			CategoryRules
//	@Produce		json
//	@Success		200	{object}	CategoryRuleListResponse
//	@Failure		401	{object}	CategoryRuleListResponse
//	@Failure		500	{object}	CategoryRuleListResponse
//	@Router			/v1/category-rules [get]
func (co Controller) GetCategoryRules(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	rules, err := models.CategoryRules(co.DB.WithContext(c), ownerID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryRuleListResponse{Error: &e})
		return
	}

	data := make([]models.CategoryRule, 0, len(rules))
	data = append(data, rules...)

	c.JSON(http.StatusOK, CategoryRuleListResponse{Data: data})
}

// CreateCategoryRule creates a category rule
//
//	@Summary		Create category rule
//	@Description	Creates a rule that assigns a category to scanned receipts by merchant name
//	@Tags			CategoryRules
//	@Accept			json
//	@Produce		json
//	@Success		201		{object}	CategoryRuleResponse
//	@Failure		400		{object}	CategoryRuleResponse
//	@Failure		401		{object}	CategoryRuleResponse
//	@Failure		500		{object}	CategoryRuleResponse
//	@Param			rule	body		CategoryRuleEditable	true	"Category rule"
//	@Router			/v1/category-rules [post]
func (co Controller) CreateCategoryRule(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var editable CategoryRuleEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryRuleResponse{Error: &e})
		return
	}

	rule := models.CategoryRule{
		OwnerID:  ownerID,
		Priority: editable.Priority,
		Match:    editable.Match,
		Category: editable.Category,
	}

	if err := co.DB.WithContext(c).Create(&rule).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryRuleResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, CategoryRuleResponse{Data: &rule})
}

// DeleteCategoryRule deletes a category rule
//
//	@Summary		Delete category rule
//	@Description	Deletes a category rule
//	@Tags			CategoryRules
//	@Success		204
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		401	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/category-rules/{id} [delete]
func (co Controller) DeleteCategoryRule(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	db := co.DB.WithContext(c)

	var rule models.CategoryRule
	err := db.Where(&models.CategoryRule{DefaultModel: models.DefaultModel{ID: uri.ID.UUID}, OwnerID: ownerID}).First(&rule).Error
	if err == nil {
		err = db.Delete(&rule).Error
	}
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.Status(http.StatusNoContent)
}
