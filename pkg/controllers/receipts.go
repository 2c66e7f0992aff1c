package controllers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ledgerly/backend/pkg/httputil"
	"github.com/ledgerly/backend/pkg/models"
	"github.com/ledgerly/backend/pkg/receipt"
)

// maxReceiptSize is the largest image accepted for scanning
const maxReceiptSize = 10 << 20

type ReceiptResponse struct {
	Data  *receipt.Receipt `json:"data"`                                                         // The transaction suggested by the receipt
	Error *string          `json:"error,omitempty" example:"the image does not show a receipt"` // The error, if any occurred
}

// RegisterReceiptRoutes registers the routes for receipts with
// the RouterGroup that is passed.
func (co Controller) RegisterReceiptRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/scan", co.OptionsReceiptScan)
	r.POST("/scan", co.ScanReceipt)
}

// OptionsReceiptScan returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Receipts
//	@Success		204
//	@Router			/v1/receipts/scan [options]
func (co Controller) OptionsReceiptScan(c *gin.Context) {
	httputil.OptionsPost(c)
}

// ScanReceipt extracts a transaction from a receipt image
//
//	@Summary		Scan receipt
//	@Description	Reads amount, date, merchant and category from a receipt image. The category rules of the user are applied to the result. Nothing is stored.
//	@Tags			Receipts
//	@Accept			multipart/form-data
//	@Produce		json
//	@Success		200		{object}	ReceiptResponse
//	@Failure		400		{object}	ReceiptResponse
//	@Failure		401		{object}	ReceiptResponse
//	@Failure		413		{object}	ReceiptResponse
//	@Failure		415		{object}	ReceiptResponse
//	@Failure		422		{object}	ReceiptResponse
//	@Failure		500		{object}	ReceiptResponse
//	@Failure		502		{object}	ReceiptResponse
//	@Failure		503		{object}	ReceiptResponse
//	@Param			file	formData	file	true	"Receipt image (JPEG, PNG, WEBP or HEIC)"
//	@Router			/v1/receipts/scan [post]
func (co Controller) ScanReceipt(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	if co.Scanner == nil {
		e := errScannerDisabled.Error()
		c.JSON(status(errScannerDisabled), ReceiptResponse{Error: &e})
		return
	}

	image, mimeType, err := readImage(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReceiptResponse{Error: &e})
		return
	}

	scanned, err := co.Scanner.Scan(c, image, mimeType)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReceiptResponse{Error: &e})
		return
	}

	rules, err := models.CategoryRules(co.DB.WithContext(c), ownerID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReceiptResponse{Error: &e})
		return
	}

	scanned = receipt.ApplyRules(scanned, rules)
	c.JSON(http.StatusOK, ReceiptResponse{Data: &scanned})
}

// readImage reads the uploaded image from the "file" form field.
//
// The MIME type is taken from the part header and detected from the content
// if the client did not send a specific one.
func readImage(c *gin.Context) ([]byte, string, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, "", errNoFilePost
	}

	if header.Size > maxReceiptSize {
		return nil, "", errFileTooLarge
	}

	f, err := header.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	image, err := io.ReadAll(io.LimitReader(f, maxReceiptSize+1))
	if err != nil {
		return nil, "", err
	}

	if len(image) > maxReceiptSize {
		return nil, "", errFileTooLarge
	}

	mimeType := strings.ToLower(header.Header.Get("Content-Type"))
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(image)
	}

	// Drop parameters, e.g. "image/png; charset=binary"
	mimeType, _, _ = strings.Cut(mimeType, ";")
	return image, strings.TrimSpace(mimeType), nil
}
