package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/invobook/invobook/internal/invoice/domain"
	"github.com/invobook/invobook/internal/invoice/generate"
	"github.com/invobook/invobook/pkg/db/pagination"
	"go.uber.org/zap"
)

func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoicedomain.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.ObserveInvoiceCreated(string(resp.Invoice.Status))

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListInvoices(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		PageToken: query.PageToken,
		PageSize:  int32(query.PageSize),
		Status:    query.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoice(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateInvoice(c *gin.Context) {
	var req invoicedomain.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = c.Param("id")

	resp, err := s.invoiceSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	if err := s.invoiceSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// DownloadInvoicePDF renders the invoice through the background generator
// and streams the result. The render is tied to the request context, so a
// dropped connection cancels it.
func (s *Server) DownloadInvoicePDF(c *gin.Context) {
	ctx := c.Request.Context()

	start := time.Now()
	job, inv, err := s.invoiceSvc.ExportPDF(ctx, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := job.Wait(ctx)
	if err != nil {
		// A dropped connection surfaces as the caller's context error
		// here, not as the job's own sentinel; both are the canceled
		// outcome, never a render failure.
		if generate.IsCanceled(err) {
			s.metrics.ObserveRender("canceled", time.Since(start))
			c.Abort()
			return
		}
		s.metrics.ObserveRender("error", time.Since(start))
		s.log.Error("invoice render failed",
			zap.String("invoice_id", c.Param("id")),
			zap.Error(err),
		)
		AbortWithError(c, ErrInternal)
		return
	}
	s.metrics.ObserveRender("success", time.Since(start))

	filename := fmt.Sprintf("%s.pdf", inv.InvoiceNumber)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", doc.Bytes())
}
