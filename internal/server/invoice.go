package server

import (
	"fmt"
	"net/http"

	invoicedomain "github.com/facturio/facturio/internal/invoice/domain"
	"github.com/facturio/facturio/internal/providers/pdf"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListInvoices(c *gin.Context) {
	invoices, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		Status:    invoicedomain.InvoiceStatus(c.Query("status")),
		ClientID:  c.Query("client_id"),
		ProjectID: c.Query("project_id"),
		DateFrom:  c.Query("date_from"),
		DateTo:    c.Query("date_to"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoicedomain.CreateInvoiceRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	invoice, err := s.invoiceSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	invoice, err := s.invoiceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

func (s *Server) UpdateInvoice(c *gin.Context) {
	var req invoicedomain.UpdateInvoiceRequest
	if err := bindAllowList(c, &req, "status", "items", "due_date", "notes", "invoice_date", "tax_rate"); err != nil {
		AbortWithError(c, err)
		return
	}
	req.ID = c.Param("id")

	invoice, err := s.invoiceSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	if err := s.invoiceSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) RenderInvoicePDF(c *gin.Context) {
	ctx := c.Request.Context()

	invoice, err := s.invoiceSvc.GetByID(ctx, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	client, err := s.clientSvc.GetByID(ctx, invoice.ClientID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	project, err := s.projectSvc.GetByID(ctx, invoice.ProjectID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	settings, err := s.settingsSvc.GetOrCreate(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := s.pdfRenderer.RenderInvoice(ctx, pdf.InvoiceData{
		Invoice:  invoice,
		Client:   client,
		Project:  project,
		Settings: settings,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", invoice.Number))
	c.Data(http.StatusOK, "application/pdf", doc)
}
