// Package dashboard aggregates the headline figures shown on the back office
// landing page.
package dashboard

import (
	"context"

	"buildledger/internal/domain/client"
	"buildledger/internal/domain/invoice"
	"buildledger/internal/domain/project"
	"buildledger/internal/domain/quotation"
)

const recentLimit = 5

type Stats struct {
	TotalRevenue     float64                      `json:"totalRevenue"`
	PendingAmount    float64                      `json:"pendingAmount"`
	TotalQuotations  int                          `json:"totalQuotations"`
	TotalInvoices    int                          `json:"totalInvoices"`
	TotalClients     int                          `json:"totalClients"`
	ActiveProjects   int                          `json:"activeProjects"`
	RecentQuotations []quotation.QuotationDetails `json:"recentQuotations"`
	RecentInvoices   []invoice.InvoiceDetails     `json:"recentInvoices"`
}

type QuotationLister interface {
	ListDetails(ctx context.Context) ([]quotation.QuotationDetails, error)
}

type InvoiceLister interface {
	ListDetails(ctx context.Context) ([]invoice.InvoiceDetails, error)
}

type ClientLister interface {
	List(ctx context.Context) ([]client.Client, error)
}

type ProjectLister interface {
	List(ctx context.Context) ([]project.Project, error)
}

type Service struct {
	quotations QuotationLister
	invoices   InvoiceLister
	clients    ClientLister
	projects   ProjectLister
}

func NewService(quotations QuotationLister, invoices InvoiceLister, clients ClientLister, projects ProjectLister) *Service {
	return &Service{quotations: quotations, invoices: invoices, clients: clients, projects: projects}
}

// Stats computes revenue from paid invoices, the outstanding balance of
// unpaid and partially paid ones, and the most recently stored documents,
// newest first.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	quotations, err := s.quotations.ListDetails(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoices.ListDetails(ctx)
	if err != nil {
		return nil, err
	}
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}

	st := &Stats{
		TotalQuotations:  len(quotations),
		TotalInvoices:    len(invoices),
		TotalClients:     len(clients),
		RecentQuotations: newestFirst(quotations, recentLimit),
		RecentInvoices:   newestFirst(invoices, recentLimit),
	}
	for _, inv := range invoices {
		if inv.PaymentStatus == invoice.PaymentPaid {
			st.TotalRevenue += inv.AmountPaid
		} else {
			st.PendingAmount += inv.Balance()
		}
	}
	for _, p := range projects {
		if p.Status == project.StatusActive {
			st.ActiveProjects++
		}
	}
	return st, nil
}

// newestFirst returns up to n trailing elements of items in reverse order.
// Collections are append-only in storage order, so the tail is the newest.
func newestFirst[T any](items []T, n int) []T {
	if len(items) < n {
		n = len(items)
	}
	out := make([]T, 0, n)
	for i := len(items) - 1; i >= len(items)-n; i-- {
		out = append(out, items[i])
	}
	return out
}
