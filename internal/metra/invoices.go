package metra

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// InvoiceService manages faktura documents, including their soft-delete
// lifecycle: delete marks, restore clears the mark, force-delete purges.
type InvoiceService struct {
	client *Session
	logger *zap.Logger
}

func (s *InvoiceService) Materials(ctx context.Context, rentID int) ([]Material, error) {
	req, err := s.client.authRequest(ctx)
	if err != nil {
		return nil, err
	}
	body, err := s.client.do(req, http.MethodGet, fmt.Sprintf("/faktura-return/show/materials/%d", rentID))
	if err != nil {
		return nil, fmt.Errorf("rent %d: %w", rentID, err)
	}
	return decodeList[Material](body)
}

func (s *InvoiceService) GetByID(ctx context.Context, id int) (Invoice, error) {
	req, err := s.client.authRequest(ctx)
	if err != nil {
		return Invoice{}, err
	}
	body, err := s.client.do(req, http.MethodGet, fmt.Sprintf("/faktura-return/%d", id))
	if err != nil {
		return Invoice{}, fmt.Errorf("invoice %d: %w", id, err)
	}
	return decodeObject[Invoice](body)
}

// Wire bodies. The backend wants branch_id and client_id as strings on
// create, fines without ids, and details keyed by material.

type invoiceDetailBody struct {
	ID           *int     `json:"id,omitempty"`
	MaterialID   int      `json:"material_id"`
	MaterialName string   `json:"material_name,omitempty"`
	UnitName     string   `json:"unit_name,omitempty"`
	Count        int      `json:"count"`
	Period       *string  `json:"period"`
	Sum          *float64 `json:"summa"`
	RentPrice    *float64 `json:"material_rent_price"`
}

type invoiceFineBody struct {
	ID          *int    `json:"id"`
	Sum         float64 `json:"summa"`
	Description string  `json:"description"`
}

type invoiceCreateBody struct {
	BranchID            string              `json:"branch_id"`
	ClientID            string              `json:"client_id"`
	RentID              int                 `json:"rent_id"`
	Description         string              `json:"description,omitempty"`
	DiscountAmount      *float64            `json:"skidka_summa"`
	DiscountDescription string              `json:"skidka_description,omitempty"`
	Details             []invoiceDetailBody `json:"details"`
	Fines               []invoiceFineBody   `json:"fines"`
}

type invoiceUpdateBody struct {
	ID                  int                 `json:"id"`
	BranchID            int                 `json:"branch_id"`
	BranchName          string              `json:"branch_name"`
	ClientID            int                 `json:"client_id"`
	ClientName          string              `json:"client_name"`
	Date                string              `json:"date"`
	RentDate            string              `json:"rent_date"`
	RentID              int                 `json:"rent_id"`
	RentNumber          string              `json:"rent_number"`
	FakturaNumber       string              `json:"faktura_number"`
	PaymentStatus       string              `json:"payment_status"`
	ResponsibleWorker   string              `json:"responsible_worker"`
	Description         string              `json:"description,omitempty"`
	DiscountAmount      *float64            `json:"skidka_summa"`
	DiscountDescription string              `json:"skidka_description,omitempty"`
	DeletedAt           *string             `json:"deleted_at"`
	DeleteList          []int               `json:"delete_list"`
	Details             []invoiceDetailBody `json:"details"`
	Fines               []invoiceFineBody   `json:"fines"`
}

func detailBodies(details []InvoiceDetailRequest, withNames bool) []invoiceDetailBody {
	out := make([]invoiceDetailBody, 0, len(details))
	for _, d := range details {
		body := invoiceDetailBody{
			ID:         d.ID,
			MaterialID: d.MaterialID,
			Count:      d.Count,
			Period:     d.Period,
			Sum:        d.Sum,
			RentPrice:  d.RentPrice,
		}
		if withNames {
			body.MaterialName = d.MaterialName
			body.UnitName = d.UnitName
		}
		out = append(out, body)
	}
	return out
}

func fineBodies(fines []InvoiceFineRequest) []invoiceFineBody {
	out := make([]invoiceFineBody, 0, len(fines))
	for _, f := range fines {
		out = append(out, invoiceFineBody{ID: f.ID, Sum: f.Sum, Description: f.Description})
	}
	return out
}

func (s *InvoiceService) Create(ctx context.Context, request InvoiceCreateRequest) (Invoice, error) {
	if err := s.client.validateRequest(request); err != nil {
		return Invoice{}, err
	}
	req, err := s.client.authRequest(ctx)
	if err != nil {
		return Invoice{}, err
	}

	wire := invoiceCreateBody{
		BranchID:            strconv.Itoa(request.BranchID),
		ClientID:            strconv.Itoa(request.ClientID),
		RentID:              request.RentID,
		Description:         request.Description,
		DiscountAmount:      request.DiscountAmount,
		DiscountDescription: request.DiscountDescription,
		Details:             detailBodies(request.Details, false),
		Fines:               fineBodies(request.Fines),
	}
	body, err := s.client.do(req.SetBody(wire), http.MethodPost, "/faktura-return")
	if err != nil {
		return Invoice{}, err
	}
	invoice, err := decodeObject[Invoice](body)
	if err != nil {
		return Invoice{}, err
	}
	s.logger.Info("invoice created", zap.Int("id", invoice.ID), zap.Int("rent_id", request.RentID))
	return invoice, nil
}

func (s *InvoiceService) Update(ctx context.Context, id int, request InvoiceUpdateRequest) (Invoice, error) {
	if err := s.client.validateRequest(request); err != nil {
		return Invoice{}, err
	}
	req, err := s.client.authRequest(ctx)
	if err != nil {
		return Invoice{}, err
	}

	wire := invoiceUpdateBody{
		ID:                  id,
		BranchID:            request.BranchID,
		BranchName:          request.BranchName,
		ClientID:            request.ClientID,
		ClientName:          request.ClientName,
		Date:                request.Date,
		RentDate:            request.RentDate,
		RentID:              request.RentID,
		RentNumber:          request.RentNumber,
		FakturaNumber:       request.FakturaNumber,
		PaymentStatus:       request.PaymentStatus,
		ResponsibleWorker:   request.ResponsibleWorker,
		Description:         request.Description,
		DiscountAmount:      request.DiscountAmount,
		DiscountDescription: request.DiscountDescription,
		DeletedAt:           request.DeletedAt,
		DeleteList:          request.DeleteList,
		Details:             detailBodies(request.Details, true),
		Fines:               fineBodies(request.Fines),
	}
	body, err := s.client.do(req.SetBody(wire), http.MethodPut, fmt.Sprintf("/faktura-return/%d", id))
	if err != nil {
		return Invoice{}, fmt.Errorf("invoice %d: %w", id, err)
	}
	invoice, err := decodeObject[Invoice](body)
	if err != nil {
		return Invoice{}, err
	}
	s.logger.Info("invoice updated", zap.Int("id", id))
	return invoice, nil
}

// Delete soft-deletes the invoice; Restore brings it back.
func (s *InvoiceService) Delete(ctx context.Context, id int) error {
	return s.lifecycle(ctx, id, http.MethodDelete, fmt.Sprintf("/faktura-return/delete/%d", id), "deleted")
}

// ForceDelete purges the invoice permanently, whether active or
// soft-deleted. There is no way back from this one.
func (s *InvoiceService) ForceDelete(ctx context.Context, id int) error {
	return s.lifecycle(ctx, id, http.MethodDelete, fmt.Sprintf("/faktura-return/force-delete/%d", id), "purged")
}

// Restore clears the soft-delete marker. The backend models this as a GET.
func (s *InvoiceService) Restore(ctx context.Context, id int) error {
	return s.lifecycle(ctx, id, http.MethodGet, fmt.Sprintf("/faktura-return/restore/%d", id), "restored")
}

func (s *InvoiceService) lifecycle(ctx context.Context, id int, method, path, action string) error {
	req, err := s.client.authRequest(ctx)
	if err != nil {
		return err
	}
	body, err := s.client.do(req, method, path)
	if err != nil {
		return fmt.Errorf("invoice %d: %w", id, err)
	}
	if err := decodeAck(body); err != nil {
		return err
	}
	s.logger.Info("invoice "+action, zap.Int("id", id))
	return nil
}
