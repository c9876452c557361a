// Package service implements the invoice editor: it owns the single
// invoice aggregate, serializes mutations, and autosaves the draft.
package service

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/dhruvent/billing/internal/clock"
	"github.com/dhruvent/billing/internal/config"
	domain "github.com/dhruvent/billing/internal/invoice/domain"
	"github.com/dhruvent/billing/internal/invoice/format"
	"github.com/dhruvent/billing/internal/invoice/repository"
)

type ServiceParam struct {
	fx.In

	Cfg    config.Config
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Drafts repository.DraftRepository
}

// Service is the single-aggregate invoice editor. HTTP handlers run
// concurrently, so every aggregate access goes through mu; the export-mode
// flag is presentation-only state and lives outside the lock.
type Service struct {
	log    *zap.Logger
	genID  *snowflake.Node
	clock  clock.Clock
	drafts repository.DraftRepository

	mu  sync.Mutex
	inv *domain.Invoice

	exportMode atomic.Bool
}

func NewService(p ServiceParam) (domain.Service, error) {
	svc := &Service{
		log:    p.Log.Named("invoice.service"),
		genID:  p.GenID,
		clock:  p.Clock,
		drafts: p.Drafts,
	}

	inv, err := p.Drafts.Load(context.Background())
	if err != nil {
		return nil, err
	}
	if inv == nil {
		inv = domain.New(p.Cfg.InvoiceStartNumber, p.Clock.Now(), svc.newID)
		svc.log.Info("invoice.seeded", zap.Int64("invoice_number", inv.Header.InvoiceNumber))
	} else {
		svc.log.Info("invoice.restored", zap.Int64("invoice_number", inv.Header.InvoiceNumber))
	}
	svc.inv = inv

	return svc, nil
}

func (s *Service) Get(ctx context.Context) (domain.StateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state(), nil
}

func (s *Service) UpdateHeader(ctx context.Context, req domain.UpdateHeaderRequest) (domain.StateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	header := &s.inv.Header
	if req.InvoiceNumber != nil {
		header.InvoiceNumber = *req.InvoiceNumber
	}
	if req.InvoiceDate != nil {
		if parsed, err := time.Parse("2006-01-02", strings.TrimSpace(*req.InvoiceDate)); err == nil {
			header.InvoiceDate = parsed
		}
	}
	if req.DeliveryChallanNo != nil {
		header.DeliveryChallanNo = *req.DeliveryChallanNo
	}
	if req.PurchaseOrderNo != nil {
		header.PurchaseOrderNo = *req.PurchaseOrderNo
	}
	if req.VehicleNo != nil {
		header.VehicleNo = *req.VehicleNo
	}
	if req.EWayBillNo != nil {
		header.EWayBillNo = *req.EWayBillNo
	}

	s.persist(ctx)
	return s.state(), nil
}

func (s *Service) UpdateParty(ctx context.Context, kind domain.PartyKind, req domain.PartyRequest) (domain.StateResponse, error) {
	party := domain.Party{
		Name:    req.Name,
		Address: req.Address,
		GSTIN:   req.GSTIN,
		Code:    req.Code,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind {
	case domain.PartyBillTo:
		s.inv.BillTo = party
	case domain.PartyShipTo:
		s.inv.ShipTo = party
	default:
		return domain.StateResponse{}, domain.ErrInvalidPartyKind
	}

	s.persist(ctx)
	return s.state(), nil
}

func (s *Service) CopyBillToShipTo(ctx context.Context) (domain.StateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inv.CopyBillToShipTo()
	s.persist(ctx)
	return s.state(), nil
}

func (s *Service) UpdateBankDetails(ctx context.Context, req domain.BankDetailsRequest) (domain.StateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inv.Bank = domain.BankDetails{
		AccountNumber: req.AccountNumber,
		IFSCCode:      req.IFSCCode,
		Branch:        req.Branch,
	}
	s.persist(ctx)
	return s.state(), nil
}

func (s *Service) UpdateTaxRates(ctx context.Context, req domain.TaxRatesRequest) (domain.StateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.CGSTPercent != nil {
		s.inv.Rates.CGSTPercent = parseRate(*req.CGSTPercent)
	}
	if req.SGSTPercent != nil {
		s.inv.Rates.SGSTPercent = parseRate(*req.SGSTPercent)
	}
	if req.IGSTPercent != nil {
		s.inv.Rates.IGSTPercent = parseRate(*req.IGSTPercent)
	}

	s.persist(ctx)
	return s.state(), nil
}

func (s *Service) AddLineItem(ctx context.Context) (domain.StateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inv.AddItem(s.newID())
	s.persist(ctx)
	return s.state(), nil
}

func (s *Service) UpdateLineItem(ctx context.Context, req domain.UpdateLineItemRequest) (domain.StateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		// Unknown ids are silent no-ops; an unparseable id cannot match
		// any row, so it falls in the same bucket.
		return s.state(), nil
	}

	if !s.inv.UpdateItem(id, strings.TrimSpace(req.Field), req.Value) {
		return domain.StateResponse{}, domain.ErrInvalidLineItemField
	}

	s.persist(ctx)
	return s.state(), nil
}

func (s *Service) RemoveLineItem(ctx context.Context, id string) (domain.StateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return s.state(), nil
	}

	if s.inv.RemoveItem(parsed) {
		s.persist(ctx)
	}
	return s.state(), nil
}

func (s *Service) NewInvoice(ctx context.Context) (domain.StateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inv.ResetForNew(s.clock.Now(), s.newID)
	s.persist(ctx)

	s.log.Info("invoice.new", zap.Int64("invoice_number", s.inv.Header.InvoiceNumber))
	return s.state(), nil
}

func (s *Service) SetExportMode(on bool) {
	s.exportMode.Store(on)
}

func (s *Service) ExportMode() bool {
	return s.exportMode.Load()
}

// state builds the response snapshot. Callers must hold mu.
func (s *Service) state() domain.StateResponse {
	totals := s.inv.Totals()
	return domain.StateResponse{
		Invoice:       *s.inv.Clone(),
		Totals:        totals,
		AmountInWords: format.AmountInWords(totals.RoundedGrandTotal()),
		ExportMode:    s.exportMode.Load(),
	}
}

// persist autosaves the draft. A failed autosave never fails the edit;
// the in-memory aggregate stays authoritative and the next edit retries.
func (s *Service) persist(ctx context.Context) {
	if err := s.drafts.Save(ctx, s.inv); err != nil {
		s.log.Error("draft.save_failed", zap.Error(err))
	}
}

func (s *Service) newID() snowflake.ID {
	return s.genID.Generate()
}

func parseRate(value string) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}
