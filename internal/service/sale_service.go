package service

import (
	"errors"
	"fmt"
	"time"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/ws"
	"go-pos-backend/pkg/metrics"
	"go-pos-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SaleService is the sale transaction engine: it turns a requested basket
// into a committed sale, and voids/restores whole sales with compensating
// stock moves. Each mutating operation is one all-or-nothing transaction.
type SaleService interface {
	Create(login string, req *model.SaleRequest) (*model.Sale, error)
	Void(id uuid.UUID) error
	Restore(id uuid.UUID) error
	Details(id uuid.UUID) (*model.SaleDetailsResponse, error)
	FindActiveByID(id uuid.UUID) (*model.SaleResponse, error)
	FindInactiveByID(id uuid.UUID) (*model.SaleResponse, error)
	FindActive(limit, offset int) ([]model.SaleResponse, error)
	FindInactive(limit, offset int) ([]model.SaleResponse, error)
	FindActiveByDate(date time.Time) ([]model.SaleResponse, error)
	FindInactiveByDate(date time.Time) ([]model.SaleResponse, error)
}

type saleService struct {
	saleRepo     repository.SaleRepository
	saleItemRepo repository.SaleItemRepository
	productRepo  repository.ProductRepository
	userRepo     repository.UserRepository
	ledger       StockLedger
	txm          repository.TxManager
	wsHub        *ws.Hub
	logger       *zap.Logger
}

func NewSaleService(
	saleRepo repository.SaleRepository,
	saleItemRepo repository.SaleItemRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	ledger StockLedger,
	txm repository.TxManager,
	hub *ws.Hub,
	logger *zap.Logger,
) SaleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &saleService{
		saleRepo:     saleRepo,
		saleItemRepo: saleItemRepo,
		productRepo:  productRepo,
		userRepo:     userRepo,
		ledger:       ledger,
		txm:          txm,
		wsHub:        hub,
		logger:       logger,
	}
}

// Create commits the requested basket for the acting user. The sale row,
// its items and every stock decrement happen inside one transaction; a
// failure on any item leaves the system as if the call never ran.
func (s *saleService) Create(login string, req *model.SaleRequest) (*model.Sale, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindActiveByLogin(login)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", login, model.ErrUserNotFound)
	}

	if hasDuplicateProducts(req.Items) {
		return nil, model.ErrDuplicateItem
	}

	sale := &model.Sale{
		UserID:        user.ID,
		PaymentMethod: model.PaymentMethod(req.PaymentMethod),
		Discount:      req.Discount,
		Total:         decimal.Zero,
	}

	var changes []ws.StockChange
	err = s.txm.Do(func(tx *gorm.DB) error {
		if err := s.saleRepo.Create(tx, sale); err != nil {
			return err
		}

		total := decimal.Zero
		for _, line := range req.Items {
			product, err := s.ledger.Reserve(tx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}

			item := &model.SaleItem{
				SaleID:    sale.ID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Price:     product.Price, // unit price frozen at commit
			}
			if err := s.saleItemRepo.Create(tx, item); err != nil {
				return err
			}

			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			changes = append(changes, ws.StockChange{ProductID: product.ID, Stock: product.Stock})
		}

		sale.Total = total
		return s.saleRepo.UpdateTotal(tx, sale.ID, total)
	})
	if err != nil {
		s.countRejection(err)
		s.logger.Warn("sale rejected",
			zap.String("login", login),
			zap.Error(err))
		return nil, err
	}

	metrics.SalesCommitted.Inc()
	s.publish(ws.Event{
		Type:    ws.EventSaleCommitted,
		SaleID:  &sale.ID,
		Stock:   changes,
		Message: fmt.Sprintf("%s committed a sale of %s", user.Name, sale.Total.StringFixed(2)),
	})
	s.logger.Info("sale committed",
		zap.String("sale_id", sale.ID.String()),
		zap.String("login", login),
		zap.String("total", sale.Total.StringFixed(2)),
		zap.Int("items", len(req.Items)))
	return sale, nil
}

// Void soft-deletes an active sale and returns every item's quantity to the
// referenced product. Calling it again on the same sale fails with
// ErrSaleNotFound instead of releasing stock twice.
func (s *saleService) Void(id uuid.UUID) error {
	// The sale load runs inside the transaction under a row lock: a second
	// concurrent void blocks on the lock and then fails the active check,
	// so stock is never released twice.
	var changes []ws.StockChange
	err := s.txm.Do(func(tx *gorm.DB) error {
		sale, err := s.saleRepo.FindActiveByIDForUpdate(tx, id)
		if err != nil {
			return fmt.Errorf("sale %s: %w", id, model.ErrSaleNotFound)
		}

		items, err := s.saleItemRepo.FindActiveBySaleID(tx, sale.ID)
		if err != nil {
			return err
		}

		for _, item := range items {
			product, err := s.ledger.Release(tx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			changes = append(changes, ws.StockChange{ProductID: product.ID, Stock: product.Stock})
		}

		now := time.Now()
		if err := s.saleItemRepo.MarkVoidedBySaleID(tx, sale.ID, now); err != nil {
			return err
		}
		return s.saleRepo.MarkVoided(tx, sale.ID, now)
	})
	if err != nil {
		return err
	}

	metrics.SalesVoided.Inc()
	s.publish(ws.Event{
		Type:    ws.EventSaleVoided,
		SaleID:  &id,
		Stock:   changes,
		Message: fmt.Sprintf("sale %s voided", id),
	})
	s.logger.Info("sale voided", zap.String("sale_id", id.String()))
	return nil
}

// Restore reactivates a voided sale by re-reserving every item's quantity.
// Unlike Void it can fail: stock consumed by other sales since the void
// makes the restore abort with ErrInsufficientStock and no partial effect.
func (s *saleService) Restore(id uuid.UUID) error {
	// Same discipline as Void: the voided-state check holds a row lock, so
	// a concurrent restore of the same sale cannot re-reserve twice.
	var changes []ws.StockChange
	err := s.txm.Do(func(tx *gorm.DB) error {
		sale, err := s.saleRepo.FindInactiveByIDForUpdate(tx, id)
		if err != nil {
			return fmt.Errorf("sale %s: %w", id, model.ErrSaleNotFound)
		}

		items, err := s.saleItemRepo.FindBySaleID(tx, sale.ID)
		if err != nil {
			return err
		}

		for _, item := range items {
			product, err := s.ledger.Reserve(tx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			changes = append(changes, ws.StockChange{ProductID: product.ID, Stock: product.Stock})
		}

		if err := s.saleItemRepo.MarkRestoredBySaleID(tx, sale.ID); err != nil {
			return err
		}
		return s.saleRepo.MarkRestored(tx, sale.ID)
	})
	if err != nil {
		s.countRejection(err)
		s.logger.Warn("sale restore rejected",
			zap.String("sale_id", id.String()),
			zap.Error(err))
		return err
	}

	metrics.SalesRestored.Inc()
	s.publish(ws.Event{
		Type:    ws.EventSaleRestored,
		SaleID:  &id,
		Stock:   changes,
		Message: fmt.Sprintf("sale %s restored", id),
	})
	s.logger.Info("sale restored", zap.String("sale_id", id.String()))
	return nil
}

// Details joins the sale with its seller's name and each item's product
// description. Prices come from the item snapshots, never from the catalog.
func (s *saleService) Details(id uuid.UUID) (*model.SaleDetailsResponse, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("sale %s: %w", id, model.ErrSaleNotFound)
	}

	user, err := s.userRepo.FindByID(sale.UserID)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", sale.UserID, model.ErrUserNotFound)
	}

	items, err := s.saleItemRepo.FindBySaleID(nil, sale.ID)
	if err != nil {
		return nil, err
	}

	details := &model.SaleDetailsResponse{
		SellerName: user.Name,
		Items:      make([]model.SaleDetailItem, 0, len(items)),
	}
	for _, item := range items {
		product, err := s.productRepo.FindByID(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", item.ProductID, model.ErrProductNotFound)
		}
		details.Items = append(details.Items, model.SaleDetailItem{
			Description: product.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	return details, nil
}

func (s *saleService) FindActiveByID(id uuid.UUID) (*model.SaleResponse, error) {
	sale, err := s.saleRepo.FindActiveByID(id)
	if err != nil {
		return nil, fmt.Errorf("sale %s: %w", id, model.ErrSaleNotFound)
	}
	resp := sale.ToResponse()
	return &resp, nil
}

func (s *saleService) FindInactiveByID(id uuid.UUID) (*model.SaleResponse, error) {
	sale, err := s.saleRepo.FindInactiveByID(id)
	if err != nil {
		return nil, fmt.Errorf("sale %s: %w", id, model.ErrSaleNotFound)
	}
	resp := sale.ToResponse()
	return &resp, nil
}

func (s *saleService) FindActive(limit, offset int) ([]model.SaleResponse, error) {
	sales, err := s.saleRepo.FindActive(limit, offset)
	if err != nil {
		return nil, err
	}
	return toSaleResponses(sales), nil
}

func (s *saleService) FindInactive(limit, offset int) ([]model.SaleResponse, error) {
	sales, err := s.saleRepo.FindInactive(limit, offset)
	if err != nil {
		return nil, err
	}
	return toSaleResponses(sales), nil
}

func (s *saleService) FindActiveByDate(date time.Time) ([]model.SaleResponse, error) {
	start, end := dayBounds(date)
	sales, err := s.saleRepo.FindActiveByDate(start, end)
	if err != nil {
		return nil, err
	}
	return toSaleResponses(sales), nil
}

func (s *saleService) FindInactiveByDate(date time.Time) ([]model.SaleResponse, error) {
	start, end := dayBounds(date)
	sales, err := s.saleRepo.FindInactiveByDate(start, end)
	if err != nil {
		return nil, err
	}
	return toSaleResponses(sales), nil
}

func (s *saleService) publish(event ws.Event) {
	if s.wsHub != nil {
		s.wsHub.Publish(event)
	}
}

func (s *saleService) countRejection(err error) {
	if errors.Is(err, model.ErrInsufficientStock) {
		metrics.StockRejections.Inc()
	}
}

// hasDuplicateProducts reports whether any product id appears more than
// once in the requested basket.
func hasDuplicateProducts(items []model.SaleItemRequest) bool {
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			return true
		}
		seen[item.ProductID] = struct{}{}
	}
	return false
}

// dayBounds expands a date to the 00:00:00-23:59:59 range used by the
// calendar-day listings.
func dayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, 0, date.Location())
	return start, end
}

func toSaleResponses(sales []model.Sale) []model.SaleResponse {
	responses := make([]model.SaleResponse, 0, len(sales))
	for i := range sales {
		responses = append(responses, sales[i].ToResponse())
	}
	return responses
}
