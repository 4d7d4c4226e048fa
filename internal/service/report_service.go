package service

import (
	"fmt"
	"time"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ReportService renders read-only sale projections. The discount stored on
// a sale is applied here, at presentation time; the persisted total always
// stays pre-discount.
type ReportService interface {
	Receipt(id uuid.UUID) (*model.SaleReceiptResponse, error)
	DailySummary(date time.Time) ([]repository.PaymentTotal, error)
}

type reportService struct {
	saleRepo     repository.SaleRepository
	saleItemRepo repository.SaleItemRepository
	productRepo  repository.ProductRepository
}

func NewReportService(
	saleRepo repository.SaleRepository,
	saleItemRepo repository.SaleItemRepository,
	productRepo repository.ProductRepository,
) ReportService {
	return &reportService{
		saleRepo:     saleRepo,
		saleItemRepo: saleItemRepo,
		productRepo:  productRepo,
	}
}

func (s *reportService) Receipt(id uuid.UUID) (*model.SaleReceiptResponse, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("sale %s: %w", id, model.ErrSaleNotFound)
	}

	items, err := s.saleItemRepo.FindBySaleID(nil, sale.ID)
	if err != nil {
		return nil, err
	}

	receipt := &model.SaleReceiptResponse{
		Discount: sale.Discount,
		Subtotal: sale.Total,
		Items:    make([]model.SaleDetailItem, 0, len(items)),
	}
	for _, item := range items {
		product, err := s.productRepo.FindByID(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", item.ProductID, model.ErrProductNotFound)
		}
		receipt.Items = append(receipt.Items, model.SaleDetailItem{
			Description: product.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	receipt.DiscountAmount = sale.Total.
		Mul(decimal.NewFromInt(int64(sale.Discount))).
		Div(oneHundred).
		Round(2)
	receipt.Total = sale.Total.Sub(receipt.DiscountAmount)

	return receipt, nil
}

func (s *reportService) DailySummary(date time.Time) ([]repository.PaymentTotal, error) {
	start, end := dayBounds(date)
	return s.saleRepo.SummaryByDate(start, end)
}
