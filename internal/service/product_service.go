package service

import (
	"fmt"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/ws"
	"go-pos-backend/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService handles catalog maintenance. The description must be
// unique among products, and stock edits here are the only quantity
// mutations allowed outside the stock ledger.
type ProductService interface {
	Create(req *model.ProductRequest) (*model.ProductResponse, error)
	Update(id uuid.UUID, req *model.ProductRequest) (*model.ProductResponse, error)
	Delete(id uuid.UUID) error
	Reactivate(id uuid.UUID) error
	FindActiveByID(id uuid.UUID) (*model.ProductResponse, error)
	FindInactiveByID(id uuid.UUID) (*model.ProductResponse, error)
	FindActive(limit, offset int) ([]model.ProductResponse, error)
	FindInactive(limit, offset int) ([]model.ProductResponse, error)
	FindActiveByDescription(description string, limit, offset int) ([]model.ProductResponse, error)
}

type productService struct {
	productRepo repository.ProductRepository
	wsHub       *ws.Hub
	logger      *zap.Logger
}

func NewProductService(productRepo repository.ProductRepository, hub *ws.Hub, logger *zap.Logger) ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &productService{productRepo: productRepo, wsHub: hub, logger: logger}
}

func (s *productService) Create(req *model.ProductRequest) (*model.ProductResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	if _, err := s.productRepo.FindByDescription(req.Description); err == nil {
		return nil, fmt.Errorf("description %q: %w", req.Description, model.ErrDescriptionInUse)
	}

	product := &model.Product{
		Description: req.Description,
		Stock:       req.Stock,
		Price:       req.Price,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	s.publishStock(product)
	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("description", product.Description))
	resp := product.ToResponse()
	return &resp, nil
}

func (s *productService) Update(id uuid.UUID, req *model.ProductRequest) (*model.ProductResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindActiveByID(id)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", id, model.ErrProductNotFound)
	}

	if other, err := s.productRepo.FindByDescription(req.Description); err == nil && other.ID != product.ID {
		return nil, fmt.Errorf("description %q: %w", req.Description, model.ErrDescriptionInUse)
	}

	product.Description = req.Description
	product.Stock = req.Stock
	product.Price = req.Price
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	s.publishStock(product)
	resp := product.ToResponse()
	return &resp, nil
}

func (s *productService) Delete(id uuid.UUID) error {
	if _, err := s.productRepo.FindActiveByID(id); err != nil {
		return fmt.Errorf("product %s: %w", id, model.ErrProductNotFound)
	}
	return s.productRepo.SoftDelete(id)
}

func (s *productService) Reactivate(id uuid.UUID) error {
	if _, err := s.productRepo.FindInactiveByID(id); err != nil {
		return fmt.Errorf("product %s: %w", id, model.ErrProductNotFound)
	}
	return s.productRepo.Restore(id)
}

func (s *productService) FindActiveByID(id uuid.UUID) (*model.ProductResponse, error) {
	product, err := s.productRepo.FindActiveByID(id)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", id, model.ErrProductNotFound)
	}
	resp := product.ToResponse()
	return &resp, nil
}

func (s *productService) FindInactiveByID(id uuid.UUID) (*model.ProductResponse, error) {
	product, err := s.productRepo.FindInactiveByID(id)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", id, model.ErrProductNotFound)
	}
	resp := product.ToResponse()
	return &resp, nil
}

func (s *productService) FindActive(limit, offset int) ([]model.ProductResponse, error) {
	products, err := s.productRepo.FindActive(limit, offset)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

func (s *productService) FindInactive(limit, offset int) ([]model.ProductResponse, error) {
	products, err := s.productRepo.FindInactive(limit, offset)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

func (s *productService) FindActiveByDescription(description string, limit, offset int) ([]model.ProductResponse, error) {
	products, err := s.productRepo.FindActiveByDescription(description, limit, offset)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

func (s *productService) validate(req *model.ProductRequest) error {
	if err := validator.Struct(req); err != nil {
		return err
	}
	if req.Stock < 0 {
		return fmt.Errorf("stock cannot be negative: %w", model.ErrInvalidArgument)
	}
	if req.Price.IsNegative() {
		return fmt.Errorf("price cannot be negative: %w", model.ErrInvalidArgument)
	}
	return nil
}

func (s *productService) publishStock(product *model.Product) {
	if s.wsHub != nil {
		s.wsHub.Publish(ws.Event{
			Type:    ws.EventStockChanged,
			Stock:   []ws.StockChange{{ProductID: product.ID, Stock: product.Stock}},
			Message: fmt.Sprintf("catalog updated: %s", product.Description),
		})
	}
}

func toProductResponses(products []model.Product) []model.ProductResponse {
	responses := make([]model.ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, products[i].ToResponse())
	}
	return responses
}
