package usecase

import (
	"context"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, req *request.CreateCustomerRequest) (*response.CustomerResponse, error)
	ListCustomers(ctx context.Context) ([]*response.CustomerResponse, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
	log          *zap.Logger
}

func NewCustomerService(customerRepo repository.CustomerRepository, log *zap.Logger) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		log:          log.With(zap.String("service", "customer")),
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, req *request.CreateCustomerRequest) (*response.CustomerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create customer validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	now := time.Now().UTC()
	customer := &entity.Customer{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		s.log.Error("Failed to create customer", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("create customer: %w", err)
	}

	s.log.Info("Customer created", zap.String("customer_id", customer.ID.String()))

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]*response.CustomerResponse, error) {
	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list customers", zap.Error(err))
		return nil, fmt.Errorf("list customers: %w", err)
	}

	result := make([]*response.CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		resp := response.CustomerToResponse(customer)
		result = append(result, &resp)
	}

	return result, nil
}
