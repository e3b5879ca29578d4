package customers

import (
	"context"
	"errors"
	"fmt"

	"titulos-console/internal/domain"
	"titulos-console/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("Customer not found")
	ErrSecurityNotFound = errors.New("Security not found")
	ErrInvalidName      = errors.New("Customer name must be between 2 and 80 characters")
	ErrInvalidQuantity  = errors.New("Quantity must be at least 1")
)

type Service struct {
	DB *gorm.DB
}

// CustomerWithAllocations is the allocation listing payload: the owning
// customer plus their allocations in arrival order.
type CustomerWithAllocations struct {
	Customer    domain.Customer     `json:"customer"`
	Allocations []domain.Allocation `json:"allocations"`
}

// CreatedAllocation echoes the created allocation with the entities it links.
type CreatedAllocation struct {
	Allocation domain.Allocation `json:"allocation"`
	Security   domain.Security   `json:"security"`
	Customer   domain.Customer   `json:"customer"`
}

func (s *Service) Create(ctx context.Context, name string) (*domain.Customer, error) {
	name = validation.NormalizeName(name)
	if !validation.IsValidCustomerName(name) {
		return nil, ErrInvalidName
	}
	customer := &domain.Customer{Name: name}
	if err := s.DB.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return customer, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	out := []domain.Customer{}
	if err := s.DB.WithContext(ctx).Order("name asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	var c domain.Customer
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Allocations returns a customer's allocations in insertion order.
func (s *Service) Allocations(ctx context.Context, customerID uuid.UUID) (*CustomerWithAllocations, error) {
	customer, err := s.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	allocs := []domain.Allocation{}
	if err := s.DB.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at asc").
		Find(&allocs).Error; err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	return &CustomerWithAllocations{Customer: *customer, Allocations: allocs}, nil
}

// CreateAllocation validates both referenced entities exist before inserting.
func (s *Service) CreateAllocation(ctx context.Context, customerID, securityID uuid.UUID, quantity int) (*CreatedAllocation, error) {
	if !validation.IsValidQuantity(quantity) {
		return nil, ErrInvalidQuantity
	}
	customer, err := s.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	var sec domain.Security
	if err := s.DB.WithContext(ctx).Where("id = ?", securityID).First(&sec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSecurityNotFound
		}
		return nil, err
	}

	alloc := domain.Allocation{
		CustomerID: customerID,
		SecurityID: securityID,
		Quantity:   quantity,
	}
	if err := s.DB.WithContext(ctx).Create(&alloc).Error; err != nil {
		return nil, fmt.Errorf("create allocation: %w", err)
	}
	return &CreatedAllocation{Allocation: alloc, Security: sec, Customer: *customer}, nil
}
