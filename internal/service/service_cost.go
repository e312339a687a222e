package service

import (
	"github.com/heatspares-next/internal/models"
	"github.com/heatspares-next/internal/repository"

	"github.com/shopspring/decimal"
)

// ServiceCostCalculator prices service selections against products, resolving
// per-product assignment overrides in one place.
type ServiceCostCalculator struct {
	services repository.ServiceRepository
}

// NewServiceCostCalculator creates a service cost calculator.
func NewServiceCostCalculator(services repository.ServiceRepository) *ServiceCostCalculator {
	return &ServiceCostCalculator{services: services}
}

// EffectiveService is a service's terms after applying an assignment's
// overrides. Nil assignment fields fall back to the service defaults.
type EffectiveService struct {
	Service    *models.ProductService `json:"service"`
	Price      models.Money           `json:"price"`
	IsOptional bool                   `json:"is_optional"`
	IsFree     bool                   `json:"is_free"`
}

// ResolveEffective folds an assignment's overrides over the service defaults.
// The assignment may be nil, which leaves the defaults untouched.
func ResolveEffective(svc *models.ProductService, assignment *models.ProductServiceAssignment) EffectiveService {
	effective := EffectiveService{
		Service:    svc,
		Price:      svc.Price,
		IsOptional: svc.IsOptional,
		IsFree:     svc.IsFree,
	}
	if assignment != nil {
		if assignment.CustomPrice != nil {
			effective.Price = *assignment.CustomPrice
		}
		if assignment.IsOptional != nil {
			effective.IsOptional = *assignment.IsOptional
		}
		if assignment.IsFree != nil {
			effective.IsFree = *assignment.IsFree
		}
	}
	if effective.IsFree {
		effective.Price = models.NewMoneyFromDecimal(decimal.Zero)
	}
	return effective
}

// ServiceCostLine is one service-for-product price in a cost breakdown.
type ServiceCostLine struct {
	ServiceID   uint         `json:"service_id"`
	ProductID   uint         `json:"product_id"`
	ServiceName string       `json:"service_name"`
	Price       models.Money `json:"price"`
	IsFree      bool         `json:"is_free"`
}

// ServiceCostBreakdown is the priced service selection for a checkout.
type ServiceCostBreakdown struct {
	Lines []ServiceCostLine `json:"lines"`
	Total models.Money      `json:"total"`
}

// Calculate prices every requested service against every product in the
// order. Empty id lists are a zero-total breakdown, not an error.
func (c *ServiceCostCalculator) Calculate(serviceIDs, productIDs []uint) (*ServiceCostBreakdown, error) {
	breakdown := &ServiceCostBreakdown{
		Lines: []ServiceCostLine{},
		Total: models.NewMoneyFromDecimal(decimal.Zero),
	}
	if len(serviceIDs) == 0 || len(productIDs) == 0 {
		return breakdown, nil
	}

	services, err := c.services.ListByIDs(serviceIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.ProductService, len(services))
	for i := range services {
		byID[services[i].ID] = &services[i]
	}
	for _, id := range serviceIDs {
		if _, ok := byID[id]; !ok {
			return nil, ErrServiceNotFound
		}
	}

	assignments, err := c.services.ListAssignments(productIDs, serviceIDs)
	if err != nil {
		return nil, err
	}
	type pair struct{ productID, serviceID uint }
	overrides := make(map[pair]*models.ProductServiceAssignment, len(assignments))
	for i := range assignments {
		overrides[pair{assignments[i].ProductID, assignments[i].ServiceID}] = &assignments[i]
	}

	total := decimal.Zero
	for _, serviceID := range serviceIDs {
		svc := byID[serviceID]
		for _, productID := range productIDs {
			effective := ResolveEffective(svc, overrides[pair{productID, serviceID}])
			breakdown.Lines = append(breakdown.Lines, ServiceCostLine{
				ServiceID:   serviceID,
				ProductID:   productID,
				ServiceName: svc.Name,
				Price:       effective.Price,
				IsFree:      effective.IsFree,
			})
			total = total.Add(effective.Price.Decimal)
		}
	}
	breakdown.Total = models.NewMoneyFromDecimal(total)
	return breakdown, nil
}
