package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ebook-studio-be/internal/dto"
	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/pkg/logger"
	"ebook-studio-be/internal/repository/contract"
	"ebook-studio-be/internal/repository/specification"
	"ebook-studio-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartService owns an owner's temp feature lines.
type CartService interface {
	Catalog(ctx context.Context, owner entity.OwnerID) (*dto.FeatureCatalogResponse, error)
	GetLines(ctx context.Context, owner entity.OwnerID, scope entity.LineScope) ([]*entity.AuthorPlanFeature, error)
	// AddFeature reports added=false when the feature was already in the cart.
	AddFeature(ctx context.Context, owner entity.OwnerID, featureId uuid.UUID) (bool, error)
	RemoveFeature(ctx context.Context, owner entity.OwnerID, featureId uuid.UUID) error
	ClearTemp(ctx context.Context, owner entity.OwnerID) error
	TotalPrice(ctx context.Context, owner entity.OwnerID, scope entity.LineScope) (decimal.Decimal, error)
	Count(ctx context.Context, owner entity.OwnerID) (int, error)
	Preview(ctx context.Context, owner entity.OwnerID) (*dto.CartPreviewResponse, error)
}

type cartService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	now        func() time.Time
}

func NewCartService(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) CartService {
	return &cartService{
		uowFactory: uowFactory,
		logger:     logger,
		now:        time.Now,
	}
}

func lineScopeSpecs(owner entity.OwnerID, scope entity.LineScope) []specification.Specification {
	specs := []specification.Specification{specification.OwnedBy{Owner: owner}}
	if scope == entity.ScopeTemp {
		specs = append(specs, specification.ByLineStatus{Status: entity.LineStatusTemp})
	}
	return specs
}

func (s *cartService) Catalog(ctx context.Context, owner entity.OwnerID) (*dto.FeatureCatalogResponse, error) {
	if owner.IsNil() {
		return nil, ErrInvalidInput
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	features, err := uow.FeatureRepository().FindAll(ctx, specification.ActiveOnly{})
	if err != nil {
		return nil, s.fail("Failed to load feature catalog", owner, err)
	}
	lines, err := s.GetLines(ctx, owner, entity.ScopeTemp)
	if err != nil {
		return nil, err
	}

	res := &dto.FeatureCatalogResponse{
		Features: make(map[string]dto.FeatureResponse, len(features)),
		Cart:     make(map[string]dto.CartItemResponse, len(lines)),
		Order:    make([]uuid.UUID, 0, len(features)),
	}
	for _, l := range lines {
		res.Cart[l.FeatureId.String()] = toCartItem(l)
	}
	for _, f := range features {
		_, inCart := res.Cart[f.Id.String()]
		res.Features[f.Id.String()] = dto.FeatureResponse{
			Id:          f.Id,
			Key:         f.Key,
			Name:        f.Name,
			Description: f.Description,
			Price:       f.Rate,
			Currency:    f.Currency,
			InCart:      inCart,
		}
		res.Order = append(res.Order, f.Id)
	}
	return res, nil
}

func (s *cartService) GetLines(ctx context.Context, owner entity.OwnerID, scope entity.LineScope) ([]*entity.AuthorPlanFeature, error) {
	if owner.IsNil() {
		return nil, ErrInvalidInput
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	lines, err := uow.CartRepository().FindAll(ctx, lineScopeSpecs(owner, scope)...)
	if err != nil {
		return nil, s.fail("Failed to load cart lines", owner, err)
	}
	return lines, nil
}

func (s *cartService) AddFeature(ctx context.Context, owner entity.OwnerID, featureId uuid.UUID) (bool, error) {
	if owner.IsNil() || featureId == uuid.Nil {
		return false, ErrInvalidInput
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	feature, err := uow.FeatureRepository().FindOne(ctx,
		specification.ByID{ID: featureId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return false, s.fail("Failed to load feature", owner, err)
	}
	if feature == nil {
		return false, ErrFeatureNotFound
	}

	existing, err := uow.CartRepository().FindOne(ctx,
		specification.OwnedBy{Owner: owner},
		specification.ByFeatureID{FeatureID: featureId},
		specification.ByLineStatus{Status: entity.LineStatusTemp},
	)
	if err != nil {
		return false, s.fail("Failed to check cart line", owner, err)
	}
	if existing != nil {
		return false, nil
	}

	line := entity.NewCartLine(owner, feature, s.now())
	if err := uow.CartRepository().Create(ctx, line); err != nil {
		// lost a race with a concurrent add of the same feature
		if errors.Is(err, contract.ErrDuplicate) {
			return false, nil
		}
		return false, s.fail("Failed to add cart line", owner, err)
	}

	s.logger.Info("CART", "Feature added to cart", map[string]interface{}{
		"owner_id":   owner.String(),
		"feature_id": featureId.String(),
		"rate":       feature.Rate.String(),
	})
	return true, nil
}

// RemoveFeature only touches the open cart; confirmed lines are purchase history.
func (s *cartService) RemoveFeature(ctx context.Context, owner entity.OwnerID, featureId uuid.UUID) error {
	if owner.IsNil() || featureId == uuid.Nil {
		return ErrInvalidInput
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	_, err := uow.CartRepository().Delete(ctx,
		specification.OwnedBy{Owner: owner},
		specification.ByFeatureID{FeatureID: featureId},
		specification.ByLineStatus{Status: entity.LineStatusTemp},
	)
	if err != nil {
		return s.fail("Failed to remove cart line", owner, err)
	}
	return nil
}

func (s *cartService) ClearTemp(ctx context.Context, owner entity.OwnerID) error {
	if owner.IsNil() {
		return ErrInvalidInput
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	deleted, err := uow.CartRepository().Delete(ctx, lineScopeSpecs(owner, entity.ScopeTemp)...)
	if err != nil {
		return s.fail("Failed to clear cart", owner, err)
	}
	s.logger.Info("CART", "Cart cleared", map[string]interface{}{
		"owner_id": owner.String(),
		"deleted":  deleted,
	})
	return nil
}

// TotalPrice sums snapshot rates. No tax is applied here.
func (s *cartService) TotalPrice(ctx context.Context, owner entity.OwnerID, scope entity.LineScope) (decimal.Decimal, error) {
	if owner.IsNil() {
		return decimal.Zero, ErrInvalidInput
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	total, err := uow.CartRepository().SumRate(ctx, lineScopeSpecs(owner, scope)...)
	if err != nil {
		return decimal.Zero, s.fail("Failed to total cart", owner, err)
	}
	return total, nil
}

func (s *cartService) Count(ctx context.Context, owner entity.OwnerID) (int, error) {
	if owner.IsNil() {
		return 0, ErrInvalidInput
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	n, err := uow.CartRepository().Count(ctx, lineScopeSpecs(owner, entity.ScopeTemp)...)
	if err != nil {
		return 0, s.fail("Failed to count cart", owner, err)
	}
	return int(n), nil
}

func (s *cartService) Preview(ctx context.Context, owner entity.OwnerID) (*dto.CartPreviewResponse, error) {
	lines, err := s.GetLines(ctx, owner, entity.ScopeTemp)
	if err != nil {
		return nil, err
	}
	res := &dto.CartPreviewResponse{
		Items: make([]dto.CartItemResponse, 0, len(lines)),
		Total: sumRates(lines),
		Count: len(lines),
	}
	for _, l := range lines {
		res.Items = append(res.Items, toCartItem(l))
	}
	return res, nil
}

func (s *cartService) fail(message string, owner entity.OwnerID, err error) error {
	s.logger.Error("CART", message, map[string]interface{}{
		"owner_id": owner.String(),
		"error":    err.Error(),
	})
	return fmt.Errorf("%s: %w", message, err)
}

func sumRates(lines []*entity.AuthorPlanFeature) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Rate)
	}
	return total
}

func toCartItem(l *entity.AuthorPlanFeature) dto.CartItemResponse {
	return dto.CartItemResponse{
		Id:    l.FeatureId,
		Name:  l.FeatureName,
		Price: l.Rate,
	}
}
