package shopservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	shopdomain "github.com/Black-And-White-Club/esportivo/app/modules/shop/domain"
	"github.com/Black-And-White-Club/esportivo/app/shared/apiclient"
)

var (
	ErrNoClub          = errors.New("select a club first")
	ErrEmptyOrder      = errors.New("order has no items")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Service backs the store screens.
type Service interface {
	Products(ctx context.Context, clubID int64) ([]shopdomain.Product, error)
	Product(ctx context.Context, productID int64) (*shopdomain.Product, error)
	PlaceOrder(ctx context.Context, items []shopdomain.OrderItem) ([]shopdomain.Order, error)
	MyOrders(ctx context.Context) ([]shopdomain.Order, error)
}

// ShopService implements the Service interface.
type ShopService struct {
	api    apiclient.Requester
	logger *slog.Logger
}

// NewShopService creates a new ShopService.
func NewShopService(api apiclient.Requester, logger *slog.Logger) *ShopService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShopService{api: api, logger: logger}
}

func (s *ShopService) Products(ctx context.Context, clubID int64) ([]shopdomain.Product, error) {
	if clubID == 0 {
		return nil, ErrNoClub
	}
	var products []shopdomain.Product
	query := url.Values{"club_id": {strconv.FormatInt(clubID, 10)}}
	if err := s.api.Get(ctx, "/products", query, &products); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *ShopService) Product(ctx context.Context, productID int64) (*shopdomain.Product, error) {
	var p shopdomain.Product
	if err := s.api.Get(ctx, "/products/"+strconv.FormatInt(productID, 10), nil, &p); err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", productID, err)
	}
	return &p, nil
}

// PlaceOrder submits the cart and returns the refetched order history.
func (s *ShopService) PlaceOrder(ctx context.Context, items []shopdomain.OrderItem) ([]shopdomain.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: product %d", ErrInvalidQuantity, item.ProductID)
		}
	}
	if err := s.api.Post(ctx, "/orders", shopdomain.OrderRequest{Items: items}, nil); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	s.logger.InfoContext(ctx, "Order placed", slog.Int("items", len(items)))
	return s.MyOrders(ctx)
}

// MyOrders lists the signed-in user's orders.
func (s *ShopService) MyOrders(ctx context.Context) ([]shopdomain.Order, error) {
	var orders []shopdomain.Order
	if err := s.api.Get(ctx, "/me/orders", nil, &orders); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

var _ Service = (*ShopService)(nil)
