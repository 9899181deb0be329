package services

import (
	"fmt"
	"time"

	"github.com/shashiranjanraj/supplyco/app/models"
	"github.com/shashiranjanraj/supplyco/app/repositories"
	"github.com/shashiranjanraj/supplyco/pkg/apperr"
	"github.com/shashiranjanraj/supplyco/pkg/cache"
)

const analyticsTTL = 5 * time.Minute

// ShopAnalytics summarises a shop's order history.
//
// TotalSales is lifetime gross volume across every order regardless of
// status; cancelled orders still count. CompletedOrderCount only counts
// orders that reached completed.
type ShopAnalytics struct {
	TotalSales          float64 `json:"totalSales"`
	CompletedOrderCount int64   `json:"completedOrderCount"`
}

type AnalyticsService struct {
	orders *repositories.OrderRepository
}

func NewAnalyticsService() *AnalyticsService {
	return &AnalyticsService{orders: repositories.NewOrderRepository()}
}

func analyticsCacheKey(shopID uint) string {
	return fmt.Sprintf("analytics:shop:%d", shopID)
}

// ForShop computes the shop's summary, served from cache when warm.
func (s *AnalyticsService) ForShop(shopID uint) (ShopAnalytics, error) {
	var out ShopAnalytics
	if cache.Get(analyticsCacheKey(shopID), &out) {
		return out, nil
	}

	total, err := s.orders.SumTotals(shopID)
	if err != nil {
		return ShopAnalytics{}, apperr.Internal(err)
	}
	completed, err := s.orders.CountByStatus(shopID, models.OrderCompleted)
	if err != nil {
		return ShopAnalytics{}, apperr.Internal(err)
	}

	out = ShopAnalytics{TotalSales: total, CompletedOrderCount: completed}
	cache.Set(analyticsCacheKey(shopID), out, analyticsTTL)
	return out, nil
}

// Invalidate drops the cached summary for a shop. Called when an order is
// placed or changes status.
func (s *AnalyticsService) Invalidate(shopID uint) {
	cache.Del(analyticsCacheKey(shopID))
}
