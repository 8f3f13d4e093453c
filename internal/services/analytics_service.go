package services

import (
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"alshop/internal/apperr"
	"alshop/internal/models"
	"alshop/internal/repositories"
)

// Period selects the time window and grouping key for analytics series.
type Period string

const (
	PeriodDay   Period = "day"   // today, grouped by hour
	PeriodWeek  Period = "week"  // last 7 days, grouped by date
	PeriodMonth Period = "month" // this month, grouped by date
	PeriodYear  Period = "year"  // this year, grouped by month
)

// DashboardStats is a point-in-time snapshot for the admin dashboard. The
// four counts are gathered concurrently without a shared transaction; a
// dashboard tolerates that. Revenue excludes cancelled orders; the raw
// order count does not.
type DashboardStats struct {
	Orders   int64   `json:"orders"`
	Revenue  float64 `json:"revenue"`
	Users    int64   `json:"users"`
	Products int64   `json:"products"`
}

// RevenuePoint is one bucket of a revenue series. Buckets with no orders
// are not synthesized; the series is sparse.
type RevenuePoint struct {
	Bucket string  `json:"bucket"`
	Total  float64 `json:"total"`
}

// VolumePoint is one bucket of an order-count series.
type VolumePoint struct {
	Bucket string `json:"bucket"`
	Count  int64  `json:"count"`
}

// AnalyticsService computes denormalized rollups by scanning the order,
// user and product stores.
type AnalyticsService struct {
	orderRepo   repositories.OrderRepository
	userRepo    repositories.UserRepository
	productRepo repositories.ProductRepository
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(
	orderRepo repositories.OrderRepository,
	userRepo repositories.UserRepository,
	productRepo repositories.ProductRepository,
) *AnalyticsService {
	return &AnalyticsService{
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
	}
}

// DashboardSnapshot runs the four aggregations in parallel. Any failure
// fails the whole call rather than returning silently zero-filled data.
func (s *AnalyticsService) DashboardSnapshot() (*DashboardStats, error) {
	var stats DashboardStats
	var g errgroup.Group

	g.Go(func() error {
		n, err := s.orderRepo.Count()
		stats.Orders = n
		return err
	})
	g.Go(func() error {
		total, err := s.orderRepo.SumTotals(true)
		stats.Revenue = total
		return err
	})
	g.Go(func() error {
		n, err := s.userRepo.Count()
		stats.Users = n
		return err
	})
	g.Go(func() error {
		n, err := s.productRepo.Count()
		stats.Products = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}

// RevenueByPeriod sums order totals per bucket for orders created since
// the period boundary, ascending by bucket key. Cancelled orders are
// excluded.
func (s *AnalyticsService) RevenueByPeriod(period Period) ([]RevenuePoint, error) {
	orders, keyFn, err := s.ordersInPeriod(period)
	if err != nil {
		return nil, err
	}

	sums := make(map[string]float64)
	for _, order := range orders {
		sums[keyFn(order.CreatedAt)] += order.Total
	}

	points := make([]RevenuePoint, 0, len(sums))
	for bucket, total := range sums {
		points = append(points, RevenuePoint{Bucket: bucket, Total: total})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Bucket < points[j].Bucket })
	return points, nil
}

// OrderVolumeByPeriod counts orders per bucket with the same windowing as
// RevenueByPeriod.
func (s *AnalyticsService) OrderVolumeByPeriod(period Period) ([]VolumePoint, error) {
	orders, keyFn, err := s.ordersInPeriod(period)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, order := range orders {
		counts[keyFn(order.CreatedAt)]++
	}

	points := make([]VolumePoint, 0, len(counts))
	for bucket, count := range counts {
		points = append(points, VolumePoint{Bucket: bucket, Count: count})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Bucket < points[j].Bucket })
	return points, nil
}

func (s *AnalyticsService) ordersInPeriod(period Period) ([]models.Order, func(time.Time) string, error) {
	start, keyFn, err := periodWindow(period, time.Now())
	if err != nil {
		return nil, nil, err
	}
	orders, err := s.orderRepo.ListCreatedSince(start, true)
	if err != nil {
		return nil, nil, err
	}
	return orders, keyFn, nil
}

// periodWindow resolves the start boundary and grouping key for a period.
// An empty period defaults to year. Bucket keys are zero-padded so their
// lexicographic order matches chronological order.
func periodWindow(period Period, now time.Time) (time.Time, func(time.Time) string, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch period {
	case PeriodDay:
		return midnight, func(t time.Time) string {
			return fmt.Sprintf("%02d", t.Hour())
		}, nil
	case PeriodWeek:
		return midnight.AddDate(0, 0, -6), func(t time.Time) string {
			return t.Format("2006-01-02")
		}, nil
	case PeriodMonth:
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return firstOfMonth, func(t time.Time) string {
			return t.Format("2006-01-02")
		}, nil
	case PeriodYear, "":
		firstOfYear := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return firstOfYear, func(t time.Time) string {
			return fmt.Sprintf("%02d", int(t.Month()))
		}, nil
	default:
		return time.Time{}, nil, apperr.Validationf("invalid period: %s", period)
	}
}
