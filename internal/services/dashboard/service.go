package dashboard

import (
	"context"
	"fmt"
	"time"

	"fooddash/internal/database"
	"fooddash/internal/logger"
	"fooddash/internal/models"
)

// Service computes back-office aggregates
type Service struct {
	db     *database.DB
	logger *logger.Logger
}

// NewService creates a new dashboard service
func NewService(db *database.DB, log *logger.Logger) *Service {
	return &Service{
		db:     db,
		logger: log,
	}
}

// Overview is the admin landing-page summary
type Overview struct {
	TotalOrders    int            `json:"total_orders"`
	TotalRevenue   float64        `json:"total_revenue"`
	ActiveOrders   int            `json:"active_orders"`
	TotalCustomers int            `json:"total_customers"`
	RecentOrders   []models.Order `json:"recent_orders"`
}

// GetOverview collects the dashboard counters. Revenue counts delivered
// orders only; active orders are those not yet delivered or cancelled.
func (s *Service) GetOverview(ctx context.Context) (*Overview, error) {
	overview := &Overview{}

	if err := s.db.QueryRow(ctx, database.CountOrdersSQL).Scan(&overview.TotalOrders); err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	if err := s.db.QueryRow(ctx, database.SumDeliveredRevenueSQL).Scan(&overview.TotalRevenue); err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	if err := s.db.QueryRow(ctx, database.CountActiveOrdersSQL).Scan(&overview.ActiveOrders); err != nil {
		return nil, fmt.Errorf("failed to count active orders: %w", err)
	}
	if err := s.db.QueryRow(ctx, database.CountCustomersSQL).Scan(&overview.TotalCustomers); err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}

	rows, err := s.db.Query(ctx, database.GetTodaysOrdersSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent orders: %w", err)
	}
	defer rows.Close()

	overview.RecentOrders = []models.Order{}
	for rows.Next() {
		order := models.Order{}
		err := rows.Scan(
			&order.ID, &order.Number, &order.CustomerID, &order.CustomerName,
			&order.CustomerEmail, &order.CustomerPhone, &order.DeliveryAddress,
			&order.PaymentMethod, &order.PaymentStatus, &order.Notes, &order.Subtotal,
			&order.DeliveryFee, &order.Discount, &order.AppliedCoupon, &order.TotalAmount,
			&order.Status, &order.EstimatedDeliveryTime, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		overview.RecentOrders = append(overview.RecentOrders, order)
	}
	return overview, rows.Err()
}

// RevenuePoint is one day in a revenue report
type RevenuePoint struct {
	Day        time.Time `json:"day"`
	OrderCount int       `json:"order_count"`
	Revenue    float64   `json:"revenue"`
}

// RevenueReport returns per-day revenue over [from, to). Cancelled orders
// are excluded.
func (s *Service) RevenueReport(ctx context.Context, from, to time.Time) ([]RevenuePoint, error) {
	rows, err := s.db.Query(ctx, database.RevenueByDaySQL, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to run revenue report: %w", err)
	}
	defer rows.Close()

	report := []RevenuePoint{}
	for rows.Next() {
		point := RevenuePoint{}
		if err := rows.Scan(&point.Day, &point.OrderCount, &point.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan revenue point: %w", err)
		}
		report = append(report, point)
	}
	return report, rows.Err()
}
