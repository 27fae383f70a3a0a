package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"fooddash/internal/database"
	"fooddash/internal/logger"
	"fooddash/internal/models"
)

// ErrNotFound is returned when a customer does not exist
var ErrNotFound = errors.New("customer not found")

// Service manages customer profiles and the stats derived from their orders
type Service struct {
	db     *database.DB
	logger *logger.Logger
}

// NewService creates a new customer service
func NewService(db *database.DB, log *logger.Logger) *Service {
	return &Service{
		db:     db,
		logger: log,
	}
}

// Get returns a customer by id
func (s *Service) Get(ctx context.Context, id int) (*models.Customer, error) {
	return s.scanOne(s.db.QueryRow(ctx, database.GetCustomerSQL, id))
}

// GetByUser returns the customer profile owned by a user account
func (s *Service) GetByUser(ctx context.Context, userID int) (*models.Customer, error) {
	return s.scanOne(s.db.QueryRow(ctx, database.GetCustomerByUserSQL, userID))
}

// List returns all customers, newest first
func (s *Service) List(ctx context.Context) ([]models.Customer, error) {
	rows, err := s.db.Query(ctx, database.GetAllCustomersSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()
	return s.scanMany(rows)
}

// Search finds customers by partial name, email, or phone match
func (s *Service) Search(ctx context.Context, query string) ([]models.Customer, error) {
	rows, err := s.db.Query(ctx, database.SearchCustomersSQL, "%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}
	defer rows.Close()
	return s.scanMany(rows)
}

// Stats is the aggregate view over the customer base
type Stats struct {
	TotalCustomers    int                            `json:"total_customers"`
	ByStatus          map[models.CustomerStatus]int  `json:"by_status"`
	TotalRevenue      float64                        `json:"total_revenue"`
	AverageOrderValue float64                        `json:"average_order_value"`
}

// AggregateStats computes customer-base totals and per-status counts
func (s *Service) AggregateStats(ctx context.Context) (*Stats, error) {
	customers, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalCustomers: len(customers),
		ByStatus: map[models.CustomerStatus]int{
			models.CustomerNew:      0,
			models.CustomerActive:   0,
			models.CustomerVIP:      0,
			models.CustomerInactive: 0,
		},
	}

	totalOrders := 0
	for _, c := range customers {
		stats.ByStatus[c.Status]++
		stats.TotalRevenue += c.TotalSpent
		totalOrders += c.TotalOrders
	}
	if totalOrders > 0 {
		stats.AverageOrderValue = stats.TotalRevenue / float64(totalOrders)
	}

	return stats, nil
}

// RecordOrder folds a new order into a customer's running stats: order count,
// spend, loyalty points, last order date, and the re-derived status. It runs
// inside the caller's transaction so the stats can never drift from the
// orders table.
func (s *Service) RecordOrder(ctx context.Context, tx pgx.Tx, customerID int, totalAmount float64) error {
	var totalOrders int
	var totalSpent float64
	var loyaltyPoints int

	err := tx.QueryRow(ctx, database.LockCustomerStatsSQL, customerID).Scan(&totalOrders, &totalSpent, &loyaltyPoints)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to lock customer stats: %w", err)
	}

	totalOrders++
	totalSpent += totalAmount
	loyaltyPoints += models.CalculateLoyaltyPoints(totalAmount)
	status := models.DeriveCustomerStatus(totalOrders, totalSpent)

	_, err = tx.Exec(ctx, database.UpdateCustomerStatsSQL,
		totalOrders, totalSpent, loyaltyPoints, status, customerID)
	if err != nil {
		return fmt.Errorf("failed to update customer stats: %w", err)
	}

	return nil
}

func (s *Service) scanOne(row pgx.Row) (*models.Customer, error) {
	c := &models.Customer{}
	err := row.Scan(
		&c.ID, &c.UserID, &c.Email, &c.Name, &c.Phone, &c.Addresses,
		&c.TotalOrders, &c.TotalSpent, &c.LastOrderDate, &c.LoyaltyPoints,
		&c.Status, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return c, nil
}

func (s *Service) scanMany(rows pgx.Rows) ([]models.Customer, error) {
	customers := []models.Customer{}
	for rows.Next() {
		c := models.Customer{}
		err := rows.Scan(
			&c.ID, &c.UserID, &c.Email, &c.Name, &c.Phone, &c.Addresses,
			&c.TotalOrders, &c.TotalSpent, &c.LastOrderDate, &c.LoyaltyPoints,
			&c.Status, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}
