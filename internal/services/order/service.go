package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"fooddash/internal/database"
	"fooddash/internal/logger"
	"fooddash/internal/messaging"
	"fooddash/internal/models"
)

// ErrNotFound is returned when an order does not exist
var ErrNotFound = errors.New("order not found")

// InvalidTransitionError is returned when a status change violates the
// forward-only lifecycle
type InvalidTransitionError struct {
	From, To models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change order status from %s to %s", e.From, e.To)
}

// Service manages the order lifecycle
type Service struct {
	db        *database.DB
	publisher *messaging.Publisher
	logger    *logger.Logger
}

// NewService creates a new order service
func NewService(db *database.DB, publisher *messaging.Publisher, log *logger.Logger) *Service {
	return &Service{
		db:        db,
		publisher: publisher,
		logger:    log,
	}
}

// ListFilter narrows the admin order listing
type ListFilter struct {
	Status string
	Today  bool
}

// List returns orders newest first, optionally filtered
func (s *Service) List(ctx context.Context, filter ListFilter) ([]models.Order, error) {
	var rows pgx.Rows
	var err error

	switch {
	case filter.Status != "":
		status, verr := models.ValidateOrderStatus(filter.Status)
		if verr != nil {
			return nil, verr
		}
		rows, err = s.db.Query(ctx, database.GetOrdersByStatusSQL, status)
	case filter.Today:
		rows, err = s.db.Query(ctx, database.GetTodaysOrdersSQL)
	default:
		rows, err = s.db.Query(ctx, database.GetAllOrdersSQL)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// ListByCustomer returns a customer's orders, newest first
func (s *Service) ListByCustomer(ctx context.Context, customerID int) ([]models.Order, error) {
	rows, err := s.db.Query(ctx, database.GetOrdersByCustomerSQL, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer orders: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// Get returns an order with its item snapshots
func (s *Service) Get(ctx context.Context, orderNumber string) (*models.Order, error) {
	order, err := s.getBare(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, database.GetOrderItemsSQL, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item := models.OrderItem{}
		err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Name,
			&item.Image, &item.Price, &item.Quantity, &item.SpecialInstructions)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	return order, rows.Err()
}

// Track returns the public tracking view of an order
func (s *Service) Track(ctx context.Context, orderNumber string) (*models.OrderTrackingResponse, error) {
	order, err := s.getBare(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	tracking := &models.OrderTrackingResponse{
		OrderNumber:   order.Number,
		CurrentStatus: order.Status,
		PaymentStatus: order.PaymentStatus,
		UpdatedAt:     order.UpdatedAt,
	}
	if order.Status == models.StatusOutForDelivery {
		eta := order.EstimatedDeliveryTime
		tracking.EstimatedDeliveryTime = &eta
	}
	return tracking, nil
}

// History returns the status log of an order, oldest first
func (s *Service) History(ctx context.Context, orderNumber string) ([]models.OrderStatusHistory, error) {
	if _, err := s.getBare(ctx, orderNumber); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, database.GetOrderStatusHistorySQL, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to load status history: %w", err)
	}
	defer rows.Close()

	history := []models.OrderStatusHistory{}
	for rows.Next() {
		entry := models.OrderStatusHistory{}
		if err := rows.Scan(&entry.Status, &entry.ChangedBy, &entry.ChangedAt, &entry.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		history = append(history, entry)
	}
	return history, rows.Err()
}

// UpdateStatus moves an order along its lifecycle. The transition table is
// authoritative: backwards moves and exits from terminal states are rejected.
func (s *Service) UpdateStatus(ctx context.Context, orderNumber string, newStatus models.OrderStatus, changedBy, notes, requestID string) (*models.Order, error) {
	order, err := s.getBare(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	if !models.CanTransition(order.Status, newStatus) {
		return nil, &InvalidTransitionError{From: order.Status, To: newStatus}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, database.UpdateOrderStatusSQL, newStatus, orderNumber); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	var logNotes *string
	if notes != "" {
		logNotes = &notes
	}
	if _, err := tx.Exec(ctx, database.InsertOrderStatusLogSQL, order.ID, newStatus, changedBy, logNotes); err != nil {
		return nil, fmt.Errorf("failed to log status change: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit status change: %w", err)
	}

	s.logger.Info("order_status_updated",
		fmt.Sprintf("Order %s moved from %s to %s", orderNumber, order.Status, newStatus), requestID,
		map[string]interface{}{
			"order_number": orderNumber,
			"old_status":   order.Status,
			"new_status":   newStatus,
			"changed_by":   changedBy,
		})

	// Notify subscribers; the status change stands even if this fails
	var eta *time.Time
	if newStatus == models.StatusOutForDelivery {
		etaCopy := order.EstimatedDeliveryTime
		eta = &etaCopy
	}
	msg := models.NewStatusUpdateMessage(orderNumber, order.Status, newStatus, changedBy, eta)
	if err := s.publisher.PublishNotification(ctx, msg); err != nil {
		s.logger.Error("notification_publish_failed", "Failed to publish status notification", requestID, err,
			map[string]interface{}{"order_number": orderNumber})
	}

	order.Status = newStatus
	return order, nil
}

// Cancel moves an order to cancelled if its current status allows it
func (s *Service) Cancel(ctx context.Context, orderNumber, changedBy, reason, requestID string) (*models.Order, error) {
	return s.UpdateStatus(ctx, orderNumber, models.StatusCancelled, changedBy, reason, requestID)
}

// UpdatePaymentStatus sets the payment axis independently of delivery status
func (s *Service) UpdatePaymentStatus(ctx context.Context, orderNumber string, status models.PaymentStatus, requestID string) (*models.Order, error) {
	order, err := s.getBare(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	if err := s.db.Exec(ctx, database.UpdateOrderPaymentStatusSQL, status, orderNumber); err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}

	s.logger.Info("payment_status_updated",
		fmt.Sprintf("Order %s payment status set to %s", orderNumber, status), requestID,
		map[string]interface{}{
			"order_number":   orderNumber,
			"payment_status": status,
		})

	order.PaymentStatus = status
	return order, nil
}

func (s *Service) getBare(ctx context.Context, orderNumber string) (*models.Order, error) {
	order := &models.Order{}
	err := s.db.QueryRow(ctx, database.GetOrderByNumberSQL, orderNumber).Scan(
		&order.ID, &order.Number, &order.CustomerID, &order.CustomerName,
		&order.CustomerEmail, &order.CustomerPhone, &order.DeliveryAddress,
		&order.PaymentMethod, &order.PaymentStatus, &order.Notes, &order.Subtotal,
		&order.DeliveryFee, &order.Discount, &order.AppliedCoupon, &order.TotalAmount,
		&order.Status, &order.EstimatedDeliveryTime, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

func scanOrders(rows pgx.Rows) ([]models.Order, error) {
	orders := []models.Order{}
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
		orders = append(orders, order)
	}
	return orders, rows.Err()
}
