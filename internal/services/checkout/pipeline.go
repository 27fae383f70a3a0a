package checkout

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
	"fooddash/internal/services/cart"
	"fooddash/internal/services/coupon"
	"fooddash/internal/services/customer"
)

const (
	// Delivery is free above this subtotal
	freeDeliveryThreshold = 500.0
	deliveryFee           = 50.0

	estimatedDeliveryWindow = 45 * time.Minute
)

// ErrEmptyCart is returned when checkout is attempted on an empty cart
var ErrEmptyCart = errors.New("cart is empty")

// ValidationError marks a rejected checkout payload
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Summary is the priced breakdown shown before placing an order
type Summary struct {
	Subtotal      float64 `json:"subtotal"`
	DeliveryFee   float64 `json:"delivery_fee"`
	Discount      float64 `json:"discount"`
	AppliedCoupon string  `json:"applied_coupon,omitempty"`
	TotalAmount   float64 `json:"total_amount"`
}

// ComputeSummary prices a cart with an optional applied coupon. Delivery is
// free when the subtotal exceeds the threshold; the discount comes from the
// coupon resolver.
func ComputeSummary(state cart.State, applied *models.Coupon) Summary {
	summary := Summary{Subtotal: state.TotalAmount}

	if summary.Subtotal <= freeDeliveryThreshold {
		summary.DeliveryFee = deliveryFee
	}

	summary.Discount = coupon.ComputeDiscount(applied, summary.Subtotal)
	if applied != nil {
		summary.AppliedCoupon = applied.Code
	}

	summary.TotalAmount = summary.Subtotal + summary.DeliveryFee - summary.Discount
	return summary
}

// PlaceOrderRequest is the payload for placing an order
type PlaceOrderRequest struct {
	DeliveryAddress string `json:"delivery_address"`
	Phone           string `json:"phone"`
	PaymentMethod   string `json:"payment_method"`
	Notes           string `json:"notes,omitempty"`
}

// Validate checks the order payload
func (req *PlaceOrderRequest) Validate() error {
	if len(req.DeliveryAddress) < 10 {
		return fmt.Errorf("delivery_address must be at least 10 characters")
	}
	if len(req.Phone) < 10 {
		return fmt.Errorf("phone must be at least 10 digits")
	}
	if _, err := models.ValidatePaymentMethod(req.PaymentMethod); err != nil {
		return err
	}
	return nil
}

// Service runs the checkout pipeline
type Service struct {
	db          *database.DB
	cartStore   *cart.Store
	couponStore *coupon.Store
	customers   *customer.Service
	publisher   *messaging.Publisher
	logger      *logger.Logger
}

// NewService creates a new checkout service
func NewService(db *database.DB, cartStore *cart.Store, couponStore *coupon.Store,
	customers *customer.Service, publisher *messaging.Publisher, log *logger.Logger) *Service {
	return &Service{
		db:          db,
		cartStore:   cartStore,
		couponStore: couponStore,
		customers:   customers,
		publisher:   publisher,
		logger:      log,
	}
}

// Summary prices the current cart for a session
func (s *Service) Summary(ctx context.Context, sessionID string) Summary {
	state := s.cartStore.Load(ctx, sessionID)
	applied := s.couponStore.Applied(ctx, sessionID)
	return ComputeSummary(state, applied)
}

// PlaceOrder snapshots the cart into a persisted order. The order row, its
// item rows, the initial status-log entry, and the customer stats update
// commit in a single transaction; the cart and applied coupon are cleared
// only after that commit succeeds.
func (s *Service) PlaceOrder(ctx context.Context, userID int, sessionID string, req *PlaceOrderRequest, requestID string) (*models.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	state := s.cartStore.Load(ctx, sessionID)
	if len(state.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	applied := s.couponStore.Applied(ctx, sessionID)
	summary := ComputeSummary(state, applied)

	cust, err := s.customers.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer profile: %w", err)
	}

	now := time.Now()
	order := &models.Order{
		CustomerID:            cust.ID,
		CustomerName:          cust.Name,
		CustomerEmail:         cust.Email,
		DeliveryAddress:       req.DeliveryAddress,
		CustomerPhone:         req.Phone,
		PaymentMethod:         models.PaymentMethod(req.PaymentMethod),
		PaymentStatus:         models.PaymentPending,
		Subtotal:              summary.Subtotal,
		DeliveryFee:           summary.DeliveryFee,
		Discount:              summary.Discount,
		TotalAmount:           summary.TotalAmount,
		Status:                models.StatusPending,
		EstimatedDeliveryTime: now.Add(estimatedDeliveryWindow),
	}
	if req.Notes != "" {
		order.Notes = &req.Notes
	}
	if summary.AppliedCoupon != "" {
		order.AppliedCoupon = &summary.AppliedCoupon
	}
	for _, line := range state.Lines {
		item := models.OrderItem{
			MenuItemID: line.MenuItemID,
			Name:       line.Name,
			Image:      line.Image,
			Price:      line.Price,
			Quantity:   line.Quantity,
		}
		if line.SpecialInstructions != "" {
			instructions := line.SpecialInstructions
			item.SpecialInstructions = &instructions
		}
		order.Items = append(order.Items, item)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	order.Number, err = s.nextOrderNumber(ctx, tx, now)
	if err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, database.InsertOrderSQL,
		order.Number, order.CustomerID, order.CustomerName, order.CustomerEmail,
		order.CustomerPhone, order.DeliveryAddress, order.PaymentMethod, order.Notes,
		order.Subtotal, order.DeliveryFee, order.Discount, order.AppliedCoupon,
		order.TotalAmount, order.EstimatedDeliveryTime,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		_, err = tx.Exec(ctx, database.InsertOrderItemSQL,
			order.ID, order.Items[i].MenuItemID, order.Items[i].Name, order.Items[i].Image,
			order.Items[i].Price, order.Items[i].Quantity, order.Items[i].SpecialInstructions)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	_, err = tx.Exec(ctx, database.InsertOrderStatusLogSQL,
		order.ID, models.StatusPending, "system", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to insert status log: %w", err)
	}

	if err := s.customers.RecordOrder(ctx, tx, cust.ID, order.TotalAmount); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	s.logger.Info("order_placed",
		fmt.Sprintf("Order %s placed for %.2f", order.Number, order.TotalAmount), requestID,
		map[string]interface{}{
			"order_number": order.Number,
			"customer_id":  order.CustomerID,
			"total_amount": order.TotalAmount,
			"items":        len(order.Items),
		})

	// The order is committed; a failure to publish must not fail the request
	s.publishEvents(ctx, order, requestID)

	// Same rule for session cleanup: the order stands even if cleanup fails
	if err := s.cartStore.Clear(ctx, sessionID); err != nil {
		s.logger.Error("cart_clear_failed", "Failed to clear cart after checkout", requestID, err, nil)
	}
	if err := s.couponStore.Remove(ctx, sessionID); err != nil {
		s.logger.Error("coupon_clear_failed", "Failed to clear coupon after checkout", requestID, err, nil)
	}

	return order, nil
}

func (s *Service) nextOrderNumber(ctx context.Context, tx pgx.Tx, now time.Time) (string, error) {
	datePrefix := fmt.Sprintf("ORD_%s_%%", now.Format("20060102"))

	var sequence int
	if err := tx.QueryRow(ctx, database.GetNextOrderNumberSQL, datePrefix).Scan(&sequence); err != nil {
		return "", fmt.Errorf("failed to generate order number: %w", err)
	}

	return models.GenerateOrderNumber(now, sequence), nil
}

func (s *Service) publishEvents(ctx context.Context, order *models.Order, requestID string) {
	placed := models.NewOrderPlacedMessage(order)
	routingKey := models.OrderRoutingKey(order.PaymentMethod, placed.Priority)
	if err := s.publisher.PublishOrderPlaced(ctx, placed, routingKey, uint8(placed.Priority)); err != nil {
		s.logger.Error("order_event_publish_failed", "Failed to publish order-placed event", requestID, err,
			map[string]interface{}{"order_number": order.Number})
	}

	notification := models.NewStatusUpdateMessage(order.Number, "", models.StatusPending, "system", &order.EstimatedDeliveryTime)
	if err := s.publisher.PublishNotification(ctx, notification); err != nil {
		s.logger.Error("notification_publish_failed", "Failed to publish order notification", requestID, err,
			map[string]interface{}{"order_number": order.Number})
	}
}
