package database

// Menu queries
const (
	InsertMenuItemSQL = `
		INSERT INTO menu_items (name, description, price, category, image, available, preparation_time, spice_level, dietary, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`

	UpdateMenuItemSQL = `
		UPDATE menu_items
		SET name = $1, description = $2, price = $3, category = $4, image = $5, available = $6,
			preparation_time = $7, spice_level = $8, dietary = $9, rating = $10, updated_at = NOW()
		WHERE id = $11`

	ToggleMenuItemAvailabilitySQL = `
		UPDATE menu_items SET available = $1, updated_at = NOW() WHERE id = $2`

	DeleteMenuItemSQL = `
		DELETE FROM menu_items WHERE id = $1`

	GetMenuItemSQL = `
		SELECT id, name, description, price, category, image, available, preparation_time, spice_level, dietary, rating, created_at, updated_at
		FROM menu_items WHERE id = $1`

	GetAllMenuItemsSQL = `
		SELECT id, name, description, price, category, image, available, preparation_time, spice_level, dietary, rating, created_at, updated_at
		FROM menu_items
		ORDER BY created_at DESC`

	GetAvailableMenuItemsSQL = `
		SELECT id, name, description, price, category, image, available, preparation_time, spice_level, dietary, rating, created_at, updated_at
		FROM menu_items
		WHERE available = TRUE
		ORDER BY category, name`

	GetMenuCategoriesSQL = `
		SELECT DISTINCT category FROM menu_items WHERE available = TRUE ORDER BY category`
)

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (number, customer_id, customer_name, customer_email, customer_phone,
			delivery_address, payment_method, notes, subtotal, delivery_fee, discount, applied_coupon,
			total_amount, estimated_delivery_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at`

	InsertOrderItemSQL = `
		INSERT INTO order_items (order_id, menu_item_id, name, image, price, quantity, special_instructions)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	InsertOrderStatusLogSQL = `
		INSERT INTO order_status_log (order_id, status, changed_by, notes)
		VALUES ($1, $2, $3, $4)`

	UpdateOrderStatusSQL = `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE number = $2`

	UpdateOrderPaymentStatusSQL = `
		UPDATE orders SET payment_status = $1, updated_at = NOW()
		WHERE number = $2`

	GetOrderByNumberSQL = `
		SELECT id, number, customer_id, customer_name, customer_email, customer_phone,
			delivery_address, payment_method, payment_status, notes, subtotal, delivery_fee,
			discount, applied_coupon, total_amount, status, estimated_delivery_time, created_at, updated_at
		FROM orders WHERE number = $1`

	GetAllOrdersSQL = `
		SELECT id, number, customer_id, customer_name, customer_email, customer_phone,
			delivery_address, payment_method, payment_status, notes, subtotal, delivery_fee,
			discount, applied_coupon, total_amount, status, estimated_delivery_time, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC`

	GetOrdersByStatusSQL = `
		SELECT id, number, customer_id, customer_name, customer_email, customer_phone,
			delivery_address, payment_method, payment_status, notes, subtotal, delivery_fee,
			discount, applied_coupon, total_amount, status, estimated_delivery_time, created_at, updated_at
		FROM orders
		WHERE status = $1
		ORDER BY created_at DESC`

	GetOrdersByCustomerSQL = `
		SELECT id, number, customer_id, customer_name, customer_email, customer_phone,
			delivery_address, payment_method, payment_status, notes, subtotal, delivery_fee,
			discount, applied_coupon, total_amount, status, estimated_delivery_time, created_at, updated_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC`

	GetTodaysOrdersSQL = `
		SELECT id, number, customer_id, customer_name, customer_email, customer_phone,
			delivery_address, payment_method, payment_status, notes, subtotal, delivery_fee,
			discount, applied_coupon, total_amount, status, estimated_delivery_time, created_at, updated_at
		FROM orders
		WHERE created_at >= CURRENT_DATE
		ORDER BY created_at DESC`

	GetOrderItemsSQL = `
		SELECT id, order_id, menu_item_id, name, image, price, quantity, special_instructions
		FROM order_items WHERE order_id = $1
		ORDER BY id ASC`

	GetOrderStatusHistorySQL = `
		SELECT status, changed_by, changed_at, notes
		FROM order_status_log
		WHERE order_id = (SELECT id FROM orders WHERE number = $1)
		ORDER BY changed_at ASC`

	GetNextOrderNumberSQL = `
		SELECT COALESCE(MAX(CAST(SUBSTRING(number FROM 'ORD_[0-9]{8}_([0-9]{3})') AS INTEGER)), 0) + 1
		FROM orders
		WHERE number LIKE $1`
)

// Customer queries
const (
	InsertCustomerSQL = `
		INSERT INTO customers (user_id, email, name, phone, addresses)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	GetCustomerSQL = `
		SELECT id, user_id, email, name, phone, addresses, total_orders, total_spent,
			last_order_date, loyalty_points, status, created_at
		FROM customers WHERE id = $1`

	GetCustomerByUserSQL = `
		SELECT id, user_id, email, name, phone, addresses, total_orders, total_spent,
			last_order_date, loyalty_points, status, created_at
		FROM customers WHERE user_id = $1`

	GetAllCustomersSQL = `
		SELECT id, user_id, email, name, phone, addresses, total_orders, total_spent,
			last_order_date, loyalty_points, status, created_at
		FROM customers
		ORDER BY created_at DESC`

	SearchCustomersSQL = `
		SELECT id, user_id, email, name, phone, addresses, total_orders, total_spent,
			last_order_date, loyalty_points, status, created_at
		FROM customers
		WHERE name ILIKE $1 OR email ILIKE $1 OR phone LIKE $1
		ORDER BY created_at DESC`

	LockCustomerStatsSQL = `
		SELECT total_orders, total_spent, loyalty_points
		FROM customers WHERE id = $1
		FOR UPDATE`

	UpdateCustomerStatsSQL = `
		UPDATE customers
		SET total_orders = $1, total_spent = $2, loyalty_points = $3, status = $4, last_order_date = NOW()
		WHERE id = $5`
)

// User queries
const (
	InsertUserSQL = `
		INSERT INTO users (email, password_hash, name, phone, address, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	UserExistsSQL = `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	GetUserByEmailSQL = `
		SELECT id, email, password_hash, name, phone, address, role, created_at, last_login
		FROM users WHERE email = $1`

	GetUserSQL = `
		SELECT id, email, password_hash, name, phone, address, role, created_at, last_login
		FROM users WHERE id = $1`

	UpdateUserLastLoginSQL = `
		UPDATE users SET last_login = NOW() WHERE id = $1`
)

// Dashboard queries
const (
	CountOrdersSQL = `
		SELECT COUNT(*) FROM orders`

	SumDeliveredRevenueSQL = `
		SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status = 'delivered'`

	CountActiveOrdersSQL = `
		SELECT COUNT(*) FROM orders WHERE status NOT IN ('delivered', 'cancelled')`

	CountCustomersSQL = `
		SELECT COUNT(*) FROM customers`

	RevenueByDaySQL = `
		SELECT DATE(created_at) AS day, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2 AND status <> 'cancelled'
		GROUP BY day
		ORDER BY day ASC`
)
