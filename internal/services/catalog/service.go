package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"fooddash/internal/database"
	"fooddash/internal/logger"
	"fooddash/internal/models"
)

// ErrNotFound is returned when a menu item does not exist
var ErrNotFound = errors.New("menu item not found")

// Service manages the menu catalog
type Service struct {
	db     *database.DB
	logger *logger.Logger
}

// NewService creates a new catalog service
func NewService(db *database.DB, log *logger.Logger) *Service {
	return &Service{
		db:     db,
		logger: log,
	}
}

// Create inserts a new menu item
func (s *Service) Create(ctx context.Context, req *models.MenuItemRequest, requestID string) (*models.MenuItem, error) {
	item := &models.MenuItem{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Category:        req.Category,
		Image:           req.Image,
		Available:       req.Available,
		PreparationTime: req.PreparationTime,
		SpiceLevel:      models.SpiceLevel(req.SpiceLevel),
		Dietary:         req.Dietary,
		Rating:          req.Rating,
	}
	if item.Dietary == nil {
		item.Dietary = []string{}
	}

	err := s.db.QueryRow(ctx, database.InsertMenuItemSQL,
		item.Name, item.Description, item.Price, item.Category, item.Image,
		item.Available, item.PreparationTime, item.SpiceLevel, item.Dietary, item.Rating,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	s.logger.Info("menu_item_created", fmt.Sprintf("Created menu item %s", item.Name), requestID,
		map[string]interface{}{
			"menu_item_id": item.ID,
			"category":     item.Category,
		})

	return item, nil
}

// Update replaces all editable fields of a menu item
func (s *Service) Update(ctx context.Context, id int, req *models.MenuItemRequest, requestID string) (*models.MenuItem, error) {
	dietary := req.Dietary
	if dietary == nil {
		dietary = []string{}
	}

	tag, err := s.db.Pool.Exec(ctx, database.UpdateMenuItemSQL,
		req.Name, req.Description, req.Price, req.Category, req.Image,
		req.Available, req.PreparationTime, req.SpiceLevel, dietary, req.Rating, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	s.logger.Info("menu_item_updated", fmt.Sprintf("Updated menu item %d", id), requestID,
		map[string]interface{}{"menu_item_id": id})

	return s.Get(ctx, id)
}

// ToggleAvailability flips a dish in or out of the storefront menu
func (s *Service) ToggleAvailability(ctx context.Context, id int, available bool, requestID string) error {
	tag, err := s.db.Pool.Exec(ctx, database.ToggleMenuItemAvailabilitySQL, available, id)
	if err != nil {
		return fmt.Errorf("failed to toggle availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	s.logger.Info("menu_item_availability_toggled",
		fmt.Sprintf("Menu item %d availability set to %t", id, available), requestID,
		map[string]interface{}{
			"menu_item_id": id,
			"available":    available,
		})

	return nil
}

// Delete removes a menu item from the catalog
func (s *Service) Delete(ctx context.Context, id int, requestID string) error {
	tag, err := s.db.Pool.Exec(ctx, database.DeleteMenuItemSQL, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	s.logger.Info("menu_item_deleted", fmt.Sprintf("Deleted menu item %d", id), requestID,
		map[string]interface{}{"menu_item_id": id})

	return nil
}

// Get returns a single menu item by id
func (s *Service) Get(ctx context.Context, id int) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	err := s.db.QueryRow(ctx, database.GetMenuItemSQL, id).Scan(
		&item.ID, &item.Name, &item.Description, &item.Price, &item.Category,
		&item.Image, &item.Available, &item.PreparationTime, &item.SpiceLevel,
		&item.Dietary, &item.Rating, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return item, nil
}

// ListAll returns every menu item, including unavailable ones
func (s *Service) ListAll(ctx context.Context) ([]models.MenuItem, error) {
	return s.list(ctx, database.GetAllMenuItemsSQL)
}

// ListAvailable returns the storefront menu, optionally filtered by category
func (s *Service) ListAvailable(ctx context.Context, category string) ([]models.MenuItem, error) {
	items, err := s.list(ctx, database.GetAvailableMenuItemsSQL)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return items, nil
	}

	filtered := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if item.Category == category {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

// Categories returns the distinct categories of available dishes
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, database.GetMenuCategoriesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (s *Service) list(ctx context.Context, sql string) ([]models.MenuItem, error) {
	rows, err := s.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		item := models.MenuItem{}
		err := rows.Scan(
			&item.ID, &item.Name, &item.Description, &item.Price, &item.Category,
			&item.Image, &item.Available, &item.PreparationTime, &item.SpiceLevel,
			&item.Dietary, &item.Rating, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
