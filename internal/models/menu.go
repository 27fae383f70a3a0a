package models

import (
	"fmt"
	"time"
)

// SpiceLevel represents how spicy a dish is
type SpiceLevel string

const (
	SpiceNone    SpiceLevel = "none"
	SpiceMild    SpiceLevel = "mild"
	SpiceMedium  SpiceLevel = "medium"
	SpiceHot     SpiceLevel = "hot"
	SpiceVeryHot SpiceLevel = "very-hot"
)

// DietaryTag marks a dish as matching a dietary preference
type DietaryTag string

const (
	DietaryVegetarian DietaryTag = "vegetarian"
	DietaryVegan      DietaryTag = "vegan"
	DietaryGlutenFree DietaryTag = "gluten-free"
)

// MenuItem represents a sellable dish
type MenuItem struct {
	ID              int        `json:"id,omitempty" db:"id"`
	Name            string     `json:"name" db:"name"`
	Description     string     `json:"description" db:"description"`
	Price           float64    `json:"price" db:"price"`
	Category        string     `json:"category" db:"category"`
	Image           string     `json:"image" db:"image"`
	Available       bool       `json:"available" db:"available"`
	PreparationTime int        `json:"preparation_time" db:"preparation_time"`
	SpiceLevel      SpiceLevel `json:"spice_level" db:"spice_level"`
	Dietary         []string   `json:"dietary" db:"dietary"`
	Rating          *float64   `json:"rating,omitempty" db:"rating"`
	CreatedAt       time.Time  `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at,omitempty" db:"updated_at"`
}

// MenuItemRequest represents the payload for creating or updating a menu item
type MenuItemRequest struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	Category        string   `json:"category"`
	Image           string   `json:"image"`
	Available       bool     `json:"available"`
	PreparationTime int      `json:"preparation_time"`
	SpiceLevel      string   `json:"spice_level"`
	Dietary         []string `json:"dietary"`
	Rating          *float64 `json:"rating,omitempty"`
}

// Validate checks the menu item payload
func (req *MenuItemRequest) Validate() error {
	if len(req.Name) == 0 {
		return fmt.Errorf("name is required")
	}
	if len(req.Name) > 100 {
		return fmt.Errorf("name must not exceed 100 characters")
	}
	if req.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	if len(req.Category) == 0 {
		return fmt.Errorf("category is required")
	}
	if req.PreparationTime < 1 {
		return fmt.Errorf("preparation_time must be a positive number of minutes")
	}
	if req.SpiceLevel == "" {
		req.SpiceLevel = string(SpiceNone)
	}
	switch SpiceLevel(req.SpiceLevel) {
	case SpiceNone, SpiceMild, SpiceMedium, SpiceHot, SpiceVeryHot:
	default:
		return fmt.Errorf("spice_level must be one of: none, mild, medium, hot, very-hot")
	}
	for _, tag := range req.Dietary {
		switch DietaryTag(tag) {
		case DietaryVegetarian, DietaryVegan, DietaryGlutenFree:
		default:
			return fmt.Errorf("dietary tag %q is not recognised", tag)
		}
	}
	if req.Rating != nil && (*req.Rating < 0 || *req.Rating > 5) {
		return fmt.Errorf("rating must be between 0 and 5")
	}
	return nil
}
