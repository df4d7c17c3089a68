package floor

import (
	"strings"
	"time"

	"restaurant-floor-backend/internal/model"
)

func validateMenuItem(m model.MenuItem) error {
	switch {
	case strings.TrimSpace(m.Name) == "":
		return invalid("menu item", m.ID, "name is required")
	case !model.ValidCategory(m.Category):
		return invalid("menu item", m.ID, "unknown category %q", m.Category)
	case m.Price <= 0:
		return invalid("menu item", m.ID, "price must be positive, got %d", m.Price)
	}
	return nil
}

func (in AddMenuItem) apply(s *State, _ time.Time) error {
	m := in.Item
	m.ID = s.NextMenuItemID()
	m.Name = strings.TrimSpace(m.Name)
	if err := validateMenuItem(m); err != nil {
		return err
	}
	s.MenuItems = append(s.MenuItems, m)
	return nil
}

func (in UpdateMenuItem) apply(s *State, _ time.Time) error {
	idx := s.menuItemIndex(in.ItemID)
	if idx < 0 {
		return notFound("menu item", in.ItemID)
	}
	m := s.MenuItems[idx]
	m.Name = strings.TrimSpace(in.Patch.Name.OrElse(m.Name))
	m.Category = in.Patch.Category.OrElse(m.Category)
	m.Price = in.Patch.Price.OrElse(m.Price)
	if err := validateMenuItem(m); err != nil {
		return err
	}
	s.MenuItems[idx] = m
	return nil
}

func (in DeleteMenuItem) apply(s *State, _ time.Time) error {
	idx := s.menuItemIndex(in.ItemID)
	if idx < 0 {
		return notFound("menu item", in.ItemID)
	}
	s.MenuItems = append(s.MenuItems[:idx], s.MenuItems[idx+1:]...)
	return nil
}
