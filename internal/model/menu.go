package model

// Categories is the fixed menu category list, in display order.
var Categories = []string{
	"Starters",
	"Mains",
	"Drinks",
	"Bar",
	"Desserts",
}

// ValidCategory reports whether c belongs to Categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// MenuItem is a dish or drink that can be ordered. Price is in minor currency units.
type MenuItem struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int64  `json:"price"`
}
