package entity

import "strings"

// RestaurantFilter narrows a restaurant listing. Query is a case-insensitive
// substring matched against the restaurant name, its categories and the
// name, description and category of every dish. Category must equal one of
// the restaurant's categories, ignoring case. Empty fields match everything.
type RestaurantFilter struct {
	Query    string
	Category string
}

// IsZero reports whether the filter keeps every restaurant.
func (f RestaurantFilter) IsZero() bool {
	return strings.TrimSpace(f.Query) == "" && strings.TrimSpace(f.Category) == ""
}

// Match reports whether r passes both parts of the filter.
func (f RestaurantFilter) Match(r *Restaurant) bool {
	return r != nil && f.matchCategory(r) && f.matchQuery(r)
}

func (f RestaurantFilter) matchCategory(r *Restaurant) bool {
	category := strings.TrimSpace(f.Category)
	if category == "" {
		return true
	}

	for _, c := range r.Categories {
		if strings.EqualFold(c, category) {
			return true
		}
	}

	return false
}

func (f RestaurantFilter) matchQuery(r *Restaurant) bool {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	if query == "" {
		return true
	}
	contains := func(s string) bool {
		return strings.Contains(strings.ToLower(s), query)
	}

	if contains(r.Name) {
		return true
	}
	for _, c := range r.Categories {
		if contains(c) {
			return true
		}
	}
	for _, item := range r.Menu {
		if contains(item.Name) || contains(item.Description) || contains(item.Category) {
			return true
		}
	}

	return false
}

// FilterRestaurants returns the restaurants that match f, keeping their order.
func FilterRestaurants(restaurants []*Restaurant, f RestaurantFilter) []*Restaurant {
	matched := make([]*Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if f.Match(r) {
			matched = append(matched, r)
		}
	}

	return matched
}
