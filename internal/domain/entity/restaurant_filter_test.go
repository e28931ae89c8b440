package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRestaurantFilter_Match(t *testing.T) {
	sushi := &Restaurant{
		Name:       "Sakura House",
		Categories: []string{"Japanese", "Sushi"},
		Menu: []MenuItem{
			{Name: "Salmon Nigiri", Description: "Fresh salmon over rice", Category: "Nigiri"},
			{Name: "Miso Soup", Description: "Tofu and seaweed", Category: "Soups"},
		},
	}

	tests := []struct {
		name   string
		filter RestaurantFilter
		want   bool
	}{
		{name: "empty filter", filter: RestaurantFilter{}, want: true},
		{name: "blank query", filter: RestaurantFilter{Query: "   "}, want: true},
		{name: "restaurant name", filter: RestaurantFilter{Query: "sakura"}, want: true},
		{name: "category substring", filter: RestaurantFilter{Query: "japan"}, want: true},
		{name: "dish name", filter: RestaurantFilter{Query: "NIGIRI"}, want: true},
		{name: "dish description", filter: RestaurantFilter{Query: "seaweed"}, want: true},
		{name: "dish category", filter: RestaurantFilter{Query: "soups"}, want: true},
		{name: "no match", filter: RestaurantFilter{Query: "pizza"}, want: false},
		{name: "category exact ignoring case", filter: RestaurantFilter{Category: "sushi"}, want: true},
		{name: "category is not a substring match", filter: RestaurantFilter{Category: "Sush"}, want: false},
		{name: "category and query", filter: RestaurantFilter{Category: "Japanese", Query: "miso"}, want: true},
		{name: "category matches, query does not", filter: RestaurantFilter{Category: "Japanese", Query: "burger"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(sushi))
		})
	}
}

func TestFilterRestaurants_KeepsOrder(t *testing.T) {
	a := &Restaurant{Name: "Burger Barn", Categories: []string{"American"}}
	b := &Restaurant{Name: "Pizza Place", Categories: []string{"Italian"}}
	c := &Restaurant{Name: "Barn Pizza", Categories: []string{"Italian", "American"}}

	got := FilterRestaurants([]*Restaurant{a, b, c, nil}, RestaurantFilter{Category: "american"})

	assert.Equal(t, []*Restaurant{a, c}, got)
	assert.Empty(t, FilterRestaurants(nil, RestaurantFilter{Query: "x"}))
	assert.True(t, RestaurantFilter{Category: " "}.IsZero())
}
