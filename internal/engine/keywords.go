package engine

import (
	"strings"

	"github.com/pennywise-app/pennywise/internal/model"
)

// categoryKeywords maps merchant substrings to categories for the
// deterministic fallback. Tested in listed order; first match wins.
var categoryKeywords = []struct {
	category model.Category
	keywords []string
}{
	{model.CategoryFood, []string{
		"grocery", "supermarket", "restaurant", "cafe",
		"food", "pizza", "mcdonald", "subway",
	}},
	{model.CategoryTransport, []string{
		"gas", "fuel", "uber", "lyft", "taxi", "transport",
	}},
	{model.CategoryShopping, []string{
		"amazon", "target", "walmart", "shop", "store",
	}},
	{model.CategoryEntertainment, []string{
		"netflix", "spotify", "movie", "theater", "entertainment",
	}},
	{model.CategoryBills, []string{
		"electric", "water", "internet", "phone", "utility", "bill",
	}},
	{model.CategoryHealthcare, []string{
		"hospital", "pharmacy", "doctor", "health", "medical",
	}},
}

// keywordCategory resolves a category from the merchant string alone,
// case-insensitive substring match, defaulting to Other.
func keywordCategory(merchant string) model.Category {
	merchantLower := strings.ToLower(merchant)

	for _, entry := range categoryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(merchantLower, keyword) {
				return entry.category
			}
		}
	}

	return model.CategoryOther
}
