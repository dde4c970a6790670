package products

import (
	"time"

	"github.com/rp-labs/storefront-api/models"
	"github.com/rp-labs/storefront-api/store"
)

// decode normalizes a raw record into the canonical Product shape. Legacy
// records used name/imageUrl instead of title/image; both are accepted on
// read, only the canonical fields are ever written back.
func decode(rec store.Record) models.Product {
	d := rec.Data
	return models.Product{
		ID:          rec.ID,
		Title:       stringField(d, "title", "name"),
		Price:       floatField(d, "price"),
		Description: stringField(d, "description"),
		Category:    models.NormalizeCategory(stringField(d, "category")),
		Image:       stringField(d, "image", "imageUrl"),
		Stock:       intField(d, "stock"),
		CreatedBy:   stringField(d, "createdBy"),
		CreatedAt:   timeField(d, "createdAt"),
		UpdatedAt:   timeField(d, "updatedAt"),
	}
}

func stringField(d map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s, ok := d[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func floatField(d map[string]interface{}, key string) float64 {
	switch v := d[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

func intField(d map[string]interface{}, key string) int {
	switch v := d[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func timeField(d map[string]interface{}, key string) time.Time {
	if t, ok := d[key].(time.Time); ok {
		return t
	}
	return time.Time{}
}
