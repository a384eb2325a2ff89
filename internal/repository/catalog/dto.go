package catalog

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/shoplight/shoplight/internal/domain"
)

// buildHashFields converts an index record into a flat map for HSET.
// The vendor field doubles as the TAG used for store isolation.
func buildHashFields(rec *domain.IndexRecord, vendor string, vector []float32) map[string]string {
	m := map[string]string{
		"id":          rec.ID,
		"title":       rec.Title,
		"description": rec.Description,
		"price":       rec.Price,
		"inventory":   strconv.Itoa(rec.Inventory),
		"vendor":      vendor,
		"vector":      vectorToHashBytes(vector),
	}
	if rec.Category != "" {
		m["category"] = rec.Category
	}
	if rec.Tags != "" {
		m["tags"] = rec.Tags
	}
	if rec.ImageURL != "" {
		m["image_url"] = rec.ImageURL
	}
	return m
}

// parseHashFields converts a flat hash map back into an index record.
func parseHashFields(m map[string]string) domain.IndexRecord {
	inventory, _ := strconv.Atoi(m["inventory"])
	return domain.IndexRecord{
		ID:          m["id"],
		Title:       m["title"],
		Description: m["description"],
		Category:    m["category"],
		Price:       m["price"],
		Inventory:   inventory,
		Tags:        m["tags"],
		ImageURL:    m["image_url"],
	}
}

// vectorToHashBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToHashBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
