package domain

import "encoding/json"

// Product is a storefront catalog product as sent by the chat surface.
// Field names mirror the platform export format.
type Product struct {
	Title       string    `json:"title"`
	BodyHTML    string    `json:"body_html"`
	Vendor      string    `json:"vendor"`
	ProductType string    `json:"product_type"`
	Tags        []string  `json:"tags"`
	Variants    []Variant `json:"variants"`
	Options     []Option  `json:"options"`
	Image       *Image    `json:"image"`
}

// Variant holds one purchasable variant. Option1..Option3 are positional
// values matching the product's option names.
type Variant struct {
	Option1 string `json:"option1"`
	Option2 string `json:"option2"`
	Option3 string `json:"option3"`
	Price   string `json:"price"`
	Grams   int    `json:"grams"`
}

// OptionValue returns the positional option value (1-based). Empty string
// for positions beyond the third.
func (v Variant) OptionValue(pos int) string {
	switch pos {
	case 1:
		return v.Option1
	case 2:
		return v.Option2
	case 3:
		return v.Option3
	default:
		return ""
	}
}

// Option names one product option dimension, e.g. "Size".
type Option struct {
	Name string `json:"name"`
}

// Image is the primary product image.
type Image struct {
	Src string `json:"src"`
}

// FileSource points at an uploaded file to ingest.
type FileSource struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// LinkSource points at a web page to ingest.
type LinkSource struct {
	URL string `json:"url"`
}

// QAPair is a curated question/answer pair.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ChatSettings govern prompt construction for one request. Never persisted.
type ChatSettings struct {
	VoiceTone    string `json:"voiceTone"`
	UseEmoji     bool   `json:"useEmoji"`
	AnswerLength string `json:"answerLength"`
	Language     string `json:"language"`
	Shop         string `json:"shop"`
}

// Price is an extracted product price. When the price pattern does not match
// it marshals as the documented "Unknown Price" placeholder instead of a number.
type Price struct {
	Value float64
	Known bool
}

// KnownPrice builds a resolved price.
func KnownPrice(v float64) Price { return Price{Value: v, Known: true} }

// MarshalJSON emits the numeric value or the "Unknown Price" placeholder.
func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Known {
		return json.Marshal("Unknown Price")
	}
	return json.Marshal(p.Value)
}

// UnmarshalJSON accepts either a number or the placeholder string.
func (p *Price) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*p = Price{Value: v, Known: true}
		return nil
	}
	*p = Price{}
	return nil
}

// ExtractedProduct holds the structured fields recovered from a normalized
// product document. Extraction never fails: unmatched fields carry defaults.
type ExtractedProduct struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       Price   `json:"price"`
	Image       *string `json:"image"`
}

// IndexRecord is a product record in the durable vector index. Price stays a
// decimal string end to end; the index never interprets it.
type IndexRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	Price       string `json:"price"`
	Inventory   int    `json:"inventory"`
	Tags        string `json:"tags,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// IndexHit is a scored durable-index search result.
type IndexHit struct {
	Record IndexRecord `json:"record"`
	Score  float64     `json:"score"`
}
