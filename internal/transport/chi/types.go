package chi

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/shoplight/shoplight/internal/domain"
)

// decimalPriceRe accepts non-negative decimal strings with at most two
// fraction digits, matching the storefront export price format.
var decimalPriceRe = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// newValidator builds the request validator. Field names in validation
// messages come from the json tags, not the Go field names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("decimal_price", func(fl validator.FieldLevel) bool {
		return decimalPriceRe.MatchString(fl.Field().String())
	})
	return v
}

// answerRequest is the chat surface request body.
type answerRequest struct {
	Products []domain.Product    `json:"products"`
	Files    []domain.FileSource `json:"files"`
	Links    []domain.LinkSource `json:"links"`
	QAData   []domain.QAPair     `json:"qaData"`
	Settings domain.ChatSettings `json:"settings"`
	Question string              `json:"question" validate:"required"`
}

// answerResponse carries the generated answer and the matched products.
type answerResponse struct {
	Response string                    `json:"response"`
	Products []domain.ExtractedProduct `json:"products"`
}

type insertProduct struct {
	ID          string `json:"id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       string `json:"price" validate:"required,decimal_price"`
	Inventory   int    `json:"inventory" validate:"gte=0"`
	Tags        string `json:"tags"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
}

type insertRequest struct {
	Platform string          `json:"platform" validate:"required,oneof=shopify woocommerce custom"`
	Vendor   string          `json:"vendor" validate:"required"`
	Products []insertProduct `json:"products" validate:"required,min=1,dive"`
}

type getDataRequest struct {
	Platform string `json:"platform" validate:"required,oneof=shopify woocommerce custom"`
	Vendor   string `json:"vendor" validate:"required"`
	Query    string `json:"query" validate:"required"`
}

type getDataResponse struct {
	Results []domain.IndexHit `json:"results"`
}

// updateProduct is a partial record. Absent fields stay empty in the
// stored record; the index does not merge with the previous copy.
type updateProduct struct {
	ID          string `json:"id" validate:"required"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       string `json:"price" validate:"omitempty,decimal_price"`
	Inventory   int    `json:"inventory" validate:"gte=0"`
	Tags        string `json:"tags"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
}

type updateRequest struct {
	Platform string        `json:"platform" validate:"required,oneof=shopify woocommerce custom"`
	Vendor   string        `json:"vendor" validate:"required"`
	Product  updateProduct `json:"product"`
}

type deleteRequest struct {
	Platform string `json:"platform" validate:"required,oneof=shopify woocommerce custom"`
	Vendor   string `json:"vendor" validate:"required"`
	ID       string `json:"id" validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// pipelineErrorResponse is the answer pipeline failure body.
type pipelineErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// validationErrorResponse carries field-level validation messages.
type validationErrorResponse struct {
	Error []string `json:"error"`
}

func (p insertProduct) record() domain.IndexRecord {
	return domain.IndexRecord{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Inventory:   p.Inventory,
		Tags:        p.Tags,
		ImageURL:    p.ImageURL,
	}
}

func (p updateProduct) record() domain.IndexRecord {
	return domain.IndexRecord{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Inventory:   p.Inventory,
		Tags:        p.Tags,
		ImageURL:    p.ImageURL,
	}
}

// validationMessages flattens validator errors into per-field messages.
func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return msgs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("The %s field must be one of: %s",
			fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "decimal_price":
		return fmt.Sprintf("The %s field must be a decimal string with at most two fraction digits", fe.Field())
	case "gte", "min":
		return fmt.Sprintf("The %s field must be at least %s", fe.Field(), fe.Param())
	case "url":
		return fmt.Sprintf("The %s field must be a valid URL", fe.Field())
	default:
		return fmt.Sprintf("The %s field is invalid", fe.Field())
	}
}
