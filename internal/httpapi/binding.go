package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"salestrack/backend/internal/domain"
)

// Payloads use pointers so a missing field can be told apart from a zero value.

type saleCreatePayload struct {
	ItemName     *string  `json:"item_name" validate:"required"`
	PurchaseCost *float64 `json:"purchase_cost" validate:"required"`
	RetailPrice  *float64 `json:"retail_price" validate:"required"`
	Quantity     *int     `json:"quantity" validate:"omitempty,min=1"`
	DateSold     *string  `json:"date_sold" validate:"omitempty,datetime=2006-01-02"`
}

func (p saleCreatePayload) toRequest() domain.SaleCreateRequest {
	req := domain.SaleCreateRequest{
		ItemName:     *p.ItemName,
		PurchaseCost: *p.PurchaseCost,
		RetailPrice:  *p.RetailPrice,
		Quantity:     1,
	}
	if p.Quantity != nil {
		req.Quantity = *p.Quantity
	}
	if p.DateSold != nil {
		req.DateSold = *p.DateSold
	}
	return req
}

type saleUpdatePayload struct {
	ItemName     *string  `json:"item_name"`
	PurchaseCost *float64 `json:"purchase_cost"`
	RetailPrice  *float64 `json:"retail_price"`
	Quantity     *int     `json:"quantity" validate:"omitempty,min=1"`
	DateSold     *string  `json:"date_sold" validate:"omitempty,datetime=2006-01-02"`
}

func (p saleUpdatePayload) toRequest() domain.SaleUpdateRequest {
	return domain.SaleUpdateRequest{
		ItemName:     p.ItemName,
		PurchaseCost: p.PurchaseCost,
		RetailPrice:  p.RetailPrice,
		Quantity:     p.Quantity,
		DateSold:     p.DateSold,
	}
}

type stockItemCreatePayload struct {
	ItemName        *string  `json:"item_name" validate:"required"`
	PurchaseCost    *float64 `json:"purchase_cost" validate:"required"`
	RetailPrice     *float64 `json:"retail_price" validate:"required"`
	QuantityInStock *int     `json:"quantity_in_stock" validate:"omitempty,min=0"`
	ReorderLevel    *int     `json:"reorder_level" validate:"omitempty,min=0"`
	Supplier        *string  `json:"supplier"`
	Category        *string  `json:"category"`
}

func (p stockItemCreatePayload) toRequest() domain.StockItemCreateRequest {
	req := domain.StockItemCreateRequest{
		ItemName:     *p.ItemName,
		PurchaseCost: *p.PurchaseCost,
		RetailPrice:  *p.RetailPrice,
		ReorderLevel: p.ReorderLevel,
	}
	if p.QuantityInStock != nil {
		req.QuantityInStock = *p.QuantityInStock
	}
	if p.Supplier != nil {
		req.Supplier = *p.Supplier
	}
	if p.Category != nil {
		req.Category = *p.Category
	}
	return req
}

type stockItemUpdatePayload struct {
	ItemName        *string  `json:"item_name"`
	PurchaseCost    *float64 `json:"purchase_cost"`
	RetailPrice     *float64 `json:"retail_price"`
	QuantityInStock *int     `json:"quantity_in_stock" validate:"omitempty,min=0"`
	ReorderLevel    *int     `json:"reorder_level" validate:"omitempty,min=0"`
	Supplier        *string  `json:"supplier"`
	Category        *string  `json:"category"`
}

func (p stockItemUpdatePayload) toRequest() domain.StockItemUpdateRequest {
	return domain.StockItemUpdateRequest{
		ItemName:        p.ItemName,
		PurchaseCost:    p.PurchaseCost,
		RetailPrice:     p.RetailPrice,
		QuantityInStock: p.QuantityInStock,
		ReorderLevel:    p.ReorderLevel,
		Supplier:        p.Supplier,
		Category:        p.Category,
	}
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bind decodes the request body into dest and validates it. It writes the
// error response itself and reports whether the handler should continue.
func (a *API) bind(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := decodeJSON(r, dest); err != nil {
		var maxBytesErr *http.MaxBytesError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &maxBytesErr):
			writeError(w, http.StatusRequestEntityTooLarge, errors.New("request body too large"))
		case errors.As(err, &typeErr):
			writeJSON(w, http.StatusUnprocessableEntity, validationResponse{
				Error:  "validation failed",
				Fields: map[string]string{typeErr.Field: fmt.Sprintf("must be %s", typeErr.Type)},
			})
		default:
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid payload: %w", err))
		}
		return false
	}

	if err := a.validate.Struct(dest); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			writeError(w, http.StatusBadRequest, err)
			return false
		}
		fields := make(map[string]string, len(fieldErrs))
		for _, fieldErr := range fieldErrs {
			fields[fieldErr.Field()] = describeFieldError(fieldErr)
		}
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse{
			Error:  "validation failed",
			Fields: fields,
		})
		return false
	}
	return true
}

func describeFieldError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "field required"
	case "min":
		return "must be at least " + fieldErr.Param()
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	default:
		return fieldErr.Error()
	}
}

func decodeJSON(r *http.Request, dest any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	return nil
}
