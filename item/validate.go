package item

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	fieldName        = "name"
	fieldDescription = "description"
	fieldPrice       = "price"
)

const (
	MsgNameRequired = `field "name" is required and must be a non-empty string`
	MsgName         = `field "name" must be a non-empty string`
	MsgDescription  = `field "description" must be a string`
	MsgPrice        = `field "price" must be a non-negative number`
)

// ErrMalformedBody is returned by ParseFields when the body is not a JSON object.
var ErrMalformedBody = errors.New("item: body is not a valid JSON object")

// ValidationError carries the list of field violations of a payload.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "item: invalid data: " + strings.Join(e.Details, "; ")
}

// Fields is a decoded request body, keyed by top-level JSON field.
type Fields map[string]json.RawMessage

// CreateInput is a create payload after type checking.
type CreateInput struct {
	Name        *string  `json:"name" validate:"required,notblank"`
	Description *string  `json:"description" validate:"omitnil"`
	Price       *float64 `json:"price" validate:"omitnil,gte=0"`
}

// NewItem builds the item to persist, applying trims and defaults.
func (in CreateInput) NewItem(id string, now time.Time) Item {
	ts := FormatTime(now)
	it := Item{
		ID:        id,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if in.Name != nil {
		it.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		it.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		it.Price = *in.Price
	}
	return it
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	// notblank is a static registration and cannot fail.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// ParseFields decodes a request body into its top-level fields.
func ParseFields(body []byte) (Fields, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return nil, ErrMalformedBody
	}
	var f Fields
	if err := json.Unmarshal(body, &f); err != nil {
		return nil, ErrMalformedBody
	}
	return f, nil
}

// ValidateCreate type-checks and validates a create payload. It returns the
// typed input and the list of violations, empty on success.
func ValidateCreate(f Fields) (CreateInput, []string) {
	var in CreateInput
	bad := map[string]bool{}

	if !decodeField(f, fieldName, &in.Name, false) {
		bad[fieldName] = true
	}
	// A null description is treated as absent on create.
	if !decodeField(f, fieldDescription, &in.Description, true) {
		bad[fieldDescription] = true
	}
	if !decodeField(f, fieldPrice, &in.Price, false) {
		bad[fieldPrice] = true
	}
	structViolations(in, bad)

	return in, violationList(bad, MsgNameRequired)
}

// ValidateUpdate type-checks and validates an update payload. Every field is
// optional; a payload with no recognized field is accepted. Text fields of
// a valid patch are trimmed.
func ValidateUpdate(f Fields) (Patch, []string) {
	var p Patch
	bad := map[string]bool{}

	if !decodeField(f, fieldName, &p.Name, false) {
		bad[fieldName] = true
	}
	if !decodeField(f, fieldDescription, &p.Description, false) {
		bad[fieldDescription] = true
	}
	if !decodeField(f, fieldPrice, &p.Price, false) {
		bad[fieldPrice] = true
	}
	structViolations(p, bad)

	details := violationList(bad, MsgName)
	if len(details) > 0 {
		return p, details
	}

	if p.Name != nil {
		p.Name = trimmed(*p.Name)
	}
	if p.Description != nil {
		p.Description = trimmed(*p.Description)
	}
	return p, nil
}

// decodeField decodes f[key] into dst. It reports false when the field is
// present with the wrong JSON type.
func decodeField[T any](f Fields, key string, dst **T, nullIsAbsent bool) bool {
	raw, ok := f[key]
	if !ok {
		return true
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nullIsAbsent
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	*dst = &v
	return true
}

func structViolations(s any, bad map[string]bool) {
	err := validate.Struct(s)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			bad[fe.Field()] = true
		}
	}
}

func violationList(bad map[string]bool, nameMsg string) []string {
	var details []string
	if bad[fieldName] {
		details = append(details, nameMsg)
	}
	if bad[fieldDescription] {
		details = append(details, MsgDescription)
	}
	if bad[fieldPrice] {
		details = append(details, MsgPrice)
	}
	return details
}

func trimmed(s string) *string {
	s = strings.TrimSpace(s)
	return &s
}
