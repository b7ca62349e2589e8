// Package validation checks inbound ticket payloads and reports every
// offending field at once.
package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/travel-support-desk/pkg/util/errorutil"
)

// CreateTicketInput is the creation schema.
type CreateTicketInput struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Reference   string `json:"reference" validate:"required"`
	Category    string `json:"category" validate:"required,oneof=Payment Cancellation 'Change Dates' Other"`
	Description string `json:"description" validate:"min=10"`

	// Rejected holds fields whose JSON value had the wrong type.
	Rejected []apperrors.FieldError `json:"-" validate:"-"`
}

// UpdateStatusInput is the status-update schema. Any other payload field is ignored.
type UpdateStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending resolved"`

	Rejected []apperrors.FieldError `json:"-" validate:"-"`
}

// messages maps json field name to the user-facing rejection reason.
var messages = map[string]string{
	"name":        "Name is required",
	"email":       "Invalid email address",
	"reference":   "Booking reference is required",
	"category":    "Invalid category",
	"description": "Description must be at least 10 characters",
	"status":      "Invalid status",
}

// Validator wraps go-playground/validator with JSON field naming.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// ValidateCreate checks a creation payload.
func (v *Validator) ValidateCreate(in CreateTicketInput) error {
	return v.check(in, in.Rejected)
}

// ValidateStatus checks a status-update payload.
func (v *Validator) ValidateStatus(in UpdateStatusInput) error {
	return v.check(in, in.Rejected)
}

// check merges rejected fields with the validator's findings, one entry per field.
func (v *Validator) check(in any, rejected []apperrors.FieldError) error {
	fields := append([]apperrors.FieldError{}, rejected...)
	seen := make(map[string]bool, len(rejected))
	for _, f := range rejected {
		seen[f.Field] = true
	}

	if err := v.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return apperrors.NewInternalError(err)
		}
		for _, fe := range verrs {
			if seen[fe.Field()] {
				continue
			}
			seen[fe.Field()] = true
			fields = append(fields, apperrors.FieldError{Field: fe.Field(), Message: messageFor(fe.Field())})
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return apperrors.NewValidationError(fields)
}

func messageFor(field string) string {
	if msg, ok := messages[field]; ok {
		return msg
	}
	return field + " is invalid"
}

// DecodeCreate reads a JSON creation payload. A value of the wrong type is
// recorded in Rejected under its own field; only a body that is not a JSON
// object fails outright.
func DecodeCreate(body []byte) (CreateTicketInput, error) {
	var in CreateTicketInput
	rejected, err := decodeFields(body, []fieldTarget{
		{"name", &in.Name},
		{"email", &in.Email},
		{"reference", &in.Reference},
		{"category", &in.Category},
		{"description", &in.Description},
	})
	in.Rejected = rejected
	return in, err
}

// DecodeStatus reads a JSON status-update payload the same way.
func DecodeStatus(body []byte) (UpdateStatusInput, error) {
	var in UpdateStatusInput
	rejected, err := decodeFields(body, []fieldTarget{{"status", &in.Status}})
	in.Rejected = rejected
	return in, err
}

type fieldTarget struct {
	name string
	dst  *string
}

func decodeFields(body []byte, targets []fieldTarget) ([]apperrors.FieldError, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, MalformedBody()
	}
	var rejected []apperrors.FieldError
	for _, t := range targets {
		value, ok := raw[t.name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, t.dst); err != nil {
			var typeErr *json.UnmarshalTypeError
			if !errors.As(err, &typeErr) {
				return nil, MalformedBody()
			}
			rejected = append(rejected, apperrors.FieldError{Field: t.name, Message: messageFor(t.name)})
		}
	}
	return rejected, nil
}

// MalformedBody reports a payload that is not a JSON object.
func MalformedBody() error {
	return apperrors.NewValidationError([]apperrors.FieldError{{Field: "body", Message: "Invalid request body"}})
}
