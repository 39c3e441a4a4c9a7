package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/markamcfadden/be-nc-news-project/internal/errs"
)

// Validator decodes and checks JSON write payloads.
//
// Checks run in a fixed order and the first failure wins:
//
//  1. the body must be a JSON object
//  2. no fields outside the payload struct
//  3. every required field present and not null
//  4. every field of the expected JSON type
//  5. struct tag rules
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return jsonName(fld)
	})
	return &Validator{validate: v}
}

// Bind decodes data into dst, which must be a pointer to a struct with json
// and validate tags. Failures are returned as *errs.Error values.
func (v *Validator) Bind(data []byte, dst interface{}) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		data = []byte("{}")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return errs.ErrBadRequest
	}

	fields := payloadFields(dst)

	for name := range raw {
		if _, ok := fields[name]; !ok {
			return errs.ErrUnexpectedFields
		}
	}

	for name, required := range fields {
		if !required {
			continue
		}
		value, ok := raw[name]
		if !ok || string(bytes.TrimSpace(value)) == "null" {
			return errs.ErrMissingFields
		}
	}

	if err := json.Unmarshal(data, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return errs.ErrInvalidDataType
		}
		return errs.ErrBadRequest
	}

	if err := v.validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return errs.ErrBadRequest
		}
		for _, fe := range fieldErrs {
			if fe.Tag() == "required" {
				return errs.ErrMissingFields
			}
		}
		return errs.ErrInvalidDataType
	}

	return nil
}

// payloadFields lists the JSON field names of dst's struct type, marking
// those tagged as required
func payloadFields(dst interface{}) map[string]bool {
	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	fields := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		fld := t.Field(i)
		name := jsonName(fld)
		if name == "" {
			continue
		}
		fields[name] = hasRule(fld.Tag.Get("validate"), "required")
	}
	return fields
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || !fld.IsExported() {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func hasRule(tag, rule string) bool {
	for _, r := range strings.Split(tag, ",") {
		if r == rule {
			return true
		}
	}
	return false
}
