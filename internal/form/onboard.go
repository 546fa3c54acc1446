// Package form validates the shop-onboarding payload before it is submitted
// upstream. Messages mirror the ones the form renders next to each input, so
// locally caught problems and upstream rejections look identical to the user.
package form

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"invoicepro/internal/models"
)

var (
	phoneRe = regexp.MustCompile(`^\d{10}$`)
	pinRe   = regexp.MustCompile(`^\d{6}$`)
)

var gstTypes = []any{"Regular", "Composition", "Unregistered", "Consumer", "Other"}

// ValidateOnboard returns a field→message map, or nil when the payload is
// valid. Validation does not abort on the first problem; every offending
// field gets its message.
func ValidateOnboard(req models.OnboardRequest) map[string]string {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required.Error("Shop Name is required")),
		validation.Field(&req.City, validation.Required.Error("City is required")),
		validation.Field(&req.State, validation.Required.Error("State is required")),
		validation.Field(&req.Category, validation.Required.Error("Category is required")),
		validation.Field(&req.ContactName, validation.Required.Error("Contact Name is required")),
		validation.Field(&req.ContactPhone,
			validation.Required.Error("At least one contact phone is required"),
			validation.Each(validation.Match(phoneRe).Error("Enter a valid 10-digit number")),
		),
		validation.Field(&req.ContactEmail, is.Email.Error("Enter a valid email")),
		validation.Field(&req.Address, validation.Required.Error("Address is required")),
		validation.Field(&req.PinCode,
			validation.Required.Error("Pin Code is required"),
			validation.Match(pinRe).Error("Enter a valid 6-digit pin code"),
		),
		validation.Field(&req.Phone1, validation.Match(phoneRe).Error("Enter a valid 10-digit number")),
		validation.Field(&req.GstNumber, validation.Required.Error("GST Number is required")),
		validation.Field(&req.GstType,
			validation.Required.Error("GST Type is required"),
			validation.In(gstTypes...).Error("Enter a valid GST type"),
		),
	)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	flatten(err, "", fields)
	if len(fields) == 0 {
		fields["form"] = err.Error()
	}
	return fields
}

// flatten reduces ozzo's nested error maps (slice fields nest index→error) to
// one message per top-level field.
func flatten(err error, key string, out map[string]string) {
	errs, ok := err.(validation.Errors)
	if !ok {
		if key != "" {
			if _, exists := out[key]; !exists {
				out[key] = err.Error()
			}
		}
		return
	}
	for k, v := range errs {
		if key == "" {
			flatten(v, k, out)
		} else {
			// Nested under a slice field: attribute to the parent field.
			flatten(v, key, out)
		}
	}
}
