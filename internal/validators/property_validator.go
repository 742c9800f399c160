package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"spacia-portal/internal/models"

	"github.com/go-playground/validator/v10"
)

// PropertyRules carries the context a draft is validated against.
type PropertyRules struct {
	// Master restricts enum fields when it holds any options.
	Master models.MasterData
	// IsNew requires availableFrom to be today or later.
	IsNew bool
	// Today defaults to the current date.
	Today time.Time
}

type PropertyValidator interface {
	Validate(draft models.PropertyDraft, rules PropertyRules) map[string]string
}

type propertyValidator struct {
	validate *validator.Validate
}

func NewPropertyValidator() PropertyValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &propertyValidator{validate: validate}
}

// Validate returns field-scoped messages; an empty map means the draft can be submitted.
func (v *propertyValidator) Validate(draft models.PropertyDraft, rules PropertyRules) map[string]string {
	fields := map[string]string{}

	if err := v.validate.Struct(draft); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			fields["draft"] = err.Error()
			return fields
		}
		for _, fe := range validationErrors {
			fields[fe.Field()] = fieldMessage(fe)
		}
	}

	for name, value := range map[string]string{
		"name":          draft.Name,
		"address":       draft.Address,
		"eircode":       draft.Eircode,
		"description":   draft.Description,
		"postalCode":    draft.PostalCode,
		"energyRatings": draft.EnergyRatings,
		"propertyType":  draft.PropertyType,
	} {
		if _, ok := fields[name]; !ok && strings.TrimSpace(value) == "" {
			fields[name] = "is required"
		}
	}

	if rules.IsNew {
		if _, ok := fields["availableFrom"]; !ok {
			today := rules.Today
			if today.IsZero() {
				today = time.Now()
			}
			available, _ := time.Parse(models.DateLayout, draft.AvailableFrom)
			if available.Format(models.DateLayout) < today.Format(models.DateLayout) {
				fields["availableFrom"] = "must be today or later"
			}
		}
	}

	if !rules.Master.Empty() {
		checkOption(fields, "propertyType", draft.PropertyType, rules.Master.PropertyType)
		checkOption(fields, "energyRatings", draft.EnergyRatings, rules.Master.EnergyRatings)
		checkOption(fields, "postalCode", draft.PostalCode, rules.Master.Locations)
		for _, amenity := range draft.Amenities {
			if !rules.Master.HasAmenity(amenity) {
				fields["amenities"] = fmt.Sprintf("unknown amenity %q", amenity)
				break
			}
		}
	}

	return fields
}

// checkOption flags value when it is set but absent from a non-empty option list.
func checkOption(fields map[string]string, name, value string, options []string) {
	if _, ok := fields[name]; ok || value == "" || len(options) == 0 {
		return
	}
	for _, option := range options {
		if option == value {
			return
		}
	}
	fields[name] = fmt.Sprintf("%q is not a valid option", value)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	default:
		return "is invalid"
	}
}
