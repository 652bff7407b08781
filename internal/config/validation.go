package config

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"git.home.luguber.info/inful/how2use/internal/foundation/errors"
	"git.home.luguber.info/inful/how2use/internal/output"
)

var extensionPattern = regexp.MustCompile(`^\.[A-Za-z0-9]+$`)

// Validate checks the configuration and returns a validation error naming the
// offending section.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(&c.Output,
		validation.Field(&c.Output.Directory, validation.Required),
		validation.Field(&c.Output.Extension, validation.Required,
			validation.Match(extensionPattern).Error("must be a dot followed by letters or digits")),
		validation.Field(&c.Output.Encoding, validation.By(validEncoding)),
	)
	if err != nil {
		return invalid("output", err)
	}
	if err := validation.ValidateStruct(&c.Materials,
		validation.Field(&c.Materials.Directory, validation.Required),
	); err != nil {
		return invalid("materials", err)
	}
	if err := validation.ValidateStruct(&c.Preview,
		validation.Field(&c.Preview.Addr, validation.Required),
	); err != nil {
		return invalid("preview", err)
	}
	if err := validation.ValidateStruct(&c.Watch,
		validation.Field(&c.Watch.Debounce, validation.By(positiveDuration)),
	); err != nil {
		return invalid("watch", err)
	}
	return nil
}

func validEncoding(value any) error {
	name, _ := value.(string)
	if _, err := output.ParseEncoding(name); err != nil {
		return validation.NewError("validation_encoding_invalid", "must be one of utf-8, utf-8-bom, utf-16le, utf-16be")
	}
	return nil
}

func positiveDuration(value any) error {
	if d, _ := value.(time.Duration); d <= 0 {
		return validation.NewError("validation_duration_positive", "must be a positive duration")
	}
	return nil
}

func invalid(section string, err error) error {
	return errors.WrapError(err, errors.CategoryValidation, "invalid configuration").
		WithContext("section", section).
		Build()
}
