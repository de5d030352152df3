package validator

import (
	"encoding/json"
	"fmt"
	"hotelbooker/shared/base64"
	"hotelbooker/shared/constant"
	"hotelbooker/shared/failure"
	"io"
	"slices"
	"strings"

	val "github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const maxPhotoMB = 5

var (
	validate *val.Validate

	photoTypes = []string{"image/jpeg", "image/png", "image/webp"}
)

// validPhoto accepts a hosted http(s) image or a base64 data URI of an
// allowed image type that fits the upload cap.
func validPhoto(field val.FieldLevel) bool {
	photo := field.Field().String()

	contentType := base64.GetContentType(photo)
	if contentType == constant.Empty {
		return strings.HasPrefix(photo, "https://") || strings.HasPrefix(photo, "http://")
	}

	return slices.Contains(photoTypes, contentType) && len(photo) <= maxPhotoMB<<20
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}

	if err := validate.RegisterValidation("photo", validPhoto); err != nil {
		panic(err)
	}
}

// Validate decodes a JSON request body into data and checks its validate
// tags. Both decode and rule failures come back as a 400 failure carrying the
// first broken rule.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
