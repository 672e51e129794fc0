package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/mikiasgoitom/videoreact/internal/domain/contract"
	usecasecontract "github.com/mikiasgoitom/videoreact/internal/usecase/contract"
)

// MaxVideoIDLength is the longest accepted video id, in characters.
const MaxVideoIDLength = 100

// AppValidator implements the usecasecontract.IValidator interface.
type AppValidator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the custom rules registered.
func NewValidator() usecasecontract.IValidator {
	v := validator.New()
	registerRules(v)
	return &AppValidator{validate: v}
}

// ValidateVideoID checks that a raw video id is usable as a store key.
func (av *AppValidator) ValidateVideoID(videoID string) error {
	if err := av.validate.Var(videoID, "videoid"); err != nil {
		return fmt.Errorf("%w: must be 1-%d characters without '/'", contract.ErrInvalidVideoID, MaxVideoIDLength)
	}
	return nil
}

// RegisterCustomValidators registers custom validation functions with the Gin validator.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerRules(v)
	}
}

func registerRules(v *validator.Validate) {
	_ = v.RegisterValidation("videoid", videoIDFL, true)
}

// IsValidVideoID reports whether id is non-blank, short enough and free of path separators.
func IsValidVideoID(id string) bool {
	if strings.TrimSpace(id) == "" {
		return false
	}
	if utf8.RuneCountInString(id) > MaxVideoIDLength {
		return false
	}
	return !strings.ContainsRune(id, '/')
}

func videoIDFL(fl validator.FieldLevel) bool {
	return IsValidVideoID(fl.Field().String())
}
