package validation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	idPattern     = regexp.MustCompile(`^(BIKE|\d{4})-\d{4}$`)
	namePattern   = regexp.MustCompile(`^[\p{L} .'\-]+$`)
	phonePattern  = regexp.MustCompile(`^[0-9 +\-()]+$`)
	freeTextChars = regexp.MustCompile(`^[\p{L}\p{N} .,#'/&()\-]+$`)
)

var imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if l := f.Tag.Get("label"); l != "" {
			return l
		}
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "idfmt", matches(idPattern))
	mustRegister(v, "personname", matches(namePattern))
	mustRegister(v, "phone", matches(phonePattern))
	mustRegister(v, "freetext", matches(freeTextChars))
	mustRegister(v, "imagefile", isImageFile)
	return &Validator{v: v}
}

// Validate satisfies echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	return v.v.Struct(i)
}

// Check reports whether i passes every rule. On failure the message names
// the first failing field only.
func (v *Validator) Check(i any) (bool, string) {
	err := v.v.Struct(i)
	if err == nil {
		return true, ""
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		return false, Message(ves[0])
	}
	return false, err.Error()
}

// Message renders a single field error as "<label>: <reason>".
func Message(fe validator.FieldError) string {
	var reason string
	switch fe.Tag() {
	case "required":
		reason = "is required"
	case "max":
		reason = fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		reason = fmt.Sprintf("must be greater than %s", fe.Param())
	case "ne":
		reason = fmt.Sprintf("must not be %s", fe.Param())
	case "oneof":
		reason = "must be one of " + strings.ReplaceAll(fe.Param(), "'", "")
	case "idfmt":
		reason = "must look like NNNN-NNNN or BIKE-NNNN"
	case "personname":
		reason = "may only contain letters, spaces, periods, apostrophes and hyphens"
	case "phone":
		reason = "may only contain digits, spaces, +, - and parentheses"
	case "freetext":
		reason = "contains characters that are not allowed"
	case "imagefile":
		reason = "must be an existing png, jpg or jpeg file"
	default:
		reason = "failed " + fe.Tag()
	}
	return fe.Field() + ": " + reason
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// isImageFile is the only rule that touches the filesystem.
func isImageFile(fl validator.FieldLevel) bool {
	p := fl.Field().String()
	if !imageExts[strings.ToLower(filepath.Ext(p))] {
		return false
	}
	st, err := os.Stat(p)
	return err == nil && st.Mode().IsRegular()
}
