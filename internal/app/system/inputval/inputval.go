// Package inputval validates decoded request bodies with struct tags.
//
//	type signupInput struct {
//		Email    string `json:"email" validate:"required,emailaddr" label:"Email"`
//		Password string `json:"password" validate:"required,min=6" label:"Password"`
//	}
//	if res := inputval.Validate(in); res.HasErrors() { ... }
//
// Messages use the field's label tag and read as full sentences. Custom rules:
// emailaddr, httpurl, objectid, hhmm, startdate, channel,
// reporttype, reportstatus, timezone.
package inputval

import (
	"errors"
	"net/mail"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/dalemusser/learnrust/internal/app/system/timezones"
	"github.com/dalemusser/learnrust/internal/domain/models"
	"github.com/dalemusser/learnrust/internal/domain/schedule"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New()

	english := en.New()
	translator, _ = ut.New(english, english).GetTranslator("en")
	_ = entranslations.RegisterDefaultTranslations(validate, translator)

	// Report fields by their JSON name so the "fields" map in error
	// responses lines up with the request body.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	for tag, fn := range map[string]func(string) bool{
		"emailaddr":    IsValidEmail,
		"httpurl":      IsValidHTTPURL,
		"objectid":     IsValidObjectID,
		"hhmm":         IsValidHHMM,
		"startdate":    IsValidStartDate,
		"channel":      models.IsValidChannel,
		"reporttype":   models.IsValidReportType,
		"reportstatus": models.IsValidReportStatus,
		"timezone":     timezones.Valid,
	} {
		_ = validate.RegisterValidation(tag, stringRule(fn))
	}
}

func stringRule(fn func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		return ok && fn(s)
	}
}

// FieldError is one failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result collects the failures of one Validate call.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first message, or "".
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Fields maps each failing field to its first message.
func (r *Result) Fields() map[string]string {
	out := make(map[string]string, len(r.Errors))
	for _, e := range r.Errors {
		if _, ok := out[e.Field]; !ok {
			out[e.Field] = e.Message
		}
	}
	return out
}

// Validate runs the validate tags on v, which must be a struct or pointer to
// one.
func Validate(v any) *Result {
	res := &Result{}
	err := validate.Struct(v)
	if err == nil {
		return res
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		res.Errors = append(res.Errors, FieldError{Message: err.Error()})
		return res
	}

	typ := reflect.TypeOf(v)
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	for _, fe := range verrs {
		res.Errors = append(res.Errors, FieldError{
			Field:   fe.Field(),
			Message: message(fe, label(typ, fe)),
		})
	}
	return res
}

func label(typ reflect.Type, fe validator.FieldError) string {
	if f, ok := typ.FieldByName(fe.StructField()); ok {
		if l := f.Tag.Get("label"); l != "" {
			return l
		}
	}
	return fe.StructField()
}

func message(fe validator.FieldError, name string) string {
	switch fe.Tag() {
	case "required":
		return name + " is required."
	case "max":
		return name + " must be at most " + fe.Param() + " characters."
	case "min":
		return name + " must be at least " + fe.Param() + " characters."
	case "email", "emailaddr":
		return "A valid email address is required."
	case "httpurl":
		return name + " must be an http or https URL."
	case "objectid":
		return name + " is not a valid id."
	case "hhmm":
		return name + " must be a time in HH:MM form."
	case "startdate":
		return name + " must be a date in YYYY-MM-DD form."
	case "timezone":
		return name + " must be an IANA time zone such as Europe/Paris."
	case "channel", "reporttype", "reportstatus", "oneof":
		return name + " is not an allowed value."
	}
	return fe.Translate(translator)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Rules                                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// IsValidEmail accepts a bare addr-spec. Display names, whitespace, and
// leading, trailing or doubled dots are rejected.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t<>") {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}
	local, domain, ok := strings.Cut(s, "@")
	if !ok {
		return false
	}
	return dotsOK(local) && dotsOK(domain)
}

func dotsOK(part string) bool {
	return part != "" &&
		!strings.HasPrefix(part, ".") &&
		!strings.HasSuffix(part, ".") &&
		!strings.Contains(part, "..")
}

// IsValidHTTPURL accepts absolute http and https URLs.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsValidObjectID accepts a 24-character hex Mongo id.
func IsValidObjectID(s string) bool {
	_, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	return err == nil
}

// IsValidHHMM accepts a 24-hour "15:04" time.
func IsValidHHMM(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// IsValidStartDate accepts a YYYY-MM-DD calendar date.
func IsValidStartDate(s string) bool {
	_, err := schedule.ParseStartDate(s)
	return err == nil
}
