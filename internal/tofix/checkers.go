package tofix

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/woozymasta/tofixlint/internal/geo"
)

// Checker decides whether a single property value conforms to a type.
type Checker func(geo.Value) bool

// valueRule binds a type prefix to its checker.
type valueRule struct {
	check  Checker
	prefix string
}

// valueRules run in this order, which fixes the order of value errors.
var valueRules = []valueRule{
	{prefix: "string", check: IsAny},
	{prefix: "number", check: IsNumber},
	{prefix: "date", check: IsDate},
	{prefix: "link", check: IsLink},
	{prefix: "audio", check: IsMedia},
	{prefix: "image", check: IsMedia},
}

// ISO-8601 calendar, week and ordinal dates with optional time and zone.
var iso8601Regex = regexp.MustCompile(`^[+-]?\d{4}(` +
	`-(0[1-9]|1[0-2])(-(0[1-9]|[12]\d|3[01]))?` + // 2015-01, 2015-01-17
	`|(0[1-9]|1[0-2])(0[1-9]|[12]\d|3[01])` + // 20150117
	`|-?W([0-4]\d|5[0-3])(-?[1-7])?` + // 2015-W03-6
	`|-?(00[1-9]|0[1-9]\d|[12]\d{2}|3([0-5]\d|6[1-6]))` + // 2015-017
	`)?` +
	`([T\s](([01]\d|2[0-3])(:?[0-5]\d)?(:?[0-5]\d)?|24(:?00)?)` + // time
	`([.,]\d+)?` + // fraction
	`([zZ]|[+-]([01]\d|2[0-3])(:?[0-5]\d)?)?)?$`) // zone

// data:[<mediatype>][;base64],<data>
var dataURIRegex = regexp.MustCompile(`(?i)^\s*data:` +
	`([a-z]+/[a-z0-9\-+.]+(;[a-z\-]+=[a-z0-9\-]+)?)?` +
	`(;base64)?,` +
	`[a-z0-9!$&',()*+;=\-._~:@/?%\s]*\s*$`)

var webSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ftp":   true,
}

// formats is built once and only read afterwards, so it is safe to share.
var formats = newFormats()

func newFormats() *validator.Validate {
	v := validator.New()

	mustRegister(v, "iso8601", func(fl validator.FieldLevel) bool {
		return iso8601Regex.MatchString(fl.Field().String())
	})
	mustRegister(v, "datauri_syntax", func(fl validator.FieldLevel) bool {
		return dataURIRegex.MatchString(fl.Field().String())
	})
	mustRegister(v, "weburl", func(fl validator.FieldLevel) bool {
		return isWebURL(v, fl.Field().String())
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// isWebURL accepts http, https and ftp URLs; the scheme may be omitted.
func isWebURL(v *validator.Validate, s string) bool {
	if s == "" || len(s) >= 2083 || strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	if strings.HasPrefix(strings.ToLower(s), "mailto:") {
		return false
	}

	raw := s
	if !strings.Contains(s, "://") {
		raw = "http://" + s
	}

	u, err := url.Parse(raw)
	if err != nil || !webSchemes[strings.ToLower(u.Scheme)] {
		return false
	}

	host := u.Hostname()
	if host == "localhost" {
		return true
	}

	return v.Var(host, "fqdn|ip") == nil
}

// IsAny accepts every value.
func IsAny(geo.Value) bool { return true }

// IsNumber accepts numeric values.
func IsNumber(v geo.Value) bool {
	_, ok := v.Float()
	return ok
}

// IsBoolean accepts boolean values.
func IsBoolean(v geo.Value) bool {
	_, ok := v.Bool()
	return ok
}

// IsDate accepts strings in ISO-8601 form.
func IsDate(v geo.Value) bool {
	return checkString(v, "iso8601")
}

// IsLink accepts strings holding a web URL.
func IsLink(v geo.Value) bool {
	return checkString(v, "weburl")
}

// IsMedia accepts strings holding a web URL or a data URI.
func IsMedia(v geo.Value) bool {
	return checkString(v, "weburl|datauri_syntax")
}

func checkString(v geo.Value, tag string) bool {
	s, ok := v.Str()
	if !ok {
		return false
	}

	return formats.Var(s, tag) == nil
}
