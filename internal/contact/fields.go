package contact

import (
	"maps"

	"github.com/templui/agencysite/internal/validation"
)

// Field names a contact form input.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// AllFields lists the form inputs in display order.
var AllFields = []Field{FieldName, FieldEmail, FieldMessage}

// ParseField returns the field with the given form name.
func ParseField(s string) (Field, bool) {
	for _, f := range AllFields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// Validation messages. One fixed message per rule.
const (
	MsgRequired       = "required"
	MsgTooShort       = "too short"
	MsgTooLong        = "too long"
	MsgInvalidAddress = "invalid address"
)

// Fields holds the three values of a contact submission.
// Lengths are counted in characters, not bytes.
type Fields struct {
	Name    string `form:"name" validate:"required,min=2,max=50"`
	Email   string `form:"email" validate:"required,email"`
	Message string `form:"message" validate:"required,min=10,max=1000"`
}

func (f Fields) Get(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldMessage:
		return f.Message
	}
	return ""
}

func (f *Fields) Set(field Field, value string) {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldMessage:
		f.Message = value
	}
}

// Errors maps a field to its validation message. Empty means valid.
type Errors map[Field]string

func (e Errors) clone() Errors {
	if e == nil {
		return Errors{}
	}
	return maps.Clone(e)
}

var messages = map[string]string{
	"name.required":    MsgRequired,
	"name.min":         MsgTooShort,
	"name.max":         MsgTooLong,
	"email.required":   MsgRequired,
	"email.email":      MsgInvalidAddress,
	"message.required": MsgRequired,
	"message.min":      MsgTooShort,
	"message.max":      MsgTooLong,
}

// Validate checks every field independently and reports the first failing
// rule of each. It has no side effects.
func Validate(f Fields) Errors {
	errs := Errors{}
	for name, msg := range validation.Validate(f, messages) {
		errs[Field(name)] = msg
	}
	return errs
}

// ValidateField returns the message for a single field, or "" when it passes.
func ValidateField(f Fields, field Field) string {
	return Validate(f)[field]
}
