package blocks

import (
	"context"

	"github.com/a-h/templ"
	"github.com/templui/agencysite/internal/contact"
	"github.com/templui/agencysite/internal/ctxkeys"
	"github.com/templui/agencysite/internal/utils"
)

const ContactFormID = "contact-form"

// Field events posted to /contact/fields/{field}
const (
	EventBlur  = "blur"
	EventInput = "input"
)

// FormState is what the browser sees of a contact.Form: values, the errors
// of touched fields, and the touched set posted back as hidden inputs.
type FormState struct {
	Values  contact.Fields
	Errors  contact.Errors
	Touched []contact.Field
}

func NewFormState(f *contact.Form) FormState {
	return FormState{
		Values:  f.Values(),
		Errors:  f.VisibleErrors(),
		Touched: f.TouchedFields(),
	}
}

func (s FormState) touched(field contact.Field) bool {
	for _, t := range s.Touched {
		if t == field {
			return true
		}
	}
	return false
}

type fieldInput struct {
	label       string
	placeholder string
	inputType   string
	multiline   bool
}

var fieldInputs = map[contact.Field]fieldInput{
	contact.FieldName:    {label: "Full Name", placeholder: "Your name", inputType: "text"},
	contact.FieldEmail:   {label: "Email Address", placeholder: "your.email@example.com", inputType: "email"},
	contact.FieldMessage: {label: "Your Message", placeholder: "Tell us about your project, goals, or questions...", multiline: true},
}

const (
	inputClass      = "w-full rounded-lg border border-gray-300 bg-white px-4 py-3 outline-none transition focus:border-primary focus:ring-2 focus:ring-primary/30 dark:border-gray-600 dark:bg-gray-900"
	inputErrorClass = "border-red-500 focus:border-red-500 focus:ring-red-500/30"
)

func inputClasses(invalid bool) string {
	return utils.TwMerge(inputClass, utils.If(invalid, inputErrorClass))
}

func fieldGroupID(field contact.Field) string {
	return "field-" + string(field)
}

func errorID(field contact.Field) string {
	return string(field) + "-error"
}

func fieldURL(field contact.Field, event string) string {
	url := "/contact/fields/" + string(field)
	if event == EventInput {
		url += "?event=" + EventInput
	}
	return url
}

// inputAttrs are shared by the text inputs and the textarea. Blur re-renders
// the whole field group.
func inputAttrs(field contact.Field, invalid bool) templ.Attributes {
	attrs := templ.Attributes{
		"id":          string(field),
		"name":        string(field),
		"placeholder": fieldInputs[field].placeholder,
		"hx-post":     fieldURL(field, EventBlur),
		"hx-trigger":  "blur",
		"hx-target":   "#" + fieldGroupID(field),
		"hx-swap":     "outerHTML",
		"hx-include":  "closest form",
	}
	if invalid {
		attrs["aria-invalid"] = "true"
		attrs["aria-describedby"] = errorID(field)
	}
	return attrs
}

// liveTrigger revalidates a touched field while the user types
func liveTrigger(field contact.Field) string {
	return "input changed delay:300ms from:#" + string(field)
}

type contactInfoItem struct {
	icon    string
	title   string
	content string
	href    string
}

func contactInfo(ctx context.Context) []contactInfoItem {
	cfg := ctxkeys.Config(ctx)
	if cfg == nil {
		return nil
	}
	items := []contactInfoItem{
		{icon: "📞", title: "Phone", content: cfg.ContactPhone, href: "tel:" + cfg.ContactPhone},
		{icon: "✉️", title: "Email", content: cfg.ContactEmail, href: "mailto:" + cfg.ContactEmail},
		{icon: "📍", title: "Office", content: cfg.ContactOffice},
	}
	shown := items[:0]
	for _, item := range items {
		if item.content != "" {
			shown = append(shown, item)
		}
	}
	return shown
}
