package blocks

import (
	"context"
	"sync"

	"github.com/a-h/templ"
	"github.com/templui/agencysite/internal/contact"
	"github.com/templui/agencysite/internal/ui/components/toast"
)

// Toasts collects notices raised while handling one request and renders them
// as an out-of-band append to the toast container.
type Toasts struct {
	mu      sync.Mutex
	notices []contact.Notice
}

func (t *Toasts) Notify(_ context.Context, n contact.Notice) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.notices = append(t.notices, n)
}

func (t *Toasts) Notices() []contact.Notice {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]contact.Notice(nil), t.notices...)
}

// OOB renders nothing when no notice was raised
func (t *Toasts) OOB() templ.Component {
	return ToastsOOB(NoticeToasts(t.Notices()))
}

// NoticeToast maps a form notice onto the toast component
func NoticeToast(n contact.Notice) toast.Props {
	variant := toast.VariantSuccess
	if n.Severity == contact.SeverityError {
		variant = toast.VariantError
	}
	return toast.Props{
		Description: n.Message,
		Variant:     variant,
		Position:    n.Position,
		Duration:    int(n.Duration.Milliseconds()),
		Dismissible: true,
	}
}

func NoticeToasts(notices []contact.Notice) []toast.Props {
	props := make([]toast.Props, 0, len(notices))
	for _, n := range notices {
		props = append(props, NoticeToast(n))
	}
	return props
}
