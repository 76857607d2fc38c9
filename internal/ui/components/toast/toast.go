package toast

// ContainerID is the element toasts are appended to
const ContainerID = "toasts"

type Variant string

const (
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
)

const PositionTopCenter = "top-center"

type Props struct {
	Description string
	Variant     Variant
	Position    string
	// Duration in milliseconds before app.js removes the toast. Zero keeps it.
	Duration    int
	Dismissible bool
}

const baseClass = "toast pointer-events-auto flex w-full max-w-md items-start gap-3 rounded-lg border px-4 py-3 shadow-lg"

func variantClass(v Variant) string {
	if v == VariantError {
		return "border-red-200 bg-red-50 text-red-800"
	}
	return "border-green-200 bg-green-50 text-green-800"
}

// role makes screen readers announce errors immediately
func role(v Variant) string {
	if v == VariantError {
		return "alert"
	}
	return "status"
}
