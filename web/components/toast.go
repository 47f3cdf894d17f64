package components

import (
	"strconv"

	twmerge "github.com/Oudwins/tailwind-merge-go"
)

type ToastVariant string

const (
	ToastSuccess ToastVariant = "success"
	ToastError   ToastVariant = "error"
	ToastWarning ToastVariant = "warning"
	ToastInfo    ToastVariant = "info"
)

// ParseToastVariant maps form values to a variant; unknown values are success.
func ParseToastVariant(s string) ToastVariant {
	switch s {
	case "error", "destructive":
		return ToastError
	case "warning":
		return ToastWarning
	case "info":
		return ToastInfo
	default:
		return ToastSuccess
	}
}

type ToastProps struct {
	Title       string
	Description string
	Variant     ToastVariant
	Dismissible bool
	// Duration in milliseconds before the toast hides itself.
	Duration int
	Class    string
}

const toastBase = "fixed bottom-4 right-4 z-50 flex w-80 items-start gap-3 rounded-lg border p-4 shadow-lg bg-white text-gray-900"

var toastVariants = map[ToastVariant]string{
	ToastSuccess: "border-green-500 bg-green-50",
	ToastError:   "border-red-500 bg-red-50 text-red-900",
	ToastWarning: "border-yellow-500 bg-yellow-50",
	ToastInfo:    "border-blue-500 bg-blue-50",
}

// ToastClass returns the merged class list for p.
func ToastClass(p ToastProps) string {
	return twmerge.Merge(toastBase, toastVariants[p.Variant], p.Class)
}

func toastDuration(p ToastProps) string {
	if p.Duration <= 0 {
		return "2000"
	}
	return strconv.Itoa(p.Duration)
}
