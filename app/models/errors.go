package models

import "errors"

// Sentinel errors for the front-desk workflows. Route handlers translate
// these into {success:false, error:<localized message>} responses; nothing
// else is allowed to leak to the client.
var (
	ErrValidation       = errors.New("missing or invalid field")
	ErrNotFound         = errors.New("record not found")
	ErrExpired          = errors.New("code expired")
	ErrCodeMismatch     = errors.New("wrong code")
	ErrUnknownRecipient = errors.New("no challenge for number")
	ErrUpstreamService  = errors.New("sms provider failure")
	ErrPersistence      = errors.New("storage failure")
)

// Localized messages shown to the UI. The interface is Arabic throughout.
var arabicMessages = map[error]string{
	ErrValidation:       "جميع الحقول مطلوبة",
	ErrNotFound:         "السجل غير موجود",
	ErrExpired:          "انتهت صلاحية الرمز",
	ErrCodeMismatch:     "رمز التحقق غير صحيح",
	ErrUnknownRecipient: "رقم الجوال غير معروف",
	ErrUpstreamService:  "فشل إرسال الرسالة",
	ErrPersistence:      "حدث خطأ في حفظ البيانات",
}

// UserError pairs a sentinel with a message that is already user-facing,
// e.g. a provider error summary that carries the HTTP status.
type UserError struct {
	Err     error
	Message string
}

func (e *UserError) Error() string { return e.Message }
func (e *UserError) Unwrap() error { return e.Err }

// LocalizedMessage maps an error to its user-facing Arabic string. A
// UserError supplies its own message; errors wrapping a sentinel resolve to
// the sentinel's message; anything unknown gets the generic persistence
// message so internal detail stays server-side.
func LocalizedMessage(err error) string {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Message
	}
	for sentinel, msg := range arabicMessages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	return arabicMessages[ErrPersistence]
}
