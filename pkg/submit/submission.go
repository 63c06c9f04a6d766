package submit

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Contact form field names, as rendered into the page.
const (
	FieldName      = "name"
	FieldPhone     = "phone"
	FieldItinerary = "itinerary"
	FieldNotes     = "notes"
)

// Fields lists the contact form fields in form order.
var Fields = []string{FieldName, FieldPhone, FieldItinerary, FieldNotes}

const maxFieldLength = 2000

// User-facing outcome messages.
const (
	MessageSent        = "Cảm ơn bạn! Thông tin đã được gửi thành công."
	MessageFailed      = "Gửi thông tin thất bại. Vui lòng thử lại sau."
	MessageRateLimited = "Bạn gửi quá nhiều yêu cầu. Vui lòng thử lại sau ít phút."
	MessageInvalid     = "Vui lòng điền đầy đủ họ tên, số điện thoại và lịch trình."
)

// ErrRateLimited is returned when an endpoint refuses a submission because
// its rate budget is spent.
var ErrRateLimited = errors.New("submit: rate limited")

// ValidationError reports a missing or malformed form field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("submit: field %s %s", e.Field, e.Reason)
}

// Submission is one contact form entry.
type Submission struct {
	ID          string
	Name        string
	Phone       string
	Itinerary   string
	Notes       string
	SubmittedAt time.Time
	RemoteAddr  string
}

// FromValues builds a submission from posted form values, assigning an id
// and timestamp.
func FromValues(values url.Values) (Submission, error) {
	sub := Submission{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(values.Get(FieldName)),
		Phone:       strings.TrimSpace(values.Get(FieldPhone)),
		Itinerary:   strings.TrimSpace(values.Get(FieldItinerary)),
		Notes:       strings.TrimSpace(values.Get(FieldNotes)),
		SubmittedAt: time.Now().UTC(),
	}
	if err := sub.Validate(); err != nil {
		return Submission{}, err
	}
	return sub, nil
}

// Validate checks required fields and length limits.
func (s Submission) Validate() error {
	required := []struct{ field, value string }{
		{FieldName, s.Name},
		{FieldPhone, s.Phone},
		{FieldItinerary, s.Itinerary},
	}
	for _, item := range required {
		if item.value == "" {
			return &ValidationError{Field: item.field, Reason: "is required"}
		}
	}
	for field, value := range s.values() {
		if utf8.RuneCountInString(value) > maxFieldLength {
			return &ValidationError{Field: field, Reason: fmt.Sprintf("exceeds %d characters", maxFieldLength)}
		}
	}
	if !validPhone(s.Phone) {
		return &ValidationError{Field: FieldPhone, Reason: "is not a phone number"}
	}
	return nil
}

// Values returns the form fields keyed by their form names.
func (s Submission) Values() url.Values {
	out := url.Values{}
	for field, value := range s.values() {
		out.Set(field, value)
	}
	return out
}

func (s Submission) values() map[string]string {
	return map[string]string{
		FieldName:      s.Name,
		FieldPhone:     s.Phone,
		FieldItinerary: s.Itinerary,
		FieldNotes:     s.Notes,
	}
}

func validPhone(phone string) bool {
	digits := 0
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' || r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 8 && digits <= 15
}
