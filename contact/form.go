// Package contact implements the contact form client: field validation,
// URL-encoded submission and the idle, submitting, success and error states
// shown to the visitor.
package contact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"net/url"
	"strings"
	"sync"
	"time"
)

// FormName is the value of the hidden form-name field the endpoint routes on.
const FormName = "contact"

// Field names as posted.
const (
	FieldFormName = "form-name"
	FieldBot      = "bot-field"
	FieldName     = "name"
	FieldEmail    = "email"
	FieldMessage  = "message"
)

var (
	// ErrInvalidFields is returned when a required field is missing or the
	// email address does not parse.
	ErrInvalidFields = errors.New("contact: invalid fields")
	// ErrSubmitInFlight is returned when Submit is called while a previous
	// submission has not finished.
	ErrSubmitInFlight = errors.New("contact: submission in flight")
	// ErrSubmitFailed is returned when the request fails or the endpoint
	// answers with a non-2xx status.
	ErrSubmitFailed = errors.New("contact: submission failed")
)

// Status is the visible state of the form.
type Status uint8

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Fields are the values a visitor submits. BotField is the honeypot and is
// expected to stay empty.
type Fields struct {
	Name     string
	Email    string
	Message  string
	BotField string
}

// Validate checks the required fields.
func (f Fields) Validate() error {
	var missing []string
	if strings.TrimSpace(f.Name) == "" {
		missing = append(missing, FieldName)
	}
	if strings.TrimSpace(f.Email) == "" {
		missing = append(missing, FieldEmail)
	}
	if strings.TrimSpace(f.Message) == "" {
		missing = append(missing, FieldMessage)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidFields, strings.Join(missing, ", "))
	}
	if _, err := mail.ParseAddress(f.Email); err != nil {
		return fmt.Errorf("%w: email: %v", ErrInvalidFields, err)
	}
	return nil
}

// Values returns the fields as form values, including the form name.
func (f Fields) Values() url.Values {
	return url.Values{
		FieldFormName: {FormName},
		FieldBot:      {f.BotField},
		FieldName:     {f.Name},
		FieldEmail:    {f.Email},
		FieldMessage:  {f.Message},
	}
}

// Encode returns the URL-encoded request body.
func (f Fields) Encode() string {
	return f.Values().Encode()
}

// FieldsFromValues reads posted form values.
func FieldsFromValues(v url.Values) Fields {
	return Fields{
		Name:     v.Get(FieldName),
		Email:    v.Get(FieldEmail),
		Message:  v.Get(FieldMessage),
		BotField: v.Get(FieldBot),
	}
}

// Option configures a Form.
type Option func(*Form)

// WithHTTPClient sets the client used to post. The default has a 15 second
// timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Form) { f.client = c }
}

// WithOnChange registers fn to be called with every status transition. It
// runs on the goroutine that caused the transition, without the form's lock
// held.
func WithOnChange(fn func(Status)) Option {
	return func(f *Form) { f.onChange = fn }
}

// Form posts contact submissions to an endpoint and tracks their status.
// It is safe for concurrent use.
type Form struct {
	endpoint string
	client   *http.Client
	onChange func(Status)

	mu     sync.Mutex
	status Status
}

// NewForm returns an idle form posting to endpoint.
func NewForm(endpoint string, opts ...Option) *Form {
	f := &Form{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Status returns the current status.
func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Reset returns a finished form to idle. It does nothing while submitting.
func (f *Form) Reset() {
	f.mu.Lock()
	if f.status == StatusSubmitting || f.status == StatusIdle {
		f.mu.Unlock()
		return
	}
	f.status = StatusIdle
	f.mu.Unlock()
	f.notify(StatusIdle)
}

// Submit validates fields and posts them. Invalid fields leave the status
// untouched. Otherwise the form moves to submitting and then to success or
// error; there is no retry.
func (f *Form) Submit(ctx context.Context, fields Fields) error {
	if err := fields.Validate(); err != nil {
		return err
	}

	f.mu.Lock()
	if f.status == StatusSubmitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	f.status = StatusSubmitting
	f.mu.Unlock()
	f.notify(StatusSubmitting)

	err := f.post(ctx, fields)

	next := StatusSuccess
	if err != nil {
		next = StatusError
	}
	f.mu.Lock()
	f.status = next
	f.mu.Unlock()
	f.notify(next)
	return err
}

func (f *Form) post(ctx context.Context, fields Fields) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, strings.NewReader(fields.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrSubmitFailed, resp.StatusCode)
	}
	return nil
}

func (f *Form) notify(s Status) {
	if f.onChange != nil {
		f.onChange(s)
	}
}
