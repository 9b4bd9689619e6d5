package blacklist

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hkaraca/rmosdesk/internal/api"
	"github.com/hkaraca/rmosdesk/internal/notify"
	"github.com/hkaraca/rmosdesk/internal/table"
)

// Mode says whether the editor creates a new record or updates a selected one.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// ValidationErrors maps form field name to a message. It blocks submission
// before any network call.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + v[f]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Saver is the slice of the api client the editor needs.
type Saver interface {
	PostCommand(ctx context.Context, endpoint string, payload any) (*api.Envelope, error)
}

// Refetcher refreshes the table after a successful save; the page controller
// satisfies it.
type Refetcher interface {
	Submit(ctx context.Context) error
}

// Editor is the create/edit workflow layered on the blacklist page. State is
// closed or open(mode, draft, selected); a failed submit keeps it open with
// the draft intact so the user can retry.
type Editor struct {
	client   Saver
	notifier *notify.Notifier
	refetch  Refetcher
	now      func() time.Time

	open       bool
	mode       Mode
	draft      map[string]string
	selectedID int
	fieldErrs  ValidationErrors
}

func NewEditor(client Saver, notifier *notify.Notifier, refetch Refetcher) *Editor {
	return &Editor{client: client, notifier: notifier, refetch: refetch, now: time.Now}
}

// IsOpen reports whether the editor is showing.
func (e *Editor) IsOpen() bool { return e.open }

// Mode returns the current mode; meaningful only while open.
func (e *Editor) Mode() Mode { return e.mode }

// OpenForCreate starts a blank draft.
func (e *Editor) OpenForCreate() {
	e.open = true
	e.mode = ModeCreate
	e.selectedID = 0
	e.draft = make(map[string]string, len(fieldMap))
	for _, f := range fieldMap {
		e.draft[f.Form] = ""
	}
	e.fieldErrs = nil
}

// OpenForEdit derives the draft from a stored row via the field map and
// remembers the row's identifier for the update payload.
func (e *Editor) OpenForEdit(row *table.Row) error {
	id, ok := row.Get("Id")
	if !ok || id.Kind != table.KindNumber {
		return errors.New("selected row has no Id")
	}
	e.open = true
	e.mode = ModeEdit
	e.selectedID = int(id.Number)
	e.draft = make(map[string]string, len(fieldMap))
	for _, f := range fieldMap {
		e.draft[f.Form] = draftValueFromRow(row, f.Form, f.Server)
	}
	e.fieldErrs = nil
	return nil
}

// SetField updates one draft field. Pure local change.
func (e *Editor) SetField(name, value string) {
	if e.draft == nil {
		return
	}
	e.draft[name] = value
}

// Field returns the current draft value of one field.
func (e *Editor) Field(name string) string { return e.draft[name] }

// FieldErrors returns the field-level errors from the last failed validation.
func (e *Editor) FieldErrors() ValidationErrors { return e.fieldErrs }

// Close discards the draft, the selection and any validation state. Always
// legal.
func (e *Editor) Close() {
	e.open = false
	e.mode = ""
	e.draft = nil
	e.selectedID = 0
	e.fieldErrs = nil
}

// Validate applies the client-side rules: name, surname and birth date are
// required; TCKN must be 11 digits when present; the birth date must look
// like a date input value.
func (e *Editor) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(e.draft["Ad"]) == "" {
		errs["Ad"] = "required"
	}
	if strings.TrimSpace(e.draft["Soyadi"]) == "" {
		errs["Soyadi"] = "required"
	}
	dob := strings.TrimSpace(e.draft["DogumTarihi"])
	if dob == "" {
		errs["DogumTarihi"] = "required"
	} else if _, err := time.Parse(dateInputLayout, dob); err != nil {
		errs["DogumTarihi"] = "expected YYYY-MM-DD"
	}
	if tckn := strings.TrimSpace(e.draft["TCKN"]); tckn != "" {
		if len(tckn) != 11 || !allDigits(tckn) {
			errs["TCKN"] = "expected 11 digits"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Payload builds the Kara/Ekle request body: form fields translated to
// server names, the record identifier (0 for create), and the creation
// timestamp set to now.
func (e *Editor) Payload() map[string]any {
	payload := make(map[string]any, len(fieldMap)+3)
	payload["db_Id"] = DatabaseID
	payload["Id"] = e.selectedID
	for _, f := range fieldMap {
		payload[f.Server] = e.draft[f.Form]
	}
	payload["Sistem_tarihi"] = nowISO(e.now())
	return payload
}

// Submit validates, sends the save payload, and reacts per outcome: success
// notifies, refetches the table and closes; any failure notifies with the
// server message when there is one and leaves the editor open, draft intact.
// Validation failures never reach the network.
func (e *Editor) Submit(ctx context.Context) error {
	if !e.open {
		return errors.New("editor is not open")
	}
	if errs := e.Validate(); errs != nil {
		e.fieldErrs = errs
		return errs
	}
	e.fieldErrs = nil

	if _, err := e.client.PostCommand(ctx, api.EndpointBlacklistSave, e.Payload()); err != nil {
		e.notifier.Error(userMessage(err))
		return err
	}

	if e.mode == ModeEdit {
		e.notifier.Success("record updated")
	} else {
		e.notifier.Success("record created")
	}
	// The save went through, so the editor closes either way; a refresh
	// failure surfaces as page-level state, not as a kept-open modal.
	refErr := e.refetch.Submit(ctx)
	e.Close()
	if refErr != nil {
		return fmt.Errorf("saved, but refresh failed: %w", refErr)
	}
	return nil
}

func userMessage(err error) string {
	var appErr *api.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) && httpErr.Message != "" {
		return httpErr.Message
	}
	if errors.Is(err, api.ErrUnauthorized) {
		return api.ErrUnauthorized.Error()
	}
	return "operation failed, please try again"
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
