package core

import (
	"strings"
	"time"
)

// SessionState enumerates the authorization session lifecycle. A session is
// created in StatePresenting by a successful Start and always terminates in
// StateDone, regardless of which branch finished it.
type SessionState string

const (
	StateIdle           SessionState = "idle"
	StatePresenting     SessionState = "presenting"
	StateAwaitingSecret SessionState = "awaiting_secret"
	StateConfirming     SessionState = "confirming"
	StateDone           SessionState = "done"
)

// OutcomeStatus classifies how the payment sheet finished.
type OutcomeStatus string

const (
	OutcomeSuccess  OutcomeStatus = "success"
	OutcomeFailure  OutcomeStatus = "failure"
	OutcomeCanceled OutcomeStatus = "canceled"
	OutcomeUnknown  OutcomeStatus = "unknown"
)

// Outcome is the terminal classification the sheet reports when it closes.
type Outcome struct {
	Status OutcomeStatus
	Reason string
}

func (o Outcome) Terminal() bool {
	switch o.Status {
	case OutcomeSuccess, OutcomeFailure, OutcomeCanceled, OutcomeUnknown:
		return true
	default:
		return false
	}
}

// LineItem is one row of the sheet's payment summary. Amount is a decimal
// string in major units, matching what the sheet renders ("10.00").
type LineItem struct {
	Label  string `koanf:"label" mapstructure:"label" json:"label"`
	Amount string `koanf:"amount" mapstructure:"amount" json:"amount"`
}

// ShippingMethod is a caller-provided delivery option shown by the sheet.
type ShippingMethod struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Amount     string `json:"amount"`
	DetailText string `json:"detail_text,omitempty"`
}

// PostalAddress is the candidate shipping contact the sheet exposes during
// a contact-changed round trip. Fields may be partially redacted by the
// platform until authorization completes.
type PostalAddress struct {
	Name       string `json:"name,omitempty"`
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// ContactField names a contact attribute the sheet must collect.
type ContactField string

const (
	ContactFieldEmail         ContactField = "email"
	ContactFieldName          ContactField = "name"
	ContactFieldPhone         ContactField = "phone"
	ContactFieldPostalAddress ContactField = "postal_address"
)

// SheetRequest carries the per-authorization parameters for Start. The
// merchant identifier is configuration, not a per-call field.
type SheetRequest struct {
	Country                 string
	Currency                string
	LineItems               []LineItem
	RequiredShippingFields  []ContactField
	RequiredBillingFields   []ContactField
	ShippingMethods         []ShippingMethod
	EnableExtraCardNetworks bool
}

// Validate reports the first missing required field, in declaration order,
// so callers see a stable, nameable reason.
func (r SheetRequest) Validate() error {
	if strings.TrimSpace(r.Country) == "" {
		return validationError("country is required")
	}
	if strings.TrimSpace(r.Currency) == "" {
		return validationError("currency is required")
	}
	if len(r.LineItems) == 0 {
		return validationError("at least one line item is required")
	}
	for _, item := range r.LineItems {
		if strings.TrimSpace(item.Label) == "" {
			return validationError("line item label is required")
		}
		if strings.TrimSpace(item.Amount) == "" {
			return validationError("line item amount is required")
		}
	}
	return nil
}

// clone copies the request's slices so a retained request is isolated from
// later caller mutation.
func (r SheetRequest) clone() SheetRequest {
	out := r
	out.LineItems = cloneLineItems(r.LineItems)
	out.RequiredShippingFields = cloneContactFields(r.RequiredShippingFields)
	out.RequiredBillingFields = cloneContactFields(r.RequiredBillingFields)
	out.ShippingMethods = cloneShippingMethods(r.ShippingMethods)
	return out
}

// CardDetails describes the tokenized card behind an authorized payment
// method. Only display-safe fields cross this boundary.
type CardDetails struct {
	Brand    string `json:"brand,omitempty"`
	Last4    string `json:"last4,omitempty"`
	ExpMonth int    `json:"exp_month,omitempty"`
	ExpYear  int    `json:"exp_year,omitempty"`
}

// BillingDetails is the public billing schema attached to a payment method.
type BillingDetails struct {
	Name    string        `json:"name,omitempty"`
	Email   string        `json:"email,omitempty"`
	Phone   string        `json:"phone,omitempty"`
	Address PostalAddress `json:"address"`
}

// PaymentMethod is the outward payment-method schema handed to the caller
// when the sheet reports a created method.
type PaymentMethod struct {
	ID             string         `json:"id"`
	Type           string         `json:"type"`
	Card           CardDetails    `json:"card"`
	BillingDetails BillingDetails `json:"billing_details"`
	CreatedAt      time.Time      `json:"created_at"`
}

// NativePaymentMethod is the sheet-side payload before mapping. Street may
// carry an embedded line break for multi-line addresses; the handoff splits
// it into discrete lines.
type NativePaymentMethod struct {
	TokenID  string
	Type     string
	Card     CardDetails
	Name     string
	Email    string
	Phone    string
	Street   string
	City     string
	State    string
	Postal   string
	Country  string
	IssuedAt time.Time
}

// ContactValidationError describes one caller-detected problem with a
// candidate shipping contact; the sheet renders these next to the field.
type ContactValidationError struct {
	Field   ContactField `json:"field"`
	Message string       `json:"message"`
}

// SummaryUpdate is the caller's answer to a pending shipping round trip.
type SummaryUpdate struct {
	LineItems     []LineItem
	ContactErrors []ContactValidationError
}

// SummaryResult is what a buffered shipping continuation receives. The
// shipping-method list stays empty on contact updates; the sheet keeps the
// methods it was presented with.
type SummaryResult struct {
	LineItems       []LineItem
	ContactErrors   []ContactValidationError
	ShippingMethods []ShippingMethod
}

// ConfirmResult is the (empty) success value of a confirm call. It exists so
// the confirm pending has a concrete resolution type.
type ConfirmResult struct{}

func cloneLineItems(items []LineItem) []LineItem {
	if len(items) == 0 {
		return nil
	}
	return append([]LineItem(nil), items...)
}

func cloneShippingMethods(methods []ShippingMethod) []ShippingMethod {
	if len(methods) == 0 {
		return nil
	}
	return append([]ShippingMethod(nil), methods...)
}

func cloneContactErrors(errs []ContactValidationError) []ContactValidationError {
	if len(errs) == 0 {
		return nil
	}
	return append([]ContactValidationError(nil), errs...)
}

func cloneContactFields(fields []ContactField) []ContactField {
	if len(fields) == 0 {
		return nil
	}
	return append([]ContactField(nil), fields...)
}
