package domain

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// Action represents the type of gateway operation requested
type Action string

const (
	ActionAuthorizationOnly       Action = "AUTH_ONLY"    // Authorize without capturing funds
	ActionAuthorizationAndCapture Action = "AUTH_CAPTURE" // Combined authorization + capture
	ActionCapture                 Action = "CAPTURE"      // Capture a prior authorization
	ActionCredit                  Action = "CREDIT"       // Return funds to the cardholder
)

// Processor-level defaults applied when the request leaves them empty
const (
	DefaultCurrencyCode = "840"    // ISO 4217 numeric, US dollar
	DefaultBIN          = "000001" // Processor routing BIN
	DefaultTimeZoneCode = "706"    // Processor timezone code
)

// MaxAmountCents is the largest amount the 12-digit wire format can carry
const MaxAmountCents int64 = 999999999999

// RequiresCard reports whether the action sends card number and expiration
func (a Action) RequiresCard() bool {
	return a == ActionAuthorizationOnly || a == ActionAuthorizationAndCapture
}

// RequiresAmount reports whether the action must carry a transaction amount
func (a Action) RequiresAmount() bool {
	return a == ActionAuthorizationOnly || a == ActionAuthorizationAndCapture || a == ActionCredit
}

// IsValid reports whether the action is one the gateway supports
func (a Action) IsValid() bool {
	switch a {
	case ActionAuthorizationOnly, ActionAuthorizationAndCapture, ActionCapture, ActionCredit:
		return true
	}
	return false
}

// BillTo holds cardholder billing details. Fields are copied to the processor
// verbatim; empty fields are sent empty, never defaulted.
type BillTo struct {
	Name     string
	Address1 string
	Address2 string
	City     string
	State    string
	Zip      string
	Country  string
	Phone    string
}

// TransactionRequest is the normalized input for a single gateway submission.
// Values are set once by the caller and never mutated by this library.
type TransactionRequest struct {
	Action       Action
	MerchantID   string
	OrderID      string
	TraceNumber  string // Optional; must be strictly numeric to be forwarded
	CardNumber   string
	ExpDate      string // MMYY
	AmountCents  int64
	CurrencyCode string // Defaults to "840"
	BIN          string // Defaults to "000001"
	TimeZoneCode string // Defaults to "706"
	TxRefNum     string // Required for capture; links to the prior authorization
	Comments     string
	BillTo       *BillTo
}

// TransactionResult is the normalized outcome of a single gateway submission.
// Diagnostic fields are populated for declines as well as approvals; only
// Success differs between the two.
type TransactionResult struct {
	Success           bool
	AuthorizationCode string
	TransactionID     string // Processor TxRefNum
	AVSResponse       string
	CVV2Response      string
	StatusMessage     string
	RawResponse       string // Retained only when the client runs in debug mode
}

var numericTracePattern = regexp.MustCompile(`^\d+$`)

// HasValidTraceNumber reports whether the trace number is safe to forward.
// Non-numeric trace numbers are dropped from the built request, not rejected.
func (r *TransactionRequest) HasValidTraceNumber() bool {
	return r.TraceNumber != "" && numericTracePattern.MatchString(r.TraceNumber)
}

// Validate enforces the per-action invariants before a request is built
func (r *TransactionRequest) Validate() error {
	if !r.Action.IsValid() {
		return ErrUnsupportedAction.WithDetail("action", string(r.Action))
	}
	if r.MerchantID == "" {
		return ErrMissingField.WithDetail("field", "merchant_id")
	}
	if r.Action == ActionCapture && r.TxRefNum == "" {
		return ErrMissingField.WithDetail("field", "tx_ref_num")
	}
	// Every action formats the amount onto the wire, so the bound applies
	// regardless of RequiresAmount
	if r.AmountCents < 0 || r.AmountCents > MaxAmountCents {
		return ErrInvalidAmount.WithDetail("amount_cents", r.AmountCents)
	}
	if r.Action.RequiresCard() {
		if r.CardNumber == "" {
			return ErrMissingField.WithDetail("field", "card_number")
		}
		if r.ExpDate == "" {
			return ErrMissingField.WithDetail("field", "exp_date")
		}
	}
	return nil
}

// MaskedCardNumber returns the card number reduced to its last four digits,
// suitable for logs. Full PANs must never be logged.
func (r *TransactionRequest) MaskedCardNumber() string {
	if len(r.CardNumber) <= 4 {
		return r.CardNumber
	}
	return "****" + r.CardNumber[len(r.CardNumber)-4:]
}

// AmountCentsFromString converts a decimal dollar string (e.g. "29.99") into
// whole cents. Returns an error for unparseable or negative values.
func AmountCentsFromString(amount string) (int64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, WrapError(ErrorCodeInvalidAmount, "amount is not a decimal number", err).
			WithDetail("amount", amount)
	}
	if d.IsNegative() {
		return 0, ErrInvalidAmount.WithDetail("amount", amount)
	}
	cents := d.Shift(2).Truncate(0).IntPart()
	if cents > MaxAmountCents {
		return 0, ErrInvalidAmount.WithDetail("amount", amount)
	}
	return cents, nil
}
