package orbital

import (
	"fmt"

	"github.com/gatewaylabs/orbital-client/internal/domain"
	"github.com/gatewaylabs/orbital-client/internal/domain/ports"
)

// BuilderDefaults holds per-client values applied when the request leaves
// the corresponding field empty. Set once at construction, read-only after.
type BuilderDefaults struct {
	MerchantID   string
	BIN          string
	TimeZoneCode string
	CurrencyCode string
}

// RequestBuilder converts a normalized TransactionRequest into the
// processor-specific field set. It performs no I/O and never mutates its
// input; every call produces a fresh ProcessorRequest.
type RequestBuilder struct {
	defaults BuilderDefaults
}

// NewRequestBuilder creates a request builder with the given defaults
func NewRequestBuilder(defaults BuilderDefaults) *RequestBuilder {
	return &RequestBuilder{defaults: defaults}
}

// Build validates the request and maps it to a ProcessorRequest.
// Returns a BUILD_* domain error without contacting the transport when the
// action is unsupported or a per-action invariant is violated.
func (b *RequestBuilder) Build(req *domain.TransactionRequest) (*ports.ProcessorRequest, error) {
	effective := b.applyDefaults(req)

	if err := effective.Validate(); err != nil {
		return nil, err
	}

	out := &ports.ProcessorRequest{}

	switch effective.Action {
	case domain.ActionAuthorizationOnly:
		out.MessageType = ports.MessageTypeAuthOnly
		out.BillTo = copyBillTo(effective.BillTo)
		out.CurrencyCode = effective.CurrencyCode
		out.ExpDate = effective.ExpDate

	case domain.ActionAuthorizationAndCapture:
		out.MessageType = ports.MessageTypeAuthCapture
		out.BillTo = copyBillTo(effective.BillTo)
		out.CurrencyCode = effective.CurrencyCode
		out.ExpDate = effective.ExpDate

	case domain.ActionCapture:
		// Captures reference the prior authorization; no bill-to, no
		// expiration, no currency are sent.
		out.MessageType = ports.MessageTypeMarkForCapture
		out.TxRefNum = effective.TxRefNum

	case domain.ActionCredit:
		out.MessageType = ports.MessageTypeRefund
		out.CurrencyCode = effective.CurrencyCode

	default:
		return nil, domain.ErrUnsupportedAction.WithDetail("action", string(effective.Action))
	}

	// Common fields, applied for every action that produces a request
	out.BIN = effective.BIN
	out.MerchantID = effective.MerchantID
	out.OrderID = effective.OrderID
	out.AccountNum = effective.CardNumber
	out.Amount = FormatAmount(effective.AmountCents)
	out.TimeZoneCode = effective.TimeZoneCode
	out.Comments = effective.Comments

	// A non-numeric trace number is dropped, not rejected
	if effective.HasValidTraceNumber() {
		out.TraceNumber = effective.TraceNumber
	}

	return out, nil
}

// applyDefaults returns a copy of the request with builder and processor
// defaults filled into empty fields. The caller's request is untouched.
func (b *RequestBuilder) applyDefaults(req *domain.TransactionRequest) *domain.TransactionRequest {
	effective := *req

	if effective.MerchantID == "" {
		effective.MerchantID = b.defaults.MerchantID
	}
	if effective.BIN == "" {
		effective.BIN = firstNonEmpty(b.defaults.BIN, domain.DefaultBIN)
	}
	if effective.TimeZoneCode == "" {
		effective.TimeZoneCode = firstNonEmpty(b.defaults.TimeZoneCode, domain.DefaultTimeZoneCode)
	}
	if effective.CurrencyCode == "" {
		effective.CurrencyCode = firstNonEmpty(b.defaults.CurrencyCode, domain.DefaultCurrencyCode)
	}

	return &effective
}

// FormatAmount renders whole cents as the fixed-width 12-digit unsigned
// decimal string the processor expects
func FormatAmount(cents int64) string {
	return fmt.Sprintf("%012d", cents)
}

// copyBillTo detaches the bill-to block from the caller's request so the
// built ProcessorRequest shares no mutable state with it. Fields are copied
// verbatim; absent fields stay empty.
func copyBillTo(billTo *domain.BillTo) *domain.BillTo {
	if billTo == nil {
		return nil
	}
	copied := *billTo
	return &copied
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
