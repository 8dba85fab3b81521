package ports

import (
	"context"
	"time"

	"github.com/gatewaylabs/orbital-client/internal/domain"
)

// MessageType identifies the processor-level request class
type MessageType string

const (
	MessageTypeAuthOnly       MessageType = "A"   // Authorization without capture
	MessageTypeAuthCapture    MessageType = "AC"  // Authorization and capture
	MessageTypeMarkForCapture MessageType = "MFC" // Capture of a prior authorization
	MessageTypeRefund         MessageType = "R"   // Credit back to the cardholder
)

// ProcessorRequest is the processor-specific field set produced by the
// request builder. The transport owns the wire encoding of these fields.
type ProcessorRequest struct {
	MessageType  MessageType
	BIN          string
	MerchantID   string
	TraceNumber  string // Empty when the caller supplied none or a non-numeric value
	OrderID      string
	AccountNum   string
	ExpDate      string // MMYY; empty for capture and credit
	Amount       string // Exactly 12 zero-padded decimal digits of whole cents
	CurrencyCode string // Empty for capture
	TimeZoneCode string
	TxRefNum     string // Set only for capture
	Comments     string
	BillTo       *domain.BillTo // Attached only for authorization actions
}

// ProcessorResponse is the parsed reply from the processor. Optional fields
// are empty strings when the processor omits them.
type ProcessorResponse struct {
	Approved      bool
	RespCode      string // Processor response code ("00" = approved)
	StatusMessage string // Human-readable status text
	TxRefNum      string // Processor-assigned transaction reference
	AuthCode      string // Bank authorization code; empty when declined
	AVSRespCode   string
	CVV2RespCode  string
	ProcessedAt   time.Time
	Raw           string // Raw response payload, for debug logging only
}

// GatewayTransport defines the port for delivering a built request to the
// payment processor. Implementations own connection management, timeouts,
// retries, and the wire format; the client above this port performs exactly
// one Process call per submission.
type GatewayTransport interface {
	// Process sends the request and returns the parsed response.
	// Returns an error if:
	//   - Network communication fails
	//   - The processor reply cannot be parsed
	//   - The transport's own resilience policy gives up
	// A declined transaction is a successful Process call with
	// Approved=false, not an error.
	Process(ctx context.Context, req *ProcessorRequest) (*ProcessorResponse, error)
}
