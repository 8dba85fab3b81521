package orbital

import (
	"github.com/gatewaylabs/orbital-client/internal/domain"
	"github.com/gatewaylabs/orbital-client/internal/domain/ports"
)

// MapResponse converts a parsed processor response into the normalized
// TransactionResult. Pure function: missing optional fields map to empty
// strings, never to an error. Diagnostic fields are filled regardless of
// approval; only Success tracks the approval boolean.
func MapResponse(resp *ports.ProcessorResponse) *domain.TransactionResult {
	result := &domain.TransactionResult{
		Success:           resp.Approved,
		TransactionID:     resp.TxRefNum,
		AuthorizationCode: resp.AuthCode,
		AVSResponse:       resp.AVSRespCode,
		CVV2Response:      resp.CVV2RespCode,
		StatusMessage:     resp.StatusMessage,
	}

	// Some processors send a bare response code with no status text; fall
	// back to the code table's description so callers always get a message.
	if result.StatusMessage == "" && resp.RespCode != "" {
		result.StatusMessage = GetResponseCode(resp.RespCode).Description
	}

	return result
}
