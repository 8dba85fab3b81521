package orbital

// ResponseCategory classifies a processor response code for handling
type ResponseCategory string

const (
	CategoryApproved          ResponseCategory = "approved"
	CategoryDeclined          ResponseCategory = "declined"
	CategoryInsufficientFunds ResponseCategory = "insufficient_funds"
	CategoryInvalidCard       ResponseCategory = "invalid_card"
	CategoryExpiredCard       ResponseCategory = "expired_card"
	CategoryFraud             ResponseCategory = "fraud"
	CategorySystemError       ResponseCategory = "system_error"
)

// ResponseCodeInfo contains detailed information about a processor response code
type ResponseCodeInfo struct {
	Code        string
	Display     string
	Description string
	IsApproved  bool
	IsRetriable bool
	Category    ResponseCategory
}

// Response code map for MOTO/e-commerce card transactions
var responseCodes = map[string]ResponseCodeInfo{
	"00": {
		Code:        "00",
		Display:     "APPROVAL",
		Description: "Approved",
		IsApproved:  true,
		Category:    CategoryApproved,
	},
	"05": {
		Code:        "05",
		Display:     "DECLINE",
		Description: "Do not honor",
		Category:    CategoryDeclined,
	},
	"14": {
		Code:        "14",
		Display:     "INVALID ACCT",
		Description: "Invalid card number",
		Category:    CategoryInvalidCard,
	},
	"41": {
		Code:        "41",
		Display:     "LOST CARD",
		Description: "Lost card, pick up",
		Category:    CategoryFraud,
	},
	"43": {
		Code:        "43",
		Display:     "STOLEN CARD",
		Description: "Stolen card, pick up",
		Category:    CategoryFraud,
	},
	"51": {
		Code:        "51",
		Display:     "INSUFF FUNDS",
		Description: "Insufficient funds",
		IsRetriable: true,
		Category:    CategoryInsufficientFunds,
	},
	"54": {
		Code:        "54",
		Display:     "EXP CARD",
		Description: "Expired card",
		Category:    CategoryExpiredCard,
	},
	"91": {
		Code:        "91",
		Display:     "TIMEOUT",
		Description: "Issuer or switch timeout",
		IsRetriable: true,
		Category:    CategorySystemError,
	},
	"96": {
		Code:        "96",
		Display:     "SYSTEM ERROR",
		Description: "System malfunction",
		IsRetriable: true,
		Category:    CategorySystemError,
	},
}

// GetResponseCode retrieves response code information; unknown codes map to
// a generic decline
func GetResponseCode(code string) ResponseCodeInfo {
	if info, exists := responseCodes[code]; exists {
		return info
	}
	return ResponseCodeInfo{
		Code:        code,
		Display:     "UNKNOWN",
		Description: "Unknown response code",
		Category:    CategoryDeclined,
	}
}

// AVS result code descriptions (address verification)
var avsResponseCodes = map[string]string{
	"A": "Address matches, zip does not",
	"N": "No match on address or zip",
	"R": "Retry, system unavailable",
	"U": "Address information unavailable",
	"W": "9-digit zip matches, address does not",
	"X": "Exact match, 9-digit zip and address",
	"Y": "Exact match, 5-digit zip and address",
	"Z": "5-digit zip matches, address does not",
}

// CVV2 result code descriptions (card verification value)
var cvv2ResponseCodes = map[string]string{
	"M": "CVV2 match",
	"N": "CVV2 no match",
	"P": "Not processed",
	"S": "CVV2 expected but not provided",
	"U": "Issuer does not support CVV2",
}

// DescribeAVS returns a human-readable description of an AVS result code
func DescribeAVS(code string) string {
	if desc, ok := avsResponseCodes[code]; ok {
		return desc
	}
	return "Unknown AVS result"
}

// DescribeCVV2 returns a human-readable description of a CVV2 result code
func DescribeCVV2(code string) string {
	if desc, ok := cvv2ResponseCodes[code]; ok {
		return desc
	}
	return "Unknown CVV2 result"
}
