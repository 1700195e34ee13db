package alloy

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind is the closed set of verification outcomes.
type Kind int

const (
	KindApproved Kind = iota
	KindManualReview
	KindDenied
	KindUnknown
	KindTransportError
	KindMalformedResponse
)

func (k Kind) String() string {
	switch k {
	case KindApproved:
		return "approved"
	case KindManualReview:
		return "manual_review"
	case KindDenied:
		return "denied"
	case KindUnknown:
		return "unknown"
	case KindTransportError:
		return "transport_error"
	case KindMalformedResponse:
		return "malformed_response"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MalformedReason refines KindMalformedResponse.
type MalformedReason int

const (
	MalformedNone MalformedReason = iota
	// MalformedErrorReported: the body carried an "error" field instead of a decision.
	MalformedErrorReported
	// MalformedSchemaResponse: the body listed required/optional parameters,
	// which happens when no workflow was resolved for the request.
	MalformedSchemaResponse
	// MalformedUnrecognizedShape: nothing in the body could be interpreted.
	MalformedUnrecognizedShape
)

func (r MalformedReason) String() string {
	switch r {
	case MalformedNone:
		return "none"
	case MalformedErrorReported:
		return "error_reported"
	case MalformedSchemaResponse:
		return "schema_response"
	case MalformedUnrecognizedShape:
		return "unrecognized_shape"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Service outcome strings, compared case-sensitively.
const (
	OutcomeApproved     = "Approved"
	OutcomeManualReview = "Manual Review"
	OutcomeDeny         = "Deny"
)

// Outcome is the interpreted result of one evaluation.
type Outcome struct {
	Kind       Kind
	Raw        string
	Reason     MalformedReason
	Detail     string
	StatusCode int
}

// Classify maps a decoded evaluation body onto an Outcome. A nil response
// means nothing usable came back and is a transport failure.
func Classify(resp Response) Outcome {
	if resp == nil {
		return Outcome{Kind: KindTransportError, Detail: "no response received"}
	}

	if summary, ok := resp["summary"]; ok {
		fields, ok := summary.(map[string]interface{})
		if !ok {
			return Outcome{Kind: KindMalformedResponse, Reason: MalformedUnrecognizedShape, Detail: "summary is not an object"}
		}
		raw := "Unknown"
		if v, ok := fields["outcome"]; ok && v != nil {
			if s, ok := v.(string); ok {
				raw = s
			} else {
				raw = fmt.Sprint(v)
			}
		}
		switch raw {
		case OutcomeApproved:
			return Outcome{Kind: KindApproved, Raw: raw}
		case OutcomeManualReview:
			return Outcome{Kind: KindManualReview, Raw: raw}
		case OutcomeDeny:
			return Outcome{Kind: KindDenied, Raw: raw}
		default:
			return Outcome{Kind: KindUnknown, Raw: raw}
		}
	}

	if v, ok := resp["error"]; ok && truthy(v) {
		return Outcome{Kind: KindMalformedResponse, Reason: MalformedErrorReported, Detail: describe(v)}
	}

	if v, ok := resp["status_code"]; ok {
		code, ok := statusCode(v)
		if !ok || code != 200 {
			return Outcome{Kind: KindTransportError, StatusCode: code, Detail: fmt.Sprintf("status_code %s", describe(v))}
		}
		return Outcome{Kind: KindMalformedResponse, Reason: MalformedUnrecognizedShape, StatusCode: code, Detail: "status_code 200 without summary"}
	}

	_, hasRequired := resp["required"]
	_, hasOptional := resp["optional"]
	if hasRequired || hasOptional {
		return Outcome{Kind: KindMalformedResponse, Reason: MalformedSchemaResponse, Detail: "schema response received instead of decision"}
	}

	return Outcome{Kind: KindMalformedResponse, Reason: MalformedUnrecognizedShape, Detail: "unrecognized shape"}
}

// ClassifyError turns a Submit failure into an Outcome. It reports false for
// errors that are not part of the outcome set, such as configuration errors.
func ClassifyError(err error) (Outcome, bool) {
	var te *TransportError
	if errors.As(err, &te) {
		detail := strings.TrimSpace(te.Body)
		if te.Err != nil {
			detail = te.Err.Error()
		}
		return Outcome{Kind: KindTransportError, StatusCode: te.StatusCode, Detail: detail}, true
	}
	if errors.Is(err, ErrMalformedBody) {
		return Outcome{Kind: KindMalformedResponse, Reason: MalformedUnrecognizedShape, Detail: err.Error()}, true
	}
	return Outcome{}, false
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case json.Number:
		return t.String() != "0"
	case []interface{}:
		return len(t) > 0
	case map[string]interface{}:
		return len(t) > 0
	default:
		return true
	}
}

func statusCode(v interface{}) (int, bool) {
	switch t := v.(type) {
	case float64:
		if t != float64(int(t)) {
			return 0, false
		}
		return int(t), true
	case json.Number:
		n, err := strconv.Atoi(t.String())
		return n, err == nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		return n, err == nil
	default:
		return 0, false
	}
}

func describe(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(data)
	}
}
