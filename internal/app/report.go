package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xxxsen/alloyctl/internal/alloy"
)

const (
	msgApproved     = "Congratulations! You are approved."
	msgManualReview = "Your application is under review. Please wait for updates."
	msgDenied       = "Unfortunately, we cannot approve your application at this time."
	msgNoSummary    = "API response does not contain 'summary'. Checking for possible issues..."
	msgNoResponse   = "Error: No response received."
	msgBadStatus    = "API returned a non-successful status. Please check credentials or request format."
	msgSchema       = "The response seems to be listing required/optional fields instead of an evaluation result."
	msgSchemaCause  = "Possible Cause: The API might require a specific workflow ID."
	msgUnknownShape = "Unknown API response structure. Please review the full response above."
)

// WriteReport prints the operator-facing interpretation of an evaluation.
// resp is the decoded body when one was received and may be nil.
func WriteReport(w io.Writer, resp alloy.Response, o alloy.Outcome) error {
	var b strings.Builder
	if resp != nil {
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("format api response: %w", err)
		}
		fmt.Fprintf(&b, "\nFull API Response:\n%s\n\n", data)
		if _, ok := resp["summary"]; !ok {
			b.WriteString(msgNoSummary + "\n")
		}
	}

	switch o.Kind {
	case alloy.KindApproved:
		b.WriteString(msgApproved + "\n")
	case alloy.KindManualReview:
		b.WriteString(msgManualReview + "\n")
	case alloy.KindDenied:
		b.WriteString(msgDenied + "\n")
	case alloy.KindUnknown:
		fmt.Fprintf(&b, "Unexpected response outcome: %s\n", o.Raw)
	case alloy.KindTransportError:
		writeTransport(&b, resp, o)
	case alloy.KindMalformedResponse:
		writeMalformed(&b, resp, o)
	default:
		fmt.Fprintf(&b, "Unhandled outcome %s\n", o.Kind)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeTransport(b *strings.Builder, resp alloy.Response, o alloy.Outcome) {
	switch {
	case resp != nil:
		fmt.Fprintf(b, "API Status Code: %s\n", strings.TrimPrefix(o.Detail, "status_code "))
		b.WriteString(msgBadStatus + "\n")
	case o.StatusCode > 0 && o.Detail != "":
		fmt.Fprintf(b, "Submission failed: status %d: %s\n", o.StatusCode, o.Detail)
	case o.StatusCode > 0:
		fmt.Fprintf(b, "Submission failed: status %d\n", o.StatusCode)
	case o.Detail != "" && o.Detail != "no response received":
		fmt.Fprintf(b, "Submission failed: %s\n", o.Detail)
	default:
		b.WriteString(msgNoResponse + "\n")
	}
}

func writeMalformed(b *strings.Builder, resp alloy.Response, o alloy.Outcome) {
	switch o.Reason {
	case alloy.MalformedErrorReported:
		fmt.Fprintf(b, "API Error: %s\n", o.Detail)
	case alloy.MalformedSchemaResponse:
		b.WriteString(msgSchema + "\n")
		b.WriteString(msgSchemaCause + "\n")
	default:
		if resp == nil {
			fmt.Fprintf(b, "Unreadable API response: %s\n", o.Detail)
			return
		}
		if o.StatusCode > 0 {
			fmt.Fprintf(b, "API Status Code: %d\n", o.StatusCode)
		}
		b.WriteString(msgUnknownShape + "\n")
	}
}
