package alloy

import (
	"errors"
	"fmt"

	"github.com/xxxsen/alloyctl/internal/applicant"
)

// EvaluationRequest is the body posted to the evaluations endpoint.
type EvaluationRequest struct {
	Workflow   string            `json:"workflow"`
	Attributes map[string]string `json:"attributes"`
}

// NewEvaluationRequest wraps a complete applicant record for workflow.
func NewEvaluationRequest(workflow string, rec *applicant.Record) (*EvaluationRequest, error) {
	if rec == nil {
		return nil, errors.New("evaluation request requires an applicant record")
	}
	if workflow == "" {
		return nil, errors.New("evaluation request requires a workflow")
	}
	return &EvaluationRequest{
		Workflow:   workflow,
		Attributes: rec.Attributes(),
	}, nil
}

// Response is a decoded JSON object returned by the evaluations endpoint.
// The decision shape varies by workflow, so it is kept untyped and read by Classify.
type Response map[string]interface{}

// ParametersResponse describes the attributes the evaluations endpoint expects.
// Entries are usually attribute names but some workflows return objects.
type ParametersResponse struct {
	Required []interface{} `json:"required"`
	Optional []interface{} `json:"optional"`
}

// RequiredNames returns the required attribute names.
func (p *ParametersResponse) RequiredNames() []string { return parameterNames(p.Required) }

// OptionalNames returns the optional attribute names.
func (p *ParametersResponse) OptionalNames() []string { return parameterNames(p.Optional) }

func parameterNames(items []interface{}) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case map[string]interface{}:
			if key, ok := v["key"].(string); ok {
				out = append(out, key)
				continue
			}
			if name, ok := v["name"].(string); ok {
				out = append(out, name)
				continue
			}
			out = append(out, fmt.Sprint(v))
		default:
			out = append(out, fmt.Sprint(v))
		}
	}
	return out
}
