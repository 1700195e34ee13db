package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/xxxsen/alloyctl/internal/alloy"
	"github.com/xxxsen/alloyctl/internal/config"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBase = "https://alloy.test/v1"

var applicantInput = strings.Join([]string{
	"Jane", "Doe", "jane.doe@example.com", "2125550100",
	"1 Main St", "", "New York", "ny", "10001", "us",
	"123456789", "1990-01-31",
}, "\n") + "\n"

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("WORKFLOW_TOKEN", "token")
	t.Setenv("WORKFLOW_SECRET", "secret")
	t.Setenv("ALLOY_BASE_URL", testBase)
	t.Setenv("ALLOY_WORKFLOW", "kyc_workflow")
	t.Setenv("ALLOY_TIMEOUT", "")
	os.Unsetenv("ALLOY_TIMEOUT")
}

func TestEvaluateApproved(t *testing.T) {
	setupEnv(t)
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	var attrs map[string]string
	httpmock.RegisterResponder(http.MethodPost, testBase+"/evaluations/",
		func(req *http.Request) (*http.Response, error) {
			data, _ := io.ReadAll(req.Body)
			var payload alloy.EvaluationRequest
			if err := json.Unmarshal(data, &payload); err != nil {
				return nil, err
			}
			attrs = payload.Attributes
			return httpmock.NewStringResponse(http.StatusOK, `{"summary":{"outcome":"Approved"}}`), nil
		})

	var out bytes.Buffer
	cmd := newEvaluateCommand(strings.NewReader(applicantInput), &out)
	require.NoError(t, Execute(context.Background(), cmd))

	require.NotNil(t, cmd.Outcome())
	assert.Equal(t, alloy.KindApproved, cmd.Outcome().Kind)
	assert.Contains(t, out.String(), "Welcome to Alloy API Integration")
	assert.Contains(t, out.String(), msgApproved)
	assert.Equal(t, "NY", attrs["address_state"])
	assert.Equal(t, "US", attrs["address_country_code"])
	assert.Equal(t, "", attrs["address_line_2"])
	assert.Len(t, attrs, 12)
}

func TestEvaluateSchemaResponse(t *testing.T) {
	setupEnv(t)
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodPost, testBase+"/evaluations/",
		httpmock.NewStringResponder(http.StatusOK, `{"required":["ssn"],"optional":[]}`))

	var out bytes.Buffer
	cmd := newEvaluateCommand(strings.NewReader(applicantInput), &out)
	require.NoError(t, Execute(context.Background(), cmd))
	assert.Equal(t, alloy.KindMalformedResponse, cmd.Outcome().Kind)
	assert.Equal(t, alloy.MalformedSchemaResponse, cmd.Outcome().Reason)
	assert.Contains(t, out.String(), msgSchemaCause)
}

func TestEvaluateTransportFailure(t *testing.T) {
	setupEnv(t)
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodPost, testBase+"/evaluations/",
		httpmock.NewStringResponder(http.StatusUnauthorized, "invalid credentials"))

	var out bytes.Buffer
	cmd := newEvaluateCommand(strings.NewReader(applicantInput), &out)
	err := Execute(context.Background(), cmd)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSubmissionFailed))
	assert.Equal(t, alloy.KindTransportError, cmd.Outcome().Kind)
	assert.Equal(t, 401, cmd.Outcome().StatusCode)
	assert.Contains(t, out.String(), "Submission failed: status 401: invalid credentials")
}

func TestEvaluateMissingCredentials(t *testing.T) {
	setupEnv(t)
	t.Setenv("WORKFLOW_SECRET", "")
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	var out bytes.Buffer
	cmd := newEvaluateCommand(strings.NewReader(applicantInput), &out)
	err := Execute(context.Background(), cmd)
	var cfgErr *config.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, out.String(), "WORKFLOW_SECRET must be set")
	assert.NotContains(t, out.String(), "Enter applicant details:")
	assert.Nil(t, cmd.Outcome())
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}

func TestEvaluateInputEndsEarly(t *testing.T) {
	setupEnv(t)
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	var out bytes.Buffer
	cmd := newEvaluateCommand(strings.NewReader("Jane\n"), &out)
	err := Execute(context.Background(), cmd)
	require.Error(t, err)
	assert.True(t, errors.Is(err, io.EOF))
	assert.Nil(t, cmd.Outcome())
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}
