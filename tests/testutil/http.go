package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// HTTPTestCase describes one request run through a middleware chain.
// ErrorCode, when set, is the API error code the envelope must carry.
type HTTPTestCase struct {
	Name           string
	Method         string
	Path           string
	Body           any
	Headers        map[string]string
	Setup          func(tc *TestContext)
	ExpectedStatus int
	ErrorCode      string
	Validate       func(t *testing.T, tc *TestContext)
}

// RunHTTPTestCases runs every case as a subtest against the same chain.
func RunHTTPTestCases(t *testing.T, cases []HTTPTestCase, chain ...gin.HandlerFunc) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			RunHTTPTestCase(t, tc, chain...)
		})
	}
}

// RunHTTPTestCase serves one request through chain. Setup runs first, inside
// the request context, so it can stand in for upstream middleware such as
// the JWT or cart session ones.
func RunHTTPTestCase(t *testing.T, tc HTTPTestCase, chain ...gin.HandlerFunc) *TestContext {
	t.Helper()

	method := tc.Method
	if method == "" {
		method = http.MethodGet
	}
	path := tc.Path
	if path == "" {
		path = "/"
	}

	var body io.Reader
	if tc.Body != nil {
		body = ToJSONReader(t, tc.Body)
	}
	req := httptest.NewRequest(method, path, body)
	if tc.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range tc.Headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	_, engine := gin.CreateTestContext(w)
	result := &TestContext{Recorder: w, Engine: engine}

	handlers := []gin.HandlerFunc{func(c *gin.Context) {
		result.Context = c
		if tc.Setup != nil {
			tc.Setup(result)
		}
		c.Next()
	}}
	handlers = append(handlers, chain...)
	engine.Handle(method, req.URL.Path, handlers...)
	engine.ServeHTTP(w, req)

	if tc.ExpectedStatus != 0 {
		assert.Equal(t, tc.ExpectedStatus, w.Code, "Unexpected status code")
	}
	if tc.ErrorCode != "" {
		AssertErrorResponse(t, result, tc.ErrorCode)
	}
	if tc.Validate != nil {
		tc.Validate(t, result)
	}
	return result
}

// Respond is a terminal handler that answers 200 with an empty success envelope
func Respond(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// JSONResponse parses the response body as JSON.
func JSONResponse(t *testing.T, tc *TestContext) map[string]any {
	t.Helper()

	var result map[string]any
	require.NoError(t, json.Unmarshal(tc.ResponseBody(), &result), "Failed to parse JSON response")
	return result
}

// AssertSuccessResponse asserts the envelope reports success.
func AssertSuccessResponse(t *testing.T, tc *TestContext) {
	t.Helper()

	resp := JSONResponse(t, tc)
	assert.Equal(t, true, resp["success"], "Expected success to be true")
	assert.Nil(t, resp["error"], "Expected no error")
}

// AssertErrorResponse asserts the envelope carries the given error code.
func AssertErrorResponse(t *testing.T, tc *TestContext, expectedCode string) {
	t.Helper()

	resp := JSONResponse(t, tc)
	assert.Equal(t, false, resp["success"], "Expected success to be false")

	errMap, ok := resp["error"].(map[string]any)
	require.True(t, ok, "Expected error object in response")
	assert.Equal(t, expectedCode, errMap["code"], "Unexpected error code")
}

// ToJSONReader converts a value to a JSON io.Reader.
func ToJSONReader(t *testing.T, v any) io.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err, "Failed to marshal to JSON")
	return bytes.NewReader(data)
}
