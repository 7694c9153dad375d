package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/haierkeys/trade-journal-service/pkg/code"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func respond(err error) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("trace_id", "trace-1")
	ErrorResponse(c, err)
	return w
}

func TestErrorResponse_Code(t *testing.T) {
	w := respond(code.ErrorJournalNotFound)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body AppError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 901, body.Code)
	assert.Equal(t, "NOT_FOUND", body.Class)
	assert.Equal(t, "trace-1", body.TraceID)
}

func TestErrorResponse_WrappedCode(t *testing.T) {
	w := respond(fmt.Errorf("wrap: %w", code.ErrorNotUserAuthToken))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestErrorResponse_InternalHidesDetails(t *testing.T) {
	w := respond(code.ErrorDBQuery.WithDetails("sql: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestErrorResponse_Unknown(t *testing.T) {
	w := respond(fmt.Errorf("boom"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body AppError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 500, body.Code)
}

func TestStatusForClass(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusForClass(code.ClassBadUserInput))
	assert.Equal(t, http.StatusConflict, StatusForClass(code.ClassConflict))
	assert.Equal(t, http.StatusInternalServerError, StatusForClass(code.ClassNone))
}
