package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := DatabaseError("ping failed", stderrors.New("connection refused"))
	wrapped := Wrap(base, "extract loan_payments")

	assert.Equal(t, CodeDatabaseError, GetCode(wrapped))
	assert.True(t, IsAppError(wrapped))
	assert.Equal(t, "extract loan_payments: ping failed: connection refused", wrapped.Error())
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestGetCodeForForeignErrors(t *testing.T) {
	assert.Equal(t, CodeInternalError, GetCode(stderrors.New("boom")))
	assert.Equal(t, CodeNotFound, GetCode(fmt.Errorf("lookup: %w", NotFound("table"))))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NotFound("column"), http.StatusNotFound},
		{InvalidInput("bad threshold"), http.StatusBadRequest},
		{DatabaseError("down", nil), http.StatusBadGateway},
		{ExportFailed("out.xlsx", stderrors.New("disk full")), http.StatusInternalServerError},
		{WithCode(CodeInvalidInput, stderrors.New("bad")), http.StatusBadRequest},
	}

	for _, test := range tests {
		assert.Equal(t, test.want, HTTPStatus(test.err), test.err.Error())
	}
}
