package errorbank

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err      *AppError
		status   int
		grpcCode codes.Code
	}{
		{Validation("bad quantity"), http.StatusBadRequest, codes.InvalidArgument},
		{NotFound("table not found"), http.StatusNotFound, codes.NotFound},
		{Conflict("order already settled"), http.StatusConflict, codes.AlreadyExists},
		{Internal("boom"), http.StatusInternalServerError, codes.Internal},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Kind()), func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.StatusCode())
			assert.Equal(t, tt.grpcCode, tt.err.GRPCCode())
		})
	}
}

func TestFrom(t *testing.T) {
	appErr := NotFound("missing")
	assert.Same(t, appErr, From(appErr))

	wrapped := From(errors.New("driver exploded"))
	assert.Equal(t, KindInternal, wrapped.Kind())
	assert.ErrorContains(t, wrapped, "driver exploded")

	assert.Nil(t, From(nil))
}

func TestDetailsAndCause(t *testing.T) {
	cause := errors.New("no rows")
	err := Validation("quantity must be positive",
		WithDetail("quantity", -1),
		WithCause(cause),
	)

	assert.Equal(t, -1, err.Details()["quantity"])
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "quantity must be positive: no rows", err.Error())
}
