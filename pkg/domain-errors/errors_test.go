package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesSentinel(t *testing.T) {
	sentinel := errors.New("not found")
	wrapped := Wrap(fmt.Errorf("load resident: %w", sentinel), CodeNotFound, "resident not found")

	require.Error(t, wrapped)
	assert.True(t, errors.Is(wrapped, sentinel))
	assert.True(t, HasCode(wrapped, CodeNotFound))
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, CodeInternal, "should vanish"))
}

func TestGetCodeDefaultsToInternal(t *testing.T) {
	assert.Equal(t, CodeInternal, GetCode(errors.New("plain")))
	assert.Equal(t, CodeUnavailable, GetCode(New(CodeUnavailable, "lock timeout")))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "bad dose", Message(New(CodeInvalidInput, "bad dose")))
	assert.Equal(t, "plain", Message(errors.New("plain")))
}
