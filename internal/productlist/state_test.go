package productlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadingState_Equality(t *testing.T) {
	assert.Equal(t, Idle, Idle)
	assert.NotEqual(t, Idle, Loading)
	assert.NotEqual(t, Loading, Success)

	assert.Equal(t, ErrorState("boom"), ErrorState("boom"))
	assert.NotEqual(t, ErrorState("boom"), ErrorState("bang"))
	assert.NotEqual(t, ErrorState(""), Success)
}

func TestLoadingState_Accessors(t *testing.T) {
	e := ErrorState("Server error (500). Please try again.")

	assert.True(t, e.IsError())
	assert.Equal(t, "Server error (500). Please try again.", e.Message())
	assert.False(t, Success.IsError())
	assert.Empty(t, Success.Message())

	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "error(boom)", ErrorState("boom").String())
}
