// pkg/interrupt/interrupt_test.go

package interrupt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTripIsSticky(t *testing.T) {
	c := NewController()
	defer c.Stop()

	assert.False(t, c.Interrupted())
	assert.NoError(t, c.Err())

	c.Trip()
	assert.True(t, c.Interrupted())
	assert.ErrorIs(t, c.Err(), ErrInterrupted)

	c.Trip()
	assert.True(t, c.Interrupted())
}

func TestStopIsIdempotent(t *testing.T) {
	c := NewController()
	c.Stop()
	c.Stop()
}

func TestTempRegistration(t *testing.T) {
	c := NewController()
	defer c.Stop()

	c.RegisterTemp("/tmp/x")
	assert.Equal(t, "/tmp/x", c.tempPath.Load().(string))

	c.ClearTemp()
	assert.Equal(t, "", c.tempPath.Load().(string))
}
