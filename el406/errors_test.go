package el406

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidityMessageKnownCode(t *testing.T) {
	msg := ValidityMessage(0x0210)
	assert.Equal(t, "dispense aborted, pressure out of range", msg)
}

func TestValidityMessageUnknownCode(t *testing.T) {
	msg := ValidityMessage(0xDEAD)
	assert.Equal(t, "unknown error code 0xDEAD", msg)
}

func TestDeviceErrorMessage(t *testing.T) {
	err := &DeviceError{Code: 0x0210}
	assert.Contains(t, err.Error(), "0x0210")
	assert.Contains(t, err.Error(), "pressure out of range")
}
