package hid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hidremap/hidremap/internal/hid"
)

const ioregOutput = `+-o Root  <class IORegistryEntry, id 0x100000100, retain 22>
  +-o USB Keyboard@14200000  <class IOUSBHostDevice, id 0x10000a3c2, registered, matched, active, busy 0 (4 ms), retain 28>
    {
      "idProduct" = 0x263
      "iManufacturer" = 0x1
      "bDeviceClass" = 0x0
      "idVendor" = 0x5ac
      "bcdDevice" = 0x223
    }
`

func TestLookupUSB(t *testing.T) {
	runner := &fakeRunner{out: ioregOutput}
	device, err := newTool(runner).LookupUSB("USB Keyboard")
	assert.NoError(t, err)
	assert.Equal(t, &hid.Device{VendorID: 0x5ac, ProductID: 0x263, Name: "USB Keyboard"}, device)
	assert.Equal(t, [][]string{{"ioreg", "-p", "IOUSB", "-x", "-n", "USB Keyboard"}}, runner.calls)
}

func TestLookupUSBMissingIDs(t *testing.T) {
	runner := &fakeRunner{out: `"idVendor" = 0x5ac`}
	_, err := newTool(runner).LookupUSB("USB Keyboard")
	assert.ErrorContains(t, err, "no `idProduct` in ioreg output for `USB Keyboard`")

	runner = &fakeRunner{out: "no ids at all"}
	_, err = newTool(runner).LookupUSB("USB Keyboard")
	assert.ErrorContains(t, err, "no `idVendor` in ioreg output for `USB Keyboard`")
}

func TestLookupUSBRunnerError(t *testing.T) {
	runner := &fakeRunner{err: assert.AnError}
	_, err := newTool(runner).LookupUSB("USB Keyboard")
	assert.ErrorIs(t, err, assert.AnError)
}
