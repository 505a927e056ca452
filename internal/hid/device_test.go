package hid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hidremap/hidremap/internal/hid"
)

func list(t *testing.T, out string) ([]hid.Device, error) {
	t.Helper()
	runner := &fakeRunner{out: out}
	devices, err := newTool(runner).List()
	if len(runner.calls) > 0 {
		assert.Equal(t, []string{"hidutil", "list"}, runner.calls[0])
	}
	return devices, err
}

func TestListEmpty(t *testing.T) {
	devices, err := list(t, "Devices:\nVendorID ProductID Product\n")
	assert.NoError(t, err)
	assert.Empty(t, devices)
}

func TestListServicesPreamble(t *testing.T) {
	out := `
Services:
VendorID ProductID LocationID UsagePage Usage RegistryID  Transport Class

Devices:
VendorID ProductID Product
`
	devices, err := list(t, out)
	assert.NoError(t, err)
	assert.Empty(t, devices)
}

func TestListBasic(t *testing.T) {
	out := `Devices:
VendorID ProductID Product Built-In
0x0      0x0       BTM     (null)
`
	devices, err := list(t, out)
	assert.NoError(t, err)
	assert.Equal(t, []hid.Device{{VendorID: 0, ProductID: 0, Name: "BTM"}}, devices)
}

func TestListNoTrailingNewline(t *testing.T) {
	out := "Devices:\n" +
		"VendorID ProductID Product Built-In\n" +
		"0x0      0x0       BTM     (null)"
	devices, err := list(t, out)
	assert.NoError(t, err)
	assert.Equal(t, []hid.Device{{VendorID: 0, ProductID: 0, Name: "BTM"}}, devices)
}

func TestListNullProductSkipped(t *testing.T) {
	out := `Devices:
VendorID ProductID Product             Built-In
0x0      0x0       (null)              (null)
0x5ac    0x8600    TouchBarUserDevice  1
`
	devices, err := list(t, out)
	assert.NoError(t, err)
	assert.Equal(t, []hid.Device{{VendorID: 0x5ac, ProductID: 0x8600, Name: "TouchBarUserDevice"}}, devices)
}

func TestListWideColumns(t *testing.T) {
	out := `Devices:
VendorID ProductID Product             Built-In
0x0      0x0       BTM                 (null)
0x5ac    0x8600    TouchBarUserDevice  1
`
	devices, err := list(t, out)
	assert.NoError(t, err)
	assert.Equal(t, []hid.Device{
		{VendorID: 0, ProductID: 0, Name: "BTM"},
		{VendorID: 0x5ac, ProductID: 0x8600, Name: "TouchBarUserDevice"},
	}, devices)
}

func TestListWrappedProductName(t *testing.T) {
	out := `Devices:
VendorID ProductID Product             Built-In
0x0      0x0       BTM                 (null)
0x5ac    0x8600    TouchBar
UserDevice    1
0x6ac    0x9600    Made Up             1
`
	devices, err := list(t, out)
	assert.NoError(t, err)
	assert.Equal(t, []hid.Device{
		{VendorID: 0, ProductID: 0, Name: "BTM"},
		{VendorID: 0x5ac, ProductID: 0x8600, Name: "TouchBar UserDevice"},
		{VendorID: 0x6ac, ProductID: 0x9600, Name: "Made Up"},
	}, devices)
}

func TestListServiceRowsIgnored(t *testing.T) {
	out := `Services:
VendorID ProductID Product
0x4c     0x269     BTM
Devices:
VendorID ProductID Product
0x5ac    0x263     Apple Internal Keyboard
`
	devices, err := list(t, out)
	assert.NoError(t, err)
	assert.Equal(t, []hid.Device{{VendorID: 0x5ac, ProductID: 0x263, Name: "Apple Internal Keyboard"}}, devices)
}

func TestListSortedAndDeduplicated(t *testing.T) {
	out := `Devices:
VendorID ProductID Product
0x5ac    0x8600    TouchBarUserDevice
0x4c     0x269     Magic Mouse
0x5ac    0x8600    TouchBarUserDevice
`
	devices, err := list(t, out)
	assert.NoError(t, err)
	assert.Equal(t, []hid.Device{
		{VendorID: 0x4c, ProductID: 0x269, Name: "Magic Mouse"},
		{VendorID: 0x5ac, ProductID: 0x8600, Name: "TouchBarUserDevice"},
	}, devices)
}

func TestListTransportAndClass(t *testing.T) {
	out := `Devices:
VendorID ProductID Product                  Transport Class
0x5ac    0x263     Apple Internal Keyboard  USB       Keyboard
0x4c     0x269     Magic Mouse              Bluetooth (null)
`
	devices, err := list(t, out)
	assert.NoError(t, err)
	assert.Equal(t, []hid.Device{
		{VendorID: 0x4c, ProductID: 0x269, Name: "Magic Mouse", Transport: "Bluetooth"},
		{VendorID: 0x5ac, ProductID: 0x263, Name: "Apple Internal Keyboard", Transport: "USB", Class: "Keyboard"},
	}, devices)
}

func TestListParseFailures(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want string
	}{
		{
			name: "no devices section",
			out:  "nothing to see here\n",
			want: "expected header",
		},
		{
			name: "section without column header",
			out:  "Devices:",
			want: "expected header",
		},
		{
			name: "missing product column",
			out:  "Devices:\nVendorID ProductID\n0x0      0x0\n",
			want: "missing `Product` column",
		},
		{
			name: "bad vendor id",
			out:  "Devices:\nVendorID ProductID Product\nzzz      0x0       BTM\n",
			want: "bad VendorID",
		},
		{
			name: "only services",
			out:  "Services:\nVendorID ProductID Product\n",
			want: "expected `Devices:` section",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := list(t, tt.out)
			assert.ErrorContains(t, err, "failed to parse `hidutil list` output")
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestListRunnerError(t *testing.T) {
	runner := &fakeRunner{err: assert.AnError}
	_, err := newTool(runner).List()
	assert.ErrorIs(t, err, assert.AnError)
}
