// Package hid drives the macOS hidutil and ioreg tools to remap keyboard
// keys via the vendor-specific modifier mapping property.
package hid

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// Tool wraps the external hidutil/ioreg invocations behind a Runner.
type Tool struct {
	runner Runner
	logger *slog.Logger
}

func New(runner Runner, logger *slog.Logger) *Tool {
	return &Tool{runner: runner, logger: logger}
}

// List enumerates attached HID devices by running `hidutil list`.
func (t *Tool) List() ([]Device, error) {
	out, err := t.runner.Output("hidutil", "list")
	if err != nil {
		return nil, err
	}
	devices, err := parseListOutput(out)
	if err != nil {
		return nil, fmt.Errorf("failed to parse `hidutil list` output: %w", err)
	}
	t.logger.Debug("parsed device listing", "devices", len(devices))
	return devices, nil
}

// Apply sets the given mappings through `hidutil property`. A nil device
// applies to all devices. An empty mapping list clears prior mappings.
func (t *Tool) Apply(device *Device, mappings []Mapping) error {
	args, err := propertyArgs(device, mappings)
	if err != nil {
		return err
	}
	t.logger.Debug("invoking hidutil", "args", args)
	_, err = t.runner.Output("hidutil", args...)
	return err
}

// Reset removes all custom mappings from the device (or all devices).
func (t *Tool) Reset(device *Device) error {
	return t.Apply(device, nil)
}

// Dump renders the hidutil command Apply would run, without executing it.
// Both go through propertyArgs so the payloads can never diverge.
func (t *Tool) Dump(device *Device, mappings []Mapping) (string, error) {
	args, err := propertyArgs(device, mappings)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("hidutil " + args[0])
	for i := 1; i+1 < len(args); i += 2 {
		fmt.Fprintf(&b, " \\\n  %s '%s'", args[i], args[i+1])
	}
	return b.String(), nil
}

func propertyArgs(device *Device, mappings []Mapping) ([]string, error) {
	args := []string{"property"}
	if device != nil {
		args = append(args, "--matching", matchingPayload(device))
	}
	set, err := setPayload(mappings)
	if err != nil {
		return nil, err
	}
	return append(args, "--set", set), nil
}

// matchingCriteria is the JSON shape hidutil's --matching option takes.
type matchingCriteria struct {
	VendorID  uint64 `json:"VendorID"`
	ProductID uint64 `json:"ProductID"`
}

func matchingPayload(d *Device) string {
	b, _ := json.Marshal(matchingCriteria{VendorID: d.VendorID, ProductID: d.ProductID})
	return string(b)
}

// setPayload builds the UserKeyMapping JSON for hidutil's --set option.
// Values are written as hex literals (hidutil accepts them and they are
// what users paste around), so this is assembled by hand rather than with
// encoding/json.
func setPayload(mappings []Mapping) (string, error) {
	var b strings.Builder
	b.WriteString(`{"UserKeyMapping":[`)
	for i, m := range mappings {
		src, err := m.Src.Encoded()
		if err != nil {
			return "", err
		}
		dst, err := m.Dst.Encoded()
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, `{"HIDKeyboardModifierMappingSrc":0x%09x,"HIDKeyboardModifierMappingDst":0x%09x}`, src, dst)
	}
	b.WriteString("]}")
	return b.String(), nil
}
