package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/hidremap/hidremap/internal/hid"
)

// Remap is the default command: list devices, apply or dump key mappings,
// or reset prior mappings.
type Remap struct {
	List  bool     `help:"List attached HID keyboard devices"`
	Reset bool     `help:"Clear all custom key mappings on the selected device(s)"`
	Dump  bool     `help:"Print the hidutil command instead of executing it"`
	Swap  []string `placeholder:"SRC:DST" help:"Remap SRC to DST and DST to SRC (repeatable)"`
	Map   []string `placeholder:"SRC:DST" help:"Remap SRC to DST (repeatable)"`

	Name      string `help:"Select the device with this exact product name"`
	VendorID  string `placeholder:"LIT" help:"Select devices with this vendor id (0x-prefixed hex or decimal)"`
	ProductID string `placeholder:"LIT" help:"Select devices with this product id (0x-prefixed hex or decimal)"`
	USB       string `name:"usb" placeholder:"NAME" help:"Select a device by its ioreg registry name"`
}

// Run is called by kong once flags are bound.
func (r *Remap) Run(logger *slog.Logger) error {
	return r.run(logger, hid.NewRunner(), os.Stdout)
}

func (r *Remap) run(logger *slog.Logger, runner hid.Runner, stdout io.Writer) error {
	tool := hid.New(runner, logger)

	if r.List {
		devices, err := tool.List()
		if err != nil {
			return err
		}
		return writeDeviceTable(stdout, devices)
	}

	if r.Reset && (len(r.Map) > 0 || len(r.Swap) > 0) {
		return errors.New("--reset conflicts with --map and --swap")
	}
	if r.USB != "" && (r.Name != "" || r.VendorID != "" || r.ProductID != "") {
		return errors.New("--usb conflicts with --name, --vendor-id and --product-id")
	}

	mappings, err := r.mappings()
	if err != nil {
		return err
	}
	if !r.Reset && len(mappings) == 0 {
		return errors.New("nothing to do; use --map, --swap, --reset or --list")
	}

	device, err := r.selectDevice(tool)
	if err != nil {
		return err
	}

	if r.Dump {
		s, err := tool.Dump(device, mappings)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, s)
		return nil
	}
	return tool.Apply(device, mappings)
}

func (r *Remap) mappings() ([]hid.Mapping, error) {
	var out []hid.Mapping
	for _, s := range r.Map {
		ms, err := hid.ParseMappings(s)
		if err != nil {
			return nil, fmt.Errorf("invalid --map %q: %w", s, err)
		}
		out = append(out, ms...)
	}
	for _, s := range r.Swap {
		ms, err := hid.ParseMappings(s)
		if err != nil {
			return nil, fmt.Errorf("invalid --swap %q: %w", s, err)
		}
		for _, m := range ms {
			out = append(out, m, m.Swapped())
		}
	}
	return out, nil
}

// selectDevice applies the device selection policy: each filter narrows the
// candidates and must leave at least one; a single survivor is selected; with
// no filters the mapping applies to all devices; several survivors after
// filtering is ambiguous and fails with the candidates listed.
func (r *Remap) selectDevice(tool *hid.Tool) (*hid.Device, error) {
	if r.USB != "" {
		return tool.LookupUSB(r.USB)
	}

	devices, err := tool.List()
	if err != nil {
		return nil, err
	}

	filtered := false
	if r.Name != "" {
		devices = keep(devices, func(d hid.Device) bool { return d.Name == r.Name })
		filtered = true
		if len(devices) == 0 {
			return nil, fmt.Errorf("no device matches name `%s`", r.Name)
		}
	}
	if r.VendorID != "" {
		id, err := hid.ParseNumber(r.VendorID)
		if err != nil {
			return nil, fmt.Errorf("invalid --vendor-id: %w", err)
		}
		devices = keep(devices, func(d hid.Device) bool { return d.VendorID == id })
		filtered = true
		if len(devices) == 0 {
			return nil, fmt.Errorf("no device matches vendor id %s", r.VendorID)
		}
	}
	if r.ProductID != "" {
		id, err := hid.ParseNumber(r.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid --product-id: %w", err)
		}
		devices = keep(devices, func(d hid.Device) bool { return d.ProductID == id })
		filtered = true
		if len(devices) == 0 {
			return nil, fmt.Errorf("no device matches product id %s", r.ProductID)
		}
	}

	switch {
	case len(devices) == 1:
		return &devices[0], nil
	case !filtered:
		// no constraint given; hidutil applies the mapping to every device
		return nil, nil
	default:
		return nil, fmt.Errorf("multiple devices match the given filters:\n%s", formatDeviceTable(devices))
	}
}

func keep(devices []hid.Device, pred func(hid.Device) bool) []hid.Device {
	out := devices[:0]
	for _, d := range devices {
		if pred(d) {
			out = append(out, d)
		}
	}
	return out
}

// writeDeviceTable prints an aligned table on terminals and tab-separated
// rows when stdout is redirected, so the listing stays scriptable.
func writeDeviceTable(w io.Writer, devices []hid.Device) error {
	if f, ok := w.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		for _, d := range devices {
			fmt.Fprintf(w, "0x%04x\t0x%04x\t%s\n", d.VendorID, d.ProductID, d.Name)
		}
		return nil
	}
	_, err := io.WriteString(w, formatDeviceTable(devices))
	return err
}

func formatDeviceTable(devices []hid.Device) string {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 2, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "Vendor ID\tProduct ID\tName")
	for _, d := range devices {
		fmt.Fprintf(tw, "0x%04x\t0x%04x\t%s\n", d.VendorID, d.ProductID, d.Name)
	}
	_ = tw.Flush()
	return b.String()
}
