package hid

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Device is one entry from the hidutil device listing.
type Device struct {
	VendorID  uint64
	ProductID uint64
	Name      string
	Transport string
	Class     string
}

// column is one header token of a listing section together with the byte
// offset it starts at. Row values are sliced between consecutive offsets.
type column struct {
	name  string
	start int
}

// parseListOutput parses the text printed by `hidutil list`. The listing is
// split into "Services:" and "Devices:" sections, each with its own column
// header line; only Device rows with a present Product are kept. A logical
// row may wrap across physical lines when hidutil breaks a long product name,
// so a row extends until it at least reaches the start offset of the final
// column. The result is sorted and deduplicated.
func parseListOutput(out string) ([]Device, error) {
	var (
		devices    []Device
		cols       []column
		inDevices  bool
		sawDevices bool
	)

	pos := 0
	for pos < len(out) {
		lineEnd := len(out)
		if i := strings.IndexByte(out[pos:], '\n'); i >= 0 {
			lineEnd = pos + i
		}
		line := out[pos:lineEnd]

		switch {
		case strings.TrimSpace(line) == "":
			pos = lineEnd + 1

		case line == "Services:" || line == "Devices:":
			inDevices = line == "Devices:"
			sawDevices = sawDevices || inDevices
			pos = lineEnd + 1
			if pos >= len(out) {
				return nil, errors.New("expected header")
			}
			hEnd := len(out)
			if i := strings.IndexByte(out[pos:], '\n'); i >= 0 {
				hEnd = pos + i
			}
			cols = splitColumns(out[pos:hEnd])
			if len(cols) == 0 {
				return nil, errors.New("expected header")
			}
			pos = hEnd + 1

		default:
			if cols == nil {
				return nil, errors.New("expected header")
			}
			// a wrapped row is shorter than the final column's start;
			// pull in following lines until it is not
			rowEnd := lineEnd
			for rowEnd-pos < cols[len(cols)-1].start && rowEnd < len(out) {
				if i := strings.IndexByte(out[rowEnd+1:], '\n'); i >= 0 {
					rowEnd = rowEnd + 1 + i
				} else {
					rowEnd = len(out)
				}
			}
			if inDevices {
				d, ok, err := parseDeviceRow(cols, out[pos:rowEnd])
				if err != nil {
					return nil, err
				}
				if ok {
					devices = append(devices, d)
				}
			}
			pos = rowEnd + 1
		}
	}

	if !sawDevices {
		return nil, errors.New("expected `Devices:` section")
	}

	slices.SortFunc(devices, compareDevices)
	return slices.Compact(devices), nil
}

func parseDeviceRow(cols []column, row string) (Device, bool, error) {
	fields := make(map[string]string, len(cols))
	for i, c := range cols {
		start := min(c.start, len(row))
		end := len(row)
		if i+1 < len(cols) {
			end = min(cols[i+1].start, len(row))
		}
		fields[c.name] = strings.TrimSpace(row[start:end])
	}

	name, ok := fields["Product"]
	if !ok {
		return Device{}, false, errors.New("missing `Product` column")
	}
	if name == "(null)" {
		return Device{}, false, nil
	}
	name = strings.ReplaceAll(name, "\n", " ")

	vendorField, ok := fields["VendorID"]
	if !ok {
		return Device{}, false, errors.New("missing `VendorID` column")
	}
	vendorID, err := ParseNumber(vendorField)
	if err != nil {
		return Device{}, false, fmt.Errorf("bad VendorID: %w", err)
	}
	productField, ok := fields["ProductID"]
	if !ok {
		return Device{}, false, errors.New("missing `ProductID` column")
	}
	productID, err := ParseNumber(productField)
	if err != nil {
		return Device{}, false, fmt.Errorf("bad ProductID: %w", err)
	}

	d := Device{VendorID: vendorID, ProductID: productID, Name: name}
	if t := fields["Transport"]; t != "" && t != "(null)" {
		d.Transport = t
	}
	if c := fields["Class"]; c != "" && c != "(null)" {
		d.Class = c
	}
	return d, true, nil
}

func compareDevices(a, b Device) int {
	if c := cmp.Compare(a.VendorID, b.VendorID); c != 0 {
		return c
	}
	if c := cmp.Compare(a.ProductID, b.ProductID); c != 0 {
		return c
	}
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	if c := strings.Compare(a.Transport, b.Transport); c != 0 {
		return c
	}
	return strings.Compare(a.Class, b.Class)
}

func splitColumns(header string) []column {
	var cols []column
	i := 0
	for i < len(header) {
		if header[i] == ' ' || header[i] == '\t' {
			i++
			continue
		}
		start := i
		for i < len(header) && header[i] != ' ' && header[i] != '\t' {
			i++
		}
		cols = append(cols, column{name: header[start:i], start: start})
	}
	return cols
}
