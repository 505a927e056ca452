package hid

import (
	"fmt"
	"regexp"
	"strconv"
)

var ioregIDPattern = regexp.MustCompile(`"(idProduct|idVendor)" = 0x([[:alnum:]]+)`)

// LookupUSB finds a USB device by its registry name using
// `ioreg -p IOUSB -x -n NAME`. Unlike List, this asks the registry directly
// and works for devices hidutil reports with a different product string.
func (t *Tool) LookupUSB(name string) (*Device, error) {
	out, err := t.runner.Output("ioreg", "-p", "IOUSB", "-x", "-n", name)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]uint64, 2)
	for _, m := range ioregIDPattern.FindAllStringSubmatch(out, -1) {
		v, err := strconv.ParseUint(m[2], 16, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse `%s` as hexadecimal", m[2])
		}
		ids[m[1]] = v
	}

	vendorID, ok := ids["idVendor"]
	if !ok {
		return nil, fmt.Errorf("no `idVendor` in ioreg output for `%s`", name)
	}
	productID, ok := ids["idProduct"]
	if !ok {
		return nil, fmt.Errorf("no `idProduct` in ioreg output for `%s`", name)
	}
	t.logger.Debug("resolved device via ioreg", "name", name, "vendor", vendorID, "product", productID)
	return &Device{VendorID: vendorID, ProductID: productID, Name: name}, nil
}
