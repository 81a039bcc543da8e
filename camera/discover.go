package camera

import (
	"github.com/edaniels/golog"

	"go.viam.com/k4a"
)

// Discovered describes one attached device.
type Discovered struct {
	Index        uint32
	SerialNumber string
}

// Discover enumerates attached devices and reads their serial numbers.
// Devices that cannot be opened or read, for example those held by another
// process, are logged and skipped.
func Discover(logger golog.Logger) []Discovered {
	sdk, err := k4a.DefaultSDK()
	if err != nil {
		logger.Debugw("no sdk available for discovery", "error", err)
		return nil
	}
	return DiscoverWithSDK(sdk, logger)
}

// DiscoverWithSDK is Discover against a specific SDK.
func DiscoverWithSDK(sdk k4a.SDK, logger golog.Logger) []Discovered {
	count := sdk.DeviceGetInstalledCount()
	var found []Discovered
	for i := uint32(0); i < count; i++ {
		dev, err := k4a.OpenWithSDK(sdk, i)
		if err != nil {
			logger.Debugw("cannot open device, skipping", "index", i, "error", err)
			continue
		}
		serial, err := dev.SerialNumber()
		dev.Close()
		if err != nil {
			logger.Debugw("cannot read serial number, skipping", "index", i, "error", err)
			continue
		}
		found = append(found, Discovered{Index: i, SerialNumber: serial})
	}
	return found
}
