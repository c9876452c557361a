package export

import "errors"

var ErrExportInFlight = errors.New("export_in_flight")
