// Package registry links the built-in schema sets into a binary.
package registry

import (
	_ "github.com/Alia5/flatgen/schemas/conformance" // Register conformance set
	_ "github.com/Alia5/flatgen/schemas/device"      // Register device message set
)
