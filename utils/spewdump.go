package utils

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
)

var spewConfig *spew.ConfigState

func init() {
	spewConfig = spew.NewDefaultConfig()
	spewConfig.DisableCapacities = true
	spewConfig.DisablePointerAddresses = true
}

// Dump prints a verbose structural dump of planned assemblies and other
// values, for -verbose debugging.
func Dump(a ...interface{}) {
	fmt.Println(spewConfig.Sdump(a...))
}
