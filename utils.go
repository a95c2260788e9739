package tnda

import (
	"github.com/shimmeringbee/tnda/ha"
)

func isCapabilityInSlice(haystack []ha.Capability, needle ha.Capability) bool {
	for _, straw := range haystack {
		if straw == needle {
			return true
		}
	}

	return false
}
