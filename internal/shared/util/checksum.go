package util

import (
	"fmt"
	"hash/fnv"
)

// Checksum returns a short, deterministic, non-cryptographic digest of data
// rendered as 8 uppercase hex digits. It provides tamper-evidence for casual
// verification of evidence payloads, not forensic-grade integrity.
func Checksum(data string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(data))
	return fmt.Sprintf("%08X", h.Sum32())
}
