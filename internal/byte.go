package internal

import "encoding/hex"

// BytesToHex renders a raw digest as a lowercase hex string.
func BytesToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// HexToBytes decodes a lowercase hex string back into raw bytes.
func HexToBytes(s string) ([]byte, error) {
	return hex.DecodeString(s)
}
