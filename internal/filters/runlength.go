package filters

import (
	"bytes"
	"fmt"
)

// RunLengthDecode decodes run-length encoded data.
// A length byte of 0-127 copies the next length+1 bytes literally, a length
// byte of 129-255 repeats the following byte 257-length times, and 128 marks
// end of data.
func RunLengthDecode(data []byte) ([]byte, error) {
	var result bytes.Buffer

	i := 0
	for i < len(data) {
		length := data[i]
		if length == 0x80 {
			// EOD marker
			break
		}
		i++

		if length < 0x80 {
			count := int(length) + 1
			if i+count > len(data) {
				return nil, fmt.Errorf("literal run of %d bytes overruns data", count)
			}
			result.Write(data[i : i+count])
			i += count
			continue
		}

		if i >= len(data) {
			return nil, fmt.Errorf("repeat run is missing its byte")
		}
		count := 257 - int(length)
		for j := 0; j < count; j++ {
			result.WriteByte(data[i])
		}
		i++
	}

	return result.Bytes(), nil
}
