package filters

import (
	"bytes"
	"fmt"
	"io"

	"github.com/hhrutter/lzw"
)

// LZWDecode decompresses LZW compressed data.
// PDF uses the TIFF variant of LZW: codes are packed most significant bit
// first, and when EarlyChange is 1 (the default) the code width grows one
// code earlier than in the original algorithm. Like Flate, the decompressed
// output may be passed through a predictor.
func LZWDecode(data []byte, params Params) ([]byte, error) {
	earlyChange := getIntParam(params, "EarlyChange", 1)

	reader := lzw.NewReader(bytes.NewReader(data), earlyChange == 1)
	defer reader.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return nil, fmt.Errorf("lzw decompression failed: %w", err)
	}

	decompressed := buf.Bytes()

	// Apply predictor if specified
	if params != nil {
		if predictorObj, ok := params["Predictor"]; ok && predictorObj != nil {
			predictor := getIntParam(params, "Predictor", 1)
			if predictor != 1 {
				var err error
				decompressed, err = applyPredictor(decompressed, predictor, params)
				if err != nil {
					return nil, fmt.Errorf("predictor failed: %w", err)
				}
			}
		}
	}

	return decompressed, nil
}
