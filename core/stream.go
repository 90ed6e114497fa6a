package core

import (
	"fmt"

	"github.com/tsawler/carousel/internal/filters"
)

// Decoded returns the decoded stream payload, memoizing the result on the
// stream. The first call runs the filter chain; later calls are O(1).
func (s *Stream) Decoded() ([]byte, error) {
	if s.decoded != nil {
		return s.decoded, nil
	}
	data, err := s.Decode()
	if err != nil {
		return nil, err
	}
	s.decoded = data
	return data, nil
}

// Decode runs the stream's filter chain over the raw payload and returns
// the decoded bytes. An in-memory stream names its filters under Filter
// and DecodeParms; a spilled stream was rewritten by the parser to the
// external variants FFilter and FDecodeParms, and its payload is read back
// from scratch storage. Filter chains apply left to right.
func (s *Stream) Decode() ([]byte, error) {
	data, err := s.Raw()
	if err != nil {
		return nil, err
	}

	filterObj := s.Dict.Get("Filter")
	paramsObj := s.Dict.Get("DecodeParms")
	if filterObj == nil && s.Spilled() {
		filterObj = s.Dict.Get("FFilter")
		paramsObj = s.Dict.Get("FDecodeParms")
	}
	if filterObj == nil {
		// No filter: the payload is already plain.
		return data, nil
	}

	// Single filter.
	if filterName, ok := filterObj.(Name); ok {
		return decodeWithFilter(data, string(filterName), paramsObjToDict(paramsObj))
	}

	// Filter chain.
	if filterArray, ok := filterObj.(Array); ok {
		for i, filter := range filterArray {
			filterName, ok := filter.(Name)
			if !ok {
				return nil, fmt.Errorf("filter %d is not a name: %T", i, filter)
			}

			var params Dict
			if paramsArray, ok := paramsObj.(Array); ok {
				if i < len(paramsArray) {
					params = paramsObjToDict(paramsArray[i])
				}
			} else {
				// Single params applies to every filter in the chain.
				params = paramsObjToDict(paramsObj)
			}

			var err error
			data, err = decodeWithFilter(data, string(filterName), params)
			if err != nil {
				return nil, fmt.Errorf("filter %d (%s) failed: %w", i, filterName, err)
			}
		}
		return data, nil
	}

	return nil, fmt.Errorf("invalid Filter type: %T", filterObj)
}

// decodeWithFilter applies a single filter to data. filterName is a PDF
// filter name or its abbreviated form ("FlateDecode", "Fl", ...).
func decodeWithFilter(data []byte, filterName string, params Dict) ([]byte, error) {
	switch filterName {
	case "FlateDecode", "Fl":
		return filters.FlateDecode(data, dictToParams(params))

	case "LZWDecode", "LZW":
		return filters.LZWDecode(data, dictToParams(params))

	case "ASCIIHexDecode", "AHx":
		return filters.ASCIIHexDecode(data)

	case "ASCII85Decode", "A85":
		return filters.ASCII85Decode(data)

	case "RunLengthDecode", "RL":
		return filters.RunLengthDecode(data)

	case "CCITTFaxDecode", "CCF":
		return filters.CCITTFaxDecode(data, dictToParams(params))

	case "DCTDecode", "DCT":
		// JPEG: handed to the consumer still compressed.
		return data, nil

	case "JPXDecode":
		// JPEG2000: same.
		return data, nil

	case "JBIG2Decode":
		return nil, fmt.Errorf("JBIG2Decode not supported")

	case "Crypt":
		return nil, fmt.Errorf("Crypt filter not supported")

	default:
		return nil, fmt.Errorf("unknown filter: %s", filterName)
	}
}

// paramsObjToDict converts a DecodeParms object to a Dict.
// Returns nil if the object is nil, Null, or not a Dict.
func paramsObjToDict(obj Object) Dict {
	if dict, ok := obj.(Dict); ok {
		return dict
	}
	return nil
}

// dictToParams converts a Dict to filters.Params, translating COS values
// to Go primitives (Int->int, Real->float64, Bool->bool, etc.).
func dictToParams(dict Dict) filters.Params {
	if dict == nil {
		return nil
	}

	params := make(filters.Params)
	for k, v := range dict {
		switch obj := v.(type) {
		case Int:
			params[k] = int(obj)
		case Real:
			params[k] = float64(obj)
		case Bool:
			params[k] = bool(obj)
		case String:
			params[k] = string(obj)
		case Name:
			params[k] = string(obj)
		default:
			params[k] = v
		}
	}
	return params
}
