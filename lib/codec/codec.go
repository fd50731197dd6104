// Copyright 2026 The Gemstone Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the project-standard CBOR configuration.
//
// On-disk state files use CBOR rather than JSON so that the same
// logical content always produces identical bytes: the encoder uses
// Core Deterministic Encoding (RFC 8949 §4.2) with sorted map keys and
// smallest-width integers. The decoder ignores unknown fields so old
// binaries can read state written by newer ones.
package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Map keys are always strings here. Decoding into an any
		// target must produce map[string]any, not the CBOR default
		// map[any]any, so the result stays usable by ordinary Go
		// code.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v deterministically.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}
