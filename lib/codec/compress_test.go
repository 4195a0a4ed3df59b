// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"
)

func TestCompressRoundtrip(t *testing.T) {
	data := []byte(strings.Repeat("torque wrench, 3/8in drive; ", 200))
	for _, compression := range []Compression{CompressionNone, CompressionZstd, CompressionLZ4} {
		t.Run(compression.String(), func(t *testing.T) {
			packed, err := Compress(compression, data)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			if compression != CompressionNone && len(packed) >= len(data) {
				t.Errorf("repetitive input did not shrink: %d >= %d", len(packed), len(data))
			}
			unpacked, err := Decompress(compression, packed)
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if !bytes.Equal(unpacked, data) {
				t.Error("roundtrip mismatch")
			}
		})
	}
}

func TestDecompressCorrupt(t *testing.T) {
	for _, compression := range []Compression{CompressionZstd, CompressionLZ4} {
		if _, err := Decompress(compression, []byte("not compressed at all")); err == nil {
			t.Errorf("%v accepted garbage", compression)
		}
	}
	if _, err := Compress(Compression(9), nil); err == nil {
		t.Error("unknown compression accepted")
	}
}

func TestCompressionForPath(t *testing.T) {
	tests := []struct {
		path string
		want Compression
	}{
		{"tools.cbor", CompressionNone},
		{"tools.cbor.zst", CompressionZstd},
		{"/var/lib/toolshed/tools.cbor.zstd", CompressionZstd},
		{"tools.cbor.lz4", CompressionLZ4},
		{"tools.cbor.zst.age", CompressionZstd},
		{"tools.age", CompressionNone},
	}
	for _, test := range tests {
		if got := CompressionForPath(test.path); got != test.want {
			t.Errorf("CompressionForPath(%q) = %v, want %v", test.path, got, test.want)
		}
	}
}

func TestCompressionExtension(t *testing.T) {
	for _, compression := range []Compression{CompressionNone, CompressionZstd, CompressionLZ4} {
		if got := CompressionForPath("x.cbor" + compression.Extension()); got != compression {
			t.Errorf("%v extension %q maps back to %v", compression, compression.Extension(), got)
		}
	}
}
