// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds toolshed's on-disk encoding: deterministic CBOR
// for inventory snapshots and the byte-level compression applied to
// them.
//
// JSON (JSONL) is the interchange format people edit and export; CBOR
// is the snapshot format toolshed writes itself. Deterministic
// encoding means the same inventory always produces the same bytes,
// so a snapshot's digest changes only when its content does.
//
//	data, err := codec.Marshal(snapshot)
//	packed, err := codec.Compress(codec.CompressionForPath(path), data)
//
// Types serialized only as CBOR use `cbor` struct tags. Types that are
// also read from JSON use `json` tags alone; fxamacker/cbor falls back
// to them.
package codec
