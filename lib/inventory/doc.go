// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package inventory is toolshed's data layer: the [Tool] record, a
// concurrent in-memory [Index] with change subscriptions, loaders for
// JSONL exports and CBOR snapshots, an inotify [Watch]er that keeps an
// index in sync with a file, and a [SearchService] that answers ranked
// queries the way a remote search backend would.
//
// Files are recognized by name:
//
//	tools.jsonl            one JSON object per line
//	tools.cbor             deterministic CBOR snapshot
//	tools.cbor.zst         zstd-compressed snapshot
//	tools.cbor.lz4         LZ4-compressed snapshot
//	tools.cbor.zst.age     any snapshot, encrypted with age
package inventory
