// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inventory

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"filippo.io/age"

	"github.com/bureau-foundation/toolshed/lib/codec"
	"github.com/bureau-foundation/toolshed/lib/sealed"
)

// maxLineSize bounds one JSONL record. Long markdown notes exceed the
// scanner's 64KB default.
const maxLineSize = 1 << 20

// snapshotVersion is written into every snapshot.
const snapshotVersion = 1

// snapshot is the CBOR snapshot envelope.
type snapshot struct {
	Version int       `cbor:"version"`
	Written time.Time `cbor:"written"`
	Tools   []Tool    `cbor:"tools"`
}

// Format is the encoding of an inventory file.
type Format int

const (
	// FormatJSONL is one JSON object per line.
	FormatJSONL Format = iota
	// FormatSnapshot is a CBOR snapshot, possibly compressed and
	// sealed.
	FormatSnapshot
)

// FormatForPath picks the format from a file name: names containing
// ".cbor" are snapshots, anything else is JSONL.
func FormatForPath(path string) Format {
	if strings.Contains(filepath.Base(path), ".cbor") {
		return FormatSnapshot
	}
	return FormatJSONL
}

// Keys holds the age material for sealed snapshots.
type Keys struct {
	// Recipients are age1... keys that WriteSnapshot encrypts to.
	Recipients []string
	// Identities decrypt sealed snapshots.
	Identities []age.Identity
}

// Load reads tools from path in the format its name implies.
func Load(path string, keys Keys) ([]Tool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading inventory: %w", err)
	}
	return Decode(path, data, keys)
}

// Decode parses file contents as Load would for path.
func Decode(path string, data []byte, keys Keys) ([]Tool, error) {
	if FormatForPath(path) == FormatSnapshot {
		return decodeSnapshot(path, data, keys)
	}
	return ReadJSONL(bytes.NewReader(data))
}

// LoadJSONL reads a JSONL inventory file.
func LoadJSONL(path string) ([]Tool, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening inventory: %w", err)
	}
	defer file.Close()
	return ReadJSONL(file)
}

// ReadJSONL parses one tool per line. Blank lines and lines starting
// with '#' are skipped. Errors name the 1-based line. Duplicate IDs
// are rejected.
func ReadJSONL(reader io.Reader) ([]Tool, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var tools []Tool
	seen := make(map[string]int)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		var tool Tool
		decoder := json.NewDecoder(bytes.NewReader(line))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&tool); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		if err := tool.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		if first, duplicate := seen[tool.ID]; duplicate {
			return nil, fmt.Errorf("line %d: duplicate id %q (first on line %d)", lineNumber, tool.ID, first)
		}
		seen[tool.ID] = lineNumber
		tools = append(tools, tool.normalize())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", lineNumber+1, err)
	}
	return tools, nil
}

// WriteJSONL writes one tool per line.
func WriteJSONL(writer io.Writer, tools []Tool) error {
	encoder := json.NewEncoder(writer)
	encoder.SetEscapeHTML(false)
	for _, tool := range tools {
		if err := encoder.Encode(tool); err != nil {
			return fmt.Errorf("encoding %s: %w", tool.ID, err)
		}
	}
	return nil
}

// EncodeSnapshot produces the bytes WriteSnapshot stores at path:
// CBOR, compressed per the name, then sealed when it ends in ".age".
func EncodeSnapshot(path string, tools []Tool, written time.Time, keys Keys) ([]byte, error) {
	data, err := codec.Marshal(snapshot{Version: snapshotVersion, Written: written.UTC(), Tools: tools})
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	data, err = codec.Compress(codec.CompressionForPath(path), data)
	if err != nil {
		return nil, err
	}
	if !sealed.IsSealed(path) {
		return data, nil
	}
	var buffer bytes.Buffer
	if err := sealed.Seal(&buffer, data, keys.Recipients); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// WriteSnapshot atomically replaces path with a snapshot of tools.
func WriteSnapshot(path string, tools []Tool, written time.Time, keys Keys) error {
	data, err := EncodeSnapshot(path, tools, written, keys)
	if err != nil {
		return err
	}
	temporary, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	defer os.Remove(temporary.Name())
	if _, err := temporary.Write(data); err != nil {
		temporary.Close()
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := temporary.Close(); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(temporary.Name(), path); err != nil {
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot reads a snapshot file.
func ReadSnapshot(path string, keys Keys) ([]Tool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return decodeSnapshot(path, data, keys)
}

func decodeSnapshot(path string, data []byte, keys Keys) ([]Tool, error) {
	if sealed.IsSealed(path) {
		opened, err := sealed.Open(bytes.NewReader(data), keys.Identities)
		if err != nil {
			return nil, fmt.Errorf("opening sealed snapshot: %w", err)
		}
		data = opened
	}
	data, err := codec.Decompress(codec.CompressionForPath(path), data)
	if err != nil {
		return nil, fmt.Errorf("decompressing snapshot: %w", err)
	}

	var decoded snapshot
	if err := codec.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if decoded.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", decoded.Version)
	}
	var errs []error
	for position, tool := range decoded.Tools {
		if err := tool.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", position, err))
		}
		decoded.Tools[position] = tool.normalize()
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return decoded.Tools, nil
}
