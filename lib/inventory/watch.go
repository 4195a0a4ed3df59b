// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inventory

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/zeebo/blake3"
	"golang.org/x/sys/unix"

	"github.com/bureau-foundation/toolshed/lib/codec"
)

// DefaultCoalesce is how long the watcher waits after a change for the
// writer to finish a burst of writes.
const DefaultCoalesce = 50 * time.Millisecond

// pollTimeoutMillis bounds how long the loop blocks before checking
// for Stop.
const pollTimeoutMillis = 100

// digest identifies file or record contents.
type digest [32]byte

// WatchOptions configures Watch.
type WatchOptions struct {
	Keys     Keys
	Logger   *slog.Logger
	Coalesce time.Duration
}

// Watcher keeps an Index in sync with an inventory file.
type Watcher struct {
	fd       int
	path     string
	filename string
	index    *Index
	options  WatchOptions
	logger   *slog.Logger

	fileDigest digest
	records    map[string]digest

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// Watch synchronizes index with the file at path, then follows the
// file with inotify. The parent directory is watched so that atomic
// replacement (write a temporary file, rename it over the target) is
// seen. Each change re-reads the whole file; a change whose blake3
// digest matches the last applied contents is skipped, and otherwise
// only records whose encoding changed produce Put or Remove.
func Watch(path string, index *Index, options WatchOptions) (*Watcher, error) {
	absolute, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if options.Coalesce <= 0 {
		options.Coalesce = DefaultCoalesce
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	watcher := &Watcher{
		path:     absolute,
		filename: filepath.Base(absolute),
		index:    index,
		options:  options,
		logger:   logger.With("path", absolute),
		records:  make(map[string]digest),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, tool := range index.All() {
		record, err := recordDigest(tool)
		if err != nil {
			return nil, err
		}
		watcher.records[tool.ID] = record
	}
	if err := watcher.reload(); err != nil {
		return nil, err
	}

	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("inotify: %w", err)
	}
	if _, err := unix.InotifyAddWatch(fd, filepath.Dir(absolute), unix.IN_CLOSE_WRITE|unix.IN_MOVED_TO); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("inotify watch %s: %w", filepath.Dir(absolute), err)
	}
	watcher.fd = fd

	go watcher.loop()
	return watcher, nil
}

// Stop ends the watch and waits for the loop to exit. Idempotent.
func (watcher *Watcher) Stop() {
	watcher.stopOnce.Do(func() { close(watcher.stop) })
	<-watcher.done
}

// Done is closed when the loop exits, after Stop or a fatal inotify
// error.
func (watcher *Watcher) Done() <-chan struct{} {
	return watcher.done
}

func (watcher *Watcher) loop() {
	defer close(watcher.done)
	defer unix.Close(watcher.fd)

	buffer := make([]byte, 4096)
	for {
		select {
		case <-watcher.stop:
			return
		default:
		}

		descriptors := []unix.PollFd{{Fd: int32(watcher.fd), Events: unix.POLLIN}}
		count, err := unix.Poll(descriptors, pollTimeoutMillis)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			watcher.logger.Warn("inventory watch stopped", "error", err)
			return
		}
		if count == 0 {
			continue
		}

		read, err := unix.Read(watcher.fd, buffer)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			watcher.logger.Warn("inventory watch stopped", "error", err)
			return
		}
		if !eventsMention(buffer[:read], watcher.filename) {
			continue
		}

		// Coalesce bursts such as several quick saves.
		time.Sleep(watcher.options.Coalesce)
		drainEvents(watcher.fd, buffer)

		if err := watcher.reload(); err != nil {
			// Mid-write or briefly absent during a replace; the
			// completing write produces another event.
			watcher.logger.Warn("inventory reload failed", "error", err)
		}
	}
}

// reload re-reads the file and applies the differences to the index.
func (watcher *Watcher) reload() error {
	data, err := os.ReadFile(watcher.path)
	if err != nil {
		return err
	}
	fileDigest := digest(blake3.Sum256(data))
	if fileDigest == watcher.fileDigest {
		watcher.logger.Debug("inventory unchanged")
		return nil
	}
	tools, err := Decode(watcher.path, data, watcher.options.Keys)
	if err != nil {
		return err
	}

	current := make(map[string]digest, len(tools))
	puts, removes := 0, 0
	for _, tool := range tools {
		record, err := recordDigest(tool)
		if err != nil {
			return err
		}
		current[tool.ID] = record
		if previous, exists := watcher.records[tool.ID]; !exists || previous != record {
			watcher.index.Put(tool)
			puts++
		}
	}
	for id := range watcher.records {
		if _, exists := current[id]; !exists {
			watcher.index.Remove(id)
			removes++
		}
	}
	watcher.records = current
	watcher.fileDigest = fileDigest
	watcher.logger.Debug("inventory reloaded", "tools", len(tools), "put", puts, "removed", removes)
	return nil
}

// recordDigest hashes the deterministic CBOR encoding of tool.
func recordDigest(tool Tool) (digest, error) {
	data, err := codec.Marshal(tool.normalize())
	if err != nil {
		return digest{}, fmt.Errorf("encoding %s: %w", tool.ID, err)
	}
	return blake3.Sum256(data), nil
}

// eventsMention reports whether any inotify event in buffer names
// filename. Layout from inotify(7):
//
//	struct inotify_event {
//	    int32_t  wd;     // offset 0
//	    uint32_t mask;   // offset 4
//	    uint32_t cookie; // offset 8
//	    uint32_t len;    // offset 12
//	    char     name[]; // offset 16, null-padded
//	};
func eventsMention(buffer []byte, filename string) bool {
	offset := 0
	for offset+unix.SizeofInotifyEvent <= len(buffer) {
		nameLength := int(binary.NativeEndian.Uint32(buffer[offset+12 : offset+16]))
		size := unix.SizeofInotifyEvent + nameLength
		if offset+size > len(buffer) {
			break
		}
		if nameLength > 0 && nullTerminated(buffer[offset+unix.SizeofInotifyEvent:offset+size]) == filename {
			return true
		}
		offset += size
	}
	return false
}

func nullTerminated(data []byte) string {
	for position, value := range data {
		if value == 0 {
			return string(data[:position])
		}
	}
	return string(data)
}

// drainEvents discards queued events.
func drainEvents(fd int, buffer []byte) {
	for {
		if _, err := unix.Read(fd, buffer); err != nil {
			return
		}
	}
}
