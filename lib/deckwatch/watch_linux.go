// Copyright 2026 The Lectern Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package deckwatch

import (
	"encoding/binary"
	"fmt"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// start watches the parent directory so that atomic renames, which
// replace the file's inode, are seen as well as in-place writes.
func (watcher *Watcher) start() error {
	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return fmt.Errorf("inotify init: %w", err)
	}
	directory := filepath.Dir(watcher.path)
	if _, err := unix.InotifyAddWatch(fd, directory, unix.IN_CLOSE_WRITE|unix.IN_MOVED_TO); err != nil {
		unix.Close(fd)
		return fmt.Errorf("watching %s: %w", directory, err)
	}
	go watcher.loop(fd, filepath.Base(watcher.path))
	return nil
}

// loop polls with a short timeout so that Close is noticed promptly.
func (watcher *Watcher) loop(fd int, filename string) {
	defer close(watcher.done)
	defer unix.Close(fd)

	buffer := make([]byte, 4096)
	for {
		select {
		case <-watcher.stop:
			return
		default:
		}

		descriptors := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		count, err := unix.Poll(descriptors, 100)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			watcher.logger.Warn("deck watcher stopped", "path", watcher.path, "error", err)
			return
		}
		if count == 0 {
			continue
		}

		read, err := unix.Read(fd, buffer)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			watcher.logger.Warn("deck watcher stopped", "path", watcher.path, "error", err)
			return
		}
		if !eventsName(buffer[:read], filename) {
			continue
		}

		select {
		case <-watcher.stop:
			return
		case <-watcher.clock.After(watcher.debounce):
		}
		drain(fd, buffer)
		watcher.reload()
	}
}

// eventsName reports whether any inotify event in buffer names
// filename. Each event is a 16-byte header (wd, mask, cookie, len)
// followed by len bytes of NUL-padded name.
func eventsName(buffer []byte, filename string) bool {
	offset := 0
	for offset+unix.SizeofInotifyEvent <= len(buffer) {
		nameLength := int(binary.NativeEndian.Uint32(buffer[offset+12 : offset+16]))
		end := offset + unix.SizeofInotifyEvent + nameLength
		if end > len(buffer) {
			break
		}
		if nameLength > 0 && cString(buffer[offset+unix.SizeofInotifyEvent:end]) == filename {
			return true
		}
		offset = end
	}
	return false
}

func cString(data []byte) string {
	for index, b := range data {
		if b == 0 {
			return string(data[:index])
		}
	}
	return string(data)
}

func drain(fd int, buffer []byte) {
	for {
		if _, err := unix.Read(fd, buffer); err != nil {
			return
		}
	}
}
