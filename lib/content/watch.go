// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package content

import (
	"encoding/binary"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"
)

// Watch reloads the content directory whenever one of its files is
// written or replaced, and calls notify from the watcher goroutine.
// A successful reload whose digest matches the last delivered catalog
// is dropped. A failed reload is reported as (nil, err) and the
// watcher keeps running; the next successful load is always delivered.
//
// current is the catalog already in use; its digest seeds the
// comparison. The returned stop function ends the watcher; it is safe
// to call more than once.
func Watch(directory string, current *Catalog, notify func(*Catalog, error)) (func(), error) {
	absolute, err := filepath.Abs(directory)
	if err != nil {
		return nil, err
	}

	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return nil, err
	}

	// Watch directories, not files: editors that save by writing a
	// temp file and renaming it replace the inode.
	const mask = unix.IN_CLOSE_WRITE | unix.IN_MOVED_TO | unix.IN_DELETE
	if _, err := unix.InotifyAddWatch(fd, absolute, mask); err != nil {
		unix.Close(fd)
		return nil, err
	}
	// pages/ is optional.
	unix.InotifyAddWatch(fd, filepath.Join(absolute, pagesDir), mask)

	lastDigest := ""
	if current != nil {
		lastDigest = current.Digest()
	}

	stopChannel := make(chan struct{})
	go watchLoop(fd, absolute, lastDigest, notify, stopChannel)

	stopped := false
	stop := func() {
		if stopped {
			return
		}
		stopped = true
		close(stopChannel)
	}
	return stop, nil
}

// watchLoop polls the inotify fd with a 100ms timeout so the stop
// channel is checked promptly. After a relevant event it waits 50ms and
// drains the queue, coalescing a burst of saves into one reload.
func watchLoop(fd int, directory, lastDigest string, notify func(*Catalog, error), stopChannel <-chan struct{}) {
	defer unix.Close(fd)

	buffer := make([]byte, 4096)
	for {
		select {
		case <-stopChannel:
			return
		default:
		}

		pollDescriptors := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		count, err := unix.Poll(pollDescriptors, 100)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return
		}
		if count == 0 {
			continue
		}

		bytesRead, err := unix.Read(fd, buffer)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}
		if !eventsMatchContent(buffer[:bytesRead]) {
			continue
		}

		time.Sleep(50 * time.Millisecond)
		drainEvents(fd, buffer)

		select {
		case <-stopChannel:
			return
		default:
		}

		catalog, err := LoadDir(directory)
		if err != nil {
			// Forget the digest so the next good load is delivered
			// even if it matches the catalog from before the error.
			lastDigest = ""
			notify(nil, err)
			continue
		}
		if catalog.Digest() == lastDigest {
			continue
		}
		lastDigest = catalog.Digest()
		notify(catalog, nil)
	}
}

// eventsMatchContent reports whether any event in the buffer names a
// content file. Layout from inotify(7):
//
//	struct inotify_event {
//	    int32_t  wd;     // offset 0
//	    uint32_t mask;   // offset 4
//	    uint32_t cookie; // offset 8
//	    uint32_t len;    // offset 12
//	    char     name[]; // offset 16, null-padded to alignment
//	};
func eventsMatchContent(buffer []byte) bool {
	offset := 0
	for offset+unix.SizeofInotifyEvent <= len(buffer) {
		nameLength := int(binary.NativeEndian.Uint32(buffer[offset+12 : offset+16]))
		eventSize := unix.SizeofInotifyEvent + nameLength
		if offset+eventSize > len(buffer) {
			break
		}
		if nameLength > 0 {
			name := nullTerminated(buffer[offset+unix.SizeofInotifyEvent : offset+eventSize])
			if isContentFile(name) {
				return true
			}
		}
		offset += eventSize
	}
	return false
}

func isContentFile(name string) bool {
	switch filepath.Ext(name) {
	case ".jsonc", ".yaml", ".html":
		return true
	}
	return false
}

func nullTerminated(data []byte) string {
	for i, b := range data {
		if b == 0 {
			return string(data[:i])
		}
	}
	return string(data)
}

func drainEvents(fd int, buffer []byte) {
	for {
		if _, err := unix.Read(fd, buffer); err != nil {
			return
		}
	}
}
