package grib

import (
	"context"
	"fmt"
	"io"
)

// FindMessagesInStream scans an io.ReadSeeker for GRIB message boundaries
// (edition 1 or 2).
//
// This function performs a quick scan of the input stream to locate all GRIB
// messages by finding "GRIB" magic numbers and reading their lengths from
// Section 0, branching on edition exactly as FindMessages does. It does not
// parse the full message content.
//
// The scan is lenient: padding or junk bytes between messages (zero-byte
// alignment padding, truncated/corrupt messages, a stray "GRIB" substring
// inside unrelated data) don't abort the scan. A framing mismatch at the
// current offset advances the cursor by one byte and resumes searching for
// the next valid message, matching how archives (ERA5 files padded between
// messages) and mixed-content streams actually look in practice. A genuine
// I/O error still aborts immediately.
//
// The stream position is restored to its original position after scanning.
//
// Returns a slice of MessageBoundary structs indicating where each message
// starts and how long it is. The boundaries preserve the original order of
// messages in the stream.
func FindMessagesInStream(r io.ReadSeeker) ([]MessageBoundary, error) {
	// Save current position
	startPos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("failed to get current position: %w", err)
	}

	// Determine stream size so we can bound the byte-at-a-time search.
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to determine stream size: %w", err)
	}

	var boundaries []MessageBoundary
	index := 0
	offset := int64(0)

	// Sized for GRIB2's 16-byte indicator; GRIB1's 8-byte indicator is a
	// prefix of this same read, so one buffer size covers both editions.
	sec0Buf := make([]byte, 16)

	for offset+minIndicatorLength <= size {
		if _, err := r.Seek(offset, io.SeekStart); err != nil {
			return nil, fmt.Errorf("failed to seek to offset %d: %w", offset, err)
		}

		readLen := len(sec0Buf)
		if remaining := size - offset; remaining < int64(readLen) {
			readLen = int(remaining)
		}
		if _, err := io.ReadFull(r, sec0Buf[:readLen]); err != nil {
			// Can't read a full indicator here; nothing more to find.
			break
		}

		if sec0Buf[0] != 'G' || sec0Buf[1] != 'R' || sec0Buf[2] != 'I' || sec0Buf[3] != 'B' {
			offset++
			continue
		}

		edition, msgLen, ok := peekIndicator(sec0Buf[:readLen])
		if !ok {
			offset++
			continue
		}

		messageEnd := offset + int64(msgLen)
		if messageEnd > size || messageEnd < offset+minIndicatorLength {
			offset++
			continue
		}

		if _, err := r.Seek(messageEnd-4, io.SeekStart); err != nil {
			offset++
			continue
		}

		endMarker := make([]byte, 4)
		if _, err := io.ReadFull(r, endMarker); err != nil || string(endMarker) != "7777" {
			offset++
			continue
		}

		boundaries = append(boundaries, MessageBoundary{
			Start:   int(offset),
			Length:  msgLen,
			Index:   index,
			Edition: edition,
		})

		offset = messageEnd
		index++
	}

	// Restore original position
	if _, err := r.Seek(startPos, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to restore stream position: %w", err)
	}

	return boundaries, nil
}

// readMessageAt reads a complete GRIB2 message from the stream at the given offset.
//
// This function seeks to the specified offset, reads the message data into memory,
// and returns it as a byte slice. The stream position after this call is undefined.
func readMessageAt(r io.ReadSeeker, offset int64, length uint64) ([]byte, error) {
	// Seek to message start
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek to offset %d: %w", offset, err)
	}

	// Read message data
	msgData := make([]byte, length)
	if _, err := io.ReadFull(r, msgData); err != nil {
		return nil, fmt.Errorf("failed to read message at offset %d: %w", offset, err)
	}

	return msgData, nil
}

// ParseMessagesFromStreamSequential reads all GRIB2 messages from a stream
// into memory and parses them one at a time without parallelism.
func ParseMessagesFromStreamSequential(r io.ReadSeeker) ([]*Message, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read stream: %w", err)
	}
	return ParseMessagesSequential(data)
}

// ParseMessagesFromStreamSequentialSkipErrors reads all GRIB2 messages from a
// stream and parses them sequentially, skipping any message that fails to parse.
func ParseMessagesFromStreamSequentialSkipErrors(r io.ReadSeeker) ([]*Message, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read stream: %w", err)
	}
	return ParseMessagesSequentialSkipErrors(data)
}

// ParseMessagesFromStreamWithContext reads all GRIB2 messages from a stream
// and parses them in parallel, honoring ctx for cancellation.
//
// If workers <= 0, defaults to runtime.NumCPU().
func ParseMessagesFromStreamWithContext(ctx context.Context, r io.ReadSeeker, workers int) ([]*Message, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read stream: %w", err)
	}
	return ParseMessagesWithContext(ctx, data, workers)
}

// ParseMessagesFromStreamWithWorkers reads all GRIB2 messages from a stream
// and parses them in parallel using the given number of workers.
//
// If workers <= 0, defaults to runtime.NumCPU().
func ParseMessagesFromStreamWithWorkers(r io.ReadSeeker, workers int) ([]*Message, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read stream: %w", err)
	}
	return ParseMessagesWithWorkers(data, workers)
}
