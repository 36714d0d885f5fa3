package grib

import (
	"fmt"

	"github.com/mmp/squall/section"
)

// MessageBoundary represents the location and size of a GRIB message
// (edition 1 or 2) within a file.
type MessageBoundary struct {
	Start   int    // Byte offset where the message starts
	Length  uint64 // Length of the message in bytes
	Index   int    // Sequential index of this message in the file (0-based)
	Edition uint8  // GRIB edition number (1 or 2) read from the shared octet-8 field
}

// minIndicatorLength is the smallest Section 0 a scanner needs to read
// before it can tell GRIB1's 8-byte indicator from GRIB2's 16-byte one:
// both editions put the edition number at octet 8, so that one byte is
// enough to decide which of the two fixed layouts follows.
const minIndicatorLength = 8

// peekIndicator reads just enough of a candidate Section 0 to return its
// edition and total message length, branching on GRIB1's 24-bit length at
// octets 5-7 versus GRIB2's 64-bit length at octets 9-16 (spec.md §4.9).
// ok is false if buf doesn't hold a recognized, decodable indicator.
func peekIndicator(buf []byte) (edition uint8, length uint64, ok bool) {
	if len(buf) < minIndicatorLength || buf[0] != 'G' || buf[1] != 'R' || buf[2] != 'I' || buf[3] != 'B' {
		return 0, 0, false
	}

	switch buf[7] {
	case 1:
		length := uint64(buf[4])<<16 | uint64(buf[5])<<8 | uint64(buf[6])
		if length < minIndicatorLength {
			return 0, 0, false
		}
		return 1, length, true
	case 2:
		if len(buf) < 16 {
			return 0, 0, false
		}
		sec0, err := section.ParseSection0(buf[:16])
		if err != nil {
			return 0, 0, false
		}
		return 2, sec0.MessageLength, true
	default:
		return 0, 0, false
	}
}

// FindMessages scans the data for GRIB message boundaries.
//
// This function performs a quick scan of the input data to locate all GRIB
// messages by finding "GRIB" magic numbers and reading their lengths from
// Section 0. It handles both editions: GRIB1's 24-bit length at octets 5-7
// and GRIB2's 64-bit length at octets 9-16, branching on the edition octet
// the two layouts share (octet 8). It does not parse the full message
// content.
//
// Returns a slice of MessageBoundary structs indicating where each message
// starts and how long it is. The boundaries preserve the original order of
// messages in the file.
//
// The scan is lenient: a framing mismatch at the current offset (padding,
// a truncated message, a stray "GRIB" substring inside unrelated data)
// advances the cursor by one byte and resumes searching, rather than
// aborting the whole scan. Callers that need strict all-or-nothing
// validation of a single GRIB2 message should use ValidateMessageStructure
// instead.
//
// This function is designed to be fast so that message boundaries can be
// found quickly before parallel decoding begins.
func FindMessages(data []byte) ([]MessageBoundary, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var boundaries []MessageBoundary
	offset := 0
	index := 0

	for offset+minIndicatorLength <= len(data) {
		if data[offset] != 'G' || data[offset+1] != 'R' || data[offset+2] != 'I' || data[offset+3] != 'B' {
			offset++
			continue
		}

		edition, msgLen, ok := peekIndicator(data[offset:])
		if !ok {
			offset++
			continue
		}

		messageEnd := offset + int(msgLen)
		if messageEnd > len(data) || messageEnd < offset+minIndicatorLength {
			offset++
			continue
		}

		endMarker := data[messageEnd-4 : messageEnd]
		if string(endMarker) != "7777" {
			offset++
			continue
		}

		boundaries = append(boundaries, MessageBoundary{
			Start:   offset,
			Length:  msgLen,
			Index:   index,
			Edition: edition,
		})

		offset = messageEnd
		index++
	}

	return boundaries, nil
}

// SplitMessages splits the data into individual GRIB messages (edition 1
// or 2).
//
// This is a convenience function that calls FindMessages and then extracts
// the actual message data for each boundary.
//
// Returns a slice of byte slices, where each inner slice is a complete
// GRIB message.
func SplitMessages(data []byte) ([][]byte, error) {
	boundaries, err := FindMessages(data)
	if err != nil {
		return nil, err
	}

	messages := make([][]byte, len(boundaries))
	for i, boundary := range boundaries {
		messages[i] = data[boundary.Start : boundary.Start+int(boundary.Length)]
	}

	return messages, nil
}

// ValidateMessageStructure performs a basic validation of a GRIB2 message structure.
//
// This function checks that:
//   - The message starts with "GRIB"
//   - Section 0 is valid
//   - The message ends with "7777"
//   - The message length matches the data length
//
// It does NOT parse the full message content or validate all sections.
func ValidateMessageStructure(data []byte) error {
	if len(data) < 16 {
		return &ParseError{
			Section: -1,
			Offset:  0,
			Message: fmt.Sprintf("message too short: %d bytes, minimum is 16", len(data)),
		}
	}

	// Parse Section 0
	sec0, err := section.ParseSection0(data[0:16])
	if err != nil {
		return &ParseError{
			Section:    0,
			Offset:     0,
			Message:    "invalid Section 0",
			Underlying: err,
		}
	}

	// Check message length
	if uint64(len(data)) != sec0.MessageLength {
		return &ParseError{
			Section: 0,
			Offset:  0,
			Message: fmt.Sprintf("message length mismatch: Section 0 says %d bytes, but have %d bytes",
				sec0.MessageLength, len(data)),
		}
	}

	// Check for end marker "7777"
	if len(data) < 4 {
		return &ParseError{
			Section: -1,
			Offset:  len(data),
			Message: "message too short to contain end marker",
		}
	}

	endMarker := data[len(data)-4:]
	if string(endMarker) != "7777" {
		return &ParseError{
			Section: -1,
			Offset:  len(data) - 4,
			Message: fmt.Sprintf("expected end marker \"7777\", found %q", string(endMarker)),
		}
	}

	return nil
}
