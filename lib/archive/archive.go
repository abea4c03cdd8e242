// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/bureau-foundation/roomevents/lib/clock"
	"github.com/bureau-foundation/roomevents/lib/codec"
	"github.com/bureau-foundation/roomevents/lib/compress"
	"github.com/bureau-foundation/roomevents/lib/event"
	"github.com/bureau-foundation/roomevents/lib/eventhash"
	"github.com/bureau-foundation/roomevents/lib/sealed"
)

// ErrNoRecipients is returned by AppendRedaction when the archive has
// no audit recipients to seal the original to.
var ErrNoRecipients = errors.New("no audit recipients configured")

// Options configures an archive.
type Options struct {
	// Logger receives Debug lines per append and a Warn when a torn
	// record is truncated. Nil discards.
	Logger *slog.Logger

	// Clock stamps ArchivedAt. Nil uses clock.Real().
	Clock clock.Clock

	// Compression is the payload compression tag used when
	// AutoCompression is false.
	Compression compress.Tag

	// AutoCompression probes each payload with compress.Select.
	AutoCompression bool

	// Recipients are age public keys that redacted originals are
	// sealed to.
	Recipients []string
}

// Archive is an open archive file. Methods are safe for concurrent
// use.
type Archive struct {
	mu      sync.Mutex
	file    *os.File
	path    string
	options Options
	logger  *slog.Logger

	seen  map[eventhash.Hash]struct{}
	count int
}

// Open opens the archive at path, creating it (and its directory) if
// missing, and replays existing records.
func Open(path string, options Options) (*Archive, error) {
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	for index, recipient := range options.Recipients {
		if err := sealed.ParsePublicKey(recipient); err != nil {
			return nil, fmt.Errorf("audit recipient %d: %w", index, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", path, err)
	}

	archive := &Archive{
		file:    file,
		path:    path,
		options: options,
		logger:  options.Logger.With("path", path),
		seen:    make(map[eventhash.Hash]struct{}),
	}
	if err := archive.replay(); err != nil {
		file.Close()
		return nil, err
	}
	return archive, nil
}

// replay rebuilds the fingerprint set and leaves the file offset at
// the end of the last complete record.
func (a *Archive) replay() error {
	decoder := codec.NewDecoder(a.file)
	var good int64
	for {
		var record Record
		err := decoder.Decode(&record)
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			a.logger.Warn("truncating torn record at end of archive",
				"offset", good)
			if err := a.file.Truncate(good); err != nil {
				return fmt.Errorf("truncating archive %s: %w", a.path, err)
			}
			break
		}
		if err != nil {
			return fmt.Errorf("reading archive %s at offset %d: %w", a.path, good, err)
		}
		good = int64(decoder.NumBytesRead())
		a.seen[record.Fingerprint] = struct{}{}
		a.count++
	}
	if _, err := a.file.Seek(good, io.SeekStart); err != nil {
		return fmt.Errorf("seeking archive %s: %w", a.path, err)
	}
	a.logger.Debug("archive opened", "records", a.count)
	return nil
}

// Append archives ev. It returns the written record and true, or the
// zero record and false when an event with the same fingerprint is
// already archived.
func (a *Archive) Append(ev *event.Event) (Record, bool, error) {
	record, err := a.newRecord(KindEvent, ev)
	if err != nil {
		return Record{}, false, err
	}
	return a.write(record)
}

// AppendRedaction archives redacted, sealing original to the audit
// recipients. The two must be the same event: equal type and event_id.
// Duplicate detection uses the redacted event's fingerprint.
func (a *Archive) AppendRedaction(original, redacted *event.Event) (Record, bool, error) {
	if len(a.options.Recipients) == 0 {
		return Record{}, false, ErrNoRecipients
	}
	originalID, _ := original.EventID()
	redactedID, _ := redacted.EventID()
	if original.Type() != redacted.Type() || originalID != redactedID {
		return Record{}, false, fmt.Errorf("redacted event %s (%s) is not a redaction of %s (%s)",
			redactedID, redacted.Type(), originalID, original.Type())
	}

	record, err := a.newRecord(KindRedaction, redacted)
	if err != nil {
		return Record{}, false, err
	}
	ciphertext, err := sealed.Encrypt(original.Marshal(), a.options.Recipients)
	if err != nil {
		return Record{}, false, fmt.Errorf("sealing original of %s: %w", originalID, err)
	}
	originalFingerprint := eventhash.Fingerprint(original)
	record.Original = &originalFingerprint
	record.Sealed = ciphertext
	return a.write(record)
}

func (a *Archive) newRecord(kind RecordKind, ev *event.Event) (Record, error) {
	data := ev.Marshal()
	var (
		payload []byte
		tag     compress.Tag
		err     error
	)
	if a.options.AutoCompression {
		payload, tag, err = compress.Auto(data)
	} else {
		payload, tag, err = compress.WithFallback(data, a.options.Compression)
	}
	if err != nil {
		return Record{}, fmt.Errorf("compressing event: %w", err)
	}

	eventID, _ := ev.EventID()
	return Record{
		Kind:        kind,
		Fingerprint: eventhash.Fingerprint(ev),
		EventType:   string(ev.Type()),
		EventID:     eventID,
		ArchivedAt:  a.options.Clock.Now().UTC(),
		Compression: tag,
		Size:        len(data),
		Payload:     payload,
	}, nil
}

func (a *Archive) write(record Record) (Record, bool, error) {
	encoded, err := codec.Marshal(record)
	if err != nil {
		return Record{}, false, fmt.Errorf("encoding archive record: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.file == nil {
		return Record{}, false, os.ErrClosed
	}
	if _, duplicate := a.seen[record.Fingerprint]; duplicate {
		a.logger.Debug("skipping duplicate event",
			"event_id", record.EventID,
			"fingerprint", record.Fingerprint.Short())
		return Record{}, false, nil
	}
	// One Write per record: a crash leaves at most one torn record at
	// the tail, which replay truncates.
	if _, err := a.file.Write(encoded); err != nil {
		return Record{}, false, fmt.Errorf("writing archive %s: %w", a.path, err)
	}
	a.seen[record.Fingerprint] = struct{}{}
	a.count++
	a.logger.Debug("archived event",
		"kind", string(record.Kind),
		"event_id", record.EventID,
		"fingerprint", record.Fingerprint.Short(),
		"compression", record.Compression.String(),
		"size", record.Size,
		"stored", len(record.Payload))
	return record, true, nil
}

// Contains reports whether a record with the given fingerprint is
// archived.
func (a *Archive) Contains(fingerprint eventhash.Hash) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.seen[fingerprint]
	return ok
}

// Len returns the number of records.
func (a *Archive) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.count
}

// Path returns the archive file path.
func (a *Archive) Path() string { return a.path }

// Close syncs and closes the archive file. Closing twice is a no-op.
func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.file == nil {
		return nil
	}
	syncErr := a.file.Sync()
	closeErr := a.file.Close()
	a.file = nil
	return errors.Join(syncErr, closeErr)
}

// Scan reads the archive at path without opening it for writing and
// calls yield for each record in order. A torn final record is an
// error here; Open repairs it.
func Scan(path string, yield func(Record) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("reading archive: %w", err)
	}
	defer file.Close()
	return ScanReader(bufio.NewReader(file), yield)
}

// ScanReader is Scan over an arbitrary reader.
func ScanReader(reader io.Reader, yield func(Record) error) error {
	return codec.ReadSequence(reader, yield)
}

// Records reads every record of the archive at path.
func Records(path string) ([]Record, error) {
	var records []Record
	err := Scan(path, func(record Record) error {
		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
