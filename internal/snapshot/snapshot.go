// Package snapshot exports the final state of a live list as gzipped JSON
// lines, locally or to S3.
package snapshot

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// Store persists snapshots under a key.
type Store interface {
	// Save writes one JSON document per record.
	Save(ctx context.Context, key string, records []json.RawMessage) error

	// Load reads the records saved under key, in order.
	Load(ctx context.Context, key string) ([]json.RawMessage, error)
}

// Encode turns items into records.
func Encode[T any](items []T) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(items))
	for i, item := range items {
		b, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("failed to encode record %d: %w", i, err)
		}
		out = append(out, b)
	}
	return out, nil
}

// Decode turns records back into items.
func Decode[T any](records []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(records))
	for i, rec := range records {
		var item T
		if err := json.Unmarshal(rec, &item); err != nil {
			return nil, fmt.Errorf("failed to decode record %d: %w", i, err)
		}
		out = append(out, item)
	}
	return out, nil
}

// writeRecords gzips records to w, one per line.
func writeRecords(w io.Writer, records []json.RawMessage) error {
	gz := gzip.NewWriter(w)

	for i, rec := range records {
		var line bytes.Buffer
		if err := json.Compact(&line, rec); err != nil {
			gz.Close()
			return fmt.Errorf("failed to compact record %d: %w", i, err)
		}
		line.WriteByte('\n')
		if _, err := gz.Write(line.Bytes()); err != nil {
			gz.Close()
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to finish gzip stream: %w", err)
	}
	return nil
}

// readRecords reads gzipped JSON lines from r. Blank lines are skipped.
func readRecords(ctx context.Context, r io.Reader) ([]json.RawMessage, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gz.Close()

	scanner := bufio.NewScanner(gz)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var out []json.RawMessage
	lineCount := 0
	for scanner.Scan() {
		if lineCount%10_000 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}
		lineCount++

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			return nil, fmt.Errorf("invalid record on line %d", lineCount)
		}
		out = append(out, json.RawMessage(bytes.Clone(line)))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return out, nil
}
