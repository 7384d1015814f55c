// Package export writes CSV snapshots of the knowledge base tables to a local
// directory or an S3 bucket.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"formulakb/internal/kb"
	applog "formulakb/internal/log"
	"formulakb/internal/sheet"
	"formulakb/models"
)

// Sink stores named snapshot files.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) error
	Location() string
}

// Manifest lists what a snapshot wrote.
type Manifest struct {
	Location string   `json:"location"`
	Prefix   string   `json:"prefix"`
	Files    []string `json:"files"`
}

// DirSink writes files below a local directory.
type DirSink struct {
	Dir string
}

func (d DirSink) Put(_ context.Context, name string, data []byte) error {
	path := filepath.Join(d.Dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (d DirSink) Location() string {
	return d.Dir
}

// SnapshotPrefix names the folder a snapshot taken at now is written to.
func SnapshotPrefix(now time.Time) string {
	return "kb-" + now.UTC().Format("20060102T150405Z")
}

// Snapshot writes one CSV file per table, in table order, under a
// timestamped prefix.
func Snapshot(ctx context.Context, tables kb.Tables, sink Sink, now time.Time) (Manifest, error) {
	if sink == nil {
		return Manifest{}, fmt.Errorf("export sink is nil")
	}
	prefix := SnapshotPrefix(now)
	manifest := Manifest{Location: sink.Location(), Prefix: prefix}

	rows := sheet.Rows(tables)
	for _, table := range models.TableOrder {
		var buf bytes.Buffer
		writer := csv.NewWriter(&buf)
		if err := writer.WriteAll(rows[table]); err != nil {
			return manifest, fmt.Errorf("encode %s: %w", table, err)
		}
		name := prefix + "/" + table + ".csv"
		if err := sink.Put(ctx, name, buf.Bytes()); err != nil {
			return manifest, fmt.Errorf("export %s: %w", table, err)
		}
		manifest.Files = append(manifest.Files, name)
	}

	applog.Info(ctx, "snapshot exported", "location", manifest.Location, "prefix", prefix, "files", len(manifest.Files))
	return manifest, nil
}

// Options configure Open.
type Options struct {
	Region    string
	Endpoint  string
	PathStyle bool
}

// Open picks a sink for destination: "s3://bucket/prefix" targets S3, any
// other value is a local directory.
func Open(ctx context.Context, destination string, opts Options) (Sink, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, fmt.Errorf("export destination must not be empty")
	}
	if rest, ok := strings.CutPrefix(destination, "s3://"); ok {
		bucket, prefix, _ := strings.Cut(rest, "/")
		return NewS3Sink(ctx, S3Config{
			Bucket:    bucket,
			Prefix:    prefix,
			Region:    opts.Region,
			Endpoint:  opts.Endpoint,
			PathStyle: opts.PathStyle,
		})
	}
	return DirSink{Dir: destination}, nil
}
