package snapshot

import (
	"bytes"
	"context"
	"path"
	"strings"

	"github.com/smallie-dev/smallie/internal/errors"
	"github.com/smallie-dev/smallie/pkg/dom"
)

// ContentType is the content type of published snapshots.
const ContentType = "text/html; charset=utf-8"

// Store persists rendered pages.
type Store interface {
	// Put stores body under key, replacing any previous value.
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

// Options selects and configures a Store.
type Options struct {
	// Driver is "file" or "s3".
	Driver string

	// Dir is the file driver's directory.
	Dir string

	// Bucket, Prefix, Region, Endpoint and PathStyle configure the s3 driver.
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string
	PathStyle bool
}

// Open creates the store selected by opts.Driver.
func Open(opts Options) (Store, error) {
	switch opts.Driver {
	case "", "file":
		if opts.Dir == "" {
			return nil, errors.New("E142").WithDetail("A directory is required for the file driver.")
		}
		return NewFileStore(opts.Dir, opts.Prefix)
	case "s3":
		if opts.Bucket == "" {
			return nil, errors.New("E142").WithDetail("A bucket is required for the s3 driver.")
		}
		return NewS3Store(NewS3Client(opts), opts.Bucket, opts.Prefix), nil
	default:
		return nil, errors.New("E140").WithDetail("Unknown snapshot driver " + opts.Driver + ".")
	}
}

// Publish renders doc, with live form state reflected into attributes, and
// stores it under key.
func Publish(ctx context.Context, store Store, key string, doc *dom.Document) error {
	var buf bytes.Buffer
	if err := dom.Render(&buf, doc.Root(), dom.WithProperties()); err != nil {
		return errors.New("E141").Wrap(err)
	}
	if err := store.Put(ctx, key, buf.Bytes(), ContentType); err != nil {
		return errors.FromError(err, "E141")
	}
	return nil
}

// cleanKey joins prefix and key into a slash-separated relative key. It
// rejects keys that would leave the prefix.
func cleanKey(prefix, key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") {
		return "", errors.New("E141").WithDetail("Invalid snapshot key " + key + ".")
	}
	cleaned := path.Clean(key)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", errors.New("E141").WithDetail("Snapshot key " + key + " leaves the store.")
	}
	return prefix + cleaned, nil
}
