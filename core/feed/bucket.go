package feed

import (
	"context"
	"encoding/csv"
	"fmt"

	"ck-services/core/storage"

	"github.com/minio/minio-go/v7"
)

// BucketSource fetches the feed from a CSV snapshot object in object storage.
// The snapshot is a daily export of the spreadsheet with the same columns.
type BucketSource struct {
	client storage.Client
	bucket string
	object string
}

// NewBucketSource creates a bucket-backed feed source.
func NewBucketSource(client storage.Client, bucket string, cfg Config) *BucketSource {
	return &BucketSource{
		client: client,
		bucket: bucket,
		object: cfg.ObjectName,
	}
}

// Fetch downloads and parses the CSV snapshot.
func (s *BucketSource) Fetch(ctx context.Context) ([]Row, error) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", ErrSourceTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: bucket %q not found", ErrSourceUnavailable, s.bucket)
	}

	reader, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", ErrSourceTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer reader.Close()

	cr := csv.NewReader(reader)
	// Row widths can vary when trailing cells are empty.
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceFormat, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: snapshot %q is empty", ErrSourceFormat, s.object)
	}

	return buildRows(records[0], records[1:])
}
