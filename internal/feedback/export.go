package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Config locates the bucket that receives feedback snapshots.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Exporter writes JSONL snapshots of the feedback corpus to object storage,
// one line per entry, for downstream fine-tuning datasets.
type Exporter struct {
	client   *minio.Client
	bucket   string
	region   string
	initOnce sync.Once
	initErr  error
}

func NewExporter(cfg S3Config) (*Exporter, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	return &Exporter{client: client, bucket: bucket, region: region}, nil
}

func (e *Exporter) ensureBucket(ctx context.Context) error {
	e.initOnce.Do(func() {
		exists, err := e.client.BucketExists(ctx, e.bucket)
		if err != nil {
			e.initErr = err
			return
		}
		if exists {
			return
		}
		e.initErr = e.client.MakeBucket(ctx, e.bucket, minio.MakeBucketOptions{Region: e.region})
	})
	return e.initErr
}

// Export uploads the entries under feedback/<timestamp>.jsonl and returns the
// object key.
func (e *Exporter) Export(ctx context.Context, entries []Entry) (string, error) {
	if err := e.ensureBucket(ctx); err != nil {
		return "", err
	}

	data, err := encodeJSONL(entries)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("feedback/%s.jsonl", time.Now().UTC().Format("20060102T150405Z"))
	_, err = e.client.PutObject(ctx, e.bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/x-ndjson"})
	if err != nil {
		return "", err
	}
	return key, nil
}

// encodeJSONL renders entries as JSON Lines, one entry per line.
func encodeJSONL(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, entry := range entries {
		if err := enc.Encode(entry); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
