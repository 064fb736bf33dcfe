package storage

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/wyattowalsh/skillsight/pkg/defaults"
	"github.com/wyattowalsh/skillsight/pkg/errors"
)

// Options configures the connection to an S3-compatible object store.
type Options struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PathStyle bool
}

// MinioStore reads snapshot artifacts from an S3-compatible bucket.
type MinioStore struct {
	cl     *minio.Client
	bucket string
}

// NewMinio creates an object store client for the given bucket. The
// connection is lazy; use Ping to verify reachability at startup.
func NewMinio(opts Options) (*MinioStore, error) {
	mo := &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	}
	if opts.PathStyle {
		mo.BucketLookup = minio.BucketLookupPath
	}
	cl, err := minio.New(opts.Endpoint, mo)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, "creating object store client", err)
	}
	return &MinioStore{cl: cl, bucket: opts.Bucket}, nil
}

// Get reads the full object at key. Missing keys are reported via the
// found flag, not as errors.
func (s *MinioStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	obj, err := s.cl.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		readsTotal.WithLabelValues(outcomeError).Inc()
		return nil, false, errors.WrapWithContext(errors.ErrCodeUnavailable, "opening object", err,
			map[string]any{"key": key})
	}
	defer obj.Close()

	// GetObject is lazy: the request fires on first read, so absence
	// surfaces here rather than above.
	data, err := io.ReadAll(obj)
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			readsTotal.WithLabelValues(outcomeMiss).Inc()
			return nil, false, nil
		}
		readsTotal.WithLabelValues(outcomeError).Inc()
		return nil, false, errors.WrapWithContext(errors.ErrCodeUnavailable, "reading object", err,
			map[string]any{"key": key})
	}

	readsTotal.WithLabelValues(outcomeHit).Inc()
	return data, true, nil
}

// Ping verifies the bucket is reachable. Used by readiness checks and
// the check command.
func (s *MinioStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaults.StorageConnectTimeout)
	defer cancel()

	ok, err := s.cl.BucketExists(ctx, s.bucket)
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnavailable, "checking bucket", err)
	}
	if !ok {
		return errors.NewWithContext(errors.ErrCodeUnavailable, "bucket does not exist",
			map[string]any{"bucket": s.bucket})
	}
	return nil
}
