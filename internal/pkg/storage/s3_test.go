package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

type stubObjectAPI struct {
	headMeta map[string]string
	headErr  error
	putKeys  []string
	putMeta  []map[string]string
	putBody  []string
}

func (s *stubObjectAPI) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if s.headErr != nil {
		return nil, s.headErr
	}
	return &s3.HeadObjectOutput{Metadata: s.headMeta}, nil
}

func (s *stubObjectAPI) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, _ := io.ReadAll(in.Body)
	s.putKeys = append(s.putKeys, *in.Key)
	s.putMeta = append(s.putMeta, in.Metadata)
	s.putBody = append(s.putBody, string(body))
	return &s3.PutObjectOutput{}, nil
}

func TestS3MirrorUploadsMissingObject(t *testing.T) {
	api := &stubObjectAPI{headErr: &smithy.GenericAPIError{Code: "NotFound"}}
	m := newS3Mirror(api, "bucket", "originals")

	if err := m.Put(context.Background(), "a.jpg", strings.NewReader("data"), "image/jpeg", "abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(api.putKeys) != 1 || api.putKeys[0] != "originals/a.jpg" {
		t.Fatalf("expected one upload to originals/a.jpg, got %v", api.putKeys)
	}
	if api.putMeta[0][checksumMetaKey] != "abc" || api.putBody[0] != "data" {
		t.Errorf("unexpected upload: meta=%v body=%q", api.putMeta[0], api.putBody[0])
	}
}

func TestS3MirrorSkipsUnchangedObject(t *testing.T) {
	api := &stubObjectAPI{headMeta: map[string]string{checksumMetaKey: "abc"}}
	m := newS3Mirror(api, "bucket", "")

	if err := m.Put(context.Background(), "a.jpg", strings.NewReader("data"), "image/jpeg", "abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(api.putKeys) != 0 {
		t.Fatalf("expected no upload, got %v", api.putKeys)
	}
}

func TestS3MirrorReuploadsChangedObject(t *testing.T) {
	api := &stubObjectAPI{headMeta: map[string]string{checksumMetaKey: "old"}}
	m := newS3Mirror(api, "bucket", "")

	if err := m.Put(context.Background(), "a.jpg", strings.NewReader("data"), "image/jpeg", "new"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(api.putKeys) != 1 || api.putKeys[0] != "a.jpg" {
		t.Fatalf("expected re-upload, got %v", api.putKeys)
	}
}

func TestS3MirrorHeadFailure(t *testing.T) {
	api := &stubObjectAPI{headErr: errors.New("connection refused")}
	m := newS3Mirror(api, "bucket", "")

	if err := m.Put(context.Background(), "a.jpg", strings.NewReader("data"), "image/jpeg", "abc"); err == nil {
		t.Fatal("expected error when head fails")
	}
	if len(api.putKeys) != 0 {
		t.Errorf("expected no upload after head failure")
	}
}
