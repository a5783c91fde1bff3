package s3store

import (
	"bytes"
	"context"
	"io"
	"testing"

	"campaign-insights/internal/core/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memS3 struct {
	objects map[string][]byte
	types   map[string]string
}

func newMemS3() *memS3 {
	return &memS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (m *memS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	k := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	m.objects[k] = data
	m.types[k] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func TestStore_PutGet(t *testing.T) {
	fake := newMemS3()
	st := New(fake)
	ctx := context.Background()

	require.NoError(t, st.Put(ctx, "data", "q3.csv", []byte("campaign_id\nC1\n"), "text/csv"))
	assert.Equal(t, "text/csv", fake.types["data/q3.csv"])

	got, err := st.Get(ctx, "data", "q3.csv")
	require.NoError(t, err)
	assert.Equal(t, "campaign_id\nC1\n", string(got))
}

func TestStore_GetMissing(t *testing.T) {
	_, err := New(newMemS3()).Get(context.Background(), "data", "nope.csv")
	assert.ErrorIs(t, err, domain.ErrObjectNotFound)
}
