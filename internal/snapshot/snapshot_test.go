package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"petclinic-console/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testInventories = []model.Inventory{
	{InventoryID: "i1", InventoryCode: "INV-0001", InventoryName: "Bandages"},
	{InventoryID: "i2", InventoryCode: "INV-0002", InventoryName: "Syringes"},
}

func TestEncodeDecode(t *testing.T) {
	records, err := Encode(testInventories)
	require.NoError(t, err)
	require.Len(t, records, 2)

	got, err := Decode[model.Inventory](records)
	require.NoError(t, err)
	assert.Equal(t, testInventories, got)

	_, err = Decode[model.Inventory]([]json.RawMessage{json.RawMessage(`"text"`)})
	assert.Error(t, err)
}

func TestFileStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(t.TempDir(), zerolog.Nop())

	records, err := Encode(testInventories)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "inventories/2024-05-01.jsonl.gz", records))

	loaded, err := store.Load(ctx, "inventories/2024-05-01.jsonl.gz")
	require.NoError(t, err)

	got, err := Decode[model.Inventory](loaded)
	require.NoError(t, err)
	assert.Equal(t, testInventories, got)
}

func TestFileStore_SaveEmpty(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(t.TempDir(), zerolog.Nop())

	require.NoError(t, store.Save(ctx, "empty.gz", nil))

	loaded, err := store.Load(ctx, "empty.gz")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestFileStore_LoadErrors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewFileStore(dir, zerolog.Nop())

	_, err := store.Load(ctx, "missing.gz")
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "plain.gz"), []byte("not gzip"), 0o600))
	_, err = store.Load(ctx, "plain.gz")
	assert.Error(t, err)
}

func TestReadRecords_InvalidLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRecords(&buf, []json.RawMessage{json.RawMessage(`{"a":1}`)}))

	good, err := readRecords(context.Background(), bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, []json.RawMessage{json.RawMessage(`{"a":1}`)}, good)

	err = writeRecords(io.Discard, []json.RawMessage{json.RawMessage(`{broken`)})
	assert.Error(t, err)
}

func TestReadRecords_Cancelled(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRecords(&buf, []json.RawMessage{json.RawMessage(`{}`)}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := readRecords(ctx, &buf)
	assert.ErrorIs(t, err, context.Canceled)
}

// fakeObjects is an in-memory objectAPI.
type fakeObjects struct {
	objects map[string][]byte
	err     error
}

func (f *fakeObjects) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func (f *fakeObjects) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = b
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_SaveLoad(t *testing.T) {
	ctx := context.Background()
	objects := &fakeObjects{objects: map[string][]byte{}}
	store := newS3Store(objects, "snapshots", zerolog.Nop())

	records, err := Encode(testInventories)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "live/inventories.gz", records))
	assert.Contains(t, objects.objects, "snapshots/live/inventories.gz")

	loaded, err := store.Load(ctx, "live/inventories.gz")
	require.NoError(t, err)
	assert.Len(t, loaded, 2)

	_, err = store.Load(ctx, "live/missing.gz")
	assert.Error(t, err)
}

func TestS3Store_Errors(t *testing.T) {
	ctx := context.Background()
	store := newS3Store(&fakeObjects{err: errors.New("access denied")}, "snapshots", zerolog.Nop())

	err := store.Save(ctx, "k", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")

	_, err = store.Load(ctx, "k")
	assert.Error(t, err)
}

// MockStore is a mock implementation of Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Save(ctx context.Context, key string, records []json.RawMessage) error {
	args := m.Called(ctx, key, records)
	return args.Error(0)
}

func (m *MockStore) Load(ctx context.Context, key string) ([]json.RawMessage, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]json.RawMessage), args.Error(1)
}

func TestFallbackStore_Load(t *testing.T) {
	ctx := context.Background()
	s3Records := []json.RawMessage{json.RawMessage(`{"from":"s3"}`)}
	localRecords := []json.RawMessage{json.RawMessage(`{"from":"disk"}`)}

	tests := []struct {
		name      string
		s3Enabled bool
		s3Err     error
		want      []json.RawMessage
		callsS3   bool
		callsDisk bool
	}{
		{"S3 succeeds", true, nil, s3Records, true, false},
		{"S3 fails, falls back to disk", true, errors.New("S3 connection failed"), localRecords, true, true},
		{"S3 disabled", false, nil, localRecords, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := new(MockStore)
			local := new(MockStore)

			if tt.callsS3 {
				if tt.s3Err != nil {
					remote.On("Load", ctx, "snapshots/visits.gz").Return(nil, tt.s3Err)
				} else {
					remote.On("Load", ctx, "snapshots/visits.gz").Return(s3Records, nil)
				}
			}
			if tt.callsDisk {
				local.On("Load", ctx, "visits.gz").Return(localRecords, nil)
			}

			store := NewFallbackStore(remote, local, "snapshots/", tt.s3Enabled, zerolog.Nop())
			got, err := store.Load(ctx, "visits.gz")

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			remote.AssertExpectations(t)
			local.AssertExpectations(t)
		})
	}
}

func TestFallbackStore_Save(t *testing.T) {
	ctx := context.Background()
	records := []json.RawMessage{json.RawMessage(`{}`)}

	remote := new(MockStore)
	local := new(MockStore)
	remote.On("Save", ctx, "snapshots/visits.gz", records).Return(errors.New("S3 unavailable"))
	local.On("Save", ctx, "visits.gz", records).Return(nil)

	store := NewFallbackStore(remote, local, "snapshots/", true, zerolog.Nop())
	require.NoError(t, store.Save(ctx, "visits.gz", records))

	remote.AssertExpectations(t)
	local.AssertExpectations(t)
}

func TestFallbackStore_NilS3(t *testing.T) {
	ctx := context.Background()
	local := new(MockStore)
	local.On("Save", ctx, "visits.gz", mock.Anything).Return(nil)

	store := NewFallbackStore(nil, local, "snapshots/", true, zerolog.Nop())
	require.NoError(t, store.Save(ctx, "visits.gz", nil))
	local.AssertExpectations(t)
}
