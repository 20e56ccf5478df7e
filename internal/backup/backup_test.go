package backup

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/syncly/syncly/internal/database"
	"github.com/syncly/syncly/internal/store"
)

// mockS3Client implements s3Client for testing.
type mockS3Client struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
	getErr  error
}

func newMockS3() *mockS3Client {
	return &mockS3Client{objects: make(map[string][]byte)}
}

func (m *mockS3Client) PutObject(_ context.Context, input *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.putErr != nil {
		return nil, m.putErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, _ := io.ReadAll(input.Body)
	m.objects[*input.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func (m *mockS3Client) GetObject(_ context.Context, input *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[*input.Key]
	if !ok {
		return nil, &s3NotFound{}
	}
	return &s3.GetObjectOutput{
		Body: io.NopCloser(strings.NewReader(string(data))),
	}, nil
}

func (m *mockS3Client) DeleteObject(_ context.Context, input *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, *input.Key)
	return &s3.DeleteObjectOutput{}, nil
}

type s3NotFound struct{}

func (e *s3NotFound) Error() string { return "NoSuchKey" }

func configuredTestConfig() Config {
	return Config{
		S3:         S3Config{Bucket: "test", AccessKey: "key", SecretKey: "secret"},
		Passphrase: "family-passphrase",
	}
}

func TestManagerStateLifecycle(t *testing.T) {
	// Nothing configured -> disabled.
	m := NewManager(Config{}, nil, nil, nil, slog.Default())
	if m.Status().State != StateDisabled {
		t.Errorf("state = %q, want %q", m.Status().State, StateDisabled)
	}

	// S3 without a passphrase stays disabled: an unencrypted upload is
	// never an option.
	m2 := NewManager(Config{
		S3: S3Config{Bucket: "test", AccessKey: "key", SecretKey: "secret"},
	}, nil, nil, nil, slog.Default())
	if m2.Status().State != StateDisabled {
		t.Errorf("state = %q, want %q", m2.Status().State, StateDisabled)
	}

	m3 := NewManager(configuredTestConfig(), nil, nil, nil, slog.Default())
	if m3.Status().State != StateIdle {
		t.Errorf("state = %q, want %q", m3.Status().State, StateIdle)
	}
}

func TestManagerStopSafety(t *testing.T) {
	m := NewManager(configuredTestConfig(), nil, nil, nil, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	m.Start(ctx)
	time.Sleep(50 * time.Millisecond)
	cancel()
	m.Stop()

	// Double stop should not panic
	m.Stop()
}

func TestManagerDisabledNoStart(t *testing.T) {
	m := NewManager(Config{}, nil, nil, nil, slog.Default())

	m.Start(context.Background()) // no-op while disabled
	m.Stop()                      // should not block
}

func TestRunNowRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "syncly.db")
	db, err := database.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := configuredTestConfig()
	cfg.DBPath = dbPath
	m := NewManager(cfg, db, store.NewBackupStore(db), store.NewSettingsStore(db), slog.Default())

	mock := newMockS3()
	m.client = mock

	id, err := m.RunNow(context.Background())
	if err != nil {
		t.Fatalf("run backup: %v", err)
	}

	record, err := store.NewBackupStore(db).GetByID(id)
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if record == nil {
		t.Fatal("backup record missing")
	}
	if record.Status != "completed" {
		t.Errorf("status = %q, want completed", record.Status)
	}
	if record.SizeBytes == 0 {
		t.Error("expected non-zero upload size")
	}

	mock.mu.Lock()
	uploaded, ok := mock.objects[record.S3Key]
	mock.mu.Unlock()
	if !ok {
		t.Fatalf("object %q not uploaded", record.S3Key)
	}

	// The upload must be ciphertext, not a raw SQLite file.
	if bytes.HasPrefix(uploaded, []byte("SQLite format 3")) {
		t.Error("uploaded object is unencrypted")
	}

	if st := m.Status(); st.State != StateIdle || st.LastBackup == nil {
		t.Errorf("status after run = %+v, want idle with last backup set", st)
	}
}

func TestRunNowReusesSalt(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "syncly.db")
	db, err := database.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := configuredTestConfig()
	cfg.DBPath = dbPath
	m := NewManager(cfg, db, store.NewBackupStore(db), store.NewSettingsStore(db), slog.Default())
	m.client = newMockS3()

	if _, err := m.RunNow(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	kv := store.NewSettingsStore(db)
	salt1, err := kv.Get("backup_salt")
	if err != nil || salt1 == "" {
		t.Fatalf("salt after first run = %q, %v", salt1, err)
	}

	if _, err := m.RunNow(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}
	salt2, _ := kv.Get("backup_salt")
	if salt1 != salt2 {
		t.Error("salt changed between runs")
	}
}

func TestRunNowNotConfigured(t *testing.T) {
	m := NewManager(Config{}, nil, nil, nil, slog.Default())
	if _, err := m.RunNow(context.Background()); err == nil {
		t.Error("expected error while disabled")
	}
}
