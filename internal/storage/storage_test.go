package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"adminhub/pkg/utils"
)

func TestLocalPutAndDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	l := NewLocal(dir)
	ctx := context.Background()

	res, err := l.Put(ctx, strings.NewReader("A,B\n1,2\n"), PutInput{Filename: "Orders Last Month.csv", ContentType: "text/csv"})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !strings.HasSuffix(res.Key, "-orders-last-month.csv") {
		t.Fatalf("Key = %q", res.Key)
	}

	b, err := os.ReadFile(res.URL)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != "A,B\n1,2\n" {
		t.Fatalf("content = %q", b)
	}

	if err := l.Delete(ctx, res.Key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(res.URL); !os.IsNotExist(err) {
		t.Fatalf("file still present: %v", err)
	}
}

func TestObjectKeyCleansNames(t *testing.T) {
	for in, suffix := range map[string]string{
		"../../etc/passwd": "-passwd",
		"":                 "-export.csv",
		"Acme, Inc..csv":   "-acme--inc..csv",
	} {
		if got := objectKey(in); !strings.HasSuffix(got, suffix) || strings.Contains(got, "/") {
			t.Errorf("objectKey(%q) = %q, want suffix %q", in, got, suffix)
		}
	}
	if objectKey("a.csv") == objectKey("a.csv") {
		t.Error("keys should be unique")
	}
}

func TestFromConfig(t *testing.T) {
	ctx := context.Background()

	res, err := FromConfig(ctx, utils.StorageConfig{Driver: "local", LocalDir: t.TempDir()})
	if err != nil || res.Driver != "local" {
		t.Fatalf("local: %+v, %v", res, err)
	}
	if _, err := FromConfig(ctx, utils.StorageConfig{Driver: "s3"}); err == nil {
		t.Error("s3 without bucket accepted")
	}
	if _, err := FromConfig(ctx, utils.StorageConfig{Driver: "ftp"}); err == nil {
		t.Error("unknown driver accepted")
	}
}
