package batch_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/arthur-debert/lkdots/pkg/batch"
	"github.com/arthur-debert/lkdots/pkg/config"
	"github.com/arthur-debert/lkdots/pkg/crypto"
	"github.com/arthur-debert/lkdots/pkg/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("content"), 0644))
}

func entry(from string, encrypt bool) config.Entry {
	return config.Entry{From: from, To: "~/ignored", Platforms: config.AllPlatforms, Encrypt: encrypt}
}

func TestCollectFilesEncryptMode(t *testing.T) {
	tmp := t.TempDir()
	mkFile(t, filepath.Join(tmp, "plain.txt"))
	mkFile(t, filepath.Join(tmp, "already"+planner.ReservedSuffix))
	mkFile(t, filepath.Join(tmp, "sub", "nested.txt"))

	files, err := batch.CollectFiles([]config.Entry{entry(tmp, true)}, tmp, crypto.ModeEncrypt)
	require.NoError(t, err)
	require.Len(t, files, 2)
	for _, f := range files {
		assert.False(t, strings.HasSuffix(f, planner.ReservedSuffix))
	}
}

func TestCollectFilesDecryptMode(t *testing.T) {
	tmp := t.TempDir()
	mkFile(t, filepath.Join(tmp, "plain.txt"))
	mkFile(t, filepath.Join(tmp, "secret"+planner.ReservedSuffix))
	mkFile(t, filepath.Join(tmp, "sub", "deep"+planner.ReservedSuffix))

	files, err := batch.CollectFiles([]config.Entry{entry(tmp, true)}, tmp, crypto.ModeDecrypt)
	require.NoError(t, err)
	require.Len(t, files, 2)
	for _, f := range files {
		assert.True(t, strings.HasSuffix(f, planner.ReservedSuffix))
	}
}

func TestCollectFilesSkipsNonEncryptEntries(t *testing.T) {
	tmp := t.TempDir()
	mkFile(t, filepath.Join(tmp, "plain.txt"))

	files, err := batch.CollectFiles([]config.Entry{entry(tmp, false)}, tmp, crypto.ModeEncrypt)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestCollectFilesSkipsSymlinks(t *testing.T) {
	tmp := t.TempDir()
	mkFile(t, filepath.Join(tmp, "real.txt"))
	require.NoError(t, os.Symlink(filepath.Join(tmp, "real.txt"), filepath.Join(tmp, "link.txt")))

	files, err := batch.CollectFiles([]config.Entry{entry(tmp, true)}, tmp, crypto.ModeEncrypt)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, strings.HasSuffix(files[0], "real.txt"))
}

func TestCollectFilesEntryOrder(t *testing.T) {
	tmpA := t.TempDir()
	tmpB := t.TempDir()
	mkFile(t, filepath.Join(tmpA, "a.txt"))
	mkFile(t, filepath.Join(tmpB, "b.txt"))

	files, err := batch.CollectFiles(
		[]config.Entry{entry(tmpB, true), entry(tmpA, true)},
		tmpA, crypto.ModeEncrypt)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.True(t, strings.HasSuffix(files[0], "b.txt"), "entry order is preserved")
	assert.True(t, strings.HasSuffix(files[1], "a.txt"))
}

func TestProcessRunsAllFiles(t *testing.T) {
	tmp := t.TempDir()
	var files []string
	for i := 0; i < 8; i++ {
		f := filepath.Join(tmp, fmt.Sprintf("f%d.txt", i))
		mkFile(t, f)
		files = append(files, f)
	}

	secret := crypto.NewSecret([]byte("pwd"))
	defer secret.Zero()

	var count atomic.Int64
	err := batch.Process(files, secret, func(path string, s *crypto.Secret) error {
		assert.Equal(t, "pwd", s.Expose())
		count.Add(1)
		return nil
	}, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(8), count.Load())
}

func TestProcessEmptyBatch(t *testing.T) {
	secret := crypto.NewSecret([]byte("pwd"))
	defer secret.Zero()
	assert.NoError(t, batch.Process(nil, secret, func(string, *crypto.Secret) error {
		t.Fatal("op must not run for an empty batch")
		return nil
	}, 0, nil))
}

func TestProcessObserverSeesEveryCompletion(t *testing.T) {
	files := []string{"/a", "/b", "/c"}
	secret := crypto.NewSecret([]byte("pwd"))
	defer secret.Zero()

	var mu sync.Mutex
	var seen []int
	err := batch.Process(files, secret, func(string, *crypto.Secret) error {
		return nil
	}, 2, func(completed, total int, path string) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 3, total)
		seen = append(seen, completed)
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 2, 3}, seen)
}

func TestProcessFirstErrorAfterDrain(t *testing.T) {
	files := []string{"/ok1", "/fail-a", "/ok2", "/fail-b"}
	secret := crypto.NewSecret([]byte("pwd"))
	defer secret.Zero()

	var ran atomic.Int64
	err := batch.Process(files, secret, func(path string, _ *crypto.Secret) error {
		ran.Add(1)
		if strings.HasPrefix(path, "/fail") {
			return fmt.Errorf("boom: %s", path)
		}
		return nil
	}, 1, nil)

	require.Error(t, err)
	// First failure in file order wins, and all siblings ran
	assert.Contains(t, err.Error(), "/fail-a")
	assert.Equal(t, int64(4), ran.Load())
}
