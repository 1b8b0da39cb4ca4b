package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/lkdots/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare tilde", "~", home},
		{"tilde slash", "~/app", filepath.Join(home, "app")},
		{"nested", "~/a/b/c", filepath.Join(home, "a", "b", "c")},
		{"no tilde", "/etc/passwd", "/etc/passwd"},
		{"relative", "src/app", "src/app"},
		{"empty", "", ""},
		{"tilde user unsupported", "~root/x", "~root/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandHome(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveFrom(t *testing.T) {
	got, err := ResolveFrom("/cfg/dir", "src/app")
	require.NoError(t, err)
	assert.Equal(t, "/cfg/dir/src/app", got)

	got, err = ResolveFrom("/cfg/dir", "/abs/path")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", got)

	home, _ := os.UserHomeDir()
	got, err = ResolveFrom("/cfg/dir", "~/dotfiles")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "dotfiles"), got)
}

func TestResolveFromRejectsBadEncoding(t *testing.T) {
	_, err := ResolveFrom("/cfg", "bad\xff\xfepath")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathEncoding))
}

func TestRelative(t *testing.T) {
	rel, err := Relative("/home/user/dotfiles/vimrc", "/home/user")
	require.NoError(t, err)
	assert.Equal(t, "dotfiles/vimrc", rel)

	rel, err = Relative("/home/user/dotfiles/vimrc", "/home/user/other/deep")
	require.NoError(t, err)
	assert.Equal(t, "../../dotfiles/vimrc", rel)
}

func TestGetDir(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "lkdots.toml")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	dir, err := GetDir(tmp)
	require.NoError(t, err)
	assert.Equal(t, tmp, dir)

	dir, err = GetDir(file)
	require.NoError(t, err)
	assert.Equal(t, tmp, dir)

	_, err = GetDir(filepath.Join(tmp, "missing"))
	assert.Error(t, err)
}

func TestIsWithin(t *testing.T) {
	assert.True(t, IsWithin("/a/b", "/a/b"))
	assert.True(t, IsWithin("/a/b", "/a/b/c"))
	assert.True(t, IsWithin("/a/b", "/a/b/c/d"))
	assert.False(t, IsWithin("/a/b", "/a/bc"))
	assert.False(t, IsWithin("/a/b", "/a"))
	assert.False(t, IsWithin("/a/b", "/x/y"))
}

func TestTruncateDisplay(t *testing.T) {
	assert.Equal(t, "short", TruncateDisplay("short", 10))
	assert.Equal(t, "exact", TruncateDisplay("exact", 5))

	long := "this/is/a/very/long/path/that/needs/truncation"
	got := TruncateDisplay(long, 20)
	assert.LessOrEqual(t, len([]rune(got)), 20)
	assert.True(t, len(got) > 3 && got[:3] == "...")

	// Rune-safe on multi-byte paths
	uni := "測試/路徑/中文/更多/字元"
	got = TruncateDisplay(uni, 8)
	assert.LessOrEqual(t, len([]rune(got)), 8)
}
