package sheaf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenReadWriteCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")

	s, err := Open(path, OpenModeReadWrite)
	require.NoError(t, err)
	require.Equal(t, path, s.Path())
	require.Equal(t, 0, s.Len())

	require.NoError(t, s.SetString("a", "x\n"))
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[a]\nx\n", string(data))
}

func TestOpenReadWriteKeepsContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keep.txt")
	require.NoError(t, os.WriteFile(path, []byte("[a]\nx\n"), 0644))

	s, err := Open(path, OpenModeReadWrite)
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, s.Names())
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[a]\nx\n", string(data))
}

func TestOpenWriteTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trunc.txt")
	require.NoError(t, os.WriteFile(path, []byte("[a]\nx\n"), 0644))

	s, err := Open(path, OpenModeWrite)
	require.NoError(t, err)
	require.Equal(t, 0, s.Len())

	require.NoError(t, s.SetString("b", "y\n"))
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[b]\ny\n", string(data))
}

func TestOpenReadMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.txt"), OpenModeRead)
	require.Error(t, err)
	require.True(t, os.IsNotExist(err))
}

func TestOpenMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("no header\n"), 0644))

	_, err := Open(path, OpenModeRead)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestReopenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cycle.txt")

	s, err := Open(path, OpenModeWrite)
	require.NoError(t, err)
	require.NoError(t, s.SetString("alpha", "1\n2\n"))
	require.NoError(t, s.SetString("beta", "3\n"))
	require.NoError(t, s.Close())

	r, err := Open(path, OpenModeRead)
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "beta"}, r.Names())

	sec, err := r.Get("alpha")
	require.NoError(t, err)
	text, err := sec.Text()
	require.NoError(t, err)
	require.Equal(t, "1\n2\n", text)
	require.NoError(t, r.Close())
}

func TestUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upd.txt")

	require.NoError(t, Update(path, func(s *Sheaf) error {
		return s.SetString("a", "x\n")
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[a]\nx\n", string(data))
}

func TestUpdateErrorStillFlushes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upd.txt")
	boom := errors.New("boom")

	err := Update(path, func(s *Sheaf) error {
		if err := s.SetString("a", "x\n"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// Mutations made before the failure were flushed on the way out.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[a]\nx\n", string(data))
}

func TestView(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.txt")
	require.NoError(t, os.WriteFile(path, []byte("[a]\nx\n"), 0644))

	var got string
	require.NoError(t, View(path, func(s *Sheaf) error {
		sec, err := s.Get("a")
		if err != nil {
			return err
		}
		got, err = sec.Text()
		return err
	}))
	require.Equal(t, "x\n", got)
}

func TestViewRejectsMutation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ro.txt")
	require.NoError(t, os.WriteFile(path, []byte("[a]\nx\n"), 0644))

	// The mutation itself succeeds in memory; the close-time flush cannot
	// write a read-only backing and that failure is reported.
	err := View(path, func(s *Sheaf) error {
		return s.SetString("b", "y\n")
	})
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[a]\nx\n", string(data))
}
