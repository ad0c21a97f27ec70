package formats

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/voxelforge/voxedit/pkg/voxel"
)

func TestSproxel_RoundTrip(t *testing.T) {
	want := voxel.NewFrameSet(3, 2, 2)
	want.Set(0, 0, 0, 0xFF0000FF)
	want.Set(2, 1, 1, 0x00FF00FF)
	path := filepath.Join(t.TempDir(), "model.csv")

	codec := SproxelCodec{}
	if err := codec.Save(path, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := codec.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertSameContent(t, want, got)
}

func TestSproxel_WritesTopDown(t *testing.T) {
	fs := voxel.NewFrameSet(1, 2, 1)
	fs.Set(0, 1, 0, 0xAABBCCFF)
	path := filepath.Join(t.TempDir(), "model.csv")

	if err := (SproxelCodec{}).Save(path, fs); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(string(data), "\n")
	if lines[0] != "1,2,1" {
		t.Errorf("dimensions line = %q, expected \"1,2,1\"", lines[0])
	}
	// y=1 slab comes first; the occupied voxel is in it.
	if lines[1] != "#AABBCCFF" {
		t.Errorf("first slab row = %q, expected the top voxel", lines[1])
	}
}

func TestSproxel_CorruptInputs(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"empty":     "",
		"dims":      "not,a,size\n",
		"truncated": "2,2,2\n#FF0000FF,#00000000\n",
		"badcell":   "1,1,1\nnothex\n",
		"shortrow":  "2,1,1\n#FF0000FF\n",
	}
	for name, content := range cases {
		path := filepath.Join(dir, name+".csv")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := (SproxelCodec{}).Load(path); !errors.Is(err, ErrSproxelCorrupt) {
			t.Errorf("%s: expected ErrSproxelCorrupt, got %v", name, err)
		}
	}
}

func TestSproxel_TransparentCellsAreEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.csv")
	content := "2,1,1\n#FF000000,#00FF00FF\n\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := (SproxelCodec{}).Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Get(0, 0, 0) != voxel.Empty {
		t.Error("zero-alpha cell must load as empty space")
	}
	if got.Get(1, 0, 0) != 0x00FF00FF {
		t.Error("opaque cell lost")
	}
}
