package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/flowtests/internal/models"
)

func TestResolve(t *testing.T) {
	dir := filepath.Join("flowtests", "Foo")

	tests := []struct {
		name  string
		files []string
		want  models.ArtifactSet
	}{
		{
			name: "empty directory",
			want: models.ArtifactSet{},
		},
		{
			name:  "lexicographically last candidate wins",
			files: []string{"0_warped_a.png", "0_warped_b.png", "0_out.png"},
			want: models.ArtifactSet{
				{Index: 0, ComparisonImage: filepath.Join(dir, "0_warped_b.png"), OutputImage: filepath.Join(dir, "0_out.png")},
			},
		},
		{
			name:  "gaps are skipped and scanning continues",
			files: []string{"0_warped_x.png", "2_warped_x.png", "9_warped_x.png"},
			want: models.ArtifactSet{
				{Index: 0, ComparisonImage: filepath.Join(dir, "0_warped_x.png"), OutputImage: filepath.Join(dir, "0_out.png")},
				{Index: 2, ComparisonImage: filepath.Join(dir, "2_warped_x.png"), OutputImage: filepath.Join(dir, "2_out.png")},
				{Index: 9, ComparisonImage: filepath.Join(dir, "9_warped_x.png"), OutputImage: filepath.Join(dir, "9_out.png")},
			},
		},
		{
			name:  "missing first index does not stop the scan",
			files: []string{"3_warped_x.png"},
			want: models.ArtifactSet{
				{Index: 3, ComparisonImage: filepath.Join(dir, "3_warped_x.png"), OutputImage: filepath.Join(dir, "3_out.png")},
			},
		},
		{
			name:  "output images alone do not form iterations",
			files: []string{"0_out.png", "1_out.png"},
			want:  models.ArtifactSet{},
		},
		{
			name:  "indices beyond nine are ignored",
			files: []string{"10_warped_x.png"},
			want:  models.ArtifactSet{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore(dir, tt.files...)

			set, err := Resolve(store, dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, set)
		})
	}
}

func TestResolve_StrictlyIncreasingIndices(t *testing.T) {
	dir := "d"
	store := newMemStore(dir, "7_warped_a.png", "1_warped_a.png", "1_warped_c.png", "4_warped_b.png", "1_warped_b.png")

	set, err := Resolve(store, dir)
	require.NoError(t, err)
	require.Len(t, set, 3)
	for i := 1; i < len(set); i++ {
		assert.Less(t, set[i-1].Index, set[i].Index)
	}
	assert.Equal(t, filepath.Join(dir, "1_warped_c.png"), set[0].ComparisonImage)
}

func TestResolve_FSStore(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "Foo")
	require.NoError(t, os.MkdirAll(dir, 0755))
	for _, name := range []string{"0_warped_a.png", "0_warped_b.png", "0_out.png", "0_warped_c.PNG", "1_warped_z.png", "1_out.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("png"), 0644))
	}

	set, err := Resolve(NewFSStore(), dir)
	require.NoError(t, err)
	assert.Equal(t, models.ArtifactSet{
		{Index: 0, ComparisonImage: filepath.Join(dir, "0_warped_b.png"), OutputImage: filepath.Join(dir, "0_out.png")},
		{Index: 1, ComparisonImage: filepath.Join(dir, "1_warped_z.png"), OutputImage: filepath.Join(dir, "1_out.png")},
	}, set)
}

func TestResolve_MissingDirectory(t *testing.T) {
	set, err := Resolve(NewFSStore(), filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, set)
}
