package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sitecms/internal/media"
	"sitecms/internal/model"
	repoMocks "sitecms/internal/repository/mocks"
	"sitecms/internal/storage"
)

// testEnv wires a real pipeline and retention over a temp directory so the
// tests observe actual files appearing and disappearing.
type testEnv struct {
	root      string
	pipeline  *media.Pipeline
	retention *media.Retention
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	store, err := storage.NewLocal(root, media.Dirs()...)
	require.NoError(t, err)
	return &testEnv{
		root:      root,
		pipeline:  media.NewPipeline(store, media.ImagePolicy(), 80),
		retention: media.NewRetention(store),
	}
}

// path turns a stored reference like "/uploads/team/x.webp" into the absolute
// location on disk.
func (e *testEnv) path(ref string) string {
	return filepath.Join(e.root, filepath.FromSlash(strings.TrimPrefix(ref, "/uploads/")))
}

func (e *testEnv) exists(ref string) bool {
	_, err := os.Stat(e.path(ref))
	return err == nil
}

// seed drops a placeholder file where an existing record's reference points.
func (e *testEnv) seed(t *testing.T, ref string) {
	t.Helper()
	require.NoError(t, os.WriteFile(e.path(ref), []byte("old"), 0o644))
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: uint8(40 * x), G: uint8(40 * y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func buildForm(t *testing.T, files map[string][][]byte) *multipart.Form {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for field, contents := range files {
		for i, content := range contents {
			part, err := w.CreateFormFile(field, field+"-"+string(rune('a'+i))+".png")
			require.NoError(t, err)
			_, err = part.Write(content)
			require.NoError(t, err)
		}
	}
	require.NoError(t, w.Close())

	reader := multipart.NewReader(&body, w.Boundary())
	form, err := reader.ReadForm(64 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form
}

func TestTeamService_CreateStoresImage(t *testing.T) {
	env := newTestEnv(t)
	repo := new(repoMocks.MockTeamRepository)
	svc := NewTeamService(repo, env.pipeline, env.retention)
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(m *model.TeamMember) bool {
		return m.Name == "Jane" && strings.HasPrefix(m.Image, "/uploads/team/") && strings.HasSuffix(m.Image, ".webp")
	})).Return(&model.TeamMember{ID: "id-1", Name: "Jane"}, nil)

	form := buildForm(t, map[string][][]byte{"image": {pngBytes(t)}})
	stored, err := svc.Create(ctx, TeamInput{Name: "Jane", Role: "Manager"}, form)

	require.NoError(t, err)
	assert.Equal(t, "id-1", stored.ID)
	repo.AssertExpectations(t)
}

func TestTeamService_CreateRollsBackFileOnRepoError(t *testing.T) {
	env := newTestEnv(t)
	repo := new(repoMocks.MockTeamRepository)
	svc := NewTeamService(repo, env.pipeline, env.retention)
	ctx := context.Background()

	var written string
	repo.On("Create", ctx, mock.MatchedBy(func(m *model.TeamMember) bool {
		written = m.Image
		return true
	})).Return(nil, errors.New("db down"))

	form := buildForm(t, map[string][][]byte{"image": {pngBytes(t)}})
	_, err := svc.Create(ctx, TeamInput{Name: "Jane"}, form)

	require.Error(t, err)
	require.NotEmpty(t, written)
	assert.False(t, env.exists(written), "file should be rolled back after insert failure")
}

func TestTeamService_CreateRequiresImage(t *testing.T) {
	env := newTestEnv(t)
	repo := new(repoMocks.MockTeamRepository)
	svc := NewTeamService(repo, env.pipeline, env.retention)

	_, err := svc.Create(context.Background(), TeamInput{Name: "Jane"}, buildForm(t, nil))

	assert.ErrorIs(t, err, media.ErrInvalidFileType)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTeamService_UpdateReleasesReplacedImage(t *testing.T) {
	env := newTestEnv(t)
	repo := new(repoMocks.MockTeamRepository)
	svc := NewTeamService(repo, env.pipeline, env.retention)
	ctx := context.Background()

	oldRef := "/uploads/team/1000000000000-aaaa1111.webp"
	env.seed(t, oldRef)

	existing := &model.TeamMember{ID: "id-1", Name: "Jane", Role: "Manager", Image: oldRef}
	repo.On("FindByID", ctx, "id-1").Return(existing, nil)

	var newRef string
	repo.On("Update", ctx, mock.MatchedBy(func(m *model.TeamMember) bool {
		newRef = m.Image
		return m.ID == "id-1" && m.Image != oldRef
	})).Return(&model.TeamMember{ID: "id-1"}, nil)

	form := buildForm(t, map[string][][]byte{"image": {pngBytes(t)}})
	_, err := svc.Update(ctx, "id-1", TeamInput{Name: "Jane", Role: "Lead"}, form)

	require.NoError(t, err)
	assert.False(t, env.exists(oldRef), "superseded image should be released")
	assert.True(t, env.exists(newRef), "replacement image should remain")
}

func TestTeamService_UpdateWithoutImageKeepsFile(t *testing.T) {
	env := newTestEnv(t)
	repo := new(repoMocks.MockTeamRepository)
	svc := NewTeamService(repo, env.pipeline, env.retention)
	ctx := context.Background()

	oldRef := "/uploads/team/1000000000000-bbbb2222.webp"
	env.seed(t, oldRef)

	existing := &model.TeamMember{ID: "id-1", Image: oldRef}
	repo.On("FindByID", ctx, "id-1").Return(existing, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(m *model.TeamMember) bool {
		return m.Image == oldRef
	})).Return(existing, nil)

	_, err := svc.Update(ctx, "id-1", TeamInput{Name: "Jane"}, buildForm(t, nil))

	require.NoError(t, err)
	assert.True(t, env.exists(oldRef))
}

func TestTeamService_DeleteReleasesImage(t *testing.T) {
	env := newTestEnv(t)
	repo := new(repoMocks.MockTeamRepository)
	svc := NewTeamService(repo, env.pipeline, env.retention)
	ctx := context.Background()

	ref := "/uploads/team/1000000000000-cccc3333.webp"
	env.seed(t, ref)

	repo.On("FindByID", ctx, "id-1").Return(&model.TeamMember{ID: "id-1", Image: ref}, nil)
	repo.On("Delete", ctx, "id-1").Return(nil)

	require.NoError(t, svc.Delete(ctx, "id-1"))
	assert.False(t, env.exists(ref))
}

func TestProjectService_CreateRejectsUnknownCategory(t *testing.T) {
	env := newTestEnv(t)
	repo := new(repoMocks.MockProjectRepository)
	svc := NewProjectService(repo, env.pipeline, env.retention)

	form := buildForm(t, map[string][][]byte{"image": {pngBytes(t)}})
	_, err := svc.Create(context.Background(), ProjectInput{Title: "X", Category: "nope"}, form)

	assert.ErrorIs(t, err, ErrInvalidCategory)

	entries, readErr := os.ReadDir(filepath.Join(env.root, "projects"))
	require.NoError(t, readErr)
	assert.Empty(t, entries, "rejected request should write nothing")
}

func TestProjectService_UpdateReplacesGalleryWholesale(t *testing.T) {
	env := newTestEnv(t)
	repo := new(repoMocks.MockProjectRepository)
	svc := NewProjectService(repo, env.pipeline, env.retention)
	ctx := context.Background()

	cover := "/uploads/projects/1000000000000-dddd4444.webp"
	oldGallery := []string{
		"/uploads/projects/1000000000000-eeee5555.webp",
		"/uploads/projects/1000000000000-ffff6666.webp",
	}
	env.seed(t, cover)
	for _, ref := range oldGallery {
		env.seed(t, ref)
	}

	existing := &model.Project{
		ID: "id-1", Title: "Site", Category: "commercial", Image: cover,
		Details: model.ProjectDetails{Gallery: oldGallery},
	}
	repo.On("FindByID", ctx, "id-1").Return(existing, nil)

	var updated *model.Project
	repo.On("Update", ctx, mock.MatchedBy(func(p *model.Project) bool {
		updated = p
		return len(p.Details.Gallery) == 1
	})).Return(existing, nil)

	form := buildForm(t, map[string][][]byte{"images": {pngBytes(t)}})
	_, err := svc.Update(ctx, "id-1", ProjectInput{Title: "Site", Category: "commercial"}, form)

	require.NoError(t, err)
	require.NotNil(t, updated)
	for _, ref := range oldGallery {
		assert.False(t, env.exists(ref), "old gallery file should be released: %s", ref)
	}
	assert.True(t, env.exists(cover), "untouched cover must survive a gallery-only update")
	assert.True(t, env.exists(updated.Details.Gallery[0]))
}

func TestGalleryService_DeleteReleasesBothBuckets(t *testing.T) {
	env := newTestEnv(t)
	repo := new(repoMocks.MockGalleryRepository)
	svc := NewGalleryService(repo, env.pipeline, env.retention)
	ctx := context.Background()

	clean := "/uploads/gallery/1000000000000-aabb1122.webp"
	dirty := []string{
		"/uploads/gallery/1000000000000-ccdd3344.webp",
		"/uploads/gallery/1000000000000-eeff5566.webp",
	}
	env.seed(t, clean)
	for _, ref := range dirty {
		env.seed(t, ref)
	}

	repo.On("FindByID", ctx, "id-1").Return(&model.GalleryEntry{ID: "id-1", Clean: clean, Dirty: dirty}, nil)
	repo.On("Delete", ctx, "id-1").Return(nil)

	require.NoError(t, svc.Delete(ctx, "id-1"))

	assert.False(t, env.exists(clean))
	for _, ref := range dirty {
		assert.False(t, env.exists(ref))
	}
}

func TestGalleryService_CreateRequiresClean(t *testing.T) {
	env := newTestEnv(t)
	repo := new(repoMocks.MockGalleryRepository)
	svc := NewGalleryService(repo, env.pipeline, env.retention)

	form := buildForm(t, map[string][][]byte{"dirty": {pngBytes(t)}})
	_, err := svc.Create(context.Background(), form)

	assert.ErrorIs(t, err, media.ErrInvalidFileType)

	entries, readErr := os.ReadDir(filepath.Join(env.root, "gallery"))
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestGetNotFound(t *testing.T) {
	env := newTestEnv(t)
	repo := new(repoMocks.MockTeamRepository)
	svc := NewTeamService(repo, env.pipeline, env.retention)

	repo.On("FindByID", mock.Anything, "missing").Return(nil, sql.ErrNoRows)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrIDRequired)
}
