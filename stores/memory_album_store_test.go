package stores

import (
	"context"
	"strings"
	"testing"
	"time"

	"best-memories/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newAlbum(name, owner string, fileNames ...string) models.Album {
	album := models.Album{
		AlbumName:   name,
		DateCreated: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Comment:     "comment for " + name,
		Owner:       owner,
	}
	for _, fileName := range fileNames {
		album.Files = append(album.Files, models.File{FileName: fileName})
	}
	return album
}

func strPtr(s string) *string {
	return &s
}

func TestMemoryCreateAlbumAssignsIDs(t *testing.T) {
	store := NewMemoryAlbumStore()
	ctx := context.Background()

	created, err := store.CreateAlbum(ctx, newAlbum("Trip", "", "a.png", "b.png"))
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	require.Len(t, created.Files, 2)
	for _, file := range created.Files {
		assert.False(t, file.ID.IsZero())
	}

	stored, err := store.GetAlbum(ctx, created.ID.Hex(), "")
	require.NoError(t, err)
	assert.Equal(t, "Trip", stored.AlbumName)
	assert.Equal(t, "comment for Trip", stored.Comment)
}

func TestMemoryCreateAlbumRequiresFields(t *testing.T) {
	store := NewMemoryAlbumStore()
	ctx := context.Background()

	cases := []struct {
		name  string
		album models.Album
		field string
	}{
		{name: "missing name", album: models.Album{DateCreated: time.Now()}, field: "albumName"},
		{name: "missing date", album: models.Album{AlbumName: "Trip"}, field: "dateCreated"},
		{name: "file without name", album: models.Album{AlbumName: "Trip", DateCreated: time.Now(), Files: []models.File{{Comment: "x"}}}, field: "fileName"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.CreateAlbum(ctx, tc.album)
			var missing *MissingFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tc.field, missing.Field)
		})
	}

	albums, err := store.ListAlbums(ctx, "", "")
	require.NoError(t, err)
	assert.Empty(t, albums)
}

func TestMemoryDuplicateNamePerOwner(t *testing.T) {
	store := NewMemoryAlbumStore()
	ctx := context.Background()

	_, err := store.CreateAlbum(ctx, newAlbum("Trip", "alice"))
	require.NoError(t, err)

	_, err = store.CreateAlbum(ctx, newAlbum("Trip", "alice"))
	var conflict *NameConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "albumName", conflict.Location())

	_, err = store.CreateAlbum(ctx, newAlbum("Trip", "bob"))
	assert.NoError(t, err)

	_, err = store.CreateAlbum(ctx, newAlbum("trip", "alice"))
	assert.NoError(t, err, "name match is case sensitive")
}

func TestMemoryListAlbumsFiltersByOwnerAndName(t *testing.T) {
	store := NewMemoryAlbumStore()
	ctx := context.Background()

	for _, album := range []models.Album{
		newAlbum("Summer Trip", "alice"),
		newAlbum("Winter", "alice"),
		newAlbum("Trip (1+1)", "alice"),
		newAlbum("Bob's trip", "bob"),
	} {
		_, err := store.CreateAlbum(ctx, album)
		require.NoError(t, err)
	}

	all, err := store.ListAlbums(ctx, "alice", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	trips, err := store.ListAlbums(ctx, "alice", "TRIP")
	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, "Summer Trip", trips[0].AlbumName)

	literal, err := store.ListAlbums(ctx, "alice", "(1+1)")
	require.NoError(t, err)
	require.Len(t, literal, 1)
	assert.Equal(t, "Trip (1+1)", literal[0].AlbumName)

	unscoped, err := store.ListAlbums(ctx, "", "trip")
	require.NoError(t, err)
	assert.Len(t, unscoped, 3)

	_, err = store.ListAlbums(ctx, "alice", strings.Repeat("a", MaxFilterLength+1))
	assert.ErrorIs(t, err, ErrFilterTooLong)
}

func TestValidateFilterCountsCharacters(t *testing.T) {
	assert.NoError(t, validateFilter(strings.Repeat("é", MaxFilterLength)))
	assert.NoError(t, validateFilter(strings.Repeat("海", 40)))
	assert.ErrorIs(t, validateFilter(strings.Repeat("é", MaxFilterLength+1)), ErrFilterTooLong)
}

func TestMemoryOwnerScoping(t *testing.T) {
	store := NewMemoryAlbumStore()
	ctx := context.Background()

	created, err := store.CreateAlbum(ctx, newAlbum("Trip", "alice", "a.png"))
	require.NoError(t, err)
	id := created.ID.Hex()
	fileID := created.Files[0].ID.Hex()

	_, err = store.GetAlbum(ctx, id, "bob")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.GetFile(ctx, id, fileID, "bob")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.RemoveFile(ctx, id, fileID, "bob"), ErrNotFound)
	assert.ErrorIs(t, store.UpdateFileFields(ctx, id, fileID, "bob", FileFields{Comment: strPtr("x")}), ErrNotFound)

	require.NoError(t, store.DeleteAlbum(ctx, id, "bob"))
	_, err = store.GetAlbum(ctx, id, "alice")
	assert.NoError(t, err, "another owner cannot delete the album")
}

func TestMemorySearchFilesInAlbum(t *testing.T) {
	store := NewMemoryAlbumStore()
	ctx := context.Background()

	created, err := store.CreateAlbum(ctx, newAlbum("Trip", "alice", "Beach.png", "mountain.jpg", "beach-2.png"))
	require.NoError(t, err)
	id := created.ID.Hex()

	found, err := store.SearchFilesInAlbum(ctx, id, "alice", "beach")
	require.NoError(t, err)
	require.Len(t, found.Files, 2)
	assert.Equal(t, "Beach.png", found.Files[0].FileName)
	assert.Equal(t, "beach-2.png", found.Files[1].FileName)
	assert.Equal(t, "Trip", found.AlbumName)

	none, err := store.SearchFilesInAlbum(ctx, id, "alice", "desert")
	require.NoError(t, err)
	assert.Equal(t, "Trip", none.AlbumName)
	assert.Empty(t, none.Files)

	_, err = store.SearchFilesInAlbum(ctx, primitive.NewObjectID().Hex(), "alice", "beach")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryReplaceAlbumFields(t *testing.T) {
	store := NewMemoryAlbumStore()
	ctx := context.Background()

	created, err := store.CreateAlbum(ctx, newAlbum("Trip", "", "a.png"))
	require.NoError(t, err)
	id := created.ID.Hex()

	_, err = store.ReplaceAlbumFields(ctx, id, "", AlbumFields{ID: primitive.NewObjectID().Hex(), AlbumName: strPtr("Other")})
	var mismatch *IDMismatchError
	require.ErrorAs(t, err, &mismatch)

	unchanged, err := store.GetAlbum(ctx, id, "")
	require.NoError(t, err)
	assert.Equal(t, "Trip", unchanged.AlbumName)

	files := []models.File{{FileName: "x.png"}, {FileName: "y.png"}}
	updated, err := store.ReplaceAlbumFields(ctx, id, "", AlbumFields{ID: id, AlbumName: strPtr("Holiday"), Files: &files})
	require.NoError(t, err)
	assert.Equal(t, "Holiday", updated.AlbumName)
	assert.Equal(t, "comment for Trip", updated.Comment)
	require.Len(t, updated.Files, 2)
	assert.Equal(t, "x.png", updated.Files[0].FileName)

	_, err = store.ReplaceAlbumFields(ctx, id, "", AlbumFields{ID: id, AlbumName: strPtr("")})
	var missing *MissingFieldError
	assert.ErrorAs(t, err, &missing)
}

func TestMemoryAppendFiles(t *testing.T) {
	store := NewMemoryAlbumStore()
	ctx := context.Background()

	created, err := store.CreateAlbum(ctx, newAlbum("Trip", "", "a.png"))
	require.NoError(t, err)
	id := created.ID.Hex()

	updated, err := store.AppendFiles(ctx, id, "", id, []models.File{{FileName: "b.png"}})
	require.NoError(t, err)
	require.Len(t, updated.Files, 2)
	assert.Equal(t, "a.png", updated.Files[0].FileName)
	assert.Equal(t, "b.png", updated.Files[1].FileName)

	_, err = store.AppendFiles(ctx, id, "", "", []models.File{{FileName: "c.png"}})
	var mismatch *IDMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestMemoryFileUpdatesAndRemoval(t *testing.T) {
	store := NewMemoryAlbumStore()
	ctx := context.Background()

	created, err := store.CreateAlbum(ctx, newAlbum("Trip", "", "a.png", "b.png"))
	require.NoError(t, err)
	id := created.ID.Hex()
	fileID := created.Files[0].ID.Hex()

	require.NoError(t, store.UpdateFileFields(ctx, id, fileID, "", FileFields{FrontEndFileName: strPtr("Sunset"), Comment: strPtr("nice")}))
	file, err := store.GetFile(ctx, id, fileID, "")
	require.NoError(t, err)
	assert.Equal(t, "Sunset", file.FrontEndFileName)
	assert.Equal(t, "nice", file.Comment)
	assert.Equal(t, "a.png", file.FileName)

	require.NoError(t, store.UpdateFileFields(ctx, id, primitive.NewObjectID().Hex(), "", FileFields{Comment: strPtr("x")}))

	require.NoError(t, store.RemoveFile(ctx, id, primitive.NewObjectID().Hex(), ""))
	album, err := store.GetAlbum(ctx, id, "")
	require.NoError(t, err)
	assert.Len(t, album.Files, 2)

	require.NoError(t, store.RemoveFile(ctx, id, fileID, ""))
	album, err = store.GetAlbum(ctx, id, "")
	require.NoError(t, err)
	require.Len(t, album.Files, 1)
	assert.Equal(t, "b.png", album.Files[0].FileName)

	assert.ErrorIs(t, store.RemoveFile(ctx, primitive.NewObjectID().Hex(), fileID, ""), ErrNotFound)
}

func TestMemoryDeleteAlbum(t *testing.T) {
	store := NewMemoryAlbumStore()
	ctx := context.Background()

	created, err := store.CreateAlbum(ctx, newAlbum("Trip", ""))
	require.NoError(t, err)
	id := created.ID.Hex()

	require.NoError(t, store.DeleteAlbum(ctx, id, ""))
	_, err = store.GetAlbum(ctx, id, "")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, store.DeleteAlbum(ctx, id, ""))
	assert.NoError(t, store.DeleteAlbum(ctx, "not-an-id", ""))
}

func TestMemoryReturnsCopies(t *testing.T) {
	store := NewMemoryAlbumStore()
	ctx := context.Background()

	created, err := store.CreateAlbum(ctx, newAlbum("Trip", "", "a.png"))
	require.NoError(t, err)

	fetched, err := store.GetAlbum(ctx, created.ID.Hex(), "")
	require.NoError(t, err)
	fetched.AlbumName = "changed"
	fetched.Files[0].FileName = "changed.png"

	again, err := store.GetAlbum(ctx, created.ID.Hex(), "")
	require.NoError(t, err)
	assert.Equal(t, "Trip", again.AlbumName)
	assert.Equal(t, "a.png", again.Files[0].FileName)
}
