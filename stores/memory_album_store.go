package stores

import (
	"context"
	"strings"
	"sync"

	"best-memories/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryAlbumStore keeps albums in process memory in insertion order. It backs local runs
// without MongoDB and the HTTP tests.
type MemoryAlbumStore struct {
	mu     sync.RWMutex
	order  []primitive.ObjectID
	albums map[primitive.ObjectID]*models.Album
}

func NewMemoryAlbumStore() *MemoryAlbumStore {
	return &MemoryAlbumStore{
		albums: make(map[primitive.ObjectID]*models.Album),
	}
}

func (s *MemoryAlbumStore) ListAlbums(ctx context.Context, owner, nameFilter string) ([]models.Album, error) {
	if err := validateFilter(nameFilter); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.Album{}
	for _, id := range s.order {
		album := s.albums[id]
		if !ownedBy(album, owner) || !containsFold(album.AlbumName, nameFilter) {
			continue
		}
		result = append(result, album.Clone())
	}
	return result, nil
}

func (s *MemoryAlbumStore) GetAlbum(ctx context.Context, id, owner string) (*models.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	album, err := s.find(id, owner)
	if err != nil {
		return nil, err
	}
	clone := album.Clone()
	return &clone, nil
}

func (s *MemoryAlbumStore) GetFile(ctx context.Context, albumID, fileID, owner string) (*models.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	album, err := s.find(albumID, owner)
	if err != nil {
		return nil, err
	}
	index := fileIndex(album, fileID)
	if index < 0 {
		return nil, ErrNotFound
	}
	file := album.Files[index]
	return &file, nil
}

func (s *MemoryAlbumStore) SearchFilesInAlbum(ctx context.Context, albumID, owner, textFilter string) (*models.Album, error) {
	if err := validateFilter(textFilter); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	album, err := s.find(albumID, owner)
	if err != nil {
		return nil, err
	}
	result := album.Clone()
	result.Files = []models.File{}
	for _, file := range album.Files {
		if containsFold(file.FileName, textFilter) {
			result.Files = append(result.Files, file)
		}
	}
	return &result, nil
}

func (s *MemoryAlbumStore) CreateAlbum(ctx context.Context, album models.Album) (*models.Album, error) {
	if err := validateNewAlbum(album); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if album.Owner != "" {
		for _, existing := range s.albums {
			if existing.Owner == album.Owner && existing.AlbumName == album.AlbumName {
				return nil, &NameConflictError{Name: album.AlbumName}
			}
		}
	}

	album.ID = primitive.NewObjectID()
	album.Files = assignFileIDs(album.Files)
	stored := album.Clone()
	s.albums[album.ID] = &stored
	s.order = append(s.order, album.ID)
	return &album, nil
}

func (s *MemoryAlbumStore) ReplaceAlbumFields(ctx context.Context, id, owner string, fields AlbumFields) (*models.Album, error) {
	if err := validateFields(id, fields); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	album, err := s.find(id, owner)
	if err != nil {
		return nil, err
	}
	if fields.AlbumName != nil {
		album.AlbumName = *fields.AlbumName
	}
	if fields.DateCreated != nil {
		album.DateCreated = *fields.DateCreated
	}
	if fields.Comment != nil {
		album.Comment = *fields.Comment
	}
	if fields.Files != nil {
		album.Files = assignFileIDs(*fields.Files)
	}
	clone := album.Clone()
	return &clone, nil
}

func (s *MemoryAlbumStore) AppendFiles(ctx context.Context, id, owner, bodyID string, files []models.File) (*models.Album, error) {
	if id == "" || bodyID != id {
		return nil, &IDMismatchError{PathID: id, BodyID: bodyID}
	}
	if err := validateFiles(files); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	album, err := s.find(id, owner)
	if err != nil {
		return nil, err
	}
	album.Files = append(album.Files, assignFileIDs(files)...)
	clone := album.Clone()
	return &clone, nil
}

func (s *MemoryAlbumStore) UpdateFileFields(ctx context.Context, albumID, fileID, owner string, fields FileFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	album, err := s.find(albumID, owner)
	if err != nil {
		return err
	}
	index := fileIndex(album, fileID)
	if index < 0 {
		return nil
	}
	if fields.FrontEndFileName != nil {
		album.Files[index].FrontEndFileName = *fields.FrontEndFileName
	}
	if fields.Comment != nil {
		album.Files[index].Comment = *fields.Comment
	}
	return nil
}

func (s *MemoryAlbumStore) RemoveFile(ctx context.Context, albumID, fileID, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	album, err := s.find(albumID, owner)
	if err != nil {
		return err
	}
	if index := fileIndex(album, fileID); index >= 0 {
		album.Files = append(album.Files[:index:index], album.Files[index+1:]...)
	}
	return nil
}

func (s *MemoryAlbumStore) DeleteAlbum(ctx context.Context, id, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	album, err := s.find(id, owner)
	if err != nil {
		return nil
	}
	delete(s.albums, album.ID)
	for i, existing := range s.order {
		if existing == album.ID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// find must be called with the lock held.
func (s *MemoryAlbumStore) find(id, owner string) (*models.Album, error) {
	oID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	album, ok := s.albums[oID]
	if !ok || !ownedBy(album, owner) {
		return nil, ErrNotFound
	}
	return album, nil
}

func fileIndex(album *models.Album, fileID string) int {
	fID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return -1
	}
	for i, file := range album.Files {
		if file.ID == fID {
			return i
		}
	}
	return -1
}

func ownedBy(album *models.Album, owner string) bool {
	return owner == "" || album.Owner == owner
}

func containsFold(value, substr string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(substr))
}
