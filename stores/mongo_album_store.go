package stores

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"best-memories/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoAlbumStore struct {
	collection *mongo.Collection
}

func NewMongoAlbumStore(collection *mongo.Collection) *MongoAlbumStore {
	return &MongoAlbumStore{collection: collection}
}

// EnsureIndexes creates the owner/name index used by listing and the duplicate name check.
func (s *MongoAlbumStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}, {Key: "albumName", Value: 1}},
		Options: options.Index().SetName("user_albumName"),
	})
	if err != nil {
		return fmt.Errorf("create albums index: %w", err)
	}
	return nil
}

func (s *MongoAlbumStore) ListAlbums(ctx context.Context, owner, nameFilter string) ([]models.Album, error) {
	if err := validateFilter(nameFilter); err != nil {
		return nil, err
	}
	filter := ownerFilter(bson.M{}, owner)
	if nameFilter != "" {
		filter["albumName"] = containsPattern(nameFilter)
	}

	cur, err := s.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find albums: %w", err)
	}
	albums := []models.Album{}
	if err := cur.All(ctx, &albums); err != nil {
		return nil, fmt.Errorf("decode albums: %w", err)
	}
	return albums, nil
}

func (s *MongoAlbumStore) GetAlbum(ctx context.Context, id, owner string) (*models.Album, error) {
	oID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	album := models.Album{}
	err = s.collection.FindOne(ctx, ownerFilter(bson.M{"_id": oID}, owner)).Decode(&album)
	if err != nil {
		return nil, notFoundOr(err, "find album "+id)
	}
	return &album, nil
}

func (s *MongoAlbumStore) GetFile(ctx context.Context, albumID, fileID, owner string) (*models.File, error) {
	oID, err := primitive.ObjectIDFromHex(albumID)
	if err != nil {
		return nil, ErrNotFound
	}
	fID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, ErrNotFound
	}
	projection := options.FindOne().SetProjection(bson.M{"files": bson.M{"$elemMatch": bson.M{"_id": fID}}})
	album := models.Album{}
	err = s.collection.FindOne(ctx, ownerFilter(bson.M{"_id": oID}, owner), projection).Decode(&album)
	if err != nil {
		return nil, notFoundOr(err, "find file "+fileID)
	}
	if len(album.Files) == 0 {
		return nil, ErrNotFound
	}
	return &album.Files[0], nil
}

// SearchFilesInAlbum explodes the album's files into rows, keeps the rows whose fileName
// contains textFilter and folds them back into a single album document.
func (s *MongoAlbumStore) SearchFilesInAlbum(ctx context.Context, albumID, owner, textFilter string) (*models.Album, error) {
	if err := validateFilter(textFilter); err != nil {
		return nil, err
	}
	oID, err := primitive.ObjectIDFromHex(albumID)
	if err != nil {
		return nil, ErrNotFound
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: ownerFilter(bson.M{"_id": oID}, owner)}},
		{{Key: "$unwind", Value: "$files"}},
		{{Key: "$match", Value: bson.M{"files.fileName": containsPattern(textFilter)}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$_id"},
			{Key: "albumName", Value: bson.M{"$first": "$albumName"}},
			{Key: "dateCreated", Value: bson.M{"$first": "$dateCreated"}},
			{Key: "comment", Value: bson.M{"$first": "$comment"}},
			{Key: "user", Value: bson.M{"$first": "$user"}},
			{Key: "files", Value: bson.M{"$push": "$files"}},
		}}},
	}
	cur, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("search files in album %s: %w", albumID, err)
	}
	matches := []models.Album{}
	if err := cur.All(ctx, &matches); err != nil {
		return nil, fmt.Errorf("decode file search for album %s: %w", albumID, err)
	}
	if len(matches) > 0 {
		return &matches[0], nil
	}

	// nothing matched: show the album anyway, without files
	album, err := s.GetAlbum(ctx, albumID, owner)
	if err != nil {
		return nil, err
	}
	album.Files = []models.File{}
	return album, nil
}

func (s *MongoAlbumStore) CreateAlbum(ctx context.Context, album models.Album) (*models.Album, error) {
	if err := validateNewAlbum(album); err != nil {
		return nil, err
	}
	if album.Owner != "" {
		count, err := s.collection.CountDocuments(ctx, bson.M{"user": album.Owner, "albumName": album.AlbumName})
		if err != nil {
			return nil, fmt.Errorf("count albums named %q: %w", album.AlbumName, err)
		}
		if count > 0 {
			return nil, &NameConflictError{Name: album.AlbumName}
		}
	}

	album.ID = primitive.NewObjectID()
	album.Files = assignFileIDs(album.Files)
	if _, err := s.collection.InsertOne(ctx, album); err != nil {
		return nil, fmt.Errorf("insert album: %w", err)
	}
	return &album, nil
}

func (s *MongoAlbumStore) ReplaceAlbumFields(ctx context.Context, id, owner string, fields AlbumFields) (*models.Album, error) {
	if err := validateFields(id, fields); err != nil {
		return nil, err
	}
	if fields.empty() {
		return s.GetAlbum(ctx, id, owner)
	}
	oID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	toUpdate := bson.M{}
	if fields.AlbumName != nil {
		toUpdate["albumName"] = *fields.AlbumName
	}
	if fields.DateCreated != nil {
		toUpdate["dateCreated"] = *fields.DateCreated
	}
	if fields.Comment != nil {
		toUpdate["comment"] = *fields.Comment
	}
	if fields.Files != nil {
		toUpdate["files"] = assignFileIDs(*fields.Files)
	}
	return s.findAndUpdate(ctx, ownerFilter(bson.M{"_id": oID}, owner), bson.M{"$set": toUpdate}, "update album "+id)
}

func (s *MongoAlbumStore) AppendFiles(ctx context.Context, id, owner, bodyID string, files []models.File) (*models.Album, error) {
	if id == "" || bodyID != id {
		return nil, &IDMismatchError{PathID: id, BodyID: bodyID}
	}
	if err := validateFiles(files); err != nil {
		return nil, err
	}
	oID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	update := bson.M{"$push": bson.M{"files": bson.M{"$each": assignFileIDs(files)}}}
	return s.findAndUpdate(ctx, ownerFilter(bson.M{"_id": oID}, owner), update, "append files to album "+id)
}

func (s *MongoAlbumStore) UpdateFileFields(ctx context.Context, albumID, fileID, owner string, fields FileFields) error {
	oID, err := primitive.ObjectIDFromHex(albumID)
	if err != nil {
		return ErrNotFound
	}
	fID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil || fields.empty() {
		return s.albumExists(ctx, oID, owner)
	}

	toUpdate := bson.M{}
	if fields.FrontEndFileName != nil {
		toUpdate["files.$.frontEndFileName"] = *fields.FrontEndFileName
	}
	if fields.Comment != nil {
		toUpdate["files.$.comment"] = *fields.Comment
	}
	res, err := s.collection.UpdateOne(ctx, ownerFilter(bson.M{"_id": oID, "files._id": fID}, owner), bson.M{"$set": toUpdate})
	if err != nil {
		return fmt.Errorf("update file %s in album %s: %w", fileID, albumID, err)
	}
	if res.MatchedCount == 0 {
		return s.albumExists(ctx, oID, owner)
	}
	return nil
}

func (s *MongoAlbumStore) RemoveFile(ctx context.Context, albumID, fileID, owner string) error {
	oID, err := primitive.ObjectIDFromHex(albumID)
	if err != nil {
		return ErrNotFound
	}
	fID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return s.albumExists(ctx, oID, owner)
	}
	res, err := s.collection.UpdateOne(ctx, ownerFilter(bson.M{"_id": oID}, owner), bson.M{"$pull": bson.M{"files": bson.M{"_id": fID}}})
	if err != nil {
		return fmt.Errorf("remove file %s from album %s: %w", fileID, albumID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoAlbumStore) DeleteAlbum(ctx context.Context, id, owner string) error {
	oID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := s.collection.DeleteOne(ctx, ownerFilter(bson.M{"_id": oID}, owner)); err != nil {
		return fmt.Errorf("delete album %s: %w", id, err)
	}
	return nil
}

func (s *MongoAlbumStore) findAndUpdate(ctx context.Context, filter, update bson.M, op string) (*models.Album, error) {
	after := options.FindOneAndUpdate().SetReturnDocument(options.After)
	album := models.Album{}
	if err := s.collection.FindOneAndUpdate(ctx, filter, update, after).Decode(&album); err != nil {
		return nil, notFoundOr(err, op)
	}
	return &album, nil
}

func (s *MongoAlbumStore) albumExists(ctx context.Context, oID primitive.ObjectID, owner string) error {
	count, err := s.collection.CountDocuments(ctx, ownerFilter(bson.M{"_id": oID}, owner))
	if err != nil {
		return fmt.Errorf("count album %s: %w", oID.Hex(), err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

func ownerFilter(filter bson.M, owner string) bson.M {
	if owner != "" {
		filter["user"] = owner
	}
	return filter
}

// containsPattern builds a case-insensitive literal substring match.
func containsPattern(text string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
}

func notFoundOr(err error, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
