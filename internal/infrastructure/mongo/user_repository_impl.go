package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/oksasatya/go-profile-service/internal/domain/entity"
	"github.com/oksasatya/go-profile-service/internal/domain/repository"
)

const usersCollection = "users"

type UserRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{collection: db.Collection(usersCollection), now: time.Now}
}

// EnsureIndexes creates the unique email index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	now := r.now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now

	doc := toUserDocument(u)
	doc.ID = bson.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}

	u.ID = doc.ID.Hex()
	for i := range u.Education {
		u.Education[i].ID = doc.Education[i].ID.Hex()
	}
	for i := range u.WorkExperience {
		u.WorkExperience[i].ID = doc.WorkExperience[i].ID.Hex()
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := userObjectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc userDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toEntity(), nil
}

// findOneAndUpdate applies update atomically and returns the document after it.
// notFound is returned when the filter matches nothing.
func (r *UserRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M, notFound error) (*entity.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc userDocument
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *UserRepository) updateByID(ctx context.Context, id string, update bson.M) (*entity.User, error) {
	oid, err := userObjectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOneAndUpdate(ctx, bson.M{"_id": oid}, update, repository.ErrNotFound)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, patch entity.ProfilePatch) (*entity.User, error) {
	return r.updateByID(ctx, id, profileUpdate(patch, r.now().UTC()))
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id string, hash string) error {
	oid, err := userObjectID(id)
	if err != nil {
		return err
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, setUpdate("password", hash, r.now().UTC()))
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id string, url string) (*entity.User, error) {
	return r.updateByID(ctx, id, setUpdate("avatarUrl", url, r.now().UTC()))
}

func (r *UserRepository) UpdateSettings(ctx context.Context, id string, s entity.Settings) (*entity.User, error) {
	return r.updateByID(ctx, id, setUpdate("settings", toSettingsDocument(s), r.now().UTC()))
}

func (r *UserRepository) AddEducation(ctx context.Context, id string, e entity.Education) (*entity.User, error) {
	doc := toEducationDocument(e, bson.NewObjectID())
	return r.updateByID(ctx, id, pushEntryUpdate(fieldEducation, doc, r.now().UTC()))
}

func (r *UserRepository) UpdateEducation(ctx context.Context, id, entryID string, e entity.Education) (*entity.User, error) {
	uid, eid, err := entryObjectIDs(id, entryID)
	if err != nil {
		return nil, err
	}
	doc := toEducationDocument(e, eid)
	return r.findOneAndUpdate(ctx, entryFilter(uid, fieldEducation, eid),
		replaceEntryUpdate(fieldEducation, doc, r.now().UTC()), repository.ErrEntryNotFound)
}

func (r *UserRepository) DeleteEducation(ctx context.Context, id, entryID string) (*entity.User, error) {
	return r.deleteEntry(ctx, id, fieldEducation, entryID)
}

func (r *UserRepository) AddWorkExperience(ctx context.Context, id string, w entity.WorkExperience) (*entity.User, error) {
	doc := toWorkExperienceDocument(w, bson.NewObjectID())
	return r.updateByID(ctx, id, pushEntryUpdate(fieldWorkExperience, doc, r.now().UTC()))
}

func (r *UserRepository) UpdateWorkExperience(ctx context.Context, id, entryID string, w entity.WorkExperience) (*entity.User, error) {
	uid, eid, err := entryObjectIDs(id, entryID)
	if err != nil {
		return nil, err
	}
	doc := toWorkExperienceDocument(w, eid)
	return r.findOneAndUpdate(ctx, entryFilter(uid, fieldWorkExperience, eid),
		replaceEntryUpdate(fieldWorkExperience, doc, r.now().UTC()), repository.ErrEntryNotFound)
}

func (r *UserRepository) DeleteWorkExperience(ctx context.Context, id, entryID string) (*entity.User, error) {
	return r.deleteEntry(ctx, id, fieldWorkExperience, entryID)
}

func (r *UserRepository) deleteEntry(ctx context.Context, id, field, entryID string) (*entity.User, error) {
	eid, ok := removableEntryID(entryID)
	if !ok {
		return r.GetByID(ctx, id)
	}
	return r.updateByID(ctx, id, pullEntryUpdate(field, eid, r.now().UTC()))
}

// userObjectID parses a user id. A malformed id cannot match any document.
func userObjectID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, repository.ErrNotFound
	}
	return oid, nil
}

// entryObjectIDs parses the owner and entry ids of an entry update. Either
// id being malformed means the entry does not exist for the caller.
func entryObjectIDs(id, entryID string) (bson.ObjectID, bson.ObjectID, error) {
	uid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, bson.ObjectID{}, repository.ErrEntryNotFound
	}
	eid, err := bson.ObjectIDFromHex(entryID)
	if err != nil {
		return bson.ObjectID{}, bson.ObjectID{}, repository.ErrEntryNotFound
	}
	return uid, eid, nil
}

// removableEntryID reports false for an entry id that cannot exist; deleting
// it removes nothing.
func removableEntryID(entryID string) (bson.ObjectID, bool) {
	eid, err := bson.ObjectIDFromHex(entryID)
	return eid, err == nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
