package mongodb

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/interviewqa/apiserver/internal/store"
	"github.com/interviewqa/apiserver/types"
)

type jobDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	ImageURL    string             `bson:"imageUrl"`
	CreatedDate time.Time          `bson:"createdDate"`
}

func (d jobDocument) toJob() types.Job {
	return types.Job{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		ImageURL:    d.ImageURL,
		CreatedDate: d.CreatedDate,
	}
}

type subJobDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Title           string             `bson:"title"`
	ImageURL        string             `bson:"imageUrl"`
	MainJobCategory primitive.ObjectID `bson:"mainJobCategory"`
	CreatedDate     time.Time          `bson:"createdDate"`
}

func (d subJobDocument) toSubJob() types.SubJob {
	return types.SubJob{
		ID:              d.ID.Hex(),
		Title:           d.Title,
		ImageURL:        d.ImageURL,
		MainJobCategory: d.MainJobCategory.Hex(),
		CreatedDate:     d.CreatedDate,
	}
}

type questionDocument struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	Title              string             `bson:"title"`
	Description        string             `bson:"description"`
	CreatedDate        time.Time          `bson:"createdDate"`
	CreatedBy          primitive.ObjectID `bson:"createdBy"`
	MainJobCategory    primitive.ObjectID `bson:"mainJobCategory"`
	MainSubJobCategory primitive.ObjectID `bson:"mainSubJobCategory"`
}

func (d questionDocument) toQuestion() types.Question {
	return types.Question{
		ID:                 d.ID.Hex(),
		Title:              d.Title,
		Description:        d.Description,
		CreatedDate:        d.CreatedDate,
		CreatedBy:          d.CreatedBy.Hex(),
		MainJobCategory:    d.MainJobCategory.Hex(),
		MainSubJobCategory: d.MainSubJobCategory.Hex(),
	}
}

type userDocument struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Username    string               `bson:"username"`
	Email       string               `bson:"email"`
	Password    string               `bson:"password"`
	Questions   []primitive.ObjectID `bson:"questions"`
	Favorites   []primitive.ObjectID `bson:"favorites"`
	CreatedDate time.Time            `bson:"createdDate"`
}

func (d userDocument) toUser() types.User {
	return types.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.Password,
		Questions:    hexIDs(d.Questions),
		Favorites:    hexIDs(d.Favorites),
		CreatedDate:  d.CreatedDate,
	}
}

// objectID parses an opaque id. Ids that are not valid ObjectIDs cannot name
// any document, so they are reported as not found.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, store.ErrNotFound
	}
	return oid, nil
}

func objectIDs(ids ...string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := objectID(id)
		if err != nil {
			return nil, err
		}
		out = append(out, oid)
	}
	return out, nil
}

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return store.ErrConflict
	default:
		return err
	}
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
