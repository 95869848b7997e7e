package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/interviewqa/apiserver/types"
)

// UserRepository handles persistence for users. Uniqueness of username and
// email is backed by the indexes created on connect.
type UserRepository struct {
	conn *Connector
}

func NewUserRepository(conn *Connector) *UserRepository {
	return &UserRepository{conn: conn}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (types.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return types.User{}, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (types.User, error) {
	coll, err := r.conn.collection(ctx, usersCollection)
	if err != nil {
		return types.User{}, err
	}
	var doc userDocument
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return types.User{}, translate(err)
	}
	return doc.toUser(), nil
}

func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	coll, err := r.conn.collection(ctx, usersCollection)
	if err != nil {
		return false, err
	}
	n, err := coll.CountDocuments(ctx,
		bson.M{"$or": bson.A{bson.M{"username": username}, bson.M{"email": email}}},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	coll, err := r.conn.collection(ctx, usersCollection)
	if err != nil {
		return types.User{}, err
	}

	doc := userDocument{
		ID:          primitive.NewObjectID(),
		Username:    user.Username,
		Email:       user.Email,
		Password:    user.PasswordHash,
		Questions:   []primitive.ObjectID{},
		Favorites:   []primitive.ObjectID{},
		CreatedDate: now(),
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return types.User{}, translate(err)
	}
	return doc.toUser(), nil
}

func (r *UserRepository) AddQuestion(ctx context.Context, userID, questionID string) (types.User, error) {
	return r.updateSet(ctx, userID, "$addToSet", "questions", questionID)
}

func (r *UserRepository) AddFavorite(ctx context.Context, userID, questionID string) (types.User, error) {
	return r.updateSet(ctx, userID, "$addToSet", "favorites", questionID)
}

func (r *UserRepository) RemoveFavorite(ctx context.Context, userID, questionID string) (types.User, error) {
	return r.updateSet(ctx, userID, "$pull", "favorites", questionID)
}

// updateSet applies op ($addToSet or $pull) to one reference set and returns
// the updated user.
func (r *UserRepository) updateSet(ctx context.Context, userID, op, field, questionID string) (types.User, error) {
	ids, err := objectIDs(userID, questionID)
	if err != nil {
		return types.User{}, err
	}
	coll, err := r.conn.collection(ctx, usersCollection)
	if err != nil {
		return types.User{}, err
	}

	var doc userDocument
	err = coll.FindOneAndUpdate(ctx,
		bson.M{"_id": ids[0]},
		bson.M{op: bson.M{field: ids[1]}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return types.User{}, translate(err)
	}
	return doc.toUser(), nil
}
