package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/interviewqa/apiserver/internal/store"
	"github.com/interviewqa/apiserver/types"
)

// QuestionRepository handles persistence for questions.
type QuestionRepository struct {
	conn *Connector
}

func NewQuestionRepository(conn *Connector) *QuestionRepository {
	return &QuestionRepository{conn: conn}
}

func (r *QuestionRepository) List(ctx context.Context, jobID, subJobID string) ([]types.Question, error) {
	ids, err := objectIDs(jobID, subJobID)
	if err != nil {
		return []types.Question{}, nil
	}
	coll, err := r.conn.collection(ctx, questionsCollection)
	if err != nil {
		return nil, err
	}

	// ObjectIDs grow monotonically, so _id order is insertion order.
	cur, err := coll.Find(ctx,
		bson.M{"mainJobCategory": ids[0], "mainSubJobCategory": ids[1]},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	var docs []questionDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	questions := make([]types.Question, 0, len(docs))
	for _, d := range docs {
		questions = append(questions, d.toQuestion())
	}
	return questions, nil
}

func (r *QuestionRepository) Get(ctx context.Context, jobID, subJobID, questionID string) (types.Question, error) {
	ids, err := objectIDs(jobID, subJobID, questionID)
	if err != nil {
		return types.Question{}, err
	}
	return r.findOne(ctx, bson.M{
		"_id":                ids[2],
		"mainJobCategory":    ids[0],
		"mainSubJobCategory": ids[1],
	})
}

func (r *QuestionRepository) GetByID(ctx context.Context, id string) (types.Question, error) {
	oid, err := objectID(id)
	if err != nil {
		return types.Question{}, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *QuestionRepository) findOne(ctx context.Context, filter bson.M) (types.Question, error) {
	coll, err := r.conn.collection(ctx, questionsCollection)
	if err != nil {
		return types.Question{}, err
	}
	var doc questionDocument
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return types.Question{}, translate(err)
	}
	return doc.toQuestion(), nil
}

func (r *QuestionRepository) Create(ctx context.Context, question types.Question) (types.Question, error) {
	ids, err := objectIDs(question.CreatedBy, question.MainJobCategory, question.MainSubJobCategory)
	if err != nil {
		return types.Question{}, err
	}
	coll, err := r.conn.collection(ctx, questionsCollection)
	if err != nil {
		return types.Question{}, err
	}

	doc := questionDocument{
		ID:                 primitive.NewObjectID(),
		Title:              question.Title,
		Description:        question.Description,
		CreatedDate:        now(),
		CreatedBy:          ids[0],
		MainJobCategory:    ids[1],
		MainSubJobCategory: ids[2],
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return types.Question{}, translate(err)
	}
	return doc.toQuestion(), nil
}

func (r *QuestionRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	coll, err := r.conn.collection(ctx, questionsCollection)
	if err != nil {
		return err
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
