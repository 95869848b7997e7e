package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/interviewqa/apiserver/types"
)

// JobRepository handles persistence for jobs.
type JobRepository struct {
	conn *Connector
}

func NewJobRepository(conn *Connector) *JobRepository {
	return &JobRepository{conn: conn}
}

func (r *JobRepository) List(ctx context.Context) ([]types.Job, error) {
	coll, err := r.conn.collection(ctx, jobsCollection)
	if err != nil {
		return nil, err
	}
	cur, err := coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []jobDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	jobs := make([]types.Job, 0, len(docs))
	for _, d := range docs {
		jobs = append(jobs, d.toJob())
	}
	return jobs, nil
}

func (r *JobRepository) Get(ctx context.Context, id string) (types.Job, error) {
	oid, err := objectID(id)
	if err != nil {
		return types.Job{}, err
	}
	coll, err := r.conn.collection(ctx, jobsCollection)
	if err != nil {
		return types.Job{}, err
	}

	var doc jobDocument
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return types.Job{}, translate(err)
	}
	return doc.toJob(), nil
}

func (r *JobRepository) Create(ctx context.Context, job types.Job) (types.Job, error) {
	coll, err := r.conn.collection(ctx, jobsCollection)
	if err != nil {
		return types.Job{}, err
	}

	doc := jobDocument{
		ID:          primitive.NewObjectID(),
		Title:       job.Title,
		ImageURL:    job.ImageURL,
		CreatedDate: now(),
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return types.Job{}, translate(err)
	}
	return doc.toJob(), nil
}
