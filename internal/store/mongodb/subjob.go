package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/interviewqa/apiserver/types"
)

// SubJobRepository handles persistence for sub-jobs.
type SubJobRepository struct {
	conn *Connector
}

func NewSubJobRepository(conn *Connector) *SubJobRepository {
	return &SubJobRepository{conn: conn}
}

func (r *SubJobRepository) ListByJob(ctx context.Context, jobID string) ([]types.SubJob, error) {
	jobOID, err := objectID(jobID)
	if err != nil {
		return []types.SubJob{}, nil
	}
	coll, err := r.conn.collection(ctx, subJobsCollection)
	if err != nil {
		return nil, err
	}

	cur, err := coll.Find(ctx,
		bson.M{"mainJobCategory": jobOID},
		options.Find().SetSort(bson.D{{Key: "title", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	var docs []subJobDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	subJobs := make([]types.SubJob, 0, len(docs))
	for _, d := range docs {
		subJobs = append(subJobs, d.toSubJob())
	}
	return subJobs, nil
}

func (r *SubJobRepository) Get(ctx context.Context, jobID, subJobID string) (types.SubJob, error) {
	ids, err := objectIDs(jobID, subJobID)
	if err != nil {
		return types.SubJob{}, err
	}
	return r.findOne(ctx, bson.M{"_id": ids[1], "mainJobCategory": ids[0]})
}

func (r *SubJobRepository) GetByID(ctx context.Context, id string) (types.SubJob, error) {
	oid, err := objectID(id)
	if err != nil {
		return types.SubJob{}, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *SubJobRepository) findOne(ctx context.Context, filter bson.M) (types.SubJob, error) {
	coll, err := r.conn.collection(ctx, subJobsCollection)
	if err != nil {
		return types.SubJob{}, err
	}
	var doc subJobDocument
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return types.SubJob{}, translate(err)
	}
	return doc.toSubJob(), nil
}

func (r *SubJobRepository) Create(ctx context.Context, subJob types.SubJob) (types.SubJob, error) {
	jobOID, err := objectID(subJob.MainJobCategory)
	if err != nil {
		return types.SubJob{}, err
	}
	coll, err := r.conn.collection(ctx, subJobsCollection)
	if err != nil {
		return types.SubJob{}, err
	}

	doc := subJobDocument{
		ID:              primitive.NewObjectID(),
		Title:           subJob.Title,
		ImageURL:        subJob.ImageURL,
		MainJobCategory: jobOID,
		CreatedDate:     now(),
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return types.SubJob{}, translate(err)
	}
	return doc.toSubJob(), nil
}
