package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interviewqa/apiserver/config"
	"github.com/interviewqa/apiserver/types"
)

func TestNewMemoryApp(t *testing.T) {
	ctx := context.Background()
	app, err := New(ctx, config.Config{JWTSecret: "x", StoreBackend: config.StoreMemory})
	require.NoError(t, err)
	defer app.Close(ctx)

	job, err := app.Jobs.Create(ctx, types.JobInput{Title: "Backend", ImageURL: "https://img.example.com/b.png"})
	require.NoError(t, err)
	got, err := app.Jobs.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job, got)
}

func TestNewMongoAppConnectsLazily(t *testing.T) {
	ctx := context.Background()
	app, err := New(ctx, config.Config{
		JWTSecret:    "x",
		StoreBackend: config.StoreMongo,
		Mongo:        config.MongoConfig{URI: "mongodb://127.0.0.1:1", Database: "test"},
	})
	require.NoError(t, err)
	assert.NoError(t, app.Close(ctx))
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := New(context.Background(), config.Config{StoreBackend: config.StoreMemory})
	assert.EqualError(t, err, "JWT_SECRET is required")
}
