package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

// Remote backends run only when a server is configured:
//
//	GRIDSTACK_TEST_REDIS_URL=redis://localhost:6379/15
//	GRIDSTACK_TEST_MONGO_URI=mongodb://localhost:27017

func scope(t *testing.T) Keyer {
	return NewScopedKeyer(nil, "test:"+uuid.NewString()+":")
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("GRIDSTACK_TEST_REDIS_URL")
	if url == "" {
		t.Skip("GRIDSTACK_TEST_REDIS_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := NewRedisStore(ctx, url, scope(t), time.Minute)
	if err != nil {
		t.Fatalf("NewRedisStore() error: %v", err)
	}
	defer s.Close()
	testStore(t, s)
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("GRIDSTACK_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("GRIDSTACK_TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := NewMongoStore(ctx, MongoOptions{URI: uri, Database: "gridstack_test", Keyer: scope(t)})
	if err != nil {
		t.Fatalf("NewMongoStore() error: %v", err)
	}
	defer s.Close()
	testStore(t, s)
}
