package posts

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dailyjournal/db"
	"dailyjournal/models"
)

// ErrNotFound is returned when no post carries the requested ID.
var ErrNotFound = errors.New("posts: not found")

// Store is the persistence seam for journal entries. List and Delete
// are owner-scoped; a delete naming another user's post removes
// nothing.
type Store interface {
	Insert(ctx context.Context, post models.Post) error
	List(ctx context.Context, userID string, limit int64) ([]models.Post, error)
	Get(ctx context.Context, postID string) (models.Post, error)
	Delete(ctx context.Context, postID, userID string) (bool, error)
}

// MongoStore backs the store with the posts collection.
type MongoStore struct{}

func (MongoStore) Insert(ctx context.Context, post models.Post) error {
	_, err := db.PostsCollection.InsertOne(ctx, post)
	return err
}

func (MongoStore) List(ctx context.Context, userID string, limit int64) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := db.PostsCollection.Find(ctx, bson.M{"userid": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []models.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (MongoStore) Get(ctx context.Context, postID string) (models.Post, error) {
	var post models.Post
	err := db.PostsCollection.FindOne(ctx, bson.M{"postid": postID}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return models.Post{}, ErrNotFound
	}
	if err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// Delete removes the post only when the requester owns it. The filter
// carries both keys, so cross-user deletes are no-ops at the store.
func (MongoStore) Delete(ctx context.Context, postID, userID string) (bool, error) {
	res, err := db.PostsCollection.DeleteOne(ctx, bson.M{"postid": postID, "userid": userID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// MemoryStore is an in-process Store for tests.
type MemoryStore struct {
	mu    sync.Mutex
	posts []models.Post
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Insert(_ context.Context, post models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = append(s.posts, post)
	return nil
}

func (s *MemoryStore) List(_ context.Context, userID string, limit int64) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Post
	for _, p := range s.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, postID string) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.PostID == postID {
			return p, nil
		}
	}
	return models.Post{}, ErrNotFound
}

func (s *MemoryStore) Delete(_ context.Context, postID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.posts {
		if p.PostID == postID && p.UserID == userID {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
