package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dailyjournal/db"
	"dailyjournal/models"
	"dailyjournal/utils"
)

var (
	// ErrNotFound is returned when no account matches the lookup.
	ErrNotFound = errors.New("auth: user not found")
	// ErrExists is returned when an insert hits a taken username.
	ErrExists = errors.New("auth: username taken")
)

// UserStore is the persistence seam for accounts. Insert maps unique
// index collisions to ErrExists; FindOrCreateGoogle is keyed on the
// Google subject so repeat logins reuse the same account.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (models.User, error)
	Insert(ctx context.Context, user models.User) error
	TouchLastLogin(ctx context.Context, userID string) error
	FindOrCreateGoogle(ctx context.Context, googleID, email string) (models.User, error)
}

// MongoUserStore backs the store with the users collection.
type MongoUserStore struct{}

func (MongoUserStore) FindByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (MongoUserStore) Insert(ctx context.Context, user models.User) error {
	_, err := db.UserCollection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrExists
	}
	return err
}

func (MongoUserStore) TouchLastLogin(ctx context.Context, userID string) error {
	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"last_login": time.Now()}},
	)
	return err
}

// FindOrCreateGoogle upserts on the Google subject so the first login
// creates the account and later logins reuse it.
func (MongoUserStore) FindOrCreateGoogle(ctx context.Context, googleID, email string) (models.User, error) {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{"last_login": now},
		"$setOnInsert": bson.M{
			"userid":     utils.NewUserID(),
			"username":   email,
			"googleid":   googleID,
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var user models.User
	err := db.UserCollection.FindOneAndUpdate(ctx, bson.M{"googleid": googleID}, update, opts).Decode(&user)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// MemoryUserStore is an in-process UserStore for tests.
type MemoryUserStore struct {
	mu    sync.Mutex
	users []models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{}
}

func (s *MemoryUserStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *MemoryUserStore) Insert(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username {
			return ErrExists
		}
	}
	s.users = append(s.users, user)
	return nil
}

func (s *MemoryUserStore) TouchLastLogin(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.UserID == userID {
			s.users[i].LastLogin = time.Now()
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryUserStore) FindOrCreateGoogle(_ context.Context, googleID, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.GoogleID == googleID {
			s.users[i].LastLogin = time.Now()
			return s.users[i], nil
		}
	}
	user := models.User{
		UserID:    utils.NewUserID(),
		Username:  email,
		GoogleID:  googleID,
		CreatedAt: time.Now(),
		LastLogin: time.Now(),
	}
	s.users = append(s.users, user)
	return user, nil
}
