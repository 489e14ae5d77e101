// File: database/repository/user/user_firebase.go
package userRepo

import (
	"context"
	"fmt"

	"uprocket/models"
	"uprocket/utils"

	"firebase.google.com/go/v4/db"
)

// usersPath is the Realtime Database node holding all user records.
const usersPath = "uprocket/user"

// FirebaseUserRepo implements UserRepository on the Firebase Realtime Database.
type FirebaseUserRepo struct {
	client *db.Client
}

// NewFirebaseUserRepo creates a new instance of UserRepository backed by the
// Realtime Database client.
func NewFirebaseUserRepo() UserRepository {
	return &FirebaseUserRepo{client: utils.GetDBClient()}
}

// GetByUID retrieves a single user record.
func (r *FirebaseUserRepo) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	ref := r.client.NewRef(usersPath + "/" + uid)

	var stored *storedUser
	if err := ref.Get(ctx, &stored); err != nil {
		return nil, fmt.Errorf("failed to read user %s: %w", uid, err)
	}
	if stored == nil {
		return nil, nil
	}

	user := expand(*stored)
	return &user, nil
}

// GetAll retrieves every user record under the users node.
func (r *FirebaseUserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	ref := r.client.NewRef(usersPath)

	var stored map[string]storedUser
	if err := ref.Get(ctx, &stored); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	users := make([]models.User, 0, len(stored))
	for _, s := range stored {
		users = append(users, expand(s))
	}
	return users, nil
}

// GetLookingForWork retrieves all users with the work-availability flag set,
// filtered server-side on the indexed looking_for_work child.
func (r *FirebaseUserRepo) GetLookingForWork(ctx context.Context) ([]models.User, error) {
	q := r.client.NewRef(usersPath).OrderByChild("looking_for_work").EqualTo(true)

	var stored map[string]storedUser
	if err := q.Get(ctx, &stored); err != nil {
		return nil, fmt.Errorf("failed to query contractors: %w", err)
	}

	users := make([]models.User, 0, len(stored))
	for _, s := range stored {
		users = append(users, expand(s))
	}
	return users, nil
}

// Save writes the full record at the user's path, replacing whatever is there.
func (r *FirebaseUserRepo) Save(ctx context.Context, uid string, user models.User) error {
	ref := r.client.NewRef(usersPath + "/" + uid)
	if err := ref.Set(ctx, flatten(user)); err != nil {
		return fmt.Errorf("failed to save user %s: %w", uid, err)
	}
	return nil
}
