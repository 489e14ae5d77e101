package directory

import (
	"context"
	"testing"

	"uprocket/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users map[string]models.User
	saved []string
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	m := make(map[string]models.User, len(users))
	for _, u := range users {
		m[u.UID] = u
	}
	return &fakeUserRepo{users: m}
}

func (f *fakeUserRepo) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	u, ok := f.users[uid]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeUserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) GetLookingForWork(ctx context.Context) ([]models.User, error) {
	out := []models.User{}
	for _, u := range f.users {
		if u.LookingForWork {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Save(ctx context.Context, uid string, user models.User) error {
	f.users[uid] = user
	f.saved = append(f.saved, uid)
	return nil
}

func TestListContractorsFiltersByAvailability(t *testing.T) {
	repo := newFakeUserRepo(
		models.User{UID: "a", Name: "Ada", LookingForWork: true},
		models.User{UID: "b", Name: "Bob", LookingForWork: false},
	)
	svc := &DefaultDirectoryService{Repo: repo}

	contractors, err := svc.ListContractors(context.Background())
	require.NoError(t, err)
	require.Len(t, contractors, 1)
	assert.Equal(t, "a", contractors[0].UID)
}

func TestListContractorsSanitizesGrantAndConfigIDs(t *testing.T) {
	repo := newFakeUserRepo(models.User{
		UID:            "a",
		LookingForWork: true,
		GrantID:        "grant-1",
		ConfigID:       "cfg-30",
		ConfigID60:     "cfg-60",
	})
	svc := &DefaultDirectoryService{Repo: repo}

	contractors, err := svc.ListContractors(context.Background())
	require.NoError(t, err)
	require.Len(t, contractors, 1)

	// Contractor has no grant or config fields at all; round-trip the
	// struct to make sure nothing leaks through naming drift.
	c := contractors[0]
	assert.Equal(t, "a", c.UID)
}

func TestGetContractorByUIDUnknown(t *testing.T) {
	svc := &DefaultDirectoryService{Repo: newFakeUserRepo()}

	c, err := svc.GetContractorByUID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestGetContractorByUIDNotAcceptingWork(t *testing.T) {
	repo := newFakeUserRepo(models.User{UID: "a", LookingForWork: false})
	svc := &DefaultDirectoryService{Repo: repo}

	c, err := svc.GetContractorByUID(context.Background(), "a")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestGetContractorByUIDAcceptingWork(t *testing.T) {
	repo := newFakeUserRepo(models.User{UID: "a", Name: "Ada", LookingForWork: true})
	svc := &DefaultDirectoryService{Repo: repo}

	c, err := svc.GetContractorByUID(context.Background(), "a")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Ada", c.Name)
}

func TestSaveUserForcesUID(t *testing.T) {
	repo := newFakeUserRepo()
	svc := &DefaultDirectoryService{Repo: repo}

	err := svc.SaveUser(context.Background(), "real-uid", models.User{UID: "spoofed"})
	require.NoError(t, err)

	stored, ok := repo.users["real-uid"]
	require.True(t, ok)
	assert.Equal(t, "real-uid", stored.UID)
}

func TestEnsureUserCreatesOnFirstLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := &DefaultDirectoryService{Repo: repo}

	user, err := svc.EnsureUser(context.Background(), "u1", "Ada", "ada@example.com", "pic.png")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.UID)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotNil(t, user.Skills)
	assert.Len(t, repo.saved, 1)
}

func TestEnsureUserReturnsExistingUntouched(t *testing.T) {
	existing := models.User{UID: "u1", Name: "Ada", Title: "Engineer"}
	repo := newFakeUserRepo(existing)
	svc := &DefaultDirectoryService{Repo: repo}

	user, err := svc.EnsureUser(context.Background(), "u1", "Renamed", "new@example.com", "")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, "Engineer", user.Title)
	assert.Empty(t, repo.saved)
}
