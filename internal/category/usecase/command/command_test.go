package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mundiclass/backend/internal/category/domain"
	"github.com/mundiclass/backend/pkg/logger"
)

func init() {
	logger.Init("category-command-test", false)
}

// memCategoryRepo is an in-memory CategoryRepository for command tests
type memCategoryRepo struct {
	categories map[uint]*domain.Category
	nextID     uint
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: make(map[uint]*domain.Category)}
}

func (r *memCategoryRepo) Create(c *domain.Category) error {
	r.nextID++
	c.ID = r.nextID
	stored := *c
	r.categories[c.ID] = &stored
	return nil
}

func (r *memCategoryRepo) FindByID(id uint) (*domain.Category, error) {
	if c, ok := r.categories[id]; ok {
		found := *c
		return &found, nil
	}
	return nil, domain.ErrCategoryNotFound
}

func (r *memCategoryRepo) FindByName(name string) (*domain.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			found := *c
			return &found, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (r *memCategoryRepo) FindByCode(code string) (*domain.Category, error) {
	for _, c := range r.categories {
		if c.Code != nil && *c.Code == code {
			found := *c
			return &found, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (r *memCategoryRepo) FindAll(nameContains string, limit, offset int) ([]domain.Category, error) {
	var out []domain.Category
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memCategoryRepo) Update(c *domain.Category) error {
	stored := *c
	r.categories[c.ID] = &stored
	return nil
}

func (r *memCategoryRepo) Delete(id uint) error {
	delete(r.categories, id)
	return nil
}

func (r *memCategoryRepo) Count() (int64, error) {
	return int64(len(r.categories)), nil
}

// recordedDeletion captures what a delete command handed to the audit log
type recordedDeletion struct {
	entityTable string
	recordID    uint
	snapshot    interface{}
}

type fakeRecorder struct {
	records []recordedDeletion
}

func (f *fakeRecorder) RecordDeletion(ctx context.Context, entityTable string, recordID uint, snapshot interface{}) error {
	f.records = append(f.records, recordedDeletion{entityTable, recordID, snapshot})
	return nil
}

func strPtr(s string) *string { return &s }

func TestCreateCategory(t *testing.T) {
	repo := newMemCategoryRepo()
	handler := NewCreateCategoryHandler(repo)

	category, err := handler.Handle(CreateCategoryCommand{Name: "Electronics", Code: strPtr("ELEC")})
	require.NoError(t, err)
	assert.NotZero(t, category.ID)
	assert.Equal(t, "Electronics", category.Name)
}

func TestCreateCategoryRejectsShortName(t *testing.T) {
	handler := NewCreateCategoryHandler(newMemCategoryRepo())

	_, err := handler.Handle(CreateCategoryCommand{Name: "E"})
	assert.Error(t, err)
}

func TestCreateCategoryRejectsDuplicates(t *testing.T) {
	repo := newMemCategoryRepo()
	handler := NewCreateCategoryHandler(repo)

	_, err := handler.Handle(CreateCategoryCommand{Name: "Electronics", Code: strPtr("ELEC")})
	require.NoError(t, err)

	_, err = handler.Handle(CreateCategoryCommand{Name: "Electronics"})
	assert.ErrorIs(t, err, domain.ErrCategoryExists, "duplicate name")

	_, err = handler.Handle(CreateCategoryCommand{Name: "Gadgets", Code: strPtr("ELEC")})
	assert.ErrorIs(t, err, domain.ErrCategoryExists, "duplicate code")
}

func TestUpdateCategoryMergesOnlySetFields(t *testing.T) {
	repo := newMemCategoryRepo()
	created, err := NewCreateCategoryHandler(repo).Handle(CreateCategoryCommand{Name: "Electronics", Code: strPtr("ELEC")})
	require.NoError(t, err)

	handler := NewUpdateCategoryHandler(repo)

	updated, err := handler.Handle(UpdateCategoryCommand{ID: created.ID, Name: strPtr("Gadgets")})
	require.NoError(t, err)
	assert.Equal(t, "Gadgets", updated.Name)
	require.NotNil(t, updated.Code)
	assert.Equal(t, "ELEC", *updated.Code, "unset fields stay as they were")
}

func TestUpdateCategoryRejectsTakenName(t *testing.T) {
	repo := newMemCategoryRepo()
	create := NewCreateCategoryHandler(repo)
	first, err := create.Handle(CreateCategoryCommand{Name: "Electronics"})
	require.NoError(t, err)
	_, err = create.Handle(CreateCategoryCommand{Name: "Gadgets"})
	require.NoError(t, err)

	_, err = NewUpdateCategoryHandler(repo).Handle(UpdateCategoryCommand{ID: first.ID, Name: strPtr("Gadgets")})
	assert.ErrorIs(t, err, domain.ErrCategoryExists)
}

func TestUpdateCategoryKeepingOwnNameIsAllowed(t *testing.T) {
	repo := newMemCategoryRepo()
	created, err := NewCreateCategoryHandler(repo).Handle(CreateCategoryCommand{Name: "Electronics"})
	require.NoError(t, err)

	_, err = NewUpdateCategoryHandler(repo).Handle(UpdateCategoryCommand{ID: created.ID, Name: strPtr("Electronics")})
	assert.NoError(t, err)
}

func TestUpdateCategoryNotFound(t *testing.T) {
	handler := NewUpdateCategoryHandler(newMemCategoryRepo())

	_, err := handler.Handle(UpdateCategoryCommand{ID: 42, Name: strPtr("Gadgets")})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestDeleteCategoryRecordsHistory(t *testing.T) {
	repo := newMemCategoryRepo()
	created, err := NewCreateCategoryHandler(repo).Handle(CreateCategoryCommand{Name: "Electronics"})
	require.NoError(t, err)

	recorder := &fakeRecorder{}
	handler := NewDeleteCategoryHandler(repo, recorder)

	require.NoError(t, handler.Handle(context.Background(), DeleteCategoryCommand{ID: created.ID}))

	_, err = repo.FindByID(created.ID)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	require.Len(t, recorder.records, 1)
	assert.Equal(t, "categories", recorder.records[0].entityTable)
	assert.Equal(t, created.ID, recorder.records[0].recordID)
	snapshot, ok := recorder.records[0].snapshot.(*domain.Category)
	require.True(t, ok)
	assert.Equal(t, "Electronics", snapshot.Name)
}

type failingRecorder struct{ err error }

func (f failingRecorder) RecordDeletion(ctx context.Context, entityTable string, recordID uint, snapshot interface{}) error {
	return f.err
}

func TestDeleteCategorySurvivesHistoryFailure(t *testing.T) {
	repo := newMemCategoryRepo()
	created, err := NewCreateCategoryHandler(repo).Handle(CreateCategoryCommand{Name: "Electronics"})
	require.NoError(t, err)

	handler := NewDeleteCategoryHandler(repo, failingRecorder{err: errors.New("history insert failed")})
	require.NoError(t, handler.Handle(context.Background(), DeleteCategoryCommand{ID: created.ID}))

	_, err = repo.FindByID(created.ID)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound, "delete sticks even when the audit append fails")
}

func TestDeleteCategoryNotFound(t *testing.T) {
	handler := NewDeleteCategoryHandler(newMemCategoryRepo(), &fakeRecorder{})

	err := handler.Handle(context.Background(), DeleteCategoryCommand{ID: 42})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}
