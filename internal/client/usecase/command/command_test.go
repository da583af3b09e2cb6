package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mundiclass/backend/internal/client/domain"
)

// memClientRepo is an in-memory ClientRepository for command tests
type memClientRepo struct {
	clients map[uint]*domain.Client
	nextID  uint
}

func newMemClientRepo() *memClientRepo {
	return &memClientRepo{clients: make(map[uint]*domain.Client)}
}

func (r *memClientRepo) Create(c *domain.Client) error {
	r.nextID++
	c.ID = r.nextID
	stored := *c
	r.clients[c.ID] = &stored
	return nil
}

func (r *memClientRepo) FindByID(id uint) (*domain.Client, error) {
	if c, ok := r.clients[id]; ok {
		found := *c
		return &found, nil
	}
	return nil, domain.ErrClientNotFound
}

func (r *memClientRepo) FindByCedula(cedula string) (*domain.Client, error) {
	for _, c := range r.clients {
		if c.Cedula == cedula {
			found := *c
			return &found, nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *memClientRepo) FindAll(clientType string, frequent *bool, nameContains string, limit, offset int) ([]domain.Client, error) {
	var out []domain.Client
	for _, c := range r.clients {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memClientRepo) Update(c *domain.Client) error {
	stored := *c
	r.clients[c.ID] = &stored
	return nil
}

func (r *memClientRepo) Delete(id uint) error {
	delete(r.clients, id)
	return nil
}

func (r *memClientRepo) Count() (int64, error) {
	return int64(len(r.clients)), nil
}

type recordedDeletion struct {
	entityTable string
	recordID    uint
}

type fakeRecorder struct {
	records []recordedDeletion
}

func (f *fakeRecorder) RecordDeletion(ctx context.Context, entityTable string, recordID uint, snapshot interface{}) error {
	f.records = append(f.records, recordedDeletion{entityTable, recordID})
	return nil
}

func TestCreateClientDefaultsToRetail(t *testing.T) {
	handler := NewCreateClientHandler(newMemClientRepo())

	client, err := handler.Handle(CreateClientCommand{Name: "Maria Lopez", Cedula: "001-1234567-8"})
	require.NoError(t, err)
	assert.Equal(t, domain.TypeRetail, client.Type)
	assert.True(t, client.IsActive)
}

func TestCreateClientRejectsUnknownType(t *testing.T) {
	handler := NewCreateClientHandler(newMemClientRepo())

	_, err := handler.Handle(CreateClientCommand{Name: "Maria Lopez", Cedula: "001-1234567-8", Type: "vip"})
	assert.Error(t, err)
}

func TestCreateClientAcceptsWholesale(t *testing.T) {
	handler := NewCreateClientHandler(newMemClientRepo())

	client, err := handler.Handle(CreateClientCommand{Name: "Distribuidora Norte", Cedula: "002-7654321-0", Type: domain.TypeWholesale})
	require.NoError(t, err)
	assert.Equal(t, domain.TypeWholesale, client.Type)
}

func TestCreateClientRejectsDuplicateCedula(t *testing.T) {
	repo := newMemClientRepo()
	handler := NewCreateClientHandler(repo)

	_, err := handler.Handle(CreateClientCommand{Name: "Maria Lopez", Cedula: "001-1234567-8"})
	require.NoError(t, err)

	_, err = handler.Handle(CreateClientCommand{Name: "Another Person", Cedula: "001-1234567-8"})
	assert.ErrorIs(t, err, domain.ErrClientExists)
}

func TestUpdateClientMergesOnlySetFields(t *testing.T) {
	repo := newMemClientRepo()
	created, err := NewCreateClientHandler(repo).Handle(CreateClientCommand{
		Name:   "Maria Lopez",
		Cedula: "001-1234567-8",
		Phone:  "809-555-0101",
	})
	require.NoError(t, err)

	frequent := true
	updated, err := NewUpdateClientHandler(repo).Handle(UpdateClientCommand{ID: created.ID, Frequent: &frequent})
	require.NoError(t, err)

	assert.True(t, updated.Frequent)
	assert.Equal(t, "Maria Lopez", updated.Name)
	assert.Equal(t, "809-555-0101", updated.Phone, "unset fields stay as they were")
}

func TestUpdateClientRejectsTakenCedula(t *testing.T) {
	repo := newMemClientRepo()
	create := NewCreateClientHandler(repo)
	first, err := create.Handle(CreateClientCommand{Name: "Maria Lopez", Cedula: "001-1234567-8"})
	require.NoError(t, err)
	_, err = create.Handle(CreateClientCommand{Name: "Juan Perez", Cedula: "002-7654321-0"})
	require.NoError(t, err)

	taken := "002-7654321-0"
	_, err = NewUpdateClientHandler(repo).Handle(UpdateClientCommand{ID: first.ID, Cedula: &taken})
	assert.ErrorIs(t, err, domain.ErrClientExists)
}

func TestUpdateClientRejectsUnknownType(t *testing.T) {
	repo := newMemClientRepo()
	created, err := NewCreateClientHandler(repo).Handle(CreateClientCommand{Name: "Maria Lopez", Cedula: "001-1234567-8"})
	require.NoError(t, err)

	bad := domain.ClientType("vip")
	_, err = NewUpdateClientHandler(repo).Handle(UpdateClientCommand{ID: created.ID, Type: &bad})
	assert.Error(t, err)
}

func TestDeleteClientRecordsHistory(t *testing.T) {
	repo := newMemClientRepo()
	created, err := NewCreateClientHandler(repo).Handle(CreateClientCommand{Name: "Maria Lopez", Cedula: "001-1234567-8"})
	require.NoError(t, err)

	recorder := &fakeRecorder{}
	require.NoError(t, NewDeleteClientHandler(repo, recorder).Handle(context.Background(), DeleteClientCommand{ID: created.ID}))

	_, err = repo.FindByID(created.ID)
	assert.ErrorIs(t, err, domain.ErrClientNotFound)

	require.Len(t, recorder.records, 1)
	assert.Equal(t, "clients", recorder.records[0].entityTable)
	assert.Equal(t, created.ID, recorder.records[0].recordID)
}
