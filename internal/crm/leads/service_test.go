package leads

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studio-kirana/kirana-erp/internal/shared"
)

type mockRepo struct {
	leads map[int64]Lead
	next  int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{leads: make(map[int64]Lead)}
}

func (m *mockRepo) List(_ context.Context, _ shared.ListFilters, status Status) ([]Lead, int, error) {
	var out []Lead
	for _, l := range m.leads {
		if status == "" || l.Status == status {
			out = append(out, l)
		}
	}
	return out, len(out), nil
}

func (m *mockRepo) Get(_ context.Context, id int64) (Lead, error) {
	l, ok := m.leads[id]
	if !ok {
		return Lead{}, shared.ErrNotFound
	}
	return l, nil
}

func (m *mockRepo) Create(_ context.Context, l Lead) (Lead, error) {
	m.next++
	l.ID = m.next
	m.leads[l.ID] = l
	return l, nil
}

func (m *mockRepo) Update(_ context.Context, id int64, l Lead) error {
	if _, ok := m.leads[id]; !ok {
		return shared.ErrNotFound
	}
	l.ID = id
	m.leads[id] = l
	return nil
}

func (m *mockRepo) SetStatus(_ context.Context, id int64, status Status, clientID *int64) error {
	l, ok := m.leads[id]
	if !ok {
		return shared.ErrNotFound
	}
	l.Status = status
	if clientID != nil {
		l.ClientID = clientID
	}
	m.leads[id] = l
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.leads[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.leads, id)
	return nil
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		allowed  bool
	}{
		{StatusBaru, StatusDiproses, true},
		{StatusBaru, StatusBatal, true},
		{StatusBaru, StatusClosing, false},
		{StatusDiproses, StatusClosing, true},
		{StatusDiproses, StatusBatal, true},
		{StatusDiproses, StatusBaru, false},
		{StatusClosing, StatusBatal, false},
		{StatusBatal, StatusBaru, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanMoveTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestMoveStatusRejectsSkippingStages(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil, nil, nil)
	created, err := svc.Create(context.Background(), 1, LeadForm{Name: "Toko Maju"})
	require.NoError(t, err)
	require.Equal(t, StatusBaru, created.Status)

	_, err = svc.MoveStatus(context.Background(), 1, created.ID, StatusClosing)
	require.Error(t, err)
	assert.Equal(t, StatusBaru, repo.leads[created.ID].Status, "failed move leaves the lead untouched")
}

func TestMoveStatusWalksPipeline(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil, nil, nil)
	created, err := svc.Create(context.Background(), 1, LeadForm{Name: "Toko Maju"})
	require.NoError(t, err)

	moved, err := svc.MoveStatus(context.Background(), 1, created.ID, StatusDiproses)
	require.NoError(t, err)
	assert.Equal(t, StatusDiproses, moved.Status)

	moved, err = svc.MoveStatus(context.Background(), 1, created.ID, StatusClosing)
	require.NoError(t, err)
	assert.Equal(t, StatusClosing, moved.Status)

	_, err = svc.MoveStatus(context.Background(), 1, created.ID, StatusBatal)
	assert.Error(t, err, "closing is terminal")
}

func TestMoveStatusUnknownStage(t *testing.T) {
	svc := NewService(newMockRepo(), nil, nil, nil)
	_, err := svc.MoveStatus(context.Background(), 1, 1, Status("selesai"))
	assert.Error(t, err)
}
