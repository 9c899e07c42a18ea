package workorders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studio-kirana/kirana-erp/internal/shared"
)

type mockRepo struct {
	orders    map[int64]SPK
	next      int64
	sequences map[string]int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{orders: make(map[int64]SPK), sequences: make(map[string]int64)}
}

func (m *mockRepo) List(_ context.Context, _ shared.ListFilters) ([]SPK, int, error) {
	var out []SPK
	for _, s := range m.orders {
		out = append(out, s)
	}
	return out, len(out), nil
}

func (m *mockRepo) Get(_ context.Context, id int64) (SPK, error) {
	s, ok := m.orders[id]
	if !ok {
		return SPK{}, shared.ErrNotFound
	}
	return s, nil
}

func (m *mockRepo) Create(_ context.Context, s SPK) (SPK, error) {
	m.next++
	s.ID = m.next
	m.orders[s.ID] = s
	return s, nil
}

func (m *mockRepo) Update(_ context.Context, id int64, s SPK) error {
	if _, ok := m.orders[id]; !ok {
		return shared.ErrNotFound
	}
	s.ID = id
	m.orders[id] = s
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.orders[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

func (m *mockRepo) GenerateNumber(_ context.Context, issued time.Time) (string, error) {
	period := issued.Format("200601")
	m.sequences[period]++
	return FormatNumber(issued, m.sequences[period]), nil
}

func TestIssueNumbersWithinMonth(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil, nil, nil)

	first, err := svc.Issue(context.Background(), 1, SPKForm{ProjectID: 1, DeveloperID: 2})
	require.NoError(t, err)
	second, err := svc.Issue(context.Background(), 1, SPKForm{ProjectID: 1, DeveloperID: 3})
	require.NoError(t, err)

	now := time.Now().UTC()
	assert.Equal(t, FormatNumber(now, 1), first.Number)
	assert.Equal(t, FormatNumber(now, 2), second.Number)
}

func TestDeletedOrderLeavesNumberGap(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil, nil, nil)

	first, err := svc.Issue(context.Background(), 1, SPKForm{ProjectID: 1, DeveloperID: 2})
	require.NoError(t, err)
	_, err = svc.Issue(context.Background(), 1, SPKForm{ProjectID: 1, DeveloperID: 2})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), 1, first.ID))

	third, err := svc.Issue(context.Background(), 1, SPKForm{ProjectID: 1, DeveloperID: 2})
	require.NoError(t, err)
	assert.Equal(t, FormatNumber(time.Now().UTC(), 3), third.Number, "a deleted order's number is never reissued")
}

func TestUpdateKeepsNumber(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil, nil, nil)

	issued, err := svc.Issue(context.Background(), 1, SPKForm{ProjectID: 1, DeveloperID: 2})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), 1, issued.ID, SPKForm{ProjectID: 9, DeveloperID: 4})
	require.NoError(t, err)
	assert.Equal(t, issued.Number, updated.Number)
	assert.Equal(t, int64(9), updated.ProjectID)
}
