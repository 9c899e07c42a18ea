package billing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studio-kirana/kirana-erp/internal/shared"
)

type mockRepo struct {
	invoices map[int64]Invoice
	next     int64
	perYear  map[int]int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{invoices: make(map[int64]Invoice), perYear: make(map[int]int64)}
}

func (m *mockRepo) List(_ context.Context, _ shared.ListFilters, status Status) ([]Invoice, int, error) {
	var out []Invoice
	for _, inv := range m.invoices {
		if status == "" || inv.Status == status {
			out = append(out, inv)
		}
	}
	return out, len(out), nil
}

func (m *mockRepo) Get(_ context.Context, id int64) (Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok {
		return Invoice{}, shared.ErrNotFound
	}
	return inv, nil
}

func (m *mockRepo) Create(_ context.Context, inv Invoice) (Invoice, error) {
	m.next++
	inv.ID = m.next
	m.invoices[inv.ID] = inv
	return inv, nil
}

func (m *mockRepo) Update(_ context.Context, id int64, inv Invoice) error {
	if _, ok := m.invoices[id]; !ok {
		return shared.ErrNotFound
	}
	inv.ID = id
	m.invoices[id] = inv
	return nil
}

func (m *mockRepo) SetStatus(_ context.Context, id int64, status Status, paidAt *time.Time) error {
	inv, ok := m.invoices[id]
	if !ok {
		return shared.ErrNotFound
	}
	inv.Status = status
	inv.PaidAt = paidAt
	m.invoices[id] = inv
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.invoices[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.invoices, id)
	return nil
}

func (m *mockRepo) GenerateNumber(_ context.Context, year int) (string, error) {
	m.perYear[year]++
	return FormatNumber(year, m.perYear[year]), nil
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "INV/2024/001", FormatNumber(2024, 1))
	assert.Equal(t, "INV/2024/042", FormatNumber(2024, 42))
	assert.Equal(t, "INV/2025/1042", FormatNumber(2025, 1042))
}

func TestCreateAssignsSequentialNumbers(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil, nil, nil)

	first, err := svc.Create(context.Background(), 1, InvoiceForm{ClientID: 7, Amount: 1_500_000})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), 1, InvoiceForm{ClientID: 7, Amount: 500_000})
	require.NoError(t, err)

	year := time.Now().UTC().Year()
	assert.Equal(t, FormatNumber(year, 1), first.Number)
	assert.Equal(t, FormatNumber(year, 2), second.Number)
	assert.Equal(t, StatusDraft, first.Status)
}

func TestDeletedDraftLeavesNumberGap(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil, nil, nil)

	first, err := svc.Create(context.Background(), 1, InvoiceForm{ClientID: 7, Amount: 1_000_000})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 1, InvoiceForm{ClientID: 7, Amount: 500_000})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), 1, first.ID))

	third, err := svc.Create(context.Background(), 1, InvoiceForm{ClientID: 7, Amount: 250_000})
	require.NoError(t, err)
	year := time.Now().UTC().Year()
	assert.Equal(t, FormatNumber(year, 3), third.Number, "a deleted draft's number is never reissued")
}

func TestLifecycle(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil, nil, nil)
	inv, err := svc.Create(context.Background(), 1, InvoiceForm{ClientID: 7, Amount: 1_000_000})
	require.NoError(t, err)

	issued, err := svc.SetStatus(context.Background(), 1, inv.ID, StatusIssued)
	require.NoError(t, err)
	assert.Equal(t, StatusIssued, issued.Status)
	assert.Nil(t, issued.PaidAt)

	paid, err := svc.SetStatus(context.Background(), 1, inv.ID, StatusPaid)
	require.NoError(t, err)
	require.NotNil(t, paid.PaidAt)

	_, err = svc.SetStatus(context.Background(), 1, inv.ID, StatusVoid)
	assert.Error(t, err, "paid invoices never void")

	_, err = svc.Update(context.Background(), 1, inv.ID, InvoiceForm{ClientID: 7, Amount: 2})
	assert.Error(t, err, "paid invoices never change")
}

func TestDeleteOnlyDrafts(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil, nil, nil)
	inv, err := svc.Create(context.Background(), 1, InvoiceForm{ClientID: 7, Amount: 1})
	require.NoError(t, err)

	_, err = svc.SetStatus(context.Background(), 1, inv.ID, StatusIssued)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), 1, inv.ID)
	assert.Error(t, err)
}
