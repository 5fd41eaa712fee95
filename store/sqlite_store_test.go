package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshaydev2089/payslip-vault/dto"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s := NewSQLiteStore(filepath.Join(t.TempDir(), "payslips.db"), nil)
	t.Cleanup(func() { s.Close() })
	return s
}

func testItem(createdAt time.Time) *dto.PayslipItem {
	return &dto.PayslipItem{
		ID:            uuid.New(),
		CreatedAt:     createdAt,
		Month:         "March",
		Year:          2024,
		Credits:       213280,
		Debits:        10000,
		DSOP:          40000,
		Tax:           45000,
		Name:          "Arjun Sharma",
		Location:      "Pune",
		AccountNumber: "12345678901",
		PANNumber:     "ABCDE1234F",
		EncryptedData: []byte("ciphertext"),
		Earnings:      map[string]float64{"Basic Pay": 136400, "Dearness Allowance": 61380},
		Deductions:    map[string]float64{"DSOP Fund": 40000, "Income Tax": 45000, "AGIF": 10000},
	}
}

func TestSaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	item := testItem(time.Now().UTC())
	require.NoError(t, s.Save(ctx, item))

	got, err := s.Get(ctx, item.ID)
	require.NoError(t, err)

	assert.Equal(t, item.ID, got.ID)
	assert.Equal(t, item.Month, got.Month)
	assert.Equal(t, item.Year, got.Year)
	assert.Equal(t, item.Credits, got.Credits)
	assert.Equal(t, item.Name, got.Name)
	assert.Equal(t, item.Earnings, got.Earnings)
	assert.Equal(t, item.Deductions, got.Deductions)
	assert.Equal(t, item.EncryptedData, got.EncryptedData)
}

func TestListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	oldest := testItem(base)
	middle := testItem(base.Add(24 * time.Hour))
	newest := testItem(base.Add(48 * time.Hour))

	require.NoError(t, s.Save(ctx, oldest))
	require.NoError(t, s.Save(ctx, newest))
	require.NoError(t, s.Save(ctx, middle))

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, newest.ID, items[0].ID)
	assert.Equal(t, middle.ID, items[1].ID)
	assert.Equal(t, oldest.ID, items[2].ID)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	item := testItem(time.Now().UTC())
	require.NoError(t, s.Save(ctx, item))

	require.NoError(t, s.Delete(ctx, item.ID))

	_, err := s.Get(ctx, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMissing(t *testing.T) {
	s := newTestStore(t)

	err := s.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveRejectsForeignRecordType(t *testing.T) {
	s := newTestStore(t)

	type bankStatement struct{ Account string }
	err := s.Save(context.Background(), &bankStatement{Account: "123"})

	assert.ErrorIs(t, err, dto.ErrUnsupportedType)
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListEmptyReturnsEmptySlice(t *testing.T) {
	s := newTestStore(t)

	items, err := s.List(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, items, "an empty table must serialize as [], not null")
	assert.Len(t, items, 0)
}
