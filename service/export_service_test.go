package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/akshaydev2089/payslip-vault/dto"
)

func TestWriteXLSX(t *testing.T) {
	st := &fakeStore{saved: []*dto.PayslipItem{
		{
			ID:        uuid.New(),
			CreatedAt: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
			Month:     "March",
			Year:      2024,
			Name:      "Arjun Sharma",
			Credits:   213280,
			Debits:    10000,
			DSOP:      40000,
			Tax:       45000,
		},
		{
			ID:        uuid.New(),
			CreatedAt: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			Month:     "February",
			Year:      2024,
			Name:      "Arjun Sharma",
			Credits:   213280,
			Debits:    12000,
			DSOP:      40000,
			Tax:       45000,
		},
	}}
	exporter := NewExportService(st, nil)

	var buf bytes.Buffer
	require.NoError(t, exporter.WriteXLSX(context.Background(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Month", "Year", "Name", "Credits", "Debits", "DSOP", "Income Tax", "Net Remittance"}, rows[0])
	assert.Equal(t, []string{"March", "2024", "Arjun Sharma", "213280", "10000", "40000", "45000", "118280"}, rows[1])
	assert.Equal(t, "February", rows[2][0])
	assert.Equal(t, "116280", rows[2][7])
}

func TestWriteXLSXEmptyStore(t *testing.T) {
	exporter := NewExportService(&fakeStore{}, nil)

	var buf bytes.Buffer
	require.NoError(t, exporter.WriteXLSX(context.Background(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 1, "only the header row")
}
