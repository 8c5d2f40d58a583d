package application

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportReport(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, newFakeGateway())
	ctx := context.Background()

	require.NoError(t, svc.Link(ctx, "Steve", "100", "steve_dc"))

	data, err := svc.ExportReport(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Whitelist", "A1")
	require.NoError(t, err)
	assert.Equal(t, "UUID", header)

	username, err := f.GetCellValue("Whitelist", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Steve", username)
}

func TestExportReportEmptyTable(t *testing.T) {
	svc := newTestService(newFakeStore(), newFakeGateway())

	data, err := svc.ExportReport(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Whitelist")
	require.NoError(t, err)
	assert.Len(t, rows, 1) // header only
}
