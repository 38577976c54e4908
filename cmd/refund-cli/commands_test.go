package main

import (
	"bytes"
	"clipchain/types"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []types.RefundRecord{{
	ID:               42,
	Reference:        "kQ3m8xLp2RaZ",
	TransactionHash:  "0xabc",
	RecipientAddress: "0x71c7656ec7ab88b098defb751b7401b5f6d8976f",
	Amount:           "0.25",
	Token:            "USDC",
	Chain:            "base",
	Reason:           "Video generation failed: timeout, retry later",
	Status:           "pending",
	CreatedAt:        "2025-03-10T12:00:00Z",
}}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, sample))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "42", rows[1][0])
	// 原因里的逗号被正确转义
	assert.Equal(t, "Video generation failed: timeout, retry later", rows[1][7])
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printTable(&buf, sample))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "0.25 USDC")
	assert.Contains(t, lines[1], "kQ3m8xLp2RaZ")
}
