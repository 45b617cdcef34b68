package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestCalc(t *testing.T) {
	out, err := runCLI(t, "calc", "--area", "Warehouse", "--date", "2025-03-10",
		"--start", "05:00", "--end", "08:00", "--break", "0", "--wage", "150", "--tax", "30")
	require.NoError(t, err)

	assert.Contains(t, out, "Gross:        615.00")
	assert.Contains(t, out, "Net:          430.50")
	assert.Contains(t, out, "Night premium")
	assert.Contains(t, out, "Morning premium (40%)")
}

func TestCalc_UsesDefaultsForOmittedFlags(t *testing.T) {
	out, err := runCLI(t, "calc", "--date", "2025-03-10")
	require.NoError(t, err)

	assert.Contains(t, out, "Store 2025-03-10 08:00-17:00, break 30 min")
	assert.Contains(t, out, "Gross:       1360.00")
}

func TestCalc_Errors(t *testing.T) {
	_, err := runCLI(t, "calc")
	assert.Error(t, err)

	_, err = runCLI(t, "calc", "--date", "2025-03-10", "--area", "Office")
	assert.Error(t, err)
}

func TestRoster(t *testing.T) {
	out, err := runCLI(t, "roster", "--rule", "FREQ=WEEKLY;BYDAY=SA", "--from", "2025-03-01", "--to", "2025-03-31",
		"--start", "12:00", "--end", "16:00", "--break", "0")
	require.NoError(t, err)

	assert.Contains(t, out, "5 shifts")
	assert.Contains(t, out, "Gross:       6400.00")
}

func TestWindowsAndClassify(t *testing.T) {
	out, err := runCLI(t, "windows", "--area", "Store", "--date", "2025-03-09")
	require.NoError(t, err)
	assert.Contains(t, out, "Sun 00:00:00.000 - Sun 23:59:59.999  100%  Sunday premium")

	out, err = runCLI(t, "classify", "--date", "2025-06-06")
	require.NoError(t, err)
	assert.Contains(t, out, "public holiday (National Day)")

	out, err = runCLI(t, "holidays")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-12-24  christmas_eve")
}
