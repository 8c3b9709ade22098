package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	dberr "flexdb/pkg/error"
	"flexdb/pkg/storage/dat/dattest"
)

// setupCLI writes a registry with CUSTOMER (file 1, 4 records in a 32-byte
// 3.0 record) and ORDERS (file 2, no data file), and returns the directory.
func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	customer := &dattest.Table{
		Current:  true,
		RootName: "CUSTOMER",
		Columns: []dattest.Column{
			{Name: "ID", Tag: dattest.TagNumeric, Length: 4, MainIndex: 1},
			{Name: "NAME", Tag: dattest.TagAscii, Length: 19},
			{Name: "SINCE", Tag: dattest.TagDate, Length: 3},
			{Name: "BALANCE", Tag: dattest.TagNumeric, Length: 6, Scale: 2},
		},
		Indexes: []dattest.Index{{Columns: []byte{1}}},
	}
	names := []string{"Acme", "Globex", "Initech", "Umbrella"}
	since := time.Date(2015, time.June, 1, 0, 0, 0, 0, time.UTC)
	for i, n := range names {
		customer.Records = append(customer.Records, customer.Record(
			dattest.Int(int64(i+1), 4),
			dattest.Ascii(n, 19),
			dattest.Date(since.AddDate(i, 0, 0), 3),
			dattest.Decimal(int64(100*(i+1)), 25, 6, 2),
		))
	}
	customer.Write(t, dir, "customer")
	dattest.WriteFileList(t, dir,
		dattest.Entry{Number: 1, Root: "CUSTOMER", Description: "Customers"},
		dattest.Entry{Number: 2, Root: "ORDERS", Description: "Orders"},
	)
	return dir
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), err
}

func TestCLI_Commands(t *testing.T) {
	dir := setupCLI(t)

	tests := []struct {
		name     string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "tables",
			args:     []string{"tables"},
			contains: []string{"CUSTOMER", "Customers", "ORDERS", "missing", "2 table(s)"},
		},
		{
			name:     "schema",
			args:     []string{"schema", "customer"},
			contains: []string{"ID", "NAME", "SINCE", "BALANCE", "YES"},
		},
		{
			name:     "schema by number as sql",
			args:     []string{"schema", "1", "--sql"},
			contains: []string{"CREATE TABLE CUSTOMER", "NAME"},
		},
		{
			name:     "header",
			args:     []string{"header", "customer"},
			contains: []string{"3.0", "Indexes (1)", "BALANCE"},
		},
		{
			name:     "scan",
			args:     []string{"scan", "customer"},
			contains: []string{"Acme", "Umbrella", "4 row(s) returned"},
		},
		{
			name:     "scan window",
			args:     []string{"scan", "customer", "--offset", "1", "--limit", "2"},
			contains: []string{"Globex", "Initech", "2 row(s) returned"},
			excludes: []string{"Acme", "Umbrella"},
		},
		{
			name:     "scan where",
			args:     []string{"scan", "customer", "--where", "BALANCE >= 300"},
			contains: []string{"Initech", "Umbrella", "2 row(s) returned"},
			excludes: []string{"Globex"},
		},
		{
			name:     "record from the end",
			args:     []string{"record", "customer", "--", "-1"},
			contains: []string{"Record 3", "Umbrella", "2018-06-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, append([]string{"--db", dir}, tt.args...)...)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("Expected output to contain %q:\n%s", want, out)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(out, unwanted) {
					t.Errorf("Expected output not to contain %q:\n%s", unwanted, out)
				}
			}
		})
	}
}

func TestCLI_Errors(t *testing.T) {
	dir := setupCLI(t)

	tests := []struct {
		name  string
		args  []string
		check func(error) bool
	}{
		{"unknown table", []string{"schema", "ghost"}, dberr.IsNotFound},
		{"unreadable table", []string{"header", "orders"}, dberr.IsNotFound},
		{"unregistered number", []string{"scan", "7"}, dberr.IsNotFound},
		{"record out of range", []string{"record", "customer", "4"}, dberr.IsNotFound},
		{"bad filter", []string{"scan", "customer", "--where", "NOPE = 1"}, func(err error) bool { return strings.Contains(err.Error(), "--where") }},
		{"bad record number", []string{"record", "customer", "x"}, func(err error) bool { return strings.Contains(err.Error(), "invalid record number") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, append([]string{"--db", dir}, tt.args...)...)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !tt.check(err) {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestCLI_BadDatabase(t *testing.T) {
	_, err := runCLI(t, "tables", "--db", t.TempDir())
	if !dberr.IsNotFound(err) {
		t.Errorf("Expected NotFound for a directory without a registry, got %v", err)
	}

	_, err = runCLI(t, "tables", "--log-level", "shout")
	if err == nil || !strings.Contains(err.Error(), "log.level") {
		t.Errorf("Expected a config validation error, got %v", err)
	}
}
