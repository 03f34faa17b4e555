// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestPgx5URL rewrites postgres schemes and leaves others untouched.
*/
func TestPgx5URL(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@db:5432/talento":   "pgx5://u:p@db:5432/talento",
		"postgresql://u:p@db:5432/talento": "pgx5://u:p@db:5432/talento",
		"pgx5://u:p@db:5432/talento":       "pgx5://u:p@db:5432/talento",
		"host=db dbname=talento":           "host=db dbname=talento",
	}

	for input, want := range tests {
		assert.Equal(t, want, pgx5URL(input), input)
	}
}

/*
TestSlogBridge follows the logger level and trims driver output.
*/
func TestSlogBridge(t *testing.T) {
	var buffer bytes.Buffer

	quiet := slogBridge{logger: slog.New(slog.NewJSONHandler(&buffer, nil))}
	assert.False(t, quiet.Verbose())

	chatty := slogBridge{logger: slog.New(slog.NewJSONHandler(&buffer, &slog.HandlerOptions{Level: slog.LevelDebug}))}
	assert.True(t, chatty.Verbose())

	chatty.Printf("Finished 1/u core_schema (read 2ms, ran 5ms)\n")
	assert.Contains(t, buffer.String(), `"message":"Finished 1/u core_schema (read 2ms, ran 5ms)"`)
}

/*
TestRunUp_BadSource fails before touching the database when the path is wrong.
*/
func TestRunUp_BadSource(t *testing.T) {
	err := RunUp("postgres://u:p@127.0.0.1:1/none", t.TempDir()+"/missing", slog.New(slog.DiscardHandler))
	assert.ErrorContains(t, err, "migration: open")
}
