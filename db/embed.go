// Package db carries the goose SQL migrations compiled into the binary.
package db

import "embed"

// Migrations holds migrations/*.sql; pass "migrations" as the goose directory.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations.
const MigrationsDir = "migrations"
