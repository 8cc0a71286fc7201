// Package schemas provides the embedded MySQL schema for the studylog tables.
package schemas

import "embed"

// Migrations contains all SQL migration files, applied in lexical order.
//
//go:embed migrations/*.sql
var Migrations embed.FS
