// Package migrations embeds the SQL migration files into the binary so
// StaffSphere can migrate its schema without the files being present on disk.
package migrations

import (
	"embed"

	"github.com/staffsphere/staffsphere-core/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	// Register embedded migrations with the database package.
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "." // Files are at root of embedded FS
}
