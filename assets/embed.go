// assets/embed.go
//
// Files compiled into the binary:
//   - dictionary.txt: default word list, one word per line.
//   - migrations/*.sql: schema for the benchmark report database.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed dictionary.txt migrations/*.sql
var FS embed.FS

// Dictionary opens the embedded word list.
func Dictionary() (fs.File, error) {
	return FS.Open("dictionary.txt")
}

// Migrations returns the embedded migrations directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "migrations")
	if err != nil {
		// the directory is embedded at build time
		panic(err)
	}
	return sub
}
