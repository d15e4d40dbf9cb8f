// Package sheets defines the ports for the backing tabular store. The store
// is an external collaborator: an opaque spreadsheet-like database that can
// enumerate sheets, read a sheet as raw text rows and append rows.
package sheets

import (
	"context"
	"errors"
)

// ErrSheetNotFound is returned by Database.Sheet for unknown sheet names.
var ErrSheetNotFound = errors.New("sheet not found")

type (
	// Database is a handle to one spreadsheet document.
	Database interface {
		// PrimarySheet returns the document's first sheet.
		PrimarySheet(ctx context.Context) (Sheet, error)

		// Sheet returns a named sheet, or ErrSheetNotFound.
		Sheet(ctx context.Context, name string) (Sheet, error)

		// SheetNames lists the sheets present in the document.
		SheetNames(ctx context.Context) ([]string, error)

		// CreateSheet adds a new sheet with the given header row.
		CreateSheet(ctx context.Context, name string, header []string) error
	}

	// Sheet is a handle to one rectangular grid of text cells.
	Sheet interface {
		// ReadAll returns every row as text; the first row is the header.
		ReadAll(ctx context.Context) ([][]string, error)

		// AppendRow appends one row after the last populated row.
		AppendRow(ctx context.Context, row []string) error
	}
)
