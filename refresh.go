package qview

import "fmt"

// buildCatalog walks a connection's information schema and builds a fresh
// catalog from it: every visible schema, each schema's tables, and each
// table's columns in ordinal position order. Entities enter the catalog as
// fully-formed values, so a reader racing a refresh never observes a
// half-built table.
//
// This is the only producer of catalogs in the tool; the suggestion engine
// just consumes whatever *Database it is handed.
func buildCatalog(name string, q metaQuerier) (*Database, error) {
	db := NewDatabase(name)

	schemas, err := q.ListSchemas()
	if err != nil {
		return nil, fmt.Errorf("could not list schemas: %w", err)
	}

	for _, schemaName := range schemas {
		tables, err := q.ListTablesInSchema(schemaName)
		if err != nil {
			return nil, fmt.Errorf("could not list tables in '%s': %w", schemaName, err)
		}

		for _, tableName := range tables {
			desc, err := q.DescribeTable(schemaName + "." + tableName)
			if err != nil {
				return nil, fmt.Errorf("could not describe '%s.%s': %w", schemaName, tableName, err)
			}

			columns := make([]Column, len(desc.Columns))
			for i, col := range desc.Columns {
				columns[i] = Column{
					Name: col.Name,
					Type: dataTypeOf(col.Type),
				}
			}
			db.InsertTable(schemaName, NewTable(tableName, columns...))
		}
	}

	return db, nil
}
