package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	pq "github.com/lib/pq"

	"github.com/guttosm/fixdict/internal/dict"
	"github.com/guttosm/fixdict/internal/domain/models"
)

// DictionaryRepository persists imported dictionaries in the catalog tables.
type DictionaryRepository interface {
	SaveDictionary(ctx context.Context, d *dict.Dictionary, sourceFile string) error
	HasDictionary(ctx context.Context, version string) (bool, error)
	ListIngested(ctx context.Context) ([]models.IngestionRecord, error)
	DeleteDictionary(ctx context.Context, version string) error
}

type dictionaryRepository struct {
	db *sql.DB
}

func NewDictionaryRepository(db *sql.DB) DictionaryRepository {
	return &dictionaryRepository{db: db}
}

// copyBatch is the input of one COPY FROM STDIN statement.
type copyBatch struct {
	table   string
	columns []string
	rows    [][]interface{}
}

// SaveDictionary replaces every row stored for d's version in a single
// transaction. Child tables are bulk loaded with COPY.
func (r *dictionaryRepository) SaveDictionary(ctx context.Context, d *dict.Dictionary, sourceFile string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.ExecContext(ctx, `SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	// Child rows go with it through ON DELETE CASCADE.
	if _, err := tx.ExecContext(ctx, `DELETE FROM dictionaries WHERE version = $1`, d.Version()); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete previous %s: %w", d.Version(), err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO dictionaries (version, source_file, field_count, message_count, component_count)
		VALUES ($1, $2, $3, $4, $5)
	`, d.Version(), sourceFile, len(d.Fields()), len(d.Messages()), len(d.Components())); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert dictionary %s: %w", d.Version(), err)
	}

	for _, batch := range copyBatches(d) {
		if len(batch.rows) == 0 {
			continue
		}
		if err := copyIn(ctx, tx, batch); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("copy %s: %w", batch.table, err)
		}
	}

	return tx.Commit()
}

func copyIn(ctx context.Context, tx *sql.Tx, batch copyBatch) error {
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(batch.table, batch.columns...))
	if err != nil {
		return err
	}
	for _, row := range batch.rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			_ = stmt.Close()
			return err
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		return err
	}
	return stmt.Close()
}

// copyBatches lays out d as rows for each child table, parents first.
func copyBatches(d *dict.Dictionary) []copyBatch {
	v := d.Version()
	fields := copyBatch{table: "fields", columns: []string{"version", "tag", "name", "datatype", "is_group_counter"}}
	enums := copyBatch{table: "field_enums", columns: []string{"version", "tag", "position", "value", "description"}}
	for _, f := range d.Fields() {
		fields.rows = append(fields.rows, []interface{}{v, int64(f.Tag()), f.Name(), f.Datatype().Name(), f.IsGroupCounter()})
		values, _ := f.Enums()
		for i, e := range values {
			enums.rows = append(enums.rows, []interface{}{v, int64(f.Tag()), i, e.Value, e.Description})
		}
	}

	messages := copyBatch{table: "messages", columns: []string{"version", "msg_type", "name", "category"}}
	layout := copyBatch{table: "layout_items", columns: []string{"version", "owner_kind", "owner_name", "path", "position", "kind", "name", "required"}}
	addLayout := func(rows []models.LayoutRow) {
		for _, row := range rows {
			layout.rows = append(layout.rows, []interface{}{v, row.OwnerKind, row.OwnerName, row.Path, row.Position, row.Kind, row.Name, row.Required})
		}
	}
	for _, m := range d.Messages() {
		var category interface{}
		if c := m.Category(); c != nil {
			category = c.Name()
		}
		messages.rows = append(messages.rows, []interface{}{v, m.MsgType(), m.Name(), category})
		addLayout(FlattenLayout("message", m.Name(), m.Layout()))
	}

	components := copyBatch{table: "components", columns: []string{"version", "name", "position"}}
	for i, c := range d.Components() {
		components.rows = append(components.rows, []interface{}{v, c.Name(), i})
		addLayout(FlattenLayout("component", c.Name(), c.Items()))
	}

	return []copyBatch{fields, enums, messages, components, layout}
}

// FlattenLayout turns a layout tree into rows. Referenced components are not
// expanded; their own rows are stored under their name.
func FlattenLayout(ownerKind, ownerName string, items []dict.LayoutItem) []models.LayoutRow {
	var out []models.LayoutRow
	var walk func(path string, items []dict.LayoutItem)
	walk = func(path string, items []dict.LayoutItem) {
		for i, it := range items {
			out = append(out, models.LayoutRow{
				OwnerKind: ownerKind,
				OwnerName: ownerName,
				Path:      path,
				Position:  i,
				Kind:      it.Kind().String(),
				Name:      it.Name(),
				Required:  it.Required(),
			})
			if it.Kind() == dict.ItemGroup {
				child := strconv.Itoa(i)
				if path != "" {
					child = path + "." + child
				}
				walk(child, it.Group().Items())
			}
		}
	}
	walk("", items)
	return out
}

// HasDictionary checks if a version was already persisted.
func (r *dictionaryRepository) HasDictionary(ctx context.Context, version string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM dictionaries WHERE version = $1)`, version).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// ListIngested returns the catalog ordered by version.
func (r *dictionaryRepository) ListIngested(ctx context.Context) ([]models.IngestionRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT version, source_file, field_count, message_count, component_count, ingested_at
		FROM dictionaries
		ORDER BY version
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.IngestionRecord
	for rows.Next() {
		var rec models.IngestionRecord
		if err := rows.Scan(&rec.Version, &rec.SourceFile, &rec.FieldCount, &rec.MessageCount, &rec.ComponentCount, &rec.IngestedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DeleteDictionary removes a version and all its rows.
func (r *dictionaryRepository) DeleteDictionary(ctx context.Context, version string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM dictionaries WHERE version = $1`, version)
	return err
}
