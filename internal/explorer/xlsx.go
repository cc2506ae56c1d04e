package explorer

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"
)

const entitySheet = "entities"

// WriteXLSX writes the entity table as a single sheet workbook.
func WriteXLSX(rows []EntityRow, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", entitySheet); err != nil {
		return fmt.Errorf("error naming sheet: %w", err)
	}

	header := make([]any, len(tableColumns))
	for i, col := range tableColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(entitySheet, "A1", &header); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{row.Entity, row.Value, row.StartWord, row.DocSpan}
		if err := f.SetSheetRow(entitySheet, cell, &values); err != nil {
			return fmt.Errorf("error writing row %d: %w", i, err)
		}
	}

	if err := f.SetPanes(entitySheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("error freezing header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

// WriteXLSXFile writes the entity table to path. The file is removed if the
// workbook cannot be written completely.
func WriteXLSXFile(path string, rows []EntityRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}

	if err := WriteXLSX(rows, f); err != nil {
		return errors.Join(err, f.Close(), os.Remove(path))
	}
	if err := f.Close(); err != nil {
		return errors.Join(fmt.Errorf("error closing %s: %w", path, err), os.Remove(path))
	}
	return nil
}
