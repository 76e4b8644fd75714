package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

const (
	fieldDelimiter = ';'
	filePermission = 0644
)

// InitFile creates the file at path with the given header row. An existing file is left untouched,
// so the header of a report is written exactly once. The returned bool reports whether the file was created.
func InitFile(path string, header []string) (bool, error) {
	if len(header) == 0 {
		return false, ErrEmptyHeader
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePermission)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error creating report file %s: %w", path, err)
	}

	if err := writeRecord(file, header); err != nil {
		_ = file.Close()
		return true, fmt.Errorf("error writing header of %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return true, fmt.Errorf("error closing report file %s: %w", path, err)
	}
	return true, nil
}

// AppendRow appends one row to an existing report file. The file is opened, written and closed on every call.
func AppendRow(path string, row []string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, filePermission)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrMissingFile, path)
	}
	if err != nil {
		return fmt.Errorf("error opening report file %s: %w", path, err)
	}

	if err := writeRecord(file, row); err != nil {
		_ = file.Close()
		return fmt.Errorf("error appending to %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("error closing report file %s: %w", path, err)
	}
	return nil
}

func writeRecord(file *os.File, record []string) error {
	writer := csv.NewWriter(file)
	writer.Comma = fieldDelimiter
	if err := writer.Write(record); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}
