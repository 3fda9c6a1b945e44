package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// ConsoleWriter writes log entries to a console stream
type ConsoleWriter struct {
	mu     sync.Mutex
	writer io.Writer
}

// NewConsoleWriter creates a new console writer that writes to stderr
func NewConsoleWriter() *ConsoleWriter {
	return &ConsoleWriter{
		writer: os.Stderr,
	}
}

// NewConsoleWriterWithFile creates a new console writer with a specific stream
func NewConsoleWriterWithFile(w io.Writer) *ConsoleWriter {
	return &ConsoleWriter{
		writer: w,
	}
}

// Write writes data to the console
func (w *ConsoleWriter) Write(data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, err := w.writer.Write(data)
	return err
}

// Flush flushes the console writer
func (w *ConsoleWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if f, ok := w.writer.(*os.File); ok {
		// Sync fails on terminals and pipes; there is nothing to flush there.
		_ = f.Sync()
	}
	return nil
}

// Close is a no-op: console streams are shared with the rest of the process
func (w *ConsoleWriter) Close() error {
	return nil
}

// GetName returns the name of the writer
func (w *ConsoleWriter) GetName() string {
	return "console"
}

// FileWriter writes log entries to a file
type FileWriter struct {
	mu       sync.Mutex
	file     *os.File
	filePath string
}

// NewFileWriter creates a new file writer appending to filePath
func NewFileWriter(filePath string) (*FileWriter, error) {
	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	return &FileWriter{
		file:     file,
		filePath: filePath,
	}, nil
}

// Write writes data to the file
func (w *FileWriter) Write(data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, err := w.file.Write(data)
	return err
}

// Flush flushes the file writer
func (w *FileWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.file.Sync()
}

// Close closes the file writer
func (w *FileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.file.Close()
}

// GetName returns the name of the writer
func (w *FileWriter) GetName() string {
	return fmt.Sprintf("file:%s", w.filePath)
}

// GetFilePath returns the file path
func (w *FileWriter) GetFilePath() string {
	return w.filePath
}

// NopWriter discards everything
type NopWriter struct{}

// NewNopWriter creates a writer that discards all output
func NewNopWriter() *NopWriter {
	return &NopWriter{}
}

func (w *NopWriter) Write(data []byte) error { return nil }
func (w *NopWriter) Flush() error            { return nil }
func (w *NopWriter) Close() error            { return nil }
func (w *NopWriter) GetName() string         { return "nop" }
