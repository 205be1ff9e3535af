package adapter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/beevik/etree"

	m "cpacsedit.dev/pkg/cpacsedit/internal/model"
)

// defaultDocumentPerm applies to new files. Overwritten files keep their mode.
const defaultDocumentPerm os.FileMode = 0o644

// DocumentStore opens, creates and commits CPACS documents.
type DocumentStore interface {
	// Open parses the document at path. A missing or malformed file fails
	// with model.ErrDocument.
	Open(ctx context.Context, path m.Path) (Document, error)

	// Create starts an empty document with the given root element.
	Create(ctx context.Context, rootName string) (Document, error)

	// Commit writes doc to outputPath, creating parent directories. A failed
	// commit wraps model.ErrIO and leaves any existing file untouched.
	Commit(ctx context.Context, doc Document, outputPath m.Path) error
}

// LocalDocumentStore keeps documents in memory and commits them through a FileAdapter.
type LocalDocumentStore struct {
	files FileAdapter
}

// NewLocalDocumentStore constructs a LocalDocumentStore.
func NewLocalDocumentStore(files FileAdapter) *LocalDocumentStore {
	return &LocalDocumentStore{files: files}
}

// Open reads and parses path.
func (s *LocalDocumentStore) Open(ctx context.Context, path m.Path) (Document, error) {
	data, err := s.files.ReadFile(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s not found", m.ErrDocument, path)
		}

		return nil, fmt.Errorf("%w: read %s: %w", m.ErrDocument, path, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		slog.Error("Failed to parse document", "path", path, "error", err)
		return nil, fmt.Errorf("%w: parse %s: %w", m.ErrDocument, path, err)
	}

	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: %s has no root element", m.ErrDocument, path)
	}

	slog.Debug("Opened document", "path", path, "root", doc.Root().FullTag())

	return newEtreeDocument(doc, data, false), nil
}

// Create returns a new document holding only the XML declaration and root.
// Created documents are indented when rendered.
func (s *LocalDocumentStore) Create(ctx context.Context, rootName string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if rootName == "" {
		return nil, fmt.Errorf("%w: empty root element name", m.ErrInvalidInput)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateElement(rootName)

	return newEtreeDocument(doc, nil, true), nil
}

// Commit renders doc and writes it atomically to outputPath.
func (s *LocalDocumentStore) Commit(ctx context.Context, doc Document, outputPath m.Path) error {
	if outputPath == "" {
		return fmt.Errorf("%w: empty output path", m.ErrInvalidInput)
	}

	data, err := doc.Bytes()
	if err != nil {
		return err
	}

	dir := filepath.Dir(string(outputPath))
	if err := s.files.MkdirAll(ctx, m.Path(dir)); err != nil {
		slog.Error("Failed to create output directory", "dir", dir, "error", err)
		return fmt.Errorf("%w: create %s: %w", m.ErrIO, dir, err)
	}

	perm := defaultDocumentPerm
	if info, err := s.files.FileInfo(ctx, outputPath); err == nil {
		perm = info.Mode().Perm()
	}

	if err := s.files.WriteFileAtomic(ctx, outputPath, data, perm); err != nil {
		slog.Error("Failed to commit document", "path", outputPath, "error", err)
		return fmt.Errorf("%w: write %s: %w", m.ErrIO, outputPath, err)
	}

	slog.Info("Committed document", "path", outputPath, "bytes", len(data))

	return nil
}
