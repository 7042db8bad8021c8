package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/guttosm/fixdict/internal/dict"
	"github.com/guttosm/fixdict/internal/quickfix"
)

var (
	// ErrVersionNotFound is returned when no dictionary is loaded for a version.
	ErrVersionNotFound = errors.New("version not found")
	// ErrNotFound is returned when a dictionary does not define the requested entity.
	ErrNotFound = errors.New("not found")
)

// DictionaryService defines the read operations exposed over HTTP.
type DictionaryService interface {
	Versions(ctx context.Context) []string
	Dictionary(ctx context.Context, version string) (*dict.Dictionary, error)
	Fields(ctx context.Context, version string, offset, limit int) ([]*dict.Field, int, error)
	Field(ctx context.Context, version, key string) (*dict.Field, error)
	Message(ctx context.Context, version, key string) (*dict.Message, error)
	Component(ctx context.Context, version, name string) (*dict.Component, error)
	Datatypes(ctx context.Context, version string) ([]*dict.Datatype, error)
	Export(ctx context.Context, version string, w io.Writer) error
}

type dictionaryService struct {
	registry *Registry
}

func NewDictionaryService(registry *Registry) DictionaryService {
	return &dictionaryService{registry: registry}
}

func (s *dictionaryService) Versions(_ context.Context) []string {
	return s.registry.Versions()
}

func (s *dictionaryService) Dictionary(_ context.Context, version string) (*dict.Dictionary, error) {
	d, ok := s.registry.Get(version)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrVersionNotFound, version)
	}
	return d, nil
}

// Fields returns one page of fields in source order along with the total
// field count. A non-positive limit returns everything after offset.
func (s *dictionaryService) Fields(ctx context.Context, version string, offset, limit int) ([]*dict.Field, int, error) {
	d, err := s.Dictionary(ctx, version)
	if err != nil {
		return nil, 0, err
	}
	all := d.Fields()
	total := len(all)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return all[offset:end], total, nil
}

// Field resolves key as a tag number when it is numeric and as a field name
// otherwise.
func (s *dictionaryService) Field(ctx context.Context, version, key string) (*dict.Field, error) {
	d, err := s.Dictionary(ctx, version)
	if err != nil {
		return nil, err
	}
	var (
		f  *dict.Field
		ok bool
	)
	if n, convErr := strconv.ParseUint(key, 10, 32); convErr == nil {
		f, ok = d.FieldByTag(dict.Tag(n))
	} else {
		f, ok = d.FieldByName(key)
	}
	if !ok {
		return nil, fmt.Errorf("%w: field %q in %s", ErrNotFound, key, version)
	}
	return f, nil
}

// Message resolves key as a msg type first and as a message name second.
func (s *dictionaryService) Message(ctx context.Context, version, key string) (*dict.Message, error) {
	d, err := s.Dictionary(ctx, version)
	if err != nil {
		return nil, err
	}
	if m, ok := d.MessageByMsgType(key); ok {
		return m, nil
	}
	if m, ok := d.MessageByName(key); ok {
		return m, nil
	}
	return nil, fmt.Errorf("%w: message %q in %s", ErrNotFound, key, version)
}

func (s *dictionaryService) Component(ctx context.Context, version, name string) (*dict.Component, error) {
	d, err := s.Dictionary(ctx, version)
	if err != nil {
		return nil, err
	}
	c, ok := d.ComponentByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: component %q in %s", ErrNotFound, name, version)
	}
	return c, nil
}

func (s *dictionaryService) Datatypes(ctx context.Context, version string) ([]*dict.Datatype, error) {
	d, err := s.Dictionary(ctx, version)
	if err != nil {
		return nil, err
	}
	return d.Datatypes(), nil
}

// Export writes the dictionary for version as QuickFIX XML.
func (s *dictionaryService) Export(ctx context.Context, version string, w io.Writer) error {
	d, err := s.Dictionary(ctx, version)
	if err != nil {
		return err
	}
	return quickfix.Export(w, d)
}
