package quickfix

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/guttosm/fixdict/internal/dict"
)

// Option configures an import.
type Option func(*importer)

// WithLogger sends per-pass debug logs to l. Imports are silent by default.
func WithLogger(l zerolog.Logger) Option {
	return func(im *importer) { im.log = l }
}

// WithStrictRequired rejects required markers other than "Y" and "N" with
// dict.ErrMalformedInput instead of reading them as not required.
func WithStrictRequired() Option {
	return func(im *importer) { im.strictRequired = true }
}

type importer struct {
	log            zerolog.Logger
	strictRequired bool
	b              *dict.Builder
}

// LoadFile reads, parses and imports the QuickFIX file at path.
func LoadFile(path string, opts ...Option) (*dict.Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open spec: %w", err)
	}
	defer func() { _ = f.Close() }()

	d, err := Load(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Load parses a QuickFIX document from r and imports it.
func Load(r io.Reader, opts ...Option) (*dict.Dictionary, error) {
	doc, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return Import(doc, opts...)
}

// Import assembles a Dictionary from a parsed document.
//
// Passes, in order:
//   - datatypes collected from the field list
//   - fields, flagged as group counters when any layout opens a group with them
//   - components, in dependency order
//   - messages, with msgcat values registered as categories
//   - StandardHeader and StandardTrailer from the header and trailer sections
//
// The first failing pass aborts the import and no Dictionary is returned.
func Import(doc *Document, opts ...Option) (*dict.Dictionary, error) {
	if err := doc.validate(); err != nil {
		return nil, err
	}
	version, err := doc.Version()
	if err != nil {
		return nil, err
	}

	im := &importer{log: zerolog.Nop(), b: dict.NewBuilder(version.String())}
	for _, opt := range opts {
		opt(im)
	}
	start := time.Now()
	log := im.log.With().Str("version", version.String()).Logger()

	if err := im.importDatatypes(doc.Fields.Fields); err != nil {
		return nil, fmt.Errorf("datatypes: %w", err)
	}
	log.Debug().Int("fields", len(doc.Fields.Fields)).Msg("datatypes collected")

	counters := groupCounters(doc)
	if err := im.importFields(doc.Fields.Fields, counters); err != nil {
		return nil, fmt.Errorf("fields: %w", err)
	}
	log.Debug().Int("fields", len(doc.Fields.Fields)).Int("group_counters", len(counters)).Msg("fields imported")

	ordered, err := componentOrder(doc.Components.Components)
	if err != nil {
		return nil, fmt.Errorf("components: %w", err)
	}
	for _, c := range ordered {
		if err := im.importComponent(c.Name, c.Items); err != nil {
			return nil, fmt.Errorf("components: %w", err)
		}
	}
	log.Debug().Int("components", len(ordered)).Msg("components imported")

	for _, m := range doc.Messages.Messages {
		items, err := im.convert(m.Items, "message "+m.Name)
		if err != nil {
			return nil, fmt.Errorf("messages: %w", err)
		}
		if _, err := im.b.AddMessage(dict.MessageSpec{
			MsgType:  m.MsgType,
			Name:     m.Name,
			Category: m.MsgCat,
			Items:    items,
		}); err != nil {
			return nil, fmt.Errorf("messages: %w", err)
		}
	}
	log.Debug().Int("messages", len(doc.Messages.Messages)).Msg("messages imported")

	if err := im.importComponent(dict.StandardHeader, doc.Header.Items); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	if err := im.importComponent(dict.StandardTrailer, doc.Trailer.Items); err != nil {
		return nil, fmt.Errorf("trailer: %w", err)
	}

	d, err := im.b.Build()
	if err != nil {
		return nil, err
	}
	log.Debug().Dur("elapsed", time.Since(start)).Msg("dictionary built")
	return d, nil
}

func (im *importer) importComponent(name string, raw []Item) error {
	items, err := im.convert(raw, "component "+name)
	if err != nil {
		return err
	}
	_, err = im.b.AddComponent(dict.ComponentSpec{
		Name:  name,
		Type:  dict.ComponentType{Kind: dict.ComponentBlock, Repeating: isRepeating(raw)},
		Items: items,
	})
	return err
}

// isRepeating reports whether a component body is a single repeating group,
// the QuickFIX shape of FIXML repeating blocks such as "Parties".
func isRepeating(items []Item) bool {
	return len(items) == 1 && items[0].Kind == KindGroup
}
