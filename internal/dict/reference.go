package dict

// Abbreviation is a standardized short form for a term. Documentation only.
type Abbreviation struct {
	abbreviation string
	term         string
	isLast       bool
}

func (a *Abbreviation) Abbreviation() string { return a.abbreviation }
func (a *Abbreviation) Term() string         { return a.term }

// IsLast reports whether the abbreviation is only valid at the end of a name.
func (a *Abbreviation) IsLast() bool { return a.isLast }

// Category groups loosely related messages and components.
type Category struct {
	name          string
	fixmlFilename string
	section       *Section
}

func (c *Category) Name() string          { return c.name }
func (c *Category) FixmlFilename() string { return c.fixmlFilename }

// Section returns the section c belongs to, or nil.
func (c *Category) Section() *Section { return c.section }

// Section is a collection of categories. Documentation only.
type Section struct {
	name        string
	description string
}

func (s *Section) Name() string        { return s.name }
func (s *Section) Description() string { return s.description }
