package subs

// Style is a named typographic profile referenced by events.
type Style struct {
	Name      string
	FontName  string
	FontSize  float64
	Bold      bool
	Italic    bool
	Underline bool
	StrikeOut bool
	ScaleX    float64
	ScaleY    float64
	Spacing   float64
	Angle     float64
	Outline   float64
	Shadow    float64
	// Alignment uses numpad layout (1 bottom-left .. 9 top-right).
	Alignment int
	MarginL   int
	MarginR   int
	MarginV   int
}

// DefaultStyle mirrors the style renderers assume when none is declared.
func DefaultStyle(name string) Style {
	return Style{
		Name:      name,
		FontName:  "Arial",
		FontSize:  20,
		ScaleX:    100,
		ScaleY:    100,
		Outline:   2,
		Shadow:    2,
		Alignment: 2,
		MarginL:   10,
		MarginR:   10,
		MarginV:   10,
	}
}

// StyleList is an ordered style collection with name lookup.
type StyleList []Style

// Get returns the style named name.
func (l StyleList) Get(name string) (Style, bool) {
	for _, style := range l {
		if style.Name == name {
			return style, true
		}
	}
	return Style{}, false
}

// Names returns style names in declaration order.
func (l StyleList) Names() []string {
	names := make([]string, 0, len(l))
	for _, style := range l {
		names = append(names, style.Name)
	}
	return names
}
