package extract

// Tactic is one way of reading a field from a page. It returns "" when it finds nothing.
type Tactic struct {
	Name string
	Run  func(p *Page) string
}

// FirstMatch runs tactics in order and returns the first non-empty value and the tactic that produced it.
func FirstMatch(p *Page, tactics ...Tactic) (value, tactic string) {
	for _, t := range tactics {
		if t.Run == nil {
			continue
		}
		if v := t.Run(p); v != "" {
			return v, t.Name
		}
	}
	return "", ""
}

// Static always yields value.
func Static(name, value string) Tactic {
	return Tactic{Name: name, Run: func(*Page) string { return value }}
}
