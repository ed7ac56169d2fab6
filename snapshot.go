package mdrich

// NodeSnapshot is a detached, comparable view of a subtree. Zero-valued
// attributes are omitted.
type NodeSnapshot struct {
	Kind     string         `yaml:"kind"`
	Text     string         `yaml:"text,omitempty"`
	Format   string         `yaml:"format,omitempty"`
	Level    int            `yaml:"level,omitempty"`
	Language string         `yaml:"language,omitempty"`
	ListType string         `yaml:"listType,omitempty"`
	Start    int            `yaml:"start,omitempty"`
	Checked  string         `yaml:"checked,omitempty"`
	URL      string         `yaml:"url,omitempty"`
	Title    string         `yaml:"title,omitempty"`
	Children []NodeSnapshot `yaml:"children,omitempty"`
}

// Snapshot captures the subtree rooted at id.
func (d *Document) Snapshot(id NodeID) NodeSnapshot {
	n := d.rec(id)
	s := NodeSnapshot{Kind: n.kind.String()}
	switch n.kind {
	case KindText:
		s.Text = n.text
		if n.format != 0 {
			s.Format = n.format.String()
		}
	case KindDecorator:
		s.Text = n.text
	case KindHeading:
		s.Level = n.level
	case KindCodeBlock:
		s.Language = n.language
	case KindList:
		s.ListType = n.listType.String()
		if n.listType == ListNumber {
			s.Start = n.start
		}
	case KindListItem:
		switch n.checked {
		case CheckChecked:
			s.Checked = "checked"
		case CheckUnchecked:
			s.Checked = "unchecked"
		}
	case KindLink:
		s.URL = n.url
		s.Title = n.title
	}
	for c := n.first; c != NoNode; c = d.nodes[c].next {
		s.Children = append(s.Children, d.Snapshot(c))
	}
	return s
}
