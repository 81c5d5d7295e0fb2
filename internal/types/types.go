package types

// Row is one rendered table line.
type Row struct {
	Key  string
	Data []string
}

// ModItem pairs a scanned mod with interface-side selection state. Selection
// lives here, not in the registry: it is a view concern and does not survive
// a rescan of folders that disappeared.
type ModItem struct {
	Name       string
	Enabled    bool
	HasPreview bool
	Selected   bool
}
