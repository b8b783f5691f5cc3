package entity

// Request holds everything one render needs. Immutable once built.
type Request struct {
	URL      string
	Design   string
	Output   string
	Title    string
	Subtitle string
	Footer   string
}

// Result describes a finished render.
type Result struct {
	Path   string
	Width  int
	Height int
}
