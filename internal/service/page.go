package service

const (
	DefaultPageLimit = 5
	MaxPageLimit     = 50
)

// Page is a validated limit/offset window.
type Page struct {
	Limit  int
	Offset int
}

// NewPage rejects limit outside [0, 50] and negative offsets.
func NewPage(limit, offset int) (Page, error) {
	if limit < 0 || limit > MaxPageLimit || offset < 0 {
		return Page{}, ErrInvalidPage
	}
	return Page{Limit: limit, Offset: offset}, nil
}
