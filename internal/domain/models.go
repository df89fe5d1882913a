package domain

// MaxSelected is the capacity of a selection list
const MaxSelected = 20

// Company represents an entry of the master catalog
type Company struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"` // image URL, may be unreachable
}

// IndexOf returns the position of the company with the given id, or -1
func IndexOf(companies []Company, id int64) int {
	for i, c := range companies {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a copy of the slice that is never nil, so it encodes as []
func Clone(companies []Company) []Company {
	out := make([]Company, len(companies))
	copy(out, companies)
	return out
}
