package zoom

// UserType is Zoom's license tier for a user.
type UserType int

const (
	Basic    UserType = 1
	Licensed UserType = 2
)

// User is the subset of a Zoom user record the tool reads.
type User struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Type      UserType `json:"type"`
	Status    string   `json:"status"`
}

// UserPage is one page of GET /users.
type UserPage struct {
	PageCount    int    `json:"page_count"`
	PageNumber   int    `json:"page_number"`
	PageSize     int    `json:"page_size"`
	TotalRecords int    `json:"total_records"`
	Users        []User `json:"users"`
}

// Last reports whether no page follows this one.
func (p *UserPage) Last() bool {
	return p.PageNumber >= p.PageCount
}

type profilePatch struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type emailUpdate struct {
	Email string `json:"email"`
}

// The tier goes on the wire as a quoted number: {"type":"1"}.
type typePatch struct {
	Type UserType `json:"type,string"`
}
