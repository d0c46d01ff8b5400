package actions

// Action kinds accepted in the input file.
const (
	KindUpdate    = "update"
	KindDelete    = "delete"
	KindListUsers = "listusers"
)

// UserAction is one entry of the input file's "useractions" list.
type UserAction struct {
	Action        string `json:"action"`
	Username      string `json:"username"`
	NewUsername   string `json:"newusername"`
	LoginDisabled string `json:"loginDisabled"`
	GivenName     string `json:"givenName"`
	Sn            string `json:"sn"`
}

// Disabled reports whether the action asks for the basic tier. Only the
// literal "True" counts.
func (a UserAction) Disabled() bool {
	return a.LoginDisabled == "True"
}

// Outcome is the success or error classification of one processed action.
type Outcome struct {
	OK     bool
	Reason string
	// Failure is set for error outcomes produced by a handler.
	Failure *Failure
}

// Success returns a successful outcome.
func Success(reason string) Outcome {
	return Outcome{OK: true, Reason: reason}
}

// Error returns a failed outcome.
func Error(reason string) Outcome {
	return Outcome{Reason: reason}
}

func (o Outcome) String() string {
	if o.OK {
		return "SUCCESS: " + o.Reason
	}
	return "ERROR: " + o.Reason
}

// Result pairs an input action with its outcome.
type Result struct {
	Action   string
	Username string
	Outcome  Outcome
}
