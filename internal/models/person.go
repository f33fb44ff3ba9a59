package models

// Person is someone who files or approves reports.
type Person struct {
	Envelope

	// UserName is the login name. The store indexes persons by it.
	UserName *string

	// DisplayName is the human-readable name.
	DisplayName *string

	// Supervisor is the person who approves this person's reports.
	// It may point back at the person itself.
	Supervisor *Person
}

// Kind implements Entity.
func (*Person) Kind() Kind { return KindPerson }
