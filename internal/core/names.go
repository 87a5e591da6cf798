package core

// Identity is what the messaging platform knows about a sender.
type Identity struct {
	Username  string
	FirstName string
	LastName  string
}

// DeriveName builds a display name for users who register without one:
// the platform username (annotated with real names when known), else the
// first/last names, else empty.
func DeriveName(id Identity) string {
	if id.Username != "" {
		name := id.Username
		switch {
		case id.FirstName != "" && id.LastName != "":
			name += " (" + id.FirstName + " " + id.LastName + ")"
		case id.FirstName != "":
			name += " (" + id.FirstName + ")"
		case id.LastName != "":
			name += " (" + id.LastName + ")"
		}
		return name
	}

	name := id.FirstName
	if id.LastName != "" {
		if name != "" {
			name += " "
		}
		name += id.LastName
	}
	return name
}
