// internal/colid/id.go
package colid

// separator splits the class from the name in the composite key.
const separator = ":"

// Key serializes the identity into its composite string form.
func (id ID) Key() string {
	return string(id.Class) + separator + id.Name
}

// String returns the composite key.
func (id ID) String() string {
	return id.Key()
}

// Validate checks that both parts of the identity are well formed.
func (id ID) Validate() error {
	_, err := Parse(id.Key())
	return err
}
