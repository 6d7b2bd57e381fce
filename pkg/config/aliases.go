package config

// ModelAliases maps short model names to the IDs the adapters expect.
type ModelAliases map[string]string

// Resolve returns the canonical model name for an alias.
// If the input is not an alias, it returns the input unchanged.
func (a ModelAliases) Resolve(modelOrAlias string) string {
	if canonical, ok := a[modelOrAlias]; ok && canonical != "" {
		return canonical
	}
	return modelOrAlias
}

// IsAlias returns true if the given string is a known alias.
func (a ModelAliases) IsAlias(name string) bool {
	_, ok := a[name]
	return ok
}
