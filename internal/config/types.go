package config

// Config is the normalized, validated configuration for one run. It is
// constructed once per invocation, never mutated afterwards, and discarded at
// process exit; lookup methods hand out copies so callers cannot reach back
// into it.
type Config struct {
	// Version is the declared document version (0.1 or 0.2).
	Version float64

	// DurationHours is the intended assumed-role session lifetime; 0 means
	// unset (the launcher defaults to 1).
	DurationHours int

	// SourceProfile names the credential profile used as the starting
	// identity; empty means unset (the launcher defaults to "default").
	SourceProfile string

	// OrganizationsProfile names the profile used to enumerate organization
	// member accounts. Declared by the 0.2 schema only.
	OrganizationsProfile string

	// Roles maps account IDs (or the wildcard key "_") to the ordered list
	// of role names offered for that account.
	Roles map[string][]string

	// AccountDisplayNames maps account IDs to human-readable names. No
	// wildcard here.
	AccountDisplayNames map[string]string
}

// RolesForAccount returns the role list for an account: the exact account
// entry when present, the wildcard entry otherwise, and an empty list when
// neither exists. Exact match always beats the wildcard. Order is preserved;
// it is the order roles are offered in, not a set.
func (c *Config) RolesForAccount(accountID string) []string {
	if roles, ok := c.Roles[accountID]; ok {
		return append([]string(nil), roles...)
	}
	if roles, ok := c.Roles[WildcardKey]; ok {
		return append([]string(nil), roles...)
	}
	return nil
}

// DisplayName returns the configured display name for an account. There is
// no wildcard fallback for display names.
func (c *Config) DisplayName(accountID string) (string, bool) {
	name, ok := c.AccountDisplayNames[accountID]
	return name, ok
}

// Tree serializes the configuration back to its generic document-tree form.
// Revalidating the result yields the same outcome as the original document
// did. Only declared fields appear: unknown input fields are tolerated during
// validation but never round-tripped.
func (c *Config) Tree() map[string]any {
	tree := map[string]any{"version": c.Version}
	if c.DurationHours != 0 {
		tree["duration_hours"] = c.DurationHours
	}
	if c.SourceProfile != "" {
		tree["source_profile"] = c.SourceProfile
	}
	if c.OrganizationsProfile != "" {
		tree["organizations_profile"] = c.OrganizationsProfile
	}
	if len(c.Roles) > 0 {
		roles := make(map[string]any, len(c.Roles))
		for account, names := range c.Roles {
			list := make([]any, len(names))
			for i, name := range names {
				list[i] = name
			}
			roles[account] = list
		}
		tree["roles"] = roles
	}
	if len(c.AccountDisplayNames) > 0 {
		names := make(map[string]any, len(c.AccountDisplayNames))
		for account, name := range c.AccountDisplayNames {
			names[account] = name
		}
		tree["account_display_names"] = names
	}
	return tree
}
