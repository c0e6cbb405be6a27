package seats

type Scope string

const (
	ScopeTeam Scope = "team"
	ScopeOrg  Scope = "org"
	ScopeEnt  Scope = "ent"
)

const (
	organizationFixture = "organization_seats_response_sample.json"
	enterpriseFixture   = "enterprise_seats_response_sample.json"
)

func (s Scope) Valid() bool {
	switch s {
	case ScopeTeam, ScopeOrg, ScopeEnt:
		return true
	}
	return false
}

// fixture names the mocked response file for the scope family.
func (s Scope) fixture() string {
	if s == ScopeEnt {
		return enterpriseFixture
	}
	return organizationFixture
}
