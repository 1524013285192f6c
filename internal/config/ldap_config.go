package config

type LDAPConfig interface {
	GetLDAPURL() string
	GetLDAPBindDN() string
	GetLDAPBindPassword() string
	GetLDAPBaseDN() string
	GetLDAPFilter() string
	GetLDAPStartTLS() bool
}

type LDAP struct{}

var _ LDAPConfig = LDAP{}

func (LDAP) GetLDAPURL() string {
	return GetEnv("LDAP_URL", "")
}

func (LDAP) GetLDAPBindDN() string {
	return GetEnv("LDAP_BIND_DN", "")
}

func (LDAP) GetLDAPBindPassword() string {
	return GetEnv("LDAP_BIND_PASSWORD", "")
}

func (LDAP) GetLDAPBaseDN() string {
	return GetEnv("LDAP_BASE_DN", "")
}

// GetLDAPFilter returns the user search filter; {email} is replaced with the
// escaped sign-in email.
func (LDAP) GetLDAPFilter() string {
	return GetEnv("LDAP_FILTER", "(&(objectClass=person)(mail={email}))")
}

func (LDAP) GetLDAPStartTLS() bool {
	return GetEnvBool("LDAP_START_TLS", false)
}
