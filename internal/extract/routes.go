package extract

import "strings"

// MatchAll is the route pattern that matches every host.
const MatchAll = "*"

// Route sends hosts containing Pattern to Strategy.
type Route struct {
	Pattern  string
	Strategy Strategy
}

// RoutingTable is checked in order. Put specific patterns before broad ones.
type RoutingTable []Route

// DefaultRoutes is the built-in table, ending with the generic catch-all.
func DefaultRoutes() RoutingTable {
	return RoutingTable{
		{Pattern: "careers.mastercard.com", Strategy: Mastercard()},
		{Pattern: "greenhouse.io", Strategy: Greenhouse()},
		{Pattern: "jobs.lever.co", Strategy: Lever()},
		{Pattern: "netflix.com", Strategy: Netflix()},
		{Pattern: "netflix.net", Strategy: Netflix()},
		{Pattern: "myworkdayjobs.com", Strategy: Workday()},
		{Pattern: "linkedin.com", Strategy: LinkedIn()},
		{Pattern: "ashbyhq.com", Strategy: Ashby()},
		{Pattern: MatchAll, Strategy: Generic()},
	}
}

// Select returns the first strategy whose pattern is a substring of host. It returns nil when nothing matches.
func (t RoutingTable) Select(host string) Strategy {
	host = strings.ToLower(host)
	for _, r := range t {
		if r.Pattern == MatchAll || strings.Contains(host, strings.ToLower(r.Pattern)) {
			return r.Strategy
		}
	}
	return nil
}

// Fallback returns the catch-all strategy, or nil when the table has none.
func (t RoutingTable) Fallback() Strategy {
	for _, r := range t {
		if r.Pattern == MatchAll {
			return r.Strategy
		}
	}
	return nil
}
