// Package catalog provides the pricing catalog used by quotation pricing.
//
// The catalog is a nested lookup table keyed by category, project region,
// plot-area band and service name. It is loaded once at startup and treated
// as read-only afterwards; a missing key at any level is not an error, the
// calculator falls back to a default base amount instead.
package catalog

import "strings"

// ServicePrice is the leaf entry of the catalog.
type ServicePrice struct {
	Amount float64 `mapstructure:"amount" json:"amount"`
}

// Catalog maps category → region → band → service name → price.
// All keys are normalized to lower case on load; Lookup normalizes its
// arguments the same way, so matching is case-insensitive.
type Catalog map[string]map[string]map[string]map[string]ServicePrice

// Lookup returns the base amount for the given chain of keys. The second
// return value reports whether the full chain was present.
func (c Catalog) Lookup(category, region, band, service string) (float64, bool) {
	regions, ok := c[normalizeKey(category)]
	if !ok {
		return 0, false
	}
	bands, ok := regions[normalizeKey(region)]
	if !ok {
		return 0, false
	}
	services, ok := bands[normalizeKey(band)]
	if !ok {
		return 0, false
	}
	price, ok := services[normalizeKey(service)]
	if !ok {
		return 0, false
	}
	return price.Amount, true
}

// Normalize returns a copy of the catalog with every key lower-cased and
// trimmed. Raw catalogs decoded from a config file go through this before
// they are served.
func Normalize(raw Catalog) Catalog {
	out := make(Catalog, len(raw))
	for category, regions := range raw {
		nr := make(map[string]map[string]map[string]ServicePrice, len(regions))
		for region, bands := range regions {
			nb := make(map[string]map[string]ServicePrice, len(bands))
			for band, services := range bands {
				ns := make(map[string]ServicePrice, len(services))
				for service, price := range services {
					ns[normalizeKey(service)] = price
				}
				nb[normalizeKey(band)] = ns
			}
			nr[normalizeKey(region)] = nb
		}
		out[normalizeKey(category)] = nr
	}
	return out
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}
