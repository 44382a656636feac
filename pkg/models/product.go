// Package models defines the hardware catalog data model shared by the
// facet engine, the HTTP surface, and the enrichment tooling.
package models

// ClientTier selects which price column is surfaced to the caller.
type ClientTier string

const (
	TierEssential  ClientTier = "Essential"
	TierBusiness   ClientTier = "Business"
	TierEnterprise ClientTier = "Enterprise"
)

// ClientTiers lists the supported tiers in display order.
var ClientTiers = []ClientTier{TierEssential, TierBusiness, TierEnterprise}

// DefaultTier is used when a caller supplies no tier or an unknown one.
const DefaultTier = TierEssential

// ValidTier reports whether s names a known client tier.
func ValidTier(s string) bool {
	for _, t := range ClientTiers {
		if string(t) == s {
			return true
		}
	}
	return false
}

// ModemGroup buckets a product by cellular modem count.
type ModemGroup string

const (
	ModemGroupNone   ModemGroup = "None"
	ModemGroupSingle ModemGroup = "Single"
	ModemGroupMulti  ModemGroup = "Multi"
)

// Attribute keys referenced by name throughout the engine. The dataset uses
// non-breaking hyphens (U+2011) in some keys; match them exactly, raw values
// are filter-match keys.
const (
	AttrModemCount        = "Number of Cellular Modems"
	AttrModemGroup        = "Modem Group"
	Attr5GSupport         = "5G support"
	AttrCellularCategory  = "Cellular Modem Category options"
	AttrWiFiAP            = "Wi‑Fi AP"
	AttrWiFiRadio         = "Wi‑Fi Radio"
	AttrRouterThroughput  = "Router Throughput"
	AttrSpeedFusion       = "SpeedFusion Throughput (no encryption)"
	AttrSpeedFusionOld    = "SpeedFusion VPN Throughput (No Encryption)"
	AttrSpeedFusionAES    = "SpeedFusion Throughput (256‑bit AES)"
	AttrSpeedFusionAESOld = "SpeedFusion VPN Throughput (256‑bit AES)"
	AttrUsers             = "Number of Recommended Users"
	AttrWANPorts          = "Number of Ethernet WAN ports"
	AttrLANPorts          = "Number of Ethernet LAN ports"
	AttrSIMSlots          = "SIM Slots"
	AttrSeries            = "Series"
)

// Non-facet keys carried in the raw attribute map.
const (
	KeyDescription = "short_description"
	KeyPDFURL      = "pdf_url"
	KeyCitations   = "Citations"
)

// ReservedKeys are attribute-map entries excluded from the facet universe.
var ReservedKeys = map[string]bool{
	KeyDescription: true,
	KeyPDFURL:      true,
	KeyCitations:   true,
}

// Product is one catalog entry, identified by (Category, Name). Attrs holds
// the raw string record from the feed plus normalized facet values written by
// the augmenter. The numeric fields are derived once per read and are pure
// functions of the raw record.
type Product struct {
	Name     string            `json:"name"`
	Category string            `json:"category"`
	Attrs    map[string]string `json:"attrs"`

	RouterMbps      int `json:"router_mbps"`
	SpeedFusionMbps int `json:"speedfusion_mbps"`
	UsersMin        int `json:"users_min"`
	UsersMax        int `json:"users_max"`
	WANPortsMax     int `json:"wan_ports_max"`
	LANPortsMax     int `json:"lan_ports_max"`

	Prices map[ClientTier]int `json:"prices,omitempty"`
}

// Attr returns the raw value for key, or "" when absent.
func (p *Product) Attr(key string) string {
	return p.Attrs[key]
}

// Description returns the enrichment-provided display text, if any.
func (p *Product) Description() string {
	return p.Attrs[KeyDescription]
}

// PDFURL returns the associated document link, if any.
func (p *Product) PDFURL() string {
	return p.Attrs[KeyPDFURL]
}

// PriceFor returns the price for the given tier and whether one exists.
func (p *Product) PriceFor(tier ClientTier) (int, bool) {
	v, ok := p.Prices[tier]
	return v, ok
}

// Clone returns a deep copy so callers can mutate results without touching
// the shared catalog.
func (p *Product) Clone() Product {
	cp := *p
	cp.Attrs = make(map[string]string, len(p.Attrs))
	for k, v := range p.Attrs {
		cp.Attrs[k] = v
	}
	if p.Prices != nil {
		cp.Prices = make(map[ClientTier]int, len(p.Prices))
		for k, v := range p.Prices {
			cp.Prices[k] = v
		}
	}
	return cp
}
