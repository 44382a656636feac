package normalize

import (
	"strings"

	"github.com/aigentincubator/sales-ctonet/pkg/models"
)

// Augment builds an enriched Product from one raw catalog record. It is a
// pure function of its inputs and idempotent: re-augmenting an already
// augmented attribute map produces the identical product. prices may be nil.
func Augment(category, name string, raw map[string]string, prices map[models.ClientTier]int) models.Product {
	attrs := make(map[string]string, len(raw)+2)
	for k, v := range raw {
		attrs[k] = v
	}

	// Modem bucket from the cellular modem count.
	count := IntPrefix(attrs[models.AttrModemCount])
	attrs[models.AttrModemGroup] = string(ModemGroupFor(count))

	// Canonicalize the yes/no flags surfaced as facets.
	if v, ok := attrs[models.AttrWiFiAP]; ok {
		attrs[models.AttrWiFiAP] = YesNo(v)
	}
	if v, ok := attrs[models.Attr5GSupport]; ok {
		attrs[models.Attr5GSupport] = YesNo(v)
	}

	infer5G(attrs)
	unifySpeedFusionKeys(attrs)

	p := models.Product{
		Name:     name,
		Category: category,
		Attrs:    attrs,
		Prices:   prices,
	}
	p.RouterMbps = ParseMbps(attrs[models.AttrRouterThroughput])
	p.SpeedFusionMbps = ParseMbps(attrs[models.AttrSpeedFusion])
	p.UsersMin, p.UsersMax = ParseUsersRange(attrs[models.AttrUsers])
	if v, ok := attrs[models.AttrWANPorts]; ok {
		p.WANPortsMax = MaxPorts(v)
	}
	if v, ok := attrs[models.AttrLANPorts]; ok {
		p.LANPortsMax = MaxPorts(v)
	}
	return p
}

// infer5G reconciles the 5G flag with related fields. A "5g" mention in the
// modem count, cellular category, or description forces the flag to Yes,
// overriding an explicit No. Without a mention the flag is set to No only
// when it was absent or blank; an explicit value is never downgraded.
func infer5G(attrs map[string]string) {
	has5G := false
	for _, key := range []string{models.AttrModemCount, models.AttrCellularCategory, models.KeyDescription} {
		if strings.Contains(strings.ToLower(attrs[key]), "5g") {
			has5G = true
			break
		}
	}
	cur, ok := attrs[models.Attr5GSupport]
	switch {
	case has5G && cur != "Yes":
		attrs[models.Attr5GSupport] = "Yes"
	case !has5G && (!ok || strings.TrimSpace(cur) == ""):
		attrs[models.Attr5GSupport] = "No"
	}
}

// unifySpeedFusionKeys copies legacy-named SpeedFusion throughput values to
// their canonical keys. An existing canonical value is never overwritten and
// the legacy key is kept as-is.
func unifySpeedFusionKeys(attrs map[string]string) {
	if _, ok := attrs[models.AttrSpeedFusion]; !ok {
		if v, ok := attrs[models.AttrSpeedFusionOld]; ok {
			attrs[models.AttrSpeedFusion] = v
		}
	}
	if _, ok := attrs[models.AttrSpeedFusionAES]; !ok {
		if v, ok := attrs[models.AttrSpeedFusionAESOld]; ok {
			attrs[models.AttrSpeedFusionAES] = v
		}
	}
}
