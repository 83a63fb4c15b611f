package header

// Category is the display classification of a header record. The core only
// assigns the category; styling is up to whatever renders the result.
type Category string

const (
	CategoryAddressing Category = "addressing"
	CategoryRouting    Category = "routing"
	CategorySecurity   Category = "security"
	CategoryCustom     Category = "custom"
	CategoryOther      Category = "other"
)

var addressingIdentities = map[Identity]bool{
	"from":         true,
	"to":           true,
	"cc":           true,
	"bcc":          true,
	"sender":       true,
	"reply_to":     true,
	"return_path":  true,
	"delivered_to": true,
	"subject":      true,
	"date":         true,
	"message_id":   true,
}

var routingIdentities = map[Identity]bool{
	"received":         true,
	"x_received":       true,
	"x_originating_ip": true,
	"x_forwarded_for":  true,
	"x_forwarded_to":   true,
	"x_ms_exchange_organization_network_message_id": true,
}

var securityIdentities = map[Identity]bool{
	"authentication_results":          true,
	"authentication_results_original": true,
	"received_spf":                    true,
	"dkim_signature":                  true,
	"arc_seal":                        true,
	"arc_message_signature":           true,
	"arc_authentication_results":      true,
	"x_forefront_antispam_report":     true,
	"x_microsoft_antispam":            true,
}

// Classify assigns a display category to an identity. A non-empty custom
// prefix wins over the static tables so user-requested headers are always
// highlighted as custom.
func Classify(id Identity, customPrefix string) Category {
	if customPrefix != "" && id.HasPrefix(customPrefix) {
		return CategoryCustom
	}
	switch {
	case addressingIdentities[id]:
		return CategoryAddressing
	case routingIdentities[id]:
		return CategoryRouting
	case securityIdentities[id]:
		return CategorySecurity
	default:
		return CategoryOther
	}
}
