package model

// Intent is the closed set of intents the webhook fulfils.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentGetTicket
	IntentYes
	IntentNo
)

func ParseIntent(displayName string) Intent {
	switch displayName {
	case "getTicket":
		return IntentGetTicket
	case "yes":
		return IntentYes
	case "no":
		return IntentNo
	default:
		return IntentUnknown
	}
}

func (i Intent) String() string {
	switch i {
	case IntentGetTicket:
		return "getTicket"
	case IntentYes:
		return "yes"
	case IntentNo:
		return "no"
	default:
		return "unknown"
	}
}
