package agent

// Kind closes the set of Agent variants: Region, Institution, Facility,
// Market. Concrete behavior differences (Market's clearing books,
// Facility's tick/tock lifecycle) live in their own packages, each
// embedding Base and overriding the methods that differ; Kind is the
// tag that lets generic code (logging, metrics, the Timekeeper's
// pre-order traversal) distinguish variants without a type switch.
type Kind int

const (
	KindRegion Kind = iota
	KindInstitution
	KindFacility
	KindMarket
)

func (k Kind) String() string {
	switch k {
	case KindRegion:
		return "Region"
	case KindInstitution:
		return "Institution"
	case KindFacility:
		return "Facility"
	case KindMarket:
		return "Market"
	default:
		return "Unknown"
	}
}
