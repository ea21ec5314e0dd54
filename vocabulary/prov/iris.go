// Package prov provides IRI constants for the W3C PROV-O vocabulary
// used in the provenance block appended to enriched graphs.
package prov

// Namespace is the base IRI prefix for PROV-O terms.
const Namespace = "http://www.w3.org/ns/prov#"

// Class IRIs.
const (
	// Activity is something that occurs over a period of time.
	Activity = Namespace + "Activity"

	// Entity is a physical, digital, or conceptual thing.
	Entity = Namespace + "Entity"

	// SoftwareAgent is running software taking part in an activity.
	SoftwareAgent = Namespace + "SoftwareAgent"
)

// Property IRIs.
const (
	// WasAttributedTo ascribes an entity to an agent.
	WasAttributedTo = Namespace + "wasAttributedTo"

	// WasAssociatedWith assigns responsibility for an activity to an agent.
	WasAssociatedWith = Namespace + "wasAssociatedWith"

	// WasGeneratedBy links an entity to the activity that produced it.
	WasGeneratedBy = Namespace + "wasGeneratedBy"

	// StartedAtTime is the start timestamp of an activity.
	StartedAtTime = Namespace + "startedAtTime"

	// EndedAtTime is the end timestamp of an activity.
	EndedAtTime = Namespace + "endedAtTime"
)
