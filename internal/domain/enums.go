package domain

// Level identifies one tier of the category hierarchy.
type Level string

const (
	LevelArea     Level = "AREA"
	LevelField    Level = "FIELD"
	LevelActivity Level = "ACTIVITY"
)

func (l Level) String() string { return string(l) }

func (l Level) IsValid() bool {
	switch l {
	case LevelArea, LevelField, LevelActivity:
		return true
	}
	return false
}

// MatchType describes which stage of the matching chain produced a match.
type MatchType string

const (
	MatchTypeExact           MatchType = "EXACT"
	MatchTypeCaseInsensitive MatchType = "CASE_INSENSITIVE"
	MatchTypeSubstring       MatchType = "SUBSTRING"
	MatchTypeFuzzy           MatchType = "FUZZY"
)

func (m MatchType) String() string { return string(m) }

func (m MatchType) IsValid() bool {
	switch m {
	case MatchTypeExact, MatchTypeCaseInsensitive, MatchTypeSubstring, MatchTypeFuzzy:
		return true
	}
	return false
}

// OutcomeKind tags the variant of a resolution Outcome.
type OutcomeKind string

const (
	OutcomeResolved          OutcomeKind = "RESOLVED"
	OutcomeNeedsConfirmation OutcomeKind = "NEEDS_CONFIRMATION"
	OutcomeNoMatch           OutcomeKind = "NO_MATCH"
)

func (k OutcomeKind) String() string { return string(k) }

// EntityType identifies the kind of domain entity (used in audit logs).
type EntityType string

const (
	EntityTypeArea      EntityType = "AREA"
	EntityTypeField     EntityType = "FIELD"
	EntityTypeActivity  EntityType = "ACTIVITY"
	EntityTypeTimeEntry EntityType = "TIME_ENTRY"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeArea, EntityTypeField, EntityTypeActivity, EntityTypeTimeEntry:
		return true
	}
	return false
}

// AuditAction represents the kind of mutation recorded in the audit log.
type AuditAction string

const (
	AuditActionCreate  AuditAction = "CREATE"
	AuditActionUpdate  AuditAction = "UPDATE"
	AuditActionArchive AuditAction = "ARCHIVE"
	AuditActionDelete  AuditAction = "DELETE"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionArchive, AuditActionDelete:
		return true
	}
	return false
}
