package shared

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot carries the optimistic lock version and the pending domain events.
// The version moves at most once between two saves: repositories guard updates
// with the version the aggregate was loaded at (StoredVersion).
type BaseAggregateRoot struct {
	BaseEntity
	Version       int
	storedVersion int
	persisted     bool
	domainEvents  []DomainEvent
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion bumps the version and the update timestamp together
func (a *BaseAggregateRoot) IncrementVersion() {
	if a.Version <= a.storedVersion {
		a.Version = a.storedVersion + 1
	}
	a.Touch()
}

// StoredVersion is the version the aggregate had when last loaded or saved
func (a *BaseAggregateRoot) StoredVersion() int {
	return a.storedVersion
}

// IsPersisted reports whether the aggregate was loaded from or written to storage
func (a *BaseAggregateRoot) IsPersisted() bool {
	return a.persisted
}

// MarkPersisted records a successful save at the current version
func (a *BaseAggregateRoot) MarkPersisted() {
	a.storedVersion = a.Version
	a.persisted = true
}

// RestoreAggregateRoot rebuilds the aggregate state of a stored record
func RestoreAggregateRoot(entity BaseEntity, version int) BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity:    entity,
		Version:       version,
		storedVersion: version,
		persisted:     true,
	}
}

// AddDomainEvent queues an event to be published after the aggregate is persisted
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns all pending domain events
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents clears the pending domain events
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

// NewBaseAggregateRoot creates a new base aggregate root at version 1
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity:    NewBaseEntity(),
		Version:       1,
		storedVersion: 1,
		domainEvents:  make([]DomainEvent, 0),
	}
}
