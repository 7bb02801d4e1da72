package domain

import "sort"

// Ledger records user-marked package IDs for one device. Marks survive
// search and filter changes as well as live-stream growth; an entry whose
// package is currently hidden by a filter stays marked. The ledger is
// emptied only when the device it belongs to changes.
type Ledger struct {
	device   string
	selected map[string]struct{}
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{selected: make(map[string]struct{})}
}

// Toggle flips the mark for a package ID
func (l *Ledger) Toggle(id string) {
	if _, ok := l.selected[id]; ok {
		delete(l.selected, id)
	} else {
		l.selected[id] = struct{}{}
	}
}

// Selected reports whether the package ID is marked
func (l *Ledger) Selected(id string) bool {
	_, ok := l.selected[id]
	return ok
}

// Count returns the number of marked packages
func (l *Ledger) Count() int {
	return len(l.selected)
}

// IDs returns the marked package IDs sorted lexicographically
func (l *Ledger) IDs() []string {
	ids := make([]string, 0, len(l.selected))
	for id := range l.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clear empties the ledger
func (l *Ledger) Clear() {
	l.selected = make(map[string]struct{})
}

// SetDevice records which device the ledger belongs to, clearing all marks
// when the device differs from the previous one.
func (l *Ledger) SetDevice(deviceID string) {
	if deviceID != l.device {
		l.Clear()
		l.device = deviceID
	}
}

// Device returns the device the ledger currently belongs to
func (l *Ledger) Device() string {
	return l.device
}
