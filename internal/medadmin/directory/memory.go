// Package directory provides in-memory implementations of the external
// collaborators the pipeline reads from: resident directory, medication
// catalog, prescription store, interaction database, and staff registry.
// They back the unit tests and let the server run end-to-end without the
// surrounding care-home systems.
package directory

import (
	"context"
	"sync"

	"medgate/internal/medadmin/models"
	id "medgate/pkg/domain"
	"medgate/pkg/platform/sentinel"
)

// InMemoryResidentDirectory stores resident snapshots keyed by ID.
type InMemoryResidentDirectory struct {
	mu        sync.RWMutex
	residents map[id.ResidentID]models.ResidentSnapshot
}

func NewInMemoryResidentDirectory() *InMemoryResidentDirectory {
	return &InMemoryResidentDirectory{residents: make(map[id.ResidentID]models.ResidentSnapshot)}
}

func (d *InMemoryResidentDirectory) Put(snapshot models.ResidentSnapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.residents[snapshot.ID] = snapshot
}

func (d *InMemoryResidentDirectory) GetResidentSnapshot(_ context.Context, residentID id.ResidentID) (*models.ResidentSnapshot, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	snapshot, ok := d.residents[residentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &snapshot, nil
}

// InMemoryMedicationCatalog stores medication snapshots keyed by ID.
type InMemoryMedicationCatalog struct {
	mu          sync.RWMutex
	medications map[id.MedicationID]models.MedicationSnapshot
}

func NewInMemoryMedicationCatalog() *InMemoryMedicationCatalog {
	return &InMemoryMedicationCatalog{medications: make(map[id.MedicationID]models.MedicationSnapshot)}
}

func (c *InMemoryMedicationCatalog) Put(snapshot models.MedicationSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.medications[snapshot.ID] = snapshot
}

func (c *InMemoryMedicationCatalog) GetMedicationSnapshot(_ context.Context, medicationID id.MedicationID) (*models.MedicationSnapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot, ok := c.medications[medicationID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &snapshot, nil
}

// InMemoryPrescriptionStore stores active prescriptions keyed by
// resident/medication pair.
type InMemoryPrescriptionStore struct {
	mu            sync.RWMutex
	prescriptions map[models.AdministrationKey]models.PrescriptionSnapshot
}

func NewInMemoryPrescriptionStore() *InMemoryPrescriptionStore {
	return &InMemoryPrescriptionStore{prescriptions: make(map[models.AdministrationKey]models.PrescriptionSnapshot)}
}

func (s *InMemoryPrescriptionStore) Put(snapshot models.PrescriptionSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := models.AdministrationKey{ResidentID: snapshot.ResidentID, MedicationID: snapshot.MedicationID}
	s.prescriptions[key] = snapshot
}

func (s *InMemoryPrescriptionStore) GetActivePrescription(_ context.Context, residentID id.ResidentID, medicationID id.MedicationID) (*models.PrescriptionSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.prescriptions[models.AdministrationKey{ResidentID: residentID, MedicationID: medicationID}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &snapshot, nil
}

// InMemoryInteractionDatabase stores pairwise interactions keyed by the
// unordered medication pair.
type InMemoryInteractionDatabase struct {
	mu           sync.RWMutex
	interactions map[pairKey][]models.Interaction
}

type pairKey struct {
	a, b id.MedicationID
}

func newPairKey(a, b id.MedicationID) pairKey {
	if a.String() > b.String() {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

func NewInMemoryInteractionDatabase() *InMemoryInteractionDatabase {
	return &InMemoryInteractionDatabase{interactions: make(map[pairKey][]models.Interaction)}
}

// Put records the interactions between a pair of medications, in both
// directions.
func (d *InMemoryInteractionDatabase) Put(a, b id.MedicationID, found []models.Interaction) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.interactions[newPairKey(a, b)] = found
}

func (d *InMemoryInteractionDatabase) CheckInteractions(_ context.Context, medicationID id.MedicationID, activeMedicationIDs []id.MedicationID) ([]models.Interaction, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []models.Interaction
	for _, active := range activeMedicationIDs {
		if active == medicationID {
			continue
		}
		out = append(out, d.interactions[newPairKey(medicationID, active)]...)
	}
	return out, nil
}

// InMemoryStaffRegistry stores staff snapshots keyed by ID.
type InMemoryStaffRegistry struct {
	mu    sync.RWMutex
	staff map[id.StaffID]models.StaffSnapshot
}

func NewInMemoryStaffRegistry() *InMemoryStaffRegistry {
	return &InMemoryStaffRegistry{staff: make(map[id.StaffID]models.StaffSnapshot)}
}

func (r *InMemoryStaffRegistry) Put(snapshot models.StaffSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.staff[snapshot.ID] = snapshot
}

func (r *InMemoryStaffRegistry) GetStaffSnapshot(_ context.Context, staffID id.StaffID) (*models.StaffSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snapshot, ok := r.staff[staffID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &snapshot, nil
}
