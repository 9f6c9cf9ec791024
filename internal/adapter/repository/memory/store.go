package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/reservation_engine/internal/core/domain"
)

// Store is an in-process implementation of every storage port, used for
// local runs (STORAGE=memory) and tests. All repositories returned by the
// accessors share one mutex, so each call is atomic.
type Store struct {
	mutex sync.RWMutex

	reservations map[uuid.UUID]*domain.Reservation
	sequences    map[string]int
	codes        map[string]*domain.QRCode
	tracking     map[uuid.UUID]*domain.HostTracking
	links        map[string]*domain.ShareLink
	settings     map[string]domain.TenantSettings
	walkIns      map[string]int
	audit        []domain.AuditEntry
	locks        map[string]time.Time
	snapshots    map[uuid.UUID]cachedSnapshot
}

type cachedSnapshot struct {
	snapshot  domain.ReservationSnapshot
	expiresAt time.Time
}

func NewStore() *Store {
	return &Store{
		reservations: make(map[uuid.UUID]*domain.Reservation),
		sequences:    make(map[string]int),
		codes:        make(map[string]*domain.QRCode),
		tracking:     make(map[uuid.UUID]*domain.HostTracking),
		links:        make(map[string]*domain.ShareLink),
		settings:     make(map[string]domain.TenantSettings),
		walkIns:      make(map[string]int),
		locks:        make(map[string]time.Time),
		snapshots:    make(map[uuid.UUID]cachedSnapshot),
	}
}

func (s *Store) Reservations() *ReservationRepo {
	return &ReservationRepo{s}
}

func (s *Store) QRCodes() *QRCodeRepo {
	return &QRCodeRepo{s}
}

func (s *Store) HostTracking() *HostTrackingRepo {
	return &HostTrackingRepo{s}
}

func (s *Store) ShareLinks() *ShareLinkRepo {
	return &ShareLinkRepo{s}
}

func (s *Store) TenantSettings() *TenantSettingsRepo {
	return &TenantSettingsRepo{s}
}

func (s *Store) WalkIns() *WalkInLedger {
	return &WalkInLedger{s}
}

func (s *Store) Audit() *AuditLog {
	return &AuditLog{s}
}

func (s *Store) Locks() *Locker {
	return &Locker{s}
}

func (s *Store) Snapshots() *SnapshotCache {
	return &SnapshotCache{s}
}

// ---- reservations ----

type ReservationRepo struct{ s *Store }

func (r *ReservationRepo) Create(ctx context.Context, reservation *domain.Reservation) error {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	if _, ok := r.s.reservations[reservation.ID]; ok {
		return domain.ErrConflict
	}
	stored := *reservation
	r.s.reservations[reservation.ID] = &stored
	return nil
}

func (r *ReservationRepo) NextSequence(ctx context.Context, tenantID string, day domain.BusinessDay) (int, error) {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	key := tenantID + "|" + day.String()
	r.s.sequences[key]++
	return r.s.sequences[key], nil
}

func (r *ReservationRepo) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*domain.Reservation, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	res, ok := r.s.reservations[id]
	if !ok || res.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	out := *res
	return &out, nil
}

func (r *ReservationRepo) TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.ReservationStatus, at time.Time) error {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	res, ok := r.s.reservations[id]
	if !ok {
		return domain.ErrNotFound
	}
	if res.Status != from {
		return domain.ErrConflict
	}
	res.Status = to
	res.UpdatedAt = at
	if to == domain.ReservationCheckedIn && res.CheckedInAt == nil {
		stamp := at
		res.CheckedInAt = &stamp
	}
	return nil
}

func (r *ReservationRepo) Reschedule(ctx context.Context, id uuid.UUID, oldReservedAt, newReservedAt, at time.Time) error {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	res, ok := r.s.reservations[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !res.ReservedAt.Equal(oldReservedAt) {
		return domain.ErrConflict
	}
	res.ReservedAt = newReservedAt
	res.UpdatedAt = at
	return nil
}

func (r *ReservationRepo) ListInWindow(ctx context.Context, tenantID string, start, end time.Time) ([]domain.Reservation, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	var out []domain.Reservation
	for _, res := range r.s.reservations {
		if res.TenantID == tenantID && !res.ReservedAt.Before(start) && res.ReservedAt.Before(end) {
			out = append(out, *res)
		}
	}
	sortByReservedAt(out)
	return out, nil
}

func (r *ReservationRepo) ListPendingBefore(ctx context.Context, before time.Time, limit int) ([]domain.Reservation, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	var out []domain.Reservation
	for _, res := range r.s.reservations {
		if res.Status == domain.ReservationPending && res.ReservedAt.Before(before) {
			out = append(out, *res)
		}
	}
	sortByReservedAt(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ReservationRepo) ActiveTenants(ctx context.Context, since time.Time) ([]string, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	seen := map[string]bool{}
	var out []string
	for _, res := range r.s.reservations {
		if !res.ReservedAt.Before(since) && !seen[res.TenantID] {
			seen[res.TenantID] = true
			out = append(out, res.TenantID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func sortByReservedAt(list []domain.Reservation) {
	sort.Slice(list, func(i, j int) bool { return list[i].ReservedAt.Before(list[j].ReservedAt) })
}

// ---- qr codes ----

type QRCodeRepo struct{ s *Store }

func (r *QRCodeRepo) Issue(ctx context.Context, qr *domain.QRCode) error {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	if _, ok := r.s.codes[qr.Token]; ok {
		return domain.ErrConflict
	}
	for _, existing := range r.s.codes {
		if existing.ReservationID == qr.ReservationID {
			existing.Active = false
		}
	}
	stored := *qr
	r.s.codes[qr.Token] = &stored
	return nil
}

func (r *QRCodeRepo) GetByToken(ctx context.Context, token string) (*domain.QRCode, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	qr, ok := r.s.codes[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *qr
	return &out, nil
}

func (r *QRCodeRepo) GetActive(ctx context.Context, reservationID uuid.UUID) (*domain.QRCode, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	for _, qr := range r.s.codes {
		if qr.ReservationID == reservationID && qr.Active {
			out := *qr
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *QRCodeRepo) RecordScan(ctx context.Context, token string, at time.Time) (int, error) {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	qr, ok := r.s.codes[token]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if !qr.Usable(at) {
		return 0, domain.ErrExpired
	}
	previous := qr.ScanCount
	qr.ScanCount++
	stamp := at
	qr.LastScannedAt = &stamp
	return previous, nil
}

func (r *QRCodeRepo) ScanTallies(ctx context.Context, reservationIDs []uuid.UUID) (map[uuid.UUID]domain.ScanTally, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	wanted := make(map[uuid.UUID]bool, len(reservationIDs))
	for _, id := range reservationIDs {
		wanted[id] = true
	}
	out := make(map[uuid.UUID]domain.ScanTally)
	for _, qr := range r.s.codes {
		if !wanted[qr.ReservationID] {
			continue
		}
		tally := out[qr.ReservationID]
		tally.Count += qr.ScanCount
		if qr.Active && qr.ExpiresAt.After(tally.ActiveExpiry) {
			tally.ActiveExpiry = qr.ExpiresAt
		}
		out[qr.ReservationID] = tally
	}
	return out, nil
}

func (r *QRCodeRepo) PurgeInactive(ctx context.Context, tenantID string, reservedBefore time.Time) (int64, error) {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	var n int64
	for token, qr := range r.s.codes {
		if qr.Active || (tenantID != "" && qr.TenantID != tenantID) {
			continue
		}
		res, ok := r.s.reservations[qr.ReservationID]
		if ok && res.ReservedAt.Before(reservedBefore) {
			delete(r.s.codes, token)
			n++
		}
	}
	return n, nil
}

// ---- host tracking ----

type HostTrackingRepo struct{ s *Store }

func (r *HostTrackingRepo) Upsert(ctx context.Context, tracking *domain.HostTracking) error {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	stored := *tracking
	r.s.tracking[tracking.ReservationID] = &stored
	return nil
}

func (r *HostTrackingRepo) Get(ctx context.Context, reservationID uuid.UUID) (*domain.HostTracking, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	t, ok := r.s.tracking[reservationID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *t
	return &out, nil
}

func (r *HostTrackingRepo) ListByReservations(ctx context.Context, reservationIDs []uuid.UUID) (map[uuid.UUID]domain.HostTracking, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	out := make(map[uuid.UUID]domain.HostTracking)
	for _, id := range reservationIDs {
		if t, ok := r.s.tracking[id]; ok {
			out[id] = *t
		}
	}
	return out, nil
}

// ---- share links ----

type ShareLinkRepo struct{ s *Store }

func (r *ShareLinkRepo) Create(ctx context.Context, link *domain.ShareLink) error {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	if _, ok := r.s.links[link.ShareID]; ok {
		return domain.ErrConflict
	}
	stored := *link
	r.s.links[link.ShareID] = &stored
	return nil
}

func (r *ShareLinkRepo) IncrementView(ctx context.Context, shareID string) (*domain.ShareLink, error) {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	link, ok := r.s.links[shareID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	link.ViewCount++
	out := *link
	return &out, nil
}

func (r *ShareLinkRepo) PurgeForReservationsBefore(ctx context.Context, tenantID string, reservedBefore time.Time) (int64, error) {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	var n int64
	for id, link := range r.s.links {
		if tenantID != "" && link.TenantID != tenantID {
			continue
		}
		res, ok := r.s.reservations[link.ReservationID]
		if ok && res.ReservedAt.Before(reservedBefore) {
			delete(r.s.links, id)
			n++
		}
	}
	return n, nil
}

// ---- tenant settings and walk-ins ----

type TenantSettingsRepo struct{ s *Store }

func (r *TenantSettingsRepo) Get(ctx context.Context, tenantID string) (domain.TenantSettings, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	settings, ok := r.s.settings[tenantID]
	if !ok {
		return domain.TenantSettings{}, domain.ErrNotFound
	}
	return settings, nil
}

func (r *TenantSettingsRepo) Put(settings domain.TenantSettings) {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()
	r.s.settings[settings.TenantID] = settings
}

type WalkInLedger struct{ s *Store }

// Add records guests who arrived without a reservation.
func (w *WalkInLedger) Add(ctx context.Context, tenantID string, day domain.BusinessDay, guests int, at time.Time) error {
	w.s.mutex.Lock()
	defer w.s.mutex.Unlock()
	w.s.walkIns[tenantID+"|"+day.String()] += guests
	return nil
}

func (w *WalkInLedger) TotalForDays(ctx context.Context, tenantID string, days []domain.BusinessDay) (int, error) {
	w.s.mutex.RLock()
	defer w.s.mutex.RUnlock()

	total := 0
	for _, day := range days {
		total += w.s.walkIns[tenantID+"|"+day.String()]
	}
	return total, nil
}

// ---- audit ----

type AuditLog struct{ s *Store }

func (a *AuditLog) Record(ctx context.Context, entry domain.AuditEntry) error {
	a.s.mutex.Lock()
	defer a.s.mutex.Unlock()
	a.s.audit = append(a.s.audit, entry)
	return nil
}

// Entries returns the recorded entries of one reservation in write order.
func (a *AuditLog) Entries(reservationID uuid.UUID) []domain.AuditEntry {
	a.s.mutex.RLock()
	defer a.s.mutex.RUnlock()

	var out []domain.AuditEntry
	for _, e := range a.s.audit {
		if e.ReservationID == reservationID {
			out = append(out, e)
		}
	}
	return out
}

// ---- locks and snapshot cache ----

type Locker struct{ s *Store }

func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	l.s.mutex.Lock()
	defer l.s.mutex.Unlock()

	now := time.Now()
	if until, ok := l.s.locks[key]; ok && now.Before(until) {
		return nil, domain.ErrConflict
	}
	until := now.Add(ttl)
	l.s.locks[key] = until

	return func(context.Context) error {
		l.s.mutex.Lock()
		defer l.s.mutex.Unlock()
		if l.s.locks[key].Equal(until) {
			delete(l.s.locks, key)
		}
		return nil
	}, nil
}

type SnapshotCache struct{ s *Store }

func (c *SnapshotCache) Get(ctx context.Context, reservationID uuid.UUID) (*domain.ReservationSnapshot, bool, error) {
	c.s.mutex.RLock()
	defer c.s.mutex.RUnlock()

	entry, ok := c.s.snapshots[reservationID]
	if !ok || !time.Now().Before(entry.expiresAt) {
		return nil, false, nil
	}
	out := entry.snapshot
	return &out, true, nil
}

func (c *SnapshotCache) Set(ctx context.Context, reservationID uuid.UUID, snapshot *domain.ReservationSnapshot, ttl time.Duration) error {
	c.s.mutex.Lock()
	defer c.s.mutex.Unlock()

	stored := *snapshot
	stored.QRImagePNG = nil
	c.s.snapshots[reservationID] = cachedSnapshot{snapshot: stored, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (c *SnapshotCache) Invalidate(ctx context.Context, reservationID uuid.UUID) error {
	c.s.mutex.Lock()
	defer c.s.mutex.Unlock()
	delete(c.s.snapshots, reservationID)
	return nil
}
