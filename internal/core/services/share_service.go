package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"github.com/srgjo27/reservation_engine/internal/core/domain"
	"github.com/srgjo27/reservation_engine/internal/core/ports"
)

const (
	shareIDBytes     = 16
	maxShareMessage  = 500
	qrImageSize      = 256
	snapshotCacheTTL = 10 * time.Minute
)

type ShareLinkResult struct {
	Link *domain.ShareLink
	URL  string
	// ExpiryHint is when the shared QR stops admitting guests. The link itself
	// keeps resolving after that.
	ExpiryHint time.Time
}

type ShareLinkService struct {
	reservations ports.ReservationRepository
	codes        ports.QRCodeRepository
	links        ports.ShareLinkRepository
	cache        ports.SnapshotCache
	settings     *TenantSettings
	policy       StoragePolicy
	baseURL      string
	now          func() time.Time
}

func NewShareLinkService(
	reservations ports.ReservationRepository,
	codes ports.QRCodeRepository,
	links ports.ShareLinkRepository,
	cache ports.SnapshotCache,
	settings *TenantSettings,
	policy StoragePolicy,
	baseURL string,
) *ShareLinkService {
	return &ShareLinkService{
		reservations: reservations,
		codes:        codes,
		links:        links,
		cache:        cache,
		settings:     settings,
		policy:       policy,
		baseURL:      strings.TrimRight(baseURL, "/"),
		now:          time.Now,
	}
}

func (s *ShareLinkService) SetClock(now func() time.Time) {
	s.now = now
}

func newShareID() (string, error) {
	buf := make([]byte, shareIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random share id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Create always makes a new link so each forwarding channel keeps its own
// view count.
func (s *ShareLinkService) Create(ctx context.Context, tenantID string, reservationID uuid.UUID, message string) (*ShareLinkResult, error) {
	message = strings.TrimSpace(message)
	if len(message) > maxShareMessage {
		return nil, domain.Validationf("message must be at most %d characters", maxShareMessage)
	}

	res, err := call(ctx, s.policy, func(ctx context.Context) (*domain.Reservation, error) {
		return s.reservations.GetByID(ctx, tenantID, reservationID)
	})
	if err != nil {
		return nil, err
	}
	if res.IsTerminal() {
		return nil, fmt.Errorf("%w: %s", domain.ErrReservationTerminal, res.Status)
	}

	settings, err := s.settings.For(ctx, res.TenantID)
	if err != nil {
		return nil, err
	}

	shareID, err := newShareID()
	if err != nil {
		return nil, err
	}
	link := &domain.ShareLink{
		ShareID:       shareID,
		ReservationID: res.ID,
		TenantID:      res.TenantID,
		Message:       message,
		CreatedAt:     s.now().UTC(),
	}
	if err := exec(ctx, s.policy, func(ctx context.Context) error {
		return s.links.Create(ctx, link)
	}); err != nil {
		return nil, fmt.Errorf("failed to create share link: %w", err)
	}

	return &ShareLinkResult{
		Link:       link,
		URL:        fmt.Sprintf("%s/api/v1/share/%s", s.baseURL, shareID),
		ExpiryHint: res.QRExpiry(settings.Window()),
	}, nil
}

// View counts one open of the link and returns the customer-safe projection.
// Every call increments the counter, so responses must not be cached.
func (s *ShareLinkService) View(ctx context.Context, shareID string) (*domain.ShareView, error) {
	if strings.TrimSpace(shareID) == "" {
		return nil, domain.ErrNotFound
	}

	link, err := call(ctx, s.policy, func(ctx context.Context) (*domain.ShareLink, error) {
		return s.links.IncrementView(ctx, shareID)
	})
	if err != nil {
		return nil, err
	}

	snapshot, err := s.snapshot(ctx, link)
	if err != nil {
		return nil, err
	}

	if snapshot.QRPayload != "" {
		png, err := qrcode.Encode(snapshot.QRPayload, qrcode.Medium, qrImageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to render qr: %w", err)
		}
		snapshot.QRImagePNG = png
	}

	return &domain.ShareView{
		ShareID:   link.ShareID,
		Message:   link.Message,
		ViewCount: link.ViewCount,
		Snapshot:  *snapshot,
	}, nil
}

// QRImage returns the PNG of the shared code. ErrExpired once the reservation
// no longer has a usable token.
func (s *ShareLinkService) QRImage(ctx context.Context, shareID string) ([]byte, error) {
	view, err := s.View(ctx, shareID)
	if err != nil {
		return nil, err
	}
	if len(view.Snapshot.QRImagePNG) == 0 {
		return nil, domain.ErrExpired
	}
	return view.Snapshot.QRImagePNG, nil
}

func (s *ShareLinkService) snapshot(ctx context.Context, link *domain.ShareLink) (*domain.ReservationSnapshot, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, link.ReservationID)
		if err != nil {
			log.Printf("level=warn msg=\"snapshot cache read failed\" reservation=%s err=%v", link.ReservationID, err)
		}
		if ok {
			return cached, nil
		}
	}

	res, err := call(ctx, s.policy, func(ctx context.Context) (*domain.Reservation, error) {
		return s.reservations.GetByID(ctx, link.TenantID, link.ReservationID)
	})
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.For(ctx, res.TenantID)
	if err != nil {
		return nil, err
	}

	snapshot := &domain.ReservationSnapshot{
		ReservationNumber: res.Number,
		CustomerName:      res.CustomerName,
		GuestCount:        res.GuestCount,
		ReservedAt:        res.ReservedAt,
		BusinessDay:       settings.Resolver().DayOf(res.ReservedAt).String(),
		Status:            res.Status,
		Details:           res.Details,
	}

	ttl := snapshotCacheTTL
	if !res.IsTerminal() {
		qr, err := call(ctx, s.policy, func(ctx context.Context) (*domain.QRCode, error) {
			return s.codes.GetActive(ctx, res.ID)
		})
		switch {
		case err == nil && qr.Usable(s.now()):
			snapshot.QRPayload = qr.Token
			if left := qr.ExpiresAt.Sub(s.now()); left < ttl {
				ttl = left
			}
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}
	}

	if s.cache != nil && ttl > 0 {
		if err := s.cache.Set(ctx, res.ID, snapshot, ttl); err != nil {
			log.Printf("level=warn msg=\"snapshot cache write failed\" reservation=%s err=%v", res.ID, err)
		}
	}
	return snapshot, nil
}
