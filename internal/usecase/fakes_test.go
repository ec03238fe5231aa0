package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"storage-marketplace/internal/data/entity"
	"storage-marketplace/internal/data/repository"
	"storage-marketplace/pkg/database"
	"storage-marketplace/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// The fakes below back the service tests without a database. Write methods
// that take a Queryer stage their effect on the fake transaction and apply
// it on Commit, so the rollback paths are observable: a failure before
// Commit leaves the committed state untouched.

type fakeTx struct {
	staged     []func()
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (t *fakeTx) Commit(ctx context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	for _, apply := range t.staged {
		apply()
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.committed {
		return nil
	}
	t.rolledBack = true
	t.staged = nil
	return nil
}

type fakeDB struct {
	beginErr error
	lastTx   *fakeTx
}

func (db *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (db *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (db *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (db *fakeDB) Begin(ctx context.Context) (database.Tx, error) {
	if db.beginErr != nil {
		return nil, db.beginErr
	}
	db.lastTx = &fakeTx{}
	return db.lastTx, nil
}

func (db *fakeDB) Ping(ctx context.Context) error { return nil }
func (db *fakeDB) Close()                         {}

// stage defers apply until the transaction commits; direct calls (no
// transaction in flight) apply immediately.
func stage(q database.Queryer, apply func()) {
	if tx, ok := q.(*fakeTx); ok {
		tx.staged = append(tx.staged, apply)
		return
	}
	apply()
}

// ==================== ADDRESS ====================

type fakeAddressRepo struct {
	byKey   map[string]*entity.Address
	byID    map[uuid.UUID]*entity.Address
	created int
}

func newFakeAddressRepo() *fakeAddressRepo {
	return &fakeAddressRepo{
		byKey: make(map[string]*entity.Address),
		byID:  make(map[uuid.UUID]*entity.Address),
	}
}

func addressKey(street, city, postal string) string {
	return strings.Join([]string{street, city, postal}, "|")
}

func (r *fakeAddressRepo) GetOrCreate(ctx context.Context, q database.Queryer, streetName, city, postalCode string) (uuid.UUID, error) {
	key := addressKey(streetName, city, postalCode)
	if existing, ok := r.byKey[key]; ok {
		return existing.ID, nil
	}

	address := &entity.Address{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		StreetName: streetName,
		City:       city,
		PostalCode: postalCode,
	}
	stage(q, func() {
		r.byKey[key] = address
		r.byID[address.ID] = address
		r.created++
	})
	return address.ID, nil
}

func (r *fakeAddressRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Address, error) {
	return r.byID[id], nil
}

// ==================== USER ====================

type fakeUserRepo struct {
	byID      map[uuid.UUID]*entity.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, q database.Queryer, user *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	copied := *user
	stage(q, func() { r.byID[copied.ID] = &copied })
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if user, ok := r.byID[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range r.byID {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, user := range r.byID {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateDetails(ctx context.Context, q database.Queryer, user *entity.User) error {
	copied := *user
	stage(q, func() { r.byID[copied.ID] = &copied })
	return nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	user, ok := r.byID[id]
	if !ok {
		return errors.New("user not found")
	}
	user.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) UpdateVerificationStatus(ctx context.Context, id uuid.UUID, verified bool) error {
	user, ok := r.byID[id]
	if !ok {
		return errors.New("user not found")
	}
	user.IsVerified = verified
	return nil
}

func (r *fakeUserRepo) UpdateProfilePicture(ctx context.Context, id uuid.UUID, pictureURL string) error {
	user, ok := r.byID[id]
	if !ok {
		return errors.New("user not found")
	}
	user.ProfilePictureURL = &pictureURL
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	user, ok := r.byID[id]
	if !ok {
		return errors.New("user not found")
	}
	user.LastLoginAt = &at
	return nil
}

// ==================== SESSION ====================

type fakeSessionRepo struct {
	byToken   map[string]*entity.Session
	createErr error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byToken: make(map[string]*entity.Session)}
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	if r.createErr != nil {
		return r.createErr
	}
	copied := *session
	r.byToken[copied.Token.String()] = &copied
	return nil
}

func (r *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	session, ok := r.byToken[token]
	if !ok || session.RevokedAt != nil || session.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (r *fakeSessionRepo) Revoke(ctx context.Context, token string) error {
	session, ok := r.byToken[token]
	if !ok {
		return nil
	}
	now := time.Now()
	session.RevokedAt = &now
	return nil
}

func (r *fakeSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	now := time.Now()
	for _, session := range r.byToken {
		if session.UserID == userID && session.RevokedAt == nil {
			session.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeSessionRepo) CleanExpiredSessions(ctx context.Context) error {
	for token, session := range r.byToken {
		if session.ExpiresAt.Before(time.Now()) {
			delete(r.byToken, token)
		}
	}
	return nil
}

// ==================== LISTING ====================

type fakeListingRepo struct {
	byID      map[uuid.UUID]*entity.Listing
	summaries []*entity.ListingSummary
	createErr error
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{byID: make(map[uuid.UUID]*entity.Listing)}
}

func (r *fakeListingRepo) Create(ctx context.Context, q database.Queryer, listing *entity.Listing) error {
	if r.createErr != nil {
		return r.createErr
	}
	copied := *listing
	stage(q, func() { r.byID[copied.ID] = &copied })
	return nil
}

func (r *fakeListingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	if listing, ok := r.byID[id]; ok {
		copied := *listing
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeListingRepo) FindSummaries(ctx context.Context, limit, offset int) ([]*entity.ListingSummary, error) {
	return paginateSummaries(r.summaries, limit, offset), nil
}

func (r *fakeListingRepo) SearchSummaries(ctx context.Context, term string, limit, offset int) ([]*entity.ListingSummary, error) {
	var matched []*entity.ListingSummary
	for _, s := range r.summaries {
		if strings.Contains(s.City, term) || strings.Contains(s.StreetName, term) {
			matched = append(matched, s)
		}
	}
	return paginateSummaries(matched, limit, offset), nil
}

func (r *fakeListingRepo) FindByProviderID(ctx context.Context, providerID uuid.UUID) ([]*entity.ListingSummary, error) {
	var matched []*entity.ListingSummary
	for _, s := range r.summaries {
		if s.ProviderID == providerID {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

func (r *fakeListingRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(r.summaries)), nil
}

func (r *fakeListingRepo) CountSearch(ctx context.Context, term string) (int64, error) {
	count := int64(0)
	for _, s := range r.summaries {
		if strings.Contains(s.City, term) || strings.Contains(s.StreetName, term) {
			count++
		}
	}
	return count, nil
}

func paginateSummaries(summaries []*entity.ListingSummary, limit, offset int) []*entity.ListingSummary {
	if offset >= len(summaries) {
		return nil
	}
	end := offset + limit
	if end > len(summaries) {
		end = len(summaries)
	}
	return summaries[offset:end]
}

// ==================== ATTACHMENT ====================

type fakeAttachmentRepo struct {
	byListing      map[uuid.UUID][]*entity.Attachment
	createBatchErr error
}

func newFakeAttachmentRepo() *fakeAttachmentRepo {
	return &fakeAttachmentRepo{byListing: make(map[uuid.UUID][]*entity.Attachment)}
}

func (r *fakeAttachmentRepo) Create(ctx context.Context, q database.Queryer, attachment *entity.Attachment) error {
	copied := *attachment
	stage(q, func() { r.byListing[copied.ListingID] = append(r.byListing[copied.ListingID], &copied) })
	return nil
}

func (r *fakeAttachmentRepo) CreateBatch(ctx context.Context, q database.Queryer, attachments []*entity.Attachment) error {
	if r.createBatchErr != nil {
		return r.createBatchErr
	}
	for _, a := range attachments {
		copied := *a
		stage(q, func() { r.byListing[copied.ListingID] = append(r.byListing[copied.ListingID], &copied) })
	}
	return nil
}

func (r *fakeAttachmentRepo) FindByListingID(ctx context.Context, listingID uuid.UUID) ([]*entity.Attachment, error) {
	attachments := append([]*entity.Attachment(nil), r.byListing[listingID]...)
	sort.SliceStable(attachments, func(i, j int) bool {
		if attachments[i].IsPrimary != attachments[j].IsPrimary {
			return attachments[i].IsPrimary
		}
		return attachments[i].CreatedAt.Before(attachments[j].CreatedAt)
	})
	return attachments, nil
}

// ==================== BOOKING ====================

type fakeBookingRepo struct {
	byID      map[uuid.UUID]*entity.Booking
	createErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{byID: make(map[uuid.UUID]*entity.Booking)}
}

func (r *fakeBookingRepo) Create(ctx context.Context, q database.Queryer, booking *entity.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	copied := *booking
	stage(q, func() { r.byID[copied.ID] = &copied })
	return nil
}

func (r *fakeBookingRepo) SetRequestedCapacity(ctx context.Context, q database.Queryer, bookingID uuid.UUID, sqMeters float64) error {
	stage(q, func() {
		if booking, ok := r.byID[bookingID]; ok {
			booking.RequestedSqMeters = &sqMeters
		}
	})
	return nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	if booking, ok := r.byID[id]; ok {
		copied := *booking
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeBookingRepo) FindByListingID(ctx context.Context, listingID uuid.UUID) ([]*entity.Booking, error) {
	var matched []*entity.Booking
	for _, booking := range r.byID {
		if booking.ListingID == listingID {
			copied := *booking
			matched = append(matched, &copied)
		}
	}
	return matched, nil
}

func (r *fakeBookingRepo) FindBySeekerID(ctx context.Context, seekerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	var matched []*entity.Booking
	for _, booking := range r.byID {
		if booking.SeekerID == seekerID {
			copied := *booking
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (r *fakeBookingRepo) CountBySeekerID(ctx context.Context, seekerID uuid.UUID) (int64, error) {
	count := int64(0)
	for _, booking := range r.byID {
		if booking.SeekerID == seekerID {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	booking, ok := r.byID[bookingID]
	if !ok {
		return errors.New("booking not found")
	}
	booking.Status = status
	booking.UpdatedAt = time.Now()
	return nil
}

// ==================== BOOKING ITEM ====================

type fakeBookingItemRepo struct {
	byBooking      map[uuid.UUID][]*entity.BookingItem
	createBatchErr error
}

func newFakeBookingItemRepo() *fakeBookingItemRepo {
	return &fakeBookingItemRepo{byBooking: make(map[uuid.UUID][]*entity.BookingItem)}
}

func (r *fakeBookingItemRepo) Create(ctx context.Context, q database.Queryer, item *entity.BookingItem) error {
	copied := *item
	stage(q, func() { r.byBooking[copied.BookingID] = append(r.byBooking[copied.BookingID], &copied) })
	return nil
}

func (r *fakeBookingItemRepo) CreateBatch(ctx context.Context, q database.Queryer, items []*entity.BookingItem) error {
	if r.createBatchErr != nil {
		return r.createBatchErr
	}
	for _, item := range items {
		copied := *item
		stage(q, func() { r.byBooking[copied.BookingID] = append(r.byBooking[copied.BookingID], &copied) })
	}
	return nil
}

func (r *fakeBookingItemRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingItem, error) {
	return append([]*entity.BookingItem(nil), r.byBooking[bookingID]...), nil
}

// ==================== TEST FIXTURE ====================

type fixture struct {
	db          *fakeDB
	repo        *repository.Repository
	config      *utils.Config
	address     *fakeAddressRepo
	user        *fakeUserRepo
	session     *fakeSessionRepo
	listing     *fakeListingRepo
	attachment  *fakeAttachmentRepo
	booking     *fakeBookingRepo
	bookingItem *fakeBookingItemRepo
}

func newFixture() *fixture {
	f := &fixture{
		db:          &fakeDB{},
		address:     newFakeAddressRepo(),
		user:        newFakeUserRepo(),
		session:     newFakeSessionRepo(),
		listing:     newFakeListingRepo(),
		attachment:  newFakeAttachmentRepo(),
		booking:     newFakeBookingRepo(),
		bookingItem: newFakeBookingItemRepo(),
	}
	f.repo = &repository.Repository{
		Address:     f.address,
		User:        f.user,
		Session:     f.session,
		Listing:     f.listing,
		Attachment:  f.attachment,
		Booking:     f.booking,
		BookingItem: f.bookingItem,
	}
	f.config = &utils.Config{
		Auth: utils.AuthConfig{
			BcryptCost:       bcrypt.MinCost,
			SessionTTLHours:  24,
			MinPasswordChars: 8,
		},
	}
	return f
}

func (f *fixture) authService() AuthService {
	return NewAuthService(f.db, f.repo, f.config, zap.NewNop())
}

func (f *fixture) userService() UserService {
	return NewUserService(f.db, f.repo, f.config, zap.NewNop())
}

func (f *fixture) listingService() ListingService {
	return NewListingService(f.db, f.repo, zap.NewNop())
}

func (f *fixture) bookingService() BookingService {
	return NewBookingService(f.db, f.repo, zap.NewNop())
}

// seedUser stores a user directly, bypassing the registration flow.
func (f *fixture) seedUser(username, email, password string, role entity.UserRole) *entity.User {
	hash, _ := utils.HashPassword(password, bcrypt.MinCost)
	now := time.Now()
	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		AddressID:    uuid.New(),
	}
	f.user.byID[user.ID] = user
	return user
}

func (f *fixture) seedListing(providerID uuid.UUID, storageType entity.StorageType, pricePerMonth float64) *entity.Listing {
	listing := &entity.Listing{
		BaseSimple:    entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		ProviderID:    providerID,
		AddressID:     uuid.New(),
		Title:         "Dry basement",
		Description:   "Clean and ventilated",
		StorageType:   storageType,
		PricePerMonth: pricePerMonth,
		Status:        entity.ListingStatusActive,
	}
	switch storageType {
	case entity.StorageTypeItemSlot:
		capacity := 10
		listing.ItemSlotCapacity = &capacity
	case entity.StorageTypeSquareMeter:
		sqm := 40.0
		listing.SquareMeters = &sqm
	}
	f.listing.byID[listing.ID] = listing
	return listing
}

func (f *fixture) seedBooking(listingID, seekerID uuid.UUID, status entity.BookingStatus) *entity.Booking {
	now := time.Now()
	booking := &entity.Booking{
		Base:       entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		BookingRef: utils.GenerateBookingRef(),
		ListingID:  listingID,
		SeekerID:   seekerID,
		StartDate:  now.AddDate(0, 0, 7),
		EndDate:    now.AddDate(0, 2, 7),
		TotalCost:  200,
		Status:     status,
	}
	f.booking.byID[booking.ID] = booking
	return booking
}
