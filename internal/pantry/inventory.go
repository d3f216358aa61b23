// Package pantry implements stock bookkeeping and recipe matching for one household.
//
// The package is storage-free: callers load lots, mutate them through an
// Inventory and persist the result. Quantities are summed and deducted with
// decimal arithmetic so repeated partial deductions land on exact zero.
package pantry

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/pantry-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidLot is returned when a lot fails validation on add.
	ErrInvalidLot = errors.New("invalid lot")
	// ErrInvalidAmount is returned when a decrement amount is not positive.
	ErrInvalidAmount = errors.New("amount must be a positive number")
	// ErrLotNotFound is returned when no lot carries the requested id.
	ErrLotNotFound = errors.New("lot not found")
)

// DeductionOrder controls which matching lot is drawn from first.
type DeductionOrder int

const (
	// OrderInsertion drains lots in the order they were added.
	OrderInsertion DeductionOrder = iota
	// OrderSoonestExpiry drains the lot closest to expiry first; lots
	// without an expiry date go last. Differs from OrderInsertion whenever
	// lots were not added in expiry order.
	OrderSoonestExpiry
)

// ParseDeductionOrder maps a configuration value to a DeductionOrder.
func ParseDeductionOrder(s string) (DeductionOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "insertion":
		return OrderInsertion, nil
	case "expiry", "soonest_expiry":
		return OrderSoonestExpiry, nil
	default:
		return OrderInsertion, fmt.Errorf("unknown deduction order %q", s)
	}
}

func (o DeductionOrder) String() string {
	if o == OrderSoonestExpiry {
		return "expiry"
	}
	return "insertion"
}

// Option configures an Inventory.
type Option func(*Inventory)

// WithDeductionOrder sets the order used by Decrement and Cook.
func WithDeductionOrder(order DeductionOrder) Option {
	return func(inv *Inventory) {
		inv.order = order
	}
}

// WithIDGenerator replaces the uuid generator used for new lots.
func WithIDGenerator(fn func() string) Option {
	return func(inv *Inventory) {
		if fn != nil {
			inv.newID = fn
		}
	}
}

// WithClock replaces the clock used to stamp new lots.
func WithClock(fn func() time.Time) Option {
	return func(inv *Inventory) {
		if fn != nil {
			inv.now = fn
		}
	}
}

// Inventory holds one household's lots. It is not safe for concurrent use.
type Inventory struct {
	lots  []model.Lot
	order DeductionOrder
	newID func() string
	now   func() time.Time
}

// NewInventory wraps a copy of lots.
func NewInventory(lots []model.Lot, opts ...Option) *Inventory {
	inv := &Inventory{
		lots:  make([]model.Lot, len(lots)),
		newID: uuid.NewString,
		now:   time.Now,
	}
	copy(inv.lots, lots)

	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// Lots returns a copy of the current lots in collection order.
func (inv *Inventory) Lots() []model.Lot {
	out := make([]model.Lot, len(inv.lots))
	copy(out, inv.lots)
	return out
}

// Len returns the number of lots.
func (inv *Inventory) Len() int {
	return len(inv.lots)
}

// Order returns the configured deduction order.
func (inv *Inventory) Order() DeductionOrder {
	return inv.order
}

// Find returns the lot with the given id.
func (inv *Inventory) Find(id string) (model.Lot, bool) {
	if i := inv.indexOf(id); i >= 0 {
		return inv.lots[i], true
	}
	return model.Lot{}, false
}

// ValidateLot checks the fields a caller supplies for a new lot.
func ValidateLot(lot model.Lot) error {
	switch {
	case strings.TrimSpace(lot.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidLot)
	case math.IsNaN(lot.Quantity) || math.IsInf(lot.Quantity, 0) || lot.Quantity <= 0:
		return fmt.Errorf("%w: quantity must be greater than zero", ErrInvalidLot)
	case strings.TrimSpace(lot.Unit) == "":
		return fmt.Errorf("%w: unit is required", ErrInvalidLot)
	case !lot.Location.Valid():
		return fmt.Errorf("%w: unknown location %q", ErrInvalidLot, lot.Location)
	}
	return nil
}

// Add validates lot, assigns it a fresh id and appends it. Lots with the
// same name are never merged.
func (inv *Inventory) Add(lot model.Lot) (model.Lot, error) {
	if err := ValidateLot(lot); err != nil {
		return model.Lot{}, err
	}

	lot.ID = inv.newID()
	lot.Name = strings.TrimSpace(lot.Name)
	lot.Unit = strings.TrimSpace(lot.Unit)
	if lot.Expiry != nil {
		d := DateOf(*lot.Expiry)
		lot.Expiry = &d
	}
	if lot.AddedAt.IsZero() {
		lot.AddedAt = inv.now().UTC()
	}

	inv.lots = append(inv.lots, lot)
	return lot, nil
}

// Remove deletes the lot with the given id. It is a no-op returning false
// when the id is unknown.
func (inv *Inventory) Remove(id string) (model.Lot, bool) {
	i := inv.indexOf(id)
	if i < 0 {
		return model.Lot{}, false
	}
	removed := inv.lots[i]
	inv.lots = append(inv.lots[:i], inv.lots[i+1:]...)
	return removed, true
}

// Deduction reports the outcome of a Decrement.
type Deduction struct {
	Requested   float64     `json:"requested"`
	Deducted    float64     `json:"deducted"`
	Unsatisfied float64     `json:"unsatisfied"`
	Touched     []string    `json:"touched"`
	Purged      []model.Lot `json:"purged"`
}

// Decrement removes amount from lots whose name contains name
// (case-insensitive), draining them in the inventory's deduction order.
// Lots that reach zero are purged. The amount that could not be taken is
// returned in Unsatisfied; it is zero when stock covered the request.
func (inv *Inventory) Decrement(name string, amount float64) (Deduction, error) {
	if strings.TrimSpace(name) == "" {
		return Deduction{}, fmt.Errorf("%w: name is required", ErrInvalidAmount)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return Deduction{}, ErrInvalidAmount
	}

	need := decimal.NewFromFloat(amount)
	remaining, touched := inv.drain(name, need)
	var purged []model.Lot
	if len(touched) > 0 {
		purged = inv.purge(touched)
	}

	return Deduction{
		Requested:   amount,
		Deducted:    need.Sub(remaining).InexactFloat64(),
		Unsatisfied: remaining.InexactFloat64(),
		Touched:     touched,
		Purged:      purged,
	}, nil
}

// drain takes up to need from lots matching name and returns what is left
// plus the ids of lots it drew from.
func (inv *Inventory) drain(name string, need decimal.Decimal) (decimal.Decimal, []string) {
	var touched []string
	for _, i := range inv.sequence(name) {
		if !need.IsPositive() {
			break
		}
		have := decimal.NewFromFloat(inv.lots[i].Quantity)
		if !have.IsPositive() {
			continue
		}
		take := decimal.Min(have, need)
		inv.lots[i].Quantity = have.Sub(take).InexactFloat64()
		need = need.Sub(take)
		touched = append(touched, inv.lots[i].ID)
	}
	return need, touched
}

// sequence returns indexes of lots matching name in deduction order.
func (inv *Inventory) sequence(name string) []int {
	idx := make([]int, 0, len(inv.lots))
	for i, l := range inv.lots {
		if Matches(name, l.Name) {
			idx = append(idx, i)
		}
	}
	if inv.order == OrderSoonestExpiry {
		sort.SliceStable(idx, func(a, b int) bool {
			return expiresBefore(inv.lots[idx[a]], inv.lots[idx[b]])
		})
	}
	return idx
}

// purge drops lots at or below zero. With ids set, only those lots are
// considered.
func (inv *Inventory) purge(ids []string) []model.Lot {
	var only map[string]bool
	if ids != nil {
		only = make(map[string]bool, len(ids))
		for _, id := range ids {
			only[id] = true
		}
	}

	var purged []model.Lot
	kept := inv.lots[:0]
	for _, l := range inv.lots {
		if l.Quantity <= 0 && (only == nil || only[l.ID]) {
			purged = append(purged, l)
			continue
		}
		kept = append(kept, l)
	}
	inv.lots = kept
	return purged
}

func (inv *Inventory) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range inv.lots {
		if inv.lots[i].ID == id {
			return i
		}
	}
	return -1
}

func (inv *Inventory) clone() *Inventory {
	c := *inv
	c.lots = make([]model.Lot, len(inv.lots))
	copy(c.lots, inv.lots)
	return &c
}

func expiresBefore(a, b model.Lot) bool {
	switch {
	case a.Expiry == nil:
		return false
	case b.Expiry == nil:
		return true
	default:
		return DateOf(*a.Expiry).Before(DateOf(*b.Expiry))
	}
}
