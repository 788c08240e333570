package selection

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"zeladoria-bknd/internal/cycle"
	"zeladoria-bknd/internal/models"
)

// Registrar issues the bulk daily-registration command to the persistence
// API. client.Client is the production implementation.
type Registrar interface {
	RegisterDaily(ctx context.Context, areaIDs []int64, date time.Time) (models.RegisterDailyResponse, error)
}

// Notice levels for the notification surface.
const (
	LevelSuccess = "success"
	LevelError   = "error"
)

// Notice is a user-visible notification emitted by the controller.
type Notice struct {
	Level  string
	Title  string
	Detail string
}

// Notifier renders notices. Implementations must not call back into the
// controller.
type Notifier interface {
	Notify(Notice)
}

// Snapshot is one immutable view of the controller state. Subscribers receive
// a fresh snapshot after every transition; mutating a snapshot has no effect
// on the controller.
type Snapshot struct {
	Selecting        bool
	Registering      bool
	SelectedIDs      []int64
	RegistrationDate time.Time
	InspectedAreaID  *int64
	CommitPending    bool
}

var (
	ErrNothingSelected = errors.New("no areas selected")
	ErrCommitInFlight  = errors.New("registration already in progress")
)

// Controller owns the selection and registration interaction state: the
// current mode, the working set of selected area IDs and the registration
// date. It is the only place these are mutated.
//
// The controller is not safe for concurrent use; all methods are expected to
// run on the UI event goroutine, mirroring the single-threaded event loop it
// models.
type Controller struct {
	registrar Registrar
	notifier  Notifier
	now       func() time.Time

	selecting   bool
	registering bool
	selected    map[int64]struct{}
	regDate     time.Time
	inspected   *int64
	inFlight    bool

	subs []func(Snapshot)
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New creates an idle controller with the registration date preset to the
// current calendar day.
func New(registrar Registrar, notifier Notifier, opts ...Option) *Controller {
	c := &Controller{
		registrar: registrar,
		notifier:  notifier,
		now:       time.Now,
		selected:  make(map[int64]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.regDate = cycle.DateOnly(c.now())
	return c
}

// Subscribe registers fn to receive a snapshot after every transition.
func (c *Controller) Subscribe(fn func(Snapshot)) {
	c.subs = append(c.subs, fn)
}

// Snapshot returns a copy of the current state with selected IDs in ascending
// order.
func (c *Controller) Snapshot() Snapshot {
	ids := make([]int64, 0, len(c.selected))
	for id := range c.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var inspected *int64
	if c.inspected != nil {
		v := *c.inspected
		inspected = &v
	}

	return Snapshot{
		Selecting:        c.selecting,
		Registering:      c.registering,
		SelectedIDs:      ids,
		RegistrationDate: c.regDate,
		InspectedAreaID:  inspected,
		CommitPending:    c.inFlight,
	}
}

func (c *Controller) publish() {
	snap := c.Snapshot()
	for _, fn := range c.subs {
		fn(snap)
	}
}

// ToggleSelectionMode flips between idle browsing and multi-select. Leaving
// selection clears the working set; either direction forces registration off
// and dismisses any open inspection view.
func (c *Controller) ToggleSelectionMode() {
	if c.selecting {
		c.selected = make(map[int64]struct{})
	}
	c.selecting = !c.selecting
	c.registering = false
	c.inspected = nil
	c.publish()
}

// SetRegistrationMode turns bulk registration on or off. Registration
// requires the selection mechanism, so entering also enters selection;
// leaving drops both modes and the working set.
func (c *Controller) SetRegistrationMode(active bool) {
	c.registering = active
	c.selecting = active
	if !active {
		c.selected = make(map[int64]struct{})
	}
	c.inspected = nil
	c.publish()
}

// HandleAreaClick toggles the area's membership in the working set while
// selecting; otherwise it opens the inspection view for that area.
func (c *Controller) HandleAreaClick(areaID int64) {
	if c.selecting {
		if _, ok := c.selected[areaID]; ok {
			delete(c.selected, areaID)
		} else {
			c.selected[areaID] = struct{}{}
		}
	} else {
		id := areaID
		c.inspected = &id
	}
	c.publish()
}

// CloseInspection dismisses the inspection view.
func (c *Controller) CloseInspection() {
	c.inspected = nil
	c.publish()
}

// ClearSelection empties the working set without leaving the current mode.
func (c *Controller) ClearSelection() {
	c.selected = make(map[int64]struct{})
	c.publish()
}

// SetRegistrationDate sets the date for the next commit, truncated to the
// calendar day. Future dates clamp to today: work cannot be registered ahead
// of time.
func (c *Controller) SetRegistrationDate(d time.Time) {
	today := cycle.DateOnly(c.now())
	d = cycle.DateOnly(d)
	if d.After(today) {
		d = today
	}
	c.regDate = d
	c.publish()
}

// CommitRegistration sends one bulk registration command for the current
// working set. An empty set is rejected locally with a notice and no network
// call. At most one commit is in flight at a time.
//
// On success the working set is cleared and both modes drop back to idle; on
// failure every bit of state is kept so the operator can adjust and retry.
func (c *Controller) CommitRegistration(ctx context.Context) error {
	if c.inFlight {
		return ErrCommitInFlight
	}

	if len(c.selected) == 0 {
		c.notifier.Notify(Notice{
			Level:  LevelError,
			Title:  "Nenhuma área selecionada",
			Detail: "Selecione pelo menos uma área no mapa",
		})
		return ErrNothingSelected
	}

	ids := c.Snapshot().SelectedIDs
	c.inFlight = true
	c.publish()

	res, err := c.registrar.RegisterDaily(ctx, ids, c.regDate)
	c.inFlight = false

	if err != nil {
		detail := err.Error()
		if detail == "" {
			detail = "Não foi possível registrar a roçagem"
		}
		c.notifier.Notify(Notice{
			Level:  LevelError,
			Title:  "Erro ao registrar",
			Detail: detail,
		})
		c.publish()
		return err
	}

	c.selected = make(map[int64]struct{})
	c.selecting = false
	c.registering = false

	msg := res.Message
	if msg == "" {
		msg = fmt.Sprintf("%d área(s) registrada(s) com sucesso", res.Count)
	}
	c.notifier.Notify(Notice{
		Level:  LevelSuccess,
		Title:  "Roçagem registrada!",
		Detail: msg,
	})
	c.publish()
	return nil
}
